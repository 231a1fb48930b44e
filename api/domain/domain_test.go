// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package domain_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meharab/Proof-of-Contribution/api/domain"
	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

func TestGetDomain(t *testing.T) {
	d := attest.NewDomain(big.NewInt(1337), thor.DefaultContractAddress)

	router := mux.NewRouter()
	domain.New(d).Mount(router, "/domain")
	ts := httptest.NewServer(router)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/domain")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body domain.Response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, thor.ContractName, body.Domain.Name)
	assert.Equal(t, thor.ContractVersion, body.Domain.Version)
	assert.Equal(t, int64(1337), body.Domain.ChainID.Int64())
	assert.Equal(t, thor.DefaultContractAddress, body.Domain.VerifyingContract)
	assert.Equal(t, d.Separator(), body.Separator)

	res, err = http.Post(ts.URL+"/domain", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
