// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package attestors_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meharab/Proof-of-Contribution/api/attestors"
	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/genesis"
	"github.com/Meharab/Proof-of-Contribution/test/testengine"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

func TestAttestors(t *testing.T) {
	te := testengine.New(t)
	router := mux.NewRouter()
	attestors.New(te.Engine).Mount(router, "/attestors")
	ts := httptest.NewServer(router)
	defer ts.Close()

	accs := genesis.DevAccounts()
	owner, devAttestor, newcomer := accs[0].Address, accs[1].Address, accs[4].Address

	var list attestors.List
	res, status := do(t, http.MethodGet, ts.URL+"/attestors", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(res, &list))
	assert.Equal(t, owner, list.Owner)
	assert.Equal(t, []thor.Address{devAttestor}, list.Attestors)

	var one attestors.Attestor
	res, status = do(t, http.MethodGet, ts.URL+"/attestors/"+newcomer.String(), nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(res, &one))
	assert.False(t, one.Authorized)

	_, status = do(t, http.MethodPut, ts.URL+"/attestors/"+newcomer.String(), utils.M{"caller": newcomer, "authorized": true})
	assert.Equal(t, http.StatusForbidden, status)

	res, status = do(t, http.MethodPut, ts.URL+"/attestors/"+newcomer.String(), utils.M{"caller": owner, "authorized": true})
	require.Equal(t, http.StatusOK, status, string(res))
	require.NoError(t, json.Unmarshal(res, &one))
	assert.Equal(t, newcomer, one.Address)
	assert.True(t, one.Authorized)

	res, status = do(t, http.MethodGet, ts.URL+"/attestors/"+newcomer.String(), nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(res, &one))
	assert.True(t, one.Authorized)

	res, status = do(t, http.MethodGet, ts.URL+"/attestors", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(res, &list))
	assert.ElementsMatch(t, []thor.Address{devAttestor, newcomer}, list.Attestors)

	_, status = do(t, http.MethodPut, ts.URL+"/attestors/"+devAttestor.String(), utils.M{"caller": owner, "authorized": false})
	require.Equal(t, http.StatusOK, status)
	ok, err := te.IsAttestor(devAttestor)
	require.NoError(t, err)
	assert.False(t, ok)

	_, status = do(t, http.MethodGet, ts.URL+"/attestors/0xnothex", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func do(t *testing.T, method, url string, body any) ([]byte, int) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return data, res.StatusCode
}
