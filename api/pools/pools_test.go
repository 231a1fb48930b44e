// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meharab/Proof-of-Contribution/api/pools"
	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/genesis"
	"github.com/Meharab/Proof-of-Contribution/test/testengine"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

var (
	ts     *httptest.Server
	engine *testengine.TestEngine

	attestor    = genesis.DevAccounts()[1]
	sponsor     = genesis.DevAccounts()[2].Address
	contributor = genesis.DevAccounts()[3].Address
)

func initPoolsServer(t *testing.T) {
	engine = testengine.New(t)
	router := mux.NewRouter()
	pools.New(engine.Engine).Mount(router, "/pools")
	ts = httptest.NewServer(router)
	t.Cleanup(ts.Close)
}

func TestPools(t *testing.T) {
	initPoolsServer(t)

	for name, tt := range map[string]func(*testing.T){
		"createAndGet":         createAndGet,
		"createInvalid":        createInvalid,
		"getMissing":           getMissing,
		"closePool":            closePool,
		"submitAndClaim":       submitAndClaim,
		"submitByHash":         submitByHash,
		"claimErrors":          claimErrors,
		"rejectedContribution": rejectedContribution,
		"badPathParams":        badPathParams,
	} {
		t.Run(name, tt)
	}
}

func createAndGet(t *testing.T) {
	created := createPool(t, "100", "25", 0)
	assert.Equal(t, sponsor, created.Creator)
	assert.Equal(t, thor.NativeToken, created.Token)
	assert.Equal(t, int64(100), (*big.Int)(created.TotalFund).Int64())
	assert.Equal(t, int64(25), (*big.Int)(created.RewardPerContribution).Int64())
	assert.True(t, created.Active)

	res, status := httpGet(t, ts.URL+"/pools/"+utoa(created.ID))
	require.Equal(t, http.StatusOK, status)
	var got pools.Pool
	require.NoError(t, json.Unmarshal(res, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, uint64(0), got.ContributionsCount)

	res, status = httpGet(t, ts.URL+"/pools")
	require.Equal(t, http.StatusOK, status)
	var count pools.PoolCount
	require.NoError(t, json.Unmarshal(res, &count))
	assert.GreaterOrEqual(t, count.Count, created.ID)
}

func createInvalid(t *testing.T) {
	_, status := httpPost(t, ts.URL+"/pools", utils.M{"caller": sponsor, "token": thor.NativeToken, "fund": "100"})
	assert.Equal(t, http.StatusBadRequest, status)

	_, status = httpPost(t, ts.URL+"/pools", utils.M{"caller": sponsor, "fund": "1", "reward": "1", "extra": true})
	assert.Equal(t, http.StatusBadRequest, status, "unknown fields are rejected")

	unknownToken := thor.BytesToAddress([]byte("nope"))
	_, status = httpPost(t, ts.URL+"/pools", utils.M{"caller": sponsor, "token": unknownToken, "fund": "1", "reward": "1"})
	assert.Equal(t, http.StatusBadRequest, status)

	poor := thor.BytesToAddress([]byte("poor"))
	_, status = httpPost(t, ts.URL+"/pools", utils.M{"caller": poor, "token": thor.NativeToken, "fund": "1", "reward": "1"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func getMissing(t *testing.T) {
	_, status := httpGet(t, ts.URL+"/pools/999")
	assert.Equal(t, http.StatusNotFound, status)

	_, status = httpGet(t, ts.URL+"/pools/999/contributions/1")
	assert.Equal(t, http.StatusNotFound, status)

	created := createPool(t, "10", "1", 0)
	_, status = httpGet(t, ts.URL+"/pools/"+utoa(created.ID)+"/contributions/1")
	assert.Equal(t, http.StatusNotFound, status)
}

func closePool(t *testing.T) {
	created := createPool(t, "10", "1", 0)
	path := ts.URL + "/pools/" + utoa(created.ID) + "/close"

	_, status := httpPost(t, path, utils.M{"caller": contributor})
	assert.Equal(t, http.StatusForbidden, status)

	res, status := httpPost(t, path, utils.M{"caller": sponsor})
	require.Equal(t, http.StatusOK, status)
	var closed pools.Pool
	require.NoError(t, json.Unmarshal(res, &closed))
	assert.False(t, closed.Active)

	_, status = httpPost(t, ts.URL+"/pools/"+utoa(created.ID)+"/contributions", utils.M{"caller": contributor, "pointer": "ipfs://late"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func submitAndClaim(t *testing.T) {
	created := createPool(t, "100", "25", 0)
	submitted := submit(t, created.ID, utils.M{"caller": contributor, "pointer": "ipfs://work"})
	assert.Equal(t, uint64(1), submitted.ID)
	assert.Equal(t, attest.ContentHash("ipfs://work"), submitted.Hash)
	assert.Equal(t, "pending", submitted.State)
	assert.Nil(t, submitted.Attestor)

	before, err := engine.BalanceOf(thor.NativeToken, contributor)
	require.NoError(t, err)

	sig := sign(t, created.ID, submitted, true)
	res, status := httpPost(t, claimPath(created.ID, submitted.ID), utils.M{
		"caller":    contributor,
		"valid":     true,
		"timestamp": engine.Now(),
		"signature": hexutil.Encode(sig),
	})
	require.Equal(t, http.StatusOK, status, string(res))
	var claimed pools.Contribution
	require.NoError(t, json.Unmarshal(res, &claimed))
	assert.Equal(t, "claimed", claimed.State)
	require.NotNil(t, claimed.Attestor)
	assert.Equal(t, attestor.Address, *claimed.Attestor)

	after, err := engine.BalanceOf(thor.NativeToken, contributor)
	require.NoError(t, err)
	assert.Equal(t, int64(25), new(big.Int).Sub(after, before).Int64())

	res, status = httpGet(t, ts.URL+"/pools/"+utoa(created.ID))
	require.Equal(t, http.StatusOK, status)
	var p pools.Pool
	require.NoError(t, json.Unmarshal(res, &p))
	assert.Equal(t, int64(75), (*big.Int)(p.TotalFund).Int64())
	assert.Equal(t, uint64(1), p.ContributionsCount)

	_, status = httpPost(t, claimPath(created.ID, submitted.ID), utils.M{
		"caller":    contributor,
		"valid":     true,
		"timestamp": engine.Now(),
		"signature": hexutil.Encode(sig),
	})
	assert.Equal(t, http.StatusConflict, status)
}

func submitByHash(t *testing.T) {
	created := createPool(t, "10", "1", 0)
	hash := thor.Keccak256([]byte("payload"))
	submitted := submit(t, created.ID, utils.M{"caller": contributor, "contributionHash": hash})
	assert.Equal(t, hash, submitted.Hash)

	_, status := httpPost(t, ts.URL+"/pools/"+utoa(created.ID)+"/contributions", utils.M{"caller": contributor})
	assert.Equal(t, http.StatusBadRequest, status)

	_, status = httpPost(t, ts.URL+"/pools/"+utoa(created.ID)+"/contributions", utils.M{
		"caller":           contributor,
		"contributionHash": hash,
		"pointer":          "ipfs://both",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func claimErrors(t *testing.T) {
	created := createPool(t, "10", "5", 0)
	submitted := submit(t, created.ID, utils.M{"caller": contributor, "pointer": "ipfs://errors"})

	// signed for a different outcome
	sig := sign(t, created.ID, submitted, false)
	_, status := httpPost(t, claimPath(created.ID, submitted.ID), utils.M{
		"caller":    contributor,
		"valid":     true,
		"timestamp": engine.Now(),
		"signature": hexutil.Encode(sig),
	})
	assert.Equal(t, http.StatusBadRequest, status)

	_, status = httpPost(t, claimPath(created.ID, submitted.ID), utils.M{
		"caller":    contributor,
		"valid":     true,
		"timestamp": engine.Now(),
		"signature": "0x1234",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	_, status = httpPost(t, claimPath(created.ID, 42), utils.M{
		"caller":    contributor,
		"valid":     true,
		"timestamp": engine.Now(),
		"signature": hexutil.Encode(sig),
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func rejectedContribution(t *testing.T) {
	created := createPool(t, "10", "5", 0)
	submitted := submit(t, created.ID, utils.M{"caller": contributor, "pointer": "ipfs://spam"})

	sig := sign(t, created.ID, submitted, false)
	res, status := httpPost(t, claimPath(created.ID, submitted.ID), utils.M{
		"caller":    contributor,
		"valid":     false,
		"timestamp": engine.Now(),
		"signature": hexutil.Encode(sig),
	})
	require.Equal(t, http.StatusOK, status, string(res))
	var rejected pools.Contribution
	require.NoError(t, json.Unmarshal(res, &rejected))
	assert.Equal(t, "rejected", rejected.State)

	res, status = httpGet(t, ts.URL+"/pools/"+utoa(created.ID))
	require.Equal(t, http.StatusOK, status)
	var p pools.Pool
	require.NoError(t, json.Unmarshal(res, &p))
	assert.Equal(t, int64(10), (*big.Int)(p.TotalFund).Int64())
}

func badPathParams(t *testing.T) {
	_, status := httpGet(t, ts.URL+"/pools/abc")
	assert.Equal(t, http.StatusBadRequest, status)

	_, status = httpGet(t, ts.URL+"/pools/1/contributions/-1")
	assert.Equal(t, http.StatusBadRequest, status)
}

func createPool(t *testing.T, fund, reward string, expiresAt uint64) *pools.Pool {
	res, status := httpPost(t, ts.URL+"/pools", utils.M{
		"caller":    sponsor,
		"token":     thor.NativeToken,
		"fund":      fund,
		"reward":    reward,
		"expiresAt": expiresAt,
	})
	require.Equal(t, http.StatusOK, status, string(res))
	var p pools.Pool
	require.NoError(t, json.Unmarshal(res, &p))
	return &p
}

func submit(t *testing.T, poolID uint64, body utils.M) *pools.Contribution {
	res, status := httpPost(t, ts.URL+"/pools/"+utoa(poolID)+"/contributions", body)
	require.Equal(t, http.StatusOK, status, string(res))
	var c pools.Contribution
	require.NoError(t, json.Unmarshal(res, &c))
	return &c
}

func sign(t *testing.T, poolID uint64, c *pools.Contribution, valid bool) []byte {
	sig, err := attest.Sign(&attest.Attestation{
		PoolID:           poolID,
		ContributionID:   c.ID,
		ContributionHash: c.Hash,
		Contributor:      c.Contributor,
		Valid:            valid,
		Timestamp:        engine.Now(),
	}, engine.Domain(), attestor.PrivateKey)
	require.NoError(t, err)
	return sig
}

func claimPath(poolID, contributionID uint64) string {
	return ts.URL + "/pools/" + utoa(poolID) + "/contributions/" + utoa(contributionID) + "/claim"
}

func utoa(v uint64) string {
	return new(big.Int).SetUint64(v).String()
}

func httpPost(t *testing.T, url string, body any) ([]byte, int) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	return readBody(t, res), res.StatusCode
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	return readBody(t, res), res.StatusCode
}

func readBody(t *testing.T, res *http.Response) []byte {
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return data
}
