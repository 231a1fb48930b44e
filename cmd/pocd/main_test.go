// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/genesis"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"pocd"}, args...))
	return out.String(), err
}

func TestHashCommand(t *testing.T) {
	out, err := run(t, "hash", "ipfs://work")
	require.NoError(t, err)
	assert.Equal(t, attest.ContentHash("ipfs://work").String(), strings.TrimSpace(out))

	_, err = run(t, "hash")
	assert.Error(t, err)
}

func TestKeygenCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attestor.key")
	out, err := run(t, "keygen", "--out", path)
	require.NoError(t, err)

	key, err := crypto.LoadECDSA(path)
	require.NoError(t, err)
	assert.Equal(t, "address: "+attest.Address(key).String(), strings.TrimSpace(out))
}

func TestAttestCommand(t *testing.T) {
	attestor := genesis.DevAccounts()[1]
	contributor := genesis.DevAccounts()[3].Address
	keyFile := filepath.Join(t.TempDir(), "attestor.key")
	require.NoError(t, crypto.SaveECDSA(keyFile, attestor.PrivateKey))

	out, err := run(t, "attest",
		"--key-file", keyFile,
		"--pool", "1",
		"--contribution", "2",
		"--pointer", "ipfs://work",
		"--contributor", contributor.String(),
		"--timestamp", "1700000000",
	)
	require.NoError(t, err)

	var signed attest.Signed
	require.NoError(t, json.Unmarshal([]byte(out), &signed))
	assert.Equal(t, uint64(1), signed.PoolID)
	assert.Equal(t, uint64(2), signed.ContributionID)
	assert.Equal(t, attest.ContentHash("ipfs://work"), signed.ContributionHash)
	assert.Equal(t, contributor, signed.Contributor)
	assert.True(t, signed.Valid)
	assert.Equal(t, uint64(1700000000), signed.Timestamp)

	verifier, err := attest.NewVerifier(genesis.NewDevnet().Domain())
	require.NoError(t, err)
	signer, err := verifier.Recover(&signed.Attestation, signed.Signature)
	require.NoError(t, err)
	assert.Equal(t, attestor.Address, signer)

	out, err = run(t, "attest",
		"--key-file", keyFile,
		"--pool", "1",
		"--contribution", "2",
		"--hash", signed.ContributionHash.String(),
		"--contributor", contributor.String(),
		"--timestamp", "1700000000",
		"--reject",
	)
	require.NoError(t, err)
	var rejected attest.Signed
	require.NoError(t, json.Unmarshal([]byte(out), &rejected))
	assert.False(t, rejected.Valid)
	assert.Equal(t, signed.ContributionHash, rejected.ContributionHash)
}

func TestAttestCommandErrors(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "attestor.key")
	require.NoError(t, crypto.SaveECDSA(keyFile, genesis.DevAccounts()[1].PrivateKey))
	contributor := thor.BytesToAddress([]byte("c")).String()

	for name, args := range map[string][]string{
		"no key":          {"--pointer", "p", "--contributor", contributor},
		"missing key":     {"--key-file", keyFile + ".missing", "--pointer", "p", "--contributor", contributor},
		"no content":      {"--key-file", keyFile, "--contributor", contributor},
		"both contents":   {"--key-file", keyFile, "--pointer", "p", "--hash", thor.Bytes32{}.String(), "--contributor", contributor},
		"bad contributor": {"--key-file", keyFile, "--pointer", "p", "--contributor", "0x1"},
	} {
		_, err := run(t, append([]string{"attest"}, args...)...)
		assert.Error(t, err, name)
	}
}

func TestSelectGenesisFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chainId: "7"
owner: "0x00000000000000000000000000000000000000a1"
`), 0o600))

	keyFile := filepath.Join(t.TempDir(), "attestor.key")
	key := genesis.DevAccounts()[1].PrivateKey
	require.NoError(t, crypto.SaveECDSA(keyFile, key))

	out, err := run(t, "attest",
		"--genesis", path,
		"--key-file", keyFile,
		"--pointer", "p",
		"--contributor", thor.BytesToAddress([]byte("c")).String(),
	)
	require.NoError(t, err)
	var signed attest.Signed
	require.NoError(t, json.Unmarshal([]byte(out), &signed))

	cfg, err := genesis.LoadConfig(path)
	require.NoError(t, err)
	gene, err := genesis.New("testnet", cfg)
	require.NoError(t, err)
	verifier, err := attest.NewVerifier(gene.Domain())
	require.NoError(t, err)
	signer, err := verifier.Recover(&signed.Attestation, signed.Signature)
	require.NoError(t, err)
	assert.Equal(t, attest.Address(key), signer)
}

func TestMaxClockOffset(t *testing.T) {
	assert.Equal(t, defaultClockOffset, maxClockOffset(0))
	assert.Equal(t, 5*time.Second, maxClockOffset(10))
	assert.Equal(t, defaultClockOffset, maxClockOffset(3600))
}

func TestNormalizeCacheSize(t *testing.T) {
	assert.Equal(t, 16, normalizeCacheSize(1))
	assert.Equal(t, 64, normalizeCacheSize(64))
}
