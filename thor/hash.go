// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"sync"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// hashers recycles hash states of one kind.
type hashers struct {
	pool sync.Pool
}

func newHashers(create func() hash.Hash) *hashers {
	return &hashers{sync.Pool{New: func() any { return create() }}}
}

func (hs *hashers) sum(data [][]byte) (h Bytes32) {
	hasher := hs.pool.Get().(hash.Hash)
	for _, b := range data {
		hasher.Write(b)
	}
	hasher.Sum(h[:0])
	hasher.Reset()
	hs.pool.Put(hasher)
	return
}

var (
	keccakHashers  = newHashers(sha3.NewLegacyKeccak256)
	blake2bHashers = newHashers(func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	})
)

// Keccak256 is the legacy keccak-256 hash every signing digest is built from.
func Keccak256(data ...[]byte) Bytes32 {
	return keccakHashers.sum(data)
}

// Blake2b is blake2b-256. It derives storage keys only, never anything
// that leaves the node.
func Blake2b(data ...[]byte) Bytes32 {
	return blake2bHashers.sum(data)
}
