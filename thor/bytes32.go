// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Bytes32 is a 32 byte word: a hash, a storage key or an encoded ABI value.
type Bytes32 [32]byte

var (
	_ encoding.TextMarshaler   = Bytes32{}
	_ encoding.TextUnmarshaler = (*Bytes32)(nil)
)

func (b Bytes32) String() string {
	return hexutil.Encode(b[:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// MarshalText encodes b as 0x-prefixed hex.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts hex with or without the 0x prefix.
func (b *Bytes32) UnmarshalText(text []byte) error {
	return decodeFixedHex(string(text), b[:])
}

// ParseBytes32 decodes 64 hex digits, optionally 0x-prefixed.
func ParseBytes32(s string) (b Bytes32, err error) {
	err = decodeFixedHex(s, b[:])
	return
}

func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesToBytes32 right-aligns b, cropping from the left when it is too long.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}

// Uint64Word is v as a big-endian uint256 word.
func Uint64Word(v uint64) Bytes32 {
	return uint256.NewInt(v).Bytes32()
}

// BoolWord is the uint256 word of b, 1 for true.
func BoolWord(b bool) Bytes32 {
	if b {
		return Uint64Word(1)
	}
	return Bytes32{}
}
