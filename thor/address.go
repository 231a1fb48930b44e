// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding"
	"encoding/hex"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AddressLength length of address in bytes.
const AddressLength = common.AddressLength

// Address identifies an account, a token or the contract itself.
type Address common.Address

var (
	_ encoding.TextMarshaler   = Address{}
	_ encoding.TextUnmarshaler = (*Address)(nil)
)

func (a Address) String() string {
	return hexutil.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// Word is the address left-padded to a 32 byte ABI word.
func (a Address) Word() Bytes32 {
	return BytesToBytes32(a[:])
}

// MarshalText encodes a as 0x-prefixed hex.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts hex with or without the 0x prefix.
func (a *Address) UnmarshalText(text []byte) error {
	return decodeFixedHex(string(text), a[:])
}

// ParseAddress decodes 40 hex digits, optionally 0x-prefixed.
func ParseAddress(s string) (addr Address, err error) {
	err = decodeFixedHex(s, addr[:])
	return
}

func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress right-aligns b, cropping from the left when it is too long.
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToAddress(b))
}

// decodeFixedHex fills out from s, which must hold exactly len(out) bytes.
func decodeFixedHex(s string, out []byte) error {
	switch len(s) {
	case len(out) * 2:
	case len(out)*2 + 2:
		if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
			return errors.New("invalid prefix")
		}
		s = s[2:]
	default:
		return errors.New("invalid length")
	}
	_, err := hex.Decode(out, []byte(s))
	return err
}
