// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package attestor

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// entry is the stored record of a listed attestor.
type entry struct {
	Prev *thor.Address `rlp:"nil"`
	Next *thor.Address `rlp:"nil"`
}

// encode never yields an empty value, so a stored entry marks the address as listed.
func (e *entry) encode() ([]byte, error) {
	return rlp.EncodeToBytes(e)
}

func (e *entry) decode(raw []byte) error {
	if len(raw) == 0 {
		*e = entry{}
		return nil
	}
	return rlp.DecodeBytes(raw, e)
}
