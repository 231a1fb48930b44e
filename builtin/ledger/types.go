// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// State is the lifecycle state of a contribution.
type State uint8

const (
	Pending State = iota
	Rejected
	Claimed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Rejected:
		return "rejected"
	case Claimed:
		return "claimed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// MarshalJSON implements json.Marshaler.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Contribution is a contributor's claim to have performed work.
type Contribution struct {
	PoolID      uint64 `rlp:"-"`
	ID          uint64 `rlp:"-"`
	Hash        thor.Bytes32
	Contributor thor.Address
	State       State
	Attestor    thor.Address
}
