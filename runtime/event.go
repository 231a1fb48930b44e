// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// EventKind names what happened.
type EventKind string

const (
	PoolCreated           EventKind = "PoolCreated"
	PoolClosed            EventKind = "PoolClosed"
	ContributionSubmitted EventKind = "ContributionSubmitted"
	ContributionClaimed   EventKind = "ContributionClaimed"
	ContributionRejected  EventKind = "ContributionRejected"
	AttestorUpdated       EventKind = "AttestorUpdated"
)

// Event is emitted by a successful operation.
// Fields not meaningful for a kind are left zero.
type Event struct {
	Kind           EventKind
	PoolID         uint64
	ContributionID uint64
	// Account is the creator, contributor or attestor the event is about.
	Account    thor.Address
	Attestor   thor.Address
	Token      thor.Address
	Hash       thor.Bytes32
	Amount     *big.Int
	Authorized bool
	Time       uint64
}
