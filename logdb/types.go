// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// Event is an indexed engine event.
type Event struct {
	Seq            uint64
	Kind           string
	PoolID         uint64
	ContributionID uint64
	Account        thor.Address
	Attestor       thor.Address
	Token          thor.Address
	Hash           thor.Bytes32
	Amount         *big.Int // nil when the event moves no funds
	Authorized     bool
	Time           uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds event time, inclusive on both ends. To < From means unbounded.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria is a conjunction of conditions; nil fields match anything.
type EventCriteria struct {
	Kind           *string
	PoolID         *uint64
	ContributionID *uint64
	Account        *thor.Address
}

// EventFilter matches events satisfying any of the criteria.
type EventFilter struct {
	// AfterSeq skips events with a sequence number not greater than it.
	AfterSeq    uint64
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}
