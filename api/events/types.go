// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/url"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/logdb"
	"github.com/Meharab/Proof-of-Contribution/runtime"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

type Event struct {
	Seq            uint64                `json:"seq"`
	Kind           string                `json:"kind"`
	PoolID         uint64                `json:"poolId"`
	ContributionID uint64                `json:"contributionId,omitempty"`
	Account        thor.Address          `json:"account"`
	Attestor       *thor.Address         `json:"attestor,omitempty"`
	Token          *thor.Address         `json:"token,omitempty"`
	Hash           *thor.Bytes32         `json:"contributionHash,omitempty"`
	Amount         *math.HexOrDecimal256 `json:"amount,omitempty"`
	Authorized     *bool                 `json:"authorized,omitempty"`
	Time           uint64                `json:"time"`
}

// ConvertEvent renders an indexed event, leaving out the fields its kind does not carry.
func ConvertEvent(ev *logdb.Event) *Event {
	res := &Event{
		Seq:            ev.Seq,
		Kind:           ev.Kind,
		PoolID:         ev.PoolID,
		ContributionID: ev.ContributionID,
		Account:        ev.Account,
		Amount:         (*math.HexOrDecimal256)(ev.Amount),
		Time:           ev.Time,
	}
	tok, hash, attestor, authorized := ev.Token, ev.Hash, ev.Attestor, ev.Authorized
	switch runtime.EventKind(ev.Kind) {
	case runtime.PoolCreated:
		res.Token = &tok
	case runtime.ContributionSubmitted:
		res.Hash = &hash
	case runtime.ContributionClaimed:
		res.Token = &tok
		res.Hash = &hash
		res.Attestor = &attestor
	case runtime.ContributionRejected:
		res.Hash = &hash
		res.Attestor = &attestor
	case runtime.AttestorUpdated:
		res.Authorized = &authorized
	}
	return res
}

// ParseCriteria reads the pool, contribution, account and kind query values.
// It returns nil when none is given.
func ParseCriteria(q url.Values) (*logdb.EventCriteria, error) {
	var (
		criteria logdb.EventCriteria
		set      bool
	)
	if s := q.Get("pool"); s != "" {
		v, err := utils.StringToUint64(s)
		if err != nil {
			return nil, errors.WithMessage(err, "pool")
		}
		criteria.PoolID = &v
		set = true
	}
	if s := q.Get("contribution"); s != "" {
		v, err := utils.StringToUint64(s)
		if err != nil {
			return nil, errors.WithMessage(err, "contribution")
		}
		criteria.ContributionID = &v
		set = true
	}
	if s := q.Get("account"); s != "" {
		v, err := thor.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "account")
		}
		criteria.Account = &v
		set = true
	}
	if s := q.Get("kind"); s != "" {
		if !validKind(s) {
			return nil, errors.Errorf("kind: unknown event kind %q", s)
		}
		criteria.Kind = &s
		set = true
	}
	if !set {
		return nil, nil
	}
	return &criteria, nil
}

func validKind(s string) bool {
	switch runtime.EventKind(s) {
	case runtime.PoolCreated,
		runtime.PoolClosed,
		runtime.ContributionSubmitted,
		runtime.ContributionClaimed,
		runtime.ContributionRejected,
		runtime.AttestorUpdated:
		return true
	}
	return false
}
