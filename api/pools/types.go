// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/Meharab/Proof-of-Contribution/builtin/ledger"
	"github.com/Meharab/Proof-of-Contribution/builtin/pool"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

type Pool struct {
	ID                    uint64                `json:"id"`
	Creator               thor.Address          `json:"creator"`
	Token                 thor.Address          `json:"token"`
	TotalFund             *math.HexOrDecimal256 `json:"totalFund"`
	RewardPerContribution *math.HexOrDecimal256 `json:"rewardPerContribution"`
	ExpiresAt             uint64                `json:"expiresAt"`
	ContributionsCount    uint64                `json:"contributionsCount"`
	Active                bool                  `json:"active"`
}

func convertPool(p *pool.Pool) *Pool {
	return &Pool{
		ID:                    p.ID,
		Creator:               p.Creator,
		Token:                 p.Token,
		TotalFund:             (*math.HexOrDecimal256)(p.TotalFund),
		RewardPerContribution: (*math.HexOrDecimal256)(p.RewardPerContribution),
		ExpiresAt:             p.ExpiresAt,
		ContributionsCount:    p.ContributionsCount,
		Active:                p.Active,
	}
}

type Contribution struct {
	PoolID      uint64        `json:"poolId"`
	ID          uint64        `json:"id"`
	Hash        thor.Bytes32  `json:"contributionHash"`
	Contributor thor.Address  `json:"contributor"`
	State       string        `json:"state"`
	Attestor    *thor.Address `json:"attestor"`
}

func convertContribution(c *ledger.Contribution) *Contribution {
	res := &Contribution{
		PoolID:      c.PoolID,
		ID:          c.ID,
		Hash:        c.Hash,
		Contributor: c.Contributor,
		State:       c.State.String(),
	}
	if c.State != ledger.Pending {
		attestor := c.Attestor
		res.Attestor = &attestor
	}
	return res
}

type PoolCount struct {
	Count uint64 `json:"count"`
}

type CreatePool struct {
	Caller    thor.Address          `json:"caller"`
	Token     thor.Address          `json:"token"`
	Fund      *math.HexOrDecimal256 `json:"fund"`
	Reward    *math.HexOrDecimal256 `json:"reward"`
	ExpiresAt uint64                `json:"expiresAt"`
}

type ClosePool struct {
	Caller thor.Address `json:"caller"`
}

// Submit names the contribution either by its content hash or by the pointer
// the hash is computed from.
type Submit struct {
	Caller  thor.Address  `json:"caller"`
	Hash    *thor.Bytes32 `json:"contributionHash"`
	Pointer *string       `json:"pointer"`
}

type Claim struct {
	Caller    thor.Address  `json:"caller"`
	Valid     bool          `json:"valid"`
	Timestamp uint64        `json:"timestamp"`
	Signature hexutil.Bytes `json:"signature"`
}
