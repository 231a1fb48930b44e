// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// Pool is a sponsor-funded reward budget.
type Pool struct {
	ID                    uint64 `rlp:"-"`
	Creator               thor.Address
	Token                 thor.Address
	TotalFund             *big.Int
	RewardPerContribution *big.Int
	ExpiresAt             uint64
	ContributionsCount    uint64
	Active                bool
}

// IsOpen reports whether the pool accepts submissions and claims at the given unix time.
// A pool is expired from expiresAt on.
func (p *Pool) IsOpen(now uint64) bool {
	return p.Active && (p.ExpiresAt == 0 || now < p.ExpiresAt)
}
