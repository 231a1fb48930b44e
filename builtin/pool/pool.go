// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/builtin/reverts"
	"github.com/Meharab/Proof-of-Contribution/state"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

var countKey = thor.Blake2b([]byte("pool-count"))

func poolKey(id uint64) thor.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return thor.Blake2b([]byte("pool"), b[:])
}

// Registry stores pools. Funds themselves are held by the token ledgers under
// the registry address; the registry only keeps the per-pool bookkeeping.
type Registry struct {
	addr  thor.Address
	state *state.State
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Registry {
	return &Registry{addr, state}
}

// Count returns the number of pools ever created, which is also the last assigned id.
func (r *Registry) Count() (count uint64, err error) {
	err = r.state.DecodeStorage(r.addr, countKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &count)
	})
	return
}

func (r *Registry) setCount(count uint64) error {
	return r.state.EncodeStorage(r.addr, countKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(count)
	})
}

// Get returns the pool with the given id.
func (r *Registry) Get(id uint64) (*Pool, error) {
	var (
		p     Pool
		found bool
	)
	if err := r.state.DecodeStorage(r.addr, poolKey(id), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		found = true
		return rlp.DecodeBytes(raw, &p)
	}); err != nil {
		return nil, errors.Wrap(err, "decode pool")
	}
	if !found {
		return nil, reverts.ErrPoolNotFound
	}
	p.ID = id
	return &p, nil
}

func (r *Registry) set(p *Pool) error {
	return r.state.EncodeStorage(r.addr, poolKey(p.ID), func() ([]byte, error) {
		return rlp.EncodeToBytes(p)
	})
}

// Create records a new active pool and returns it. The deposit must already be in custody.
func (r *Registry) Create(creator, token thor.Address, fund, reward *big.Int, expiresAt uint64) (*Pool, error) {
	if fund == nil || reward == nil || fund.Sign() < 0 || reward.Sign() < 0 {
		return nil, reverts.ErrInvalidParams
	}
	count, err := r.Count()
	if err != nil {
		return nil, err
	}
	p := &Pool{
		ID:                    count + 1,
		Creator:               creator,
		Token:                 token,
		TotalFund:             new(big.Int).Set(fund),
		RewardPerContribution: new(big.Int).Set(reward),
		ExpiresAt:             expiresAt,
		Active:                true,
	}
	if err := r.set(p); err != nil {
		return nil, err
	}
	if err := r.setCount(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Close deactivates a pool. Only the creator may close it.
func (r *Registry) Close(caller thor.Address, id uint64) (*Pool, error) {
	p, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if p.Creator != caller {
		return nil, reverts.ErrUnauthorized
	}
	if !p.Active {
		return p, nil
	}
	p.Active = false
	if err := r.set(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Debit takes one reward out of the pool fund and returns the updated pool.
func (r *Registry) Debit(id uint64) (*Pool, error) {
	p, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if p.TotalFund.Cmp(p.RewardPerContribution) < 0 {
		return nil, reverts.ErrInsufficientFunds
	}
	p.TotalFund.Sub(p.TotalFund, p.RewardPerContribution)
	if err := r.set(p); err != nil {
		return nil, err
	}
	return p, nil
}

// NextContributionID bumps the contribution counter of the pool and returns the new id.
func (r *Registry) NextContributionID(id uint64) (uint64, error) {
	p, err := r.Get(id)
	if err != nil {
		return 0, err
	}
	p.ContributionsCount++
	if err := r.set(p); err != nil {
		return 0, err
	}
	return p.ContributionsCount, nil
}
