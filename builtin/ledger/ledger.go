// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/builtin/pool"
	"github.com/Meharab/Proof-of-Contribution/builtin/reverts"
	"github.com/Meharab/Proof-of-Contribution/state"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

func contributionKey(poolID, id uint64) thor.Bytes32 {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], poolID)
	binary.BigEndian.PutUint64(b[8:], id)
	return thor.Blake2b([]byte("contribution"), b[:])
}

// Ledger records contributions per pool. Ids come from the pool's own counter.
type Ledger struct {
	addr  thor.Address
	state *state.State
	pools *pool.Registry
}

// New create a new instance.
func New(addr thor.Address, state *state.State, pools *pool.Registry) *Ledger {
	return &Ledger{addr, state, pools}
}

// Get returns the contribution.
func (l *Ledger) Get(poolID, id uint64) (*Contribution, error) {
	var (
		c     Contribution
		found bool
	)
	if err := l.state.DecodeStorage(l.addr, contributionKey(poolID, id), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		found = true
		return rlp.DecodeBytes(raw, &c)
	}); err != nil {
		return nil, errors.Wrap(err, "decode contribution")
	}
	if !found {
		return nil, reverts.ErrContributionNotFound
	}
	c.PoolID, c.ID = poolID, id
	return &c, nil
}

func (l *Ledger) set(c *Contribution) error {
	return l.state.EncodeStorage(l.addr, contributionKey(c.PoolID, c.ID), func() ([]byte, error) {
		return rlp.EncodeToBytes(c)
	})
}

// Count returns the number of contributions accepted by the pool so far.
func (l *Ledger) Count(poolID uint64) (uint64, error) {
	p, err := l.pools.Get(poolID)
	if err != nil {
		return 0, err
	}
	return p.ContributionsCount, nil
}

// Submit records a pending contribution. now is the current unix time.
func (l *Ledger) Submit(poolID uint64, contributor thor.Address, hash thor.Bytes32, now uint64) (*Contribution, error) {
	p, err := l.pools.Get(poolID)
	if err != nil {
		return nil, err
	}
	if !p.IsOpen(now) {
		return nil, reverts.ErrPoolClosedOrExpired
	}
	id, err := l.pools.NextContributionID(poolID)
	if err != nil {
		return nil, err
	}
	c := &Contribution{
		PoolID:      poolID,
		ID:          id,
		Hash:        hash,
		Contributor: contributor,
		State:       Pending,
	}
	if err := l.set(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Resolve moves a pending contribution into a terminal state.
func (l *Ledger) Resolve(poolID, id uint64, to State, attestor thor.Address) (*Contribution, error) {
	if to != Rejected && to != Claimed {
		return nil, errors.Errorf("invalid target state %v", to)
	}
	c, err := l.Get(poolID, id)
	if err != nil {
		return nil, err
	}
	if c.State != Pending {
		return nil, reverts.AlreadyClaimed(poolID, id)
	}
	c.State = to
	c.Attestor = attestor
	if err := l.set(c); err != nil {
		return nil, err
	}
	return c, nil
}
