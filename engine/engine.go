// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine serializes operations on the reward pool runtime, persists
// their effects and publishes their events.
package engine

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/builtin/ledger"
	"github.com/Meharab/Proof-of-Contribution/builtin/pool"
	"github.com/Meharab/Proof-of-Contribution/builtin/reverts"
	"github.com/Meharab/Proof-of-Contribution/co"
	"github.com/Meharab/Proof-of-Contribution/kv"
	"github.com/Meharab/Proof-of-Contribution/log"
	"github.com/Meharab/Proof-of-Contribution/logdb"
	"github.com/Meharab/Proof-of-Contribution/runtime"
	"github.com/Meharab/Proof-of-Contribution/state"
	"github.com/Meharab/Proof-of-Contribution/thor"
	"github.com/Meharab/Proof-of-Contribution/token"
)

var logger = log.WithContext("pkg", "engine")

// Options tunes an engine.
type Options struct {
	// MaxAttestationAge in seconds, zero disables the freshness check.
	MaxAttestationAge uint64
	// Clock returns the current unix time. Defaults to the wall clock.
	Clock func() uint64
}

// Engine is the single serialization point of all operations.
type Engine struct {
	lock   sync.Mutex
	store  kv.Store
	logDB  *logdb.LogDB
	state  *state.State
	rt     *runtime.Runtime
	domain attest.Domain

	feed      event.Feed
	scope     event.SubscriptionScope
	committed co.Signal
}

// New creates an engine over db. Events are indexed into logDB.
func New(db kv.Store, logDB *logdb.LogDB, tokens *token.Registry, domain attest.Domain, opts Options) (*Engine, error) {
	verifier, err := attest.NewVerifier(domain)
	if err != nil {
		return nil, errors.Wrap(err, "attestation domain")
	}
	if err := loadOrSaveDomain(propBucket.NewStore(db), domain); err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() uint64 { return uint64(time.Now().Unix()) }
	}
	store := stateBucket.NewStore(db)
	st := state.New(store)
	rt := runtime.New(st, domain.VerifyingContract, tokens, verifier, clock).
		SetMaxAttestationAge(opts.MaxAttestationAge)

	return &Engine{
		store:  store,
		logDB:  logDB,
		state:  st,
		rt:     rt,
		domain: domain,
	}, nil
}

// Close unsubscribes all event subscribers.
func (e *Engine) Close() {
	e.scope.Close()
}

// Domain returns the EIP-712 domain attestations must be signed under.
func (e *Engine) Domain() attest.Domain {
	return e.domain
}

// Execute runs fn as one atomic operation. It is exported for bootstrapping
// and tooling; regular callers use the typed operations.
func (e *Engine) Execute(op string, fn func(rt *runtime.Runtime) error) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	start := time.Now()
	err := e.execute(fn)
	observeOp(op, start, err)
	if err != nil {
		if reverts.IsRevertErr(err) {
			logger.Debug("operation reverted", "op", op, "err", err)
		} else {
			logger.Warn("operation failed", "op", op, "err", err)
		}
	}
	return err
}

func (e *Engine) execute(fn func(rt *runtime.Runtime) error) error {
	defer e.state.Reset()

	if err := fn(e.rt); err != nil {
		e.rt.TakeEvents()
		return err
	}
	events := e.rt.TakeEvents()

	bulk := e.store.Bulk()
	if err := e.state.Stage().Commit(bulk); err != nil {
		return errors.Wrap(err, "stage state")
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit state")
	}

	if len(events) == 0 {
		return nil
	}
	indexed := make([]*logdb.Event, 0, len(events))
	for _, ev := range events {
		indexed = append(indexed, toLogEvent(ev))
		if ev.Kind == runtime.ContributionClaimed {
			metricPayouts().Add(1)
		}
	}
	// state is already durable; the index is derived data.
	// Unindexed events carry no sequence, so subscribers never see them.
	if err := e.logDB.Insert(indexed); err != nil {
		metricIndexFailures().Add(int64(len(indexed)))
		logger.Error("failed to index events", "count", len(indexed), "err", err)
		return nil
	}
	e.feed.Send(indexed)
	e.committed.Broadcast()
	return nil
}

func (e *Engine) read(fn func(rt *runtime.Runtime) error) error {
	e.lock.Lock()
	defer e.lock.Unlock()
	return fn(e.rt)
}

func toLogEvent(ev *runtime.Event) *logdb.Event {
	return &logdb.Event{
		Kind:           string(ev.Kind),
		PoolID:         ev.PoolID,
		ContributionID: ev.ContributionID,
		Account:        ev.Account,
		Attestor:       ev.Attestor,
		Token:          ev.Token,
		Hash:           ev.Hash,
		Amount:         ev.Amount,
		Authorized:     ev.Authorized,
		Time:           ev.Time,
	}
}

// SubscribeEvents delivers the events of every successful operation to ch, one slice per operation.
// Delivery blocks the engine until ch accepts, so subscribers should buffer and drain promptly.
func (e *Engine) SubscribeEvents(ch chan<- []*logdb.Event) event.Subscription {
	return e.scope.Track(e.feed.Subscribe(ch))
}

// NewTicker returns a waiter woken after every operation that emitted events.
func (e *Engine) NewTicker() co.Waiter {
	return e.committed.NewWaiter()
}

// FilterEvents queries indexed events.
func (e *Engine) FilterEvents(ctx context.Context, filter *logdb.EventFilter) ([]*logdb.Event, error) {
	return e.logDB.FilterEvents(ctx, filter)
}

// CreatePool opens a pool funded by caller.
func (e *Engine) CreatePool(caller, tokenRef thor.Address, fund, reward *big.Int, expiresAt uint64) (p *pool.Pool, err error) {
	err = e.Execute("createPool", func(rt *runtime.Runtime) error {
		p, err = rt.CreatePool(caller, tokenRef, fund, reward, expiresAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("pool created", "id", p.ID, "creator", caller, "token", tokenRef, "fund", fund, "reward", reward)
	metricPools().Add(1)
	return p, nil
}

// ClosePool deactivates a pool. Only its creator may close it.
func (e *Engine) ClosePool(caller thor.Address, poolID uint64) (p *pool.Pool, err error) {
	err = e.Execute("closePool", func(rt *runtime.Runtime) error {
		p, err = rt.ClosePool(caller, poolID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Submit records a pending contribution.
func (e *Engine) Submit(caller thor.Address, poolID uint64, hash thor.Bytes32) (c *ledger.Contribution, err error) {
	err = e.Execute("submit", func(rt *runtime.Runtime) error {
		c, err = rt.Submit(caller, poolID, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Claim resolves a pending contribution with a signed attestation.
func (e *Engine) Claim(caller thor.Address, poolID, contributionID uint64, valid bool, timestamp uint64, sig []byte) (c *ledger.Contribution, err error) {
	err = e.Execute("claim", func(rt *runtime.Runtime) error {
		c, err = rt.Claim(caller, poolID, contributionID, valid, timestamp, sig)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("contribution resolved", "pool", poolID, "id", contributionID, "state", c.State, "attestor", c.Attestor)
	return c, nil
}

// SetAttestor grants or revokes attestation rights.
func (e *Engine) SetAttestor(caller, who thor.Address, authorized bool) error {
	if err := e.Execute("setAttestor", func(rt *runtime.Runtime) error {
		return rt.SetAttestor(caller, who, authorized)
	}); err != nil {
		return err
	}
	logger.Info("attestor updated", "attestor", who, "authorized", authorized)
	return nil
}

// Approve grants spender an allowance over caller's balance of tokenRef.
func (e *Engine) Approve(caller, tokenRef, spender thor.Address, amount *big.Int) error {
	return e.Execute("approve", func(rt *runtime.Runtime) error {
		return rt.Approve(caller, tokenRef, spender, amount)
	})
}

func (e *Engine) Owner() (owner thor.Address, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		owner, err = rt.Owner()
		return err
	})
	return
}

func (e *Engine) IsAttestor(who thor.Address) (ok bool, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		ok, err = rt.IsAttestor(who)
		return err
	})
	return
}

func (e *Engine) Attestors() (list []thor.Address, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		list, err = rt.Attestors()
		return err
	})
	return
}

func (e *Engine) GetPool(poolID uint64) (p *pool.Pool, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		p, err = rt.GetPool(poolID)
		return err
	})
	return
}

func (e *Engine) PoolCount() (count uint64, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		count, err = rt.PoolCount()
		return err
	})
	return
}

func (e *Engine) GetContribution(poolID, contributionID uint64) (c *ledger.Contribution, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		c, err = rt.GetContribution(poolID, contributionID)
		return err
	})
	return
}

func (e *Engine) ContributionCount(poolID uint64) (count uint64, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		count, err = rt.ContributionCount(poolID)
		return err
	})
	return
}

func (e *Engine) BalanceOf(tokenRef, who thor.Address) (bal *big.Int, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		bal, err = rt.BalanceOf(tokenRef, who)
		return err
	})
	return
}

func (e *Engine) Allowance(tokenRef, owner, spender thor.Address) (allowance *big.Int, err error) {
	err = e.read(func(rt *runtime.Runtime) error {
		allowance, err = rt.Allowance(tokenRef, owner, spender)
		return err
	})
	return
}
