// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/builtin/attestor"
	"github.com/Meharab/Proof-of-Contribution/builtin/ledger"
	"github.com/Meharab/Proof-of-Contribution/builtin/pool"
	"github.com/Meharab/Proof-of-Contribution/builtin/reverts"
	"github.com/Meharab/Proof-of-Contribution/state"
	"github.com/Meharab/Proof-of-Contribution/thor"
	"github.com/Meharab/Proof-of-Contribution/token"
)

// Runtime executes operations against a state. It holds no lock: callers
// serialize access, and token implementations may call back into it while a
// transfer is in progress.
type Runtime struct {
	addr      thor.Address
	state     *state.State
	tokens    *token.Registry
	verifier  *attest.Verifier
	attestors *attestor.Registry
	pools     *pool.Registry
	ledger    *ledger.Ledger
	clock     func() uint64

	maxAttestationAge uint64
	events            []*Event
}

// New create a Runtime object. addr is the custody address that holds pool funds
// and is also the verifying contract of the attestation domain.
func New(
	st *state.State,
	addr thor.Address,
	tokens *token.Registry,
	verifier *attest.Verifier,
	clock func() uint64,
) *Runtime {
	pools := pool.New(addr, st)
	return &Runtime{
		addr:      addr,
		state:     st,
		tokens:    tokens,
		verifier:  verifier,
		attestors: attestor.New(addr, st),
		pools:     pools,
		ledger:    ledger.New(addr, st, pools),
		clock:     clock,
	}
}

// SetMaxAttestationAge bounds how far an attestation timestamp may be from now.
// Zero disables the check. Returns this runtime.
func (rt *Runtime) SetMaxAttestationAge(seconds uint64) *Runtime {
	rt.maxAttestationAge = seconds
	return rt
}

func (rt *Runtime) State() *state.State        { return rt.state }
func (rt *Runtime) Address() thor.Address      { return rt.addr }
func (rt *Runtime) Tokens() *token.Registry    { return rt.tokens }
func (rt *Runtime) Verifier() *attest.Verifier { return rt.verifier }

// TakeEvents returns the events emitted since the last call and forgets them.
func (rt *Runtime) TakeEvents() []*Event {
	events := rt.events
	rt.events = nil
	return events
}

func (rt *Runtime) emit(ev *Event) {
	ev.Time = rt.clock()
	rt.events = append(rt.events, ev)
}

// atomic runs fn inside a checkpoint. If fn fails, its state changes and events are dropped.
func (rt *Runtime) atomic(fn func() error) error {
	checkpoint := rt.state.NewCheckpoint()
	nEvents := len(rt.events)
	if err := fn(); err != nil {
		rt.state.RevertTo(checkpoint)
		rt.events = rt.events[:nEvents]
		return err
	}
	return nil
}

func validAmount(v *big.Int) bool {
	if v == nil || v.Sign() < 0 {
		return false
	}
	_, overflow := uint256.FromBig(v)
	return !overflow
}

func transferFailed(err error) error {
	return errors.WithMessage(reverts.ErrTransferFailed, err.Error())
}

// CreatePool pulls fund from caller into custody and opens a pool paying reward per
// accepted contribution. expiresAt is a unix time, zero for never.
func (rt *Runtime) CreatePool(caller, tokenRef thor.Address, fund, reward *big.Int, expiresAt uint64) (p *pool.Pool, err error) {
	if !validAmount(fund) || !validAmount(reward) {
		return nil, reverts.ErrInvalidParams
	}
	err = rt.atomic(func() error {
		tok, ok := rt.tokens.Resolve(tokenRef)
		if !ok {
			return errors.WithMessagef(reverts.ErrTransferFailed, "unknown token %v", tokenRef)
		}
		if p, err = rt.pools.Create(caller, tokenRef, fund, reward, expiresAt); err != nil {
			return err
		}
		var terr error
		if tokenRef == thor.NativeToken {
			terr = tok.Transfer(rt.state, caller, rt.addr, fund)
		} else {
			terr = tok.TransferFrom(rt.state, rt.addr, caller, rt.addr, fund)
		}
		if terr != nil {
			return transferFailed(terr)
		}
		rt.emit(&Event{
			Kind:    PoolCreated,
			PoolID:  p.ID,
			Account: caller,
			Token:   tokenRef,
			Amount:  new(big.Int).Set(fund),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ClosePool stops a pool from accepting submissions and claims.
func (rt *Runtime) ClosePool(caller thor.Address, poolID uint64) (p *pool.Pool, err error) {
	err = rt.atomic(func() error {
		wasActive := false
		if cur, err := rt.pools.Get(poolID); err == nil {
			wasActive = cur.Active
		}
		if p, err = rt.pools.Close(caller, poolID); err != nil {
			return err
		}
		if wasActive {
			rt.emit(&Event{Kind: PoolClosed, PoolID: poolID, Account: caller})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Submit records a pending contribution from caller.
func (rt *Runtime) Submit(caller thor.Address, poolID uint64, hash thor.Bytes32) (c *ledger.Contribution, err error) {
	err = rt.atomic(func() error {
		if c, err = rt.ledger.Submit(poolID, caller, hash, rt.clock()); err != nil {
			return err
		}
		rt.emit(&Event{
			Kind:           ContributionSubmitted,
			PoolID:         poolID,
			ContributionID: c.ID,
			Account:        caller,
			Hash:           hash,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (rt *Runtime) checkFreshness(timestamp uint64) error {
	if rt.maxAttestationAge == 0 {
		return nil
	}
	now := rt.clock()
	if timestamp > now && timestamp-now > rt.maxAttestationAge {
		return errors.WithMessage(reverts.ErrInvalidAttestation, "attestation from the future")
	}
	if timestamp < now && now-timestamp > rt.maxAttestationAge {
		return errors.WithMessage(reverts.ErrInvalidAttestation, "attestation too old")
	}
	return nil
}

// Claim resolves a pending contribution with an attestor's signed verdict.
// Anyone may present the attestation; the reward always goes to the recorded contributor.
func (rt *Runtime) Claim(caller thor.Address, poolID, contributionID uint64, valid bool, timestamp uint64, sig []byte) (c *ledger.Contribution, err error) {
	err = rt.atomic(func() error {
		p, err := rt.pools.Get(poolID)
		if err != nil {
			return err
		}
		if c, err = rt.ledger.Get(poolID, contributionID); err != nil {
			return err
		}
		if c.State != ledger.Pending {
			return reverts.AlreadyClaimed(poolID, contributionID)
		}
		if !p.IsOpen(rt.clock()) {
			return reverts.ErrPoolClosedOrExpired
		}

		signer, err := rt.verifier.Verify(&attest.Attestation{
			PoolID:           poolID,
			ContributionID:   contributionID,
			ContributionHash: c.Hash,
			Contributor:      c.Contributor,
			Valid:            valid,
			Timestamp:        timestamp,
		}, sig, rt.attestors)
		if err != nil {
			return err
		}
		if err := rt.checkFreshness(timestamp); err != nil {
			return err
		}

		if !valid {
			if c, err = rt.ledger.Resolve(poolID, contributionID, ledger.Rejected, signer); err != nil {
				return err
			}
			rt.emit(&Event{
				Kind:           ContributionRejected,
				PoolID:         poolID,
				ContributionID: contributionID,
				Account:        c.Contributor,
				Attestor:       signer,
				Hash:           c.Hash,
			})
			return nil
		}

		tok, ok := rt.tokens.Resolve(p.Token)
		if !ok {
			return errors.WithMessagef(reverts.ErrTransferFailed, "unknown token %v", p.Token)
		}
		if p, err = rt.pools.Debit(poolID); err != nil {
			return err
		}
		if c, err = rt.ledger.Resolve(poolID, contributionID, ledger.Claimed, signer); err != nil {
			return err
		}
		// effects are in place; the token may call back and will see the contribution claimed
		if err := tok.Transfer(rt.state, rt.addr, c.Contributor, p.RewardPerContribution); err != nil {
			return transferFailed(err)
		}
		rt.emit(&Event{
			Kind:           ContributionClaimed,
			PoolID:         poolID,
			ContributionID: contributionID,
			Account:        c.Contributor,
			Attestor:       signer,
			Token:          p.Token,
			Hash:           c.Hash,
			Amount:         new(big.Int).Set(p.RewardPerContribution),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SetAttestor grants or revokes attestation rights. Only the owner may call it.
func (rt *Runtime) SetAttestor(caller, who thor.Address, authorized bool) error {
	return rt.atomic(func() error {
		changed, err := rt.attestors.SetAttestor(caller, who, authorized)
		if err != nil {
			return err
		}
		if changed {
			rt.emit(&Event{Kind: AttestorUpdated, Account: who, Authorized: authorized})
		}
		return nil
	})
}

// Approve lets spender move up to amount of caller's balance of tokenRef, replacing
// any previous allowance. Funding a pool with a fungible token needs an allowance
// granted to the custody address first.
func (rt *Runtime) Approve(caller, tokenRef, spender thor.Address, amount *big.Int) error {
	if !validAmount(amount) {
		return reverts.ErrInvalidParams
	}
	approver, err := rt.approver(tokenRef)
	if err != nil {
		return err
	}
	return rt.atomic(func() error {
		return approver.Approve(rt.state, caller, spender, amount)
	})
}

// Allowance returns what spender may still move out of owner's balance of tokenRef.
func (rt *Runtime) Allowance(tokenRef, owner, spender thor.Address) (*big.Int, error) {
	approver, err := rt.approver(tokenRef)
	if err != nil {
		return nil, err
	}
	return approver.Allowance(rt.state, owner, spender)
}

func (rt *Runtime) approver(tokenRef thor.Address) (token.Approver, error) {
	tok, ok := rt.tokens.Resolve(tokenRef)
	if !ok {
		return nil, errors.WithMessagef(reverts.ErrInvalidParams, "unknown token %v", tokenRef)
	}
	approver, ok := tok.(token.Approver)
	if !ok {
		return nil, errors.WithMessagef(reverts.ErrInvalidParams, "token %v has no allowances", tokenRef)
	}
	return approver, nil
}

// SetOwner installs the attestor registry owner. It is used when applying genesis.
func (rt *Runtime) SetOwner(owner thor.Address) error {
	return rt.attestors.SetOwner(owner)
}

func (rt *Runtime) Owner() (thor.Address, error) {
	return rt.attestors.Owner()
}

func (rt *Runtime) IsAttestor(who thor.Address) (bool, error) {
	return rt.attestors.IsAttestor(who)
}

func (rt *Runtime) Attestors() ([]thor.Address, error) {
	return rt.attestors.All()
}

func (rt *Runtime) GetPool(poolID uint64) (*pool.Pool, error) {
	return rt.pools.Get(poolID)
}

func (rt *Runtime) PoolCount() (uint64, error) {
	return rt.pools.Count()
}

func (rt *Runtime) GetContribution(poolID, contributionID uint64) (*ledger.Contribution, error) {
	return rt.ledger.Get(poolID, contributionID)
}

func (rt *Runtime) ContributionCount(poolID uint64) (uint64, error) {
	return rt.ledger.Count(poolID)
}

// BalanceOf returns who's balance of the token referenced by tokenRef.
func (rt *Runtime) BalanceOf(tokenRef, who thor.Address) (*big.Int, error) {
	tok, ok := rt.tokens.Resolve(tokenRef)
	if !ok {
		return nil, errors.WithMessagef(reverts.ErrInvalidParams, "unknown token %v", tokenRef)
	}
	return tok.BalanceOf(rt.state, who)
}
