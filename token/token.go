// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the currencies a pool can be funded with: the native
// currency kept in account balances and fungible tokens with allowances.
package token

import (
	"errors"
	"math/big"

	"github.com/Meharab/Proof-of-Contribution/state"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

// Token moves amounts of one currency between accounts.
// Implementations may call back into the runtime while transferring.
type Token interface {
	BalanceOf(st *state.State, who thor.Address) (*big.Int, error)
	Transfer(st *state.State, from, to thor.Address, amount *big.Int) error
	// TransferFrom moves amount on behalf of spender, consuming the allowance from granted to spender.
	TransferFrom(st *state.State, spender, from, to thor.Address, amount *big.Int) error
}

// Approver is a token whose holders can let a spender move part of their balance.
type Approver interface {
	Approve(st *state.State, owner, spender thor.Address, amount *big.Int) error
	Allowance(st *state.State, owner, spender thor.Address) (*big.Int, error)
}

// Registry resolves token references.
type Registry struct {
	tokens map[thor.Address]Token
}

// NewRegistry creates a registry with the native token registered at thor.NativeToken.
func NewRegistry() *Registry {
	return &Registry{
		tokens: map[thor.Address]Token{
			thor.NativeToken: Native{},
		},
	}
}

// Register binds a token implementation to a reference.
func (r *Registry) Register(ref thor.Address, t Token) {
	r.tokens[ref] = t
}

// Resolve returns the token bound to ref.
func (r *Registry) Resolve(ref thor.Address) (Token, bool) {
	t, ok := r.tokens[ref]
	return t, ok
}

// Native is the currency held in account balances.
type Native struct{}

func (Native) BalanceOf(st *state.State, who thor.Address) (*big.Int, error) {
	return st.GetBalance(who)
}

func (Native) Transfer(st *state.State, from, to thor.Address, amount *big.Int) error {
	ok, err := st.SubBalance(from, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientBalance
	}
	return st.AddBalance(to, amount)
}

// TransferFrom only lets an account move its own native balance.
func (n Native) TransferFrom(st *state.State, spender, from, to thor.Address, amount *big.Int) error {
	if spender != from {
		return ErrInsufficientAllowance
	}
	return n.Transfer(st, from, to, amount)
}
