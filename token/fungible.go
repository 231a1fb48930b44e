// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Meharab/Proof-of-Contribution/state"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

var totalSupplyKey = thor.Blake2b([]byte("total-supply"))

func balanceKey(who thor.Address) thor.Bytes32 {
	return thor.BytesToBytes32(append([]byte("b"), who.Bytes()...))
}

func allowanceKey(owner, spender thor.Address) thor.Bytes32 {
	return thor.Keccak256(owner.Bytes(), spender.Bytes())
}

// Fungible is an external fungible token whose ledger lives in storage of its own address.
type Fungible struct {
	addr thor.Address
}

var (
	_ Token    = (*Fungible)(nil)
	_ Approver = (*Fungible)(nil)
)

// NewFungible creates the token bound to addr.
func NewFungible(addr thor.Address) *Fungible {
	return &Fungible{addr}
}

// Address returns the token reference.
func (f *Fungible) Address() thor.Address {
	return f.addr
}

func (f *Fungible) getAmount(st *state.State, key thor.Bytes32) (*big.Int, error) {
	v := new(big.Int)
	if err := st.DecodeStorage(f.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, v)
	}); err != nil {
		return nil, err
	}
	return v, nil
}

func (f *Fungible) setAmount(st *state.State, key thor.Bytes32, v *big.Int) error {
	return st.EncodeStorage(f.addr, key, func() ([]byte, error) {
		if v.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(v)
	})
}

// TotalSupply returns the minted amount.
func (f *Fungible) TotalSupply(st *state.State) (*big.Int, error) {
	return f.getAmount(st, totalSupplyKey)
}

func (f *Fungible) BalanceOf(st *state.State, who thor.Address) (*big.Int, error) {
	return f.getAmount(st, balanceKey(who))
}

// Mint credits amount to who.
func (f *Fungible) Mint(st *state.State, to thor.Address, amount *big.Int) error {
	supply, err := f.TotalSupply(st)
	if err != nil {
		return err
	}
	bal, err := f.BalanceOf(st, to)
	if err != nil {
		return err
	}
	if err := f.setAmount(st, totalSupplyKey, supply.Add(supply, amount)); err != nil {
		return err
	}
	return f.setAmount(st, balanceKey(to), bal.Add(bal, amount))
}

// Approve sets the amount spender may move out of owner's balance.
func (f *Fungible) Approve(st *state.State, owner, spender thor.Address, amount *big.Int) error {
	return f.setAmount(st, allowanceKey(owner, spender), amount)
}

// Allowance returns the amount spender may still move out of owner's balance.
func (f *Fungible) Allowance(st *state.State, owner, spender thor.Address) (*big.Int, error) {
	return f.getAmount(st, allowanceKey(owner, spender))
}

func (f *Fungible) Transfer(st *state.State, from, to thor.Address, amount *big.Int) error {
	fromBal, err := f.BalanceOf(st, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := f.setAmount(st, balanceKey(from), fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := f.BalanceOf(st, to)
	if err != nil {
		return err
	}
	return f.setAmount(st, balanceKey(to), toBal.Add(toBal, amount))
}

func (f *Fungible) TransferFrom(st *state.State, spender, from, to thor.Address, amount *big.Int) error {
	allowance, err := f.Allowance(st, from, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := f.Transfer(st, from, to, amount); err != nil {
		return err
	}
	return f.setAmount(st, allowanceKey(from, spender), allowance.Sub(allowance, amount))
}
