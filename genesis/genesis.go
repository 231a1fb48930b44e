// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis prepares the initial state of a node: the attestor registry
// owner, initial attestors, native balances and fungible tokens.
package genesis

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/runtime"
	"github.com/Meharab/Proof-of-Contribution/thor"
	"github.com/Meharab/Proof-of-Contribution/token"
)

var markerKey = thor.Blake2b([]byte("genesis-id"))

// ErrMismatch is returned when the store was initialized by a different genesis.
var ErrMismatch = errors.New("genesis mismatch")

// Genesis is a validated launch configuration.
type Genesis struct {
	name   string
	id     thor.Bytes32
	launch *launch
}

// New validates the config and creates a genesis.
func New(name string, cfg *Config) (*Genesis, error) {
	l, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	data, err := rlp.EncodeToBytes(l)
	if err != nil {
		return nil, err
	}
	return &Genesis{
		name:   name,
		id:     thor.Keccak256(data),
		launch: l,
	}, nil
}

// ID identifies the launch configuration.
func (g *Genesis) ID() thor.Bytes32 { return g.id }

// Name returns the network name.
func (g *Genesis) Name() string { return g.name }

// Owner returns the initial attestor registry owner.
func (g *Genesis) Owner() thor.Address { return g.launch.Owner }

// Domain returns the attestation domain of the network.
func (g *Genesis) Domain() attest.Domain {
	return attest.NewDomain(g.launch.ChainID, g.launch.Contract)
}

// NewTokenRegistry returns a registry with the native token and every genesis token.
func (g *Genesis) NewTokenRegistry() *token.Registry {
	reg := token.NewRegistry()
	for _, t := range g.launch.Tokens {
		reg.Register(t.Address, token.NewFungible(t.Address))
	}
	return reg
}

// Setup applies the genesis through eng unless it was applied before.
// It reports whether state was written.
func (g *Genesis) Setup(eng *engine.Engine) (applied bool, err error) {
	err = eng.Execute("genesis", func(rt *runtime.Runtime) error {
		raw, err := rt.State().GetStorage(rt.Address(), markerKey)
		if err != nil {
			return err
		}
		if len(raw) > 0 {
			if thor.BytesToBytes32(raw) != g.id {
				return errors.WithMessagef(ErrMismatch, "want %v, have %v", g.id, thor.BytesToBytes32(raw))
			}
			return nil
		}
		if err := g.apply(rt); err != nil {
			return err
		}
		rt.State().SetStorage(rt.Address(), markerKey, g.id.Bytes())
		applied = true
		return nil
	})
	return
}

func (g *Genesis) apply(rt *runtime.Runtime) error {
	l := g.launch
	st := rt.State()
	if err := rt.SetOwner(l.Owner); err != nil {
		return err
	}
	for _, a := range l.Attestors {
		if err := rt.SetAttestor(l.Owner, a, true); err != nil {
			return errors.Wrapf(err, "authorize %v", a)
		}
	}
	for _, a := range l.Accounts {
		if err := st.AddBalance(a.Address, a.Amount); err != nil {
			return err
		}
	}
	for _, t := range l.Tokens {
		tok, ok := rt.Tokens().Resolve(t.Address)
		if !ok {
			return errors.Errorf("token %v not registered", t.Address)
		}
		fungible, ok := tok.(*token.Fungible)
		if !ok {
			return errors.Errorf("token %v is not a fungible token", t.Address)
		}
		for _, b := range t.Balances {
			if err := fungible.Mint(st, b.Address, b.Amount); err != nil {
				return err
			}
		}
		for _, ap := range t.Approvals {
			if err := fungible.Approve(st, ap.Owner, ap.Spender, ap.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}
