// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package attestor

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Meharab/Proof-of-Contribution/builtin/reverts"
	"github.com/Meharab/Proof-of-Contribution/state"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

var (
	ownerKey = thor.Blake2b([]byte("attestor-owner"))
	headKey  = thor.Blake2b([]byte("attestor-head"))
	tailKey  = thor.Blake2b([]byte("attestor-tail"))
)

func entryKey(addr thor.Address) thor.Bytes32 {
	return thor.Blake2b([]byte("attestor"), addr.Bytes())
}

// Registry keeps the set of identities allowed to sign attestations.
// Authorized identities are kept in a doubly linked list so they can be enumerated.
type Registry struct {
	addr  thor.Address
	state *state.State
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Registry {
	return &Registry{addr, state}
}

func (r *Registry) getEntry(who thor.Address) (*entry, bool, error) {
	var (
		e      entry
		listed bool
	)
	if err := r.state.DecodeStorage(r.addr, entryKey(who), func(raw []byte) error {
		listed = len(raw) > 0
		return e.decode(raw)
	}); err != nil {
		return nil, false, err
	}
	return &e, listed, nil
}

func (r *Registry) setEntry(who thor.Address, e *entry) error {
	return r.state.EncodeStorage(r.addr, entryKey(who), e.encode)
}

func (r *Registry) removeEntry(who thor.Address) {
	r.state.SetStorage(r.addr, entryKey(who), nil)
}

func (r *Registry) getAddressPtr(key thor.Bytes32) (addr *thor.Address, err error) {
	err = r.state.DecodeStorage(r.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &addr)
	})
	return
}

func (r *Registry) setAddressPtr(key thor.Bytes32, addr *thor.Address) error {
	return r.state.EncodeStorage(r.addr, key, func() ([]byte, error) {
		if addr == nil {
			return nil, nil
		}
		return rlp.EncodeToBytes(addr)
	})
}

// Owner returns the identity allowed to change the attestor set.
func (r *Registry) Owner() (thor.Address, error) {
	ptr, err := r.getAddressPtr(ownerKey)
	if err != nil || ptr == nil {
		return thor.Address{}, err
	}
	return *ptr, nil
}

// SetOwner sets the registry owner. It's only called while bootstrapping.
func (r *Registry) SetOwner(owner thor.Address) error {
	return r.setAddressPtr(ownerKey, &owner)
}

// IsAttestor returns whether who is currently authorized.
func (r *Registry) IsAttestor(who thor.Address) (bool, error) {
	_, listed, err := r.getEntry(who)
	return listed, err
}

// SetAttestor authorizes or revokes who. Only the owner may call it.
// It reports whether the set actually changed.
func (r *Registry) SetAttestor(caller, who thor.Address, authorized bool) (bool, error) {
	owner, err := r.Owner()
	if err != nil {
		return false, err
	}
	if owner.IsZero() || caller != owner {
		return false, reverts.ErrUnauthorized
	}
	if authorized {
		return r.add(who)
	}
	return r.remove(who)
}

func (r *Registry) add(who thor.Address) (bool, error) {
	e, listed, err := r.getEntry(who)
	if err != nil {
		return false, err
	}
	if listed {
		return false, nil
	}

	tailPtr, err := r.getAddressPtr(tailKey)
	if err != nil {
		return false, err
	}
	e.Prev = tailPtr

	if err := r.setAddressPtr(tailKey, &who); err != nil {
		return false, err
	}
	if tailPtr == nil {
		if err := r.setAddressPtr(headKey, &who); err != nil {
			return false, err
		}
	} else {
		tailEntry, _, err := r.getEntry(*tailPtr)
		if err != nil {
			return false, err
		}
		tailEntry.Next = &who
		if err := r.setEntry(*tailPtr, tailEntry); err != nil {
			return false, err
		}
	}

	if err := r.setEntry(who, e); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Registry) remove(who thor.Address) (bool, error) {
	e, listed, err := r.getEntry(who)
	if err != nil {
		return false, err
	}
	if !listed {
		return false, nil
	}

	if e.Prev == nil {
		if err := r.setAddressPtr(headKey, e.Next); err != nil {
			return false, err
		}
	} else {
		prevEntry, _, err := r.getEntry(*e.Prev)
		if err != nil {
			return false, err
		}
		prevEntry.Next = e.Next
		if err := r.setEntry(*e.Prev, prevEntry); err != nil {
			return false, err
		}
	}

	if e.Next == nil {
		if err := r.setAddressPtr(tailKey, e.Prev); err != nil {
			return false, err
		}
	} else {
		nextEntry, _, err := r.getEntry(*e.Next)
		if err != nil {
			return false, err
		}
		nextEntry.Prev = e.Prev
		if err := r.setEntry(*e.Next, nextEntry); err != nil {
			return false, err
		}
	}

	r.removeEntry(who)
	return true, nil
}

// All lists authorized attestors in the order they were added.
func (r *Registry) All() ([]thor.Address, error) {
	ptr, err := r.getAddressPtr(headKey)
	if err != nil {
		return nil, err
	}
	var all []thor.Address
	for ptr != nil {
		all = append(all, *ptr)
		e, _, err := r.getEntry(*ptr)
		if err != nil {
			return nil, err
		}
		ptr = e.Next
	}
	return all, nil
}
