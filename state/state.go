// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/kv"
	"github.com/Meharab/Proof-of-Contribution/stackedmap"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

var balanceKey = thor.Blake2b([]byte("balance"))

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

func (k storageKey) encode() []byte {
	return append(append(make([]byte, 0, thor.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State manages storage slots of accounts and their native balances.
// It is not safe for concurrent use; callers serialize access.
type State struct {
	db kv.Getter
	sm *stackedmap.StackedMap[storageKey, []byte]
}

// New create state object backed by db.
func New(db kv.Getter) *State {
	s := &State{db: db}
	s.Reset()
	return s
}

// Reset drops all changes not yet staged.
func (s *State) Reset() {
	s.sm = stackedmap.New(s.cacheGetter)
}

func (s *State) cacheGetter(key storageKey) ([]byte, bool, error) {
	val, err := s.db.Get(key.encode())
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, true, nil
		}
		return nil, false, errors.Wrap(err, "read storage")
	}
	return val, true, nil
}

// GetStorage returns raw storage value for the given address and key.
// An absent value is returned as empty slice.
func (s *State) GetStorage(addr thor.Address, key thor.Bytes32) ([]byte, error) {
	val, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, err
	}
	return val, nil
}

// SetStorage set raw storage value. An empty value removes the slot.
func (s *State) SetStorage(addr thor.Address, key thor.Bytes32, value []byte) {
	s.sm.Put(storageKey{addr, key}, value)
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be returned as is.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetStorage(addr, key)
	if err != nil {
		return err
	}
	return dec(raw)
}

// EncodeStorage encode and set storage value.
// Error returned by enc will be returned as is.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return err
	}
	s.SetStorage(addr, key, raw)
	return nil
}

// GetBalance returns native token balance for the given address.
func (s *State) GetBalance(addr thor.Address) (*big.Int, error) {
	bal := new(big.Int)
	if err := s.DecodeStorage(addr, balanceKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, bal)
	}); err != nil {
		return nil, err
	}
	return bal, nil
}

// SetBalance set native token balance for the given address.
func (s *State) SetBalance(addr thor.Address, balance *big.Int) error {
	if balance.Sign() < 0 {
		return errors.New("negative balance")
	}
	return s.EncodeStorage(addr, balanceKey, func() ([]byte, error) {
		if balance.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(balance)
	})
}

// AddBalance adds amount to the native balance of addr.
func (s *State) AddBalance(addr thor.Address, amount *big.Int) error {
	bal, err := s.GetBalance(addr)
	if err != nil {
		return err
	}
	return s.SetBalance(addr, bal.Add(bal, amount))
}

// SubBalance subtracts amount from the native balance of addr.
// It returns false and leaves the balance untouched if the balance is insufficient.
func (s *State) SubBalance(addr thor.Address, amount *big.Int) (bool, error) {
	bal, err := s.GetBalance(addr)
	if err != nil {
		return false, err
	}
	if bal.Cmp(amount) < 0 {
		return false, nil
	}
	return true, s.SetBalance(addr, bal.Sub(bal, amount))
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision >= s.sm.Depth() {
		panic("invalid checkpoint revision")
	}
	s.sm.PopTo(revision)
}

// Stage makes a stage object holding all changes since the last Reset.
func (s *State) Stage() *Stage {
	stage := &Stage{changes: make(map[storageKey][]byte)}
	for _, entry := range s.sm.Journal() {
		if _, ok := stage.changes[entry.Key]; !ok {
			stage.keys = append(stage.keys, entry.Key)
		}
		stage.changes[entry.Key] = entry.Value
	}
	return stage
}
