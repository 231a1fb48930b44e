// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/Meharab/Proof-of-Contribution/kv"
)

// Stage abstracts changes to be flushed into the kv store.
type Stage struct {
	keys    []storageKey
	changes map[storageKey][]byte
}

// Len returns count of changed slots.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Commit puts all changes into the putter, in the order they were first touched.
func (s *Stage) Commit(putter kv.Putter) error {
	for _, key := range s.keys {
		val := s.changes[key]
		var err error
		if len(val) == 0 {
			err = putter.Delete(key.encode())
		} else {
			err = putter.Put(key.encode(), val)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
