// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/kv"
)

const (
	stateSpace = byte(0) // the key space for runtime state slots.
	propSpace  = byte(1) // the key space for engine properties.
)

const domainKey = "domain"

var (
	stateBucket = kv.Bucket(string(stateSpace))
	propBucket  = kv.Bucket(string(propSpace))
)

// loadOrSaveDomain pins the database to the domain it was created with.
// Attestations signed for one domain never verify under another, so
// reopening with a different one is refused.
func loadOrSaveDomain(store kv.Store, domain attest.Domain) error {
	data, err := store.Get([]byte(domainKey))
	if err == nil {
		var saved attest.Domain
		if err := json.Unmarshal(data, &saved); err != nil {
			return errors.Wrap(err, "decode stored domain")
		}
		if saved.Separator() != domain.Separator() {
			return errors.Errorf("database belongs to domain chain %v contract %v", saved.ChainID, saved.VerifyingContract)
		}
		return nil
	}
	if !store.IsNotFound(err) {
		return errors.Wrap(err, "read stored domain")
	}
	if data, err = json.Marshal(domain); err != nil {
		return err
	}
	return store.Put([]byte(domainKey), data)
}
