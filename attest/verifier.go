// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package attest

import (
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/builtin/reverts"
	"github.com/Meharab/Proof-of-Contribution/cache"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

const signerCacheSize = 1024

// Authorizer tells whether an identity may attest.
type Authorizer interface {
	IsAttestor(who thor.Address) (bool, error)
}

// Verifier checks attestations against one domain.
type Verifier struct {
	domain    Domain
	separator thor.Bytes32
	signers   *cache.LRU
}

// NewVerifier creates a verifier for the domain.
func NewVerifier(domain Domain) (*Verifier, error) {
	if err := domain.Validate(); err != nil {
		return nil, err
	}
	signers, err := cache.NewLRU(signerCacheSize)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		domain:    domain,
		separator: domain.Separator(),
		signers:   signers,
	}, nil
}

// Domain returns the domain signatures are bound to.
func (v *Verifier) Domain() Domain {
	return v.domain
}

// Digest returns the signing digest of a under the verifier's domain.
func (v *Verifier) Digest(a *Attestation) thor.Bytes32 {
	sh := a.StructHash()
	return thor.Keccak256([]byte{0x19, 0x01}, v.separator[:], sh[:])
}

// Recover returns the identity that signed a.
func (v *Verifier) Recover(a *Attestation, sig []byte) (thor.Address, error) {
	digest := v.Digest(a)
	key := string(digest[:]) + string(sig)
	signer, err := v.signers.GetOrLoad(key, func(any) (any, error) {
		return Signer(digest, sig)
	})
	if err != nil {
		return thor.Address{}, err
	}
	return signer.(thor.Address), nil
}

// Verify recovers the signer of a and checks it is an authorized attestor right now.
// It neither checks expiry nor touches storage.
func (v *Verifier) Verify(a *Attestation, sig []byte, auth Authorizer) (thor.Address, error) {
	signer, err := v.Recover(a, sig)
	if err != nil {
		return thor.Address{}, errors.WithMessage(reverts.ErrInvalidAttestation, err.Error())
	}
	ok, err := auth.IsAttestor(signer)
	if err != nil {
		return thor.Address{}, err
	}
	if !ok {
		return thor.Address{}, errors.WithMessagef(reverts.ErrInvalidAttestation, "signer %v is not an attestor", signer)
	}
	return signer, nil
}
