// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package attest

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// SignatureLength is the length of r || s || v.
const SignatureLength = crypto.SignatureLength

// Sign signs the attestation digest. The returned signature carries v in {27, 28}.
func Sign(a *Attestation, d Domain, key *ecdsa.PrivateKey) ([]byte, error) {
	digest := a.Digest(d)
	sig, err := crypto.Sign(digest[:], key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

// Address returns the identity of the key.
func Address(key *ecdsa.PrivateKey) thor.Address {
	return thor.Address(crypto.PubkeyToAddress(key.PublicKey))
}

// Signer recovers the identity that signed digest.
// The recovery id must be 27 or 28, and malleable high-s signatures are rejected.
func Signer(digest thor.Bytes32, sig []byte) (thor.Address, error) {
	if len(sig) != SignatureLength {
		return thor.Address{}, errors.Errorf("invalid signature length %d", len(sig))
	}
	if sig[64] != 27 && sig[64] != 28 {
		return thor.Address{}, errors.Errorf("invalid recovery id %d", sig[64])
	}
	v := sig[64] - 27
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(v, r, s, true) {
		return thor.Address{}, errors.New("invalid signature values")
	}

	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	normalized[64] = v

	pub, err := crypto.SigToPub(digest[:], normalized)
	if err != nil {
		return thor.Address{}, errors.Wrap(err, "recover")
	}
	return thor.Address(crypto.PubkeyToAddress(*pub)), nil
}
