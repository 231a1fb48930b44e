// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package attest

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

var attestationTypeHash = thor.Keccak256([]byte("ContributionAttestation(uint256 poolId,uint256 contributionId,bytes32 contributionHash,address contributor,bool valid,uint256 timestamp)"))

// Attestation is an attestor's verdict on one contribution.
// Field order and types are part of the signing scheme.
type Attestation struct {
	PoolID           uint64       `json:"poolId"`
	ContributionID   uint64       `json:"contributionId"`
	ContributionHash thor.Bytes32 `json:"contributionHash"`
	Contributor      thor.Address `json:"contributor"`
	Valid            bool         `json:"valid"`
	Timestamp        uint64       `json:"timestamp"`
}

// StructHash computes hashStruct(ContributionAttestation).
func (a *Attestation) StructHash() thor.Bytes32 {
	var (
		poolID         = thor.Uint64Word(a.PoolID)
		contributionID = thor.Uint64Word(a.ContributionID)
		contributor    = a.Contributor.Word()
		valid          = thor.BoolWord(a.Valid)
		timestamp      = thor.Uint64Word(a.Timestamp)
	)
	return thor.Keccak256(
		attestationTypeHash[:],
		poolID[:],
		contributionID[:],
		a.ContributionHash[:],
		contributor[:],
		valid[:],
		timestamp[:],
	)
}

// Digest computes the EIP-712 signing digest of the attestation under the domain.
func (a *Attestation) Digest(d Domain) thor.Bytes32 {
	sep := d.Separator()
	sh := a.StructHash()
	return thor.Keccak256([]byte{0x19, 0x01}, sep[:], sh[:])
}

// Signed is an attestation together with its signature, as handed from attestor to claimer.
type Signed struct {
	Attestation
	Signature hexutil.Bytes `json:"signature"`
}

// ContentHash derives the fingerprint of an off-chain content pointer.
// Submitters and attestors must use the same function on the same bytes.
func ContentHash(pointer string) thor.Bytes32 {
	return thor.Keccak256([]byte(pointer))
}
