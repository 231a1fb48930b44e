// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package attest

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

var domainTypeHash = thor.Keccak256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))

// Domain binds signatures to one deployment on one network.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract thor.Address
}

// NewDomain returns the domain of the contract deployed at verifyingContract.
func NewDomain(chainID *big.Int, verifyingContract thor.Address) Domain {
	return Domain{
		Name:              thor.ContractName,
		Version:           thor.ContractVersion,
		ChainID:           new(big.Int).Set(chainID),
		VerifyingContract: verifyingContract,
	}
}

// Validate checks the chain id fits the uint256 slot.
func (d Domain) Validate() error {
	if d.ChainID == nil || d.ChainID.Sign() < 0 {
		return errors.New("chain id must be non-negative")
	}
	if _, overflow := uint256.FromBig(d.ChainID); overflow {
		return errors.New("chain id overflows uint256")
	}
	return nil
}

// Separator computes the EIP-712 domain separator.
func (d Domain) Separator() thor.Bytes32 {
	chainID, _ := uint256.FromBig(d.ChainID)
	word := chainID.Bytes32()
	return thor.Keccak256(
		domainTypeHash[:],
		thor.Keccak256([]byte(d.Name)).Bytes(),
		thor.Keccak256([]byte(d.Version)).Bytes(),
		word[:],
		d.VerifyingContract.Word().Bytes(),
	)
}

type domainJSON struct {
	Name              string                `json:"name"`
	Version           string                `json:"version"`
	ChainID           *math.HexOrDecimal256 `json:"chainId"`
	VerifyingContract thor.Address          `json:"verifyingContract"`
}

// MarshalJSON renders the domain the way wallet typed-data signers expect it.
func (d Domain) MarshalJSON() ([]byte, error) {
	return json.Marshal(&domainJSON{
		Name:              d.Name,
		Version:           d.Version,
		ChainID:           (*math.HexOrDecimal256)(d.ChainID),
		VerifyingContract: d.VerifyingContract,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Domain) UnmarshalJSON(data []byte) error {
	var dj domainJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return err
	}
	if dj.ChainID == nil {
		return errors.New("missing chainId")
	}
	*d = Domain{
		Name:              dj.Name,
		Version:           dj.Version,
		ChainID:           (*big.Int)(dj.ChainID),
		VerifyingContract: dj.VerifyingContract,
	}
	return d.Validate()
}
