// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Constants shared with off-chain attestors. Changing any of them changes every signing digest.
const (
	ContractName    = "ProofOfContribution"
	ContractVersion = "1"
)

// NativeToken is the token reference of the native currency.
var NativeToken = Address{}

// DefaultContractAddress is used when the launch config does not name one.
var DefaultContractAddress = BytesToAddress([]byte("ProofOfContribution"))
