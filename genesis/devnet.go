// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// DevAccount is a well known account for development.
type DevAccount struct {
	Address    thor.Address
	PrivateKey *ecdsa.PrivateKey
}

// DevToken is the fungible token created on the dev network.
var DevToken = thor.BytesToAddress([]byte("DevToken"))

// DevChainID is the chain id of the dev network.
const DevChainID = 1337

var devAccounts = sync.OnceValue(func() []DevAccount {
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	accs := make([]DevAccount, 0, len(privKeys))
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{thor.Address(crypto.PubkeyToAddress(pk.PublicKey)), pk})
	}
	return accs
})

// DevAccounts returns the pre-funded dev accounts. The first owns the attestor
// registry and the second is an authorized attestor.
func DevAccounts() []DevAccount {
	return devAccounts()
}

// DevConfig returns the launch config of the dev network.
func DevConfig() *Config {
	accs := DevAccounts()
	const amount = "1000000000000000000000000"
	cfg := &Config{
		ChainID:   "1337",
		Owner:     accs[0].Address.String(),
		Attestors: []string{accs[1].Address.String()},
	}
	devToken := Token{Address: DevToken.String()}
	for _, a := range accs {
		cfg.Accounts = append(cfg.Accounts, Account{Address: a.Address.String(), Balance: amount})
		devToken.Balances = append(devToken.Balances, Account{Address: a.Address.String(), Balance: amount})
	}
	cfg.Tokens = []Token{devToken}
	return cfg
}

// NewDevnet creates the dev network genesis.
func NewDevnet() *Genesis {
	gen, err := New("devnet", DevConfig())
	if err != nil {
		panic(err)
	}
	return gen
}
