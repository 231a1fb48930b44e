// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// Config is the yaml launch file.
//
//	chainId: 1337
//	owner: "0x..."
//	attestors: ["0x..."]
//	accounts:
//	  - address: "0x..."
//	    balance: "1000000"
//	tokens:
//	  - address: "0x..."
//	    balances:
//	      - address: "0x..."
//	        balance: "1000"
//	    allowances:
//	      - owner: "0x..."
//	        amount: "1000"
type Config struct {
	ChainID   string    `yaml:"chainId"`
	Contract  string    `yaml:"contract,omitempty"`
	Owner     string    `yaml:"owner"`
	Attestors []string  `yaml:"attestors,omitempty"`
	Accounts  []Account `yaml:"accounts,omitempty"`
	Tokens    []Token   `yaml:"tokens,omitempty"`
}

// Account is an initial balance.
type Account struct {
	Address string `yaml:"address"`
	Balance string `yaml:"balance"`
}

// Token is a fungible token created at launch.
type Token struct {
	Address    string      `yaml:"address"`
	Balances   []Account   `yaml:"balances,omitempty"`
	Allowances []Allowance `yaml:"allowances,omitempty"`
}

// Allowance is an initial approval. Spender defaults to the contract.
type Allowance struct {
	Owner   string `yaml:"owner"`
	Spender string `yaml:"spender,omitempty"`
	Amount  string `yaml:"amount"`
}

// LoadConfig reads a launch file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return ParseConfig(data)
}

// ParseConfig decodes a launch file.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &cfg, nil
}

// Marshal encodes the config back to yaml.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

type alloc struct {
	Address thor.Address
	Amount  *big.Int
}

type approval struct {
	Owner   thor.Address
	Spender thor.Address
	Amount  *big.Int
}

type tokenAlloc struct {
	Address   thor.Address
	Balances  []alloc
	Approvals []approval
}

// launch is the validated form of Config. Its rlp encoding identifies the genesis.
type launch struct {
	ChainID   *big.Int
	Contract  thor.Address
	Owner     thor.Address
	Attestors []thor.Address
	Accounts  []alloc
	Tokens    []tokenAlloc
}

func parseAmount(field, s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok || v.Sign() < 0 {
		return nil, errors.Errorf("%s: invalid amount %q", field, s)
	}
	return v, nil
}

func parseAddress(field, s string) (thor.Address, error) {
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, errors.Wrapf(err, "%s: invalid address %q", field, s)
	}
	return addr, nil
}

func parseAllocs(field string, accounts []Account) ([]alloc, error) {
	allocs := make([]alloc, 0, len(accounts))
	for _, a := range accounts {
		addr, err := parseAddress(field, a.Address)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(field, a.Balance)
		if err != nil {
			return nil, err
		}
		allocs = append(allocs, alloc{addr, amount})
	}
	return allocs, nil
}

func (c *Config) validate() (*launch, error) {
	if c.ChainID == "" {
		return nil, errors.New("chainId: missing")
	}
	chainID, err := parseAmount("chainId", c.ChainID)
	if err != nil {
		return nil, err
	}
	l := &launch{ChainID: chainID, Contract: thor.DefaultContractAddress}
	if c.Contract != "" {
		if l.Contract, err = parseAddress("contract", c.Contract); err != nil {
			return nil, err
		}
		if l.Contract.IsZero() {
			return nil, errors.New("contract: must not be the zero address")
		}
	}
	if l.Owner, err = parseAddress("owner", c.Owner); err != nil {
		return nil, err
	}
	if l.Owner.IsZero() {
		return nil, errors.New("owner: must not be the zero address")
	}
	for _, s := range c.Attestors {
		addr, err := parseAddress("attestors", s)
		if err != nil {
			return nil, err
		}
		l.Attestors = append(l.Attestors, addr)
	}
	if l.Accounts, err = parseAllocs("accounts", c.Accounts); err != nil {
		return nil, err
	}

	seen := make(map[thor.Address]bool)
	for _, t := range c.Tokens {
		addr, err := parseAddress("tokens", t.Address)
		if err != nil {
			return nil, err
		}
		if addr == thor.NativeToken || addr == l.Contract {
			return nil, errors.Errorf("tokens: address %v is reserved", addr)
		}
		if seen[addr] {
			return nil, errors.Errorf("tokens: duplicated address %v", addr)
		}
		seen[addr] = true

		ta := tokenAlloc{Address: addr}
		if ta.Balances, err = parseAllocs("tokens.balances", t.Balances); err != nil {
			return nil, err
		}
		for _, a := range t.Allowances {
			ap := approval{Spender: l.Contract}
			if ap.Owner, err = parseAddress("tokens.allowances", a.Owner); err != nil {
				return nil, err
			}
			if a.Spender != "" {
				if ap.Spender, err = parseAddress("tokens.allowances", a.Spender); err != nil {
					return nil, err
				}
			}
			if ap.Amount, err = parseAmount("tokens.allowances", a.Amount); err != nil {
				return nil, err
			}
			ta.Approvals = append(ta.Approvals, ap)
		}
		l.Tokens = append(l.Tokens, ta)
	}
	return l, nil
}
