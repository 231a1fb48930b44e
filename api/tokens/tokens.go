// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

type Tokens struct {
	engine *engine.Engine
}

func New(engine *engine.Engine) *Tokens {
	return &Tokens{engine}
}

func parseAddress(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, utils.BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	tokenRef, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	who, err := parseAddress(req, "who")
	if err != nil {
		return err
	}
	bal, err := t.engine.BalanceOf(tokenRef, who)
	if err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, &Balance{
		Token:   tokenRef,
		Address: who,
		Balance: (*math.HexOrDecimal256)(bal),
	})
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	tokenRef, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	owner, err := parseAddress(req, "owner")
	if err != nil {
		return err
	}
	spender, err := parseAddress(req, "spender")
	if err != nil {
		return err
	}
	return t.writeAllowance(w, tokenRef, owner, spender)
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	tokenRef, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	var body Approve
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("body: amount required"))
	}
	// pools pull their funds into the verifying contract
	spender := t.engine.Domain().VerifyingContract
	if body.Spender != nil {
		spender = *body.Spender
	}
	if err := t.engine.Approve(body.Caller, tokenRef, spender, (*big.Int)(body.Amount)); err != nil {
		return utils.RevertToHTTP(err)
	}
	return t.writeAllowance(w, tokenRef, body.Caller, spender)
}

func (t *Tokens) writeAllowance(w http.ResponseWriter, tokenRef, owner, spender thor.Address) error {
	allowance, err := t.engine.Allowance(tokenRef, owner, spender)
	if err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, &Allowance{
		Token:     tokenRef,
		Owner:     owner,
		Spender:   spender,
		Allowance: (*math.HexOrDecimal256)(allowance),
	})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}/balances/{who}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}/balances/{who}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{address}/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}/allowances/{owner}/{spender}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/{address}/approvals").
		Methods(http.MethodPost).
		Name("POST /tokens/{address}/approvals").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
}
