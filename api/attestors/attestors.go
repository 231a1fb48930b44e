// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package attestors

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

type Attestors struct {
	engine *engine.Engine
}

func New(engine *engine.Engine) *Attestors {
	return &Attestors{engine}
}

func (a *Attestors) handleGetAttestors(w http.ResponseWriter, _ *http.Request) error {
	owner, err := a.engine.Owner()
	if err != nil {
		return err
	}
	list, err := a.engine.Attestors()
	if err != nil {
		return err
	}
	if list == nil {
		list = []thor.Address{}
	}
	return utils.WriteJSON(w, &List{Owner: owner, Attestors: list})
}

func (a *Attestors) handleGetAttestor(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	ok, err := a.engine.IsAttestor(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Attestor{Address: addr, Authorized: ok})
}

func (a *Attestors) handleSetAttestor(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	var body SetAttestor
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.engine.SetAttestor(body.Caller, addr, body.Authorized); err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, &Attestor{Address: addr, Authorized: body.Authorized})
}

func (a *Attestors) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /attestors").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAttestors))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /attestors/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAttestor))
	sub.Path("/{address}").
		Methods(http.MethodPut).
		Name("PUT /attestors/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetAttestor))
}

type List struct {
	Owner     thor.Address   `json:"owner"`
	Attestors []thor.Address `json:"attestors"`
}

type Attestor struct {
	Address    thor.Address `json:"address"`
	Authorized bool         `json:"authorized"`
}

type SetAttestor struct {
	Caller     thor.Address `json:"caller"`
	Authorized bool         `json:"authorized"`
}
