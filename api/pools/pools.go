// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

type Pools struct {
	engine *engine.Engine
}

func New(engine *engine.Engine) *Pools {
	return &Pools{engine}
}

func (p *Pools) handleGetPoolCount(w http.ResponseWriter, _ *http.Request) error {
	count, err := p.engine.PoolCount()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &PoolCount{count})
}

func (p *Pools) handleCreatePool(w http.ResponseWriter, req *http.Request) error {
	var body CreatePool
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Fund == nil {
		return utils.BadRequest(errors.New("body: fund required"))
	}
	if body.Reward == nil {
		return utils.BadRequest(errors.New("body: reward required"))
	}
	created, err := p.engine.CreatePool(body.Caller, body.Token, (*big.Int)(body.Fund), (*big.Int)(body.Reward), body.ExpiresAt)
	if err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, convertPool(created))
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.StringToUint64(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	found, err := p.engine.GetPool(id)
	if err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, convertPool(found))
}

func (p *Pools) handleClosePool(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.StringToUint64(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	var body ClosePool
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	closed, err := p.engine.ClosePool(body.Caller, id)
	if err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, convertPool(closed))
}

func (p *Pools) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.StringToUint64(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	var body Submit
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if (body.Hash == nil) == (body.Pointer == nil) {
		return utils.BadRequest(errors.New("body: exactly one of contributionHash and pointer required"))
	}
	var hash thor.Bytes32
	if body.Hash != nil {
		hash = *body.Hash
	} else {
		hash = attest.ContentHash(*body.Pointer)
	}
	submitted, err := p.engine.Submit(body.Caller, id, hash)
	if err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, convertContribution(submitted))
}

func (p *Pools) handleGetContribution(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.StringToUint64(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	cid, err := utils.StringToUint64(mux.Vars(req)["cid"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "cid"))
	}
	found, err := p.engine.GetContribution(id, cid)
	if err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, convertContribution(found))
}

func (p *Pools) handleClaim(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.StringToUint64(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	cid, err := utils.StringToUint64(mux.Vars(req)["cid"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "cid"))
	}
	var body Claim
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	resolved, err := p.engine.Claim(body.Caller, id, cid, body.Valid, body.Timestamp, body.Signature)
	if err != nil {
		return utils.RevertToHTTP(err)
	}
	return utils.WriteJSON(w, convertContribution(resolved))
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPoolCount))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleCreatePool))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /pools/{id}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{id}/close").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/close").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClosePool))
	sub.Path("/{id}/contributions").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/contributions").
		HandlerFunc(utils.WrapHandlerFunc(p.handleSubmit))
	sub.Path("/{id}/contributions/{cid}").
		Methods(http.MethodGet).
		Name("GET /pools/{id}/contributions/{cid}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetContribution))
	sub.Path("/{id}/contributions/{cid}/claim").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/contributions/{cid}/claim").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClaim))
}
