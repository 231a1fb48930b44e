// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package domain

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

// Domain serves the EIP-712 domain attestors sign under.
type Domain struct {
	domain attest.Domain
}

func New(domain attest.Domain) *Domain {
	return &Domain{domain}
}

func (d *Domain) handleGetDomain(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &Response{
		Domain:    d.domain,
		Separator: d.domain.Separator(),
	})
}

func (d *Domain) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /domain").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetDomain))
}

type Response struct {
	Domain    attest.Domain `json:"domain"`
	Separator thor.Bytes32  `json:"separator"`
}
