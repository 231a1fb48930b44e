// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/Meharab/Proof-of-Contribution/api/attestors"
	"github.com/Meharab/Proof-of-Contribution/api/domain"
	"github.com/Meharab/Proof-of-Contribution/api/events"
	"github.com/Meharab/Proof-of-Contribution/api/pools"
	"github.com/Meharab/Proof-of-Contribution/api/subscriptions"
	"github.com/Meharab/Proof-of-Contribution/api/tokens"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	// AllowedOrigins is a comma separated list of origins allowed for CORS and websocket upgrades.
	AllowedOrigins  string
	LogsLimit       uint64
	EnableReqLogger *atomic.Bool
	EnableMetrics   bool
}

// New return api router
func New(eng *engine.Engine, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	domain.New(eng.Domain()).
		Mount(router, "/domain")
	pools.New(eng).
		Mount(router, "/pools")
	attestors.New(eng).
		Mount(router, "/attestors")
	tokens.New(eng).
		Mount(router, "/tokens")
	events.New(eng, opts.LogsLimit).
		Mount(router, "/events")
	subs := subscriptions.New(eng, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	if opts.EnableReqLogger != nil {
		handler = RequestLoggerHandler(handler, logger, opts.EnableReqLogger)
	}
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut}),
	)(handler)

	return handler.ServeHTTP, subs.Close
}
