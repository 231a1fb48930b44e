// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/log"
	"github.com/Meharab/Proof-of-Contribution/metrics"
)

var logger = log.WithContext("pkg", "httpserver")

const shutdownTimeout = 5 * time.Second

// Server is a bound http server.
type Server struct {
	name     string
	listener net.Listener
	srv      *http.Server
}

// Listen binds addr. Nothing is served until Serve is called.
func Listen(name, addr string, handler http.Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %v addr [%v]", name, addr)
	}
	return &Server{
		name:     name,
		listener: listener,
		srv:      &http.Server{Handler: handler, ReadHeaderTimeout: time.Second},
	}, nil
}

// URL returns the root url of the server.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String() + "/"
}

// Close releases the listener of a server that will not be served.
func (s *Server) Close() error {
	return s.listener.Close()
}

// Serve blocks until ctx is done, then shuts the server down gracefully.
// It returns early if the server fails.
func (s *Server) Serve(ctx context.Context) error {
	served := make(chan error, 1)
	go func() {
		served <- s.srv.Serve(s.listener)
	}()

	select {
	case err := <-served:
		return errors.Wrapf(err, "%v server", s.name)
	case <-ctx.Done():
	}

	logger.Info("stopping server...", "name", s.name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", "name", s.name, "err", err)
		s.srv.Close()
	}
	if err := <-served; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "%v server", s.name)
	}
	return nil
}

// MetricsHandler serves the metrics under /metrics.
func MetricsHandler() http.Handler {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return handlers.CompressHandler(router)
}
