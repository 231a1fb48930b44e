// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/log"
)

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{w, http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// RequestLoggerHandler logs every request with its body and response status
// while enabled is set. It can be toggled at runtime.
func RequestLoggerHandler(handler http.Handler, logger log.Logger, enabled *atomic.Bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !enabled.Load() {
			handler.ServeHTTP(w, r)
			return
		}

		var body []byte
		if r.Body != nil {
			var err error
			if body, err = io.ReadAll(r.Body); err != nil {
				logger.Warn("unexpected body read error", "err", err)
				http.Error(w, "unable to read body", http.StatusBadRequest)
				return
			}
			// handlers downstream read it again
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		start := time.Now()
		rec := newStatusRecorder(w)
		handler.ServeHTTP(rec, r)

		logger.Info("API Request",
			"Method", r.Method,
			"URI", r.URL.String(),
			"Status", rec.status,
			"DurationMs", time.Since(start).Milliseconds(),
			"Body", string(body),
		)
	})
}
