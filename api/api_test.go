// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meharab/Proof-of-Contribution/api/events"
	"github.com/Meharab/Proof-of-Contribution/log"
	"github.com/Meharab/Proof-of-Contribution/test/testengine"
)

func newServer(t *testing.T, opts Options) *httptest.Server {
	te := testengine.New(t)
	handler, closeFn := New(te.Engine, opts)
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		closeFn()
		ts.Close()
	})
	return ts
}

func TestRoutes(t *testing.T) {
	ts := newServer(t, Options{AllowedOrigins: "*", LogsLimit: 100, EnableMetrics: true})

	for path, status := range map[string]int{
		"/domain":                      http.StatusOK,
		"/pools":                       http.StatusOK,
		"/pools/1":                     http.StatusNotFound,
		"/attestors":                   http.StatusOK,
		"/events":                      http.StatusOK,
		"/events?limit=101":            http.StatusBadRequest,
		"/pools/1/contributions/1":     http.StatusNotFound,
		"/no/such/route":               http.StatusNotFound,
		"/subscriptions/events?pos=-1": http.StatusBadRequest,
	} {
		res, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, status, res.StatusCode, path)
	}
}

func TestCORS(t *testing.T) {
	ts := newServer(t, Options{AllowedOrigins: "https://app.example, https://other.example", LogsLimit: 10})

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, ts.URL+"/pools", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		return res
	}

	res := preflight("https://other.example")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "https://other.example", res.Header.Get("Access-Control-Allow-Origin"))

	res = preflight("https://evil.example")
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}

func TestSubscriptionThroughMiddleware(t *testing.T) {
	ts := newServer(t, Options{AllowedOrigins: "*", LogsLimit: 10, EnableMetrics: true})

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/subscriptions/events?pos=0"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev events.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, uint64(1), ev.Seq)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(log.LevelInfo)
	log.SetDefault(log.JSONHandlerWithLevel(&buf, &lvl))
	t.Cleanup(func() { log.SetDefault(log.DiscardHandler()) })

	var enabled atomic.Bool
	var seen string
	handler := RequestLoggerHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b bytes.Buffer
		_, _ = b.ReadFrom(r.Body)
		seen = b.String()
		w.WriteHeader(http.StatusCreated)
	}), log.WithContext("pkg", "test"), &enabled)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/pools", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, `{"a":1}`, seen)
	assert.Empty(t, buf.String())

	enabled.Store(true)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/pools", strings.NewReader(`{"b":2}`)))
	assert.Equal(t, `{"b":2}`, seen, "body is still readable downstream")
	out := buf.String()
	assert.Contains(t, out, "API Request")
	assert.Contains(t, out, `"URI":"/pools"`)
	assert.Contains(t, out, `"Method":"POST"`)
	assert.Contains(t, out, `"Status":201`)
	assert.Contains(t, out, `{\"b\":2}`)
}
