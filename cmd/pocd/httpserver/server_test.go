// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meharab/Proof-of-Contribution/metrics"
)

func TestServeUntilCancelled(t *testing.T) {
	srv, err := Listen("test", "127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx) }()

	res, err := http.Get(srv.URL())
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestListenTaken(t *testing.T) {
	srv, err := Listen("first", "127.0.0.1:0", http.NotFoundHandler())
	require.NoError(t, err)
	addr := srv.listener.Addr().String()

	_, err = Listen("second", addr, http.NotFoundHandler())
	assert.ErrorContains(t, err, "listen second addr")

	require.NoError(t, srv.Close())
	again, err := Listen("second", addr, http.NotFoundHandler())
	require.NoError(t, err)
	again.Close()
}

func TestMetricsHandler(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("httpserver_test_count").Add(3)

	srv, err := Listen("metrics", "127.0.0.1:0", MetricsHandler())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx)

	res, err := http.Get(srv.URL() + "metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(res.Body)
	require.NoError(t, err)
	family, ok := families["poc_httpserver_test_count"]
	require.True(t, ok)
	require.Len(t, family.GetMetric(), 1)
	assert.Equal(t, float64(3), family.GetMetric()[0].GetCounter().GetValue())
}
