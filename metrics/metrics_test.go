// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestNoopAndPrometheus(t *testing.T) {
	metrics = defaultNoopMetrics()
	assert.Nil(t, HTTPHandler())
	for _, m := range []any{
		Counter("noop_counter"),
		CounterVec("noop_counter_vec", nil),
		Gauge("noop_gauge"),
		HistogramVec("noop_hist", nil, nil),
	} {
		require.IsType(t, noop{}, m)
	}
	Counter("noop_counter").Add(1)

	lazyCounter := LazyLoadCounter("claims")
	lazyCounterVec := LazyLoadCounterVec("ops", []string{"op", "result"})
	lazyGauge := LazyLoadGauge("pools")
	lazyHist := LazyLoadHistogramVec("latency", []string{"op"}, BucketOps)

	InitializePrometheusMetrics()
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promHistogramVecMeter{}, lazyHist())

	// same name yields the same meter
	assert.Same(t, lazyCounter(), Counter("claims"))

	lazyCounter().Add(2)
	Counter("claims").Add(3)
	total := 0
	for i := range 10 {
		lazyCounterVec().AddWithLabel(int64(i), map[string]string{"op": "claim", "result": strconv.Itoa(i % 2)})
		lazyHist().ObserveWithLabels(int64(i), map[string]string{"op": "claim"})
		total += i
	}
	lazyGauge().Set(5)
	lazyGauge().Add(-2)

	families := gather(t)
	assert.Equal(t, float64(5), families["poc_claims"].Metric[0].GetCounter().GetValue())
	vec := families["poc_ops"].Metric
	require.Len(t, vec, 2)
	assert.Equal(t, float64(total), vec[0].GetCounter().GetValue()+vec[1].GetCounter().GetValue())
	assert.Equal(t, float64(3), families["poc_pools"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(total), families["poc_latency"].Metric[0].GetHistogram().GetSampleSum())

	server := httptest.NewServer(HTTPHandler())
	defer server.Close()
	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "poc_claims 5")
}
