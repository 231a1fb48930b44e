// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Meharab/Proof-of-Contribution/metrics"
)

var (
	metricHTTPReqCounter  = metrics.LazyLoadCounterVec("api_request_count", []string{"name", "code", "method"})
	metricHTTPReqDuration = metrics.LazyLoadHistogramVec("api_duration_ms", []string{"name", "code", "method"}, metrics.BucketHTTPReqs)
	metricWebsocketConns  = metrics.LazyLoadGauge("api_active_websocket_count")
)

// metricsMiddleware records metrics for each request, labelled by the matched route name.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := mux.CurrentRoute(r)
		if route == nil || route.GetName() == "" {
			next.ServeHTTP(w, r)
			return
		}
		name := route.GetName()

		subscription := r.Header.Get("Upgrade") == "websocket"
		if subscription {
			metricWebsocketConns().Add(1)
			defer metricWebsocketConns().Add(-1)
		}

		now := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		labels := map[string]string{"name": name, "code": strconv.Itoa(rec.status), "method": r.Method}
		metricHTTPReqCounter().AddWithLabel(1, labels)
		if !subscription {
			metricHTTPReqDuration().ObserveWithLabels(time.Since(now).Milliseconds(), labels)
		}
	})
}
