// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"time"

	"github.com/Meharab/Proof-of-Contribution/builtin/reverts"
	"github.com/Meharab/Proof-of-Contribution/metrics"
)

var (
	metricOps        = metrics.LazyLoadCounterVec("engine_operations_count", []string{"op", "result"})
	metricOpDuration = metrics.LazyLoadHistogramVec("engine_operation_duration_us", []string{"op"}, metrics.BucketOps)
	metricPayouts    = metrics.LazyLoadCounter("engine_payouts_count")
	metricPools      = metrics.LazyLoadCounter("engine_pools_created_count")

	metricIndexFailures = metrics.LazyLoadCounter("engine_unindexed_events_count")
)

func observeOp(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		if reverts.IsRevertErr(err) {
			result = "reverted"
		} else {
			result = "error"
		}
	}
	metricOps().AddWithLabel(1, map[string]string{"op": op, "result": result})
	metricOpDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": op})
}
