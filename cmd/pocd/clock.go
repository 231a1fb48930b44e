// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
)

const (
	ntpServer          = "pool.ntp.org"
	clockCheckInterval = time.Hour
	defaultClockOffset = 30 * time.Second
)

// maxClockOffset is the drift tolerated before warning. Pool expiry and
// attestation freshness are both judged against the local clock.
func maxClockOffset(maxAttestationAge uint64) time.Duration {
	if maxAttestationAge == 0 {
		return defaultClockOffset
	}
	return min(time.Duration(maxAttestationAge)*time.Second/2, defaultClockOffset)
}

func checkClockOffset(limit time.Duration) {
	resp, err := ntp.Query(ntpServer)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > limit {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

// watchClock checks the clock offset now and then hourly until ctx is done.
func watchClock(ctx context.Context, limit time.Duration) error {
	ticker := time.NewTicker(clockCheckInterval)
	defer ticker.Stop()
	for {
		checkClockOffset(limit)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
