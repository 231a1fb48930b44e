// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Meharab/Proof-of-Contribution/co"
)

func TestGoes(t *testing.T) {
	var (
		goes co.Goes
		n    atomic.Int32
	)
	release := make(chan struct{})
	for range 10 {
		goes.Go(func() {
			<-release
			n.Add(1)
		})
	}
	assert.Equal(t, 10, goes.Running())
	close(release)
	select {
	case <-goes.Done():
	case <-time.After(time.Second):
		t.Fatal("timeout")
	}
	goes.Wait()
	assert.Equal(t, int32(10), n.Load())
	assert.Equal(t, 0, goes.Running())
}

func TestSignal_BroadcastAfterWait(t *testing.T) {
	var sig co.Signal

	var ws []co.Waiter
	for range 10 {
		ws = append(ws, sig.NewWaiter())
	}
	sig.Broadcast()

	for _, w := range ws {
		<-w.C()
	}
}

func TestSignal_BroadcastBeforeWaiter(t *testing.T) {
	var sig co.Signal
	sig.Broadcast()

	w := sig.NewWaiter()
	select {
	case <-w.C():
		t.Fatal("waiter created after broadcast must not fire")
	default:
	}
}

func TestSignal_WaiterRearms(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()

	sig.Broadcast()
	<-w.C()

	// the broadcast that woke the first wait is consumed
	ch := w.C()
	select {
	case <-ch:
		t.Fatal("unexpected wake up")
	default:
	}
	sig.Broadcast()
	<-ch
}
