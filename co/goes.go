// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
	"sync/atomic"
)

// Goes runs goroutines as a group that can be counted and waited for.
type Goes struct {
	wg      sync.WaitGroup
	running atomic.Int32
}

func (g *Goes) Go(f func()) {
	g.running.Add(1)
	g.wg.Go(func() {
		defer g.running.Add(-1)
		f()
	})
}

// Running is the number of goroutines not yet returned.
func (g *Goes) Running() int {
	return int(g.running.Load())
}

func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done is closed once every goroutine started so far has returned.
func (g *Goes) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	return done
}
