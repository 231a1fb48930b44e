// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter provides a channel to wait for the next broadcast.
type Waiter interface {
	C() <-chan struct{}
}

// Signal wakes every waiter at once. Unlike sync.Cond it is channel based,
// so waiting can be combined with other cases in a select.
type Signal struct {
	l  sync.Mutex
	ch chan struct{}
}

func (s *Signal) current() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// Broadcast wakes all goroutines waiting on s.
func (s *Signal) Broadcast() {
	s.l.Lock()
	close(s.current())
	s.ch = make(chan struct{})
	s.l.Unlock()
}

// NewWaiter creates a waiter. Each call to its C returns a channel that is closed
// by the first broadcast after the previous C call, or after NewWaiter for the first one.
func (s *Signal) NewWaiter() Waiter {
	s.l.Lock()
	ref := s.current()
	s.l.Unlock()

	return waiterFunc(func() <-chan struct{} {
		ch := ref
		s.l.Lock()
		ref = s.current()
		s.l.Unlock()
		return ch
	})
}

type waiterFunc func() <-chan struct{}

func (w waiterFunc) C() <-chan struct{} {
	return w()
}
