// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testengine builds an in-memory engine running the dev network.
package testengine

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/genesis"
	"github.com/Meharab/Proof-of-Contribution/logdb"
	"github.com/Meharab/Proof-of-Contribution/lvldb"
)

// StartTime is the clock value a new test engine starts at.
const StartTime = 1_000_000

type TestEngine struct {
	*engine.Engine
	Genesis *genesis.Genesis
	LogDB   *logdb.LogDB

	now atomic.Uint64
}

// New creates a dev network engine backed by memory stores. Everything is
// released when the test ends.
func New(t testing.TB) *TestEngine {
	return NewWithOptions(t, engine.Options{})
}

// NewWithOptions is New with engine options. The clock option is replaced by
// the test clock.
func NewWithOptions(t testing.TB, opts engine.Options) *TestEngine {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(logDB.Close)

	te := &TestEngine{
		Genesis: genesis.NewDevnet(),
		LogDB:   logDB,
	}
	te.now.Store(StartTime)
	opts.Clock = te.Now

	te.Engine, err = engine.New(db, logDB, te.Genesis.NewTokenRegistry(), te.Genesis.Domain(), opts)
	require.NoError(t, err)
	t.Cleanup(te.Engine.Close)

	_, err = te.Genesis.Setup(te.Engine)
	require.NoError(t, err)
	return te
}

// Now returns the test clock.
func (te *TestEngine) Now() uint64 { return te.now.Load() }

// SetNow moves the test clock.
func (te *TestEngine) SetNow(now uint64) { te.now.Store(now) }
