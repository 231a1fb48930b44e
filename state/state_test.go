// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meharab/Proof-of-Contribution/kv"
	"github.com/Meharab/Proof-of-Contribution/lvldb"
	"github.com/Meharab/Proof-of-Contribution/state"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

func newStore(t *testing.T) kv.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return kv.Bucket("s").NewStore(db)
}

func TestStateStorage(t *testing.T) {
	store := newStore(t)
	st := state.New(store)

	addr := thor.BytesToAddress([]byte("contract"))
	key := thor.BytesToBytes32([]byte("key"))

	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, v)

	st.SetStorage(addr, key, []byte("v1"))
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, []byte("v1"), v)

	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, []byte("v2"))
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, []byte("v2"), v)

	st.RevertTo(cp)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, []byte("v1"), v)

	assert.Panics(t, func() { st.RevertTo(100) })
}

func TestStateBalance(t *testing.T) {
	st := state.New(newStore(t))
	addr := thor.BytesToAddress([]byte("acc"))

	bal, err := st.GetBalance(addr)
	assert.NoError(t, err)
	assert.Equal(t, 0, bal.Sign())

	assert.NoError(t, st.AddBalance(addr, big.NewInt(100)))
	ok, err := st.SubBalance(addr, big.NewInt(101))
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = st.SubBalance(addr, big.NewInt(40))
	assert.NoError(t, err)
	assert.True(t, ok)

	bal, _ = st.GetBalance(addr)
	assert.Equal(t, big.NewInt(60), bal)

	assert.Error(t, st.SetBalance(addr, big.NewInt(-1)))
}

func TestStageCommit(t *testing.T) {
	store := newStore(t)
	st := state.New(store)

	addr := thor.BytesToAddress([]byte("contract"))
	k1 := thor.BytesToBytes32([]byte("k1"))
	k2 := thor.BytesToBytes32([]byte("k2"))

	st.SetStorage(addr, k1, []byte("a"))
	st.SetStorage(addr, k1, []byte("b"))
	st.SetStorage(addr, k2, []byte("c"))
	assert.NoError(t, st.AddBalance(addr, big.NewInt(7)))

	stage := st.Stage()
	assert.Equal(t, 3, stage.Len())

	bulk := store.Bulk()
	require.NoError(t, stage.Commit(bulk))
	require.NoError(t, bulk.Write())

	// a fresh state reads committed values
	st2 := state.New(store)
	v, err := st2.GetStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, []byte("b"), v)
	bal, _ := st2.GetBalance(addr)
	assert.Equal(t, big.NewInt(7), bal)

	// clearing a slot deletes it from the store
	st2.SetStorage(addr, k2, nil)
	bulk = store.Bulk()
	require.NoError(t, st2.Stage().Commit(bulk))
	require.NoError(t, bulk.Write())

	v, err = state.New(store).GetStorage(addr, k2)
	assert.NoError(t, err)
	assert.Empty(t, v)

	st.Reset()
	assert.Equal(t, 0, st.Stage().Len())
}
