// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	var (
		key     = []byte("pool")
		value   = []byte("1")
		missing = []byte("contribution")
	)

	fileDB, err := New(filepath.Join(t.TempDir(), "main.db"), Options{CacheSize: 16})
	require.NoError(t, err)
	defer fileDB.Close()

	memDB, err := NewMem()
	require.NoError(t, err)
	defer memDB.Close()

	for _, ldb := range []*LevelDB{fileDB, memDB} {
		require.NoError(t, ldb.Put(key, value))

		got, err := ldb.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := ldb.Has(missing)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, ldb.Delete(key))
		_, err = ldb.Get(key)
		assert.True(t, ldb.IsNotFound(err))
	}
}

func TestBulkIsAtomicAndDurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.db")
	db, err := New(path, Options{})
	require.NoError(t, err)

	require.NoError(t, db.Put([]byte("gone"), []byte("x")))
	bulk := db.Bulk()
	require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	require.NoError(t, bulk.Delete([]byte("gone")))
	assert.Equal(t, 3, bulk.Len())

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, bulk.Write())
	require.NoError(t, db.Bulk().Write(), "empty bulk")
	require.NoError(t, db.Close())

	db, err = New(path, Options{})
	require.NoError(t, err)
	defer db.Close()
	for k, v := range map[string]string{"a": "1", "b": "2"} {
		got, err := db.Get([]byte(k))
		require.NoError(t, err)
		assert.Equal(t, v, string(got))
	}
	_, err = db.Get([]byte("gone"))
	assert.True(t, db.IsNotFound(err))
}

func TestReopenReleasesLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.db")
	db, err := New(path, Options{})
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))

	_, err = New(path, Options{})
	assert.Error(t, err, "locked while open")
	require.NoError(t, db.Close())

	for range 2 {
		db, err = New(path, Options{})
		require.NoError(t, err)
		got, err := db.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
		require.NoError(t, db.Close())
	}
}
