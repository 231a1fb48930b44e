// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb is the goleveldb backed kv.Store holding engine state.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/Meharab/Proof-of-Contribution/kv"
	"github.com/Meharab/Proof-of-Contribution/log"
)

var (
	_      kv.Store = (*LevelDB)(nil)
	logger          = log.WithContext("pkg", "lvldb")
)

const minCacheMB = 16

// Options sizes the caches of a persistent instance.
type Options struct {
	CacheSize              int // MB
	OpenFilesCacheCapacity int
}

// LevelDB wraps a goleveldb instance.
type LevelDB struct {
	db *leveldb.DB
}

// New opens the database at path, creating it if absent. A corrupted
// manifest is recovered once before giving up.
func New(path string, opts Options) (*LevelDB, error) {
	ldbOpts := newOptions(opts)
	db, err := leveldb.OpenFile(path, ldbOpts)
	if _, corrupted := err.(*dberrors.ErrCorrupted); corrupted {
		logger.Warn("level db corrupted, recovering", "path", path, "err", err)
		db, err = leveldb.RecoverFile(path, ldbOpts)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db}, nil
}

// NewMem creates a database in memory.
func NewMem() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), newOptions(Options{}))
	if err != nil {
		return nil, errors.Wrap(err, "open mem level db")
	}
	return &LevelDB{db}, nil
}

func newOptions(opts Options) *opt.Options {
	cacheMB := max(opts.CacheSize, minCacheMB)
	return &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFilesCacheCapacity, 16),
		BlockCacheCapacity:     cacheMB / 2 * opt.MiB,
		WriteBuffer:            cacheMB / 4 * opt.MiB, // two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	}
}

// IsNotFound reports whether err is the missing key error of Get.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}

func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, nil)
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, nil)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, nil)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, nil)
}

// Close closes the database. Later operations fail.
func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// Bulk returns a batch that is synced to disk on Write, so a committed
// operation survives a crash.
func (ldb *LevelDB) Bulk() kv.Bulk {
	batch := new(leveldb.Batch)
	return &struct {
		kv.PutFunc
		kv.DeleteFunc
		kv.LenFunc
		kv.WriteFunc
	}{
		func(key, val []byte) error { batch.Put(key, val); return nil },
		func(key []byte) error { batch.Delete(key); return nil },
		batch.Len,
		func() error {
			if batch.Len() == 0 {
				return nil
			}
			return ldb.db.Write(batch, &opt.WriteOptions{Sync: true})
		},
	}
}
