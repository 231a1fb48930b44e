// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket is a key prefix carving a logical namespace out of a store.
type Bucket string

// Key returns the prefixed form of key. The result never aliases key.
func (b Bucket) Key(key []byte) []byte {
	k := make([]byte, 0, len(b)+len(key))
	return append(append(k, b...), key...)
}

// NewGetter scopes src to the bucket.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
	}{
		func(key []byte) ([]byte, error) { return src.Get(b.Key(key)) },
		func(key []byte) (bool, error) { return src.Has(b.Key(key)) },
		src.IsNotFound,
	}
}

// NewPutter scopes src to the bucket.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
	}{
		func(key, val []byte) error { return src.Put(b.Key(key), val) },
		func(key []byte) error { return src.Delete(b.Key(key)) },
	}
}

// NewStore scopes src to the bucket. Bulks opened on the result write
// into the bucket too.
func (b Bucket) NewStore(src Store) Store {
	return &struct {
		Getter
		Putter
		BulkFunc
	}{
		b.NewGetter(src),
		b.NewPutter(src),
		func() Bulk {
			bulk := src.Bulk()
			return &struct {
				Putter
				LenFunc
				WriteFunc
			}{b.NewPutter(bulk), bulk.Len, bulk.Write}
		},
	}
}
