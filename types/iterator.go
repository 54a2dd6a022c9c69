// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"fmt"

	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/storage"
)

// Pair - the two keys of a double map entry
type Pair[K1, K2 any] struct {
	Key1 K1
	Key2 K2
}

// turns the key suffix after the iterated prefix and the stored value
// into typed results
type decoder[K, V any] func(suffix []byte, value []byte) (K, V, error)

// Iterator - lazy enumeration of decoded entries under a prefix
//
// usage:
//   iter := m.Iter(engine)
//   defer iter.Release()
//   for iter.Next() {
//       k, v := iter.Key(), iter.Value()
//       ...
//   }
//   if err := iter.Err(); nil != err {
//       ...
//   }
//
// enumeration stops at the first error, which is kept for Err
type Iterator[K, V any] struct {
	iter   storage.Iterator
	skip   int
	decode decoder[K, V]
	key    K
	value  V
	err    error
}

func newIterator[K, V any](e storage.Engine, prefix []byte, decode decoder[K, V]) *Iterator[K, V] {
	return &Iterator[K, V]{
		iter:   e.IteratePrefix(prefix),
		skip:   len(prefix),
		decode: decode,
	}
}

// an iterator that yields nothing and reports err
func failedIterator[K, V any](err error) *Iterator[K, V] {
	return &Iterator[K, V]{
		err: err,
	}
}

// Next - advance, false at the end or on error
func (i *Iterator[K, V]) Next() bool {
	if nil != i.err || nil == i.iter {
		return false
	}
	if !i.iter.Next() {
		i.Release()
		return false
	}

	raw := i.iter.Key()
	if len(raw) < i.skip {
		i.err = fmt.Errorf("%w: %x", fault.ErrInvalidKeyLength, raw)
		i.Release()
		return false
	}
	k, v, err := i.decode(raw[i.skip:], i.iter.Value())
	if nil != err {
		i.err = err
		i.Release()
		return false
	}
	i.key = k
	i.value = v
	return true
}

// Key - key of the current entry
func (i *Iterator[K, V]) Key() K {
	return i.key
}

// Value - value of the current entry
func (i *Iterator[K, V]) Value() V {
	return i.value
}

// Err - the error that stopped enumeration, if any
func (i *Iterator[K, V]) Err() error {
	return i.err
}

// Release - free the underlying engine iterator, safe to repeat
func (i *Iterator[K, V]) Release() {
	if nil == i.iter {
		return
	}
	if err := i.iter.Error(); nil != err && nil == i.err {
		i.err = err
	}
	i.iter.Release()
	i.iter = nil
}

// physical keys of every entry under a prefix
func collectKeys(e storage.Engine, prefix []byte) ([][]byte, error) {
	iter := e.IteratePrefix(prefix)
	keys := [][]byte{}
	for iter.Next() {
		keys = append(keys, append([]byte{}, iter.Key()...))
	}
	err := iter.Error()
	iter.Release()
	return keys, err
}

// remove every entry under a prefix, returning the count removed
func removePrefix(e storage.Engine, prefix []byte) (int, error) {
	keys, err := collectKeys(e, prefix)
	if nil != err {
		return 0, err
	}
	for n, key := range keys {
		if err := e.Remove(key); nil != err {
			return n, err
		}
	}
	return len(keys), nil
}
