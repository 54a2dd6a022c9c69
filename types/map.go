// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"fmt"

	"github.com/bitmark-inc/statestore/codec"
	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/hashing"
	"github.com/bitmark-inc/statestore/metadata"
	"github.com/bitmark-inc/statestore/storage"
)

// Map - values addressed by one hashed key
type Map[K, V, Q any] struct {
	entry[V, Q]
	hasher hashing.Hasher
	key    codec.Codec[K]
}

// NewMap - declare a map entry
//
// only a hashing.ReversibleHasher allows keys to be enumerated
func NewMap[K, V, Q any](instance StorageInstance, hasher hashing.Hasher, key codec.Codec[K], value codec.Codec[V], query QueryKind[V, Q], onEmpty OnEmpty[Q]) *Map[K, V, Q] {
	e := newEntry(instance, value, query, onEmpty)
	if nil == hasher {
		fault.Panicf("types: storage: %q has no hasher", instance.StoragePrefix())
	}
	if nil == key {
		fault.Panicf("types: storage: %q has no key codec", instance.StoragePrefix())
	}
	return &Map[K, V, Q]{
		entry:  e,
		hasher: hasher,
		key:    key,
	}
}

// HashedKey - prefix ++ hasher(encode(k))
func (m *Map[K, V, Q]) HashedKey(k K) ([]byte, error) {
	b, err := m.key.Encode(k)
	if nil != err {
		return nil, err
	}
	return m.physicalKey(m.hasher.Hash(b)), nil
}

// Get - read through the query kind
func (m *Map[K, V, Q]) Get(e storage.Engine, k K) (Q, error) {
	key, err := m.HashedKey(k)
	if nil != err {
		var zero Q
		return zero, err
	}
	return m.read(e, key)
}

// Insert - store a value
func (m *Map[K, V, Q]) Insert(e storage.Engine, k K, v V) error {
	key, err := m.HashedKey(k)
	if nil != err {
		return err
	}
	return m.write(e, key, v)
}

// Set - store a query result, None removes the entry
func (m *Map[K, V, Q]) Set(e storage.Engine, k K, q Q) error {
	key, err := m.HashedKey(k)
	if nil != err {
		return err
	}
	return m.set(e, key, q)
}

// Remove - delete an entry, a missing entry is not an error
func (m *Map[K, V, Q]) Remove(e storage.Engine, k K) error {
	key, err := m.HashedKey(k)
	if nil != err {
		return err
	}
	return e.Remove(key)
}

// ContainsKey - true if a value is stored for k
func (m *Map[K, V, Q]) ContainsKey(e storage.Engine, k K) (bool, error) {
	key, err := m.HashedKey(k)
	if nil != err {
		return false, err
	}
	return m.exists(e, key)
}

// Take - read then remove
func (m *Map[K, V, Q]) Take(e storage.Engine, k K) (Q, error) {
	key, err := m.HashedKey(k)
	if nil != err {
		var zero Q
		return zero, err
	}
	return m.take(e, key)
}

// Mutate - apply f to the current query result and store the outcome
func (m *Map[K, V, Q]) Mutate(e storage.Engine, k K, f func(q *Q)) error {
	return m.TryMutate(e, k, func(q *Q) error {
		f(q)
		return nil
	})
}

// TryMutate - as Mutate, but nothing is stored if f fails
func (m *Map[K, V, Q]) TryMutate(e storage.Engine, k K, f func(q *Q) error) error {
	key, err := m.HashedKey(k)
	if nil != err {
		return err
	}
	return m.mutate(e, key, f)
}

// Swap - exchange the stored values of two keys, absence included
func (m *Map[K, V, Q]) Swap(e storage.Engine, k1 K, k2 K) error {
	key1, err := m.HashedKey(k1)
	if nil != err {
		return err
	}
	key2, err := m.HashedKey(k2)
	if nil != err {
		return err
	}

	data1, found1, err := e.Get(key1)
	if nil != err {
		return err
	}
	data2, found2, err := e.Get(key2)
	if nil != err {
		return err
	}

	if found2 {
		err = e.Put(key1, data2)
	} else {
		err = e.Remove(key1)
	}
	if nil != err {
		return err
	}
	if found1 {
		return e.Put(key2, data1)
	}
	return e.Remove(key2)
}

// Iter - enumerate (key, value) pairs in physical key order
//
// the keys are recovered from the physical keys, so the hasher must be
// reversible, otherwise the iterator is empty and Err reports
// fault.ErrHasherNotReversible
func (m *Map[K, V, Q]) Iter(e storage.Engine) *Iterator[K, V] {
	rh, ok := m.hasher.(hashing.ReversibleHasher)
	if !ok {
		return failedIterator[K, V](fmt.Errorf("%s: %s: %w", m.name(), m.hasher.Kind(), fault.ErrHasherNotReversible))
	}

	return newIterator[K, V](e, m.prefix, func(suffix []byte, data []byte) (K, V, error) {
		var zeroK K
		var zeroV V

		raw := rh.Reverse(suffix)
		if nil == raw {
			return zeroK, zeroV, fmt.Errorf("%w: %s suffix: %x", fault.ErrInvalidKeyLength, m.name(), suffix)
		}
		k, err := m.key.Decode(raw)
		if nil != err {
			return zeroK, zeroV, fmt.Errorf("%w: %s key: %x: %w", fault.ErrCorruptValue, m.name(), raw, err)
		}
		v, err := m.decodeValue(suffix, data)
		if nil != err {
			return zeroK, zeroV, err
		}
		return k, v, nil
	})
}

// IterValues - enumerate values with the hashed key suffix, any hasher
func (m *Map[K, V, Q]) IterValues(e storage.Engine) *Iterator[[]byte, V] {
	return newIterator[[]byte, V](e, m.prefix, func(suffix []byte, data []byte) ([]byte, V, error) {
		v, err := m.decodeValue(suffix, data)
		if nil != err {
			return nil, v, err
		}
		return append([]byte{}, suffix...), v, nil
	})
}

// RemoveAll - delete every entry of this map
func (m *Map[K, V, Q]) RemoveAll(e storage.Engine) (int, error) {
	return removePrefix(e, m.prefix)
}

// Descriptor - metadata for this entry
func (m *Map[K, V, Q]) Descriptor() metadata.Descriptor {
	return m.descriptor(metadata.Map, m.hasher)
}
