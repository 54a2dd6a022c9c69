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

// DoubleMap - values addressed by two independently hashed keys
//
// all entries sharing key1 are contiguous, so they can be enumerated
// or removed together
type DoubleMap[K1, K2, V, Q any] struct {
	entry[V, Q]
	hasher1 hashing.Hasher
	key1    codec.Codec[K1]
	hasher2 hashing.Hasher
	key2    codec.Codec[K2]
}

// NewDoubleMap - declare a double map entry
func NewDoubleMap[K1, K2, V, Q any](instance StorageInstance, hasher1 hashing.Hasher, key1 codec.Codec[K1], hasher2 hashing.Hasher, key2 codec.Codec[K2], value codec.Codec[V], query QueryKind[V, Q], onEmpty OnEmpty[Q]) *DoubleMap[K1, K2, V, Q] {
	e := newEntry(instance, value, query, onEmpty)
	if nil == hasher1 || nil == hasher2 {
		fault.Panicf("types: storage: %q needs two hashers", instance.StoragePrefix())
	}
	if nil == key1 || nil == key2 {
		fault.Panicf("types: storage: %q needs two key codecs", instance.StoragePrefix())
	}
	return &DoubleMap[K1, K2, V, Q]{
		entry:   e,
		hasher1: hasher1,
		key1:    key1,
		hasher2: hasher2,
		key2:    key2,
	}
}

func (m *DoubleMap[K1, K2, V, Q]) firstSegment(k1 K1) ([]byte, error) {
	b, err := m.key1.Encode(k1)
	if nil != err {
		return nil, err
	}
	return m.hasher1.Hash(b), nil
}

// HashedKey - prefix ++ hasher1(encode(k1)) ++ hasher2(encode(k2))
func (m *DoubleMap[K1, K2, V, Q]) HashedKey(k1 K1, k2 K2) ([]byte, error) {
	h1, err := m.firstSegment(k1)
	if nil != err {
		return nil, err
	}
	b, err := m.key2.Encode(k2)
	if nil != err {
		return nil, err
	}
	return m.physicalKey(h1, m.hasher2.Hash(b)), nil
}

// Get - read through the query kind
func (m *DoubleMap[K1, K2, V, Q]) Get(e storage.Engine, k1 K1, k2 K2) (Q, error) {
	key, err := m.HashedKey(k1, k2)
	if nil != err {
		var zero Q
		return zero, err
	}
	return m.read(e, key)
}

// Insert - store a value
func (m *DoubleMap[K1, K2, V, Q]) Insert(e storage.Engine, k1 K1, k2 K2, v V) error {
	key, err := m.HashedKey(k1, k2)
	if nil != err {
		return err
	}
	return m.write(e, key, v)
}

// Set - store a query result, None removes the entry
func (m *DoubleMap[K1, K2, V, Q]) Set(e storage.Engine, k1 K1, k2 K2, q Q) error {
	key, err := m.HashedKey(k1, k2)
	if nil != err {
		return err
	}
	return m.set(e, key, q)
}

// Remove - delete an entry
func (m *DoubleMap[K1, K2, V, Q]) Remove(e storage.Engine, k1 K1, k2 K2) error {
	key, err := m.HashedKey(k1, k2)
	if nil != err {
		return err
	}
	return e.Remove(key)
}

// ContainsKey - true if a value is stored for (k1, k2)
func (m *DoubleMap[K1, K2, V, Q]) ContainsKey(e storage.Engine, k1 K1, k2 K2) (bool, error) {
	key, err := m.HashedKey(k1, k2)
	if nil != err {
		return false, err
	}
	return m.exists(e, key)
}

// Take - read then remove
func (m *DoubleMap[K1, K2, V, Q]) Take(e storage.Engine, k1 K1, k2 K2) (Q, error) {
	key, err := m.HashedKey(k1, k2)
	if nil != err {
		var zero Q
		return zero, err
	}
	return m.take(e, key)
}

// Mutate - apply f to the current query result and store the outcome
func (m *DoubleMap[K1, K2, V, Q]) Mutate(e storage.Engine, k1 K1, k2 K2, f func(q *Q)) error {
	return m.TryMutate(e, k1, k2, func(q *Q) error {
		f(q)
		return nil
	})
}

// TryMutate - as Mutate, but nothing is stored if f fails
func (m *DoubleMap[K1, K2, V, Q]) TryMutate(e storage.Engine, k1 K1, k2 K2, f func(q *Q) error) error {
	key, err := m.HashedKey(k1, k2)
	if nil != err {
		return err
	}
	return m.mutate(e, key, f)
}

// recover key2 from the segment after key1
func (m *DoubleMap[K1, K2, V, Q]) decodeKey2(rh hashing.ReversibleHasher, segment []byte) (K2, error) {
	var zero K2
	raw := rh.Reverse(segment)
	if nil == raw {
		return zero, fmt.Errorf("%w: %s segment: %x", fault.ErrInvalidKeyLength, m.name(), segment)
	}
	k2, err := m.key2.Decode(raw)
	if nil != err {
		return zero, fmt.Errorf("%w: %s key2: %x: %w", fault.ErrCorruptValue, m.name(), raw, err)
	}
	return k2, nil
}

// Iter - enumerate every ((key1, key2), value)
//
// both hashers must be reversible, otherwise Err reports
// fault.ErrHasherNotReversible
func (m *DoubleMap[K1, K2, V, Q]) Iter(e storage.Engine) *Iterator[Pair[K1, K2], V] {
	rh1, ok1 := m.hasher1.(hashing.ReversibleHasher)
	rh2, ok2 := m.hasher2.(hashing.ReversibleHasher)
	if !ok1 || !ok2 {
		return failedIterator[Pair[K1, K2], V](fmt.Errorf("%s: %s/%s: %w", m.name(), m.hasher1.Kind(), m.hasher2.Kind(), fault.ErrHasherNotReversible))
	}

	return newIterator[Pair[K1, K2], V](e, m.prefix, func(suffix []byte, data []byte) (Pair[K1, K2], V, error) {
		var zeroP Pair[K1, K2]
		var zeroV V

		rest := rh1.Reverse(suffix)
		if nil == rest {
			return zeroP, zeroV, fmt.Errorf("%w: %s suffix: %x", fault.ErrInvalidKeyLength, m.name(), suffix)
		}
		k1, n, err := m.key1.DecodePrefix(rest)
		if nil != err {
			return zeroP, zeroV, fmt.Errorf("%w: %s key1: %x: %w", fault.ErrCorruptValue, m.name(), rest, err)
		}
		k2, err := m.decodeKey2(rh2, rest[n:])
		if nil != err {
			return zeroP, zeroV, err
		}
		v, err := m.decodeValue(suffix, data)
		if nil != err {
			return zeroP, zeroV, err
		}
		return Pair[K1, K2]{Key1: k1, Key2: k2}, v, nil
	})
}

// IterPrefix - enumerate (key2, value) for entries sharing k1
//
// hasher2 must be reversible
func (m *DoubleMap[K1, K2, V, Q]) IterPrefix(e storage.Engine, k1 K1) *Iterator[K2, V] {
	rh2, ok := m.hasher2.(hashing.ReversibleHasher)
	if !ok {
		return failedIterator[K2, V](fmt.Errorf("%s: %s: %w", m.name(), m.hasher2.Kind(), fault.ErrHasherNotReversible))
	}
	h1, err := m.firstSegment(k1)
	if nil != err {
		return failedIterator[K2, V](err)
	}

	return newIterator[K2, V](e, m.physicalKey(h1), func(segment []byte, data []byte) (K2, V, error) {
		var zeroV V
		k2, err := m.decodeKey2(rh2, segment)
		if nil != err {
			return k2, zeroV, err
		}
		v, err := m.decodeValue(segment, data)
		if nil != err {
			return k2, zeroV, err
		}
		return k2, v, nil
	})
}

// IterPrefixValues - enumerate values sharing k1 with their hashed
// key2 segment, any hasher
func (m *DoubleMap[K1, K2, V, Q]) IterPrefixValues(e storage.Engine, k1 K1) *Iterator[[]byte, V] {
	h1, err := m.firstSegment(k1)
	if nil != err {
		return failedIterator[[]byte, V](err)
	}
	return newIterator[[]byte, V](e, m.physicalKey(h1), func(segment []byte, data []byte) ([]byte, V, error) {
		v, err := m.decodeValue(segment, data)
		if nil != err {
			return nil, v, err
		}
		return append([]byte{}, segment...), v, nil
	})
}

// RemovePrefix - delete every entry sharing k1
func (m *DoubleMap[K1, K2, V, Q]) RemovePrefix(e storage.Engine, k1 K1) (int, error) {
	h1, err := m.firstSegment(k1)
	if nil != err {
		return 0, err
	}
	return removePrefix(e, m.physicalKey(h1))
}

// RemoveAll - delete every entry of this double map
func (m *DoubleMap[K1, K2, V, Q]) RemoveAll(e storage.Engine) (int, error) {
	return removePrefix(e, m.prefix)
}

// Descriptor - metadata for this entry
func (m *DoubleMap[K1, K2, V, Q]) Descriptor() metadata.Descriptor {
	return m.descriptor(metadata.DoubleMap, m.hasher1, m.hasher2)
}
