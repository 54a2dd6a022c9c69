// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"github.com/bitmark-inc/statestore/codec"
	"github.com/bitmark-inc/statestore/metadata"
	"github.com/bitmark-inc/statestore/storage"
)

// Value - a single value stored at the namespace prefix
type Value[V, Q any] struct {
	entry[V, Q]
}

// NewValue - declare a single value entry
//
// a nil onEmpty uses the zero value of Q
func NewValue[V, Q any](instance StorageInstance, value codec.Codec[V], query QueryKind[V, Q], onEmpty OnEmpty[Q]) *Value[V, Q] {
	return &Value[V, Q]{
		entry: newEntry(instance, value, query, onEmpty),
	}
}

// HashedKey - the physical key, i.e. the namespace prefix
func (s *Value[V, Q]) HashedKey() []byte {
	return s.physicalKey()
}

// Get - read through the query kind
func (s *Value[V, Q]) Get(e storage.Engine) (Q, error) {
	return s.read(e, s.prefix)
}

// Put - store a value
func (s *Value[V, Q]) Put(e storage.Engine, v V) error {
	return s.write(e, s.prefix, v)
}

// Set - store a query result, None removes the value
func (s *Value[V, Q]) Set(e storage.Engine, q Q) error {
	return s.set(e, s.prefix, q)
}

// Kill - remove the value
func (s *Value[V, Q]) Kill(e storage.Engine) error {
	return e.Remove(s.prefix)
}

// Exists - true if a value is stored, defaults do not count
func (s *Value[V, Q]) Exists(e storage.Engine) (bool, error) {
	return s.exists(e, s.prefix)
}

// Take - read then remove
func (s *Value[V, Q]) Take(e storage.Engine) (Q, error) {
	return s.take(e, s.prefix)
}

// Mutate - apply f to the current query result and store the outcome
func (s *Value[V, Q]) Mutate(e storage.Engine, f func(q *Q)) error {
	return s.mutate(e, s.prefix, func(q *Q) error {
		f(q)
		return nil
	})
}

// TryMutate - as Mutate, but nothing is stored if f fails
func (s *Value[V, Q]) TryMutate(e storage.Engine, f func(q *Q) error) error {
	return s.mutate(e, s.prefix, f)
}

// Descriptor - metadata for this entry
func (s *Value[V, Q]) Descriptor() metadata.Descriptor {
	return s.descriptor(metadata.Plain)
}
