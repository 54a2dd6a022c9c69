// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/statestore/codec"
	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/hashing"
	"github.com/bitmark-inc/statestore/metadata"
	"github.com/bitmark-inc/statestore/storage"
)

// the parts shared by every accessor
type entry[V, Q any] struct {
	instance StorageInstance
	prefix   []byte
	value    codec.Codec[V]
	query    QueryKind[V, Q]
	onEmpty  OnEmpty[Q]
	defaults *lazyDefault
}

func newEntry[V, Q any](instance StorageInstance, value codec.Codec[V], query QueryKind[V, Q], onEmpty OnEmpty[Q]) entry[V, Q] {
	if nil == instance {
		fault.Panicf("types: storage declared without an instance")
	}
	if nil == value {
		fault.Panicf("types: storage: %q has no value codec", instance.StoragePrefix())
	}
	if nil == query {
		fault.Panicf("types: storage: %q has no query kind", instance.StoragePrefix())
	}
	if metadata.Optional == query.Modifier() && nil != onEmpty {
		fault.Panicf("types: storage: %q optional query cannot have a default", instance.StoragePrefix())
	}
	if nil == onEmpty {
		onEmpty = GetDefault[Q]()
	}

	return entry[V, Q]{
		instance: instance,
		prefix:   NamespacePrefix(instance),
		value:    value,
		query:    query,
		onEmpty:  onEmpty,
		defaults: &lazyDefault{
			compute: func() ([]byte, error) {
				return query.EncodeQuery(value, onEmpty())
			},
		},
	}
}

// Instance - the declared identity
func (s *entry[V, Q]) Instance() StorageInstance {
	return s.instance
}

// Prefix - a copy of the 32 byte namespace prefix
func (s *entry[V, Q]) Prefix() []byte {
	return append([]byte{}, s.prefix...)
}

func (s *entry[V, Q]) name() string {
	return s.instance.ModulePrefix() + "." + s.instance.StoragePrefix()
}

// prefix ++ each part, always a fresh slice
func (s *entry[V, Q]) physicalKey(parts ...[]byte) []byte {
	n := len(s.prefix)
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	key = append(key, s.prefix...)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func (s *entry[V, Q]) decodeValue(key []byte, data []byte) (V, error) {
	v, err := s.value.Decode(data)
	if nil != err {
		var zero V
		return zero, fmt.Errorf("%w: %s key: %x: %w", fault.ErrCorruptValue, s.name(), key, err)
	}
	return v, nil
}

func (s *entry[V, Q]) read(e storage.Engine, key []byte) (Q, error) {
	data, found, err := e.Get(key)
	if nil != err {
		var zero Q
		return zero, err
	}
	if !found {
		return s.query.ToQuery(None[V](), s.onEmpty), nil
	}
	v, err := s.decodeValue(key, data)
	if nil != err {
		var zero Q
		return zero, err
	}
	return s.query.ToQuery(Some(v), s.onEmpty), nil
}

func (s *entry[V, Q]) write(e storage.Engine, key []byte, v V) error {
	data, err := s.value.Encode(v)
	if nil != err {
		return err
	}
	return e.Put(key, data)
}

// Some => write, None => remove
func (s *entry[V, Q]) set(e storage.Engine, key []byte, q Q) error {
	if v, ok := s.query.ToOptional(q).Unwrap(); ok {
		return s.write(e, key, v)
	}
	return e.Remove(key)
}

func (s *entry[V, Q]) exists(e storage.Engine, key []byte) (bool, error) {
	_, found, err := e.Get(key)
	return found, err
}

func (s *entry[V, Q]) take(e storage.Engine, key []byte) (Q, error) {
	q, err := s.read(e, key)
	if nil != err {
		return q, err
	}
	return q, e.Remove(key)
}

// read, modify, write back: not atomic, a single writer is assumed
func (s *entry[V, Q]) mutate(e storage.Engine, key []byte, f func(q *Q) error) error {
	q, err := s.read(e, key)
	if nil != err {
		return err
	}
	if err := f(&q); nil != err {
		return err
	}
	return s.set(e, key, q)
}

func (s *entry[V, Q]) descriptor(entryType metadata.EntryType, hashers ...hashing.Hasher) metadata.Descriptor {
	var kinds []hashing.Kind
	for _, h := range hashers {
		kinds = append(kinds, h.Kind())
	}
	return metadata.Descriptor{
		Name:     s.instance.StoragePrefix(),
		Modifier: s.query.Modifier(),
		Type:     entryType,
		Hashers:  kinds,
		Default:  s.defaults,
	}
}

// encoded default computed on first use, then shared
type lazyDefault struct {
	once    sync.Once
	compute func() ([]byte, error)
	bytes   []byte
	err     error
}

// DefaultBytes - a copy of the cached encoding
func (d *lazyDefault) DefaultBytes() ([]byte, error) {
	d.once.Do(func() {
		d.bytes, d.err = d.compute()
	})
	if nil != d.err {
		return nil, d.err
	}
	return append([]byte{}, d.bytes...), nil
}
