// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"github.com/bitmark-inc/statestore/codec"
	"github.com/bitmark-inc/statestore/metadata"
)

// OnEmpty - supplies the query result for an absent entry
//
// must be pure: it is called on every absent read and once for metadata
type OnEmpty[Q any] func() Q

// GetDefault - the zero value of Q
func GetDefault[Q any]() OnEmpty[Q] {
	return func() Q {
		var q Q
		return q
	}
}

// Constant - always the same value
//
// q is shared by every call, so must not contain mutable references
func Constant[Q any](q Q) OnEmpty[Q] {
	return func() Q {
		return q
	}
}

// QueryKind - converts between the stored form Option[V] and the
// result type Q seen by callers
type QueryKind[V, Q any] interface {
	Modifier() metadata.Modifier
	ToQuery(v Option[V], onEmpty OnEmpty[Q]) Q
	ToOptional(q Q) Option[V]
	EncodeQuery(c codec.Codec[V], q Q) ([]byte, error)
}

type optionQuery[V any] struct{}

// OptionQuery - absence is visible to the caller as None
func OptionQuery[V any]() QueryKind[V, Option[V]] {
	return optionQuery[V]{}
}

func (optionQuery[V]) Modifier() metadata.Modifier {
	return metadata.Optional
}

// ToQuery - identity, onEmpty is not consulted
func (optionQuery[V]) ToQuery(v Option[V], _ OnEmpty[Option[V]]) Option[V] {
	return v
}

func (optionQuery[V]) ToOptional(q Option[V]) Option[V] {
	return q
}

// EncodeQuery - 0x00 for None, 0x01 followed by the value for Some
func (optionQuery[V]) EncodeQuery(c codec.Codec[V], q Option[V]) ([]byte, error) {
	v, ok := q.Unwrap()
	if !ok {
		return []byte{0x00}, nil
	}
	b, err := c.Encode(v)
	if nil != err {
		return nil, err
	}
	return append([]byte{0x01}, b...), nil
}

type valueQuery[V any] struct{}

// ValueQuery - absence is replaced by the default
func ValueQuery[V any]() QueryKind[V, V] {
	return valueQuery[V]{}
}

func (valueQuery[V]) Modifier() metadata.Modifier {
	return metadata.Default
}

func (valueQuery[V]) ToQuery(v Option[V], onEmpty OnEmpty[V]) V {
	if value, ok := v.Unwrap(); ok {
		return value
	}
	return onEmpty()
}

// ToOptional - always Some, writing the default stores it
func (valueQuery[V]) ToOptional(q V) Option[V] {
	return Some(q)
}

func (valueQuery[V]) EncodeQuery(c codec.Codec[V], q V) ([]byte, error) {
	return c.Encode(q)
}
