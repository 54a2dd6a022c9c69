// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
)

// Option - a value that may be absent
type Option[V any] struct {
	value V
	ok    bool
}

// Some - a present value
func Some[V any](v V) Option[V] {
	return Option[V]{value: v, ok: true}
}

// None - an absent value
func None[V any]() Option[V] {
	return Option[V]{}
}

// IsSome - true if present
func (o Option[V]) IsSome() bool {
	return o.ok
}

// IsNone - true if absent
func (o Option[V]) IsNone() bool {
	return !o.ok
}

// Unwrap - the value and whether it was present
func (o Option[V]) Unwrap() (V, bool) {
	return o.value, o.ok
}

// UnwrapOr - the value or the fallback
func (o Option[V]) UnwrapOr(fallback V) V {
	if o.ok {
		return o.value
	}
	return fallback
}

func (o Option[V]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
