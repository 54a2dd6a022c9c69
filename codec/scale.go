// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"

	"github.com/ChainSafe/gossamer/pkg/scale"

	"github.com/bitmark-inc/statestore/fault"
)

type scaleCodec[T any] struct{}

// Scale - SCALE codec for any type the scale package supports
// (fixed width integers, bool, string, byte slices and arrays, slices
// and structs of exported fields)
func Scale[T any]() Codec[T] {
	return scaleCodec[T]{}
}

func (scaleCodec[T]) Encode(value T) ([]byte, error) {
	return scale.Marshal(value)
}

func (c scaleCodec[T]) Decode(data []byte) (T, error) {
	return decodeAll[T](c, data)
}

// DecodePrefix - decode from the start of data
//
// the consumed bytes must be the canonical encoding of the result,
// this rejects short reads of fixed width fields at the end of data
func (scaleCodec[T]) DecodePrefix(data []byte) (T, int, error) {
	var value T
	var zero T

	r := bytes.NewReader(data)
	if err := scale.NewDecoder(r).Decode(&value); nil != err {
		return zero, 0, err
	}
	n := len(data) - r.Len()

	canonical, err := scale.Marshal(value)
	if nil != err {
		return zero, 0, err
	}
	if !bytes.Equal(canonical, data[:n]) {
		if n < len(canonical) {
			return zero, 0, fault.ErrTruncatedRecord
		}
		return zero, 0, fault.ErrCorruptValue
	}
	return value, n, nil
}
