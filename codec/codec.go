// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/bitmark-inc/statestore/fault"
)

// Codec - encode and decode values of one type
type Codec[T any] interface {
	Encode(value T) ([]byte, error)
	Decode(data []byte) (T, error)
	DecodePrefix(data []byte) (T, int, error)
}

// strict decode in terms of DecodePrefix
func decodeAll[T any](c Codec[T], data []byte) (T, error) {
	value, n, err := c.DecodePrefix(data)
	if nil != err {
		var zero T
		return zero, err
	}
	if n != len(data) {
		var zero T
		return zero, fault.ErrTrailingBytes
	}
	return value, nil
}
