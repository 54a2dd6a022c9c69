// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/bitmark-inc/statestore/fault"
)

// Varint64MaximumBytes - maximum possible number of bytes in a varint
const Varint64MaximumBytes = 9

type varintCodec struct{}

// Varint - compact codec for uint64
func Varint() Codec[uint64] {
	return varintCodec{}
}

func (varintCodec) Encode(value uint64) ([]byte, error) {
	return ToVarint64(value), nil
}

func (c varintCodec) Decode(data []byte) (uint64, error) {
	return decodeAll[uint64](c, data)
}

func (varintCodec) DecodePrefix(data []byte) (uint64, int, error) {
	value, n := FromVarint64(data)
	if 0 == n {
		return 0, 0, fault.ErrTruncatedRecord
	}
	return value, n, nil
}

type bytesCodec struct{}

// Bytes - varint length followed by the raw bytes
func Bytes() Codec[[]byte] {
	return bytesCodec{}
}

func (bytesCodec) Encode(value []byte) ([]byte, error) {
	result := ToVarint64(uint64(len(value)))
	return append(result, value...), nil
}

func (c bytesCodec) Decode(data []byte) ([]byte, error) {
	return decodeAll[[]byte](c, data)
}

func (bytesCodec) DecodePrefix(data []byte) ([]byte, int, error) {
	length, n := FromVarint64(data)
	if 0 == n || uint64(len(data)-n) < length {
		return nil, 0, fault.ErrTruncatedRecord
	}
	end := n + int(length)
	result := make([]byte, length)
	copy(result, data[n:end])
	return result, end, nil
}

// ToVarint64 - convert a 64 bit unsigned integer to a varint
func ToVarint64(value uint64) []byte {
	result := make([]byte, 0, Varint64MaximumBytes)
	if value < 0x80 {
		return append(result, byte(value))
	}

	for i := 0; i < Varint64MaximumBytes && value != 0; i += 1 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		result = append(result, byte(value|ext))
		value >>= 7
	}
	return result
}

// FromVarint64 - convert up to Varint64MaximumBytes to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if the buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)
	shift := uint(0)

	for count := 0; count < len(buffer); {
		currentByte := uint64(buffer[count])
		count += 1
		if count == Varint64MaximumBytes {
			return result | currentByte<<shift, count
		}
		result |= currentByte & 0x7f << shift
		if 0 == currentByte&0x80 {
			return result, count
		}
		shift += 7
	}
	return 0, 0
}
