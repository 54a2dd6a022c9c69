// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/statestore/fault"
)

// Hasher - a key hashing strategy
type Hasher interface {
	Kind() Kind
	Hash(data []byte) []byte
}

// ReversibleHasher - a hasher whose output ends with its input
type ReversibleHasher interface {
	Hasher

	// Reverse - strip the hash part, returning the embedded input
	// followed by any bytes that came after it in a longer key
	Reverse(hashed []byte) []byte
}

// the canonical instances
var (
	hashers = [...]Hasher{
		Blake2_128:       blake2_128{},
		Blake2_256:       blake2_256{},
		Blake2_128Concat: blake2_128Concat{},
		Twox128:          twox128{},
		Twox256:          twox256{},
		Twox64Concat:     twox64Concat{},
		Identity:         identity{},
	}
)

// ByKind - the hasher for a kind
func ByKind(k Kind) (Hasher, error) {
	if !k.Valid() {
		return nil, fault.ErrInvalidHasher
	}
	return hashers[k], nil
}

// IsReversible - true if the hasher embeds its input
func IsReversible(h Hasher) bool {
	_, ok := h.(ReversibleHasher)
	return ok
}

// NewBlake2_128 - 16 byte blake2b digest
func NewBlake2_128() Hasher { return blake2_128{} }

// NewBlake2_256 - 32 byte blake2b digest
func NewBlake2_256() Hasher { return blake2_256{} }

// NewBlake2_128Concat - 16 byte blake2b digest followed by the key
func NewBlake2_128Concat() ReversibleHasher { return blake2_128Concat{} }

// NewTwox128 - two xxh64 words
func NewTwox128() Hasher { return twox128{} }

// NewTwox256 - four xxh64 words
func NewTwox256() Hasher { return twox256{} }

// NewTwox64Concat - one xxh64 word followed by the key
func NewTwox64Concat() ReversibleHasher { return twox64Concat{} }

// NewIdentity - the key itself
func NewIdentity() ReversibleHasher { return identity{} }

type blake2_128 struct{}

func (blake2_128) Kind() Kind { return Blake2_128 }

func (blake2_128) Hash(data []byte) []byte {
	return blake2(data, 16)
}

type blake2_256 struct{}

func (blake2_256) Kind() Kind { return Blake2_256 }

func (blake2_256) Hash(data []byte) []byte {
	return blake2(data, 32)
}

type blake2_128Concat struct{}

func (blake2_128Concat) Kind() Kind { return Blake2_128Concat }

func (blake2_128Concat) Hash(data []byte) []byte {
	return append(blake2(data, 16), data...)
}

func (blake2_128Concat) Reverse(hashed []byte) []byte {
	return reverse(hashed, 16)
}

type twox128 struct{}

func (twox128) Kind() Kind { return Twox128 }

func (twox128) Hash(data []byte) []byte {
	return twox(data, 2)
}

type twox256 struct{}

func (twox256) Kind() Kind { return Twox256 }

func (twox256) Hash(data []byte) []byte {
	return twox(data, 4)
}

type twox64Concat struct{}

func (twox64Concat) Kind() Kind { return Twox64Concat }

func (twox64Concat) Hash(data []byte) []byte {
	return append(twox(data, 1), data...)
}

func (twox64Concat) Reverse(hashed []byte) []byte {
	return reverse(hashed, 8)
}

type identity struct{}

func (identity) Kind() Kind { return Identity }

func (identity) Hash(data []byte) []byte {
	result := make([]byte, len(data))
	copy(result, data)
	return result
}

func (identity) Reverse(hashed []byte) []byte {
	return hashed
}

// blake2b with the given digest size, no key
func blake2(data []byte, size int) []byte {
	h, err := blake2b.New(size, nil)
	if nil != err {
		// only possible for an invalid size, which is a constant here
		fault.Panicf("hashing.blake2 size: %d  error: %s", size, err)
	}
	h.Write(data)
	return h.Sum(make([]byte, 0, size+len(data)))
}

// concatenated little endian xxh64 words using seeds 0..words-1
func twox(data []byte, words int) []byte {
	result := make([]byte, 8*words, 8*words+len(data))
	for i := 0; i < words; i += 1 {
		d := xxhash.NewWithSeed(uint64(i))
		d.Write(data)
		binary.LittleEndian.PutUint64(result[8*i:], d.Sum64())
	}
	return result
}

// strip a fixed size hash, a short input yields nil
func reverse(hashed []byte, hashLength int) []byte {
	if len(hashed) < hashLength {
		return nil
	}
	return hashed[hashLength:]
}
