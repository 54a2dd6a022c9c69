// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"fmt"

	"github.com/bitmark-inc/statestore/fault"
)

// Kind - identifies a hashing strategy in metadata
//
// the numeric values are part of the metadata encoding and must not change
type Kind uint8

// the hasher kinds - keep in metadata order
const (
	Blake2_128 Kind = iota
	Blake2_256
	Blake2_128Concat
	Twox128
	Twox256
	Twox64Concat
	Identity
)

var kindNames = [...]string{
	Blake2_128:       "Blake2_128",
	Blake2_256:       "Blake2_256",
	Blake2_128Concat: "Blake2_128Concat",
	Twox128:          "Twox128",
	Twox256:          "Twox256",
	Twox64Concat:     "Twox64Concat",
	Identity:         "Identity",
}

// Valid - true if kind is one of the defined values
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// String - name of the kind
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("*Unknown(%d)*", uint8(k))
	}
	return kindNames[k]
}

// MarshalText - kind as its name
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fault.ErrInvalidHasher
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText - kind from its name
func (k *Kind) UnmarshalText(s []byte) error {
	for i, name := range kindNames {
		if name == string(s) {
			*k = Kind(i)
			return nil
		}
	}
	return fault.ErrInvalidHasher
}
