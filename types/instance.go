// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"github.com/bitmark-inc/statestore/hashing"
)

// PrefixLength - bytes in a namespace prefix
const PrefixLength = 32

// StorageInstance - the names that identify a declared entry
type StorageInstance interface {
	ModulePrefix() string
	StoragePrefix() string
}

// Instance - a fixed module/storage name pair
type Instance struct {
	module  string
	storage string
}

// NewInstance - identity of a storage entry
func NewInstance(module string, storage string) Instance {
	return Instance{
		module:  module,
		storage: storage,
	}
}

// ModulePrefix - name of the declaring module
func (i Instance) ModulePrefix() string {
	return i.module
}

// StoragePrefix - name of the entry within its module
func (i Instance) StoragePrefix() string {
	return i.storage
}

// NamespacePrefix - twox128(module) ++ twox128(storage)
func NamespacePrefix(i StorageInstance) []byte {
	h := hashing.NewTwox128()
	prefix := make([]byte, 0, PrefixLength)
	prefix = append(prefix, h.Hash([]byte(i.ModulePrefix()))...)
	prefix = append(prefix, h.Hash([]byte(i.StoragePrefix()))...)
	return prefix
}
