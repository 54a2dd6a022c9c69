// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package types - typed accessors over a flat key/value engine
//
// Every declared entry owns a 32 byte namespace prefix:
//
//   twox128(module) ++ twox128(storage)
//
// and its physical keys are:
//
//   Value:      prefix
//   Map:        prefix ++ hasher(encode(key))
//   DoubleMap:  prefix ++ hasher1(encode(key1)) ++ hasher2(encode(key2))
//
// Accessors hold no state besides their declaration and never retain
// the engine passed to each operation, so one accessor can be used by
// any number of goroutines.  Writes are not synchronised: a single
// writer per engine is assumed (see storage.Overlay for a guarded
// transition).
//
// A query kind decides how absence is reported:
//
//   OptionQuery  absent => None, declaring a default provider panics
//   ValueQuery   absent => OnEmpty(), every read is present
//
// A stored value that cannot be decoded is always an error wrapping
// fault.ErrCorruptValue and is never reported as absence.
package types
