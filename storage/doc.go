// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the ordered key/value engines below the accessors
//
// An Engine is a flat ordered byte key space with get, put, remove and
// prefix iteration.  The accessors in package types lay their data out
// in it as follows:
//
// Notes:
// 1. ++        = concatenation of byte data
// 2. twox128   = two little endian xxh64 words (16 bytes)
// 3. hasher(x) = the key hasher chosen for that key position
// 4. enc(x)    = codec encoding of x
//
//   twox128(module) ++ twox128(storage)                     - single value
//   twox128(module) ++ twox128(storage) ++ hasher(enc(k))   - map entry
//   twox128(module) ++ twox128(storage)
//                   ++ hasher1(enc(k1)) ++ hasher2(enc(k2)) - double map entry
//
// The first 32 bytes are the namespace prefix of a declared entry.
//
// Reserved:
//   0x00 ++ "VERSION"   - database version (big endian uint32)
//
// LevelDB is the persistent engine.  Overlay buffers the changes of one
// state transition on top of another engine and writes them in a single
// batch on Commit; only one transition may be in progress at a time.
package storage
