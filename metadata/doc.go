// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metadata - self description of declared storage entries
//
// A Descriptor tells external tooling how to address and decode one
// entry without access to its Go declaration: the query modifier, the
// hasher of each key position and the encoded value returned for an
// absent entry.  Descriptors are produced by package types from the
// same configuration the accessor uses at run time.
//
// Binary form (SCALE), for light clients:
//
//   modules:  compact(n) ++ module*
//   module:   name ++ compact(n) ++ entry*
//   entry:    name ++ modifier(u8) ++ type(u8) ++ hashers(bytes) ++ default(bytes)
package metadata
