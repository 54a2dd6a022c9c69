// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - value encodings used by the storage accessors
//
// A Codec converts one Go type to and from bytes.  Decode is strict:
// the whole input must be consumed.  DecodePrefix decodes a value from
// the start of a longer buffer and reports how many bytes it used, so
// a key recovered from a concatenated physical key can be split.
//
// Scale uses the SCALE encoding, Varint and Bytes use the compact
// varint format:
//
//   byte 1:  ext | B06 | B05 | B04 | B03 | B02 | B01 | B00
//   byte 2:  ext | B13 | B12 | B11 | B10 | B09 | B08 | B07
//   ...
//   byte 9:  B63 | B62 | B61 | B60 | B59 | B58 | B57 | B56
package codec
