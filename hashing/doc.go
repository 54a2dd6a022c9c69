// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashing - key hashing strategies
//
// Each strategy maps an encoded key to the bytes that are appended to
// a namespace prefix to form a physical database key.
//
//   kind              output                              reversible
//   ----------------  ----------------------------------  ----------
//   Blake2_128        blake2b-128(x)                16 B  no
//   Blake2_256        blake2b-256(x)                32 B  no
//   Blake2_128Concat  blake2b-128(x) ++ x       16 + |x|  yes
//   Twox128           xxh64(x,0) ++ xxh64(x,1)      16 B  no
//   Twox256           xxh64(x,0..3)                 32 B  no
//   Twox64Concat      xxh64(x,0) ++ x            8 + |x|  yes
//   Identity          x                              |x|  yes
//
// xxh64 words are stored little endian.
//
// A reversible ("transparent") strategy embeds the original input so
// the key can be recovered while iterating a prefix.  The opaque
// strategies are smaller but only allow iteration over values.
//
// All hashers are stateless values and are safe for concurrent use.
package hashing
