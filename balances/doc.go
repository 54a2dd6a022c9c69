// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balances - a token ledger declared with typed storage
//
// Entries under the "Balances" module:
//
//   TotalIssuance  Value                                    u64, default 0
//   Account        Map  blake2_128concat(AccountID)         AccountData, default zero
//   Allowance      DoubleMap blake2_128concat(owner)
//                            twox64concat(spender)          u64, optional
//   Nonce          Map  twox64concat(AccountID)             u32, default 0
//
// Each ledger operation is one state transition on a storage.Overlay:
// either all of its writes are committed or none are.
package balances
