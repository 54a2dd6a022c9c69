// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balances

import (
	"github.com/bitmark-inc/statestore/codec"
	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/hashing"
	"github.com/bitmark-inc/statestore/types"
)

// ModuleName - prefix of every entry in this package
const ModuleName = "Balances"

// the declared entries
var (
	TotalIssuance = types.NewValue(
		types.NewInstance(ModuleName, "TotalIssuance"),
		codec.Scale[uint64](),
		types.ValueQuery[uint64](),
		nil,
	)

	Account = types.NewMap(
		types.NewInstance(ModuleName, "Account"),
		hashing.NewBlake2_128Concat(),
		codec.Scale[AccountID](),
		codec.Scale[AccountData](),
		types.ValueQuery[AccountData](),
		nil,
	)

	Allowance = types.NewDoubleMap(
		types.NewInstance(ModuleName, "Allowance"),
		hashing.NewBlake2_128Concat(),
		codec.Scale[AccountID](),
		hashing.NewTwox64Concat(),
		codec.Scale[AccountID](),
		codec.Scale[uint64](),
		types.OptionQuery[uint64](),
		nil,
	)

	Nonce = types.NewMap(
		types.NewInstance(ModuleName, "Nonce"),
		hashing.NewTwox64Concat(),
		codec.Scale[AccountID](),
		codec.Scale[uint32](),
		types.ValueQuery[uint32](),
		nil,
	)
)

// Module - registry of the entries above, in declaration order
var Module = types.NewModule(ModuleName)

func init() {
	err := Module.Register(TotalIssuance, Account, Allowance, Nonce)
	fault.PanicIfError("balances: register storage", err)
}
