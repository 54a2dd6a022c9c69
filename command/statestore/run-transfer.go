// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/statestore/balances"
)

func runMint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	to, err := checkAccount(c.String("account"))
	if nil != err {
		return err
	}
	amount := c.Uint64("amount")

	if m.verbose {
		fmt.Fprintf(m.e, "mint: %d to: %s\n", amount, to)
	}

	if err := m.ledger.Mint(to, amount); nil != err {
		return err
	}

	data, err := m.ledger.Balance(to)
	if nil != err {
		return err
	}
	return printJson(m.w, accountBalance{
		Account:  to,
		Free:     data.Free,
		Reserved: data.Reserved,
	})
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	from, err := checkAccount(c.String("from"))
	if nil != err {
		return err
	}
	to, err := checkAccount(c.String("to"))
	if nil != err {
		return err
	}
	amount := c.Uint64("amount")

	if m.verbose {
		fmt.Fprintf(m.e, "transfer: %d from: %s to: %s\n", amount, from, to)
	}

	if err := m.ledger.Transfer(from, to, amount); nil != err {
		return err
	}

	result := make([]accountBalance, 0, 2)
	for _, id := range []balances.AccountID{from, to} {
		data, err := m.ledger.Balance(id)
		if nil != err {
			return err
		}
		result = append(result, accountBalance{
			Account:  id,
			Free:     data.Free,
			Reserved: data.Reserved,
		})
	}
	return printJson(m.w, result)
}
