// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/statestore/balances"
)

type accountBalance struct {
	Account  balances.AccountID `json:"account"`
	Free     uint64             `json:"free"`
	Reserved uint64             `json:"reserved"`
	Nonce    uint32             `json:"nonce,omitempty"`
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkAccount(c.String("account"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "account: %s\n", id)
	}

	data, err := m.ledger.Balance(id)
	if nil != err {
		return err
	}
	nonce, err := m.ledger.NonceOf(id)
	if nil != err {
		return err
	}

	return printJson(m.w, accountBalance{
		Account:  id,
		Free:     data.Free,
		Reserved: data.Reserved,
		Nonce:    nonce,
	})
}

// sentinel to end enumeration early
var errEnough = errors.New("enough")

func runAccounts(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count < 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	list := []accountBalance{}
	err := m.ledger.Accounts(func(id balances.AccountID, data balances.AccountData) error {
		list = append(list, accountBalance{
			Account:  id,
			Free:     data.Free,
			Reserved: data.Reserved,
		})
		if count > 0 && len(list) >= count {
			return errEnough
		}
		return nil
	})
	if nil != err && errEnough != err {
		return err
	}

	return printJson(m.w, list)
}

func checkAccount(s string) (balances.AccountID, error) {
	if "" == s {
		return balances.AccountID{}, fmt.Errorf("account is required")
	}
	return balances.AccountFromHex(s)
}
