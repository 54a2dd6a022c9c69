// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/statestore/balances"
	"github.com/bitmark-inc/statestore/configuration"
)

func runGenesis(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	accounts, err := genesisAccounts(m.config.Genesis)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "genesis accounts: %d\n", len(accounts))
	}

	if err := m.ledger.Genesis(accounts); nil != err {
		return err
	}

	total, err := m.ledger.Issuance()
	if nil != err {
		return err
	}

	return printJson(m.w, struct {
		Accounts int    `json:"accounts"`
		Issuance uint64 `json:"issuance"`
	}{
		Accounts: len(accounts),
		Issuance: total,
	})
}

// convert the configured hex accounts
func genesisAccounts(genesis configuration.GenesisType) ([]balances.GenesisAccount, error) {
	accounts := make([]balances.GenesisAccount, 0, len(genesis.Accounts))
	for i, a := range genesis.Accounts {
		id, err := balances.AccountFromHex(a.Account)
		if nil != err {
			return nil, fmt.Errorf("genesis account[%d]: %q: %w", i, a.Account, err)
		}
		accounts = append(accounts, balances.GenesisAccount{
			Account: id,
			Free:    a.Free,
		})
	}
	return accounts, nil
}
