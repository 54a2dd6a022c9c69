// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/statestore/balances"
	"github.com/bitmark-inc/statestore/configuration"
	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/storage"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	db      *storage.LevelDB
	ledger  *balances.Ledger
	verbose bool
	logging bool // logger was initialised
	faults  bool // fault was initialised
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// the command table with its setup and teardown
func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "statestore"
	app.Usage = "typed key/value state storage"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "statestore.conf",
			Usage: " Lua configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "metadata",
			Usage:     "describe the declared storage entries",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Value: "json",
					Usage: " output `FORMAT` [json|yaml|scale]",
				},
			},
			Action: runMetadata,
		},
		{
			Name:   "genesis",
			Usage:  "write the configured initial balances to an empty database",
			Action: runGenesis,
		},
		{
			Name:      "balance",
			Usage:     "show the balances of one account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*account `HEX`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "accounts",
			Usage:     "list every stored account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " stop after `COUNT` accounts, 0 for all",
				},
			},
			Action: runAccounts,
		},
		{
			Name:      "mint",
			Usage:     "create new funds in an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*receiving account `HEX`",
				},
				cli.Uint64Flag{
					Name:  "amount, m",
					Value: 0,
					Usage: "*`AMOUNT` to create",
				},
			},
			Action: runMint,
		},
		{
			Name:      "transfer",
			Usage:     "move funds between accounts",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: "*sending account `HEX`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*receiving account `HEX`",
				},
				cli.Uint64Flag{
					Name:  "amount, m",
					Value: 0,
					Usage: "*`AMOUNT` to move",
				},
			},
			Action: runTransfer,
		},
		{
			Name:  "version",
			Usage: "display statestore version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration and open the database
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		m := &metadata{
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		// commands that need neither configuration nor database
		switch c.Args().Get(0) {
		case "", "help", "h", "version", "metadata":
			return nil
		}

		m.file = c.GlobalString("config")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", m.file)
		}

		config, err := configuration.GetConfiguration(m.file, nil)
		if nil != err {
			return err
		}
		m.config = config

		if err := logger.Initialise(config.Logging); nil != err {
			return err
		}
		m.logging = true
		if err := fault.Initialise(); nil != err {
			return err
		}
		m.faults = true

		mode := storage.ReadWrite
		if config.ReadOnly {
			mode = storage.ReadOnly
		}
		if verbose {
			fmt.Fprintf(e, "database: %s\n", config.Database.Name)
		}
		m.db, err = storage.Open(config.Database.Name, mode)
		if nil != err {
			return err
		}

		m.ledger, err = balances.New(m.db)
		return err
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		return m.finalise()
	}

	return app
}

// release whatever Before managed to set up, in reverse order
func (m *metadata) finalise() error {
	var err error
	if nil != m.db {
		err = m.db.Close()
		m.db = nil
	}
	m.ledger = nil
	if m.faults {
		fault.Finalise()
		m.faults = false
	}
	if m.logging {
		logger.Finalise()
		m.logging = false
	}
	return err
}
