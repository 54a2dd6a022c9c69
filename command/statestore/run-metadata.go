// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/bitmark-inc/statestore/balances"
	md "github.com/bitmark-inc/statestore/metadata"
)

func runMetadata(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	format := c.String("format")
	if m.verbose {
		fmt.Fprintf(m.e, "format: %s\n", format)
	}

	return writeMetadata(m.w, format, balances.Module.Metadata())
}

// render module descriptors in one of the supported formats
func writeMetadata(w io.Writer, format string, modules ...md.Module) error {
	switch format {
	case "json":
		return printJson(w, modules)

	case "yaml":
		b, err := yaml.Marshal(modules)
		if nil != err {
			return err
		}
		_, err = w.Write(b)
		return err

	case "scale":
		b, err := md.Encode(modules...)
		if nil != err {
			return err
		}
		fmt.Fprintf(w, "0x%s\n", hex.EncodeToString(b))
		return nil

	default:
		return fmt.Errorf("format: %q can only be json/yaml/scale", format)
	}
}
