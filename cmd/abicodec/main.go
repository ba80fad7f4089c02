// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// abicodec is a command-line tool for encoding and decoding contract calls,
// return values and event logs.
package main

import (
	"fmt"
	"os"

	"github.com/sunyihoo/abicodec/cmd/utils"
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = flags.NewApp("the contract ABI codec command line interface")

var (
	globalFlags = flags.Merge([]cli.Flag{
		configFileFlag,
		utils.HashFlag,
		utils.WireFlag,
	}, utils.DeprecatedFlags)

	logFlags = []cli.Flag{
		utils.VerbosityFlag,
		utils.LogJSONFlag,
	}
)

func init() {
	app.Flags = flags.Merge(globalFlags, logFlags)
	app.Commands = []*cli.Command{
		// See commands.go:
		selectorCommand,
		signaturesCommand,
		encodeCommand,
		decodeInputCommand,
		decodeOutputCommand,
		decodeEventCommand,
		lookupCommand,
		versionCommand,
		// See config.go:
		dumpConfigCommand,
	}
	migrate := app.Before
	app.Before = func(ctx *cli.Context) error {
		if err := migrate(ctx); err != nil {
			return err
		}
		// Flags are applied first so that config loading can already log.
		utils.SetupLogging(ctx.Int(utils.VerbosityFlag.Name), ctx.Bool(utils.LogJSONFlag.Name))
		cfg, err := loadBaseConfig(ctx)
		if err != nil {
			return err
		}
		utils.SetupLogging(cfg.Log.Verbosity, cfg.Log.JSON)
		ctx.App.Metadata = map[string]interface{}{configKey: cfg}
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
