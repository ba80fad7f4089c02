// Copyright 2015 The go-ethereum Authors
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

// Package utils contains internal helper functions for abicodec commands.
package utils

import (
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Codec settings
	HashFlag = &cli.StringFlag{
		Name:     "hash",
		Usage:    "Selector hash algorithm (keccak256, sm3)",
		Value:    "keccak256",
		Category: flags.CodecCategory,
	}
	WireFlag = &cli.StringFlag{
		Name:     "wire",
		Usage:    "Wire format of arguments (abi: 32 byte words, scale: compact)",
		Value:    "abi",
		Category: flags.CodecCategory,
	}

	// ABI selection
	ABIFileFlag = &flags.PathFlag{
		Name:     "abi",
		Usage:    "JSON ABI description of the contract",
		EnvVars:  []string{"ABICODEC_ABI"},
		Category: flags.ABICategory,
	}
	MethodFlag = &cli.StringFlag{
		Name:     "method",
		Usage:    "Name of the contract function",
		Category: flags.ABICategory,
	}
	EventFlag = &cli.StringFlag{
		Name:     "event",
		Usage:    "Name of the contract event (default: resolved from the first topic)",
		Category: flags.ABICategory,
	}
	TopicsFlag = &cli.StringSliceFlag{
		Name:     "topics",
		Usage:    "Comma separated 32 byte log topics in hex",
		Category: flags.ABICategory,
	}
	BytecodeFlag = &flags.HexFlag{
		Name:     "bytecode",
		Usage:    "Deployment bytecode the constructor arguments are appended to",
		Category: flags.ABICategory,
	}
	SignaturesFlag = &flags.PathFlag{
		Name:     "signatures",
		Usage:    "JSON selector database mapping 4 byte selectors to signatures",
		EnvVars:  []string{"ABICODEC_SIGNATURES"},
		Category: flags.ABICategory,
	}
	SignatureFlag = &cli.StringFlag{
		Name:     "sig",
		Usage:    "Additional function signatures to match call data against, separated by ';'",
		Category: flags.ABICategory,
	}
	JSONArgsFlag = &cli.BoolFlag{
		Name:     "json",
		Usage:    "Read arguments as a single JSON array or object, print results as JSON",
		Category: flags.ABICategory,
	}

	// Logging
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    2,
		Category: flags.LoggingCategory,
	}
	LogJSONFlag = &cli.BoolFlag{
		Name:     "log.json",
		Usage:    "Format logs with JSON",
		Category: flags.LoggingCategory,
	}
)
