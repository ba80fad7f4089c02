// Copyright 2020 The go-ethereum Authors
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

package utils

import (
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/urfave/cli/v2"
)

// DeprecatedFlags is the list of all deprecated flags.
var DeprecatedFlags = []cli.Flag{
	LegacyVMFlag,
	LegacySMFlag,
}

var (
	// Deprecated, use --wire
	LegacyVMFlag = &cli.StringFlag{
		Name:     "vm",
		Usage:    "Target virtual machine, evm or wasm (deprecated, use --wire)",
		Category: flags.DeprecatedCategory,
	}
	// Deprecated, use --hash sm3
	LegacySMFlag = &cli.BoolFlag{
		Name:     "sm-crypto",
		Usage:    "Use SM3 selectors (deprecated, use --hash sm3)",
		Category: flags.DeprecatedCategory,
	}
)
