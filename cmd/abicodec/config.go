// Copyright 2017 The go-ethereum Authors
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

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/abicodec/abi"
	"github.com/sunyihoo/abicodec/abi/contract"
	"github.com/sunyihoo/abicodec/cmd/utils"
	"github.com/sunyihoo/abicodec/crypto"
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/sunyihoo/abicodec/log"
	"github.com/urfave/cli/v2"
)

const configKey = "abicodec.config"

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.CodecCategory,
	}

	dumpConfigCommand = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Export configuration values in a TOML format",
		ArgsUsage:   "<dumpfile (optional)>",
		Description: `Export configuration values in TOML format (to stdout by default).`,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		if deprecatedConfigFields[id] {
			log.Warn(fmt.Sprintf("Config field '%s' is deprecated and won't have any effect.", id))
			return nil
		}
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

var deprecatedConfigFields = map[string]bool{
	"main.codecConfig.VM":       true,
	"main.codecConfig.SMCrypto": true,
}

// codecConfig selects the selector hash, the wire format and the default
// ABI file of all commands.
type codecConfig struct {
	Hash string
	Wire string
	ABI  string `toml:",omitempty"`
}

type logConfig struct {
	Verbosity int
	JSON      bool
}

type abicodecConfig struct {
	Codec codecConfig
	Log   logConfig
}

func defaultConfig() abicodecConfig {
	return abicodecConfig{
		Codec: codecConfig{
			Hash: utils.HashFlag.Value,
			Wire: utils.WireFlag.Value,
		},
		Log: logConfig{
			Verbosity: utils.VerbosityFlag.Value,
		},
	}
}

func loadConfig(file string, cfg *abicodecConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the abicodecConfig based on the given command line
// parameters and config file. Flags take precedence over the file.
// loadBaseConfig 根据命令行参数和配置文件加载配置，命令行参数优先。
func loadBaseConfig(ctx *cli.Context) (abicodecConfig, error) {
	// Load defaults
	cfg := defaultConfig()

	// Load config file.
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	// Apply flags.
	if err := setCodecConfig(ctx, &cfg.Codec); err != nil {
		return cfg, err
	}
	if ctx.IsSet(utils.VerbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(utils.VerbosityFlag.Name)
	}
	if ctx.IsSet(utils.LogJSONFlag.Name) {
		cfg.Log.JSON = ctx.Bool(utils.LogJSONFlag.Name)
	}
	return cfg, nil
}

func setCodecConfig(ctx *cli.Context, cfg *codecConfig) error {
	if err := flags.CheckExclusive(ctx, utils.WireFlag, utils.LegacyVMFlag); err != nil {
		return err
	}
	if err := flags.CheckExclusive(ctx, utils.HashFlag, utils.LegacySMFlag); err != nil {
		return err
	}
	if ctx.IsSet(utils.HashFlag.Name) {
		cfg.Hash = ctx.String(utils.HashFlag.Name)
	}
	if ctx.IsSet(utils.WireFlag.Name) {
		cfg.Wire = ctx.String(utils.WireFlag.Name)
	}

	// Deprecated flags.
	if ctx.IsSet(utils.LegacyVMFlag.Name) {
		vm := ctx.String(utils.LegacyVMFlag.Name)
		switch vm {
		case "evm":
			cfg.Wire = abi.ABICodec{}.Name()
		case "wasm":
			cfg.Wire = abi.ScaleCodec{}.Name()
		default:
			return fmt.Errorf("unknown virtual machine %q", vm)
		}
		log.Warn("The flag --vm is deprecated and will be removed, please use --wire", "wire", cfg.Wire)
	}
	if ctx.Bool(utils.LegacySMFlag.Name) {
		cfg.Hash = crypto.SM3Hasher.Name()
		log.Warn("The flag --sm-crypto is deprecated and will be removed, please use --hash sm3")
	}
	return nil
}

// makeConfig returns the configuration loaded when the app started.
func makeConfig(ctx *cli.Context) (abicodecConfig, error) {
	if cfg, ok := ctx.App.Metadata[configKey].(abicodecConfig); ok {
		return cfg, nil
	}
	return loadBaseConfig(ctx)
}

// makeCodec creates the contract codec selected by the configuration.
func makeCodec(ctx *cli.Context) (*contract.Codec, abicodecConfig, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return nil, cfg, err
	}
	hasher, err := crypto.HasherByName(cfg.Codec.Hash)
	if err != nil {
		return nil, cfg, err
	}
	wire, err := abi.CodecByName(cfg.Codec.Wire)
	if err != nil {
		return nil, cfg, err
	}
	log.Debug("Created codec", "hash", hasher.Name(), "wire", wire.Name())
	return contract.New(hasher, wire), cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	dump.WriteString(comment)
	dump.Write(out)

	return nil
}

const comment = "# Note: this config doesn't contain the ABI description itself, only the path to it\n\n"
