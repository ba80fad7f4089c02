// Copyright 2024 The go-ethereum Authors
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
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sunyihoo/abicodec/abi"
	"github.com/sunyihoo/abicodec/abi/contract"
	"github.com/sunyihoo/abicodec/abi/fourbyte"
	"github.com/sunyihoo/abicodec/cmd/utils"
	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/sunyihoo/abicodec/internal/version"
	"github.com/sunyihoo/abicodec/log"
	"github.com/urfave/cli/v2"
)

var (
	fullHashFlag = &cli.BoolFlag{
		Name:  "full",
		Usage: "Print the full 32 byte hash used as event topic",
	}

	selectorCommand = &cli.Command{
		Action:    selector,
		Name:      "selector",
		Usage:     "Compute the selector of a function or event signature",
		ArgsUsage: "<signature>",
		Flags:     []cli.Flag{fullHashFlag},
		Description: `
The selector command canonicalises a signature such as 'transfer(address,uint)'
and prints the first 4 bytes of its hash, or the full hash with --full.`,
	}
	signaturesCommand = &cli.Command{
		Action: signatures,
		Name:   "signatures",
		Usage:  "List the canonical signatures and selectors of a contract ABI",
		Flags:  []cli.Flag{utils.ABIFileFlag},
	}
	encodeCommand = &cli.Command{
		Action:    encode,
		Name:      "encode",
		Usage:     "Encode a method call or constructor arguments",
		ArgsUsage: "<param> [<param>...]",
		Flags: []cli.Flag{
			utils.ABIFileFlag,
			utils.MethodFlag,
			utils.BytecodeFlag,
			utils.JSONArgsFlag,
		},
		Description: `
Each parameter is given as text: integers in decimal or 0x hex, bytes in hex
(optionally prefixed by hex://), lists and structs as JSON arrays. With --json
a single JSON array or object holds all arguments. With --bytecode the
constructor arguments are appended to the deployment bytecode.`,
	}
	decodeInputCommand = &cli.Command{
		Action:    decodeInput,
		Name:      "decode-input",
		Usage:     "Decode call data, resolving the method by its selector",
		ArgsUsage: "<hex>",
		Flags:     []cli.Flag{utils.ABIFileFlag, utils.JSONArgsFlag},
	}
	decodeOutputCommand = &cli.Command{
		Action:    decodeOutput,
		Name:      "decode-output",
		Usage:     "Decode the return data of a method",
		ArgsUsage: "<hex>",
		Flags:     []cli.Flag{utils.ABIFileFlag, utils.MethodFlag, utils.JSONArgsFlag},
	}
	decodeEventCommand = &cli.Command{
		Action:    decodeEvent,
		Name:      "decode-event",
		Usage:     "Decode an event log from its topics and data",
		ArgsUsage: "<hex data>",
		Flags: []cli.Flag{
			utils.ABIFileFlag,
			utils.EventFlag,
			utils.TopicsFlag,
			utils.JSONArgsFlag,
		},
	}
	lookupCommand = &cli.Command{
		Action:    lookup,
		Name:      "lookup",
		Usage:     "Decode call data against a selector database instead of a contract ABI",
		ArgsUsage: "<hex>",
		Flags: []cli.Flag{
			utils.SignaturesFlag,
			utils.SignatureFlag,
			utils.ABIFileFlag,
			utils.JSONArgsFlag,
		},
		Description: `
The lookup command collects candidate signatures from --signatures, --sig and
--abi, and decodes the call data with the first signature whose arguments
decode and re-encode to exactly the given bytes.`,
	}
	versionCommand = &cli.Command{
		Action:    printVersion,
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Description: `
The output of this command is supposed to be machine-readable.
`,
	}
)

var errNoABI = errors.New("no ABI file given, use --abi or set Codec.ABI in the config file")

// readABI loads the contract ABI named by --abi or by the configuration.
func readABI(ctx *cli.Context, codec *contract.Codec, cfg abicodecConfig) (*abi.ContractABI, error) {
	file := cfg.Codec.ABI
	if ctx.IsSet(utils.ABIFileFlag.Name) {
		file = ctx.String(utils.ABIFileFlag.Name)
	}
	if file == "" {
		return nil, errNoABI
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	contractABI, err := codec.ParseABI(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	log.Debug("Loaded contract ABI", "file", file, "functions", len(contractABI.Functions), "events", len(contractABI.Events))
	return contractABI, nil
}

// setup creates the codec and loads the ABI for a command.
func setup(ctx *cli.Context) (*contract.Codec, *abi.ContractABI, error) {
	codec, cfg, err := makeCodec(ctx)
	if err != nil {
		return nil, nil, err
	}
	contractABI, err := readABI(ctx, codec, cfg)
	if err != nil {
		return nil, nil, err
	}
	return codec, contractABI, nil
}

func hexArg(ctx *cli.Context, what string) ([]byte, error) {
	if ctx.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one %s argument", what)
	}
	data, err := hexutil.DecodeLoose(strings.TrimSpace(ctx.Args().First()))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", what, err)
	}
	return data, nil
}

func selector(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected a single signature argument")
	}
	codec, _, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	def, err := abi.NewDefinitionFromSignature(ctx.Args().First(), codec.Hasher())
	if err != nil {
		return err
	}
	size := abi.MethodIDLength
	if ctx.Bool(fullHashFlag.Name) {
		size = abi.EventIDLength
	}
	fmt.Fprintln(ctx.App.Writer, def.Sig, hexutil.Encode(abi.ComputeSelector(def.Sig, codec.Hasher(), size)))
	return nil
}

func signatures(ctx *cli.Context) error {
	_, contractABI, err := setup(ctx)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	for _, def := range contractABI.Definitions() {
		fmt.Fprintf(w, "%-8s %s %s\n", def.Type, hexutil.Encode(def.ID), def.Sig)
	}
	names := make([]string, 0, len(contractABI.Errors))
	for name := range contractABI.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := contractABI.Errors[name]
		fmt.Fprintf(w, "%-8s %s %s\n", def.Type, hexutil.Encode(def.ID), def.Sig)
	}
	for _, c := range contractABI.Collisions() {
		fmt.Fprintf(w, "collision %s\n", c)
	}
	return nil
}

func encode(ctx *cli.Context) error {
	codec, contractABI, err := setup(ctx)
	if err != nil {
		return err
	}
	params := ctx.Args().Slice()
	var out []byte
	switch {
	case ctx.IsSet(utils.BytecodeFlag.Name):
		if ctx.IsSet(utils.MethodFlag.Name) {
			return errors.New("--bytecode and --method can't be used at the same time")
		}
		out, err = codec.EncodeConstructor(contractABI, flags.GlobalHex(ctx, utils.BytecodeFlag.Name), params)
	case !ctx.IsSet(utils.MethodFlag.Name):
		return errors.New("missing --method")
	case ctx.Bool(utils.JSONArgsFlag.Name):
		out, err = codec.EncodeMethodJSON(contractABI, ctx.String(utils.MethodFlag.Name), strings.Join(params, " "))
	default:
		out, err = codec.EncodeMethod(contractABI, ctx.String(utils.MethodFlag.Name), params)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(out))
	return nil
}

func decodeInput(ctx *cli.Context) error {
	codec, contractABI, err := setup(ctx)
	if err != nil {
		return err
	}
	input, err := hexArg(ctx, "call data")
	if err != nil {
		return err
	}
	decoded, err := codec.DecodeMethodInput(contractABI, input)
	if err != nil {
		return err
	}
	return printDecoded(ctx, decoded)
}

func decodeOutput(ctx *cli.Context) error {
	codec, contractABI, err := setup(ctx)
	if err != nil {
		return err
	}
	if !ctx.IsSet(utils.MethodFlag.Name) {
		return errors.New("missing --method")
	}
	output, err := hexArg(ctx, "return data")
	if err != nil {
		return err
	}
	decoded, err := codec.DecodeMethodOutput(contractABI, ctx.String(utils.MethodFlag.Name), output)
	if err != nil {
		return err
	}
	return printDecoded(ctx, decoded)
}

func lookup(ctx *cli.Context) error {
	codec, cfg, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	input, err := hexArg(ctx, "call data")
	if err != nil {
		return err
	}
	db := fourbyte.New(codec.Hasher())
	if ctx.IsSet(utils.SignaturesFlag.Name) {
		if db, err = fourbyte.NewFromFile(ctx.String(utils.SignaturesFlag.Name), codec.Hasher()); err != nil {
			return err
		}
	}
	for _, sig := range strings.Split(ctx.String(utils.SignatureFlag.Name), ";") {
		if strings.TrimSpace(sig) == "" {
			continue
		}
		if err := db.AddSignature(sig); err != nil {
			return err
		}
	}
	if ctx.IsSet(utils.ABIFileFlag.Name) || cfg.Codec.ABI != "" {
		contractABI, err := readABI(ctx, codec, cfg)
		if err != nil {
			return err
		}
		db.AddABI(contractABI)
	}
	if db.Size() == 0 {
		return errors.New("no signatures given, use --signatures, --sig or --abi")
	}
	def, values, err := db.DecodeCallData(input, codec.Wire())
	if err != nil {
		return err
	}
	return printDecoded(ctx, &contract.Decoded{Definition: def, Values: values})
}

func decodeEvent(ctx *cli.Context) error {
	codec, contractABI, err := setup(ctx)
	if err != nil {
		return err
	}
	data, err := hexArg(ctx, "log data")
	if err != nil {
		return err
	}
	var topics [][]byte
	for _, t := range ctx.StringSlice(utils.TopicsFlag.Name) {
		topic, err := hexutil.DecodeLoose(strings.TrimSpace(t))
		if err != nil {
			return fmt.Errorf("invalid topic %q: %w", t, err)
		}
		topics = append(topics, topic)
	}
	decoded, err := codec.DecodeEvent(contractABI, ctx.String(utils.EventFlag.Name), topics, data)
	if err != nil {
		return err
	}
	return printDecoded(ctx, decoded)
}

// printDecoded writes the signature followed by one line per value, or a
// JSON array with --json.
func printDecoded(ctx *cli.Context, decoded *contract.Decoded) error {
	w := ctx.App.Writer
	if ctx.Bool(utils.JSONArgsFlag.Name) {
		out, err := decoded.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
	values, err := decoded.Strings()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, decoded.Definition.Sig)
	for i, v := range values {
		fmt.Fprintf(w, "[%d] %s\n", i, v)
	}
	return nil
}

func printVersion(ctx *cli.Context) error {
	fmt.Fprintln(ctx.App.Writer, ctx.App.Name)
	for _, line := range version.Info() {
		fmt.Fprintln(ctx.App.Writer, line)
	}
	return nil
}
