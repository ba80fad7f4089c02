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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenABI = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"Transfer","anonymous":false,
	 "inputs":[{"name":"from","type":"address","indexed":true},
	           {"name":"to","type":"address","indexed":true},
	           {"name":"value","type":"uint256","indexed":false}]},
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}]}
]`

const (
	transferInput = "0xa9059cbb" +
		"00000000000000000000000000000000000000000000000000000000000000ff" +
		"000000000000000000000000000000000000000000000000000000000000000a"
	word10 = "000000000000000000000000000000000000000000000000000000000000000a"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"abicodec", "--verbosity", "0"}, args...))
	return out.String(), err
}

func TestSelectorCommand(t *testing.T) {
	out, err := run(t, "selector", "transfer(address,uint)")
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256) 0xa9059cbb\n", out)

	out, err = run(t, "selector", "--full", "Transfer(address,address,uint256)")
	require.NoError(t, err)
	assert.Equal(t, "Transfer(address,address,uint256) 0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef\n", out)

	_, err = run(t, "selector")
	assert.Error(t, err)
}

func TestSignaturesCommand(t *testing.T) {
	file := writeFile(t, "token.json", tokenABI)
	out, err := run(t, "signatures", "--abi", file)
	require.NoError(t, err)
	assert.Contains(t, out, "0xa9059cbb transfer(address,uint256)")
	assert.Contains(t, out, "0x70a08231 balanceOf(address)")
	assert.Contains(t, out, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef Transfer(address,address,uint256)")
}

func TestEncodeCommand(t *testing.T) {
	file := writeFile(t, "token.json", tokenABI)

	out, err := run(t, "encode", "--abi", file, "--method", "transfer", "0x00000000000000000000000000000000000000ff", "10")
	require.NoError(t, err)
	assert.Equal(t, transferInput+"\n", out)

	out, err = run(t, "encode", "--abi", file, "--method", "transfer", "--json", `["0x00000000000000000000000000000000000000ff", 10]`)
	require.NoError(t, err)
	assert.Equal(t, transferInput+"\n", out)

	out, err = run(t, "encode", "--abi", file, "--bytecode", "0x6080", "10")
	require.NoError(t, err)
	assert.Equal(t, "0x6080"+word10+"\n", out)

	_, err = run(t, "encode", "--abi", file, "1")
	assert.EqualError(t, err, "missing --method")

	_, err = run(t, "encode", "--method", "transfer", "1")
	assert.ErrorIs(t, err, errNoABI)
}

func TestDecodeCommands(t *testing.T) {
	file := writeFile(t, "token.json", tokenABI)

	out, err := run(t, "decode-input", "--abi", file, transferInput)
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)\n[0] 0x00000000000000000000000000000000000000ff\n[1] 10\n", out)

	out, err = run(t, "decode-output", "--abi", file, "--method", "balanceOf", "--json", word10)
	require.NoError(t, err)
	assert.Equal(t, "[10]", strings.TrimSpace(out))

	topics := strings.Join([]string{
		"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		"0x0000000000000000000000000000000000000000000000000000000000000001",
		"0x0000000000000000000000000000000000000000000000000000000000000002",
	}, ",")
	out, err = run(t, "decode-event", "--abi", file, "--topics", topics, word10)
	require.NoError(t, err)
	assert.Equal(t, "Transfer(address,address,uint256)\n"+
		"[0] 0x0000000000000000000000000000000000000001\n"+
		"[1] 0x0000000000000000000000000000000000000002\n"+
		"[2] 10\n", out)

	_, err = run(t, "decode-input", "--abi", file, "0x12")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	file := writeFile(t, "token.json", tokenABI)
	config := writeFile(t, "abicodec.toml", "[Codec]\nHash = \"sm3\"\nWire = \"scale\"\nABI = \""+file+"\"\n")

	out, err := run(t, "--config", config, "dumpconfig")
	require.NoError(t, err)
	assert.Contains(t, out, `Hash = "sm3"`)
	assert.Contains(t, out, `Wire = "scale"`)

	// Flags override the file.
	out, err = run(t, "--config", config, "--hash", "keccak256", "selector", "transfer(address,uint256)")
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256) 0xa9059cbb\n", out)

	bad := writeFile(t, "bad.toml", "[Codec]\nColour = \"red\"\n")
	_, err = run(t, "--config", bad, "dumpconfig")
	assert.ErrorContains(t, err, "field 'Colour' is not defined")
}

func TestDumpConfigRoundTrip(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "dump.toml")
	_, err := run(t, "--wire", "scale", "dumpconfig", dump)
	require.NoError(t, err)

	cfg := defaultConfig()
	require.NoError(t, loadConfig(dump, &cfg))
	assert.Equal(t, "scale", cfg.Codec.Wire)
	assert.Equal(t, "keccak256", cfg.Codec.Hash)
}

func TestLegacyFlags(t *testing.T) {
	out, err := run(t, "--vm", "wasm", "--sm-crypto", "dumpconfig")
	require.NoError(t, err)
	assert.Contains(t, out, `Wire = "scale"`)
	assert.Contains(t, out, `Hash = "sm3"`)

	_, err = run(t, "--vm", "jvm", "dumpconfig")
	assert.ErrorContains(t, err, "unknown virtual machine")

	_, err = run(t, "--vm", "evm", "--wire", "abi", "dumpconfig")
	assert.ErrorContains(t, err, "can't be used at the same time")
}

func TestLookupCommand(t *testing.T) {
	db := writeFile(t, "4byte.json", `{"a9059cbb":"transfer(address,uint256)"}`)

	out, err := run(t, "lookup", "--signatures", db, transferInput)
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)\n[0] 0x00000000000000000000000000000000000000ff\n[1] 10\n", out)

	out, err = run(t, "lookup", "--sig", "transfer(address,uint)", "--json", transferInput)
	require.NoError(t, err)
	assert.Equal(t, `["0x00000000000000000000000000000000000000ff",10]`, strings.TrimSpace(out))

	_, err = run(t, "lookup", "--sig", "transfer(address,uint256)", transferInput+"00")
	assert.ErrorContains(t, err, "stuffed")

	_, err = run(t, "lookup", transferInput)
	assert.ErrorContains(t, err, "no signatures given")
}
