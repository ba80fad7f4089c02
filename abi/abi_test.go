// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/sunyihoo/abicodec/crypto"
)

const erc20JSON = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve",
	 "inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"approve",
	 "inputs":[{"name":"spender","type":"address"}],
	 "outputs":[]},
	{"type":"event","name":"Transfer","anonymous":false,
	 "inputs":[{"name":"from","type":"address","indexed":true},
	           {"name":"to","type":"address","indexed":true},
	           {"name":"value","type":"uint256","indexed":false}]},
	{"type":"error","name":"Insufficient",
	 "inputs":[{"name":"have","type":"uint256"},{"name":"want","type":"uint256"}]},
	{"type":"receive","stateMutability":"payable"}
]`

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hexutil.DecodeLoose(s)
	require.NoError(t, err)
	return b
}

func TestParseContractABI(t *testing.T) {
	abi, err := LoadContractABI(erc20JSON, nil)
	require.NoError(t, err)

	transfer, err := abi.Function("transfer", 2)
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", transfer.Sig)
	assert.Equal(t, "0xa9059cbb", hexutil.Encode(transfer.ID))
	assert.Equal(t, "function transfer(address to, uint256 value) returns(bool)", transfer.String())
	assert.False(t, transfer.IsConstant())

	balance := abi.FunctionBySelector(mustHex(t, "70a08231000000"))
	require.NotNil(t, balance)
	assert.Equal(t, "balanceOf", balance.Name)
	assert.True(t, balance.IsConstant())
	assert.Equal(t, "function balanceOf(address owner) view returns(uint256)", balance.String())

	ev := abi.EventByTopic(mustHex(t, "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"))
	require.NotNil(t, ev)
	assert.Equal(t, "Transfer(address,address,uint256)", ev.Sig)
	assert.Equal(t, "event Transfer(address indexed from, address indexed to, uint256 value)", ev.String())

	insufficient := abi.Errors["Insufficient"]
	require.NotNil(t, insufficient)
	assert.Same(t, insufficient, abi.ErrorBySelector(insufficient.ID))
	assert.Nil(t, abi.FunctionBySelector(insufficient.ID))

	// default constructor
	require.NotNil(t, abi.Constructor)
	assert.Equal(t, "nonpayable", abi.Constructor.StateMutability)
	assert.Empty(t, abi.Constructor.Inputs)
	assert.Empty(t, abi.Constructor.ID)

	assert.True(t, abi.HasReceive())
	assert.False(t, abi.HasFallback())
	assert.Empty(t, abi.Collisions())

	assert.Nil(t, abi.FunctionBySelector([]byte{0xa9, 0x05}))
	assert.Nil(t, abi.FunctionBySelector(mustHex(t, "deadbeef")))
}

func TestOverloads(t *testing.T) {
	abi, err := LoadContractABI(erc20JSON, nil)
	require.NoError(t, err)

	overloads := abi.FunctionsByName("approve")
	require.Len(t, overloads, 2)
	assert.Equal(t, "0x095ea7b3", hexutil.Encode(overloads[0].ID))

	two, err := abi.Function("approve", 2)
	require.NoError(t, err)
	assert.Same(t, overloads[0], two)
	one, err := abi.Function("approve", 1)
	require.NoError(t, err)
	assert.Same(t, overloads[1], one)
	first, err := abi.Function("approve", -1)
	require.NoError(t, err)
	assert.Same(t, overloads[0], first)

	_, err = abi.Function("approve", 3)
	assert.Error(t, err)
	_, err = abi.Function("missing", 0)
	assert.Error(t, err)

	defs := abi.Definitions()
	require.Len(t, defs, 5)
	assert.Equal(t, "approve(address)", defs[0].Sig)
	assert.Equal(t, "Transfer(address,address,uint256)", defs[4].Sig)
}

func TestParseContractABIErrors(t *testing.T) {
	tests := []struct {
		name, json string
	}{
		{"malformed", `[{"type":"function"`},
		{"not a list", `{"type":"function"}`},
		{"unknown entry type", `[{"type":"modifier","name":"onlyOwner"}]`},
		{"unknown param type", `[{"type":"function","name":"f","inputs":[{"name":"x","type":"uint7"}]}]`},
		{"missing param type", `[{"type":"function","name":"f","inputs":[{"name":"x"}]}]`},
		{"bad component", `[{"type":"event","name":"E","inputs":[{"name":"t","type":"tuple","components":[{"name":"y","type":"foo"}]}]}]`},
		{"receive not payable", `[{"type":"receive","stateMutability":"nonpayable"}]`},
		{"two fallbacks", `[{"type":"fallback"},{"type":"fallback"}]`},
	}
	for _, tt := range tests {
		_, err := LoadContractABI(tt.json, nil)
		assert.Error(t, err, tt.name)
	}
	_, err := LoadContractABI(`[{"type":"function","name":"f","inputs":[{"name":"x","type":"uint7"}]}]`, nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

// constHasher maps every input to the same digest.
type constHasher struct{}

func (constHasher) Name() string { return "const-test" }
func (constHasher) Hash(data ...[]byte) []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestSelectorCollisions(t *testing.T) {
	abi, err := LoadContractABI(`[
		{"type":"function","name":"a","inputs":[]},
		{"type":"function","name":"b","inputs":[]},
		{"type":"function","name":"c","inputs":[{"name":"x","type":"bool"}]}
	]`, constHasher{})
	require.NoError(t, err)

	assert.Equal(t, []string{"0x42424242"}, abi.Collisions())
	winner := abi.FunctionBySelector([]byte{0x42, 0x42, 0x42, 0x42})
	require.NotNil(t, winner)
	assert.Equal(t, "c(bool)", winner.Sig)
	assert.Len(t, abi.CandidatesBySelector([]byte{0x42, 0x42, 0x42, 0x42}), 3)

	// re-registering an identical signature is not a collision
	clean := NewContractABI(nil)
	def, err := NewDefinitionFromSignature("f(uint256)", nil)
	require.NoError(t, err)
	clean.Add(def)
	clean.Add(def)
	assert.Empty(t, clean.Collisions())
}

func TestHasherSelection(t *testing.T) {
	keccak, err := LoadContractABI(erc20JSON, crypto.Keccak256Hasher)
	require.NoError(t, err)
	sm3, err := LoadContractABI(erc20JSON, crypto.SM3Hasher)
	require.NoError(t, err)

	k, _ := keccak.Function("transfer", 2)
	s, _ := sm3.Function("transfer", 2)
	assert.Equal(t, k.Sig, s.Sig)
	assert.NotEqual(t, k.ID, s.ID)
	assert.Equal(t, crypto.SM3([]byte(s.Sig))[:4], s.ID)
}

func TestUnpackRevert(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{"", "", true},
		{"08c379a1", "", true},
		{"08c379a00000000000000000000000000000000000000000000000000000000000000020000000000000000000000000000000000000000000000000000000000000000d72657665727420726561736f6e00000000000000000000000000000000000000", "revert reason", false},
		{"4e487b710000000000000000000000000000000000000000000000000000000000000000", "generic panic", false},
		{"4e487b710000000000000000000000000000000000000000000000000000000000000011", "arithmetic underflow or overflow", false},
		{"4e487b7100000000000000000000000000000000000000000000000000000000000000ff", "unknown panic code: 0xff", false},
		{"08c379a0" + strings.Repeat("00", 31) + "20", "", true},
	}
	for _, tt := range tests {
		got, err := UnpackRevert(mustHex(t, tt.input))
		if tt.err {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestUnpackCustomError(t *testing.T) {
	abi, err := LoadContractABI(erc20JSON, nil)
	require.NoError(t, err)
	def := abi.Errors["Insufficient"]
	assert.Equal(t, "Insufficient(uint256,uint256)", def.Sig)

	args, err := def.InputsTemplate().Build(1, 2)
	require.NoError(t, err)
	enc, err := Pack(args)
	require.NoError(t, err)

	o, err := def.UnpackError(append(def.Selector(), enc...))
	require.NoError(t, err)
	assert.Equal(t, int64(2), o.Field("want").Int().Int64())

	_, err = def.UnpackError(append([]byte{1, 2, 3, 4}, enc...))
	assert.Error(t, err)
	_, err = def.UnpackError([]byte{1})
	assert.Error(t, err)
}
