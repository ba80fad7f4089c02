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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyihoo/abicodec/common/hexutil"
)

func TestParseSelector(t *testing.T) {
	mkType := func(types ...interface{}) []Argument {
		var result []Argument
		for i, typeOrComponents := range types {
			name := "name" + string(rune('0'+i))
			if typeName, ok := typeOrComponents.(string); ok {
				result = append(result, Argument{Name: name, Type: typeName, InternalType: typeName})
			} else if components, ok := typeOrComponents.([]Argument); ok {
				result = append(result, Argument{Name: name, Type: "tuple", InternalType: "tuple", Components: components})
			} else if components, ok := typeOrComponents.([][]Argument); ok {
				result = append(result, Argument{Name: name, Type: "tuple[]", InternalType: "tuple[]", Components: components[0]})
			}
		}
		return result
	}
	tests := []struct {
		input string
		name  string
		args  []Argument
	}{
		{"noargs()", "noargs", []Argument{}},
		{"simple(uint256,uint256,uint256)", "simple", mkType("uint256", "uint256", "uint256")},
		{"other(uint256,address)", "other", mkType("uint256", "address")},
		{"withArray(uint256[],address[2],uint8[4][][5])", "withArray", mkType("uint256[]", "address[2]", "uint8[4][][5]")},
		{"singleNest(bytes32,uint8,(uint256,uint256),address)", "singleNest", mkType("bytes32", "uint8", mkType("uint256", "uint256"), "address")},
		{"multiNest(address,(uint256[],uint256),((address,bytes32),uint256))", "multiNest",
			mkType("address", mkType("uint256[]", "uint256"), mkType(mkType("address", "bytes32"), "uint256"))},
		{"arrayNest((uint256,uint256)[],bytes32)", "arrayNest", mkType([][]Argument{mkType("uint256", "uint256")}, "bytes32")},
		{"_under$score(bool)", "_under$score", mkType("bool")},
	}
	for i, tt := range tests {
		selector, err := ParseSelector(tt.input)
		require.NoError(t, err, "test %d", i)
		assert.Equal(t, tt.name, selector.Name, "test %d", i)
		assert.Equal(t, "function", selector.Type, "test %d", i)
		if len(tt.args) == 0 {
			assert.Empty(t, selector.Inputs, "test %d", i)
			continue
		}
		assert.Equal(t, tt.args, selector.Inputs, "test %d", i)
	}
}

func TestParseSelectorErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"noparens",
		"f(",
		"f(uint256",
		"f(uint256,)",
		"f(uint256)x",
		"f(uint256)[]",
		"f(uint256[)",
		"f(,uint256)",
		"1f(uint256)",
	} {
		_, err := ParseSelector(input)
		assert.Error(t, err, input)
	}
	_, err := ParseSelector("f(tuple)")
	assert.ErrorIs(t, err, ErrTupleSignature)
	_, err = ParseSelector("f(uint256,tuple[])")
	assert.ErrorIs(t, err, ErrTupleSignature)
}

func TestNewDefinitionFromSignature(t *testing.T) {
	def, err := NewDefinitionFromSignature(" transfer(address,uint256) ", nil)
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", def.Sig)
	assert.Equal(t, "0xa9059cbb", hexutil.Encode(def.ID))
	assert.Equal(t, []string{"name0", "name1"}, []string{def.Inputs[0].Name, def.Inputs[1].Name})

	// aliases are canonicalised before hashing
	alias, err := NewDefinitionFromSignature("transfer(address,uint)", nil)
	require.NoError(t, err)
	assert.Equal(t, def.Sig, alias.Sig)
	assert.Equal(t, def.ID, alias.ID)

	nested, err := NewDefinitionFromSignature("f((uint256,string)[2],bytes)", nil)
	require.NoError(t, err)
	assert.Equal(t, "f((uint256,string)[2],bytes)", nested.Sig)
	assert.True(t, nested.InputsTemplate().IsDynamic())

	_, err = NewDefinitionFromSignature("f(uint7)", nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestComputeSelector(t *testing.T) {
	assert.Equal(t, "0x08c379a0", hexutil.Encode(MethodID("Error(string)", nil)))
	assert.Equal(t, "0x4e487b71", hexutil.Encode(MethodID("Panic(uint256)", nil)))
	assert.Equal(t, "0x23b872dd", hexutil.Encode(MethodID("transferFrom(address,address,uint256)", nil)))
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		hexutil.Encode(EventID("Transfer(address,address,uint256)", nil)))

	// cached digests are not aliased by callers
	id := MethodID("balanceOf(address)", nil)
	id[0] = 0
	assert.Equal(t, "0x70a08231", hexutil.Encode(MethodID("balanceOf(address)", nil)))
}
