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
)

func TestParseTypeDescriptor(t *testing.T) {
	tests := []struct {
		input string
		raw   string
		dims  []int
	}{
		{"uint256", "uint256", nil},
		{"uint256[]", "uint256", []int{0}},
		{"uint256[2][]", "uint256", []int{2, 0}},
		{"tuple[][3]", "tuple", []int{0, 3}},
		{"bytes32[4][5][6]", "bytes32", []int{4, 5, 6}},
	}
	for _, tt := range tests {
		desc, err := ParseTypeDescriptor(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.raw, desc.RawType, tt.input)
		assert.Equal(t, tt.dims, desc.Dimensions, tt.input)
		assert.Equal(t, tt.input, desc.String())
	}
	_, err := ParseTypeDescriptor("")
	assert.ErrorIs(t, err, ErrEmptyType)
}

func TestTypeDescriptorDimensions(t *testing.T) {
	desc, err := ParseTypeDescriptor("uint256[2][]")
	require.NoError(t, err)
	assert.True(t, desc.IsList())
	assert.True(t, desc.IsDynamicList())
	assert.False(t, desc.IsFixedList())
	assert.Equal(t, 0, desc.LastDimension())

	inner := desc.ReduceDimension()
	assert.Equal(t, "uint256[2]", inner.String())
	assert.True(t, inner.IsFixedList())
	assert.Equal(t, 2, inner.LastDimension())

	scalar := inner.ReduceDimension()
	assert.Equal(t, "uint256", scalar.String())
	assert.False(t, scalar.IsList())
	assert.Equal(t, -1, scalar.LastDimension())

	// reducing must not alias the parent's dimensions
	assert.Equal(t, []int{2, 0}, desc.Dimensions)
}

func TestParseElementary(t *testing.T) {
	tests := []struct {
		input     string
		canonical string
		ty        byte
		size      int
	}{
		{"uint", "uint256", UintTy, 256},
		{"int", "int256", IntTy, 256},
		{"uint8", "uint8", UintTy, 8},
		{"int96", "int96", IntTy, 96},
		{"bool", "bool", BoolTy, 0},
		{"address", "address", AddressTy, 20},
		{"byte", "bytes1", FixedBytesTy, 1},
		{"bytes", "bytes", BytesTy, 0},
		{"bytes32", "bytes32", FixedBytesTy, 32},
		{"string", "string", StringTy, 0},
		{"fixed", "fixed128x18", FixedTy, 128},
		{"ufixed64x10", "ufixed64x10", UfixedTy, 64},
	}
	for _, tt := range tests {
		e, err := parseElementary(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.canonical, e.String(), tt.input)
		assert.Equal(t, tt.ty, e.T, tt.input)
		assert.Equal(t, tt.size, e.Size, tt.input)
	}
	for _, bad := range []string{"uint7", "uint264", "int0", "bytes0", "bytes33", "foo", "bool8", "String", "address20"} {
		_, err := parseElementary(bad)
		assert.ErrorIs(t, err, ErrUnknownType, bad)
	}
}

func TestArgumentCanonicalType(t *testing.T) {
	arg := Argument{
		Name: "s",
		Type: "tuple[]",
		Components: []Argument{
			{Name: "a", Type: "uint"},
			{Name: "b", Type: "uint256"},
		},
	}
	assert.Equal(t, "(uint256,uint256)[]", arg.CanonicalType())

	nested := Argument{
		Type: "tuple[2]",
		Components: []Argument{
			{Name: "x", Type: "byte[]"},
			{Name: "y", Type: "tuple", Components: []Argument{{Name: "z", Type: "int"}}},
		},
	}
	assert.Equal(t, "(bytes1[],(int256))[2]", nested.CanonicalType())
}

func TestArgumentIsDynamic(t *testing.T) {
	tests := []struct {
		arg     Argument
		dynamic bool
	}{
		{Argument{Type: "uint256"}, false},
		{Argument{Type: "string"}, true},
		{Argument{Type: "bytes"}, true},
		{Argument{Type: "bytes32"}, false},
		{Argument{Type: "uint256[]"}, true},
		{Argument{Type: "uint256[3]"}, false},
		{Argument{Type: "uint256[][3]"}, true},
		{Argument{Type: "string[3]"}, true},
		{Argument{Type: "tuple", Components: []Argument{{Type: "int256"}, {Type: "int256"}}}, false},
		{Argument{Type: "tuple", Components: []Argument{{Type: "int256"}, {Type: "string"}}}, true},
		{Argument{Type: "tuple[]", Components: []Argument{{Type: "int256"}}}, true},
		{Argument{Type: "tuple[2]", Components: []Argument{{Type: "int256"}}}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.dynamic, tt.arg.IsDynamic(), "%s %v", tt.arg.Type, tt.arg.Components)
	}
}

func TestArgumentsFilter(t *testing.T) {
	args := Arguments{
		{Name: "from", Type: "address", Indexed: true},
		{Name: "to", Type: "address", Indexed: true},
		{Name: "value", Type: "uint256"},
	}
	assert.Len(t, args.Indexed(), 2)
	assert.Equal(t, "value", args.NonIndexed()[0].Name)
	assert.Equal(t, []string{"address", "address", "uint256"}, args.CanonicalTypes())
}

func TestArgumentUnmarshalRequiresType(t *testing.T) {
	var arg Argument
	assert.ErrorIs(t, arg.UnmarshalJSON([]byte(`{"name":"x"}`)), ErrEmptyType)
	require.NoError(t, arg.UnmarshalJSON([]byte(`{"name":"x","type":"uint8","indexed":true}`)))
	assert.Equal(t, Argument{Name: "x", Type: "uint8", Indexed: true}, arg)
}

func TestResolveNameConflict(t *testing.T) {
	db := make(map[string]struct{})
	used := func(s string) bool {
		_, ok := db[s]
		return ok
	}
	for i := 0; i < 10; i++ {
		name := ResolveNameConflict("arg", used)
		db[name] = struct{}{}
	}
	assert.Len(t, db, 10)
	assert.Contains(t, db, "arg")
	assert.Contains(t, db, "arg8")
}

func TestFieldNames(t *testing.T) {
	names := fieldNames(Arguments{{Name: ""}, {Name: "arg0"}, {Name: "x"}, {Name: "x"}})
	assert.Equal(t, []string{"arg0", "arg00", "x", "x0"}, names)
}
