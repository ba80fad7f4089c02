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
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyihoo/abicodec/common"
)

func mustTemplate(t *testing.T, args Arguments) *Template {
	t.Helper()
	tmpl, err := NewArgumentsTemplate(args)
	require.NoError(t, err)
	return tmpl
}

func TestTemplateClassification(t *testing.T) {
	static := mustTemplate(t, Arguments{{Name: "a", Type: "int256"}, {Name: "b", Type: "int256"}})
	assert.False(t, static.IsDynamic())
	assert.Equal(t, 64, static.HeadSize())
	assert.Equal(t, "(int256,int256)", static.Canonical())

	withString := mustTemplate(t, Arguments{{Name: "a", Type: "int256"}, {Name: "b", Type: "int256"}, {Name: "s", Type: "string"}})
	assert.True(t, withString.IsDynamic())
	assert.Equal(t, 32, withString.HeadSize())

	tupleList, err := NewTemplate(Argument{Name: "l", Type: "tuple[]", Components: []Argument{{Name: "x", Type: "int256"}}})
	require.NoError(t, err)
	assert.True(t, tupleList.IsDynamic())
	assert.Equal(t, ListKind, tupleList.Kind)
	assert.Equal(t, DynamicList, tupleList.ListType)
	assert.False(t, tupleList.Elem.IsDynamic())
	assert.Equal(t, "(int256)[]", tupleList.Canonical())

	fixed, err := NewTypeTemplate("uint8[3][2]")
	require.NoError(t, err)
	assert.False(t, fixed.IsDynamic())
	assert.Equal(t, 6*32, fixed.HeadSize())
	assert.Equal(t, 2, fixed.Length)
	assert.Equal(t, 3, fixed.Elem.Length)

	fixedDyn, err := NewTypeTemplate("string[2]")
	require.NoError(t, err)
	assert.True(t, fixedDyn.IsDynamic())
	assert.Equal(t, 32, fixedDyn.HeadSize())
}

func TestTemplateErrors(t *testing.T) {
	_, err := NewTemplate(Argument{Name: "x", Type: "uint257"})
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = NewArgumentsTemplate(Arguments{{Name: "s", Type: "tuple", Components: []Argument{{Name: "bad", Type: "foo[]"}}}})
	assert.ErrorIs(t, err, ErrUnknownType)
	var pe *PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "s.bad", pe.Path)

	_, err = NewTypeTemplate("tuple")
	assert.ErrorIs(t, err, ErrUnknownType)

	// fixed point builds, but cannot be assigned
	tmpl, err := NewTypeTemplate("fixed128x18")
	require.NoError(t, err)
	assert.ErrorIs(t, tmpl.Instantiate().Assign(1), ErrUnsupportedFixedPoint)
}

func TestInstantiate(t *testing.T) {
	tmpl := mustTemplate(t, Arguments{
		{Name: "fixed", Type: "uint8[3]"},
		{Name: "dyn", Type: "string[]"},
		{Name: "", Type: "bool"},
	})
	o := tmpl.Instantiate()
	require.Equal(t, 3, o.Len())
	assert.Equal(t, 3, o.Field("fixed").Len())
	assert.Equal(t, 0, o.Field("dyn").Len())
	assert.NotNil(t, o.Field("arg2"))
	assert.Nil(t, o.Field("missing"))

	// instances never share state
	o2 := tmpl.Instantiate()
	require.NoError(t, o.Field("arg2").SetBool(true))
	assert.False(t, o2.Field("arg2").Bool())
}

func TestObjectSetters(t *testing.T) {
	u8, _ := NewTypeTemplate("uint8")
	o := u8.Instantiate()
	assert.NoError(t, o.SetInt(big.NewInt(255)))
	assert.ErrorIs(t, o.SetInt(big.NewInt(256)), ErrOutOfRange)
	assert.ErrorIs(t, o.SetInt(big.NewInt(-1)), ErrOutOfRange)
	assert.ErrorIs(t, o.SetBool(true), ErrKindMismatch)

	i8, _ := NewTypeTemplate("int8")
	o = i8.Instantiate()
	assert.NoError(t, o.SetInt(big.NewInt(-128)))
	assert.ErrorIs(t, o.SetInt(big.NewInt(128)), ErrOutOfRange)

	b4, _ := NewTypeTemplate("bytes4")
	o = b4.Instantiate()
	assert.Equal(t, []byte{0, 0, 0, 0}, o.Bytes())
	require.NoError(t, o.SetBytes([]byte{1, 2}))
	assert.Equal(t, []byte{1, 2, 0, 0}, o.Bytes())
	assert.ErrorIs(t, o.SetBytes([]byte{1, 2, 3, 4, 5}), ErrBytesTooLong)

	list, _ := NewTypeTemplate("uint256[2]")
	o = list.Instantiate()
	assert.ErrorIs(t, o.AppendElem(o.NewElem()), ErrLengthMismatch)
	assert.ErrorIs(t, o.SetElems([]*Object{o.NewElem()}), ErrLengthMismatch)
	assert.NoError(t, o.SetElems([]*Object{o.NewElem(), o.NewElem()}))

	dyn, _ := NewTypeTemplate("uint256[]")
	o = dyn.Instantiate()
	require.NoError(t, o.AppendElem(o.NewElem()))
	assert.Equal(t, 1, o.Len())
	wrong, _ := NewTypeTemplate("uint8")
	assert.ErrorIs(t, o.AppendElem(wrong.Instantiate()), ErrKindMismatch)
}

type point struct {
	X *big.Int
	Y *big.Int
}

func (p point) ABIFields() []NamedValue {
	return []NamedValue{{"x", p.X}, {"y", p.Y}}
}

func TestAssign(t *testing.T) {
	tmpl := mustTemplate(t, Arguments{
		{Name: "flag", Type: "bool"},
		{Name: "n", Type: "int64"},
		{Name: "u", Type: "uint256"},
		{Name: "who", Type: "address"},
		{Name: "data", Type: "bytes"},
		{Name: "h", Type: "bytes32"},
		{Name: "s", Type: "string"},
		{Name: "list", Type: "uint16[]"},
		{Name: "p", Type: "tuple", Components: []Argument{{Name: "x", Type: "int256"}, {Name: "y", Type: "int256"}}},
		{Name: "ps", Type: "tuple[2]", Components: []Argument{{Name: "x", Type: "int256"}, {Name: "y", Type: "int256"}}},
	})
	addr := common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	o, err := tmpl.Build(
		true,
		int64(-7),
		uint256.NewInt(1<<40),
		"0x00000000000000000000000000000000deadbeef",
		"0xcafe",
		common.Hash{1},
		[]byte("text"),
		[]int{1, 2, 3},
		point{big.NewInt(3), big.NewInt(-4)},
		[]any{
			map[string]any{"x": 1, "y": 2},
			[]any{"0x10", "-5"},
		},
	)
	require.NoError(t, err)
	assert.True(t, o.Field("flag").Bool())
	assert.Equal(t, int64(-7), o.Field("n").Int().Int64())
	assert.Equal(t, uint64(1<<40), o.Field("u").Int().Uint64())
	assert.Equal(t, addr, o.Field("who").Address())
	assert.Equal(t, []byte{0xca, 0xfe}, o.Field("data").Bytes())
	assert.Equal(t, common.Hash{1}.Bytes(), o.Field("h").Bytes())
	assert.Equal(t, "text", o.Field("s").Text())
	assert.Equal(t, 3, o.Field("list").Len())
	assert.Equal(t, int64(-4), o.Field("p").Field("y").Int().Int64())
	assert.Equal(t, int64(16), o.Field("ps").Elem(1).Field("x").Int().Int64())
	assert.Equal(t, int64(-5), o.Field("ps").Elem(1).Field("y").Int().Int64())
}

func TestAssignErrors(t *testing.T) {
	tmpl := mustTemplate(t, Arguments{
		{Name: "b", Type: "tuple[]", Components: []Argument{
			{Name: "items", Type: "tuple[]", Components: []Argument{{Name: "a", Type: "uint8"}}},
		}},
	})
	_, err := tmpl.Build([]any{
		[]any{[]any{[]any{1}}},
		[]any{[]any{[]any{2}, []any{300}}},
	})
	assert.ErrorIs(t, err, ErrOutOfRange)
	var pe *PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "b[1].items[1].a", pe.Path)

	fixed, _ := NewTypeTemplate("uint256[4]")
	_, err = fixed.Build([]any{1, 2, 3})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = fixed.Build([]any{1, 2, 3, 4})
	assert.NoError(t, err)

	strct := mustTemplate(t, Arguments{{Name: "x", Type: "bool"}, {Name: "y", Type: "bool"}})
	_, err = strct.Build(true)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	o := strct.Instantiate()
	err = o.Assign(map[string]any{"x": true})
	assert.ErrorIs(t, err, ErrKindMismatch)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "y", pe.Path)

	// a failed Assign leaves earlier fields as they were
	require.NoError(t, o.Assign([]any{true, true}))
	assert.Error(t, o.Assign([]any{false, "no"}))
	assert.True(t, o.Field("x").Bool())
	assert.Error(t, o.Assign(map[string]any{"x": false, "y": 1}))
	assert.True(t, o.Field("x").Bool())
	assert.True(t, o.Field("y").Bool())

	addr, _ := NewTypeTemplate("address")
	assert.ErrorIs(t, addr.Instantiate().Assign("0x1234"), ErrInvalidAddress)
}

func TestEqualAndClone(t *testing.T) {
	tmpl := mustTemplate(t, Arguments{
		{Name: "n", Type: "uint256"},
		{Name: "l", Type: "string[]"},
	})
	a, err := tmpl.Build(5, []string{"x", "y"})
	require.NoError(t, err)
	b := a.Clone()
	assert.True(t, a.Equal(b))

	require.NoError(t, b.Field("l").Elem(0).SetString("z"))
	assert.False(t, a.Equal(b))
	assert.Equal(t, "x", a.Field("l").Elem(0).Text())

	// unset integers compare equal to zero
	zero := tmpl.Instantiate()
	explicit := tmpl.Instantiate()
	require.NoError(t, explicit.Field("n").SetInt(big.NewInt(0)))
	assert.True(t, zero.Equal(explicit))

	assert.Equal(t, `(5,["x","y"])`, a.String())

	// assigning an object copies it
	c := tmpl.Instantiate()
	require.NoError(t, c.Assign(a))
	assert.True(t, c.Equal(a))
	require.NoError(t, a.Field("n").SetInt(big.NewInt(6)))
	assert.False(t, c.Equal(a))
}
