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
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackScale(t *testing.T) {
	tmpl := mustTemplate(t, Arguments{
		{Name: "a", Type: "uint16"},
		{Name: "ok", Type: "bool"},
		{Name: "s", Type: "string"},
		{Name: "l", Type: "uint8[]"},
		{Name: "f", Type: "int32[2]"},
		{Name: "who", Type: "address"},
		{Name: "tag", Type: "bytes2"},
		{Name: "p", Type: "tuple", Components: []Argument{{Name: "x", Type: "int8"}, {Name: "d", Type: "bytes"}}},
	})
	o, err := tmpl.Build(
		0x0102,
		true,
		"ab",
		[]int{1, 2},
		[]int{-1, 1},
		"0x00000000000000000000000000000000deadbeef",
		[]byte{0xaa},
		[]any{-2, []byte{}},
	)
	require.NoError(t, err)

	want := "0201" + "01" + "086162" + "080102" + "ffffffff01000000" +
		strings.Repeat("00", 16) + "deadbeef" + "aa00" + "fe00"
	enc, err := PackScale(o)
	require.NoError(t, err)
	assert.Equal(t, want, hex.EncodeToString(enc))

	dec, err := UnpackScale(tmpl, enc)
	require.NoError(t, err)
	assert.True(t, o.Equal(dec), "have %v, want %v", dec, o)
}

func TestScaleNestedRoundTrip(t *testing.T) {
	tmpl := nestedTemplate(t)
	o, err := tmpl.Build(
		-100,
		[]any{
			[]any{"Hello world!", 100, []any{[]any{1, 2, 3}}},
			[]any{"", 200, []any{}},
		},
		"Hello world!",
	)
	require.NoError(t, err)
	for _, codec := range []WireCodec{ABICodec{}, ScaleCodec{}} {
		enc, err := codec.Encode(o)
		require.NoError(t, err, codec.Name())
		dec, err := codec.Decode(tmpl, enc)
		require.NoError(t, err, codec.Name())
		assert.True(t, o.Equal(dec), "%s: have %v, want %v", codec.Name(), dec, o)
	}
}

func TestUnpackScaleErrors(t *testing.T) {
	tmpl := mustTemplate(t, Arguments{{Name: "ok", Type: "bool"}, {Name: "l", Type: "uint32[]"}})

	_, err := UnpackScale(tmpl, []byte{0x02, 0x00})
	assert.ErrorIs(t, err, ErrBadBool)
	var pe *PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "ok", pe.Path)

	// count of two, only one element present
	_, err = UnpackScale(tmpl, []byte{0x01, 0x08, 1, 0, 0, 0})
	assert.ErrorIs(t, err, ErrTruncated)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "l", pe.Path)

	strs := mustTemplate(t, Arguments{{Name: "l", Type: "string[]"}})
	_, err = UnpackScale(strs, []byte{0x08, 0x04, 'a', 0x08, 'b'})
	assert.ErrorIs(t, err, ErrTruncated)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "l[1]", pe.Path)

	_, err = UnpackScale(tmpl, []byte{0x01, 0x00, 0xff})
	assert.Error(t, err)

	_, err = UnpackScale(tmpl, nil)
	assert.ErrorIs(t, err, ErrTruncated)

	dec, err := UnpackScale(tmpl, []byte{0x00, 0x00})
	require.NoError(t, err)
	assert.False(t, dec.Field("ok").Bool())
	assert.Equal(t, 0, dec.Field("l").Len())
}

func TestUnpackScaleZeroSizedElements(t *testing.T) {
	empty := mustTemplate(t, Arguments{{Name: "l", Type: "tuple[]"}})

	// compact count of 2^27 followed by nothing
	_, err := UnpackScale(empty, []byte{0x02, 0x00, 0x00, 0x20})
	assert.ErrorIs(t, err, ErrTruncated)
	var pe *PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "l", pe.Path)

	// one above the cap
	_, err = UnpackScale(empty, []byte{0x02, 0x00, 0x04, 0x00})
	assert.ErrorIs(t, err, ErrTruncated)

	// small counts of empty elements still decode
	dec, err := UnpackScale(empty, []byte{0x0c})
	require.NoError(t, err)
	assert.Equal(t, 3, dec.Field("l").Len())
}

func TestPackScaleErrors(t *testing.T) {
	tmpl := mustTemplate(t, Arguments{{Name: "f", Type: "ufixed128x18"}})
	_, err := PackScale(tmpl.Instantiate())
	assert.ErrorIs(t, err, ErrUnsupportedFixedPoint)
	_, err = UnpackScale(tmpl, make([]byte, 16))
	assert.ErrorIs(t, err, ErrUnsupportedFixedPoint)
}

func TestCodecByName(t *testing.T) {
	for name, want := range map[string]string{"": "abi", "evm": "abi", "ABI": "abi", "scale": "scale", "wasm": "scale"} {
		c, err := CodecByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, c.Name())
	}
	_, err := CodecByName("rlp")
	assert.Error(t, err)
}
