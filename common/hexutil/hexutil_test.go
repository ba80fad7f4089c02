// Copyright 2016 The go-ethereum Authors
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

package hexutil

import (
	"bytes"
	"errors"
	"testing"
)

func checkError(t *testing.T, input string, got, want error) bool {
	if got == nil {
		if want != nil {
			t.Errorf("input %s: got no error, want %q", input, want)
			return false
		}
		return true
	}
	if want == nil {
		t.Errorf("input %s: unexpected error %q", input, got)
	} else if !errors.Is(got, want) {
		t.Errorf("input %s: got error %q, want %q", input, got, want)
	}
	return false
}

var decodeTests = []struct {
	input   string
	want    []byte
	wantErr error
}{
	{input: ``, wantErr: ErrEmptyString},
	{input: `0`, wantErr: ErrMissingPrefix},
	{input: `0x0`, wantErr: ErrOddLength},
	{input: `0x023`, wantErr: ErrOddLength},
	{input: `0xxx`, wantErr: ErrSyntax},
	{input: `0x01zz01`, wantErr: ErrSyntax},
	{input: `0x`, want: []byte{}},
	{input: `0X02`, want: []byte{0x02}},
	{input: `0xffffffffff`, want: []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		dec, err := Decode(test.input)
		if !checkError(t, test.input, err, test.wantErr) {
			continue
		}
		if !bytes.Equal(test.want, dec) {
			t.Errorf("input %s: value mismatch: got %x, want %x", test.input, dec, test.want)
		}
	}
}

func TestDecodeLoose(t *testing.T) {
	for input, want := range map[string][]byte{
		"":         {},
		"31323334": []byte("1234"),
		"0xabCD":   {0xab, 0xcd},
	} {
		dec, err := DecodeLoose(input)
		if err != nil {
			t.Fatalf("input %s: unexpected error %v", input, err)
		}
		if !bytes.Equal(dec, want) {
			t.Errorf("input %s: got %x, want %x", input, dec, want)
		}
	}
	if _, err := DecodeLoose("hello"); !errors.Is(err, ErrOddLength) {
		t.Errorf("expected odd length error, got %v", err)
	}
	if _, err := DecodeLoose("zz"); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected syntax error, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	if got := Encode([]byte{0x01, 0xab}); got != "0x01ab" {
		t.Errorf("got %s", got)
	}
	if got := Encode(nil); got != "0x" {
		t.Errorf("got %s", got)
	}
}
