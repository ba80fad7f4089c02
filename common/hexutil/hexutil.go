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

/*
Package hexutil implements hex encoding with 0x prefix.

Encoding Rules

All hex data must have prefix "0x" when passed to Decode. Byte slices are encoded
as lowercase hex with the prefix. DecodeLoose additionally accepts input without
the prefix, which is what the JSON bridge relies on for bare hex payloads.
*/
package hexutil

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrEmptyString   = errors.New("empty hex string")
	ErrMissingPrefix = errors.New("hex string without 0x prefix")
	ErrOddLength     = errors.New("hex string of odd length")
	ErrSyntax        = errors.New("invalid hex string")
)

// Has0xPrefix reports whether the input starts with 0x or 0X.
// Has0xPrefix 判断输入是否以 0x 或 0X 开头。
func Has0xPrefix(input string) bool {
	return len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X')
}

// Encode encodes b as a hex string with 0x prefix.
// Encode 将 b 编码为带 0x 前缀的十六进制字符串。
func Encode(b []byte) string {
	enc := make([]byte, len(b)*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], b)
	return string(enc)
}

// Decode decodes a hex string with 0x prefix.
// Decode 解码带 0x 前缀的十六进制字符串。
func Decode(input string) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyString
	}
	if !Has0xPrefix(input) {
		return nil, ErrMissingPrefix
	}
	return decode(input[2:])
}

// MustDecode decodes a hex string with 0x prefix. It panics for invalid input.
func MustDecode(input string) []byte {
	dec, err := Decode(input)
	if err != nil {
		panic(err)
	}
	return dec
}

// DecodeLoose decodes a hex string with an optional 0x prefix. The empty
// string decodes to an empty slice.
// DecodeLoose 解码可选 0x 前缀的十六进制字符串。
func DecodeLoose(input string) ([]byte, error) {
	if Has0xPrefix(input) {
		input = input[2:]
	}
	return decode(input)
}

func decode(raw string) ([]byte, error) {
	if len(raw)%2 != 0 {
		return nil, ErrOddLength
	}
	dec, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return dec, nil
}
