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

package abi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type enumerator
const (
	BoolTy byte = iota
	IntTy
	UintTy
	AddressTy
	FixedBytesTy
	BytesTy
	StringTy
	FixedTy
	UfixedTy
)

var (
	// dimensionRegex grabs the array suffix groups of a type string.
	// dimensionRegex 匹配类型字符串的数组后缀。
	dimensionRegex = regexp.MustCompile(`\[([0-9]*)\]`)

	// elementaryRegex splits an elementary type into its name, size and decimals.
	elementaryRegex = regexp.MustCompile(`^([a-z]+?)([0-9]+)?(?:x([0-9]+))?$`)
)

// TypeDescriptor is the parsed form of a textual ABI type: the base type and
// the list dimensions in declaration order. A dimension of 0 marks a dynamic
// list level, any other value a fixed list of that length.
//
//	uint256[2][] -> {RawType: "uint256", Dimensions: [2, 0]}
//
// TypeDescriptor 是 ABI 类型字符串的解析结果：基础类型加上按声明顺序排列的数组维度。
type TypeDescriptor struct {
	RawType    string
	Dimensions []int
}

// ParseTypeDescriptor splits s into its base type and list dimensions. The base
// type is everything before the first '['. Only empty input is rejected; the
// base type is validated when a template is built from it.
func ParseTypeDescriptor(s string) (TypeDescriptor, error) {
	if s == "" {
		return TypeDescriptor{}, ErrEmptyType
	}
	i := strings.IndexByte(s, '[')
	if i < 0 {
		return TypeDescriptor{RawType: s}, nil
	}
	desc := TypeDescriptor{RawType: s[:i]}
	for _, m := range dimensionRegex.FindAllStringSubmatch(s[i:], -1) {
		n := 0
		if m[1] != "" {
			var err error
			if n, err = strconv.Atoi(m[1]); err != nil {
				return TypeDescriptor{}, fmt.Errorf("abi: error parsing array size %q: %v", m[1], err)
			}
		}
		desc.Dimensions = append(desc.Dimensions, n)
	}
	return desc, nil
}

// IsList reports whether the descriptor has at least one dimension.
func (d TypeDescriptor) IsList() bool {
	return len(d.Dimensions) > 0
}

// IsDynamicList reports whether the outermost list level is dynamic.
func (d TypeDescriptor) IsDynamicList() bool {
	return d.IsList() && d.LastDimension() == 0
}

// IsFixedList reports whether the outermost list level has a fixed length.
func (d TypeDescriptor) IsFixedList() bool {
	return d.IsList() && d.LastDimension() != 0
}

// LastDimension returns the outermost dimension, or -1 for scalars.
func (d TypeDescriptor) LastDimension() int {
	if !d.IsList() {
		return -1
	}
	return d.Dimensions[len(d.Dimensions)-1]
}

// ReduceDimension returns the element type of the outermost list level.
// ReduceDimension 返回去掉最外层数组维度后的元素类型。
func (d TypeDescriptor) ReduceDimension() TypeDescriptor {
	if len(d.Dimensions) <= 1 {
		return TypeDescriptor{RawType: d.RawType}
	}
	dims := make([]int, len(d.Dimensions)-1)
	copy(dims, d.Dimensions)
	return TypeDescriptor{RawType: d.RawType, Dimensions: dims}
}

// String renders the descriptor back into a type string.
func (d TypeDescriptor) String() string {
	var b strings.Builder
	b.WriteString(d.RawType)
	writeDimensions(&b, d.Dimensions)
	return b.String()
}

func writeDimensions(b *strings.Builder, dims []int) {
	for _, n := range dims {
		if n == 0 {
			b.WriteString("[]")
		} else {
			b.WriteString("[" + strconv.Itoa(n) + "]")
		}
	}
}

// elementary describes a non-list, non-tuple type.
type elementary struct {
	T        byte
	Size     int
	Decimals int
}

// parseElementary resolves a base type name, applying the alias defaults
// (uint -> uint256, int -> int256, byte -> bytes1, fixed -> fixed128x18).
// parseElementary 解析基础类型名称并应用默认别名。
func parseElementary(raw string) (elementary, error) {
	m := elementaryRegex.FindStringSubmatch(raw)
	if m == nil {
		return elementary{}, fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	name, size, decimals := m[1], -1, -1
	if m[2] != "" {
		size, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		decimals, _ = strconv.Atoi(m[3])
	}
	unknown := fmt.Errorf("%w: %q", ErrUnknownType, raw)

	switch name {
	case "bool", "address", "string", "byte":
		if size != -1 || decimals != -1 {
			return elementary{}, unknown
		}
		switch name {
		case "bool":
			return elementary{T: BoolTy}, nil
		case "address":
			return elementary{T: AddressTy, Size: 20}, nil
		case "byte":
			return elementary{T: FixedBytesTy, Size: 1}, nil
		}
		return elementary{T: StringTy}, nil
	case "int", "uint":
		if decimals != -1 {
			return elementary{}, unknown
		}
		if size == -1 {
			size = 256
		}
		if size < 8 || size > 256 || size%8 != 0 {
			return elementary{}, unknown
		}
		if name == "int" {
			return elementary{T: IntTy, Size: size}, nil
		}
		return elementary{T: UintTy, Size: size}, nil
	case "bytes":
		if decimals != -1 {
			return elementary{}, unknown
		}
		if size == -1 {
			return elementary{T: BytesTy}, nil
		}
		if size < 1 || size > 32 {
			return elementary{}, unknown
		}
		return elementary{T: FixedBytesTy, Size: size}, nil
	case "fixed", "ufixed":
		if size == -1 && decimals == -1 {
			size, decimals = 128, 18
		}
		if size < 8 || size > 256 || size%8 != 0 || decimals < 0 || decimals > 80 {
			return elementary{}, unknown
		}
		if name == "fixed" {
			return elementary{T: FixedTy, Size: size, Decimals: decimals}, nil
		}
		return elementary{T: UfixedTy, Size: size, Decimals: decimals}, nil
	}
	return elementary{}, unknown
}

// String returns the canonical name of the elementary type.
func (e elementary) String() string {
	switch e.T {
	case BoolTy:
		return "bool"
	case IntTy:
		return "int" + strconv.Itoa(e.Size)
	case UintTy:
		return "uint" + strconv.Itoa(e.Size)
	case AddressTy:
		return "address"
	case FixedBytesTy:
		return "bytes" + strconv.Itoa(e.Size)
	case BytesTy:
		return "bytes"
	case StringTy:
		return "string"
	case FixedTy:
		return fmt.Sprintf("fixed%dx%d", e.Size, e.Decimals)
	case UfixedTy:
		return fmt.Sprintf("ufixed%dx%d", e.Size, e.Decimals)
	}
	return "unknown"
}

// isDynamicBase reports whether a base type name is variable sized.
func isDynamicBase(raw string) bool {
	return raw == "string" || raw == "bytes"
}
