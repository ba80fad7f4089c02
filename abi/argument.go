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
	"encoding/json"
	"fmt"
	"strings"
)

// Argument holds the name of a parameter and its textual type, exactly as it
// appears in a JSON ABI description. Tuple parameters carry their fields in
// Components.
// Argument 保存参数名称及其文本类型，与 JSON ABI 描述中的写法一致。
type Argument struct {
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	InternalType string     `json:"internalType,omitempty"`
	Components   []Argument `json:"components,omitempty"`
	Indexed      bool       `json:"indexed,omitempty"` // indexed is only used by events (仅适用于事件)
}

type Arguments []Argument

// UnmarshalJSON implements json.Unmarshaler interface, rejecting entries
// without a type.
func (argument *Argument) UnmarshalJSON(data []byte) error {
	type plain Argument
	var arg plain
	if err := json.Unmarshal(data, &arg); err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}
	if arg.Type == "" {
		return fmt.Errorf("argument %q: %w", arg.Name, ErrEmptyType)
	}
	*argument = Argument(arg)
	return nil
}

// IsDynamic reports whether values of this parameter are variable sized:
// string, bytes, any dynamic list level, or a tuple or fixed list holding a
// dynamic member.
// IsDynamic 判断该参数的值是否为变长类型。
func (argument Argument) IsDynamic() bool {
	desc, err := ParseTypeDescriptor(argument.Type)
	if err != nil {
		return false
	}
	for _, n := range desc.Dimensions {
		if n == 0 {
			return true
		}
	}
	if isDynamicBase(desc.RawType) {
		return true
	}
	if desc.RawType == "tuple" {
		for _, c := range argument.Components {
			if c.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// CanonicalType returns the type as it appears in a canonical signature.
// Tuples are expanded to their parenthesised component list with the array
// suffix kept, and integer/byte aliases are normalised.
//
//	tuple[] with (uint, uint256) -> (uint256,uint256)[]
func (argument Argument) CanonicalType() string {
	desc, err := ParseTypeDescriptor(argument.Type)
	if err != nil {
		return argument.Type
	}
	var b strings.Builder
	if desc.RawType == "tuple" {
		b.WriteByte('(')
		for i, c := range argument.Components {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(c.CanonicalType())
		}
		b.WriteByte(')')
	} else if e, err := parseElementary(desc.RawType); err == nil {
		b.WriteString(e.String())
	} else {
		b.WriteString(desc.RawType)
	}
	writeDimensions(&b, desc.Dimensions)
	return b.String()
}

// NonIndexed returns the arguments with indexed arguments filtered out.
// NonIndexed 方法返回过滤掉索引参数后的参数列表。
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Indexed returns the indexed arguments only.
func (arguments Arguments) Indexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// CanonicalTypes returns the canonical type of every argument.
func (arguments Arguments) CanonicalTypes() []string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.CanonicalType()
	}
	return types
}

// Template builds the struct template describing the whole argument list.
func (arguments Arguments) Template() (*Template, error) {
	return NewArgumentsTemplate(arguments)
}
