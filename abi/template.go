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
	"fmt"
	"strconv"
	"strings"
)

// Kind is the shape of a template node.
type Kind uint8

const (
	ValueKind Kind = iota
	ListKind
	StructKind
)

func (k Kind) String() string {
	switch k {
	case ValueKind:
		return "value"
	case ListKind:
		return "list"
	case StructKind:
		return "struct"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ListType distinguishes fixed length lists from dynamic ones.
type ListType uint8

const (
	FixedList ListType = iota
	DynamicList
)

// Template is the immutable shape of a typed value tree. Templates are built
// once per parameter list and shared; every encode or decode call works on
// fresh Objects instantiated from them.
// Template 是类型化值树的不可变结构描述，可被多个调用共享。
type Template struct {
	Name string
	Kind Kind

	// Value nodes
	Type     byte // BoolTy, IntTy, ...
	Size     int  // bit width for integers, byte length for bytesN and address
	Decimals int  // fixed point only

	// List nodes
	ListType ListType
	Length   int // fixed lists only
	Elem     *Template

	// Struct nodes
	Fields []*Template

	dynamic   bool
	headSize  int
	canonical string
}

// NewTemplate builds the template for a single parameter. List levels wrap the
// element template, tuples become struct nodes over their components.
// NewTemplate 为单个参数构建模板。
func NewTemplate(arg Argument) (*Template, error) {
	desc, err := ParseTypeDescriptor(arg.Type)
	if err != nil {
		return nil, err
	}
	return newTemplate(arg.Name, desc, arg.Components)
}

// NewArgumentsTemplate builds the struct template for a whole parameter list.
// Unnamed parameters are called argN.
func NewArgumentsTemplate(args Arguments) (*Template, error) {
	return newStructTemplate("", args)
}

// NewTypeTemplate builds a template from a bare type string such as
// "uint256[3]". Tuple types need their components and are rejected.
func NewTypeTemplate(typ string) (*Template, error) {
	desc, err := ParseTypeDescriptor(typ)
	if err != nil {
		return nil, err
	}
	if desc.RawType == "tuple" {
		return nil, fmt.Errorf("%w: %q needs components", ErrUnknownType, typ)
	}
	return newTemplate("", desc, nil)
}

func newTemplate(name string, desc TypeDescriptor, components []Argument) (*Template, error) {
	if desc.IsList() {
		elem, err := newTemplate("", desc.ReduceDimension(), components)
		if err != nil {
			return nil, err
		}
		t := &Template{Name: name, Kind: ListKind, Elem: elem}
		if n := desc.LastDimension(); n == 0 {
			t.ListType = DynamicList
			t.dynamic = true
			t.canonical = elem.canonical + "[]"
		} else {
			t.ListType = FixedList
			t.Length = n
			t.dynamic = elem.dynamic
			t.canonical = elem.canonical + "[" + strconv.Itoa(n) + "]"
		}
		t.headSize = 32
		if !t.dynamic {
			t.headSize = t.Length * elem.headSize
		}
		return t, nil
	}
	if desc.RawType == "tuple" {
		return newStructTemplate(name, components)
	}
	e, err := parseElementary(desc.RawType)
	if err != nil {
		return nil, err
	}
	return &Template{
		Name:      name,
		Kind:      ValueKind,
		Type:      e.T,
		Size:      e.Size,
		Decimals:  e.Decimals,
		dynamic:   e.T == BytesTy || e.T == StringTy,
		headSize:  32,
		canonical: e.String(),
	}, nil
}

func newStructTemplate(name string, components []Argument) (*Template, error) {
	t := &Template{Name: name, Kind: StructKind}
	names := fieldNames(components)
	canon := make([]string, len(components))
	for i, c := range components {
		field, err := NewTemplate(c)
		if err != nil {
			return nil, atField(err, names[i])
		}
		field.Name = names[i]
		t.Fields = append(t.Fields, field)
		t.dynamic = t.dynamic || field.dynamic
		t.headSize += field.headSize
		canon[i] = field.canonical
	}
	if t.dynamic {
		t.headSize = 32
	}
	t.canonical = "(" + strings.Join(canon, ",") + ")"
	return t, nil
}

// IsDynamic reports whether encodings of this shape vary in size.
func (t *Template) IsDynamic() bool {
	return t.dynamic
}

// HeadSize returns the number of bytes the node occupies in the head area of
// its enclosing sequence: 32 for dynamic nodes (the offset word), the full
// inline size for static ones.
func (t *Template) HeadSize() int {
	return t.headSize
}

// Canonical returns the canonical type string, e.g. (uint256,string[])[2].
func (t *Template) Canonical() string {
	return t.canonical
}

func (t *Template) String() string {
	if t.Name == "" {
		return t.canonical
	}
	return t.canonical + " " + t.Name
}

// FieldIndex returns the position of the named field, or -1.
func (t *Template) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Instantiate returns an empty value tree of this shape. Fixed lists get
// their full length of empty elements, dynamic lists start empty.
// Instantiate 返回该结构的空值树。
func (t *Template) Instantiate() *Object {
	o := &Object{Name: t.Name, tmpl: t}
	switch t.Kind {
	case ListKind:
		if t.ListType == FixedList {
			o.elems = make([]*Object, t.Length)
			for i := range o.elems {
				o.elems[i] = t.Elem.Instantiate()
			}
		}
	case StructKind:
		o.fields = make([]*Object, len(t.Fields))
		for i, f := range t.Fields {
			o.fields[i] = f.Instantiate()
		}
	}
	return o
}

// Build instantiates the template and assigns values to it. Struct templates
// take one value per field, any other template exactly one value.
func (t *Template) Build(values ...any) (*Object, error) {
	o := t.Instantiate()
	if t.Kind == StructKind {
		if len(values) != len(t.Fields) {
			return nil, fmt.Errorf("%w: %s takes %d values, have %d", ErrLengthMismatch, t.canonical, len(t.Fields), len(values))
		}
		for i, v := range values {
			if err := o.fields[i].Assign(v); err != nil {
				return nil, atField(err, t.Fields[i].Name)
			}
		}
		return o, nil
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("%w: %s takes one value, have %d", ErrLengthMismatch, t.canonical, len(values))
	}
	if err := o.Assign(values[0]); err != nil {
		return nil, err
	}
	return o, nil
}

// isFixedPoint reports whether the node is a fixed/ufixed value.
func (t *Template) isFixedPoint() bool {
	return t.Kind == ValueKind && (t.Type == FixedTy || t.Type == UfixedTy)
}
