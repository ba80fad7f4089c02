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
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/common/hexutil"
)

// Object is one node of a typed value tree. Which payload is meaningful is
// decided by the node's template; setters reject values of the wrong kind.
// Objects are not safe for concurrent mutation.
// Object 是类型化值树中的一个节点，有效载荷由其模板决定。
type Object struct {
	Name string
	tmpl *Template

	boolVal  bool
	intVal   *big.Int
	bytesVal []byte
	addrVal  common.Address
	strVal   string

	elems  []*Object
	fields []*Object
}

// NamedValue is a single field of a host struct.
type NamedValue struct {
	Name  string
	Value any
}

// StructValue is implemented by host types that can be assigned to struct
// nodes. Fields are matched by name.
type StructValue interface {
	ABIFields() []NamedValue
}

// Template returns the shape this node was instantiated from.
func (o *Object) Template() *Template { return o.tmpl }

// Kind returns the node kind.
func (o *Object) Kind() Kind { return o.tmpl.Kind }

func (o *Object) expectValue(types ...byte) error {
	if o.tmpl.Kind == ValueKind {
		for _, t := range types {
			if o.tmpl.Type == t {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: node is %s", ErrKindMismatch, o.tmpl.canonical)
}

// SetBool sets the payload of a bool node.
func (o *Object) SetBool(v bool) error {
	if err := o.expectValue(BoolTy); err != nil {
		return err
	}
	o.boolVal = v
	return nil
}

// SetInt sets the payload of an integer node, checking it fits the declared width.
// SetInt 设置整数节点的值，并检查其是否符合声明的位宽。
func (o *Object) SetInt(v *big.Int) error {
	if err := o.expectValue(IntTy, UintTy); err != nil {
		return err
	}
	if v == nil {
		v = new(big.Int)
	}
	if err := checkIntRange(v, o.tmpl.Size, o.tmpl.Type == IntTy); err != nil {
		return err
	}
	o.intVal = new(big.Int).Set(v)
	return nil
}

func checkIntRange(v *big.Int, size int, signed bool) error {
	if signed {
		limit := new(big.Int).Lsh(common.Big1, uint(size-1))
		if v.Cmp(limit) >= 0 || v.Cmp(new(big.Int).Neg(limit)) < 0 {
			return fmt.Errorf("%w: %v does not fit int%d", ErrOutOfRange, v, size)
		}
		return nil
	}
	if v.Sign() < 0 || v.BitLen() > size {
		return fmt.Errorf("%w: %v does not fit uint%d", ErrOutOfRange, v, size)
	}
	return nil
}

// SetBytes sets the payload of a bytes or bytesN node. Short bytesN values
// are right padded with zeros.
func (o *Object) SetBytes(b []byte) error {
	if err := o.expectValue(BytesTy, FixedBytesTy); err != nil {
		return err
	}
	if o.tmpl.Type == FixedBytesTy {
		if len(b) > o.tmpl.Size {
			return fmt.Errorf("%w: %d bytes for bytes%d", ErrBytesTooLong, len(b), o.tmpl.Size)
		}
		o.bytesVal = common.RightPadBytes(common.CopyBytes(b), o.tmpl.Size)
		return nil
	}
	o.bytesVal = common.CopyBytes(b)
	return nil
}

// SetString sets the payload of a string node.
func (o *Object) SetString(s string) error {
	if err := o.expectValue(StringTy); err != nil {
		return err
	}
	o.strVal = s
	return nil
}

// SetAddress sets the payload of an address node.
func (o *Object) SetAddress(a common.Address) error {
	if err := o.expectValue(AddressTy); err != nil {
		return err
	}
	o.addrVal = a
	return nil
}

func (o *Object) expectList() error {
	if o.tmpl.Kind != ListKind {
		return fmt.Errorf("%w: node is %s, not a list", ErrKindMismatch, o.tmpl.canonical)
	}
	return nil
}

func (o *Object) checkElem(e *Object) error {
	if e == nil || e.tmpl.canonical != o.tmpl.Elem.canonical {
		return typeErr(o.tmpl.Elem.canonical, describe(e))
	}
	return nil
}

// AppendElem appends e to a dynamic list.
func (o *Object) AppendElem(e *Object) error {
	if err := o.expectList(); err != nil {
		return err
	}
	if o.tmpl.ListType == FixedList {
		return fmt.Errorf("%w: cannot append to %s", ErrLengthMismatch, o.tmpl.canonical)
	}
	if err := o.checkElem(e); err != nil {
		return err
	}
	o.elems = append(o.elems, e)
	return nil
}

// SetElems replaces the elements of a list. Fixed lists require exactly
// their declared length.
func (o *Object) SetElems(elems []*Object) error {
	if err := o.expectList(); err != nil {
		return err
	}
	if o.tmpl.ListType == FixedList && len(elems) != o.tmpl.Length {
		return fmt.Errorf("%w: %s needs %d elements, have %d", ErrLengthMismatch, o.tmpl.canonical, o.tmpl.Length, len(elems))
	}
	for i, e := range elems {
		if err := o.checkElem(e); err != nil {
			return atIndex(err, i)
		}
	}
	o.elems = append([]*Object(nil), elems...)
	return nil
}

// NewElem instantiates an element of this list's element type without
// adding it.
func (o *Object) NewElem() *Object {
	if o.tmpl.Kind != ListKind {
		return nil
	}
	return o.tmpl.Elem.Instantiate()
}

// Bool returns the payload of a bool node.
func (o *Object) Bool() bool { return o.boolVal }

// Int returns a copy of the payload of an integer node. Unset nodes are zero.
func (o *Object) Int() *big.Int {
	if o.intVal == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(o.intVal)
}

// Bytes returns a copy of the payload of a bytes or bytesN node.
func (o *Object) Bytes() []byte {
	if o.tmpl.Kind == ValueKind && o.tmpl.Type == FixedBytesTy && len(o.bytesVal) == 0 {
		return make([]byte, o.tmpl.Size)
	}
	return common.CopyBytes(o.bytesVal)
}

// Text returns the payload of a string node.
func (o *Object) Text() string { return o.strVal }

// Address returns the payload of an address node.
func (o *Object) Address() common.Address { return o.addrVal }

// Len returns the number of list elements or struct fields.
func (o *Object) Len() int {
	if o.tmpl.Kind == StructKind {
		return len(o.fields)
	}
	return len(o.elems)
}

// Elem returns the i'th list element.
func (o *Object) Elem(i int) *Object {
	if i < 0 || i >= len(o.elems) {
		return nil
	}
	return o.elems[i]
}

// Elems returns the list elements.
func (o *Object) Elems() []*Object { return o.elems }

// Fields returns the struct fields in declaration order.
func (o *Object) Fields() []*Object { return o.fields }

// Field returns the struct field with the given name, or nil.
func (o *Object) Field(name string) *Object {
	for _, f := range o.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldAt returns the i'th struct field.
func (o *Object) FieldAt(i int) *Object {
	if i < 0 || i >= len(o.fields) {
		return nil
	}
	return o.fields[i]
}

// Equal reports whether both trees have the same shape and payloads. Names
// are not compared.
// Equal 判断两棵值树的结构和值是否相同。
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.tmpl.canonical != other.tmpl.canonical {
		return false
	}
	switch o.tmpl.Kind {
	case ValueKind:
		switch o.tmpl.Type {
		case BoolTy:
			return o.boolVal == other.boolVal
		case IntTy, UintTy:
			return o.Int().Cmp(other.Int()) == 0
		case AddressTy:
			return o.addrVal == other.addrVal
		case FixedBytesTy, BytesTy:
			return bytes.Equal(o.Bytes(), other.Bytes())
		case StringTy:
			return o.strVal == other.strVal
		}
		return true
	case ListKind:
		return equalAll(o.elems, other.elems)
	default:
		return equalAll(o.fields, other.fields)
	}
}

func equalAll(a, b []*Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the tree. The template is shared.
func (o *Object) Clone() *Object {
	cpy := &Object{
		Name:     o.Name,
		tmpl:     o.tmpl,
		boolVal:  o.boolVal,
		bytesVal: common.CopyBytes(o.bytesVal),
		addrVal:  o.addrVal,
		strVal:   o.strVal,
	}
	if o.intVal != nil {
		cpy.intVal = new(big.Int).Set(o.intVal)
	}
	if o.elems != nil {
		cpy.elems = make([]*Object, len(o.elems))
		for i, e := range o.elems {
			cpy.elems[i] = e.Clone()
		}
	}
	if o.fields != nil {
		cpy.fields = make([]*Object, len(o.fields))
		for i, f := range o.fields {
			cpy.fields[i] = f.Clone()
		}
	}
	return cpy
}

// String renders the tree in a compact literal form, e.g. (100,["a","b"]).
func (o *Object) String() string {
	var b strings.Builder
	o.writeTo(&b)
	return b.String()
}

func (o *Object) writeTo(b *strings.Builder) {
	switch o.tmpl.Kind {
	case ValueKind:
		switch o.tmpl.Type {
		case BoolTy:
			fmt.Fprint(b, o.boolVal)
		case IntTy, UintTy:
			b.WriteString(o.Int().String())
		case AddressTy:
			b.WriteString(o.addrVal.Hex())
		case FixedBytesTy, BytesTy:
			b.WriteString(hexutil.Encode(o.Bytes()))
		case StringTy:
			fmt.Fprintf(b, "%q", o.strVal)
		default:
			b.WriteString("<" + o.tmpl.canonical + ">")
		}
	case ListKind:
		b.WriteByte('[')
		for i, e := range o.elems {
			if i > 0 {
				b.WriteByte(',')
			}
			e.writeTo(b)
		}
		b.WriteByte(']')
	default:
		b.WriteByte('(')
		for i, f := range o.fields {
			if i > 0 {
				b.WriteByte(',')
			}
			f.writeTo(b)
		}
		b.WriteByte(')')
	}
}

func describe(o *Object) string {
	if o == nil {
		return "nil"
	}
	return o.tmpl.canonical
}

// Assign fills the node from a host value. Accepted inputs depend on the node:
//
//	bool             bool
//	intN/uintN       Go integers, *big.Int, *uint256.Int, decimal or 0x string
//	address          common.Address, 20 byte slice, hex string
//	bytes/bytesN     []byte, common.Hash, [N]byte for common N, 0x hex or raw string
//	string           string, []byte
//	lists            []any, typed slices of the above, []*Object
//	structs          []any (positional), map[string]any, StructValue
//
// Any node also accepts an *Object of the same canonical type, which is deep
// copied in.
// Assign 用宿主语言的值填充节点，不使用反射。
func (o *Object) Assign(v any) error {
	if src, ok := v.(*Object); ok {
		if src == nil || src.tmpl.canonical != o.tmpl.canonical {
			return typeErr(o.tmpl.canonical, describe(src))
		}
		name := o.Name
		*o = *src.Clone()
		o.Name = name
		return nil
	}
	switch o.tmpl.Kind {
	case ValueKind:
		return o.assignValue(v)
	case ListKind:
		return o.assignList(v)
	default:
		// Fields are filled on a copy so a failure leaves o untouched.
		tmp := o.Clone()
		if err := tmp.assignStruct(v); err != nil {
			return err
		}
		o.fields = tmp.fields
		return nil
	}
}

func (o *Object) assignValue(v any) error {
	switch o.tmpl.Type {
	case BoolTy:
		b, ok := v.(bool)
		if !ok {
			return typeErr("bool", fmt.Sprintf("%T", v))
		}
		return o.SetBool(b)
	case IntTy, UintTy:
		n, err := toBigInt(v)
		if err != nil {
			return err
		}
		return o.SetInt(n)
	case AddressTy:
		switch a := v.(type) {
		case common.Address:
			return o.SetAddress(a)
		case *common.Address:
			if a == nil {
				return typeErr("address", "nil")
			}
			return o.SetAddress(*a)
		case []byte:
			if len(a) != common.AddressLength {
				return fmt.Errorf("%w: %d bytes", ErrInvalidAddress, len(a))
			}
			return o.SetAddress(common.BytesToAddress(a))
		case string:
			addr, err := common.ParseAddress(a)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
			}
			return o.SetAddress(addr)
		}
		return typeErr("address", fmt.Sprintf("%T", v))
	case FixedBytesTy, BytesTy:
		b, err := toBytes(v)
		if err != nil {
			return err
		}
		return o.SetBytes(b)
	case StringTy:
		switch s := v.(type) {
		case string:
			return o.SetString(s)
		case []byte:
			return o.SetString(string(s))
		}
		return typeErr("string", fmt.Sprintf("%T", v))
	case FixedTy, UfixedTy:
		return fmt.Errorf("%w: %s", ErrUnsupportedFixedPoint, o.tmpl.canonical)
	}
	return typeErr(o.tmpl.canonical, fmt.Sprintf("%T", v))
}

func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, typeErr("integer", "nil")
		}
		return n, nil
	case *uint256.Int:
		if n == nil {
			return nil, typeErr("integer", "nil")
		}
		return n.ToBig(), nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case string:
		return parseBigInt(n)
	}
	return nil, typeErr("integer", fmt.Sprintf("%T", v))
}

// parseBigInt accepts decimal or 0x-prefixed hex text, optionally negative.
func parseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	base := 10
	if hexutil.Has0xPrefix(digits) {
		digits, base = digits[2:], 16
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" {
		return nil, fmt.Errorf("%w: invalid integer %q", ErrKindMismatch, s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		if hexutil.Has0xPrefix(b) {
			dec, err := hexutil.Decode(b)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrKindMismatch, err)
			}
			return dec, nil
		}
		return []byte(b), nil
	case common.Hash:
		return b[:], nil
	case common.Address:
		return b[:], nil
	case [1]byte:
		return b[:], nil
	case [4]byte:
		return b[:], nil
	case [8]byte:
		return b[:], nil
	case [16]byte:
		return b[:], nil
	case [20]byte:
		return b[:], nil
	case [32]byte:
		return b[:], nil
	}
	return nil, typeErr("bytes", fmt.Sprintf("%T", v))
}

// toList flattens the supported slice types into a []any.
func toList(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []*Object:
		return convertList(s), true
	case []*big.Int:
		return convertList(s), true
	case []string:
		return convertList(s), true
	case []bool:
		return convertList(s), true
	case []int:
		return convertList(s), true
	case []int64:
		return convertList(s), true
	case []uint64:
		return convertList(s), true
	case [][]byte:
		return convertList(s), true
	case []common.Address:
		return convertList(s), true
	case []common.Hash:
		return convertList(s), true
	case []StructValue:
		return convertList(s), true
	}
	return nil, false
}

func convertList[T any](s []T) []any {
	out := make([]any, len(s))
	for i, x := range s {
		out[i] = x
	}
	return out
}

func (o *Object) assignList(v any) error {
	items, ok := toList(v)
	if !ok {
		return typeErr(o.tmpl.canonical, fmt.Sprintf("%T", v))
	}
	if o.tmpl.ListType == FixedList && len(items) != o.tmpl.Length {
		return fmt.Errorf("%w: %s needs %d elements, have %d", ErrLengthMismatch, o.tmpl.canonical, o.tmpl.Length, len(items))
	}
	elems := make([]*Object, len(items))
	for i, item := range items {
		e := o.tmpl.Elem.Instantiate()
		if err := e.Assign(item); err != nil {
			return atIndex(err, i)
		}
		elems[i] = e
	}
	o.elems = elems
	return nil
}

func (o *Object) assignStruct(v any) error {
	switch s := v.(type) {
	case []any:
		if len(s) != len(o.fields) {
			return fmt.Errorf("%w: %s has %d fields, have %d values", ErrLengthMismatch, o.tmpl.canonical, len(o.fields), len(s))
		}
		for i, item := range s {
			if err := o.fields[i].Assign(item); err != nil {
				return atField(err, o.fields[i].Name)
			}
		}
		return nil
	case map[string]any:
		return o.assignNamed(func(name string) (any, bool) {
			val, ok := s[name]
			return val, ok
		})
	case StructValue:
		fields := s.ABIFields()
		return o.assignNamed(func(name string) (any, bool) {
			for _, f := range fields {
				if f.Name == name {
					return f.Value, true
				}
			}
			return nil, false
		})
	}
	return typeErr(o.tmpl.canonical, fmt.Sprintf("%T", v))
}

func (o *Object) assignNamed(lookup func(string) (any, bool)) error {
	for _, f := range o.fields {
		val, ok := lookup(f.Name)
		if !ok {
			return atField(fmt.Errorf("%w: missing field", ErrKindMismatch), f.Name)
		}
		if err := f.Assign(val); err != nil {
			return atField(err, f.Name)
		}
	}
	return nil
}
