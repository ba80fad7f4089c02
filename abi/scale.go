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
	"errors"
	"fmt"
	"math"

	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/scale"
)

// PackScale encodes the tree rooted at o in the compact SCALE layout:
// integers at their exact width little-endian, compact length prefixes for
// strings, bytes and dynamic lists, and plain concatenation for structs.
// PackScale 以紧凑的 SCALE 布局编码值树。
func PackScale(o *Object) ([]byte, error) {
	enc := scale.GetEncoder()
	defer scale.PutEncoder(enc)
	if err := encodeScale(enc, o); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

func encodeScale(enc *scale.Encoder, o *Object) error {
	t := o.tmpl
	switch t.Kind {
	case ValueKind:
		switch t.Type {
		case BoolTy:
			enc.WriteBool(o.boolVal)
		case IntTy, UintTy:
			if err := enc.WriteInt(o.Int(), t.Size/8, t.Type == IntTy); err != nil {
				return fmt.Errorf("%w: %v does not fit %s", ErrOutOfRange, o.Int(), t.canonical)
			}
		case AddressTy:
			enc.Write(o.addrVal.Bytes())
		case FixedBytesTy:
			enc.Write(o.Bytes())
		case BytesTy:
			enc.WriteBytes(o.bytesVal)
		case StringTy:
			enc.WriteBytes([]byte(o.strVal))
		case FixedTy, UfixedTy:
			return fmt.Errorf("%w: %s", ErrUnsupportedFixedPoint, t.canonical)
		}
		return nil
	case ListKind:
		if t.ListType == DynamicList {
			enc.WriteCompactUint(uint64(len(o.elems)))
		}
		for i, e := range o.elems {
			if err := encodeScale(enc, e); err != nil {
				return atIndex(err, i)
			}
		}
		return nil
	default:
		for _, f := range o.fields {
			if err := encodeScale(enc, f); err != nil {
				return atField(err, f.Name)
			}
		}
		return nil
	}
}

// UnpackScale decodes a tree of shape t from data. All input must be consumed.
func UnpackScale(t *Template, data []byte) (*Object, error) {
	r := scale.NewReader(data)
	o, err := DecodeScale(t, r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("abi: %d trailing bytes after %s", r.Remaining(), t.canonical)
	}
	return o, nil
}

// DecodeScale decodes a tree of shape t from the reader's current position.
// DecodeScale 从读取器的当前位置解码值树。
func DecodeScale(t *Template, r *scale.Reader) (*Object, error) {
	o := &Object{Name: t.Name, tmpl: t}
	switch t.Kind {
	case ValueKind:
		var err error
		switch t.Type {
		case BoolTy:
			o.boolVal, err = r.ReadBool()
			if err != nil && !errors.Is(err, scale.ErrEOF) {
				err = fmt.Errorf("%w: %v", ErrBadBool, err)
			}
		case IntTy, UintTy:
			o.intVal, err = r.ReadInt(t.Size/8, t.Type == IntTy)
		case AddressTy:
			var raw []byte
			if raw, err = r.ReadRaw(common.AddressLength); err == nil {
				o.addrVal = common.BytesToAddress(raw)
			}
		case FixedBytesTy:
			var raw []byte
			if raw, err = r.ReadRaw(t.Size); err == nil {
				o.bytesVal = common.CopyBytes(raw)
			}
		case BytesTy:
			o.bytesVal, err = r.ReadBytes()
		case StringTy:
			var raw []byte
			if raw, err = r.ReadBytes(); err == nil {
				o.strVal = string(raw)
			}
		case FixedTy, UfixedTy:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFixedPoint, t.canonical)
		}
		if err != nil {
			return nil, scaleErr(err)
		}
		return o, nil

	case ListKind:
		n := t.Length
		if t.ListType == DynamicList {
			var err error
			minSize := scaleMinSize(t.Elem)
			if n, err = r.ReadLength(minSize); err != nil {
				return nil, scaleErr(err)
			}
			// Zero sized elements consume no input, so the count is all
			// that bounds the allocation.
			if minSize == 0 && n > math.MaxUint16 {
				return nil, fmt.Errorf("%w: %d elements of %s, have %d bytes", ErrTruncated, n, t.Elem.canonical, r.Remaining())
			}
		}
		o.elems = make([]*Object, n)
		for i := range o.elems {
			e, err := DecodeScale(t.Elem, r)
			if err != nil {
				return nil, atIndex(err, i)
			}
			o.elems[i] = e
		}
		return o, nil

	default:
		o.fields = make([]*Object, len(t.Fields))
		for i, f := range t.Fields {
			field, err := DecodeScale(f, r)
			if err != nil {
				return nil, atField(err, f.Name)
			}
			o.fields[i] = field
		}
		return o, nil
	}
}

func scaleErr(err error) error {
	if errors.Is(err, scale.ErrEOF) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return err
}

// scaleMinSize returns the smallest possible encoding of a node, used to
// reject corrupt count prefixes before allocating.
func scaleMinSize(t *Template) int {
	switch t.Kind {
	case ValueKind:
		switch t.Type {
		case BoolTy:
			return 1
		case IntTy, UintTy, FixedTy, UfixedTy:
			return t.Size / 8
		case AddressTy:
			return common.AddressLength
		case FixedBytesTy:
			return t.Size
		default:
			return 1
		}
	case ListKind:
		if t.ListType == DynamicList {
			return 1
		}
		return t.Length * scaleMinSize(t.Elem)
	default:
		n := 0
		for _, f := range t.Fields {
			n += scaleMinSize(f)
		}
		return n
	}
}
