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
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/abicodec/common"
)

// Unpack decodes a tree of shape t from data, starting at offset. A struct
// template is read as a head/tail sequence whose offsets are relative to
// data[offset:]; any other template is read as a single value.
// Unpack 从 data 的 offset 处按模板 t 解码值树。
func Unpack(t *Template, data []byte, offset int) (*Object, error) {
	if offset < 0 || offset > len(data) {
		return nil, fmt.Errorf("%w: offset %d beyond %d bytes", ErrTruncated, offset, len(data))
	}
	frame := data[offset:]
	if t.Kind == StructKind || t.dynamic {
		return unpackContent(t, frame)
	}
	return unpackAt(t, frame, 0)
}

// unpackAt decodes the node whose head slot starts at frame[pos:]. Dynamic
// nodes hold an offset into frame there, static nodes are stored inline.
func unpackAt(t *Template, frame []byte, pos int) (*Object, error) {
	if t.dynamic {
		off, err := readLength(frame, pos)
		if err != nil {
			return nil, err
		}
		if off > len(frame) {
			return nil, fmt.Errorf("%w: offset %d beyond %d bytes", ErrTruncated, off, len(frame))
		}
		return unpackContent(t, frame[off:])
	}
	switch t.Kind {
	case ValueKind:
		return unpackElement(t, frame, pos)
	default:
		if pos+t.headSize > len(frame) {
			return nil, fmt.Errorf("%w: need %d bytes at %d, have %d", ErrTruncated, t.headSize, pos, len(frame))
		}
		return unpackContent(t, frame[pos:])
	}
}

// unpackContent decodes a node whose encoding starts at content[0].
func unpackContent(t *Template, content []byte) (*Object, error) {
	o := &Object{Name: t.Name, tmpl: t}
	switch t.Kind {
	case ValueKind:
		if t.Type != BytesTy && t.Type != StringTy {
			return unpackElement(t, content, 0)
		}
		n, err := readLength(content, 0)
		if err != nil {
			return nil, err
		}
		if 32+n > len(content) {
			return nil, fmt.Errorf("%w: %s of length %d, have %d bytes", ErrTruncated, t.canonical, n, len(content)-32)
		}
		data := common.CopyBytes(content[32 : 32+n])
		if t.Type == StringTy {
			o.strVal = string(data)
		} else {
			o.bytesVal = data
		}
		return o, nil

	case ListKind:
		frame, n := content, t.Length
		if t.ListType == DynamicList {
			var err error
			if n, err = readLength(content, 0); err != nil {
				return nil, err
			}
			frame = content[32:]
			if size := t.Elem.headSize; (size > 0 && n > len(frame)/size) || (size == 0 && n > math.MaxUint16) {
				return nil, fmt.Errorf("%w: %d elements of %s, have %d bytes", ErrTruncated, n, t.Elem.canonical, len(frame))
			}
		}
		o.elems = make([]*Object, n)
		pos := 0
		for i := range o.elems {
			e, err := unpackAt(t.Elem, frame, pos)
			if err != nil {
				return nil, atIndex(err, i)
			}
			o.elems[i] = e
			pos += t.Elem.headSize
		}
		return o, nil

	default:
		o.fields = make([]*Object, len(t.Fields))
		pos := 0
		for i, f := range t.Fields {
			field, err := unpackAt(f, content, pos)
			if err != nil {
				return nil, atField(err, f.Name)
			}
			o.fields[i] = field
			pos += f.headSize
		}
		return o, nil
	}
}

// unpackElement decodes a static value word at frame[pos:].
func unpackElement(t *Template, frame []byte, pos int) (*Object, error) {
	if t.isFixedPoint() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFixedPoint, t.canonical)
	}
	if pos < 0 || pos+32 > len(frame) {
		return nil, fmt.Errorf("%w: need a word at %d, have %d bytes", ErrTruncated, pos, len(frame))
	}
	word := frame[pos : pos+32]
	o := &Object{Name: t.Name, tmpl: t}
	switch t.Type {
	case BoolTy:
		v, err := readBool(word)
		if err != nil {
			return nil, err
		}
		o.boolVal = v
	case IntTy, UintTy:
		v, err := readInteger(t, word)
		if err != nil {
			return nil, err
		}
		o.intVal = v
	case AddressTy:
		for _, b := range word[:12] {
			if b != 0 {
				return nil, fmt.Errorf("%w: dirty padding in word %x", ErrInvalidAddress, word)
			}
		}
		o.addrVal = common.BytesToAddress(word[12:])
	case FixedBytesTy:
		o.bytesVal = common.CopyBytes(word[:t.Size])
	default:
		return nil, fmt.Errorf("abi: cannot unpack %s as a word", t.canonical)
	}
	return o, nil
}

// readBool accepts only the canonical encodings of 0 and 1.
func readBool(word []byte) (bool, error) {
	for _, b := range word[:31] {
		if b != 0 {
			return false, ErrBadBool
		}
	}
	switch word[31] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrBadBool
	}
}

// readInteger reads a two's complement word and checks it fits the declared width.
// readInteger 读取补码字并检查其是否符合声明的位宽。
func readInteger(t *Template, word []byte) (*big.Int, error) {
	u := new(uint256.Int).SetBytes(word)
	v := u.ToBig()
	if t.Type == IntTy && u.Sign() < 0 {
		v.Sub(v, new(big.Int).Lsh(common.Big1, 256))
	}
	if err := checkIntRange(v, t.Size, t.Type == IntTy); err != nil {
		return nil, err
	}
	return v, nil
}

// readLength reads an offset or length word that must fit in an int.
func readLength(frame []byte, pos int) (int, error) {
	if pos < 0 || pos+32 > len(frame) {
		return 0, fmt.Errorf("%w: need a length word at %d, have %d bytes", ErrTruncated, pos, len(frame))
	}
	u := new(uint256.Int).SetBytes(frame[pos : pos+32])
	if !u.IsUint64() || u.Uint64() > math.MaxInt32 {
		return 0, fmt.Errorf("%w: length word %s too large", ErrTruncated, u.Dec())
	}
	return int(u.Uint64()), nil
}
