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

	"github.com/holiman/uint256"
	"github.com/sunyihoo/abicodec/common"
)

// Pack encodes the tree rooted at o in the 32-byte word layout. A struct
// root is laid out as a head/tail sequence of its fields, which is exactly
// the argument encoding of a call; any other root is encoded as that single
// value.
// Pack 以 32 字节字布局编码以 o 为根的值树。
func Pack(o *Object) ([]byte, error) {
	return packObject(o)
}

func packObject(o *Object) ([]byte, error) {
	t := o.tmpl
	switch t.Kind {
	case ValueKind:
		return packElement(o)
	case ListKind:
		seq, err := packSequence(o.elems, atIndex)
		if err != nil {
			return nil, err
		}
		if t.ListType == DynamicList {
			return append(packLength(len(o.elems)), seq...), nil
		}
		return seq, nil
	default:
		return packSequence(o.fields, func(err error, i int) error {
			return atField(err, o.fields[i].Name)
		})
	}
}

// packSequence lays out children as a head area followed by a tail area.
// Static children are inlined in the head; dynamic children leave an offset
// word, measured from the start of the sequence, pointing at their tail data.
func packSequence(children []*Object, at func(error, int) error) ([]byte, error) {
	headSize := 0
	for _, c := range children {
		headSize += c.tmpl.headSize
	}
	var (
		head = make([]byte, 0, headSize)
		tail []byte
	)
	for i, c := range children {
		enc, err := packObject(c)
		if err != nil {
			return nil, at(err, i)
		}
		if c.tmpl.dynamic {
			head = append(head, packLength(headSize+len(tail))...)
			tail = append(tail, enc...)
		} else {
			head = append(head, enc...)
		}
	}
	return append(head, tail...), nil
}

// packElement packs a value node.
// packElement 打包一个值节点。
func packElement(o *Object) ([]byte, error) {
	switch o.tmpl.Type {
	case BoolTy:
		if o.boolVal {
			return packLength(1), nil
		}
		return packLength(0), nil
	case IntTy, UintTy:
		return packNum(o)
	case AddressTy:
		return common.LeftPadBytes(o.addrVal.Bytes(), 32), nil
	case FixedBytesTy:
		return common.RightPadBytes(o.Bytes(), 32), nil
	case BytesTy:
		return packBytesSlice(o.bytesVal), nil
	case StringTy:
		return packBytesSlice([]byte(o.strVal)), nil
	case FixedTy, UfixedTy:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFixedPoint, o.tmpl.canonical)
	}
	return nil, fmt.Errorf("could not pack element, unknown type: %v", o.tmpl.Type)
}

// packBytesSlice packs the given bytes as [L, V], the length word followed by
// the data right padded to a word boundary.
func packBytesSlice(bytes []byte) []byte {
	return append(packLength(len(bytes)), common.RightPadBytes(bytes, common.Align32(len(bytes)))...)
}

// packNum packs an integer node as a 32 byte two's complement word.
func packNum(o *Object) ([]byte, error) {
	if o.intVal == nil {
		return make([]byte, 32), nil
	}
	if err := checkIntRange(o.intVal, o.tmpl.Size, o.tmpl.Type == IntTy); err != nil {
		return nil, err
	}
	u, _ := uint256.FromBig(o.intVal)
	word := u.Bytes32()
	return word[:], nil
}

func packLength(n int) []byte {
	word := uint256.NewInt(uint64(n)).Bytes32()
	return word[:]
}
