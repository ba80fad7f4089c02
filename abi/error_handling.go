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
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrEmptyType is returned when a type string is empty.
	ErrEmptyType = errors.New("abi: empty type")

	// ErrUnknownType is returned for base types the codec does not know.
	// ErrUnknownType 在遇到未知的基础类型时返回。
	ErrUnknownType = errors.New("abi: unknown type")

	// ErrTupleSignature is returned when a text signature names a tuple type.
	ErrTupleSignature = errors.New("abi: tuple types are not supported in text signatures")

	// ErrUnsupportedFixedPoint is returned by both codecs for fixed/ufixed values.
	ErrUnsupportedFixedPoint = errors.New("abi: fixed point types are not supported")

	// ErrTruncated is returned when encoded input ends before a value does.
	// ErrTruncated 在编码数据提前结束时返回。
	ErrTruncated = errors.New("abi: input truncated")

	// ErrOutOfRange is returned when an integer does not fit its declared width.
	ErrOutOfRange = errors.New("abi: value out of range")

	// ErrBytesTooLong is returned when a bytesN value receives more than N bytes.
	ErrBytesTooLong = errors.New("abi: byte value too long")

	// ErrInvalidAddress is returned for malformed addresses.
	ErrInvalidAddress = errors.New("abi: invalid address")

	// ErrBadBool is returned when a boolean value is improperly encoded.
	// ErrBadBool 在布尔值编码不正确时返回。
	ErrBadBool = errors.New("abi: improperly encoded boolean value")

	// ErrKindMismatch is returned when a host value cannot be assigned to a node.
	ErrKindMismatch = errors.New("abi: value kind mismatch")

	// ErrLengthMismatch is returned when a fixed list receives the wrong number of elements.
	ErrLengthMismatch = errors.New("abi: list length mismatch")
)

// PathError records the location inside a value tree where an operation failed.
// Paths use dotted field names and bracketed list indices, e.g. b[1].items[0].a.
// PathError 记录值树中发生错误的位置。
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Err, e.Path)
}

func (e *PathError) Unwrap() error { return e.Err }

// atField prefixes the error path with a struct field name.
func atField(err error, name string) error {
	if err == nil || name == "" {
		return err
	}
	if pe, ok := err.(*PathError); ok {
		if pe.Path[0] == '[' {
			pe.Path = name + pe.Path
		} else {
			pe.Path = name + "." + pe.Path
		}
		return pe
	}
	return &PathError{Path: name, Err: err}
}

// atIndex prefixes the error path with a list index.
func atIndex(err error, i int) error {
	if err == nil {
		return nil
	}
	idx := "[" + strconv.Itoa(i) + "]"
	if pe, ok := err.(*PathError); ok {
		if pe.Path[0] == '[' {
			pe.Path = idx + pe.Path
		} else {
			pe.Path = idx + "." + pe.Path
		}
		return pe
	}
	return &PathError{Path: idx, Err: err}
}

// typeErr returns a formatted type casting error.
// typeErr 返回格式化的类型转换错误。
func typeErr(expected, got interface{}) error {
	return fmt.Errorf("%w: cannot use %v as type %v", ErrKindMismatch, got, expected)
}
