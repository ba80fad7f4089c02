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

// Package jsoncodec converts typed value trees to and from JSON.
//
// Encoding walks a template and a JSON node in lockstep. Byte valued text is
// read as hex when it carries a hex:// or 0x prefix or is bare hex, and as raw
// bytes otherwise: "hex://31323334" and "1234" produce the bytes 0x31323334 and
// 0x1234, while "plain text" falls back to its raw bytes.
//
// jsoncodec 包在类型化值树与 JSON 之间进行转换。
package jsoncodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/sunyihoo/abicodec/abi"
	"github.com/sunyihoo/abicodec/common"
	"github.com/sunyihoo/abicodec/common/hexutil"
)

// HexPrefix marks byte text that must be read as hex.
const HexPrefix = "hex://"

// MismatchError is returned when a JSON node does not fit the template.
// MismatchError 在 JSON 节点与模板不匹配时返回。
type MismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("json mismatch: expected %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("json mismatch at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Unwrap makes mismatches match abi.ErrKindMismatch.
func (e *MismatchError) Unwrap() error { return abi.ErrKindMismatch }

func mismatch(path, expected string, node any) error {
	return &MismatchError{Path: path, Expected: expected, Actual: kindOf(node)}
}

func kindOf(node any) string {
	switch v := node.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array of length " + strconv.Itoa(len(v))
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", node)
}

// atPath attaches path to errors raised by the tree setters.
func atPath(path string, err error) error {
	if err == nil || path == "" {
		return err
	}
	if _, ok := err.(*MismatchError); ok {
		return err
	}
	return &abi.PathError{Path: path, Err: err}
}

func joinField(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func joinIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// parse decodes JSON text keeping numbers exact.
func parse(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var node any
	if err := dec.Decode(&node); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid json: trailing data after value")
	}
	return node, nil
}

// Encode parses jsonText and fills a new tree of shape t from it.
// Encode 解析 JSON 文本并据此填充一棵新的值树。
func Encode(t *abi.Template, jsonText string) (*abi.Object, error) {
	node, err := parse(jsonText)
	if err != nil {
		return nil, err
	}
	return EncodeValue(t, node)
}

// EncodeValue fills a new tree of shape t from a decoded JSON node: nil,
// bool, json.Number, float64, string, []any or map[string]any.
func EncodeValue(t *abi.Template, node any) (*abi.Object, error) {
	o := t.Instantiate()
	if err := encodeInto(o, node, ""); err != nil {
		return nil, err
	}
	return o, nil
}

// EncodeStrings fills a parameter list from one text value per parameter.
// Scalars are given as plain text, lists and structs as JSON.
// EncodeStrings 按参数逐个使用文本值填充参数列表。
func EncodeStrings(t *abi.Template, params []string) (*abi.Object, error) {
	if t.Kind != abi.StructKind {
		return nil, fmt.Errorf("%w: %s is not a parameter list", abi.ErrKindMismatch, t.Canonical())
	}
	if len(params) != len(t.Fields) {
		return nil, fmt.Errorf("%w: %s takes %d values, have %d", abi.ErrLengthMismatch, t.Canonical(), len(t.Fields), len(params))
	}
	o := t.Instantiate()
	for i, field := range t.Fields {
		node, err := textNode(field, params[i])
		if err != nil {
			return nil, err
		}
		if err := encodeInto(o.FieldAt(i), node, field.Name); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func textNode(t *abi.Template, text string) (any, error) {
	if t.Kind != abi.ValueKind {
		node, err := parse(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name, err)
		}
		return node, nil
	}
	if t.Type == abi.BoolTy {
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return nil, &MismatchError{Path: t.Name, Expected: "boolean", Actual: strconv.Quote(text)}
		}
		return b, nil
	}
	return text, nil
}

func encodeInto(o *abi.Object, node any, path string) error {
	t := o.Template()
	switch t.Kind {
	case abi.ListKind:
		items, ok := node.([]any)
		if !ok {
			return mismatch(path, "array", node)
		}
		if t.ListType == abi.FixedList {
			if len(items) != t.Length {
				return mismatch(path, "array of length "+strconv.Itoa(t.Length), node)
			}
			for i, item := range items {
				if err := encodeInto(o.Elem(i), item, joinIndex(path, i)); err != nil {
					return err
				}
			}
			return nil
		}
		elems := make([]*abi.Object, len(items))
		for i, item := range items {
			elems[i] = o.NewElem()
			if err := encodeInto(elems[i], item, joinIndex(path, i)); err != nil {
				return err
			}
		}
		return atPath(path, o.SetElems(elems))

	case abi.StructKind:
		switch v := node.(type) {
		case []any:
			if len(v) != len(t.Fields) {
				return mismatch(path, "array of length "+strconv.Itoa(len(t.Fields)), node)
			}
			for i, item := range v {
				if err := encodeInto(o.FieldAt(i), item, joinField(path, t.Fields[i].Name)); err != nil {
					return err
				}
			}
			return nil
		case map[string]any:
			for i, f := range t.Fields {
				item, ok := v[f.Name]
				if !ok {
					return &MismatchError{Path: joinField(path, f.Name), Expected: "field " + strconv.Quote(f.Name), Actual: "nothing"}
				}
				if err := encodeInto(o.FieldAt(i), item, joinField(path, f.Name)); err != nil {
					return err
				}
			}
			return nil
		}
		return mismatch(path, "array or object", node)
	}
	return atPath(path, encodeValue(o, node, path))
}

func encodeValue(o *abi.Object, node any, path string) error {
	t := o.Template()
	switch t.Type {
	case abi.BoolTy:
		b, ok := node.(bool)
		if !ok {
			return mismatch(path, "boolean", node)
		}
		return o.SetBool(b)

	case abi.IntTy, abi.UintTy:
		n, err := toInteger(node)
		if err != nil {
			return mismatch(path, "integer", node)
		}
		return o.SetInt(n)

	case abi.AddressTy:
		s, ok := node.(string)
		if !ok {
			return mismatch(path, "address string", node)
		}
		addr, err := common.ParseAddress(strings.TrimPrefix(s, HexPrefix))
		if err != nil {
			return fmt.Errorf("%w: %v", abi.ErrInvalidAddress, err)
		}
		return o.SetAddress(addr)

	case abi.BytesTy, abi.FixedBytesTy:
		s, ok := node.(string)
		if !ok {
			return mismatch(path, "byte string", node)
		}
		return o.SetBytes(BytesFromText(s))

	case abi.StringTy:
		s, ok := node.(string)
		if !ok {
			return mismatch(path, "string", node)
		}
		return o.SetString(s)

	case abi.FixedTy, abi.UfixedTy:
		return fmt.Errorf("%w: %s", abi.ErrUnsupportedFixedPoint, t.Canonical())
	}
	return mismatch(path, t.Canonical(), node)
}

// BytesFromText interprets byte valued text: hex after a hex:// or 0x
// prefix, or bare hex, and the raw bytes of the text when it is not valid
// hex.
// BytesFromText 解析字节文本：优先按十六进制解码，失败时退回原始字节。
func BytesFromText(s string) []byte {
	body := strings.TrimPrefix(s, HexPrefix)
	if dec, err := hexutil.DecodeLoose(body); err == nil {
		return dec
	}
	return []byte(s)
}

func toInteger(node any) (*big.Int, error) {
	switch v := node.(type) {
	case json.Number:
		return parseInteger(string(v))
	case string:
		return parseInteger(v)
	case float64:
		f := new(big.Float).SetFloat64(v)
		if !f.IsInt() {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
		n, _ := f.Int(nil)
		return n, nil
	}
	return nil, fmt.Errorf("unexpected %T", node)
}

func parseInteger(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	base := 10
	if hexutil.Has0xPrefix(digits) {
		digits, base = digits[2:], 16
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// Decode renders a tree as JSON nodes: booleans, json.Number for integers,
// 0x hex strings for addresses and bytes, and arrays for lists and structs.
// Struct field names are not emitted.
// Decode 将值树渲染为 JSON 节点，结构体按位置输出为数组。
func Decode(o *abi.Object) any {
	t := o.Template()
	switch t.Kind {
	case abi.ListKind:
		out := make([]any, o.Len())
		for i, e := range o.Elems() {
			out[i] = Decode(e)
		}
		return out
	case abi.StructKind:
		out := make([]any, o.Len())
		for i, f := range o.Fields() {
			out[i] = Decode(f)
		}
		return out
	}
	switch t.Type {
	case abi.BoolTy:
		return o.Bool()
	case abi.IntTy, abi.UintTy:
		return json.Number(o.Int().String())
	case abi.AddressTy:
		return o.Address().Hex()
	case abi.BytesTy, abi.FixedBytesTy:
		return hexutil.Encode(o.Bytes())
	case abi.StringTy:
		return o.Text()
	}
	return nil
}

// Marshal renders a tree as compact JSON text.
func Marshal(o *abi.Object) ([]byte, error) {
	return json.Marshal(Decode(o))
}

// DecodeToStrings decodes a parameter list with codec and renders every
// parameter as one string, see ToStrings.
// DecodeToStrings 解码参数列表并将每个参数渲染为一个字符串。
func DecodeToStrings(t *abi.Template, data []byte, codec abi.WireCodec) ([]string, error) {
	if codec == nil {
		codec = abi.ABICodec{}
	}
	o, err := codec.Decode(t, data)
	if err != nil {
		return nil, err
	}
	return ToStrings(o)
}

// ToStrings renders each field of a parameter list: scalars as plain text,
// bytes as hex:// text and lists or structs as indented JSON.
func ToStrings(o *abi.Object) ([]string, error) {
	if o.Kind() != abi.StructKind {
		return nil, fmt.Errorf("%w: %s is not a parameter list", abi.ErrKindMismatch, o.Template().Canonical())
	}
	out := make([]string, 0, o.Len())
	for _, f := range o.Fields() {
		s, err := toString(f)
		if err != nil {
			return nil, atPath(f.Name, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func toString(o *abi.Object) (string, error) {
	t := o.Template()
	if t.Kind != abi.ValueKind {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(Decode(o)); err != nil {
			return "", err
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	}
	switch t.Type {
	case abi.BoolTy:
		return strconv.FormatBool(o.Bool()), nil
	case abi.IntTy, abi.UintTy:
		return o.Int().String(), nil
	case abi.AddressTy:
		return o.Address().Hex(), nil
	case abi.BytesTy, abi.FixedBytesTy:
		return HexPrefix + common.Bytes2Hex(o.Bytes()), nil
	case abi.StringTy:
		return o.Text(), nil
	}
	return "", fmt.Errorf("%w: %s", abi.ErrUnsupportedFixedPoint, t.Canonical())
}
