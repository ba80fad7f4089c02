// Copyright 2018 The go-ethereum Authors
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
	"errors"
	"fmt"
	"strings"

	"github.com/sunyihoo/abicodec/crypto"
)

// eventTemplates derives the two shapes an event log is read with: the data
// template covering the non-indexed inputs, and the log template covering all
// inputs where indexed reference types (string, bytes, lists, tuples) are
// replaced by the bytes32 hash stored in their topic.
func eventTemplates(inputs *Template, args Arguments) (*Template, *Template, error) {
	logs := &Template{Name: inputs.Name, Kind: StructKind}
	data := &Template{Name: inputs.Name, Kind: StructKind}
	var canonLogs, canonData []string
	for i, field := range inputs.Fields {
		if args[i].Indexed {
			if field.Kind != ValueKind || field.dynamic {
				hash, err := NewTypeTemplate("bytes32")
				if err != nil {
					return nil, nil, err
				}
				hash.Name = field.Name
				field = hash
			}
		} else {
			data.Fields = append(data.Fields, field)
			data.dynamic = data.dynamic || field.dynamic
			data.headSize += field.headSize
			canonData = append(canonData, field.canonical)
		}
		logs.Fields = append(logs.Fields, field)
		logs.headSize += field.headSize
		logs.dynamic = logs.dynamic || field.dynamic
		canonLogs = append(canonLogs, field.canonical)
	}
	finishStruct(logs, canonLogs)
	finishStruct(data, canonData)
	return logs, data, nil
}

func finishStruct(t *Template, canon []string) {
	if t.dynamic {
		t.headSize = 32
	}
	t.canonical = "(" + strings.Join(canon, ",") + ")"
}

// LogTemplate returns the shape UnpackEvent produces for an event.
func (def *Definition) LogTemplate() *Template {
	return def.logs
}

// UnpackEvent decodes an event log into a struct over all of the event's
// inputs in declaration order. Non-indexed inputs are decoded from data with
// codec; indexed value types are decoded from their topic word and indexed
// reference types are returned as the bytes32 hash held in the topic. For
// non-anonymous events the first topic must be the event ID.
// UnpackEvent 将事件日志解码为包含全部输入参数的结构体。
func UnpackEvent(def *Definition, topics [][]byte, data []byte, codec WireCodec) (*Object, error) {
	if def.Type != Event {
		return nil, fmt.Errorf("abi: %s is not an event", def.Name)
	}
	if codec == nil {
		codec = ABICodec{}
	}
	if !def.Anonymous {
		if len(topics) == 0 {
			return nil, errors.New("abi: missing event signature topic")
		}
		if !bytes.Equal(topics[0], def.ID) {
			return nil, fmt.Errorf("abi: topic %#x does not match event %s", topics[0], def.Sig)
		}
		topics = topics[1:]
	}
	indexed := def.Inputs.Indexed()
	if len(indexed) != len(topics) {
		return nil, fmt.Errorf("abi: topic/field count mismatch: have %d topics, want %d", len(topics), len(indexed))
	}
	values, err := codec.Decode(def.data, data)
	if err != nil {
		return nil, err
	}
	out := &Object{Name: def.logs.Name, tmpl: def.logs, fields: make([]*Object, len(def.logs.Fields))}
	var nextTopic, nextValue int
	for i, field := range def.logs.Fields {
		if !def.Inputs[i].Indexed {
			out.fields[i] = values.fields[nextValue]
			nextValue++
			continue
		}
		topic := topics[nextTopic]
		nextTopic++
		if len(topic) != 32 {
			return nil, atField(fmt.Errorf("%w: topic of %d bytes", ErrTruncated, len(topic)), field.Name)
		}
		v, err := unpackElement(field, topic, 0)
		if err != nil {
			return nil, atField(err, field.Name)
		}
		out.fields[i] = v
	}
	return out, nil
}

// EncodeTopic returns the topic word of an indexed value. Value types are
// stored as their 32 byte word, strings and bytes as the hash of their
// content.
// EncodeTopic 返回索引参数对应的主题字。
func EncodeTopic(o *Object, hasher crypto.Hasher) ([]byte, error) {
	if hasher == nil {
		hasher = crypto.Keccak256Hasher
	}
	t := o.tmpl
	if t.Kind != ValueKind {
		return nil, fmt.Errorf("abi: unsupported indexed type: %s", t.canonical)
	}
	switch t.Type {
	case StringTy:
		return hasher.Hash([]byte(o.strVal)), nil
	case BytesTy:
		return hasher.Hash(o.bytesVal), nil
	}
	return packElement(o)
}

// MakeTopics builds the topic list of an event log from the values of its
// indexed inputs, in declaration order. Non-anonymous events get the event
// ID as their first topic.
func MakeTopics(def *Definition, values ...any) ([][]byte, error) {
	if def.Type != Event {
		return nil, fmt.Errorf("abi: %s is not an event", def.Name)
	}
	var topics [][]byte
	if !def.Anonymous {
		topics = append(topics, def.Selector())
	}
	var indexed []*Template
	for i, field := range def.inputs.Fields {
		if def.Inputs[i].Indexed {
			indexed = append(indexed, field)
		}
	}
	if len(values) != len(indexed) {
		return nil, fmt.Errorf("%w: %d indexed inputs, have %d values", ErrLengthMismatch, len(indexed), len(values))
	}
	for i, field := range indexed {
		o := field.Instantiate()
		if err := o.Assign(values[i]); err != nil {
			return nil, atField(err, field.Name)
		}
		topic, err := EncodeTopic(o, def.hasher)
		if err != nil {
			return nil, atField(err, field.Name)
		}
		topics = append(topics, topic)
	}
	return topics, nil
}
