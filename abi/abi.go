// Copyright 2015 The go-ethereum Authors
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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/sunyihoo/abicodec/crypto"
	"github.com/sunyihoo/abicodec/log"
)

// The ContractABI holds every entry of a contract's interface and indexes
// functions and events both by name and by selector.
//
// Function overloads share a name and are kept in declaration order. When two
// entries hash to the same selector the last one registered wins the reverse
// index; all colliding selectors are reported by Collisions and every entry
// sharing a selector is available from CandidatesBySelector.
// ContractABI 保存合约接口的所有条目，并按名称和选择器建立索引。
type ContractABI struct {
	Constructor *Definition
	Fallback    *Definition
	Receive     *Definition
	Functions   map[string][]*Definition
	Events      map[string][]*Definition
	Errors      map[string]*Definition

	hasher     crypto.Hasher
	byMethodID map[string]*Definition
	byErrorID  map[string]*Definition
	byTopic    map[string]*Definition
	bySelector map[string][]*Definition
	collisions mapset.Set[string]
}

// NewContractABI creates an empty registry. A nil hasher selects Keccak-256.
func NewContractABI(hasher crypto.Hasher) *ContractABI {
	if hasher == nil {
		hasher = crypto.Keccak256Hasher
	}
	return &ContractABI{
		Functions:  make(map[string][]*Definition),
		Events:     make(map[string][]*Definition),
		Errors:     make(map[string]*Definition),
		hasher:     hasher,
		byMethodID: make(map[string]*Definition),
		byErrorID:  make(map[string]*Definition),
		byTopic:    make(map[string]*Definition),
		bySelector: make(map[string][]*Definition),
		collisions: mapset.NewSet[string](),
	}
}

// Hasher returns the hash the registry computes selectors with.
func (abi *ContractABI) Hasher() crypto.Hasher {
	return abi.hasher
}

// entry is the JSON form of one ABI element.
type entry struct {
	Type    string
	Name    string
	Inputs  Arguments
	Outputs Arguments

	// Status indicator which can be: "pure", "view",
	// "nonpayable" or "payable".
	StateMutability string

	// Deprecated Status indicators, but removed in v0.6.0.
	Constant bool // True if function is either pure or view
	Payable  bool // True if function is payable

	// Event relevant indicator represents the event is
	// declared as anonymous.
	Anonymous bool
}

// ParseContractABI reads a JSON ABI description. Malformed JSON, unknown
// entry types and invalid parameter types are returned as errors. A missing
// constructor is replaced by a non-payable one without parameters.
// ParseContractABI 读取 JSON 格式的 ABI 描述，解析失败时返回错误。
func ParseContractABI(r io.Reader, hasher crypto.Hasher) (*ContractABI, error) {
	var entries []entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("abi: invalid json: %w", err)
	}
	abi := NewContractABI(hasher)
	for _, field := range entries {
		typ, err := ParseDefinitionType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("%w of field %v", err, field.Name)
		}
		switch typ {
		case Fallback:
			if abi.Fallback != nil {
				return nil, errors.New("only single fallback is allowed")
			}
		case Receive:
			if abi.Receive != nil {
				return nil, errors.New("only single receive is allowed")
			}
			if field.StateMutability != "payable" {
				return nil, errors.New("the statemutability of receive can only be payable")
			}
		}
		def, err := NewDefinition(field.Name, typ, field.StateMutability, field.Constant, field.Payable, field.Anonymous, field.Inputs, field.Outputs, abi.hasher)
		if err != nil {
			return nil, err
		}
		abi.Add(def)
	}
	if abi.Constructor == nil {
		abi.Constructor, _ = NewDefinition("", Constructor, "nonpayable", false, false, false, nil, nil, abi.hasher)
	}
	log.Debug("Parsed contract ABI", "functions", len(abi.Functions), "events", len(abi.Events), "errors", len(abi.Errors), "hash", abi.hasher.Name())
	return abi, nil
}

// LoadContractABI parses a JSON ABI description held in a string.
func LoadContractABI(s string, hasher crypto.Hasher) (*ContractABI, error) {
	return ParseContractABI(strings.NewReader(s), hasher)
}

// Add registers a definition of any type.
func (abi *ContractABI) Add(def *Definition) {
	switch def.Type {
	case Function:
		abi.AddFunction(def)
	case Event:
		abi.AddEvent(def)
	case ErrorDef:
		// Errors cannot be overloaded or overridden but are inherited,
		// no need to resolve the name conflict here.
		abi.Errors[def.Name] = def
		abi.index(abi.byErrorID, def)
	case Constructor:
		abi.Constructor = def
	case Fallback:
		abi.Fallback = def
	case Receive:
		abi.Receive = def
	}
}

// AddFunction appends a function to its overload list and indexes its selector.
func (abi *ContractABI) AddFunction(def *Definition) {
	abi.Functions[def.Name] = append(abi.Functions[def.Name], def)
	abi.index(abi.byMethodID, def)
	log.Trace("Registered function", "sig", def.Sig, "selector", hexutil.Encode(def.ID))
}

// AddEvent appends an event to its overload list and indexes its topic.
func (abi *ContractABI) AddEvent(def *Definition) {
	abi.Events[def.Name] = append(abi.Events[def.Name], def)
	abi.index(abi.byTopic, def)
	log.Trace("Registered event", "sig", def.Sig, "topic", hexutil.Encode(def.ID))
}

func (abi *ContractABI) index(rev map[string]*Definition, def *Definition) {
	key := string(def.ID)
	if prev, ok := rev[key]; ok && prev.Sig != def.Sig {
		abi.collisions.Add(hexutil.Encode(def.ID))
		log.Warn("Selector collision, last registration wins", "selector", hexutil.Encode(def.ID), "old", prev.Sig, "new", def.Sig)
	}
	rev[key] = def
	abi.bySelector[key] = append(abi.bySelector[key], def)
}

// FunctionBySelector returns the function whose 4 byte selector starts data,
// or nil if there is none.
// FunctionBySelector 根据 4 字节选择器查找函数，未找到时返回 nil。
func (abi *ContractABI) FunctionBySelector(data []byte) *Definition {
	if len(data) < MethodIDLength {
		return nil
	}
	return abi.byMethodID[string(data[:MethodIDLength])]
}

// ErrorBySelector returns the custom error whose selector starts data, or nil.
func (abi *ContractABI) ErrorBySelector(data []byte) *Definition {
	if len(data) < MethodIDLength {
		return nil
	}
	return abi.byErrorID[string(data[:MethodIDLength])]
}

// EventByTopic returns the event whose 32 byte topic equals topic, or nil.
func (abi *ContractABI) EventByTopic(topic []byte) *Definition {
	return abi.byTopic[string(topic)]
}

// FunctionsByName returns every overload of the named function.
func (abi *ContractABI) FunctionsByName(name string) []*Definition {
	return abi.Functions[name]
}

// EventsByName returns every overload of the named event.
func (abi *ContractABI) EventsByName(name string) []*Definition {
	return abi.Events[name]
}

// Function returns the first overload of name taking argc inputs. A negative
// argc matches the first overload.
func (abi *ContractABI) Function(name string, argc int) (*Definition, error) {
	return pickOverload(abi.Functions[name], "function", name, argc)
}

// Event returns the first overload of the named event taking argc inputs.
func (abi *ContractABI) Event(name string, argc int) (*Definition, error) {
	return pickOverload(abi.Events[name], "event", name, argc)
}

func pickOverload(defs []*Definition, kind, name string, argc int) (*Definition, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("abi: %s '%s' not found", kind, name)
	}
	for _, def := range defs {
		if argc < 0 || len(def.Inputs) == argc {
			return def, nil
		}
	}
	return nil, fmt.Errorf("abi: no %s '%s' taking %d arguments", kind, name, argc)
}

// CandidatesBySelector returns every definition registered under the selector,
// in registration order.
func (abi *ContractABI) CandidatesBySelector(id []byte) []*Definition {
	return abi.bySelector[string(id)]
}

// Collisions returns the hex encoded selectors shared by different signatures.
func (abi *ContractABI) Collisions() []string {
	out := abi.collisions.ToSlice()
	sort.Strings(out)
	return out
}

// Definitions returns all functions followed by all events, each group
// ordered by signature.
func (abi *ContractABI) Definitions() []*Definition {
	var funcs, events []*Definition
	for _, defs := range abi.Functions {
		funcs = append(funcs, defs...)
	}
	for _, defs := range abi.Events {
		events = append(events, defs...)
	}
	bySig := func(s []*Definition) {
		sort.Slice(s, func(i, j int) bool { return s[i].Sig < s[j].Sig })
	}
	bySig(funcs)
	bySig(events)
	return append(funcs, events...)
}

// HasFallback returns an indicator whether a fallback function is included.
func (abi *ContractABI) HasFallback() bool {
	return abi.Fallback != nil
}

// HasReceive returns an indicator whether a receive function is included.
func (abi *ContractABI) HasReceive() bool {
	return abi.Receive != nil
}

var (
	// revertSelector is a special function selector for revert reason unpacking.
	revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

	// panicSelector is a special function selector for panic reason unpacking.
	panicSelector = crypto.Keccak256([]byte("Panic(uint256)"))[:4]

	revertTemplate, _ = NewArgumentsTemplate(Arguments{{Name: "reason", Type: "string"}})
	panicTemplate, _  = NewArgumentsTemplate(Arguments{{Name: "code", Type: "uint256"}})
)

// panicReasons map is for readable panic codes
// see this linkage for the details
// https://docs.soliditylang.org/en/v0.8.21/control-structures.html#panic-via-assert-and-error-via-require
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

// UnpackRevert resolves the abi-encoded revert reason. According to the solidity
// spec https://solidity.readthedocs.io/en/latest/control-structures.html#revert,
// the provided revert reason is abi-encoded as if it were a call to function
// `Error(string)` or `Panic(uint256)`.
// UnpackRevert 解析 ABI 编码的 revert 原因。
func UnpackRevert(data []byte) (string, error) {
	if len(data) < 4 {
		return "", errors.New("invalid data for unpacking")
	}
	switch {
	case bytes.Equal(data[:4], revertSelector):
		o, err := Unpack(revertTemplate, data, 4)
		if err != nil {
			return "", err
		}
		return o.FieldAt(0).Text(), nil
	case bytes.Equal(data[:4], panicSelector):
		o, err := Unpack(panicTemplate, data, 4)
		if err != nil {
			return "", err
		}
		pCode := o.FieldAt(0).Int()
		if pCode.IsUint64() {
			if reason, ok := panicReasons[pCode.Uint64()]; ok {
				return reason, nil
			}
		}
		return fmt.Sprintf("unknown panic code: %#x", pCode), nil
	default:
		return "", errors.New("invalid data for unpacking")
	}
}
