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
	"fmt"
	"strings"

	"github.com/sunyihoo/abicodec/crypto"
)

// DefinitionType indicates the kind of an ABI entry.
// DefinitionType 表示 ABI 条目的种类。
type DefinitionType int

const (
	Function DefinitionType = iota
	Constructor
	Fallback
	Receive
	Event
	ErrorDef
)

// String returns the JSON ABI spelling of the type.
func (t DefinitionType) String() string {
	switch t {
	case Function:
		return "function"
	case Constructor:
		return "constructor"
	case Fallback:
		return "fallback"
	case Receive:
		return "receive"
	case Event:
		return "event"
	case ErrorDef:
		return "error"
	}
	return fmt.Sprintf("DefinitionType(%d)", int(t))
}

// ParseDefinitionType resolves the "type" field of a JSON ABI entry. An empty
// type means function.
func ParseDefinitionType(s string) (DefinitionType, error) {
	switch s {
	case "function", "":
		return Function, nil
	case "constructor":
		return Constructor, nil
	case "fallback":
		return Fallback, nil
	case "receive":
		return Receive, nil
	case "event":
		return Event, nil
	case "error":
		return ErrorDef, nil
	}
	return 0, fmt.Errorf("abi: could not recognize type %q", s)
}

// Selector sizes.
const (
	MethodIDLength = 4
	EventIDLength  = 32
)

// Definition describes one entry of a contract ABI: a function, constructor,
// fallback, receive, event or error. The canonical signature, selector and
// parameter templates are computed once at construction and never change.
// Definition 描述合约 ABI 中的一个条目，构造时即计算好规范签名、选择器和参数模板。
type Definition struct {
	Name            string
	Type            DefinitionType
	Inputs          Arguments
	Outputs         Arguments
	StateMutability string

	// Legacy indicators, removed from the ABI format in solidity v0.6.0.
	Constant bool
	Payable  bool

	// Anonymous events don't get the signature hash as their first topic.
	Anonymous bool

	// Sig is the canonical signature, e.g. transfer(address,uint256). Note
	// "uint" is replaced by its canonical "uint256". Empty for constructor,
	// fallback and receive.
	Sig string

	// ID is the selector: the first 4 bytes of the signature hash for
	// functions and errors, the full 32 byte hash for events.
	ID []byte

	str     string
	inputs  *Template
	outputs *Template
	logs    *Template // events: all inputs, indexed reference types as bytes32
	data    *Template // events: non-indexed inputs
	hasher  crypto.Hasher
}

// NewDefinition creates a definition and precomputes its signature, selector
// and templates. A nil hasher selects Keccak-256.
// NewDefinition 创建一个条目定义，并预计算签名、选择器和参数模板。
func NewDefinition(name string, typ DefinitionType, mutability string, isConst, isPayable, anonymous bool, inputs, outputs Arguments, hasher crypto.Hasher) (*Definition, error) {
	if hasher == nil {
		hasher = crypto.Keccak256Hasher
	}
	def := &Definition{
		Name:            name,
		Type:            typ,
		Inputs:          inputs,
		Outputs:         outputs,
		StateMutability: mutability,
		Constant:        isConst,
		Payable:         isPayable,
		Anonymous:       anonymous,
		hasher:          hasher,
	}
	if def.StateMutability == "" {
		switch {
		case isConst:
			def.StateMutability = "view"
		case isPayable:
			def.StateMutability = "payable"
		default:
			def.StateMutability = "nonpayable"
		}
	}
	var err error
	if def.inputs, err = NewArgumentsTemplate(inputs); err != nil {
		return nil, fmt.Errorf("%s %s inputs: %w", typ, name, err)
	}
	if def.outputs, err = NewArgumentsTemplate(outputs); err != nil {
		return nil, fmt.Errorf("%s %s outputs: %w", typ, name, err)
	}
	switch typ {
	case Function, ErrorDef:
		def.Sig = fmt.Sprintf("%v(%v)", name, strings.Join(inputs.CanonicalTypes(), ","))
		def.ID = ComputeSelector(def.Sig, hasher, MethodIDLength)
	case Event:
		def.Sig = fmt.Sprintf("%v(%v)", name, strings.Join(inputs.CanonicalTypes(), ","))
		def.ID = ComputeSelector(def.Sig, hasher, EventIDLength)
		if def.logs, def.data, err = eventTemplates(def.inputs, inputs); err != nil {
			return nil, err
		}
	}
	def.str = def.render()
	return def, nil
}

func (def *Definition) render() string {
	names := fieldNames(def.Inputs)
	params := make([]string, len(def.Inputs))
	for i, input := range def.Inputs {
		params[i] = input.CanonicalType()
		if input.Indexed {
			params[i] += " indexed"
		}
		params[i] += " " + names[i]
	}
	switch def.Type {
	case Event:
		s := fmt.Sprintf("event %v(%v)", def.Name, strings.Join(params, ", "))
		if def.Anonymous {
			s += " anonymous"
		}
		return s
	case ErrorDef:
		return fmt.Sprintf("error %v(%v)", def.Name, strings.Join(params, ", "))
	case Fallback, Receive:
		return fmt.Sprintf("%v() %v", def.Type, def.StateMutability)
	case Constructor:
		return fmt.Sprintf("constructor(%v) %v", strings.Join(params, ", "), def.StateMutability)
	}
	outputs := make([]string, len(def.Outputs))
	for i, output := range def.Outputs {
		outputs[i] = output.CanonicalType()
		if output.Name != "" {
			outputs[i] += " " + output.Name
		}
	}
	mut := def.StateMutability
	if mut == "nonpayable" {
		mut = ""
	} else {
		mut += " "
	}
	return fmt.Sprintf("function %v(%v) %sreturns(%v)", def.Name, strings.Join(params, ", "), mut, strings.Join(outputs, ", "))
}

// String returns the human readable form, e.g.
//
//	function balanceOf(address owner) view returns(uint256)
func (def *Definition) String() string {
	return def.str
}

// Signature returns the canonical signature used to derive the selector.
func (def *Definition) Signature() string {
	return def.Sig
}

// Selector returns a copy of the selector bytes.
func (def *Definition) Selector() []byte {
	return append([]byte(nil), def.ID...)
}

// Hasher returns the hash the selector was computed with.
func (def *Definition) Hasher() crypto.Hasher {
	return def.hasher
}

// InputsTemplate returns the struct template of the inputs.
func (def *Definition) InputsTemplate() *Template {
	return def.inputs
}

// OutputsTemplate returns the struct template of the outputs.
func (def *Definition) OutputsTemplate() *Template {
	return def.outputs
}

// NewInputs instantiates an empty input tree.
func (def *Definition) NewInputs() *Object {
	return def.inputs.Instantiate()
}

// NewOutputs instantiates an empty output tree.
func (def *Definition) NewOutputs() *Object {
	return def.outputs.Instantiate()
}

// IsConstant reports whether the function is read-only.
func (def *Definition) IsConstant() bool {
	return def.StateMutability == "view" || def.StateMutability == "pure" || def.Constant
}

// IsPayable reports whether the function accepts value transfers.
func (def *Definition) IsPayable() bool {
	return def.StateMutability == "payable" || def.Payable
}

// MatchesSelector reports whether data starts with this definition's selector.
func (def *Definition) MatchesSelector(data []byte) bool {
	return len(def.ID) > 0 && len(data) >= len(def.ID) && bytes.Equal(data[:len(def.ID)], def.ID)
}

// UnpackError decodes revert data of a custom error: selector followed by
// the word encoded inputs.
func (def *Definition) UnpackError(data []byte) (*Object, error) {
	if len(data) < MethodIDLength {
		return nil, fmt.Errorf("insufficient data for unpacking: have %d, want at least 4", len(data))
	}
	if !def.MatchesSelector(data) {
		return nil, fmt.Errorf("invalid identifier, have %#x want %#x", data[:MethodIDLength], def.ID)
	}
	return Unpack(def.inputs, data, MethodIDLength)
}
