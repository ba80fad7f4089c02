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

// Package contract assembles and takes apart contract call data: selector
// followed by the encoded arguments, constructor arguments appended to the
// deployment bytecode, method outputs and event logs.
package contract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sunyihoo/abicodec/abi"
	"github.com/sunyihoo/abicodec/abi/jsoncodec"
	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/sunyihoo/abicodec/crypto"
	"github.com/sunyihoo/abicodec/log"
)

// ErrNoMatch is returned when no definition matches a selector, name or topic.
var ErrNoMatch = errors.New("contract: no matching definition")

// Codec encodes and decodes contract interactions with one hash algorithm
// and one wire format. A Codec holds no per-call state and may be shared.
// Codec 使用固定的哈希算法和线路格式编解码合约交互数据，可并发共享。
type Codec struct {
	hasher crypto.Hasher
	wire   abi.WireCodec
}

// New creates a codec. Nil arguments select Keccak-256 and the word layout.
func New(hasher crypto.Hasher, wire abi.WireCodec) *Codec {
	if hasher == nil {
		hasher = crypto.Keccak256Hasher
	}
	if wire == nil {
		wire = abi.ABICodec{}
	}
	return &Codec{hasher: hasher, wire: wire}
}

// Hasher returns the selector hash of the codec.
func (c *Codec) Hasher() crypto.Hasher { return c.hasher }

// Wire returns the wire format of the codec.
func (c *Codec) Wire() abi.WireCodec { return c.wire }

// ParseABI parses a JSON ABI description with the codec's hasher.
func (c *Codec) ParseABI(abiJSON string) (*abi.ContractABI, error) {
	return abi.LoadContractABI(abiJSON, c.hasher)
}

// Decoded is the result of decoding call data, outputs or a log.
type Decoded struct {
	Definition *abi.Definition
	Values     *abi.Object
}

// Strings renders every decoded parameter as text, see jsoncodec.ToStrings.
func (d *Decoded) Strings() ([]string, error) {
	return jsoncodec.ToStrings(d.Values)
}

// JSON renders the decoded parameters as a JSON array.
func (d *Decoded) JSON() ([]byte, error) {
	return jsoncodec.Marshal(d.Values)
}

func (c *Codec) pack(def *abi.Definition, args *abi.Object) ([]byte, error) {
	enc, err := c.wire.Encode(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Sig, err)
	}
	return append(def.Selector(), enc...), nil
}

// EncodeConstructor returns the deployment data: bytecode followed by the
// encoded constructor arguments.
// EncodeConstructor 返回部署数据：字节码后接编码后的构造函数参数。
func (c *Codec) EncodeConstructor(contractABI *abi.ContractABI, bytecode []byte, params []string) ([]byte, error) {
	args, err := jsoncodec.EncodeStrings(contractABI.Constructor.InputsTemplate(), params)
	if err != nil {
		return nil, fmt.Errorf("constructor: %w", err)
	}
	enc, err := c.wire.Encode(args)
	if err != nil {
		return nil, fmt.Errorf("constructor: %w", err)
	}
	out := make([]byte, 0, len(bytecode)+len(enc))
	return append(append(out, bytecode...), enc...), nil
}

// EncodeMethod encodes a call of the named method. The overload is chosen
// by the number of parameters; each parameter is given as text.
// EncodeMethod 编码对指定方法的调用，按参数个数选择重载。
func (c *Codec) EncodeMethod(contractABI *abi.ContractABI, method string, params []string) ([]byte, error) {
	def, err := contractABI.Function(method, len(params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMatch, err)
	}
	return c.encodeStrings(def, params)
}

func (c *Codec) encodeStrings(def *abi.Definition, params []string) ([]byte, error) {
	args, err := jsoncodec.EncodeStrings(def.InputsTemplate(), params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Sig, err)
	}
	log.Debug("Encoding method call", "sig", def.Sig, "wire", c.wire.Name())
	return c.pack(def, args)
}

// EncodeMethodJSON encodes a call of the named method from a JSON array or
// object holding its arguments.
func (c *Codec) EncodeMethodJSON(contractABI *abi.ContractABI, method string, paramsJSON string) ([]byte, error) {
	defs := contractABI.FunctionsByName(method)
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: function '%s'", ErrNoMatch, method)
	}
	var firstErr error
	for _, def := range defs {
		args, err := jsoncodec.Encode(def.InputsTemplate(), paramsJSON)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", def.Sig, err)
			}
			continue
		}
		return c.pack(def, args)
	}
	return nil, firstErr
}

// EncodeMethodBySignature encodes a call from a text signature such as
// "transfer(address,uint256)". Tuple parameters must be spelled out as
// parenthesised component lists.
func (c *Codec) EncodeMethodBySignature(sig string, params []string) ([]byte, error) {
	def, err := abi.NewDefinitionFromSignature(sig, c.hasher)
	if err != nil {
		return nil, err
	}
	return c.encodeStrings(def, params)
}

// EncodeMethodByID encodes a call of the function registered under the
// given selector.
func (c *Codec) EncodeMethodByID(contractABI *abi.ContractABI, id []byte, params []string) ([]byte, error) {
	def := contractABI.FunctionBySelector(id)
	if def == nil {
		return nil, fmt.Errorf("%w: selector %s", ErrNoMatch, hexutil.Encode(id))
	}
	return c.encodeStrings(def, params)
}

// DecodeMethodInput resolves the function from the leading selector of
// input and decodes the arguments that follow it.
// DecodeMethodInput 根据输入数据的选择器找到函数并解码其参数。
func (c *Codec) DecodeMethodInput(contractABI *abi.ContractABI, input []byte) (*Decoded, error) {
	if len(input) < abi.MethodIDLength {
		return nil, fmt.Errorf("%w: call data of %d bytes", abi.ErrTruncated, len(input))
	}
	def := contractABI.FunctionBySelector(input)
	if def == nil {
		return nil, fmt.Errorf("%w: selector %s", ErrNoMatch, hexutil.Encode(input[:abi.MethodIDLength]))
	}
	values, err := c.wire.Decode(def.InputsTemplate(), input[abi.MethodIDLength:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Sig, err)
	}
	return &Decoded{Definition: def, Values: values}, nil
}

// DecodeMethodOutput decodes the return data of the named method. With
// several overloads, the first whose outputs decode is used.
func (c *Codec) DecodeMethodOutput(contractABI *abi.ContractABI, method string, output []byte) (*Decoded, error) {
	defs := contractABI.FunctionsByName(method)
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: function '%s'", ErrNoMatch, method)
	}
	var firstErr error
	for _, def := range defs {
		values, err := c.wire.Decode(def.OutputsTemplate(), output)
		if err == nil {
			return &Decoded{Definition: def, Values: values}, nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", def.Sig, err)
		}
	}
	return nil, firstErr
}

// DecodeEvent decodes a log. A non-empty name selects the event by name and
// number of topics; otherwise the event is found by the first topic.
// DecodeEvent 解码事件日志。
func (c *Codec) DecodeEvent(contractABI *abi.ContractABI, name string, topics [][]byte, data []byte) (*Decoded, error) {
	var candidates []*abi.Definition
	switch {
	case name != "":
		candidates = contractABI.EventsByName(name)
	case len(topics) > 0:
		if def := contractABI.EventByTopic(topics[0]); def != nil {
			candidates = append(candidates, def)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: event %q", ErrNoMatch, name)
	}
	var firstErr error
	for _, def := range candidates {
		if !def.Anonymous && (len(topics) == 0 || !bytes.Equal(topics[0], def.ID)) {
			continue
		}
		values, err := abi.UnpackEvent(def, topics, data, c.wire)
		if err == nil {
			return &Decoded{Definition: def, Values: values}, nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", def.Sig, err)
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("%w: no overload of %q matches the log topics", ErrNoMatch, name)
	}
	return nil, firstErr
}
