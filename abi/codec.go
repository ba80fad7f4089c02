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
	"fmt"
	"strings"
)

// WireCodec serialises typed value trees to and from one wire format.
// WireCodec 在值树与某种线路格式之间进行序列化。
type WireCodec interface {
	// Name returns the identifier of the wire format.
	Name() string
	// Encode serialises the tree rooted at o.
	Encode(o *Object) ([]byte, error)
	// Decode parses a tree of shape t from data.
	Decode(t *Template, data []byte) (*Object, error)
}

// ABICodec is the 32-byte word, head/tail layout of the Ethereum-style VM.
type ABICodec struct{}

func (ABICodec) Name() string                                     { return "abi" }
func (ABICodec) Encode(o *Object) ([]byte, error)                 { return Pack(o) }
func (ABICodec) Decode(t *Template, data []byte) (*Object, error) { return Unpack(t, data, 0) }

// ScaleCodec is the compact, length-prefixed layout of the WASM VM.
type ScaleCodec struct{}

func (ScaleCodec) Name() string                                     { return "scale" }
func (ScaleCodec) Encode(o *Object) ([]byte, error)                 { return PackScale(o) }
func (ScaleCodec) Decode(t *Template, data []byte) (*Object, error) { return UnpackScale(t, data) }

// CodecByName returns the codec registered under name. "evm" and "wasm" are
// accepted as aliases of "abi" and "scale".
func CodecByName(name string) (WireCodec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "abi", "evm":
		return ABICodec{}, nil
	case "scale", "wasm":
		return ScaleCodec{}, nil
	}
	return nil, fmt.Errorf("unknown wire codec %q", name)
}
