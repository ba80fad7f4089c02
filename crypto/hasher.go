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

package crypto

import (
	"fmt"
	"strings"
)

// Hasher is the pluggable hash function used to derive method selectors and
// event topics from canonical signatures.
// Hasher 是可插拔的哈希函数，用于从规范签名派生方法选择器和事件主题。
type Hasher interface {
	// Name returns the identifier of the hash, e.g. "keccak256".
	Name() string
	// Hash returns the 32 byte digest of the concatenated input.
	Hash(data ...[]byte) []byte
}

type hasherFunc struct {
	name string
	fn   func(...[]byte) []byte
}

func (h hasherFunc) Name() string                { return h.name }
func (h hasherFunc) Hash(data ...[]byte) []byte { return h.fn(data...) }
func (h hasherFunc) String() string              { return h.name }

var (
	// Keccak256Hasher is the hasher used by the Ethereum-style virtual machine.
	Keccak256Hasher Hasher = hasherFunc{"keccak256", Keccak256}

	// SM3Hasher is the hasher used by chains running on national cryptography.
	SM3Hasher Hasher = hasherFunc{"sm3", SM3}
)

// HasherByName returns the hasher registered under the given name. The lookup
// is case insensitive; "keccak" and "sha3" are accepted as aliases.
// HasherByName 根据名称返回对应的哈希器，名称不区分大小写。
func HasherByName(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "keccak256", "keccak", "sha3":
		return Keccak256Hasher, nil
	case "sm3", "gm", "guomi":
		return SM3Hasher, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", name)
	}
}
