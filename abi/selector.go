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
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sunyihoo/abicodec/crypto"
	"github.com/sunyihoo/abicodec/log"
)

const selectorCacheSize = 4096

// selectorCache memoises full signature digests per hash algorithm.
var selectorCache, _ = lru.New[string, []byte](selectorCacheSize)

// ComputeSelector hashes the canonical signature with hasher and returns the
// first size bytes. The result depends on nothing but the signature text and
// the hash algorithm.
// ComputeSelector 对规范签名做哈希并返回前 size 个字节。
func ComputeSelector(sig string, hasher crypto.Hasher, size int) []byte {
	if hasher == nil {
		hasher = crypto.Keccak256Hasher
	}
	key := hasher.Name() + "/" + sig
	digest, ok := selectorCache.Get(key)
	if !ok {
		digest = hasher.Hash([]byte(sig))
		selectorCache.Add(key, digest)
		log.Trace("Computed selector", "sig", sig, "hash", hasher.Name(), "digest", digest)
	}
	if size > len(digest) {
		size = len(digest)
	}
	return append([]byte(nil), digest[:size]...)
}

// MethodID returns the 4 byte function selector of sig.
func MethodID(sig string, hasher crypto.Hasher) []byte {
	return ComputeSelector(sig, hasher, MethodIDLength)
}

// EventID returns the 32 byte event topic of sig.
func EventID(sig string, hasher crypto.Hasher) []byte {
	return ComputeSelector(sig, hasher, EventIDLength)
}
