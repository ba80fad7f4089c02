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

// Package abi implements a contract ABI (Application Binary Interface)
// codec with two wire formats.
//
// A JSON ABI description is parsed into a ContractABI holding one Definition
// per function, event or error, each with its canonical signature and
// selector. A Definition yields Templates, the immutable shapes of its
// parameter lists. A Template is instantiated into a tree of Objects which is
// filled by assignment or by the jsoncodec package and then serialised by
// either codec:
//
//   - Pack / Unpack use the 32 byte word layout with head/tail offsets of the
//     Ethereum-style virtual machine.
//   - PackScale / UnpackScale use the compact, length-prefixed SCALE layout of
//     the WASM virtual machine.
//
// Fixed point types parse into templates but both codecs reject them with
// ErrUnsupportedFixedPoint.
// abi 包实现了支持两种线路格式的合约 ABI 编解码器。
package abi
