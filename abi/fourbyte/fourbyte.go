// Copyright 2019 The go-ethereum Authors
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

// Package fourbyte contains a selector database: a mapping from 4 byte
// function selectors to the canonical signatures that hash to them. It lets
// call data be decoded without the ABI of the called contract.
package fourbyte

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sunyihoo/abicodec/abi"
	"github.com/sunyihoo/abicodec/crypto"
	"github.com/sunyihoo/abicodec/log"
)

var (
	// ErrUnknownSelector is returned when no signature is known for a selector.
	ErrUnknownSelector = errors.New("fourbyte: unknown selector")

	// ErrStuffedData is returned when call data decodes under a signature but
	// does not re-encode to the same bytes.
	ErrStuffedData = errors.New("fourbyte: call data is stuffed with extra data")
)

// Database maps selectors to signatures. Several signatures may share one
// selector; all of them are kept in insertion order.
//
// Database 将选择器映射到签名，同一选择器可对应多个签名。
type Database struct {
	hasher crypto.Hasher
	mu     sync.RWMutex
	sigs   map[string][]string // hex selector without 0x -> canonical signatures
}

// New creates an empty database whose selectors are computed with hasher.
// A nil hasher selects Keccak-256.
func New(hasher crypto.Hasher) *Database {
	if hasher == nil {
		hasher = crypto.Keccak256Hasher
	}
	return &Database{hasher: hasher, sigs: make(map[string][]string)}
}

// NewFromFile loads a database from a JSON object of the form
// {"a9059cbb": "transfer(address,uint256)"}. Keys are taken as given and are
// not checked against the hash of their signature.
//
// NewFromFile 从 JSON 文件加载签名数据库，不校验键与签名哈希是否一致。
func NewFromFile(path string, hasher crypto.Hasher) (*Database, error) {
	raw, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	var entries map[string]string
	if err := json.NewDecoder(raw).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	db := New(hasher)
	for key, sig := range entries {
		key = strings.ToLower(strings.TrimPrefix(key, "0x"))
		if len(key) != 2*abi.MethodIDLength {
			return nil, fmt.Errorf("%s: invalid selector %q", path, key)
		}
		db.sigs[key] = append(db.sigs[key], sig)
	}
	log.Debug("Loaded selector database", "file", path, "entries", len(entries))
	return db, nil
}

// Size returns the number of known signatures.
func (db *Database) Size() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	n := 0
	for _, sigs := range db.sigs {
		n += len(sigs)
	}
	return n
}

// AddSignature canonicalises a text signature and registers it under its
// selector. Known signatures are skipped.
func (db *Database) AddSignature(sig string) error {
	def, err := abi.NewDefinitionFromSignature(sig, db.hasher)
	if err != nil {
		return err
	}
	db.add(def.ID, def.Sig)
	return nil
}

// AddABI registers every function of a contract ABI.
func (db *Database) AddABI(contractABI *abi.ContractABI) {
	for _, def := range contractABI.Definitions() {
		if def.Type == abi.Function {
			db.add(def.ID, def.Sig)
		}
	}
}

func (db *Database) add(id []byte, sig string) {
	db.mu.Lock()
	defer db.mu.Unlock()

	key := hex.EncodeToString(id[:abi.MethodIDLength])
	for _, known := range db.sigs[key] {
		if known == sig {
			return
		}
	}
	db.sigs[key] = append(db.sigs[key], sig)
}

// Selector returns the signatures known for the leading 4 bytes of id.
//
// This method does not validate the match, it's assumed the caller will do.
func (db *Database) Selector(id []byte) ([]string, error) {
	if len(id) < abi.MethodIDLength {
		return nil, fmt.Errorf("expected 4-byte id, got %d", len(id))
	}
	key := hex.EncodeToString(id[:abi.MethodIDLength])

	db.mu.RLock()
	defer db.mu.RUnlock()
	sigs, ok := db.sigs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSelector, key)
	}
	return append([]string(nil), sigs...), nil
}

// Signatures returns all known signatures in sorted order.
func (db *Database) Signatures() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var out []string
	for _, sigs := range db.sigs {
		out = append(out, sigs...)
	}
	sort.Strings(out)
	return out
}

// DecodeCallData decodes call data against every signature known for its
// selector and returns the first that matches. A candidate matches when the
// arguments decode with wire and encode back to exactly the same bytes.
//
// DecodeCallData 依次尝试选择器对应的签名解码调用数据，并通过重新编码检查数据是否被填充。
func (db *Database) DecodeCallData(calldata []byte, wire abi.WireCodec) (*abi.Definition, *abi.Object, error) {
	if len(calldata) < abi.MethodIDLength {
		return nil, nil, fmt.Errorf("%w: call data of %d bytes", abi.ErrTruncated, len(calldata))
	}
	if wire == nil {
		wire = abi.ABICodec{}
	}
	sigs, err := db.Selector(calldata)
	if err != nil {
		return nil, nil, err
	}
	argdata := calldata[abi.MethodIDLength:]

	var firstErr error
	for _, sig := range sigs {
		def, values, err := verify(sig, argdata, db.hasher, wire)
		if err == nil {
			return def, values, nil
		}
		log.Trace("Signature does not match call data", "sig", sig, "err", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, nil, firstErr
}

func verify(sig string, argdata []byte, hasher crypto.Hasher, wire abi.WireCodec) (*abi.Definition, *abi.Object, error) {
	def, err := abi.NewDefinitionFromSignature(sig, hasher)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid signature %q: %w", sig, err)
	}
	values, err := wire.Decode(def.InputsTemplate(), argdata)
	if err != nil {
		return nil, nil, fmt.Errorf("signature %q matches, but arguments mismatch: %w", def.Sig, err)
	}
	// Decoding alone does not detect data appended to or hidden between the
	// arguments.
	encoded, err := wire.Encode(values)
	if err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(encoded, argdata) {
		return nil, nil, fmt.Errorf("%w: %d bytes for %s, canonical encoding has %d", ErrStuffedData, len(argdata), def.Sig, len(encoded))
	}
	return def, values, nil
}
