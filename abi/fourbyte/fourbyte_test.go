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

package fourbyte

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/abi"
	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/sunyihoo/abicodec/crypto"
)

const transferCall = "0xa9059cbb" +
	"00000000000000000000000000000000000000000000000000000000000000ff" +
	"000000000000000000000000000000000000000000000000000000000000000a"

func TestAddSignature(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.AddSignature("transfer(address,uint)"))
	require.NoError(t, db.AddSignature("transfer(address,uint256)"))
	assert.Equal(t, 1, db.Size())

	sigs, err := db.Selector(hexutil.MustDecode("0xa9059cbb"))
	require.NoError(t, err)
	assert.Equal(t, []string{"transfer(address,uint256)"}, sigs)

	_, err = db.Selector(hexutil.MustDecode("0x01020304"))
	assert.ErrorIs(t, err, ErrUnknownSelector)
	_, err = db.Selector([]byte{1})
	assert.Error(t, err)

	assert.Error(t, db.AddSignature("transfer(address,uint7)"))
}

func TestDecodeCallData(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.AddSignature("transfer(address,uint256)"))

	def, values, err := db.DecodeCallData(hexutil.MustDecode(transferCall), nil)
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", def.Sig)
	assert.Equal(t, int64(10), values.Fields()[1].Int().Int64())

	// Trailing garbage decodes but does not re-encode identically.
	_, _, err = db.DecodeCallData(hexutil.MustDecode(transferCall+"ff"), abi.ABICodec{})
	assert.ErrorIs(t, err, ErrStuffedData)

	_, _, err = db.DecodeCallData([]byte{0xa9}, nil)
	assert.ErrorIs(t, err, abi.ErrTruncated)
}

func TestDecodeCallDataCollision(t *testing.T) {
	data := hexutil.MustDecode(transferCall)
	db := New(nil)
	// A bogus entry under the same selector is skipped in favour of the one
	// that decodes.
	db.add(data[:4], "transfer(string)")
	require.NoError(t, db.AddSignature("transfer(address,uint256)"))
	assert.Equal(t, 2, db.Size())

	def, _, err := db.DecodeCallData(data, nil)
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", def.Sig)
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "4byte.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"0xa9059cbb":"transfer(address,uint256)","70a08231":"balanceOf(address)"}`), 0600))

	db, err := NewFromFile(path, crypto.Keccak256Hasher)
	require.NoError(t, err)
	assert.Equal(t, []string{"balanceOf(address)", "transfer(address,uint256)"}, db.Signatures())

	require.NoError(t, os.WriteFile(path, []byte(`{"a9059c":"transfer(address,uint256)"}`), 0600))
	_, err = NewFromFile(path, nil)
	assert.ErrorContains(t, err, "invalid selector")

	_, err = NewFromFile(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestAddABI(t *testing.T) {
	contractABI, err := abi.LoadContractABI(`[
		{"type":"function","name":"balanceOf","inputs":[{"name":"owner","type":"address"}]},
		{"type":"event","name":"Approval","inputs":[]}
	]`, nil)
	require.NoError(t, err)

	db := New(crypto.SM3Hasher)
	db.AddABI(contractABI)
	assert.Equal(t, []string{"balanceOf(address)"}, db.Signatures())
}
