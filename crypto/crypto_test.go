// Copyright 2014 The go-ethereum Authors
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
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	assert.Equal(t, exp, Keccak256(msg))
	assert.Equal(t, exp, Keccak256Hash(msg).Bytes())
	assert.Equal(t, exp, Keccak256([]byte("a"), []byte("bc")), "variadic input is concatenated")
	assert.Equal(t, exp, HashData(NewKeccakState(), msg).Bytes())
}

func TestSM3(t *testing.T) {
	// GB/T 32905-2016 appendix A.1
	exp, _ := hex.DecodeString("66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0")
	assert.Equal(t, exp, SM3([]byte("abc")))
}

func TestHasherByName(t *testing.T) {
	for name, want := range map[string]string{
		"":          "keccak256",
		"Keccak256": "keccak256",
		"sha3":      "keccak256",
		"SM3":       "sm3",
	} {
		h, err := HasherByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, h.Name())
		assert.Len(t, h.Hash([]byte("x")), DigestLength)
	}
	_, err := HasherByName("md5")
	assert.Error(t, err)
}
