package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadding(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 1, 2}, LeftPadBytes([]byte{1, 2}, 4))
	assert.Equal(t, []byte{1, 2, 0, 0}, RightPadBytes([]byte{1, 2}, 4))
	assert.Equal(t, []byte{1, 2, 3}, LeftPadBytes([]byte{1, 2, 3}, 2), "no truncation")
	assert.Equal(t, 0, Align32(0))
	assert.Equal(t, 32, Align32(1))
	assert.Equal(t, 64, Align32(33))
}

func TestAddress(t *testing.T) {
	addr, err := ParseAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	assert.NoError(t, err)
	assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", addr.Hex())

	_, err = ParseAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae")
	assert.Error(t, err, "39 characters")
	_, err = ParseAddress("0xg5aeb6053f3e94c9b9a09f33669435e7ef1beaed")
	assert.Error(t, err, "non hex character")

	long := BytesToAddress(make([]byte, 32))
	assert.Equal(t, Address{}, long)
}

func TestHash(t *testing.T) {
	h := BytesToHash([]byte{1})
	assert.Equal(t, byte(1), h[HashLength-1])
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", h.Hex())
}
