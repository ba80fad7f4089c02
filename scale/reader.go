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

package scale

import (
	"fmt"
	"math"
	"math/big"
)

// Reader is a sequential cursor over SCALE encoded input.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the number of bytes consumed.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadRaw consumes the next n bytes. The result aliases the input.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrEOF, n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadByte consumes a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, ErrEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBool consumes one byte which must be 0 or 1.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("scale: invalid bool byte 0x%02x", b)
	}
}

// ReadUint consumes a width byte little-endian unsigned integer. width is at most 8.
func (r *Reader) ReadUint(width int) (uint64, error) {
	b, err := r.ReadRaw(width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// ReadInt consumes a width byte little-endian integer, sign extending it when
// signed is set.
func (r *Reader) ReadInt(width int, signed bool) (*big.Int, error) {
	b, err := r.ReadRaw(width)
	if err != nil {
		return nil, err
	}
	be := make([]byte, width)
	for i := range b {
		be[width-1-i] = b[i]
	}
	v := new(big.Int).SetBytes(be)
	if signed && width > 0 && be[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big1, uint(width*8)))
	}
	return v, nil
}

// ReadCompact consumes a compact integer of any size.
func (r *Reader) ReadCompact() (*big.Int, error) {
	first, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch first & 0b11 {
	case 0b00:
		return big.NewInt(int64(first >> 2)), nil
	case 0b01:
		next, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return big.NewInt(int64(uint16(first)|uint16(next)<<8) >> 2), nil
	case 0b10:
		rest, err := r.ReadUint(3)
		if err != nil {
			return nil, err
		}
		v := uint64(first) | rest<<8
		return new(big.Int).SetUint64(v >> 2), nil
	default:
		n := int(first>>2) + 4
		return r.ReadInt(n, false)
	}
}

// ReadCompactUint consumes a compact integer that must fit in 64 bits.
func (r *Reader) ReadCompactUint() (uint64, error) {
	v, err := r.ReadCompact()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %v exceeds 64 bits", ErrOverflow, v)
	}
	return v.Uint64(), nil
}

// ReadLength consumes a compact length or count and checks that at least
// min*length bytes remain, so that corrupt prefixes fail before allocation.
func (r *Reader) ReadLength(min int) (int, error) {
	n, err := r.ReadCompactUint()
	if err != nil {
		return 0, err
	}
	if min > 0 && n > uint64(r.Remaining()/min) {
		return 0, fmt.Errorf("%w: length %d exceeds remaining input", ErrEOF, n)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: length %d", ErrOverflow, n)
	}
	return int(n), nil
}

// ReadBytes consumes a compact length followed by that many bytes.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadLength(1)
	if err != nil {
		return nil, err
	}
	b, err := r.ReadRaw(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}
