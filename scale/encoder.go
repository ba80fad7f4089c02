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
	"errors"
	"math/big"
	"sync"
)

var (
	// ErrEOF is returned when a read needs more bytes than remain in the input.
	ErrEOF = errors.New("scale: unexpected end of input")

	// ErrCompactTooLarge is returned for compact integers needing more than 67 bytes.
	ErrCompactTooLarge = errors.New("scale: compact integer too large")

	// ErrNegative is returned when a negative value is written in compact form.
	ErrNegative = errors.New("scale: negative compact integer")

	// ErrOverflow is returned when a value does not fit the requested width.
	ErrOverflow = errors.New("scale: value overflows width")
)

const (
	singleByteLimit = 1 << 6
	twoByteLimit    = 1 << 14
	fourByteLimit   = 1 << 30
	maxBigModeBytes = 67
)

var (
	big1 = big.NewInt(1)
)

// Encoder accumulates SCALE encoded output.
type Encoder struct {
	buf     []byte
	sizebuf [8]byte // auxiliary buffer for fixed width integers
}

var encoderPool = sync.Pool{
	New: func() interface{} { return new(Encoder) },
}

// GetEncoder returns an empty encoder from the pool. Callers hand it back with
// PutEncoder once the output has been copied out.
func GetEncoder() *Encoder {
	enc := encoderPool.Get().(*Encoder)
	enc.Reset()
	return enc
}

// PutEncoder returns enc to the pool.
func PutEncoder(enc *Encoder) {
	encoderPool.Put(enc)
}

// Reset truncates the output.
func (enc *Encoder) Reset() {
	enc.buf = enc.buf[:0]
}

// Len returns the number of bytes written so far.
func (enc *Encoder) Len() int {
	return len(enc.buf)
}

// Bytes returns a copy of the output.
func (enc *Encoder) Bytes() []byte {
	out := make([]byte, len(enc.buf))
	copy(out, enc.buf)
	return out
}

// Write implements io.Writer and appends b unchanged.
func (enc *Encoder) Write(b []byte) (int, error) {
	enc.buf = append(enc.buf, b...)
	return len(b), nil
}

// WriteByte appends a single byte.
func (enc *Encoder) WriteByte(b byte) error {
	enc.buf = append(enc.buf, b)
	return nil
}

// WriteBool writes 0x01 for true and 0x00 for false.
func (enc *Encoder) WriteBool(v bool) {
	if v {
		enc.buf = append(enc.buf, 1)
	} else {
		enc.buf = append(enc.buf, 0)
	}
}

// WriteUint writes the low width bytes of v little-endian. width is at most 8.
func (enc *Encoder) WriteUint(v uint64, width int) {
	for i := 0; i < width; i++ {
		enc.sizebuf[i] = byte(v >> (8 * i))
	}
	enc.buf = append(enc.buf, enc.sizebuf[:width]...)
}

// WriteInt writes v as a width byte little-endian two's complement integer.
// Negative values are only accepted when signed is set.
func (enc *Encoder) WriteInt(v *big.Int, width int, signed bool) error {
	le, err := toLittleEndian(v, width, signed)
	if err != nil {
		return err
	}
	enc.buf = append(enc.buf, le...)
	return nil
}

// WriteCompactUint writes v in compact form.
func (enc *Encoder) WriteCompactUint(v uint64) {
	switch {
	case v < singleByteLimit:
		enc.buf = append(enc.buf, byte(v<<2))
	case v < twoByteLimit:
		enc.WriteUint(v<<2|0b01, 2)
	case v < fourByteLimit:
		enc.WriteUint(v<<2|0b10, 4)
	default:
		n := 0
		for x := v; x > 0; x >>= 8 {
			n++
		}
		if n < 4 {
			n = 4
		}
		enc.buf = append(enc.buf, byte((n-4)<<2|0b11))
		enc.WriteUint(v, n)
	}
}

// WriteCompact writes a non-negative big integer in compact form.
func (enc *Encoder) WriteCompact(v *big.Int) error {
	if v.Sign() < 0 {
		return ErrNegative
	}
	if v.IsUint64() {
		enc.WriteCompactUint(v.Uint64())
		return nil
	}
	be := v.Bytes()
	n := len(be)
	if n > maxBigModeBytes {
		return ErrCompactTooLarge
	}
	enc.buf = append(enc.buf, byte((n-4)<<2|0b11))
	for i := n - 1; i >= 0; i-- {
		enc.buf = append(enc.buf, be[i])
	}
	return nil
}

// WriteBytes writes the compact length of b followed by b.
func (enc *Encoder) WriteBytes(b []byte) {
	enc.WriteCompactUint(uint64(len(b)))
	enc.buf = append(enc.buf, b...)
}

// toLittleEndian renders v as width bytes, two's complement for negatives.
func toLittleEndian(v *big.Int, width int, signed bool) ([]byte, error) {
	bits := uint(width * 8)
	if signed {
		limit := new(big.Int).Lsh(big1, bits-1)
		if v.Cmp(limit) >= 0 || v.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, ErrOverflow
		}
	} else if v.Sign() < 0 || v.BitLen() > int(bits) {
		return nil, ErrOverflow
	}
	x := v
	if v.Sign() < 0 {
		x = new(big.Int).Add(v, new(big.Int).Lsh(big1, bits))
	}
	be := x.Bytes()
	out := make([]byte, width)
	for i := 0; i < len(be); i++ {
		out[i] = be[len(be)-1-i]
	}
	return out, nil
}
