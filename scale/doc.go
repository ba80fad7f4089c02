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

/*
Package scale implements the byte level primitives of the SCALE wire format: fixed
width little-endian integers, raw byte runs and the compact variable-length integer
used for length and count prefixes.

Compact integers

The two least significant bits of the first byte select the mode.

	0b00  single byte   values below 2^6,  value in the upper six bits
	0b01  two bytes     values below 2^14, little-endian
	0b10  four bytes    values below 2^30, little-endian
	0b11  big integer   upper six bits hold n-4, followed by n little-endian bytes

The big integer mode always uses the minimal n, which is at least 4 and at most 67.

There is no padding or alignment anywhere in the format. A Reader consumes its
input strictly from front to back.
*/
package scale
