// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bitcode

import "math"

// Writer accumulates bits MSB-first into a growable byte buffer.
// The zero value is ready to use.
type Writer struct {
	bytes []byte
	nbits int // total bits written, including any partial final byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Position returns the number of bits written so far.
func (w *Writer) Position() int { return w.nbits }

// WriteBit appends a single bit (0 or nonzero treated as 1).
func (w *Writer) WriteBit(bit int) {
	byteIndex := w.nbits / 8
	if byteIndex == len(w.bytes) {
		w.bytes = append(w.bytes, 0)
	}
	if bit != 0 {
		shift := 7 - (w.nbits % 8)
		w.bytes[byteIndex] |= 1 << uint(shift)
	}
	w.nbits++
}

// WriteBool writes a single bit: 1 for true, 0 for false.
func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteBit(1)
	} else {
		w.WriteBit(0)
	}
}

// WriteBits writes the low n bits of value, most-significant bit
// first. n must be in [0, 64].
func (w *Writer) WriteBits(value uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(int((value >> uint(i)) & 1))
	}
}

// WriteBytes writes the raw bytes of data, 8 bits each, MSB first.
func (w *Writer) WriteBytes(data []byte) {
	for _, b := range data {
		w.WriteBits(uint64(b), 8)
	}
}

// writeEliasOmega encodes a positive integer n (n >= 1) as an Elias
// omega code: a sequence of binary groups, each one the bit length of
// the previous minus one, terminated by a single 0 bit.
func writeEliasOmega(w *Writer, n uint64) {
	if n == 1 {
		w.WriteBit(0)
		return
	}

	var groups [][2]uint64 // {value, bitlen}, innermost (computed first) last
	value := n
	for value > 1 {
		bitlen := bitLength(value)
		groups = append(groups, [2]uint64{value, uint64(bitlen)})
		value = uint64(bitlen) - 1
	}

	for i := len(groups) - 1; i >= 0; i-- {
		w.WriteBits(groups[i][0], int(groups[i][1]))
	}
	w.WriteBit(0)
}

func bitLength(v uint64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// WritePositiveInt writes a non-negative 32-bit value.
func (w *Writer) WritePositiveInt(u uint32) {
	writeEliasOmega(w, uint64(u)+1)
}

// WritePositiveLong writes a non-negative 64-bit value.
func (w *Writer) WritePositiveLong(u uint64) {
	writeEliasOmega(w, u+1)
}

// zigzagInt32 maps a signed value to a non-negative one: 0,-1,1,-2,2
// becomes 0,1,2,3,4, preserving small magnitudes as small codes.
func zigzagInt32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

func zigzagInt64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// WriteInt writes a signed 32-bit value via zigzag mapping.
func (w *Writer) WriteInt(v int32) {
	w.WritePositiveInt(zigzagInt32(v))
}

// WriteLong writes a signed 64-bit value via zigzag mapping.
func (w *Writer) WriteLong(v int64) {
	w.WritePositiveLong(zigzagInt64(v))
}

// WriteFloat32 writes the IEEE-754 bit pattern of f as 32 raw bits.
func (w *Writer) WriteFloat32(f float32) {
	w.WriteBits(uint64(math.Float32bits(f)), 32)
}

// WriteFloat64 writes the IEEE-754 bit pattern of f as 64 raw bits.
func (w *Writer) WriteFloat64(f float64) {
	w.WriteBits(math.Float64bits(f), 64)
}

// WriteString writes a length-prefixed UTF-8 string: a positive_int
// byte count followed by the raw bytes.
func (w *Writer) WriteString(s string) {
	data := []byte(s)
	w.WritePositiveInt(uint32(len(data)))
	w.WriteBytes(data)
}

// WriteEnum writes the ordinal of an enum value as a positive_int.
func (w *Writer) WriteEnum(ordinal int) {
	w.WritePositiveInt(uint32(ordinal))
}

// Bytes returns the accumulated bits packed big-endian into bytes,
// zero-padded in the final byte if the bit count is not a multiple of
// 8. The returned slice must not be modified by the caller.
func (w *Writer) Bytes() []byte {
	return w.bytes
}

// Size returns the number of bits written so far (alias of Position,
// provided for symmetry with [Reader.Size]).
func (w *Writer) Size() int { return w.nbits }

// WriteFrom copies n bits from r, starting at r's current position,
// into w.
func (w *Writer) WriteFrom(r *Reader, n int) error {
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return err
		}
		w.WriteBit(bit)
	}
	return nil
}

// XORBits returns a new bit sequence of length nbits equal to a XOR
// b, where a and b are big-endian-packed bit sequences each holding
// at least nbits bits. Used to apply a one-time pad derived from a
// digest to a secret payload block.
func XORBits(a, b []byte, nbits int) []byte {
	w := NewWriter()
	ra := NewReader(a, nbits)
	rb := NewReader(b, nbits)
	for i := 0; i < nbits; i++ {
		bitA, _ := ra.ReadBit()
		bitB, _ := rb.ReadBit()
		w.WriteBit(bitA ^ bitB)
	}
	return w.Bytes()
}
