// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import "encoding/binary"

// lcgMultiplier, lcgIncrement, and lcgMask are the constants of the
// 48-bit linear congruential generator java.util.Random uses, chosen
// here only for its well-known, easily-reproduced recurrence — not
// for any cryptographic property.
const (
	lcgMultiplier = 0x5DEECE66D
	lcgIncrement  = 0xB
	lcgMask       = (1 << 48) - 1
)

// lcg is a deterministic pseudo-random generator seeded from a
// digest tail, used only to hide the true length of a ticket's
// secret payload behind a randomized nonce width.
type lcg struct {
	seed uint64
}

func newLCG(seed int64) *lcg {
	return &lcg{seed: (uint64(seed) ^ lcgMultiplier) & lcgMask}
}

func (g *lcg) next(bits int) int32 {
	g.seed = (g.seed*lcgMultiplier + lcgIncrement) & lcgMask
	return int32(g.seed >> uint(48-bits))
}

func (g *lcg) nextU32() uint32 {
	return uint32(g.next(32))
}

func (g *lcg) nextI32() int32 {
	return g.next(32)
}

// deriveNonce implements the length-hiding nonce construction: the
// last 8 bytes of digest, read big-endian as a signed 64-bit seed,
// seed a lcg; draw count in [16, 31] and a signed 32-bit value;
// the nonce is (1<<count) | (bits & ((1<<count)-1)), a value whose
// bit length is count+1 in [17, 32].
func deriveNonce(digest []byte) (value uint64, bitLen int) {
	tail := digest[len(digest)-8:]
	seed := int64(binary.BigEndian.Uint64(tail))

	rnd := newLCG(seed)
	count := 16 + int(rnd.nextU32()%16)
	bits := rnd.nextI32()

	mask := uint64(1)<<uint(count) - 1
	value = (uint64(1) << uint(count)) | (uint64(uint32(bits)) & mask)
	return value, count + 1
}
