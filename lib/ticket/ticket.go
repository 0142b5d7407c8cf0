// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import "bytes"

// Ticket is an immutable, decoded or issued ticket value.
type Ticket[O, D any] struct {
	SpecIndex      int
	TimestampMs    int64
	SequenceNumber int64
	Origin         O
	Data           D

	bitImage    []byte
	bitLength   int
	stringImage string
}

// BitImage returns the ticket's canonical bit sequence, big-endian
// byte packed, zero padded in the final byte.
func (t *Ticket[O, D]) BitImage() []byte { return t.bitImage }

// BitLength returns the exact number of bits in BitImage (which may
// be fewer than len(BitImage())*8).
func (t *Ticket[O, D]) BitLength() int { return t.bitLength }

// StringImage returns the ASCII form the ticket was issued or decoded
// as. It is informational only: two tickets with equal bit images
// may have different string images if encoded under different
// formats.
func (t *Ticket[O, D]) StringImage() string { return t.stringImage }

// IsDisposable reports whether seq is unsequenced at ts (see
// [Sequence.IsUnsequenced]); the ticket's own fields are not
// consulted. A Factory evicts idle machines from its cache through
// [Machine.IsDisposable], not through this method.
func (t *Ticket[O, D]) IsDisposable(seq Sequence, ts int64) bool {
	return seq.IsUnsequenced(ts)
}

// Equal reports whether two tickets have the same spec and bit image.
// StringImage is excluded: the same bits may render as different
// strings under different formats.
func (t *Ticket[O, D]) Equal(other *Ticket[O, D]) bool {
	if other == nil {
		return false
	}
	return t.SpecIndex == other.SpecIndex && bytes.Equal(t.bitImage, other.bitImage) && t.bitLength == other.bitLength
}
