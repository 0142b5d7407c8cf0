// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/originmark/tickets/lib/bitcode"
	"github.com/originmark/tickets/lib/keccak"
)

// Basis is the immutable identity a Machine issues tickets under: a
// spec index plus an origin, represented both as bits (for equality
// and hashing) and as raw decoded values (for re-deriving the origin
// record a caller sees).
type Basis struct {
	SpecIndex int

	OpenOriginBits    []byte
	OpenOriginNBits   int
	SecretOriginBits  []byte
	SecretOriginNBits int

	RawValues []any
}

// key returns a value comparable with ==, usable as a map key, that
// captures Basis equality: (spec_index, open_origin_bits, secret_origin_bits).
func (b Basis) key() string {
	out := make([]byte, 0, 10+len(b.OpenOriginBits)+len(b.SecretOriginBits))
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], uint32(b.SpecIndex))
	out = append(out, idx[:]...)
	out = append(out, byte(b.OpenOriginNBits), byte(b.OpenOriginNBits>>8))
	out = append(out, b.OpenOriginBits...)
	out = append(out, byte(b.SecretOriginNBits), byte(b.SecretOriginNBits>>8))
	out = append(out, b.SecretOriginBits...)
	return string(out)
}

// CanonicalID returns the basis's canonical textual identifier: hex
// of the open origin bits followed by the ASCII digit '0' and
// (spec_index+1) when there are no secret origin bits, or hex of a
// Keccak digest over open||secret||spec_index_u32_be otherwise.
func (b Basis) CanonicalID() string {
	if b.SecretOriginNBits == 0 {
		return hex.EncodeToString(b.OpenOriginBits) + "0" + strconv.Itoa(b.SpecIndex+1)
	}

	w := bitcode.NewWriter()
	w.WriteBytes(b.OpenOriginBits)
	w.WriteBytes(b.SecretOriginBits)
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], uint32(b.SpecIndex))
	w.WriteBytes(idx[:])

	d := keccak.New()
	d.Update(w.Bytes())
	sum := d.Squeeze(digestHashBytes)
	return hex.EncodeToString(sum)
}
