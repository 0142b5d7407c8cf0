// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"github.com/originmark/tickets/lib/keccak"
	"github.com/originmark/tickets/lib/secret"
)

// digestHashBytes is the full output width of the sponge digest; a
// spec's hash_length_bits and secret payload width are both measured
// against this many bits (28 bytes = 224 bits).
const digestHashBytes = 28

// digestSet holds one prekeyed sponge per spec index, ready to be
// cloned and fed a ticket's bits on demand.
type digestSet struct {
	prekeyed []keccak.State
}

// buildDigests implements the pre-keying construction: for specs
// S_0..S_{m-1} and secrets K_0..K_{k-1} (k <= m), spec i's prekeyed
// state is a fresh sponge with K_i absorbed if K_i is non-empty, a
// fresh unkeyed sponge if K_i is empty, and — for i >= k, where no
// secret was supplied at all — the same prekeyed state as spec k-1.
func buildDigests(specCount int, secrets []*secret.Buffer) digestSet {
	base := keccak.New()

	prekeyed := make([]keccak.State, specCount)
	var lastKeyed keccak.State
	haveLastKeyed := false

	for i := 0; i < specCount; i++ {
		switch {
		case i < len(secrets):
			if secrets[i] != nil && secrets[i].Len() > 0 {
				d := base.Clone()
				d.Update(secrets[i].Bytes())
				prekeyed[i] = d
			} else {
				prekeyed[i] = base
			}
			lastKeyed = prekeyed[i]
			haveLastKeyed = true
		case haveLastKeyed:
			prekeyed[i] = lastKeyed
		default:
			prekeyed[i] = base
		}
	}
	return digestSet{prekeyed: prekeyed}
}

// digest computes the full 28-byte digest of data under spec i's
// prekeyed state, without disturbing that state (every call clones
// before absorbing).
func (ds digestSet) digest(specIndex int, data []byte) []byte {
	d := ds.prekeyed[specIndex].Clone()
	d.Update(data)
	return d.Squeeze(digestHashBytes)
}

