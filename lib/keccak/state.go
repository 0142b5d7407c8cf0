// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keccak

import "golang.org/x/crypto/sha3"

// State is a Keccak-f[1600] sponge in either its absorbing or
// squeezing phase. The zero value is not usable; construct one with
// [New].
type State struct {
	shake sha3.ShakeHash
}

// New returns a fresh sponge, ready to absorb input.
func New() State {
	return State{shake: sha3.NewShake256()}
}

// Clone returns an independent copy of s. Absorbing into, or
// squeezing from, the clone has no effect on s and vice versa.
func (s State) Clone() State {
	return State{shake: s.shake.Clone()}
}

// Update absorbs more bytes into the sponge. Update must not be
// called after Squeeze has been called on s or any state it was
// cloned from — the underlying sponge switches irreversibly from
// absorbing to squeezing on the first read.
func (s State) Update(data []byte) {
	s.shake.Write(data)
}

// Squeeze extracts n bytes of output from the sponge. Repeated calls
// continue squeezing rather than restarting, so Squeeze(16) followed
// by Squeeze(16) yields the same 32 bytes as a single Squeeze(32).
func (s State) Squeeze(n int) []byte {
	out := make([]byte, n)
	s.shake.Read(out)
	return out
}
