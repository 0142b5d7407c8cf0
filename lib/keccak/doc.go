// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keccak provides a cloneable Keccak-f[1600] sponge, used by
// lib/ticket to derive a ticket's hash tag and its secret-payload
// one-time pad from a shared keying secret.
//
// The sponge is exposed through [New], which absorbs input with
// [State.Update] and squeezes output with [State.Squeeze]. A State can
// be cloned with [State.Clone]: the clone and the original continue
// from the same absorbed state, which lets a factory prekey a digest
// once with a spec-wide secret and then clone it for each digest it
// computes without re-absorbing the secret each time.
//
// Unlike a fixed-size hash, a sponge can squeeze any number of output
// bytes, which [State.Squeeze] exposes directly — lib/ticket squeezes
// a fixed 28 bytes (224 bits) per digest and takes only the leading
// bits it needs from the result.
package keccak
