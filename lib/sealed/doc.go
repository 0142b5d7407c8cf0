// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed provides age encryption and decryption for ticket
// factory secret bundles. It wraps filippo.io/age for the specific
// operations a factory operator needs: generate x25519 keypairs,
// encrypt a spec's keying secret to one or more recipients, and
// decrypt it with a private key at process startup.
//
// Ciphertext is base64-encoded for storage alongside a
// [github.com/originmark/tickets/lib/ticket.Config] definition on disk
// or in a secrets manager. Callers pass plaintext []byte to [Encrypt]
// and receive a base64 string; [Decrypt] accepts a base64 string and
// returns plaintext. Private keys and decrypted plaintext are returned
// as [secret.Buffer] values backed by mmap memory outside the Go heap
// (locked against swap, excluded from core dumps, zeroed on Close).
//
// Key exports:
//
//   - [GenerateKeypair] -- new age x25519 keypair in a secret.Buffer
//   - [Encrypt] / [EncryptJSON] -- encrypt to age public key recipients
//   - [Decrypt] / [DecryptJSON] -- decrypt with a secret.Buffer key
//   - [ParsePublicKey] / [ParsePrivateKey] -- key validation
//
// A factory process decrypts its spec secrets once at startup and
// passes the resulting buffers to ticket.NewFactory; it never writes
// the plaintext secret to disk or a log line.
//
// Depends on lib/secret for secure memory allocation.
package sealed
