// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/originmark/tickets/lib/codec"
	"github.com/originmark/tickets/lib/sealed"
	"github.com/originmark/tickets/lib/secret"
)

// bundle is the on-disk, CBOR-encoded container for a factory's
// per-spec keying secrets, each age-sealed to one or more operator
// public keys. It is the thing operators pass around and commit
// alongside a spec file: the plaintext secrets never touch disk.
type bundle struct {
	Secrets []bundleSecret `cbor:"secrets"`
}

type bundleSecret struct {
	SpecIndex  int    `cbor:"spec_index"`
	Ciphertext string `cbor:"ciphertext"`
}

// loadBundle reads and CBOR-decodes a bundle from path. A missing
// file is treated as an empty bundle so that encrypt-secret can
// create one on first use.
func loadBundle(path string) (*bundle, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &bundle{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", path, err)
	}

	var b bundle
	if err := codec.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing bundle %s: %w", path, err)
	}
	return &b, nil
}

// save CBOR-encodes the bundle and writes it to path with
// owner-only permissions.
func (b *bundle) save(path string) error {
	data, err := codec.Marshal(b)
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing bundle %s: %w", path, err)
	}
	return nil
}

// put replaces the entry for specIndex, or appends one if none exists.
func (b *bundle) put(specIndex int, ciphertext string) {
	for i := range b.Secrets {
		if b.Secrets[i].SpecIndex == specIndex {
			b.Secrets[i].Ciphertext = ciphertext
			return
		}
	}
	b.Secrets = append(b.Secrets, bundleSecret{SpecIndex: specIndex, Ciphertext: ciphertext})
}

// decrypt finds specIndex's ciphertext and decrypts it with
// privateKey, returning the plaintext secret.
func (b *bundle) decrypt(specIndex int, privateKey *secret.Buffer) (*secret.Buffer, error) {
	for _, s := range b.Secrets {
		if s.SpecIndex == specIndex {
			return sealed.Decrypt(s.Ciphertext, privateKey)
		}
	}
	return nil, fmt.Errorf("bundle has no secret for spec index %d", specIndex)
}
