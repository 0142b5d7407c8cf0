// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/originmark/tickets/lib/sealed"
)

// runEncryptSecret reads a plaintext keying secret (interactively or
// from a file), encrypts it to one or more operator age public keys,
// and stores the result in a CBOR secret bundle under the given spec
// index.
func runEncryptSecret(args []string) error {
	flags := pflag.NewFlagSet("encrypt-secret", pflag.ContinueOnError)
	var (
		bundlePath string
		specIndex  int
		secretFile string
		recipients []string
	)
	flags.StringVar(&bundlePath, "bundle", "", "path to the secret bundle file (required)")
	flags.IntVar(&specIndex, "spec-index", -1, "index of the spec this secret keys (required)")
	flags.StringVar(&secretFile, "secret", "-", "path to the secret file, or - to prompt interactively")
	flags.StringSliceVar(&recipients, "recipient", nil, "operator age public key (age1...); repeatable")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if bundlePath == "" || specIndex < 0 || len(recipients) == 0 {
		return fmt.Errorf("--bundle, --spec-index, and at least one --recipient are required")
	}
	for _, key := range recipients {
		if err := sealed.ParsePublicKey(key); err != nil {
			return fmt.Errorf("invalid recipient: %w", err)
		}
	}

	secretBuf, err := readSecret(secretFile, "Keying secret")
	if err != nil {
		return err
	}
	defer secretBuf.Close()

	ciphertext, err := sealed.Encrypt(secretBuf.Bytes(), recipients)
	if err != nil {
		return fmt.Errorf("encrypting secret: %w", err)
	}

	b, err := loadBundle(bundlePath)
	if err != nil {
		return err
	}
	b.put(specIndex, ciphertext)
	if err := b.save(bundlePath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Sealed secret for spec %d written to %s (%d recipients)\n", specIndex, bundlePath, len(recipients))
	return nil
}

// runDecryptSecret decrypts the bundle's entry for a spec index and
// writes the plaintext secret to stdout, for the operator to pipe
// into the plain secret file a YAML spec list's SecretFile entry
// points at.
func runDecryptSecret(args []string) error {
	flags := pflag.NewFlagSet("decrypt-secret", pflag.ContinueOnError)
	var (
		bundlePath     string
		specIndex      int
		privateKeyFile string
	)
	flags.StringVar(&bundlePath, "bundle", "", "path to the secret bundle file (required)")
	flags.IntVar(&specIndex, "spec-index", -1, "index of the spec to decrypt (required)")
	flags.StringVar(&privateKeyFile, "private-key-file", "", "path to the operator's age private key (required)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if bundlePath == "" || specIndex < 0 || privateKeyFile == "" {
		return fmt.Errorf("--bundle, --spec-index, and --private-key-file are required")
	}

	privateKey, err := readSecretFile(privateKeyFile)
	if err != nil {
		return err
	}
	defer privateKey.Close()

	b, err := loadBundle(bundlePath)
	if err != nil {
		return err
	}

	plaintext, err := b.decrypt(specIndex, privateKey)
	if err != nil {
		return err
	}
	defer plaintext.Close()

	os.Stdout.Write(plaintext.Bytes())
	return nil
}
