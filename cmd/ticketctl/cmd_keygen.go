// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/originmark/tickets/lib/sealed"
)

// runKeygen generates an age x25519 keypair for an operator. The
// public key goes to stdout (safe to publish, e.g. for encrypt-secret
// --recipient); the private key goes to stderr so it never ends up in
// shell history or a redirected stdout file by accident.
func runKeygen(args []string) error {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		return fmt.Errorf("generating keypair: %w", err)
	}
	defer keypair.Close()

	fmt.Fprintf(os.Stderr, "# Private key (keep this secret):\n")
	fmt.Fprintf(os.Stderr, "%s\n", keypair.PrivateKey.String())
	fmt.Fprintf(os.Stdout, "%s\n", keypair.PublicKey)
	return nil
}
