// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	switch subcommand {
	case "keygen":
		return runKeygen(args)
	case "encrypt-secret":
		return runEncryptSecret(args)
	case "decrypt-secret":
		return runDecryptSecret(args)
	case "issue":
		return runIssue(args)
	case "decode":
		return runDecode(args)
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: ticketctl <subcommand> [flags]

Subcommands:
  keygen           Generate an age keypair for sealing keying secrets
  encrypt-secret   Seal a keying secret into a bundle for one or more operators
  decrypt-secret   Unseal a keying secret from a bundle
  issue            Issue an account session ticket
  decode           Decode and verify an account session ticket

Run 'ticketctl <subcommand> --help' for subcommand flags.
`)
}
