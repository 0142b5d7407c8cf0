// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/originmark/tickets/lib/secret"
)

// readSecret reads a secret from path, or interactively from the
// terminal (with local echo disabled) when path is "-" or empty.
func readSecret(path, prompt string) (*secret.Buffer, error) {
	if path != "" && path != "-" {
		return readSecretFile(path)
	}

	stdinFd := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFd) {
		return nil, fmt.Errorf("no terminal available for interactive %s prompt (pass a file path instead)", prompt)
	}

	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	raw, err := term.ReadPassword(stdinFd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", prompt, err)
	}

	buf, err := secret.NewFromBytes(raw)
	if err != nil {
		secret.Zero(raw)
		return nil, err
	}
	return buf, nil
}

// readSecretFile reads a secret from a file, stripping a trailing
// newline (common with echo/printf pipelines).
func readSecretFile(path string) (*secret.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		secret.Zero(data)
		return nil, fmt.Errorf("file %s is empty (after stripping trailing newlines)", path)
	}

	buf, err := secret.NewFromBytes(data)
	if err != nil {
		secret.Zero(data)
		return nil, err
	}
	return buf, nil
}
