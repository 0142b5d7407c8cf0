// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/originmark/tickets/lib/secret"
	"github.com/originmark/tickets/lib/ticket"
	"github.com/originmark/tickets/lib/ticket/sqlseq"
)

const defaultCharLimit = ticket.DefaultCharLimit

// loadSecrets reads the plaintext keying secret for every spec in
// list that declares a SecretFile, in spec order. Specs with no
// SecretFile contribute a nil entry, which buildDigests treats as
// "no keying secret": that spec gets the unkeyed digest state.
func loadSecrets(list *ticket.YAMLSpecList) ([]*secret.Buffer, func(), error) {
	secrets := make([]*secret.Buffer, len(list.Specs))
	closers := make([]*secret.Buffer, 0, len(secrets))
	cleanup := func() {
		for _, b := range closers {
			b.Close()
		}
	}

	for i, s := range list.Specs {
		if s.SecretFile == "" {
			continue
		}
		buf, err := readSecretFile(s.SecretFile)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("spec %d: %w", i, err)
		}
		secrets[i] = buf
		closers = append(closers, buf)
	}
	return secrets, cleanup, nil
}

// openFactory builds a Factory for account session tickets from a
// YAML spec list file. If durableDB is non-empty, sequence counters
// are persisted to that SQLite database instead of kept in memory.
// The returned close function releases the secrets, and the durable
// sequence database if one was opened.
func openFactory(specFile, durableDB string) (*ticket.Factory[accountOrigin, sessionData], func(), error) {
	list, err := ticket.LoadYAMLSpecList(specFile)
	if err != nil {
		return nil, nil, err
	}
	specs, err := list.BuildSpecs()
	if err != nil {
		return nil, nil, err
	}

	secrets, closeSecrets, err := loadSecrets(list)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := buildConfig(specs, defaultCharLimit)
	if err != nil {
		closeSecrets()
		return nil, nil, err
	}

	var opts []ticket.Option[accountOrigin, sessionData]
	var closeSequences func() error

	if durableDB != "" {
		provider, err := sqlseq.Open(sqlseq.Config{Path: durableDB})
		if err != nil {
			closeSecrets()
			return nil, nil, fmt.Errorf("opening durable sequence database: %w", err)
		}
		opts = append(opts, ticket.WithSequenceProvider[accountOrigin, sessionData](provider))
		closeSequences = provider.Close
	}

	factory, err := ticket.NewFactory(cfg, secrets, opts...)
	if err != nil {
		closeSecrets()
		if closeSequences != nil {
			closeSequences()
		}
		return nil, nil, err
	}

	cleanup := func() {
		closeSecrets()
		if closeSequences != nil {
			if err := closeSequences(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: closing sequence database: %v\n", err)
			}
		}
	}
	return factory, cleanup, nil
}
