// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

func runDecode(args []string) error {
	flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	var (
		specFile  string
		durableDB string
	)
	flags.StringVar(&specFile, "spec-file", "", "path to the YAML spec list (required)")
	flags.StringVar(&durableDB, "durable-sequence-db", "", "path to a SQLite database for durable sequence counters (default: in-memory)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if specFile == "" || len(rest) != 1 {
		return fmt.Errorf("usage: ticketctl decode --spec-file FILE TICKET")
	}

	factory, cleanup, err := openFactory(specFile, durableDB)
	if err != nil {
		return err
	}
	defer cleanup()

	decoded, err := factory.Decode(rest[0])
	if err != nil {
		return fmt.Errorf("decoding ticket: %w", err)
	}

	fmt.Printf("spec_index:    %d\n", decoded.SpecIndex)
	fmt.Printf("timestamp_ms:  %d\n", decoded.TimestampMs)
	fmt.Printf("sequence:      %d\n", decoded.SequenceNumber)
	fmt.Printf("account_id:    %d\n", decoded.Origin.AccountID)
	fmt.Printf("note:          %q\n", decoded.Data.Note)
	fmt.Printf("amount_cents:  %d\n", decoded.Data.AmountCents)
	return nil
}
