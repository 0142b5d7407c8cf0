// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

func runIssue(args []string) error {
	flags := pflag.NewFlagSet("issue", pflag.ContinueOnError)
	var (
		specFile    string
		durableDB   string
		accountID   uint32
		note        string
		amountCents int64
	)
	flags.StringVar(&specFile, "spec-file", "", "path to the YAML spec list (required)")
	flags.StringVar(&durableDB, "durable-sequence-db", "", "path to a SQLite database for durable sequence counters (default: in-memory)")
	flags.Uint32Var(&accountID, "account-id", 0, "account id to issue the ticket for (required)")
	flags.StringVar(&note, "note", "", "open note carried by the ticket")
	flags.Int64Var(&amountCents, "amount-cents", 0, "secret amount, in cents, carried by the ticket")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if specFile == "" {
		return fmt.Errorf("--spec-file is required")
	}

	factory, cleanup, err := openFactory(specFile, durableDB)
	if err != nil {
		return err
	}
	defer cleanup()

	machine, err := factory.MachineFor(accountOrigin{AccountID: accountID})
	if err != nil {
		return err
	}

	ticket, err := machine.Issue(sessionData{Note: note, AmountCents: amountCents})
	if err != nil {
		return fmt.Errorf("issuing ticket: %w", err)
	}

	fmt.Println(ticket.StringImage())
	return nil
}
