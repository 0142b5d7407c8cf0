// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// ticketctl is an operator CLI for issuing and decoding account
// session tickets, and for managing the age-sealed keying secrets a
// ticket factory absorbs into its per-spec digest states.
//
// Subcommands:
//
//	ticketctl keygen
//	ticketctl encrypt-secret --bundle FILE --spec-index N --recipient KEY [--recipient KEY ...]
//	ticketctl decrypt-secret --bundle FILE --spec-index N --private-key-file FILE
//	ticketctl issue --spec-file FILE [--durable-sequence-db FILE] --account-id N --note TEXT --amount-cents N
//	ticketctl decode --spec-file FILE [--durable-sequence-db FILE] TICKET
//
// Flags are parsed with spf13/pflag. Where a secret is read
// interactively (--secret -) with stdin attached to a terminal, local
// echo is disabled via golang.org/x/term.
package main
