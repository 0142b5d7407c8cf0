// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/originmark/tickets/lib/ticket"
	"github.com/originmark/tickets/lib/ticketfield"
)

// accountOrigin identifies the account a ticket was issued for. The
// account id is an open field: it appears in plaintext in every
// ticket issued under it, which is what lets a verifier route a
// presented ticket back to the right account without decrypting
// anything.
type accountOrigin struct {
	AccountID uint32
}

// sessionData is the application payload carried by an account
// session ticket. Note is open (visible without the keying secret);
// AmountCents is secret (only recoverable by a verifier holding the
// spec's keying secret).
type sessionData struct {
	Note        string
	AmountCents int64
}

// accountOrigin.AccountID is a uint32, but the library's positional
// value slots operate on the primitive Kind enum, which tops out at
// U16 for unsigned integers. The account id is carried as two U16
// fields (high, low) to stay within a single uint32 using only
// declared primitive kinds.
func originSchema() *ticketfield.Schema {
	schema, err := ticketfield.NewSchema([]ticketfield.Field{
		{Index: 0, Kind: ticketfield.U16, IsSecret: false}, // AccountID high 16 bits
		{Index: 1, Kind: ticketfield.U16, IsSecret: false}, // AccountID low 16 bits
	})
	if err != nil {
		panic("ticketctl: invalid origin schema: " + err.Error())
	}
	return schema
}

func dataSchema() *ticketfield.Schema {
	schema, err := ticketfield.NewSchema([]ticketfield.Field{
		{Index: 0, Kind: ticketfield.String, IsSecret: false},
		{Index: 1, Kind: ticketfield.I64, IsSecret: true},
	})
	if err != nil {
		panic("ticketctl: invalid data schema: " + err.Error())
	}
	return schema
}

func originToValues(o accountOrigin) []any {
	return []any{uint16(o.AccountID >> 16), uint16(o.AccountID & 0xffff)}
}

func valuesToOrigin(values []any) accountOrigin {
	high := values[0].(uint16)
	low := values[1].(uint16)
	return accountOrigin{AccountID: uint32(high)<<16 | uint32(low)}
}

func dataToValues(d sessionData) []any {
	return []any{d.Note, d.AmountCents}
}

func valuesToData(values []any) sessionData {
	return sessionData{Note: values[0].(string), AmountCents: values[1].(int64)}
}

// buildConfig assembles a [ticket.Config] for account session tickets
// from a parsed spec list and char limit.
func buildConfig(specs []*ticket.Spec, charLimit int) (*ticket.Config[accountOrigin, sessionData], error) {
	cfg := ticket.NewConfig[accountOrigin, sessionData](originSchema(), dataSchema(), specs...)
	cfg.CharLimit = charLimit
	cfg.OriginToValues = originToValues
	cfg.ValuesToOrigin = valuesToOrigin
	cfg.DataToValues = dataToValues
	cfg.ValuesToData = valuesToData

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ticketctl: %w", err)
	}
	return cfg, nil
}
