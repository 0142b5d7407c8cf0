// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"errors"

	"github.com/originmark/tickets/lib/ticketfield"
	"github.com/originmark/tickets/lib/ticketformat"
)

// All ticket failures are one of the sentinel errors below, wrapped
// with context via fmt.Errorf's %w. Use errors.Is to discriminate.
var (
	// ErrInvalidArgument covers null/empty input, too many values, a
	// wrong value type, or an illegal schema.
	ErrInvalidArgument = errors.New("ticket: invalid argument")

	// ErrTooLong is returned when a ticket string exceeds char_limit,
	// on both issue and decode. Aliased to ticketformat's sentinel so
	// callers can check either name.
	ErrTooLong = ticketformat.ErrTooLong

	// ErrInvalidChar is returned when a ticket string contains a
	// non-printable or non-ASCII byte.
	ErrInvalidChar = ticketformat.ErrInvalidChar

	// ErrWrongVersion is returned when a decoded ticket's VERSION
	// field is not one this package knows how to read.
	ErrWrongVersion = errors.New("ticket: unsupported ticket version")

	// ErrUnknownSpec is returned when a decoded spec_index exceeds
	// the factory's primary spec index.
	ErrUnknownSpec = errors.New("ticket: unknown spec index")

	// ErrSequenceExhausted is returned when a basis's sequence
	// counter would overflow or would return a negative value.
	ErrSequenceExhausted = errors.New("ticket: sequence exhausted")

	// ErrBadHash is returned when a decoded ticket's integrity tag
	// does not match the recomputed digest.
	ErrBadHash = errors.New("ticket: integrity tag mismatch")

	// ErrMalformed covers bit-stream under/overflow, non-zero
	// reserved padding, a field count exceeding the schema width, a
	// secret block with leftover bits, or a secret length out of
	// range. Aliased to ticketfield's sentinel so callers can check
	// either name.
	ErrMalformed = ticketfield.ErrMalformed

	// ErrInvalidSchema is returned by ticketfield.NewSchema when an
	// origin or data schema is invalid. Aliased to ticketfield's
	// sentinel so callers can check either name.
	ErrInvalidSchema = ticketfield.ErrInvalidSchema
)
