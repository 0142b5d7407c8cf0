// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlseq provides a durable [ticket.Sequence]/[ticket.Provider]
// implementation backed by SQLite, for factory processes that must
// survive a restart without resetting every basis's counter to zero.
//
// A restart that loses in-memory sequence state risks secret-payload
// pad reuse: the pad XORed over a ticket's secret block, and the nonce
// inside that block, are both derived from a keyed digest of the
// ticket's open prefix, which includes the timestamp and sequence
// number, so reissuing a (timestamp, sequence) pair for the same
// origin and open data reuses the pad. This package keeps each basis's
// counter in SQLite so that it continues across restarts.
//
// One row is kept per basis, keyed by [ticket.Basis.CanonicalID]:
//
//	CREATE TABLE ticket_sequences (
//	    basis_id       TEXT PRIMARY KEY,
//	    last_timestamp INTEGER NOT NULL,
//	    counter        INTEGER NOT NULL
//	)
//
// Every allocation runs inside an IMMEDIATE transaction, so concurrent
// factory processes sharing one database file serialize correctly
// through SQLite's write lock rather than through in-process state
// alone.
//
// [Sequence.Next] satisfies [ticket.Sequence] using a background
// context for its SQLite round trip. Callers that hold a concrete
// *Sequence (rather than the ticket.Sequence interface) and want to
// thread a caller-supplied context through that round trip instead —
// to respect a request deadline or cancellation — can call
// [Sequence.NextContext] directly.
package sqlseq
