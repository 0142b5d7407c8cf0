// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketfield describes a ticket's payload as an explicit,
// ordered list of typed fields and serializes/deserializes values for
// that list over lib/bitcode.
//
// The upstream design this package is modeled on derived a record's
// fields by reflecting over annotated getter methods on a
// caller-supplied interface. Go has no runtime reflection over struct
// tags that is idiomatic to reach for here, and reflection would also
// cost every Write/Read call a type switch it doesn't need: instead,
// a caller builds a [Schema] explicitly by listing [Field] values, and
// reads/writes plain []any slices indexed by each field's declared
// index. [Adapt] and [Unadapt] wrap that positional slice in a
// [Record] for callers that want map-style access instead.
package ticketfield
