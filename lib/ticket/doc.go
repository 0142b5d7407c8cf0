// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket issues and decodes tickets: short, human-transcribable
// ASCII tokens that encode a timestamp, a monotonic sequence number,
// an origin descriptor, application-defined payload data, and
// optionally a keyed integrity hash over an encrypted payload block.
//
// A [Config] declares the origin and data record shapes (via
// lib/ticketfield schemas and Go conversion functions), the ordered
// list of [Spec] versions a factory understands, and a character cap.
// [NewFactory] builds a [Factory] from a Config and, optionally, a
// set of keying secrets (one per spec, oldest first). [Factory.MachineFor]
// returns a [Machine] bound to one origin; [Machine.Issue] assembles
// and formats a ticket. [Factory.Decode] reverses the process for any
// string issued by this or a compatible historical factory.
package ticket
