// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketformat converts between a bit sequence and a grouped
// ASCII string using a 32-symbol alphabet chosen to avoid characters
// that are easily confused when transcribed by hand: no 'i', 'l', 'o',
// or 'z'.
//
// [Encode] packs 5 bits per character; the input bit count must be a
// multiple of 5. [Decode] is its inverse and is lenient about case and
// about stray separator characters, so a ticket a user has retyped
// with inconsistent grouping or capitalization still decodes.
package ticketformat
