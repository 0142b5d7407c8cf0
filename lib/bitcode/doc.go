// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bitcode provides a bit-level stream reader and writer over a
// self-delimiting universal integer coding (Elias omega, extended to
// signed integers, floats, strings, enums, and arrays).
//
// Every higher-level ticket component writes through this package:
// it is the "injected bit codec" that the rest of lib/ticket treats
// as an external dependency. [Writer] accumulates bits MSB-first into
// a byte buffer; [Reader] consumes them back in the same order. Every
// Write* method has a symmetric Read* method, and every encoding is
// self-delimiting — a reader never needs to know in advance how many
// bits a value occupies.
//
// Elias omega represents a positive integer n as a sequence of
// binary groups terminated by a single 0 bit: recursively prefix the
// binary representation of n, then of (bitlen(n)-1), and so on, until
// the recursion reaches 1. [Writer.WritePositiveInt] and
// [Writer.WritePositiveLong] encode n+1 this way (so that 0 is a
// representable input); [Writer.WriteInt] and [Writer.WriteLong]
// zigzag-map a signed value to a non-negative one first.
package bitcode
