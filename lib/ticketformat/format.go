// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketformat

import (
	"errors"
	"fmt"

	"github.com/originmark/tickets/lib/bitcode"
)

// alphabet is the 32-symbol lowercase table: digits 0-9, letters a-h,
// j-k, m-n, and p-y. The letters i, l, o, and z are omitted as easily
// confused with 1, 1, 0, and 2 (or with each other) when handwritten
// or read aloud.
const alphabet = "0123456789abcdefghjkmnpqrstuvwxy"

var symbolValue [256]int8

func init() {
	for i := range symbolValue {
		symbolValue[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		lower := alphabet[i]
		upper := lower
		if lower >= 'a' && lower <= 'z' {
			upper = lower - 'a' + 'A'
		}
		symbolValue[lower] = int8(i)
		symbolValue[upper] = int8(i)
	}
}

// ErrTooLong is returned when an encoded or decoded string would
// exceed the caller's configured character limit.
var ErrTooLong = errors.New("ticketformat: result exceeds max length")

// ErrInvalidChar is returned when input to Decode contains a
// non-printable or non-ASCII byte.
var ErrInvalidChar = errors.New("ticketformat: invalid character")

// ErrInvalidLength is returned when the bit sequence given to Encode
// is not a multiple of 5 bits.
var ErrInvalidLength = errors.New("ticketformat: bit length not a multiple of 5")

// Format describes how a packed sequence of base-32 symbols is laid
// out as a human-facing string: grouping, separator, case, and
// whether the final group is padded out to full width.
type Format struct {
	UpperCase     bool
	GroupLength   int  // 0 means ungrouped: no separators, no padding.
	SeparatorChar byte // ignored when GroupLength == 0.
	PadGroups     bool
}

// Encode converts the remaining bits of r (which must be a multiple
// of 5) into a string under f, failing with ErrTooLong if the result
// would exceed maxLen characters.
func Encode(f Format, r *bitcode.Reader, maxLen int) (string, error) {
	nbits := r.Remaining()
	if nbits%5 != 0 {
		return "", fmt.Errorf("%w: %d bits", ErrInvalidLength, nbits)
	}
	n := nbits / 5

	symbols := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := r.ReadBits(5)
		if err != nil {
			return "", err
		}
		symbols[i] = caseOf(f, alphabet[v])
	}

	var out []byte
	if f.GroupLength <= 0 {
		out = symbols
	} else {
		out = groupSymbols(f, symbols)
	}

	if len(out) > maxLen {
		return "", fmt.Errorf("%w: %d > %d", ErrTooLong, len(out), maxLen)
	}
	return string(out), nil
}

func groupSymbols(f Format, symbols []byte) []byte {
	groupLen := f.GroupLength
	ngroups := (len(symbols) + groupLen - 1) / groupLen
	if ngroups == 0 {
		ngroups = 1
	}
	sep := caseOf(f, f.SeparatorChar)

	out := make([]byte, 0, len(symbols)+ngroups)
	for g := 0; g < ngroups; g++ {
		if g > 0 {
			out = append(out, sep)
		}
		lo := g * groupLen
		hi := lo + groupLen
		if hi > len(symbols) {
			hi = len(symbols)
		}
		out = append(out, symbols[lo:hi]...)
		if f.PadGroups {
			for i := hi - lo; i < groupLen; i++ {
				out = append(out, caseOf(f, 'z'))
			}
		}
	}
	return out
}

func caseOf(f Format, c byte) byte {
	if !f.UpperCase {
		return c
	}
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Decode converts str back into a bit sequence, ignoring any
// character that is not a valid base-32 symbol (the padding symbol
// 'z', a configured separator, or any other printable ASCII
// character a user might have inserted while retyping a ticket).
// Decode fails with ErrTooLong if str exceeds maxLen characters and
// ErrInvalidChar if str contains a non-printable or non-ASCII byte.
func Decode(str string, maxLen int) (*bitcode.Reader, error) {
	if len(str) > maxLen {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLong, len(str), maxLen)
	}

	w := bitcode.NewWriter()
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c < 0x20 || c > 0x7e {
			return nil, fmt.Errorf("%w: byte 0x%02x at position %d", ErrInvalidChar, c, i)
		}
		v := symbolValue[c]
		if v < 0 {
			continue // separator, padding char, or other stray character.
		}
		w.WriteBits(uint64(v), 5)
	}
	return bitcode.NewReader(w.Bytes(), w.Position()), nil
}
