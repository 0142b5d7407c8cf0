// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketformat

import (
	"errors"
	"testing"

	"github.com/originmark/tickets/lib/bitcode"
)

func ungroupedFormat() Format {
	return Format{GroupLength: 0}
}

func groupedFormat() Format {
	return Format{UpperCase: true, GroupLength: 4, SeparatorChar: '-', PadGroups: true}
}

func TestEncodeUngrouped(t *testing.T) {
	w := bitcode.NewWriter()
	w.WriteBits(0, 5)  // '0'
	w.WriteBits(9, 5)  // '9'
	w.WriteBits(10, 5) // 'a'

	r := bitcode.NewReader(w.Bytes(), w.Position())
	got, err := Encode(ungroupedFormat(), r, 100)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got != "09a" {
		t.Errorf("Encode = %q, want %q", got, "09a")
	}
}

func TestEncodeRejectsNonMultipleOf5(t *testing.T) {
	w := bitcode.NewWriter()
	w.WriteBits(1, 3)
	r := bitcode.NewReader(w.Bytes(), w.Position())
	if _, err := Encode(ungroupedFormat(), r, 100); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Encode = %v, want ErrInvalidLength", err)
	}
}

func TestEncodeTooLong(t *testing.T) {
	w := bitcode.NewWriter()
	for i := 0; i < 10; i++ {
		w.WriteBits(1, 5)
	}
	r := bitcode.NewReader(w.Bytes(), w.Position())
	if _, err := Encode(ungroupedFormat(), r, 5); !errors.Is(err, ErrTooLong) {
		t.Errorf("Encode = %v, want ErrTooLong", err)
	}
}

func TestEncodeGroupedWithPadding(t *testing.T) {
	w := bitcode.NewWriter()
	for i := 0; i < 6; i++ {
		w.WriteBits(uint64(i), 5)
	}
	r := bitcode.NewReader(w.Bytes(), w.Position())
	got, err := Encode(groupedFormat(), r, 100)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// 6 symbols "012345" grouped by 4, padded with 'Z' (uppercased):
	// "0123" "45ZZ".
	want := "0123-45ZZ"
	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestDecodeEncodeRoundtrip(t *testing.T) {
	w := bitcode.NewWriter()
	for i := 0; i < 12; i++ {
		w.WriteBits(uint64(i%32), 5)
	}
	r := bitcode.NewReader(w.Bytes(), w.Position())
	encoded, err := Encode(groupedFormat(), r, 100)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(encoded, 100)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := 0; i < 12; i++ {
		v, err := decoded.ReadBits(5)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", i, err)
		}
		if v != uint64(i%32) {
			t.Errorf("symbol %d = %d, want %d", i, v, i%32)
		}
	}
}

func bitImage(t *testing.T, r *bitcode.Reader) []int {
	t.Helper()
	var bits []int
	for r.Remaining() > 0 {
		bit, err := r.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit: %v", err)
		}
		bits = append(bits, bit)
	}
	return bits
}

func TestFormatIndependenceOfReencoding(t *testing.T) {
	w := bitcode.NewWriter()
	for i := 0; i < 12; i++ {
		w.WriteBits(uint64(i%32), 5)
	}
	originalBits := bitImage(t, bitcode.NewReader(w.Bytes(), w.Position()))

	narrow := Format{UpperCase: false, GroupLength: 4, SeparatorChar: '-', PadGroups: true}
	wide := Format{UpperCase: true, GroupLength: 6, SeparatorChar: ' ', PadGroups: false}

	encodedNarrow, err := Encode(narrow, bitcode.NewReader(w.Bytes(), w.Position()), 100)
	if err != nil {
		t.Fatalf("Encode(narrow): %v", err)
	}
	decodedNarrow, err := Decode(encodedNarrow, 100)
	if err != nil {
		t.Fatalf("Decode(narrow): %v", err)
	}

	// Re-encode the decoded bit image under a different format:
	// different case, grouping, separator, and padding policy.
	encodedWide, err := Encode(wide, decodedNarrow, 100)
	if err != nil {
		t.Fatalf("Encode(wide): %v", err)
	}
	if encodedNarrow == encodedWide {
		t.Fatalf("expected the two formats to produce different strings")
	}
	decodedWide, err := Decode(encodedWide, 100)
	if err != nil {
		t.Fatalf("Decode(wide): %v", err)
	}
	bitsFromWide := bitImage(t, decodedWide)

	if len(originalBits) != len(bitsFromWide) {
		t.Fatalf("bit image length differs across formats: %d vs %d", len(originalBits), len(bitsFromWide))
	}
	for i := range originalBits {
		if originalBits[i] != bitsFromWide[i] {
			t.Fatalf("bit %d differs across formats: %d vs %d", i, originalBits[i], bitsFromWide[i])
		}
	}
}

func TestDecodeCaseInsensitive(t *testing.T) {
	lower, err := Decode("09azpy", 100)
	if err != nil {
		t.Fatalf("Decode lower: %v", err)
	}
	upper, err := Decode("09AZPY", 100)
	if err != nil {
		t.Fatalf("Decode upper: %v", err)
	}
	if lower.Remaining() != upper.Remaining() {
		t.Fatalf("lower/upper decoded to different bit counts")
	}
	// 'z' is not a symbol (excluded from the alphabet), so it is
	// dropped as a separator: only "09apy" contributes symbols.
	if lower.Remaining() != 5*5 {
		t.Errorf("Remaining = %d, want %d", lower.Remaining(), 5*5)
	}
}

func TestDecodeIgnoresStraySeparators(t *testing.T) {
	r, err := Decode("01-23 45.67", 100)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Remaining() != 8*5 {
		t.Errorf("Remaining = %d, want %d", r.Remaining(), 8*5)
	}
}

func TestDecodeTooLong(t *testing.T) {
	if _, err := Decode("0123456789", 5); !errors.Is(err, ErrTooLong) {
		t.Errorf("Decode = %v, want ErrTooLong", err)
	}
}

func TestDecodeInvalidChar(t *testing.T) {
	if _, err := Decode("01\x0123", 100); !errors.Is(err, ErrInvalidChar) {
		t.Errorf("Decode = %v, want ErrInvalidChar", err)
	}
	if _, err := Decode("01\xff23", 100); !errors.Is(err, ErrInvalidChar) {
		t.Errorf("Decode = %v, want ErrInvalidChar", err)
	}
}

func TestAlphabetExcludesAmbiguousLetters(t *testing.T) {
	for _, c := range []byte{'i', 'l', 'o', 'z'} {
		for _, symbol := range []byte(alphabet) {
			if symbol == c {
				t.Errorf("alphabet contains excluded letter %q", c)
			}
		}
	}
}

func TestAlphabetHas32Symbols(t *testing.T) {
	if len(alphabet) != 32 {
		t.Errorf("alphabet has %d symbols, want 32", len(alphabet))
	}
}
