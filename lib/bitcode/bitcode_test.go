// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bitcode

import "testing"

func TestEliasOmegaKnownCodes(t *testing.T) {
	// Known Elias omega codes for small positive integers:
	// 1 -> "0", 2 -> "100", 3 -> "110", 4 -> "101000".
	tests := []struct {
		n    uint64
		want string
	}{
		{1, "0"},
		{2, "100"},
		{3, "110"},
		{4, "101000"},
	}

	for _, test := range tests {
		w := NewWriter()
		writeEliasOmega(w, test.n)
		got := bitsToString(w)
		if got != test.want {
			t.Errorf("writeEliasOmega(%d) = %q, want %q", test.n, got, test.want)
		}

		r := NewReader(w.Bytes(), w.Position())
		decoded, err := readEliasOmega(r)
		if err != nil {
			t.Fatalf("readEliasOmega(%d): %v", test.n, err)
		}
		if decoded != test.n {
			t.Errorf("readEliasOmega round-trip(%d) = %d", test.n, decoded)
		}
	}
}

func bitsToString(w *Writer) string {
	r := NewReader(w.Bytes(), w.Position())
	out := make([]byte, 0, w.Position())
	for i := 0; i < w.Position(); i++ {
		bit, _ := r.ReadBit()
		if bit == 0 {
			out = append(out, '0')
		} else {
			out = append(out, '1')
		}
	}
	return string(out)
}

func TestPositiveIntRoundtrip(t *testing.T) {
	values := []uint32{0, 1, 2, 3, 4, 5, 100, 65535, 1 << 20, 1<<32 - 1}
	for _, v := range values {
		w := NewWriter()
		w.WritePositiveInt(v)
		r := NewReader(w.Bytes(), w.Position())
		got, err := r.ReadPositiveInt()
		if err != nil {
			t.Fatalf("ReadPositiveInt(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("roundtrip(%d) = %d", v, got)
		}
		if r.Remaining() != 0 {
			t.Errorf("roundtrip(%d) left %d bits unread", v, r.Remaining())
		}
	}
}

func TestPositiveLongRoundtrip(t *testing.T) {
	values := []uint64{0, 1, 2, 1 << 40, 1<<64 - 1}
	for _, v := range values {
		w := NewWriter()
		w.WritePositiveLong(v)
		r := NewReader(w.Bytes(), w.Position())
		got, err := r.ReadPositiveLong()
		if err != nil {
			t.Fatalf("ReadPositiveLong(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("roundtrip(%d) = %d", v, got)
		}
	}
}

func TestSignedIntRoundtrip(t *testing.T) {
	values := []int32{0, 1, -1, 2, -2, 1 << 20, -(1 << 20), 1<<31 - 1, -(1 << 31)}
	for _, v := range values {
		w := NewWriter()
		w.WriteInt(v)
		r := NewReader(w.Bytes(), w.Position())
		got, err := r.ReadInt()
		if err != nil {
			t.Fatalf("ReadInt(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("roundtrip(%d) = %d", v, got)
		}
	}
}

func TestSignedLongRoundtrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 62, -(1 << 62)}
	for _, v := range values {
		w := NewWriter()
		w.WriteLong(v)
		r := NewReader(w.Bytes(), w.Position())
		got, err := r.ReadLong()
		if err != nil {
			t.Fatalf("ReadLong(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("roundtrip(%d) = %d", v, got)
		}
	}
}

func TestFloatRoundtrip(t *testing.T) {
	w := NewWriter()
	w.WriteFloat32(3.14159)
	w.WriteFloat64(2.71828182845904523536)
	r := NewReader(w.Bytes(), w.Position())

	f32, err := r.ReadFloat32()
	if err != nil {
		t.Fatalf("ReadFloat32: %v", err)
	}
	if f32 != float32(3.14159) {
		t.Errorf("ReadFloat32 = %v, want %v", f32, float32(3.14159))
	}

	f64, err := r.ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64: %v", err)
	}
	if f64 != 2.71828182845904523536 {
		t.Errorf("ReadFloat64 = %v, want %v", f64, 2.71828182845904523536)
	}
}

func TestStringRoundtrip(t *testing.T) {
	values := []string{"", "a", "hello, tickets!", "unicode: éèê"}
	for _, v := range values {
		w := NewWriter()
		w.WriteString(v)
		r := NewReader(w.Bytes(), w.Position())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q): %v", v, err)
		}
		if got != v {
			t.Errorf("roundtrip(%q) = %q", v, got)
		}
	}
}

func TestEnumRoundtrip(t *testing.T) {
	w := NewWriter()
	w.WriteEnum(0)
	w.WriteEnum(7)
	r := NewReader(w.Bytes(), w.Position())

	first, err := r.ReadEnum()
	if err != nil || first != 0 {
		t.Fatalf("ReadEnum first = %d, %v", first, err)
	}
	second, err := r.ReadEnum()
	if err != nil || second != 7 {
		t.Fatalf("ReadEnum second = %d, %v", second, err)
	}
}

func TestMixedSequenceRoundtrip(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WritePositiveInt(42)
	w.WriteString("ticket")
	w.WriteBool(false)
	w.WriteLong(-12345)

	r := NewReader(w.Bytes(), w.Position())

	b1, _ := r.ReadBool()
	n, _ := r.ReadPositiveInt()
	s, _ := r.ReadString()
	b2, _ := r.ReadBool()
	v, _ := r.ReadLong()

	if !b1 || n != 42 || s != "ticket" || b2 || v != -12345 {
		t.Errorf("mixed roundtrip mismatch: %v %v %v %v %v", b1, n, s, b2, v)
	}
	if r.Remaining() != 0 {
		t.Errorf("expected no remaining bits, got %d", r.Remaining())
	}
}

func TestReadPastEndFails(t *testing.T) {
	w := NewWriter()
	w.WriteBit(1)
	r := NewReader(w.Bytes(), w.Position())
	if _, err := r.ReadBit(); err != nil {
		t.Fatalf("first ReadBit: %v", err)
	}
	if _, err := r.ReadBit(); err != ErrUnderflow {
		t.Errorf("expected ErrUnderflow, got %v", err)
	}
}

func TestXORBits(t *testing.T) {
	a := []byte{0b10101010}
	b := []byte{0b11110000}
	got := XORBits(a, b, 8)
	want := []byte{0b01011010}
	if got[0] != want[0] {
		t.Errorf("XORBits = %08b, want %08b", got[0], want[0])
	}
}

func TestSliceRoundtrip(t *testing.T) {
	w := NewWriter()
	w.WritePositiveInt(1)
	mid := w.Position()
	w.WritePositiveInt(2)
	w.WritePositiveInt(3)

	r := NewReader(w.Bytes(), w.Position())
	sub, err := r.Slice(mid, w.Position())
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	v1, err := sub.ReadPositiveInt()
	if err != nil || v1 != 2 {
		t.Fatalf("sub ReadPositiveInt 1 = %d, %v", v1, err)
	}
	v2, err := sub.ReadPositiveInt()
	if err != nil || v2 != 3 {
		t.Fatalf("sub ReadPositiveInt 2 = %d, %v", v2, err)
	}
}

func BenchmarkWritePositiveInt(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := NewWriter()
		w.WritePositiveInt(uint32(i))
	}
}
