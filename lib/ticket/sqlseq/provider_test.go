// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sqlseq_test

import (
	"path/filepath"
	"testing"

	"github.com/originmark/tickets/lib/ticket"
	"github.com/originmark/tickets/lib/ticket/sqlseq"
)

func testBasis(specIndex int, origin byte) ticket.Basis {
	return ticket.Basis{
		SpecIndex:       specIndex,
		OpenOriginBits:  []byte{origin},
		OpenOriginNBits: 8,
		RawValues:       []any{origin},
	}
}

func openTestProvider(t *testing.T) *sqlseq.Provider {
	t.Helper()
	p, err := sqlseq.Open(sqlseq.Config{
		Path: filepath.Join(t.TempDir(), "sequences.db"),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := p.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return p
}

func TestNextAllocatesMonotonicSequence(t *testing.T) {
	p := openTestProvider(t)
	seq := p.GetSequence(testBasis(0, 1))

	for want := int64(0); want < 5; want++ {
		got, err := seq.Next(1000)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got != want {
			t.Errorf("Next(1000) = %d, want %d", got, want)
		}
	}
}

func TestNextResetsOnNewerTimestamp(t *testing.T) {
	p := openTestProvider(t)
	seq := p.GetSequence(testBasis(0, 2))

	if _, err := seq.Next(1000); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := seq.Next(1000); err != nil {
		t.Fatalf("Next: %v", err)
	}

	got, err := seq.Next(2000)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != 0 {
		t.Errorf("Next(2000) after two Next(1000) calls = %d, want 0 (reset)", got)
	}
}

func TestIsUnsequencedOnFreshBasis(t *testing.T) {
	p := openTestProvider(t)
	seq := p.GetSequence(testBasis(0, 3))

	if !seq.IsUnsequenced(1000) {
		t.Error("a basis with no row yet should report unsequenced")
	}

	if _, err := seq.Next(1000); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if seq.IsUnsequenced(1000) {
		t.Error("a basis just sequenced at ts should not report unsequenced at the same ts")
	}
	if !seq.IsUnsequenced(2000) {
		t.Error("a basis should report unsequenced for a strictly newer ts than it has seen")
	}
}

func TestDurabilityAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequences.db")
	basis := testBasis(0, 4)

	p1, err := sqlseq.Open(sqlseq.Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	seq1 := p1.GetSequence(basis)
	for i := 0; i < 3; i++ {
		if _, err := seq1.Next(500); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if err := p1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p2, err := sqlseq.Open(sqlseq.Config{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p2.Close()

	seq2 := p2.GetSequence(basis)
	got, err := seq2.Next(500)
	if err != nil {
		t.Fatalf("Next after reopen: %v", err)
	}
	if got != 3 {
		t.Errorf("Next(500) after reopen = %d, want 3 (continuing persisted counter)", got)
	}
}

func TestDistinctBasesAreIndependent(t *testing.T) {
	p := openTestProvider(t)
	a := p.GetSequence(testBasis(0, 10))
	b := p.GetSequence(testBasis(0, 11))

	for i := 0; i < 3; i++ {
		if _, err := a.Next(1000); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	got, err := b.Next(1000)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != 0 {
		t.Errorf("a fresh, independent basis returned %d, want 0", got)
	}
}
