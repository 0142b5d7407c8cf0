// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keccak

import (
	"bytes"
	"testing"
)

func TestSqueezeDeterministic(t *testing.T) {
	s1 := New()
	s1.Update([]byte("keying secret"))
	out1 := s1.Squeeze(28)

	s2 := New()
	s2.Update([]byte("keying secret"))
	out2 := s2.Squeeze(28)

	if !bytes.Equal(out1, out2) {
		t.Errorf("two sponges absorbing the same input squeezed different output")
	}
}

func TestSqueezeDependsOnInput(t *testing.T) {
	s1 := New()
	s1.Update([]byte("basis one"))
	out1 := s1.Squeeze(28)

	s2 := New()
	s2.Update([]byte("basis two"))
	out2 := s2.Squeeze(28)

	if bytes.Equal(out1, out2) {
		t.Errorf("different inputs squeezed identical output")
	}
}

func TestCloneDivergesAfterPrekey(t *testing.T) {
	prekeyed := New()
	prekeyed.Update([]byte("spec-wide keying secret"))

	basisA := prekeyed.Clone()
	basisA.Update([]byte("basis-a"))
	outA := basisA.Squeeze(28)

	basisB := prekeyed.Clone()
	basisB.Update([]byte("basis-b"))
	outB := basisB.Squeeze(28)

	if bytes.Equal(outA, outB) {
		t.Errorf("clones that absorbed different basis bits produced identical digests")
	}

	// Squeezing from the two clones must not have disturbed the
	// shared prekeyed state: a third clone taken now should match
	// neither outA nor outB but should itself be reproducible.
	basisC1 := prekeyed.Clone()
	basisC1.Update([]byte("basis-c"))
	outC1 := basisC1.Squeeze(28)

	basisC2 := prekeyed.Clone()
	basisC2.Update([]byte("basis-c"))
	outC2 := basisC2.Squeeze(28)

	if !bytes.Equal(outC1, outC2) {
		t.Errorf("prekeyed state was mutated by squeezing earlier clones")
	}
}

func TestSqueezeContinuesStream(t *testing.T) {
	s1 := New()
	s1.Update([]byte("stream"))
	whole := s1.Squeeze(32)

	s2 := New()
	s2.Update([]byte("stream"))
	first := s2.Squeeze(16)
	second := s2.Squeeze(16)

	got := append(append([]byte{}, first...), second...)
	if !bytes.Equal(got, whole) {
		t.Errorf("split squeeze = %x, want %x", got, whole)
	}
}

func TestSqueezeLengthIndependentOfPriorCalls(t *testing.T) {
	s := New()
	s.Update([]byte("x"))
	s.Squeeze(5)
	out := s.Squeeze(7)
	if len(out) != 7 {
		t.Errorf("Squeeze(7) returned %d bytes", len(out))
	}
}
