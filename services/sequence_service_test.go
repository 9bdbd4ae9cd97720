package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestNextNumberIncrementsPastMax(t *testing.T) {
	source := &fakeNumberSource{numbers: []string{"SPLV-2025-0001", "SPLV-2025-0003"}}
	gen := NewSequenceGenerator(source)

	got, err := gen.NextNumber("SPLV", "2025")
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if got != "SPLV-2025-0004" {
		t.Errorf("expected SPLV-2025-0004, got %s", got)
	}
}

func TestNextNumberEmptyScopeStartsAtOne(t *testing.T) {
	gen := NewSequenceGenerator(&fakeNumberSource{})

	got, err := gen.NextNumber("SPLV", "2025")
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if got != "SPLV-2025-0001" {
		t.Errorf("expected SPLV-2025-0001, got %s", got)
	}
}

func TestNextNumberIgnoresMalformedEntries(t *testing.T) {
	source := &fakeNumberSource{numbers: []string{
		"SPLV-2025-0002",
		"SPLV-2025-DRAFT",
		"SPLV-2025-",
	}}
	gen := NewSequenceGenerator(source)

	got, err := gen.NextNumber("SPLV", "2025")
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if got != "SPLV-2025-0003" {
		t.Errorf("expected SPLV-2025-0003, got %s", got)
	}
}

func TestNextNumberScopesAreIndependent(t *testing.T) {
	source := &fakeNumberSource{numbers: []string{
		"SPLV-2024-0009",
		"SPHV-2025-0002",
	}}
	gen := NewSequenceGenerator(source)

	got, err := gen.NextNumber("SPLV", "2025")
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if got != "SPLV-2025-0001" {
		t.Errorf("other scopes must not leak in, got %s", got)
	}
}

// Sequential calls that persist each returned number must yield strictly
// increasing values with no repeats.
func TestNextNumberStrictlyIncreasingWhenPersisted(t *testing.T) {
	source := &fakeNumberSource{}
	gen := NewSequenceGenerator(source)

	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 20; i++ {
		got, err := gen.NextNumber("ICS-SPLV", "2025")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if seen[got] {
			t.Fatalf("number %s repeated", got)
		}
		if prev != "" && got <= prev {
			t.Fatalf("numbers not increasing: %s after %s", got, prev)
		}
		seen[got] = true
		prev = got
		source.numbers = append(source.numbers, got)
	}
}

// The existence re-check walks past candidates committed by a racing
// caller between the scan and the check.
func TestNextNumberRecheckSkipsTakenCandidates(t *testing.T) {
	source := &recheckRaceSource{taken: map[string]bool{
		"SPLV-2025-0003": true,
		"SPLV-2025-0004": true,
	}}
	gen := NewSequenceGenerator(source)

	got, err := gen.NextNumber("SPLV", "2025")
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if got != "SPLV-2025-0005" {
		t.Errorf("expected SPLV-2025-0005 after skipping taken candidates, got %s", got)
	}
}

func TestNextNumberExhaustsAttempts(t *testing.T) {
	source := &recheckRaceSource{takenAll: true}
	gen := NewSequenceGenerator(source)

	_, err := gen.NextNumber("SPLV", "2025")
	if !errors.Is(err, ErrExhaustedRetries) {
		t.Fatalf("expected ErrExhaustedRetries, got %v", err)
	}
	if source.checks != defaultMaxAttempts {
		t.Errorf("expected %d existence checks, got %d", defaultMaxAttempts, source.checks)
	}
}

func TestNextNumberPropagatesStoreError(t *testing.T) {
	wantErr := fmt.Errorf("connection refused")
	gen := NewSequenceGenerator(&fakeNumberSource{err: wantErr})

	_, err := gen.NextNumber("SPLV", "2025")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestNextNumberPadsToFourDigits(t *testing.T) {
	source := &fakeNumberSource{numbers: []string{"SPLV-2025-0099"}}
	gen := NewSequenceGenerator(source)

	got, _ := gen.NextNumber("SPLV", "2025")
	if got != "SPLV-2025-0100" {
		t.Errorf("expected SPLV-2025-0100, got %s", got)
	}
}

// recheckRaceSource reports initial max 2, then claims candidates are
// taken to simulate concurrent committers.
type recheckRaceSource struct {
	taken    map[string]bool
	takenAll bool
	checks   int
}

func (s *recheckRaceSource) NumbersLike(pattern string) ([]string, error) {
	return []string{"SPLV-2025-0002"}, nil
}

func (s *recheckRaceSource) NumberExists(number string) (bool, error) {
	s.checks++
	if s.takenAll {
		return true, nil
	}
	return s.taken[number], nil
}
