package bookings

import (
	"context"
	"testing"
	"time"
)

// stubSequencer counts in memory, per year.
type stubSequencer struct {
	counts map[int]int64
}

func (s *stubSequencer) Next(ctx context.Context, year int) (int64, error) {
	if s.counts == nil {
		s.counts = make(map[int]int64)
	}
	s.counts[year]++
	return s.counts[year], nil
}

func TestReferenceGeneratorFormat(t *testing.T) {
	gen := NewReferenceGenerator("TRV", &stubSequencer{})
	gen.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

	ref, err := gen.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ref != "TRV-2026-001" {
		t.Errorf("first reference = %q, want TRV-2026-001", ref)
	}

	ref, _ = gen.Next(context.Background())
	if ref != "TRV-2026-002" {
		t.Errorf("second reference = %q, want TRV-2026-002", ref)
	}
}

func TestReferenceGeneratorYearRollover(t *testing.T) {
	seq := &stubSequencer{}
	gen := NewReferenceGenerator("TRV", seq)

	gen.now = func() time.Time { return time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC) }
	for i := 0; i < 3; i++ {
		if _, err := gen.Next(context.Background()); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	// Counter restarts with the new year.
	gen.now = func() time.Time { return time.Date(2027, 1, 1, 0, 1, 0, 0, time.UTC) }
	ref, err := gen.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ref != "TRV-2027-001" {
		t.Errorf("reference after rollover = %q, want TRV-2027-001", ref)
	}
}

func TestReferenceGeneratorWidensPast999(t *testing.T) {
	seq := &stubSequencer{counts: map[int]int64{2026: 999}}
	gen := NewReferenceGenerator("TRV", seq)
	gen.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	ref, err := gen.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ref != "TRV-2026-1000" {
		t.Errorf("reference past 999 = %q, want TRV-2026-1000", ref)
	}
}

func TestReferenceGeneratorDefaultPrefix(t *testing.T) {
	gen := NewReferenceGenerator("", &stubSequencer{})
	gen.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	ref, err := gen.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ref != "TRV-2026-001" {
		t.Errorf("reference with empty prefix = %q, want TRV-2026-001", ref)
	}
}
