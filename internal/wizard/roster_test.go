package wizard

import "testing"

func TestBuildRoster(t *testing.T) {
	roster := BuildRoster(2, 1)
	if len(roster) != 3 {
		t.Fatalf("expected 3 travelers, got %d", len(roster))
	}

	wantKeys := []string{"adult-0", "adult-1", "child-0"}
	for i, key := range wantKeys {
		if roster[i].SeatKey != key {
			t.Errorf("seat %d: key = %q, want %q", i, roster[i].SeatKey, key)
		}
		if roster[i].Seat != i {
			t.Errorf("seat %d: position = %d, want %d", i, roster[i].Seat, i)
		}
	}
	if roster[0].IsChild || roster[1].IsChild {
		t.Error("adult seats flagged as child")
	}
	if !roster[2].IsChild {
		t.Error("child seat not flagged as child")
	}
}

func TestBuildRosterClampsNegative(t *testing.T) {
	if got := BuildRoster(-1, -2); len(got) != 0 {
		t.Errorf("expected empty roster for negative counts, got %d seats", len(got))
	}
}

func TestReconcileRosterPreservesRetainedSeats(t *testing.T) {
	roster := BuildRoster(2, 2)
	roster[1].FirstName = "Ana"
	roster[1].DocumentNumber = "CC-100"
	roster[2].FirstName = "Luis" // child-0
	roster[3].FirstName = "Sara" // child-1

	// Shrink to 2 adults, 1 child: only child-1 is dropped.
	roster = ReconcileRoster(roster, 2, 1)
	if len(roster) != 3 {
		t.Fatalf("expected 3 travelers after shrink, got %d", len(roster))
	}
	if roster[1].FirstName != "Ana" || roster[1].DocumentNumber != "CC-100" {
		t.Errorf("adult-1 details lost on shrink: %+v", roster[1])
	}
	if roster[2].FirstName != "Luis" {
		t.Errorf("child-0 details lost on shrink: %+v", roster[2])
	}

	// Grow to 3 adults, 1 child: new adult-2 appears blank, positions shift.
	roster = ReconcileRoster(roster, 3, 1)
	if len(roster) != 4 {
		t.Fatalf("expected 4 travelers after grow, got %d", len(roster))
	}
	if roster[2].SeatKey != "adult-2" || roster[2].FirstName != "" {
		t.Errorf("new adult seat should be blank: %+v", roster[2])
	}
	if roster[3].SeatKey != "child-0" || roster[3].FirstName != "Luis" {
		t.Errorf("child-0 should keep details at its new position: %+v", roster[3])
	}
	if roster[3].Seat != 3 {
		t.Errorf("child-0 position = %d, want 3", roster[3].Seat)
	}
}

func TestReconcileRosterRoundTrip(t *testing.T) {
	roster := BuildRoster(1, 1)
	roster[0].FirstName = "Marta"
	roster[1].FirstName = "Leo"

	// Shrinking away the child and growing back loses the child's details
	// (the seat was genuinely removed) but keeps the adult's.
	roster = ReconcileRoster(roster, 1, 0)
	roster = ReconcileRoster(roster, 1, 1)

	if roster[0].FirstName != "Marta" {
		t.Errorf("adult-0 details lost: %+v", roster[0])
	}
	if roster[1].FirstName != "" {
		t.Errorf("re-added child seat should be blank: %+v", roster[1])
	}
}
