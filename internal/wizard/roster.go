package wizard

import "fmt"

// seatKey builds the stable role key for a seat.
func seatKey(isChild bool, roleIndex int) string {
	if isChild {
		return fmt.Sprintf("child-%d", roleIndex)
	}
	return fmt.Sprintf("adult-%d", roleIndex)
}

// BuildRoster produces exactly adults+children travelers, adults first. Seat
// roles are fixed at creation: a seat created as a child seat stays a child
// seat for its lifetime.
func BuildRoster(adults, children int) []Traveler {
	if adults < 0 {
		adults = 0
	}
	if children < 0 {
		children = 0
	}

	roster := make([]Traveler, 0, adults+children)
	for i := 0; i < adults; i++ {
		roster = append(roster, Traveler{
			SeatKey: seatKey(false, i),
			Seat:    i,
			IsChild: false,
		})
	}
	for i := 0; i < children; i++ {
		roster = append(roster, Traveler{
			SeatKey: seatKey(true, i),
			Seat:    adults + i,
			IsChild: true,
		})
	}
	return roster
}

// ReconcileRoster resizes an existing roster to the given party, keeping
// user-entered details for retained seats. Seats are matched by role key, so
// shrinking the party drops only the edge seats and growing it appends blank
// ones; interior edits survive.
func ReconcileRoster(existing []Traveler, adults, children int) []Traveler {
	byKey := make(map[string]Traveler, len(existing))
	for _, t := range existing {
		byKey[t.SeatKey] = t
	}

	roster := BuildRoster(adults, children)
	for i := range roster {
		if prev, ok := byKey[roster[i].SeatKey]; ok {
			seat := roster[i].Seat
			roster[i] = prev
			roster[i].Seat = seat
		}
	}
	return roster
}
