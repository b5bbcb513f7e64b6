package wizard

import (
	"time"

	"tourwise/internal/catalog"
	"tourwise/internal/payments"

	"github.com/google/uuid"
)

// PartySize is the adult/child headcount for a booking.
type PartySize struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Total returns the number of seats in the party.
func (p PartySize) Total() int {
	return p.Adults + p.Children
}

// Traveler is one seat in the booking. SeatKey is a stable role key
// ("adult-0", "child-2"): when the party size changes, retained seats keep
// their key and therefore their user-entered details.
type Traveler struct {
	SeatKey        string `json:"seat_key"`
	Seat           int    `json:"seat"` // 0-based position, adults first
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"` // YYYY-MM-DD
	DocumentNumber string `json:"document_number"`
	IsChild        bool   `json:"is_child"` // fixed at seat creation
}

// ExtrasSelection is the per-draft add-on state. Insurance and car rental are
// single toggles; excursions are a set.
type ExtrasSelection struct {
	Insurance    bool        `json:"insurance"`
	CarRental    bool        `json:"car_rental"`
	ExcursionIDs []uuid.UUID `json:"excursion_ids"`
}

// DraftBooking is the single mutable record a wizard session accumulates. It
// is owned by exactly one session, serialized into the session store between
// requests, and discarded on completion or close.
type DraftBooking struct {
	SessionID string    `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`
	Step      Step      `json:"step"`

	Destination   string               `json:"destination"`
	DepartureDate *time.Time           `json:"departure_date,omitempty"`
	ReturnDate    *time.Time           `json:"return_date,omitempty"`
	Party         PartySize            `json:"party"`
	Package       *catalog.PackageInfo `json:"package,omitempty"`
	Travelers     []Traveler           `json:"travelers"`
	Extras        ExtrasSelection      `json:"extras"`
	Payment       *payments.Result     `json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft creates a fresh draft at the search step with the minimum party.
func NewDraft(userID uuid.UUID) *DraftBooking {
	now := time.Now().UTC()
	return &DraftBooking{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Step:      StepSearch,
		Party:     PartySize{Adults: 1},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
