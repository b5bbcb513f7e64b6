package wizard

import (
	"time"

	"tourwise/internal/pricing"
)

// SessionView is what the client sees after every wizard operation: the
// current step, the accumulated draft, and freshly derived pricing. Pricing
// is recomputed on every read, never stored on the draft.
type SessionView struct {
	SessionID string        `json:"session_id"`
	Step      Step          `json:"step"`
	Draft     *DraftBooking `json:"draft"`

	// EstimatedTotal is the quick child-discounted figure shown while
	// browsing; Quote is the billed breakdown. Both are nil until a package
	// is selected.
	EstimatedTotal *float64       `json:"estimated_total,omitempty"`
	Quote          *pricing.Quote `json:"quote,omitempty"`
}

// CompletionResult is handed back when the confirmation step completes and
// the booking has been persisted.
type CompletionResult struct {
	BookingID     string    `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}
