package wizard

import "time"

// StartSessionRequest opens a wizard session, optionally pre-seeded with a
// package picked from the catalog browse view.
type StartSessionRequest struct {
	PackageID string `json:"package_id" binding:"omitempty,uuid"`
}

// SearchPayload commits the search step: destination, travel window and party
// size.
type SearchPayload struct {
	Destination   string     `json:"destination"`
	DepartureDate *time.Time `json:"departure_date"`
	ReturnDate    *time.Time `json:"return_date"`
	Adults        int        `json:"adults" binding:"omitempty,min=1"`
	Children      int        `json:"children" binding:"omitempty,min=0"`
}

// PackagePayload commits the package-details step.
type PackagePayload struct {
	PackageID string `json:"package_id" binding:"required,uuid"`
}

// TravelerInput carries the user-entered details for one seat.
type TravelerInput struct {
	SeatKey        string `json:"seat_key" binding:"required"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	DocumentNumber string `json:"document_number"`
}

// TravelersPayload commits the travelers step.
type TravelersPayload struct {
	Travelers []TravelerInput `json:"travelers" binding:"dive"`
}

// ExtrasPayload commits the extras step.
type ExtrasPayload struct {
	Insurance    bool     `json:"insurance"`
	CarRental    bool     `json:"car_rental"`
	ExcursionIDs []string `json:"excursion_ids" binding:"dive,uuid"`
}

// AdvanceRequest carries the working copy of the current step. Exactly the
// field matching the session's step is consumed; a nil field means "keep
// what was committed before" (back navigation then forward without edits).
type AdvanceRequest struct {
	Search    *SearchPayload    `json:"search,omitempty"`
	Package   *PackagePayload   `json:"package,omitempty"`
	Travelers *TravelersPayload `json:"travelers,omitempty"`
	Extras    *ExtrasPayload    `json:"extras,omitempty"`
}

// matchesStep rejects a request carrying a payload for a step other than the
// session's current one. Empty requests always pass.
func (r AdvanceRequest) matchesStep(step Step) error {
	if r.Search != nil && step != StepSearch {
		return ErrWrongStepPayload
	}
	if r.Package != nil && step != StepPackageDetails {
		return ErrWrongStepPayload
	}
	if r.Travelers != nil && step != StepTravelers {
		return ErrWrongStepPayload
	}
	if r.Extras != nil && step != StepExtras {
		return ErrWrongStepPayload
	}
	return nil
}
