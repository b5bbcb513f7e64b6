package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound covers missing, expired and foreign sessions alike.
	ErrSessionNotFound = errors.New("wizard session not found or expired")

	// ErrPackageRequired is the guard on leaving the package-details step.
	ErrPackageRequired = errors.New("a package must be selected before continuing")

	// ErrPaymentRequired is the guard on leaving the payment step.
	ErrPaymentRequired = errors.New("payment must be completed before continuing")

	// ErrNotAtConfirmation is returned when Complete is called early.
	ErrNotAtConfirmation = errors.New("booking can only be completed from the confirmation step")

	// ErrWrongStepPayload is returned when a step payload does not match the
	// step it is being committed to.
	ErrWrongStepPayload = errors.New("payload does not match the current step")
)

// TransitionError marks an illegal move through the step table. The UI is
// expected to prevent these by disabling controls; hitting one here is a
// programmer error on the client side.
type TransitionError struct {
	From      Step
	Direction string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from step %s", e.Direction, e.From)
}

// ValidationError reports a rejected step commit (bad party size, date order,
// unknown excursion). The session is left untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
