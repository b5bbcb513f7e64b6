package wizard

// Step is one stage of the booking wizard. The order is strictly linear and
// encoded in the transition tables below; anything not listed there is an
// illegal move.
type Step string

const (
	StepSearch         Step = "SEARCH"
	StepPackageDetails Step = "PACKAGE_DETAILS"
	StepTravelers      Step = "TRAVELERS"
	StepExtras         Step = "EXTRAS"
	StepPayment        Step = "PAYMENT"
	StepConfirmation   Step = "CONFIRMATION" // terminal
)

// forward and backward are the explicit transition tables. Confirmation has
// no outgoing edges: the only exits are Complete and Close.
var forward = map[Step]Step{
	StepSearch:         StepPackageDetails,
	StepPackageDetails: StepTravelers,
	StepTravelers:      StepExtras,
	StepExtras:         StepPayment,
	StepPayment:        StepConfirmation,
}

var backward = map[Step]Step{
	StepPackageDetails: StepSearch,
	StepTravelers:      StepPackageDetails,
	StepExtras:         StepTravelers,
	StepPayment:        StepExtras,
}

// IsValid checks if the step is a known wizard stage.
func (s Step) IsValid() bool {
	switch s {
	case StepSearch, StepPackageDetails, StepTravelers, StepExtras, StepPayment, StepConfirmation:
		return true
	}
	return false
}

// String returns the string representation of Step.
func (s Step) String() string {
	return string(s)
}

// IsTerminal reports whether the step has no outgoing transitions.
func (s Step) IsTerminal() bool {
	return s == StepConfirmation
}

// Next returns the step after s, or an error if s is terminal or unknown.
func (s Step) Next() (Step, error) {
	next, ok := forward[s]
	if !ok {
		return s, &TransitionError{From: s, Direction: "advance"}
	}
	return next, nil
}

// Prev returns the step before s, or an error if s is the first step,
// terminal, or unknown.
func (s Step) Prev() (Step, error) {
	prev, ok := backward[s]
	if !ok {
		return s, &TransitionError{From: s, Direction: "retreat"}
	}
	return prev, nil
}
