package wizard

import (
	"errors"
	"testing"
)

func TestStepOrder(t *testing.T) {
	want := []Step{StepSearch, StepPackageDetails, StepTravelers, StepExtras, StepPayment, StepConfirmation}

	step := StepSearch
	for i := 1; i < len(want); i++ {
		next, err := step.Next()
		if err != nil {
			t.Fatalf("Next() from %s: unexpected error %v", step, err)
		}
		if next != want[i] {
			t.Fatalf("Next() from %s = %s, want %s", step, next, want[i])
		}
		step = next
	}

	// Walking back lands on the same steps in reverse.
	for i := len(want) - 2; i > 0; i-- {
		prev, err := step.Prev()
		if err != nil {
			t.Fatalf("Prev() from %s: unexpected error %v", step, err)
		}
		if prev != want[i-1] {
			t.Fatalf("Prev() from %s = %s, want %s", step, prev, want[i-1])
		}
		step = prev
	}
}

func TestStepBoundaries(t *testing.T) {
	if _, err := StepSearch.Prev(); err == nil {
		t.Error("Prev() from the first step should fail")
	}
	if _, err := StepConfirmation.Next(); err == nil {
		t.Error("Next() from the terminal step should fail")
	}
	if _, err := StepConfirmation.Prev(); err == nil {
		t.Error("Prev() from the terminal step should fail")
	}

	_, err := Step("CHECKOUT").Next()
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Errorf("Next() on unknown step: got %v, want *TransitionError", err)
	}
}

func TestStepIsTerminal(t *testing.T) {
	for _, s := range []Step{StepSearch, StepPackageDetails, StepTravelers, StepExtras, StepPayment} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if !StepConfirmation.IsTerminal() {
		t.Error("CONFIRMATION should be terminal")
	}
}

func TestStepIsValid(t *testing.T) {
	if !StepPayment.IsValid() {
		t.Error("PAYMENT should be valid")
	}
	if Step("checkout").IsValid() {
		t.Error("lowercase/unknown step should be invalid")
	}
}
