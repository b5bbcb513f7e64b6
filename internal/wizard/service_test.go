package wizard

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"tourwise/internal/catalog"
	"tourwise/internal/payments"
	"tourwise/internal/pricing"

	"github.com/google/uuid"
)

var testRates = pricing.Rates{TaxRate: 0.19, ChildDiscountFactor: 0.7}

// fakeCatalog serves one package and fixed-price extras.
type fakeCatalog struct {
	pkg         catalog.PackageInfo
	excursionID uuid.UUID
}

func (f *fakeCatalog) PackageByID(ctx context.Context, id uuid.UUID) (*catalog.PackageInfo, error) {
	if id != f.pkg.ID {
		return nil, catalog.ErrPackageNotFound
	}
	pkg := f.pkg
	return &pkg, nil
}

func (f *fakeCatalog) ExtraCharges(ctx context.Context, insurance, carRental bool, excursionIDs []uuid.UUID) ([]pricing.LineItem, error) {
	var items []pricing.LineItem
	if insurance {
		items = append(items, pricing.LineItem{Name: "Travel insurance", Price: 150})
	}
	if carRental {
		items = append(items, pricing.LineItem{Name: "Car rental", Price: 300})
	}
	for _, id := range excursionIDs {
		if id != f.excursionID {
			return nil, fmt.Errorf("unknown excursion in selection")
		}
		items = append(items, pricing.LineItem{Name: "City tour", Price: 80})
	}
	return items, nil
}

// fakeSink records completions and hands back a canned booking.
type fakeSink struct {
	calls int
	last  *DraftBooking
}

func (f *fakeSink) CompleteFromDraft(ctx context.Context, draft *DraftBooking, quote pricing.Quote) (*CompletionResult, error) {
	f.calls++
	f.last = draft
	return &CompletionResult{
		BookingID:     uuid.New().String(),
		BookingNumber: fmt.Sprintf("TRV-%d-%03d", time.Now().Year(), f.calls),
		Status:        "CONFIRMED",
		Total:         quote.Total,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

type fixture struct {
	service Service
	catalog *fakeCatalog
	sink    *fakeSink
	userID  uuid.UUID
}

func newFixture(t *testing.T, processor payments.Processor) *fixture {
	t.Helper()
	cat := &fakeCatalog{
		pkg: catalog.PackageInfo{
			ID:            uuid.New(),
			Name:          "Cartagena Getaway",
			Country:       "Colombia",
			DurationLabel: "5 days / 4 nights",
			PricePerAdult: 1500,
		},
		excursionID: uuid.New(),
	}
	sink := &fakeSink{}
	svc := NewService(NewMemoryStore(0), cat, processor, sink, Config{
		Rates:        testRates,
		MaxPartySize: 10,
		Currency:     "USD",
	})
	return &fixture{service: svc, catalog: cat, sink: sink, userID: uuid.New()}
}

func validPaymentRequest() payments.Request {
	return payments.Request{
		Method: payments.MethodCard,
		Card: &payments.CardDetails{
			Number:     "4111111111111111",
			HolderName: "Maria Gomez",
			Expiry:     "12/30",
			CVV:        "123",
		},
		FiscalInfo: payments.FiscalInfo{
			DocumentNumber: "CC-900123",
			FullName:       "Maria Gomez",
			Email:          "maria@example.com",
		},
		AcceptedTerms:    true,
		AcceptedPolicies: true,
	}
}

// driveToStep walks a fresh session forward to the given step with sensible
// defaults (2 adults, 1 child, the fixture package, insurance on).
func (f *fixture) driveToStep(t *testing.T, target Step) string {
	t.Helper()
	ctx := context.Background()

	view, err := f.service.StartSession(ctx, f.userID, StartSessionRequest{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionID := view.SessionID

	steps := []AdvanceRequest{
		{Search: &SearchPayload{Destination: "Cartagena", Adults: 2, Children: 1}},
		{Package: &PackagePayload{PackageID: f.catalog.pkg.ID.String()}},
		{Travelers: &TravelersPayload{Travelers: []TravelerInput{
			{SeatKey: "adult-0", FirstName: "Maria", LastName: "Gomez", DocumentNumber: "CC-900123"},
			{SeatKey: "adult-1", FirstName: "Jorge", LastName: "Gomez"},
			{SeatKey: "child-0", FirstName: "Emma", LastName: "Gomez", DateOfBirth: "2018-04-02"},
		}}},
		{Extras: &ExtrasPayload{Insurance: true}},
	}

	current := StepSearch
	for _, req := range steps {
		if current == target {
			return sessionID
		}
		view, err = f.service.Advance(ctx, f.userID, sessionID, req)
		if err != nil {
			t.Fatalf("Advance from %s: %v", current, err)
		}
		current = view.Step
	}

	if target == StepPayment {
		return sessionID
	}

	if _, err := f.service.SubmitPayment(ctx, f.userID, sessionID, validPaymentRequest()); err != nil {
		t.Fatalf("SubmitPayment: %v", err)
	}
	if view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{}); err != nil {
		t.Fatalf("Advance to confirmation: %v", err)
	}
	if view.Step != target {
		t.Fatalf("drove to %s, wanted %s", view.Step, target)
	}
	return sessionID
}

func TestWizardHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))

	view, err := f.service.StartSession(ctx, f.userID, StartSessionRequest{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if view.Step != StepSearch {
		t.Fatalf("new session step = %s, want SEARCH", view.Step)
	}
	sessionID := view.SessionID

	// Search: destination + party.
	view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Search: &SearchPayload{Destination: "Cartagena", Adults: 2, Children: 1},
	})
	if err != nil {
		t.Fatalf("Advance(search): %v", err)
	}
	if view.Step != StepPackageDetails {
		t.Fatalf("step = %s, want PACKAGE_DETAILS", view.Step)
	}

	// Package selection derives both pricing figures.
	view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Package: &PackagePayload{PackageID: f.catalog.pkg.ID.String()},
	})
	if err != nil {
		t.Fatalf("Advance(package): %v", err)
	}
	if view.EstimatedTotal == nil || *view.EstimatedTotal != 4050 {
		t.Errorf("estimated total = %v, want 4050", view.EstimatedTotal)
	}
	if view.Quote == nil || view.Quote.Subtotal != 3000 {
		t.Errorf("billed subtotal = %+v, want 3000", view.Quote)
	}

	// Entering travelers builds the roster: adults first, then children.
	if len(view.Draft.Travelers) != 3 {
		t.Fatalf("roster size = %d, want 3", len(view.Draft.Travelers))
	}
	if view.Draft.Travelers[2].SeatKey != "child-0" {
		t.Errorf("last seat = %q, want child-0", view.Draft.Travelers[2].SeatKey)
	}

	view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Travelers: &TravelersPayload{Travelers: []TravelerInput{
			{SeatKey: "adult-0", FirstName: "Maria", LastName: "Gomez"},
			{SeatKey: "adult-1", FirstName: "Jorge", LastName: "Gomez"},
			{SeatKey: "child-0", FirstName: "Emma", LastName: "Gomez"},
		}},
	})
	if err != nil {
		t.Fatalf("Advance(travelers): %v", err)
	}

	// Extras: insurance adds a flat 150 to the billed quote only.
	view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Extras: &ExtrasPayload{Insurance: true},
	})
	if err != nil {
		t.Fatalf("Advance(extras): %v", err)
	}
	if view.Quote.ExtrasTotal != 150 {
		t.Errorf("extras total = %v, want 150", view.Quote.ExtrasTotal)
	}
	if *view.EstimatedTotal != 4050 {
		t.Errorf("estimate changed after extras: %v", *view.EstimatedTotal)
	}
	wantTotal := pricing.Round(3150 * 1.19)
	if view.Quote.Total != wantTotal {
		t.Errorf("billed total = %v, want %v", view.Quote.Total, wantTotal)
	}

	// Payment.
	view, err = f.service.SubmitPayment(ctx, f.userID, sessionID, validPaymentRequest())
	if err != nil {
		t.Fatalf("SubmitPayment: %v", err)
	}
	if !view.Draft.Payment.Approved() {
		t.Fatalf("payment not approved: %+v", view.Draft.Payment)
	}
	if view.Draft.Payment.Amount != wantTotal {
		t.Errorf("charged amount = %v, want %v", view.Draft.Payment.Amount, wantTotal)
	}

	view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{})
	if err != nil {
		t.Fatalf("Advance to confirmation: %v", err)
	}
	if view.Step != StepConfirmation {
		t.Fatalf("step = %s, want CONFIRMATION", view.Step)
	}

	// Complete: sink invoked once, session gone afterwards.
	result, err := f.service.Complete(ctx, f.userID, sessionID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if f.sink.calls != 1 {
		t.Errorf("sink called %d times, want 1", f.sink.calls)
	}
	if result.Status != "CONFIRMED" {
		t.Errorf("status = %q, want CONFIRMED", result.Status)
	}
	if ok, _ := regexp.MatchString(`^[A-Z0-9]+-\d{4}-\d{3}$`, result.BookingNumber); !ok {
		t.Errorf("booking number %q does not match PREFIX-YEAR-NNN", result.BookingNumber)
	}
	if result.Total != wantTotal {
		t.Errorf("booked total = %v, want %v", result.Total, wantTotal)
	}

	if _, err := f.service.GetSession(ctx, f.userID, sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session should be gone after completion, got %v", err)
	}
	if _, err := f.service.Complete(ctx, f.userID, sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Complete should fail with ErrSessionNotFound, got %v", err)
	}
}

func TestWizardGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))

	view, err := f.service.StartSession(ctx, f.userID, StartSessionRequest{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionID := view.SessionID

	// Retreat from the first step is illegal and leaves the session alone.
	if _, err := f.service.Retreat(ctx, f.userID, sessionID); err == nil {
		t.Error("Retreat from SEARCH should fail")
	}
	view, _ = f.service.GetSession(ctx, f.userID, sessionID)
	if view.Step != StepSearch {
		t.Errorf("failed retreat moved the session to %s", view.Step)
	}

	// No package selected: cannot leave package-details.
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Search: &SearchPayload{Adults: 2},
	}); err != nil {
		t.Fatalf("Advance(search): %v", err)
	}
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{}); !errors.Is(err, ErrPackageRequired) {
		t.Errorf("advance without package: got %v, want ErrPackageRequired", err)
	}

	// No payment: cannot leave the payment step or complete.
	sessionID = f.driveToStep(t, StepPayment)
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{}); !errors.Is(err, ErrPaymentRequired) {
		t.Errorf("advance without payment: got %v, want ErrPaymentRequired", err)
	}
	if _, err := f.service.Complete(ctx, f.userID, sessionID); !errors.Is(err, ErrNotAtConfirmation) {
		t.Errorf("Complete before confirmation: got %v, want ErrNotAtConfirmation", err)
	}

	// Payment is only accepted at the payment step.
	view, err = f.service.StartSession(ctx, f.userID, StartSessionRequest{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	var transitionErr *TransitionError
	if _, err := f.service.SubmitPayment(ctx, f.userID, view.SessionID, validPaymentRequest()); !errors.As(err, &transitionErr) {
		t.Errorf("SubmitPayment at SEARCH: got %v, want *TransitionError", err)
	}
}

func TestWizardBackNavigationKeepsDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))
	sessionID := f.driveToStep(t, StepExtras)

	// Walk back to search; everything committed so far must survive.
	view, err := f.service.Retreat(ctx, f.userID, sessionID)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	view, err = f.service.Retreat(ctx, f.userID, sessionID)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	view, err = f.service.Retreat(ctx, f.userID, sessionID)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if view.Step != StepSearch {
		t.Fatalf("step = %s, want SEARCH", view.Step)
	}
	if view.Draft.Destination != "Cartagena" || view.Draft.Package == nil {
		t.Errorf("retreat lost committed draft state: %+v", view.Draft)
	}

	// Forward with empty payloads keeps the committed values.
	view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{})
	if err != nil {
		t.Fatalf("Advance with empty payload: %v", err)
	}
	if view.Draft.Party.Adults != 2 || view.Draft.Party.Children != 1 {
		t.Errorf("party changed on empty advance: %+v", view.Draft.Party)
	}
	view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{})
	if err != nil {
		t.Fatalf("Advance with empty payload: %v", err)
	}
	if view.Draft.Travelers[0].FirstName != "Maria" {
		t.Errorf("traveler details lost on empty advance: %+v", view.Draft.Travelers[0])
	}
}

func TestWizardPartyResizePreservesTravelers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))
	sessionID := f.driveToStep(t, StepExtras)

	// Back to search, grow the party to 3 adults + 1 child.
	for i := 0; i < 3; i++ {
		if _, err := f.service.Retreat(ctx, f.userID, sessionID); err != nil {
			t.Fatalf("Retreat: %v", err)
		}
	}
	view, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Search: &SearchPayload{Destination: "Cartagena", Adults: 3, Children: 1},
	})
	if err != nil {
		t.Fatalf("Advance(resize): %v", err)
	}

	travelers := view.Draft.Travelers
	if len(travelers) != 4 {
		t.Fatalf("roster size = %d, want 4", len(travelers))
	}
	if travelers[0].FirstName != "Maria" || travelers[1].FirstName != "Jorge" {
		t.Errorf("retained adults lost details: %+v", travelers[:2])
	}
	if travelers[2].SeatKey != "adult-2" || travelers[2].FirstName != "" {
		t.Errorf("new adult seat should be blank: %+v", travelers[2])
	}
	if travelers[3].SeatKey != "child-0" || travelers[3].FirstName != "Emma" {
		t.Errorf("child-0 lost details after resize: %+v", travelers[3])
	}
}

func TestWizardExtrasToggleIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))
	sessionID := f.driveToStep(t, StepPayment)

	// Re-commit the same extras selection; the flat insurance charge must not
	// stack.
	if _, err := f.service.Retreat(ctx, f.userID, sessionID); err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	view, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Extras: &ExtrasPayload{Insurance: true},
	})
	if err != nil {
		t.Fatalf("Advance(extras again): %v", err)
	}
	if view.Quote.ExtrasTotal != 150 {
		t.Errorf("extras total after re-commit = %v, want 150", view.Quote.ExtrasTotal)
	}

	// Duplicate excursion IDs collapse to one charge.
	if _, err := f.service.Retreat(ctx, f.userID, sessionID); err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	exc := f.catalog.excursionID.String()
	view, err = f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Extras: &ExtrasPayload{ExcursionIDs: []string{exc, exc}},
	})
	if err != nil {
		t.Fatalf("Advance(duplicate excursions): %v", err)
	}
	if view.Quote.ExtrasTotal != 80 {
		t.Errorf("extras total with duplicate excursion = %v, want 80", view.Quote.ExtrasTotal)
	}
}

func TestWizardValidationRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))

	view, err := f.service.StartSession(ctx, f.userID, StartSessionRequest{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionID := view.SessionID

	var validationErr *ValidationError
	cases := []struct {
		name string
		req  AdvanceRequest
	}{
		{"party too large", AdvanceRequest{Search: &SearchPayload{Adults: 8, Children: 5}}},
		{"negative children", AdvanceRequest{Search: &SearchPayload{Adults: 2, Children: -1}}},
	}
	for _, tc := range cases {
		if _, err := f.service.Advance(ctx, f.userID, sessionID, tc.req); !errors.As(err, &validationErr) {
			t.Errorf("%s: got %v, want *ValidationError", tc.name, err)
		}
	}

	// Return before departure.
	dep := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	ret := dep.AddDate(0, 0, -2)
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Search: &SearchPayload{Adults: 2, DepartureDate: &dep, ReturnDate: &ret},
	}); !errors.As(err, &validationErr) {
		t.Errorf("return before departure: got %v, want *ValidationError", err)
	}

	// A rejected commit leaves the session on the same step.
	view, _ = f.service.GetSession(ctx, f.userID, sessionID)
	if view.Step != StepSearch {
		t.Errorf("rejected commit moved the session to %s", view.Step)
	}

	// Unknown seat key on the travelers step.
	sessionID = f.driveToStep(t, StepTravelers)
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Travelers: &TravelersPayload{Travelers: []TravelerInput{{SeatKey: "adult-9", FirstName: "X"}}},
	}); !errors.As(err, &validationErr) {
		t.Errorf("unknown seat key: got %v, want *ValidationError", err)
	}
}

func TestWizardDeclinedPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 1)) // always declines
	sessionID := f.driveToStep(t, StepPayment)

	_, err := f.service.SubmitPayment(ctx, f.userID, sessionID, validPaymentRequest())
	if !errors.Is(err, payments.ErrDeclined) {
		t.Fatalf("got %v, want ErrDeclined", err)
	}

	// The decline is not recorded as a payment; the step guard still holds.
	view, err := f.service.GetSession(ctx, f.userID, sessionID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if view.Draft.Payment != nil {
		t.Errorf("declined charge recorded on draft: %+v", view.Draft.Payment)
	}
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{}); !errors.Is(err, ErrPaymentRequired) {
		t.Errorf("advance after decline: got %v, want ErrPaymentRequired", err)
	}
}

func TestWizardEditAfterPaymentVoidsCharge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))
	sessionID := f.driveToStep(t, StepConfirmation)

	// Back from confirmation to extras, add a car rental: the billed total
	// grows past what was charged.
	for i := 0; i < 2; i++ {
		if _, err := f.service.Retreat(ctx, f.userID, sessionID); err != nil {
			t.Fatalf("Retreat: %v", err)
		}
	}
	view, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Extras: &ExtrasPayload{Insurance: true, CarRental: true},
	})
	if err != nil {
		t.Fatalf("Advance(extras): %v", err)
	}

	// The stale charge is gone; the payment guard holds again.
	if view.Draft.Payment != nil {
		t.Errorf("stale payment survived the edit: %+v", view.Draft.Payment)
	}
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{}); !errors.Is(err, ErrPaymentRequired) {
		t.Errorf("advance after voided payment: got %v, want ErrPaymentRequired", err)
	}

	// A fresh charge covers the new total and the booking matches it.
	wantTotal := pricing.Round(3450 * 1.19)
	view, err = f.service.SubmitPayment(ctx, f.userID, sessionID, validPaymentRequest())
	if err != nil {
		t.Fatalf("SubmitPayment: %v", err)
	}
	if view.Draft.Payment.Amount != wantTotal {
		t.Errorf("recharged amount = %v, want %v", view.Draft.Payment.Amount, wantTotal)
	}
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{}); err != nil {
		t.Fatalf("Advance to confirmation: %v", err)
	}
	result, err := f.service.Complete(ctx, f.userID, sessionID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.Total != wantTotal {
		t.Errorf("booked total = %v, want %v (the amount actually charged)", result.Total, wantTotal)
	}
}

func TestWizardUnchangedEditKeepsPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))
	sessionID := f.driveToStep(t, StepConfirmation)

	// Re-committing the same selection leaves the total unchanged, so the
	// recorded charge stays valid and no second payment is demanded.
	for i := 0; i < 2; i++ {
		if _, err := f.service.Retreat(ctx, f.userID, sessionID); err != nil {
			t.Fatalf("Retreat: %v", err)
		}
	}
	view, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Extras: &ExtrasPayload{Insurance: true},
	})
	if err != nil {
		t.Fatalf("Advance(same extras): %v", err)
	}
	if view.Draft.Payment == nil || !view.Draft.Payment.Approved() {
		t.Fatalf("unchanged edit voided the payment: %+v", view.Draft.Payment)
	}
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{}); err != nil {
		t.Fatalf("Advance back to confirmation: %v", err)
	}
	if _, err := f.service.Complete(ctx, f.userID, sessionID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestWizardWrongStepPayloadRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))

	view, err := f.service.StartSession(ctx, f.userID, StartSessionRequest{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionID := view.SessionID

	// An extras payload at the search step is a client bug, not a no-op.
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Extras: &ExtrasPayload{Insurance: true},
	}); !errors.Is(err, ErrWrongStepPayload) {
		t.Errorf("extras payload at SEARCH: got %v, want ErrWrongStepPayload", err)
	}
	view, _ = f.service.GetSession(ctx, f.userID, sessionID)
	if view.Step != StepSearch {
		t.Errorf("rejected payload moved the session to %s", view.Step)
	}

	sessionID = f.driveToStep(t, StepExtras)
	if _, err := f.service.Advance(ctx, f.userID, sessionID, AdvanceRequest{
		Search: &SearchPayload{Adults: 4},
	}); !errors.Is(err, ErrWrongStepPayload) {
		t.Errorf("search payload at EXTRAS: got %v, want ErrWrongStepPayload", err)
	}
}

func TestWizardSessionOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))

	view, err := f.service.StartSession(ctx, f.userID, StartSessionRequest{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	stranger := uuid.New()
	if _, err := f.service.GetSession(ctx, stranger, view.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("foreign GetSession: got %v, want ErrSessionNotFound", err)
	}
	if err := f.service.Close(ctx, stranger, view.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("foreign Close: got %v, want ErrSessionNotFound", err)
	}

	// The owner can still close it.
	if err := f.service.Close(ctx, f.userID, view.SessionID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := f.service.GetSession(ctx, f.userID, view.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session should be gone after Close, got %v", err)
	}
}

func TestWizardStartWithPackage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payments.NewSimulatedProcessor(0, 0))

	view, err := f.service.StartSession(ctx, f.userID, StartSessionRequest{
		PackageID: f.catalog.pkg.ID.String(),
	})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if view.Draft.Package == nil || view.Draft.Package.Name != "Cartagena Getaway" {
		t.Fatalf("package not pre-seeded: %+v", view.Draft.Package)
	}
	if view.Draft.Destination != "Cartagena Getaway" {
		t.Errorf("destination = %q, want package name", view.Draft.Destination)
	}
	// Pre-seeded sessions still start at search with the default party.
	if view.Step != StepSearch {
		t.Errorf("step = %s, want SEARCH", view.Step)
	}
	if view.EstimatedTotal == nil || *view.EstimatedTotal != 1500 {
		t.Errorf("estimate for default party = %v, want 1500", view.EstimatedTotal)
	}
}
