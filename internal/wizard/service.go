package wizard

import (
	"context"
	"fmt"
	"time"

	"tourwise/internal/catalog"
	"tourwise/internal/payments"
	"tourwise/internal/pricing"
	"tourwise/pkg/logger"

	"github.com/google/uuid"
)

// CatalogSource is the read-only slice of the catalog the wizard needs.
// catalog.Service satisfies it; the narrow interface keeps the wizard
// testable without a database.
type CatalogSource interface {
	PackageByID(ctx context.Context, id uuid.UUID) (*catalog.PackageInfo, error)
	ExtraCharges(ctx context.Context, insurance, carRental bool, excursionIDs []uuid.UUID) ([]pricing.LineItem, error)
}

// BookingSink receives the finished draft exactly once per session. The
// bookings package implements it; persistence is the sink's job, not the
// wizard's.
type BookingSink interface {
	CompleteFromDraft(ctx context.Context, draft *DraftBooking, quote pricing.Quote) (*CompletionResult, error)
}

// Config holds the wizard's pricing and party limits.
type Config struct {
	Rates        pricing.Rates
	MaxPartySize int
	Currency     string
}

// Service interface defines the wizard session operations.
type Service interface {
	StartSession(ctx context.Context, userID uuid.UUID, req StartSessionRequest) (*SessionView, error)
	GetSession(ctx context.Context, userID uuid.UUID, sessionID string) (*SessionView, error)
	Advance(ctx context.Context, userID uuid.UUID, sessionID string, req AdvanceRequest) (*SessionView, error)
	Retreat(ctx context.Context, userID uuid.UUID, sessionID string) (*SessionView, error)
	SubmitPayment(ctx context.Context, userID uuid.UUID, sessionID string, req payments.Request) (*SessionView, error)
	Complete(ctx context.Context, userID uuid.UUID, sessionID string) (*CompletionResult, error)
	Close(ctx context.Context, userID uuid.UUID, sessionID string) error
}

type service struct {
	store     Store
	catalog   CatalogSource
	processor payments.Processor
	sink      BookingSink
	cfg       Config
	log       *logger.Logger
}

// NewService creates a new wizard service instance.
func NewService(store Store, catalog CatalogSource, processor payments.Processor, sink BookingSink, cfg Config) Service {
	if cfg.MaxPartySize <= 0 {
		cfg.MaxPartySize = 10
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return &service{
		store:     store,
		catalog:   catalog,
		processor: processor,
		sink:      sink,
		cfg:       cfg,
		log:       logger.GetDefault(),
	}
}

// StartSession opens a new wizard session for the user, optionally pre-seeded
// with a package chosen from the catalog browse view.
func (s *service) StartSession(ctx context.Context, userID uuid.UUID, req StartSessionRequest) (*SessionView, error) {
	draft := NewDraft(userID)

	if req.PackageID != "" {
		pkgID, err := uuid.Parse(req.PackageID)
		if err != nil {
			return nil, &ValidationError{Field: "package_id", Message: "must be a valid UUID"}
		}
		pkg, err := s.catalog.PackageByID(ctx, pkgID)
		if err != nil {
			return nil, fmt.Errorf("failed to pre-seed package: %w", err)
		}
		draft.Package = pkg
		draft.Destination = pkg.Name
	}

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}

	s.log.LogWizardSessionStarted(ctx, draft.SessionID, userID.String())
	return s.viewOf(ctx, draft)
}

// GetSession returns the current step, draft and derived pricing.
func (s *service) GetSession(ctx context.Context, userID uuid.UUID, sessionID string) (*SessionView, error) {
	draft, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.viewOf(ctx, draft)
}

// Advance commits the current step's working copy into the draft and moves to
// the next step. The commit happens before the transition so that back
// navigation always shows previously entered values.
func (s *service) Advance(ctx context.Context, userID uuid.UUID, sessionID string, req AdvanceRequest) (*SessionView, error) {
	draft, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := req.matchesStep(draft.Step); err != nil {
		return nil, err
	}

	next, err := draft.Step.Next()
	if err != nil {
		return nil, err
	}

	switch draft.Step {
	case StepSearch:
		err = s.commitSearch(draft, req.Search)
	case StepPackageDetails:
		err = s.commitPackage(ctx, draft, req.Package)
	case StepTravelers:
		err = s.commitTravelers(draft, req.Travelers)
	case StepExtras:
		err = s.commitExtras(ctx, draft, req.Extras)
	case StepPayment:
		if !draft.Payment.Approved() {
			err = ErrPaymentRequired
		}
	}
	if err != nil {
		return nil, err
	}

	// An edit behind the payment step can change the billed total. A recorded
	// charge that no longer matches the current quote is void; the payment
	// step will demand a fresh one.
	if draft.Step != StepPayment && draft.Payment.Approved() {
		quote, qerr := s.quoteFor(ctx, draft)
		if qerr != nil {
			return nil, qerr
		}
		if quote == nil || draft.Payment.Amount != quote.Total {
			s.log.LogWizardPaymentVoided(ctx, draft.SessionID, draft.Payment.TransactionID)
			draft.Payment = nil
		}
	}

	draft.Step = next
	if next == StepTravelers {
		// Lazy roster build; reconcile keeps details of retained seats.
		draft.Travelers = ReconcileRoster(draft.Travelers, draft.Party.Adults, draft.Party.Children)
	}
	draft.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.viewOf(ctx, draft)
}

// Retreat moves one step back without touching the committed draft.
func (s *service) Retreat(ctx context.Context, userID uuid.UUID, sessionID string) (*SessionView, error) {
	draft, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	prev, err := draft.Step.Prev()
	if err != nil {
		return nil, err
	}

	draft.Step = prev
	draft.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.viewOf(ctx, draft)
}

// SubmitPayment validates the payment request, charges the (simulated)
// processor for the billed total, and records the result on the draft. The
// session stays on the payment step; a subsequent Advance enters confirmation.
func (s *service) SubmitPayment(ctx context.Context, userID uuid.UUID, sessionID string, req payments.Request) (*SessionView, error) {
	draft, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != StepPayment {
		return nil, &TransitionError{From: draft.Step, Direction: "submit payment"}
	}
	if draft.Payment.Approved() {
		return nil, &ValidationError{Field: "payment", Message: "payment already completed for this session"}
	}

	if err := payments.Validate(req); err != nil {
		return nil, err
	}

	quote, err := s.quoteFor(ctx, draft)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, ErrPackageRequired
	}

	result, err := s.processor.Charge(ctx, req, quote.Total, s.cfg.Currency)
	if err != nil {
		return nil, err
	}

	draft.Payment = result
	draft.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}

	s.log.LogWizardPaymentRecorded(ctx, draft.SessionID, result.TransactionID, result.Amount)
	return s.viewOf(ctx, draft)
}

// Complete finishes the wizard from the confirmation step: the draft is
// handed to the booking sink and the session is discarded. The sink is
// invoked at most once per session; a sink failure keeps the session alive
// for a retry.
func (s *service) Complete(ctx context.Context, userID uuid.UUID, sessionID string) (*CompletionResult, error) {
	draft, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != StepConfirmation {
		return nil, ErrNotAtConfirmation
	}
	if !draft.Payment.Approved() {
		return nil, ErrPaymentRequired
	}

	quote, err := s.quoteFor(ctx, draft)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, ErrPackageRequired
	}
	if draft.Payment.Amount != quote.Total {
		// The draft changed after the charge; never book more (or less) than
		// what was actually paid.
		return nil, ErrPaymentRequired
	}

	result, err := s.sink.CompleteFromDraft(ctx, draft, *quote)
	if err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		// The booking is already persisted; the orphan session will expire.
		s.log.WithError(err).Warn("failed to delete completed wizard session")
	}

	s.log.LogWizardSessionCompleted(ctx, sessionID, result.BookingNumber)
	return result, nil
}

// Close discards the in-progress draft with no side effects.
func (s *service) Close(ctx context.Context, userID uuid.UUID, sessionID string) error {
	if _, err := s.load(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.store.Delete(ctx, sessionID)
}

// load fetches a session and checks ownership. Foreign sessions look exactly
// like missing ones.
func (s *service) load(ctx context.Context, userID uuid.UUID, sessionID string) (*DraftBooking, error) {
	draft, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return draft, nil
}

func (s *service) commitSearch(draft *DraftBooking, p *SearchPayload) error {
	if p != nil {
		adults, children := p.Adults, p.Children
		if adults == 0 && children == 0 {
			// Payload without counts keeps the committed party.
			adults, children = draft.Party.Adults, draft.Party.Children
		}
		if adults < 1 {
			return &ValidationError{Field: "adults", Message: "at least one adult is required"}
		}
		if children < 0 {
			return &ValidationError{Field: "children", Message: "cannot be negative"}
		}
		if adults+children > s.cfg.MaxPartySize {
			return &ValidationError{Field: "party", Message: fmt.Sprintf("party size cannot exceed %d travelers", s.cfg.MaxPartySize)}
		}
		if p.DepartureDate != nil && p.ReturnDate != nil && p.ReturnDate.Before(*p.DepartureDate) {
			return &ValidationError{Field: "return_date", Message: "cannot be before the departure date"}
		}

		draft.Destination = p.Destination
		draft.DepartureDate = p.DepartureDate
		draft.ReturnDate = p.ReturnDate
		draft.Party = PartySize{Adults: adults, Children: children}

		// Party changes after the travelers step was visited resize the
		// roster immediately; retained seats keep their details.
		if len(draft.Travelers) > 0 {
			draft.Travelers = ReconcileRoster(draft.Travelers, adults, children)
		}
	}

	if draft.Party.Adults < 1 {
		return &ValidationError{Field: "adults", Message: "at least one adult is required"}
	}
	return nil
}

func (s *service) commitPackage(ctx context.Context, draft *DraftBooking, p *PackagePayload) error {
	if p != nil {
		pkgID, err := uuid.Parse(p.PackageID)
		if err != nil {
			return &ValidationError{Field: "package_id", Message: "must be a valid UUID"}
		}
		pkg, err := s.catalog.PackageByID(ctx, pkgID)
		if err != nil {
			return fmt.Errorf("failed to select package: %w", err)
		}
		draft.Package = pkg
		if draft.Destination == "" {
			draft.Destination = pkg.Name
		}
	}

	// Guard: no advancing past package-details without a selection.
	if draft.Package == nil {
		return ErrPackageRequired
	}
	return nil
}

func (s *service) commitTravelers(draft *DraftBooking, p *TravelersPayload) error {
	if p == nil {
		return nil
	}

	byKey := make(map[string]int, len(draft.Travelers))
	for i, t := range draft.Travelers {
		byKey[t.SeatKey] = i
	}

	for _, in := range p.Travelers {
		i, ok := byKey[in.SeatKey]
		if !ok {
			return &ValidationError{Field: "seat_key", Message: fmt.Sprintf("unknown seat %q", in.SeatKey)}
		}
		draft.Travelers[i].FirstName = in.FirstName
		draft.Travelers[i].LastName = in.LastName
		draft.Travelers[i].DateOfBirth = in.DateOfBirth
		draft.Travelers[i].DocumentNumber = in.DocumentNumber
	}
	return nil
}

func (s *service) commitExtras(ctx context.Context, draft *DraftBooking, p *ExtrasPayload) error {
	if p == nil {
		return nil
	}

	excursionIDs := make([]uuid.UUID, 0, len(p.ExcursionIDs))
	seen := make(map[uuid.UUID]bool, len(p.ExcursionIDs))
	for _, idStr := range p.ExcursionIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return &ValidationError{Field: "excursion_ids", Message: fmt.Sprintf("invalid excursion ID %q", idStr)}
		}
		if seen[id] {
			continue // set semantics: duplicates collapse
		}
		seen[id] = true
		excursionIDs = append(excursionIDs, id)
	}

	// Resolving the selection validates it against the catalog.
	if _, err := s.catalog.ExtraCharges(ctx, p.Insurance, p.CarRental, excursionIDs); err != nil {
		return &ValidationError{Field: "extras", Message: err.Error()}
	}

	draft.Extras = ExtrasSelection{
		Insurance:    p.Insurance,
		CarRental:    p.CarRental,
		ExcursionIDs: excursionIDs,
	}
	return nil
}

// quoteFor derives the billed quote for the draft's current state. Returns
// nil (no error) when no package is selected yet.
func (s *service) quoteFor(ctx context.Context, draft *DraftBooking) (*pricing.Quote, error) {
	if draft.Package == nil {
		return nil, nil
	}

	items, err := s.catalog.ExtraCharges(ctx, draft.Extras.Insurance, draft.Extras.CarRental, draft.Extras.ExcursionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve extras: %w", err)
	}

	quote := pricing.Price(pricing.Input{
		PricePerAdult: draft.Package.PricePerAdult,
		Adults:        draft.Party.Adults,
		Children:      draft.Party.Children,
		Extras:        items,
	}, s.cfg.Rates)
	return &quote, nil
}

func (s *service) viewOf(ctx context.Context, draft *DraftBooking) (*SessionView, error) {
	view := &SessionView{
		SessionID: draft.SessionID,
		Step:      draft.Step,
		Draft:     draft,
	}

	if draft.Package != nil {
		est := pricing.Estimate(draft.Package.PricePerAdult, draft.Party.Adults, draft.Party.Children, s.cfg.Rates)
		view.EstimatedTotal = &est

		quote, err := s.quoteFor(ctx, draft)
		if err != nil {
			return nil, err
		}
		view.Quote = quote
	}
	return view, nil
}
