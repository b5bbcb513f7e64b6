package bookings

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"tourwise/internal/catalog"
	"tourwise/internal/payments"
	"tourwise/internal/pricing"
	"tourwise/internal/wizard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeRepo keeps bookings in a map, enough to exercise the service.
type fakeRepo struct {
	bookings map[uuid.UUID]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (r *fakeRepo) Create(ctx context.Context, booking *Booking) error {
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, bookingNumber string) (*Booking, error) {
	for _, b := range r.bookings {
		if b.BookingNumber == bookingNumber {
			copied := *b
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	b, ok := r.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = string(status)
	b.CancelledAt = cancelledAt
	b.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRepo) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if query.Status != "" && b.Status != query.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range r.bookings {
		if query.Status != "" && b.Status != query.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

type recordingNotifier struct {
	confirmed []string
	cancelled []string
}

func (n *recordingNotifier) BookingConfirmed(ctx context.Context, b *Booking) error {
	n.confirmed = append(n.confirmed, b.BookingNumber)
	return nil
}

func (n *recordingNotifier) BookingCancelled(ctx context.Context, b *Booking) error {
	n.cancelled = append(n.cancelled, b.BookingNumber)
	return nil
}

func confirmedDraft(userID uuid.UUID) *wizard.DraftBooking {
	dep := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	ret := dep.AddDate(0, 0, 5)
	return &wizard.DraftBooking{
		SessionID:     uuid.New().String(),
		UserID:        userID,
		Step:          wizard.StepConfirmation,
		Destination:   "Cartagena",
		DepartureDate: &dep,
		ReturnDate:    &ret,
		Party:         wizard.PartySize{Adults: 2, Children: 1},
		Package: &catalog.PackageInfo{
			ID:            uuid.New(),
			Name:          "Cartagena Getaway",
			Country:       "Colombia",
			DurationLabel: "5 days / 4 nights",
			PricePerAdult: 1500,
		},
		Travelers: []wizard.Traveler{
			{SeatKey: "adult-0", Seat: 0, FirstName: "Maria", LastName: "Gomez", DocumentNumber: "CC-900123"},
			{SeatKey: "adult-1", Seat: 1, FirstName: "Jorge", LastName: "Gomez"},
			{SeatKey: "child-0", Seat: 2, FirstName: "Emma", LastName: "Gomez", IsChild: true},
		},
		Payment: &payments.Result{
			Method:            payments.MethodCard,
			Status:            payments.StatusApproved,
			TransactionID:     "TXN_1757500000_AB12CD34",
			AuthorizationCode: "123456",
			Amount:            3748.5,
			Currency:          "USD",
			FiscalInfo: payments.FiscalInfo{
				DocumentNumber: "CC-900123",
				FullName:       "Maria Gomez",
				Email:          "maria@example.com",
			},
			ProcessedAt: time.Now().UTC(),
		},
	}
}

func testQuote() pricing.Quote {
	return pricing.Quote{
		Subtotal:    3000,
		Items:       []pricing.LineItem{{Name: "Travel insurance", Price: 150}},
		ExtrasTotal: 150,
		Taxable:     3150,
		Taxes:       598.5,
		Total:       3748.5,
	}
}

func newBookingFixture() (Service, *fakeRepo, *recordingNotifier) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	refs := NewReferenceGenerator("TRV", &stubSequencer{})
	return NewService(repo, refs, notifier), repo, notifier
}

func TestCompleteFromDraft(t *testing.T) {
	ctx := context.Background()
	svc, repo, notifier := newBookingFixture()
	userID := uuid.New()

	result, err := svc.CompleteFromDraft(ctx, confirmedDraft(userID), testQuote())
	if err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}

	if result.Status != "CONFIRMED" {
		t.Errorf("status = %q, want CONFIRMED", result.Status)
	}
	if result.Total != 3748.5 {
		t.Errorf("total = %v, want 3748.5", result.Total)
	}

	booking, err := svc.GetBookingByNumber(ctx, result.BookingNumber)
	if err != nil {
		t.Fatalf("GetBookingByNumber: %v", err)
	}
	if booking.UserID != userID {
		t.Errorf("user ID = %v, want %v", booking.UserID, userID)
	}
	if booking.PackageName != "Cartagena Getaway" || booking.PricePerAdult != 1500 {
		t.Errorf("package snapshot wrong: %+v", booking)
	}
	if booking.Adults != 2 || booking.Children != 1 {
		t.Errorf("party = %d/%d, want 2/1", booking.Adults, booking.Children)
	}
	if booking.PartyTotal() != 3 {
		t.Errorf("party total = %d, want 3", booking.PartyTotal())
	}
	if len(booking.Travelers) != 3 {
		t.Fatalf("travelers = %d, want 3", len(booking.Travelers))
	}
	if !booking.Travelers[2].IsChild || booking.Travelers[2].FirstName != "Emma" {
		t.Errorf("child traveler not carried over: %+v", booking.Travelers[2])
	}
	if len(booking.Extras) != 1 || booking.Extras[0].Name != "Travel insurance" {
		t.Errorf("extras not carried over: %+v", booking.Extras)
	}
	if len(booking.Payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(booking.Payments))
	}
	payment := booking.Payments[0]
	if payment.Status != "APPROVED" || payment.TransactionID != "TXN_1757500000_AB12CD34" {
		t.Errorf("payment not carried over: %+v", payment)
	}
	if payment.FiscalName != "Maria Gomez" {
		t.Errorf("fiscal info not carried over: %+v", payment)
	}

	if len(notifier.confirmed) != 1 || notifier.confirmed[0] != result.BookingNumber {
		t.Errorf("confirmation not published: %v", notifier.confirmed)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("bookings persisted = %d, want 1", len(repo.bookings))
	}
}

func TestCompleteFromDraftRejectsIncompleteDrafts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBookingFixture()
	userID := uuid.New()

	noPackage := confirmedDraft(userID)
	noPackage.Package = nil
	if _, err := svc.CompleteFromDraft(ctx, noPackage, testQuote()); err == nil {
		t.Error("draft without package should be rejected")
	}

	noPayment := confirmedDraft(userID)
	noPayment.Payment = nil
	if _, err := svc.CompleteFromDraft(ctx, noPayment, testQuote()); err == nil {
		t.Error("draft without payment should be rejected")
	}

	declined := confirmedDraft(userID)
	declined.Payment.Status = payments.StatusDeclined
	if _, err := svc.CompleteFromDraft(ctx, declined, testQuote()); err == nil {
		t.Error("draft with declined payment should be rejected")
	}
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newBookingFixture()
	userID := uuid.New()

	result, err := svc.CompleteFromDraft(ctx, confirmedDraft(userID), testQuote())
	if err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}
	bookingID := uuid.MustParse(result.BookingID)

	// A stranger cannot cancel it.
	if err := svc.CancelBooking(ctx, bookingID, uuid.New()); !errors.Is(err, ErrNotOwner) {
		t.Errorf("foreign cancel: got %v, want ErrNotOwner", err)
	}

	if err := svc.CancelBooking(ctx, bookingID, userID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	booking, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if !booking.IsCancelled() || booking.CancelledAt == nil {
		t.Errorf("booking not cancelled: %+v", booking)
	}

	if err := svc.CancelBooking(ctx, bookingID, userID); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("second cancel: got %v, want ErrAlreadyCancelled", err)
	}
	if len(notifier.cancelled) != 1 {
		t.Errorf("cancellation published %d times, want 1", len(notifier.cancelled))
	}
}

func TestGetBookingNotFound(t *testing.T) {
	svc, _, _ := newBookingFixture()
	if _, err := svc.GetBooking(context.Background(), uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("got %v, want ErrBookingNotFound", err)
	}
}

func TestGetUserBookingsFilters(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBookingFixture()
	userID := uuid.New()

	first, err := svc.CompleteFromDraft(ctx, confirmedDraft(userID), testQuote())
	if err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}
	if _, err := svc.CompleteFromDraft(ctx, confirmedDraft(userID), testQuote()); err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}
	if _, err := svc.CompleteFromDraft(ctx, confirmedDraft(uuid.New()), testQuote()); err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}

	resp, err := svc.GetUserBookings(ctx, userID, BookingListQuery{})
	if err != nil {
		t.Fatalf("GetUserBookings: %v", err)
	}
	if resp.TotalCount != 2 {
		t.Errorf("total = %d, want 2 (only the user's bookings)", resp.TotalCount)
	}

	// Cancel one; status filter narrows the list.
	if err := svc.CancelBooking(ctx, uuid.MustParse(first.BookingID), userID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	resp, err = svc.GetUserBookings(ctx, userID, BookingListQuery{Status: "CONFIRMED"})
	if err != nil {
		t.Fatalf("GetUserBookings: %v", err)
	}
	if resp.TotalCount != 1 {
		t.Errorf("confirmed total = %d, want 1", resp.TotalCount)
	}
}

func TestGetAllBookingsListsEveryUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBookingFixture()
	userID := uuid.New()

	first, err := svc.CompleteFromDraft(ctx, confirmedDraft(userID), testQuote())
	if err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}
	if _, err := svc.CompleteFromDraft(ctx, confirmedDraft(uuid.New()), testQuote()); err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}

	resp, err := svc.GetAllBookings(ctx, BookingListQuery{})
	if err != nil {
		t.Fatalf("GetAllBookings: %v", err)
	}
	if resp.TotalCount != 2 {
		t.Errorf("total = %d, want 2 (all users' bookings)", resp.TotalCount)
	}
	if resp.Page != 1 || resp.Limit != 10 {
		t.Errorf("pagination defaults = %d/%d, want 1/10", resp.Page, resp.Limit)
	}

	if err := svc.CancelBooking(ctx, uuid.MustParse(first.BookingID), userID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	resp, err = svc.GetAllBookings(ctx, BookingListQuery{Status: "CANCELLED"})
	if err != nil {
		t.Fatalf("GetAllBookings: %v", err)
	}
	if resp.TotalCount != 1 {
		t.Errorf("cancelled total = %d, want 1", resp.TotalCount)
	}
}

func TestVoucherRendersPDF(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBookingFixture()
	userID := uuid.New()

	result, err := svc.CompleteFromDraft(ctx, confirmedDraft(userID), testQuote())
	if err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}

	pdf, err := svc.Voucher(ctx, uuid.MustParse(result.BookingID))
	if err != nil {
		t.Fatalf("Voucher: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("voucher does not look like a PDF (starts with %q)", pdf[:8])
	}

	booking, _ := svc.GetBooking(ctx, uuid.MustParse(result.BookingID))
	if got := VoucherFilename(booking); got != "VOUCHER_"+string(bytes.ReplaceAll([]byte(result.BookingNumber), []byte("-"), []byte("_")))+".pdf" {
		t.Errorf("voucher filename = %q", got)
	}
}

func TestVoucherRefusedForCancelledBooking(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBookingFixture()
	userID := uuid.New()

	result, err := svc.CompleteFromDraft(ctx, confirmedDraft(userID), testQuote())
	if err != nil {
		t.Fatalf("CompleteFromDraft: %v", err)
	}
	bookingID := uuid.MustParse(result.BookingID)

	if err := svc.CancelBooking(ctx, bookingID, userID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if _, err := svc.Voucher(ctx, bookingID); !errors.Is(err, ErrVoucherUnavailable) {
		t.Errorf("voucher for cancelled booking: got %v, want ErrVoucherUnavailable", err)
	}
}
