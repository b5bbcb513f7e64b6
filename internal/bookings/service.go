package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourwise/internal/pricing"
	"tourwise/internal/wizard"
	"tourwise/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrBookingNotFound is returned for unknown booking IDs and numbers.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotOwner is returned when a user touches someone else's booking.
	ErrNotOwner = errors.New("booking does not belong to user")

	// ErrAlreadyCancelled is returned on repeated cancellation.
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrVoucherUnavailable is returned when a voucher is requested for a
	// booking that is not confirmed.
	ErrVoucherUnavailable = errors.New("voucher is only available for confirmed bookings")
)

// Notifier publishes booking lifecycle events (to avoid a circular dependency
// with the notifications package). A nil notifier disables publishing.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *Booking) error
	BookingCancelled(ctx context.Context, booking *Booking) error
}

// Service interface defines the contract for booking business logic. It also
// satisfies wizard.BookingSink, which is how completed wizard sessions land
// here.
type Service interface {
	CompleteFromDraft(ctx context.Context, draft *wizard.DraftBooking, quote pricing.Quote) (*wizard.CompletionResult, error)

	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetBookingByNumber(ctx context.Context, bookingNumber string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*BookingListResponse, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, userID uuid.UUID) error

	Voucher(ctx context.Context, bookingID uuid.UUID) ([]byte, error)
}

// service implements the Service interface
type service struct {
	repo     Repository
	refs     *ReferenceGenerator
	notifier Notifier
	log      *logger.Logger
}

// NewService creates a new booking service instance.
func NewService(repo Repository, refs *ReferenceGenerator, notifier Notifier) Service {
	return &service{
		repo:     repo,
		refs:     refs,
		notifier: notifier,
		log:      logger.GetDefault(),
	}
}

// CompleteFromDraft turns a finished wizard draft into a persisted booking.
// The caller (the wizard) has already enforced the step and payment guards;
// this method re-checks the essentials before writing.
func (s *service) CompleteFromDraft(ctx context.Context, draft *wizard.DraftBooking, quote pricing.Quote) (*wizard.CompletionResult, error) {
	if draft.Package == nil {
		return nil, fmt.Errorf("draft has no package selected")
	}
	if !draft.Payment.Approved() {
		return nil, fmt.Errorf("draft has no approved payment")
	}

	bookingNumber, err := s.refs.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking number: %w", err)
	}

	travelers := make([]BookingTraveler, 0, len(draft.Travelers))
	for _, t := range draft.Travelers {
		travelers = append(travelers, BookingTraveler{
			Position:       t.Seat,
			FirstName:      t.FirstName,
			LastName:       t.LastName,
			DateOfBirth:    t.DateOfBirth,
			DocumentNumber: t.DocumentNumber,
			IsChild:        t.IsChild,
		})
	}

	extras := make([]BookingExtra, 0, len(quote.Items))
	for _, item := range quote.Items {
		extras = append(extras, BookingExtra{
			Name:  item.Name,
			Price: item.Price,
		})
	}

	processedAt := draft.Payment.ProcessedAt
	payment := Payment{
		Amount:            draft.Payment.Amount,
		Currency:          draft.Payment.Currency,
		Status:            string(draft.Payment.Status),
		PaymentMethod:     draft.Payment.Method.String(),
		TransactionID:     draft.Payment.TransactionID,
		AuthorizationCode: draft.Payment.AuthorizationCode,
		FiscalDocument:    draft.Payment.FiscalInfo.DocumentNumber,
		FiscalName:        draft.Payment.FiscalInfo.FullName,
		FiscalEmail:       draft.Payment.FiscalInfo.Email,
		ProcessedAt:       &processedAt,
	}

	booking := &Booking{
		UserID:        draft.UserID,
		BookingNumber: bookingNumber,
		PackageID:     draft.Package.ID,
		PackageName:   draft.Package.Name,
		Country:       draft.Package.Country,
		DurationLabel: draft.Package.DurationLabel,
		Destination:   draft.Destination,
		DepartureDate: draft.DepartureDate,
		ReturnDate:    draft.ReturnDate,
		Adults:        draft.Party.Adults,
		Children:      draft.Party.Children,
		PricePerAdult: draft.Package.PricePerAdult,
		Subtotal:      quote.Subtotal,
		ExtrasTotal:   quote.ExtrasTotal,
		Taxes:         quote.Taxes,
		TotalPrice:    quote.Total,
		Status:        string(StatusConfirmed),
		Travelers:     travelers,
		Extras:        extras,
		Payments:      []Payment{payment},
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.log.LogBookingConfirmed(ctx, booking.ID.String(), booking.BookingNumber, booking.UserID.String())

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
			// The booking is committed; notification delivery must not undo it.
			s.log.WithError(err).Warn("failed to publish booking confirmation")
		}
	}

	return &wizard.CompletionResult{
		BookingID:     booking.ID.String(),
		BookingNumber: booking.BookingNumber,
		Status:        booking.Status,
		Total:         booking.TotalPrice,
		CreatedAt:     booking.CreatedAt,
	}, nil
}

// GetBooking retrieves a booking by ID with travelers, extras and payments.
func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetBookingByNumber retrieves a booking by its human-readable number.
func (s *service) GetBookingByNumber(ctx context.Context, bookingNumber string) (*Booking, error) {
	booking, err := s.repo.GetByNumber(ctx, bookingNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetUserBookings retrieves a page of the user's bookings.
func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*BookingListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.GetUserBookings(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &BookingListResponse{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

// GetAllBookings retrieves a page of all bookings, with optional status,
// country and date filters. Admin listing; the route enforces the role.
func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &BookingListResponse{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

// CancelBooking cancels a booking owned by the user.
func (s *service) CancelBooking(ctx context.Context, bookingID uuid.UUID, userID uuid.UUID) error {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		return ErrNotOwner
	}
	if booking.IsCancelled() {
		return ErrAlreadyCancelled
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled, &now); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.BookingNumber, userID.String())

	if s.notifier != nil {
		booking.Cancel()
		if err := s.notifier.BookingCancelled(ctx, booking); err != nil {
			s.log.WithError(err).Warn("failed to publish booking cancellation")
		}
	}

	return nil
}

// Voucher renders the booking confirmation PDF. Cancelled bookings have no
// voucher.
func (s *service) Voucher(ctx context.Context, bookingID uuid.UUID) ([]byte, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsConfirmed() {
		return nil, ErrVoucherUnavailable
	}
	return GenerateVoucher(booking)
}
