package notifications

import (
	"context"
	"fmt"
	"time"

	"tourwise/internal/bookings"
)

// BookingNotifier adapts the notification service to the hook the bookings
// service calls after confirmations and cancellations. The recipient comes
// from the fiscal info captured at payment time, since the wizard does not
// require an account email.
type BookingNotifier struct {
	service NotificationService
}

func NewBookingNotifier(service NotificationService) *BookingNotifier {
	return &BookingNotifier{service: service}
}

func (bn *BookingNotifier) BookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	email, name := recipientOf(booking)
	if email == "" {
		return nil
	}

	return bn.service.SendBookingNotification(ctx, booking.UserID, email, name,
		booking.ID, booking.BookingNumber, NotificationTypeBookingConfirmed,
		templateDataFor(booking))
}

func (bn *BookingNotifier) BookingCancelled(ctx context.Context, booking *bookings.Booking) error {
	email, name := recipientOf(booking)
	if email == "" {
		return nil
	}

	return bn.service.SendBookingNotification(ctx, booking.UserID, email, name,
		booking.ID, booking.BookingNumber, NotificationTypeBookingCancelled,
		templateDataFor(booking))
}

// recipientOf picks the fiscal contact from the booking's payment record.
func recipientOf(booking *bookings.Booking) (email, name string) {
	for _, payment := range booking.Payments {
		if payment.FiscalEmail != "" {
			return payment.FiscalEmail, payment.FiscalName
		}
	}
	return "", ""
}

func templateDataFor(booking *bookings.Booking) map[string]interface{} {
	return map[string]interface{}{
		"package_name":   booking.PackageName,
		"booking_number": booking.BookingNumber,
		"adults":         booking.Adults,
		"children":       booking.Children,
		"travel_dates":   travelDatesOf(booking),
		"total_amount":   booking.TotalPrice,
	}
}

func travelDatesOf(booking *bookings.Booking) string {
	if booking.DepartureDate == nil || booking.ReturnDate == nil {
		return "to be confirmed"
	}
	return fmt.Sprintf("%s - %s",
		booking.DepartureDate.Format(time.DateOnly),
		booking.ReturnDate.Format(time.DateOnly),
	)
}
