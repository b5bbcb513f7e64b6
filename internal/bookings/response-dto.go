package bookings

import "time"

// PaymentInfo represents payment information in responses
type PaymentInfo struct {
	ID                string     `json:"id"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	PaymentMethod     string     `json:"payment_method"`
	TransactionID     string     `json:"transaction_id"`
	AuthorizationCode string     `json:"authorization_code,omitempty"`
	ProcessedAt       *time.Time `json:"processed_at,omitempty"`
}

// BookingListResponse wraps a page of bookings with pagination metadata.
type BookingListResponse struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// ToPaymentInfo converts a Payment row for API responses.
func (p *Payment) ToPaymentInfo() PaymentInfo {
	return PaymentInfo{
		ID:                p.ID.String(),
		Amount:            p.Amount,
		Currency:          p.Currency,
		Status:            p.Status,
		PaymentMethod:     p.PaymentMethod,
		TransactionID:     p.TransactionID,
		AuthorizationCode: p.AuthorizationCode,
		ProcessedAt:       p.ProcessedAt,
	}
}
