package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the persisted record a completed wizard session turns into. The
// package fields are denormalized from the catalog snapshot so a booking stays
// readable even if the package is later retired or repriced.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	BookingNumber string    `gorm:"unique;not null" json:"booking_number"`

	// Trip
	PackageID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"package_id"`
	PackageName   string     `gorm:"not null" json:"package_name"`
	Country       string     `json:"country"`
	DurationLabel string     `json:"duration_label"`
	Destination   string     `json:"destination"`
	DepartureDate *time.Time `json:"departure_date,omitempty"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Adults        int        `gorm:"not null" json:"adults"`
	Children      int        `gorm:"not null" json:"children"`

	// Price breakdown, frozen at completion time
	PricePerAdult float64 `gorm:"not null" json:"price_per_adult"`
	Subtotal      float64 `gorm:"not null" json:"subtotal"`
	ExtrasTotal   float64 `json:"extras_total"`
	Taxes         float64 `json:"taxes"`
	TotalPrice    float64 `gorm:"not null" json:"total_price"`

	Status      string     `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relationships
	Travelers []BookingTraveler `json:"travelers,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Extras    []BookingExtra    `json:"extras,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payments  []Payment         `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;"`
}

// BookingTraveler is one seat on a confirmed booking.
type BookingTraveler struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID      uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	Position       int       `gorm:"not null" json:"position"` // 0-based, adults first
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    string    `json:"date_of_birth"`
	DocumentNumber string    `json:"document_number"`
	IsChild        bool      `json:"is_child"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingExtra is one charged add-on line (insurance, car rental, excursion).
type BookingExtra struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment defines the structure for payment tracking
type Payment struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount            float64    `gorm:"not null" json:"amount"`
	Currency          string     `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status            string     `gorm:"type:varchar(20);check:status IN ('APPROVED', 'DECLINED', 'REFUNDED');default:'APPROVED'" json:"status"`
	PaymentMethod     string     `gorm:"type:varchar(50)" json:"payment_method"`
	TransactionID     string     `gorm:"unique" json:"transaction_id"`
	AuthorizationCode string     `json:"authorization_code,omitempty"`
	FiscalDocument    string     `json:"fiscal_document,omitempty"`
	FiscalName        string     `json:"fiscal_name,omitempty"`
	FiscalEmail       string     `json:"fiscal_email,omitempty"`
	ProcessedAt       *time.Time `json:"processed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relationships
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingTraveler
func (BookingTraveler) TableName() string {
	return "booking_travelers"
}

// TableName sets the table name for BookingExtra
func (BookingExtra) TableName() string {
	return "booking_extras"
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Helper methods for booking management
func (b *Booking) IsConfirmed() bool {
	return b.Status == string(StatusConfirmed)
}

func (b *Booking) IsCancelled() bool {
	return b.Status == string(StatusCancelled)
}

func (b *Booking) Cancel() {
	b.Status = string(StatusCancelled)
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// PartyTotal returns the number of travelers on the booking.
func (b *Booking) PartyTotal() int {
	return b.Adults + b.Children
}
