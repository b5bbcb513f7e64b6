package database

import (
	"tourwise/internal/bookings"
	"tourwise/internal/catalog"
	"tourwise/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&catalog.Package{},
		&catalog.Extra{},
		&bookings.Booking{},
		&bookings.BookingTraveler{},
		&bookings.BookingExtra{},
		&bookings.Payment{},
	)
}
