package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints AutoMigrate does not cover
func MigrateConstraints(db *gorm.DB) error {
	// One traveler per seat position on a booking
	err := db.Exec(`
		ALTER TABLE booking_travelers
		ADD CONSTRAINT IF NOT EXISTS unique_traveler_position_per_booking
		UNIQUE (booking_id, position);
	`).Error
	if err != nil {
		return err
	}

	// Index for the "my bookings" listing with status filters
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_bookings_user_status
		ON bookings (user_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Index for payment lookups by booking
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_payments_booking_id
		ON payments (booking_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
