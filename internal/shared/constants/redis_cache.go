package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Tourwise application
// Pattern: tourwise:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for catalog extras
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for package details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for package listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for filtered searches
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for booking listings
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for booking details
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "tourwise"
)

// ================== CATALOG MODULE ==================

// Catalog Cache Keys
const (
	// Package listings and searches
	CACHE_KEY_PACKAGES_LIST = CACHE_PREFIX + ":catalog:packages:list" // + :country:X:min_rating:Y

	// Individual package details
	CACHE_KEY_PACKAGE_DETAIL = CACHE_PREFIX + ":catalog:packages:detail:uuid:" // + package-id

	// Extras catalog (insurance, car rental, excursions)
	CACHE_KEY_EXTRAS_LIST = CACHE_PREFIX + ":catalog:extras:list"
)

// Catalog Cache TTLs
const (
	TTL_PACKAGES_LIST  = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_PACKAGE_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
	TTL_EXTRAS_LIST    = TTL_STATIC_MEDIUM      // 12 hours
)

// ================== AUTH MODULE ==================

// Auth Cache Keys
const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

// Auth Cache TTLs
const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT // 6 hours
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
)

// Booking Cache TTLs
const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_SHORT  // 5 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis KEYS command or manual invalidation)
const (
	// Catalog-related invalidation patterns (seed command, admin tooling)
	PATTERN_INVALIDATE_CATALOG_ALL = CACHE_PREFIX + ":catalog:*"

	// Booking-related invalidation patterns
	PATTERN_INVALIDATE_USER_BOOKINGS = CACHE_PREFIX + ":bookings:user:uuid:" // + user-id + *
)

// ================== HELPER FUNCTIONS ==================

// BuildPackageListKey constructs the listing cache key from the browse filters
// Example: BuildPackageListKey("Colombia", 4.0, 0) -> "tourwise:catalog:packages:list:country:Colombia:min_rating:4.0"
func BuildPackageListKey(country string, minRating, maxPrice float64) string {
	key := CACHE_KEY_PACKAGES_LIST
	if country != "" {
		key += ":country:" + country
	}
	if minRating > 0 {
		key += fmt.Sprintf(":min_rating:%.1f", minRating)
	}
	if maxPrice > 0 {
		key += fmt.Sprintf(":max_price:%.2f", maxPrice)
	}
	return key
}

func BuildPackageDetailKey(packageID string) string {
	return CACHE_KEY_PACKAGE_DETAIL + packageID
}

func BuildUserBookingsKey(userID string, page int) string {
	return CACHE_KEY_USER_BOOKINGS + userID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildBookingDetailKey(bookingID string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingID
}
