package bookings

import (
	"tourwise/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Booking routes
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookings.GET("/:id/voucher", controller.GetVoucher)    // GET /api/v1/bookings/:id/voucher
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
	}

	// User-specific booking routes
	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		users.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}

	// Admin routes (stricter rate-limit tier applies to the /admin/ prefix)
	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/bookings", controller.GetAllBookings) // GET /api/v1/admin/bookings
	}
}

// Route definitions for reference:
//
// BOOKING RETRIEVAL
// GET    /api/v1/bookings/:id                         - Get a booking with travelers, extras and payment
// GET    /api/v1/bookings/:id/voucher                 - Download the confirmation voucher (PDF)
//
// BOOKING CANCELLATION
// POST   /api/v1/bookings/:id/cancel                  - Cancel a confirmed booking
//
// USER BOOKINGS
// GET    /api/v1/users/bookings?page=1&limit=10       - Get user's bookings with pagination
//
// ADMIN
// GET    /api/v1/admin/bookings?status=&country=      - List all bookings (admin only)
//
// Bookings are created exclusively through the wizard:
// POST /api/v1/wizard/sessions/:id/complete persists the draft and returns
// the booking ID and number used by the routes above.
