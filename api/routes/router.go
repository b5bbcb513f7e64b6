package routes

import (
	"net/http"
	"time"

	"tourwise/internal/auth"
	"tourwise/internal/bookings"
	"tourwise/internal/catalog"
	"tourwise/internal/pricing"
	"tourwise/internal/shared/config"
	"tourwise/internal/shared/database"
	"tourwise/internal/wizard"
	"tourwise/pkg/cache"

	"tourwise/internal/payments"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB

	// Optional booking lifecycle notifier (Kafka-backed when the
	// notification service is up, nil otherwise)
	notifier bookings.Notifier

	// Services shared across route groups
	catalogService catalog.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetNotifier injects the booking notifier before SetupRoutes runs
func (r *Router) SetNotifier(notifier bookings.Notifier) {
	r.notifier = notifier
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Swagger UI
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup auth routes
		r.setupAuthRoutes(api)

		// Setup catalog routes (must run before wizard routes: the wizard
		// resolves packages and extras through the catalog service)
		r.setupCatalogRoutes(api)

		// Setup booking routes (must run before wizard routes: completing a
		// wizard session persists through the booking service)
		r.setupBookingRoutes(api)

		// Setup wizard routes
		r.setupWizardRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tourwise-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tourwise-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupCatalogRoutes configures package/extras browsing routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo, r.pricingRates())

	// Cache catalog reads through Redis
	if r.db.Redis != nil {
		catalogService.SetCacheService(cache.NewService(r.db.GetRedisClient()))
	}

	catalogController := catalog.NewController(catalogService)

	// Store catalog service for the wizard's package lookups
	r.catalogService = catalogService

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupBookingRoutes configures booking retrieval/cancel/voucher routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	sequencer := bookings.NewRedisSequencer(r.db.GetRedisClient())
	refs := bookings.NewReferenceGenerator(r.config.Booking.ReferencePrefix, sequencer)

	bookingService := bookings.NewService(bookingRepo, refs, r.notifier)
	bookingController := bookings.NewController(bookingService)

	// Store booking service for the wizard's completion sink
	r.bookingService = bookingService

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupWizardRoutes configures the booking wizard session routes
func (r *Router) setupWizardRoutes(rg *gin.RouterGroup) {
	store := wizard.NewRedisStore(r.db.GetRedisClient(), r.config.Wizard.SessionTTL)
	processor := payments.NewSimulatedProcessor(r.config.Payment.Latency, r.config.Payment.DeclineRate)

	wizardService := wizard.NewService(store, r.catalogService, processor, r.bookingService, wizard.Config{
		Rates:        r.pricingRates(),
		MaxPartySize: r.config.Wizard.MaxPartySize,
		Currency:     r.config.Pricing.Currency,
	})
	wizardController := wizard.NewController(wizardService)

	wizard.SetupWizardRoutes(rg, wizardController)
}

func (r *Router) pricingRates() pricing.Rates {
	return pricing.Rates{
		TaxRate:             r.config.Pricing.TaxRate,
		ChildDiscountFactor: r.config.Pricing.ChildDiscountFactor,
	}
}
