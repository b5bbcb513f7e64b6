package wizard

import (
	"errors"
	"net/http"

	"tourwise/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// currentUserID extracts the authenticated user from the JWT context (set by
// middleware). Writes the error response itself when missing.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}

	userIDStr, ok := userIDInterface.(string)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// respondWizardError maps service errors onto HTTP statuses.
func respondWizardError(ctx *gin.Context, err error) {
	var validationErr *ValidationError
	var transitionErr *TransitionError
	var paymentErr *payments.ValidationError

	switch {
	case errors.Is(err, ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Wizard session not found or expired"})
	case errors.As(err, &transitionErr):
		ctx.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.Is(err, ErrPackageRequired),
		errors.Is(err, ErrPaymentRequired),
		errors.Is(err, ErrNotAtConfirmation),
		errors.Is(err, ErrWrongStepPayload):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Validation failed",
			"details": gin.H{
				"field":   validationErr.Field,
				"message": validationErr.Message,
			},
		})
	case errors.As(err, &paymentErr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment validation failed",
			"details": gin.H{
				"rule":    paymentErr.Rule,
				"message": paymentErr.Message,
			},
		})
	case errors.Is(err, payments.ErrDeclined):
		ctx.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment was declined"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Wizard operation failed",
			"details": err.Error(),
		})
	}
}

// StartSession handles POST /api/v1/wizard/sessions
func (c *Controller) StartSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := c.service.StartSession(ctx.Request.Context(), userID, req)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Wizard session started",
		"data":    view,
	})
}

// GetSession handles GET /api/v1/wizard/sessions/:id
func (c *Controller) GetSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	view, err := c.service.GetSession(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Wizard session retrieved",
		"data":    view,
	})
}

// Advance handles POST /api/v1/wizard/sessions/:id/advance
func (c *Controller) Advance(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req AdvanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := c.service.Advance(ctx.Request.Context(), userID, ctx.Param("id"), req)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Advanced to next step",
		"data":    view,
	})
}

// Retreat handles POST /api/v1/wizard/sessions/:id/retreat
func (c *Controller) Retreat(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	view, err := c.service.Retreat(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Returned to previous step",
		"data":    view,
	})
}

// SubmitPayment handles POST /api/v1/wizard/sessions/:id/payment
func (c *Controller) SubmitPayment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req payments.Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := c.service.SubmitPayment(ctx.Request.Context(), userID, ctx.Param("id"), req)
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Payment processed successfully",
		"data":    view,
	})
}

// Complete handles POST /api/v1/wizard/sessions/:id/complete
func (c *Controller) Complete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.service.Complete(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondWizardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed successfully",
		"data":    result,
	})
}

// Close handles DELETE /api/v1/wizard/sessions/:id
func (c *Controller) Close(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.service.Close(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		respondWizardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Wizard session closed",
	})
}
