package wizard

import (
	"tourwise/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupWizardRoutes configures the booking wizard routes. All session
// operations require an authenticated user; sessions are private to their
// owner.
func SetupWizardRoutes(rg *gin.RouterGroup, controller *Controller) {
	wizard := rg.Group("/wizard")
	wizard.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		wizard.POST("/sessions", controller.StartSession)              // POST   /api/v1/wizard/sessions
		wizard.GET("/sessions/:id", controller.GetSession)             // GET    /api/v1/wizard/sessions/:id
		wizard.POST("/sessions/:id/advance", controller.Advance)       // POST   /api/v1/wizard/sessions/:id/advance
		wizard.POST("/sessions/:id/retreat", controller.Retreat)       // POST   /api/v1/wizard/sessions/:id/retreat
		wizard.POST("/sessions/:id/payment", controller.SubmitPayment) // POST   /api/v1/wizard/sessions/:id/payment
		wizard.POST("/sessions/:id/complete", controller.Complete)     // POST   /api/v1/wizard/sessions/:id/complete
		wizard.DELETE("/sessions/:id", controller.Close)               // DELETE /api/v1/wizard/sessions/:id
	}
}

// Route flow:
//
// 1. POST /wizard/sessions                  - open a session (optionally with a package)
// 2. POST /wizard/sessions/:id/advance      - commit current step, move forward
//    POST /wizard/sessions/:id/retreat      - move back, draft untouched
// 3. POST /wizard/sessions/:id/payment      - validate + charge at the payment step
// 4. POST /wizard/sessions/:id/complete     - from confirmation: persist booking, drop session
// 5. DELETE /wizard/sessions/:id            - abandon at any step
