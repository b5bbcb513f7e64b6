package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes configures the public catalog routes. Browsing is
// unauthenticated.
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/packages", controller.ListPackages)   // GET /api/v1/catalog/packages?country=&min_rating=&adults=&children=
		catalog.GET("/packages/:id", controller.GetPackage) // GET /api/v1/catalog/packages/:id
		catalog.GET("/extras", controller.ListExtras)       // GET /api/v1/catalog/extras
	}
}
