package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListPackages handles GET /api/v1/catalog/packages
func (c *Controller) ListPackages(ctx *gin.Context) {
	var query PackageListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	packages, err := c.service.ListPackages(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list packages",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Packages retrieved successfully",
		"data": gin.H{
			"packages": packages,
			"count":    len(packages),
		},
	})
}

// GetPackage handles GET /api/v1/catalog/packages/:id
func (c *Controller) GetPackage(ctx *gin.Context) {
	pkg, err := c.service.GetPackage(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to get package",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Package retrieved successfully",
		"data":    pkg,
	})
}

// ListExtras handles GET /api/v1/catalog/extras
func (c *Controller) ListExtras(ctx *gin.Context) {
	extras, err := c.service.ListExtras(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list extras",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Extras retrieved successfully",
		"data": gin.H{
			"extras": extras,
			"count":  len(extras),
		},
	})
}
