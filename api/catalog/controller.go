// Package catalog - service price list API controller.
package catalog

import (
	"net/http"
	"strconv"

	"kocho-pos/api/middleware"
	"kocho-pos/api/response"
	catalogapp "kocho-pos/application/catalog"

	"github.com/gin-gonic/gin"
)

// Controller Catalog controller
type Controller struct {
	catalogService *catalogapp.Service
}

// NewController Create catalog controller
func NewController(catalogService *catalogapp.Service) *Controller {
	return &Controller{
		catalogService: catalogService,
	}
}

// RegisterRoutes Register catalog routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/services")
	{
		group.GET("", c.ListServices)
		group.GET("/categories", c.ListCategories)
		group.GET("/:id", c.GetService)

		owner := group.Group("", middleware.RequireOwner())
		{
			owner.POST("", c.CreateService)
			owner.PUT("/:id", c.UpdateService)
			owner.DELETE("/:id", c.DeleteService)
		}
	}
}

// ListServices
// GET /api/v1/services
func (c *Controller) ListServices(ctx *gin.Context) {
	var query catalogapp.ListServicesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	services, err := c.catalogService.List(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, services, "services retrieved successfully")
}

// ListCategories
// GET /api/v1/services/categories
func (c *Controller) ListCategories(ctx *gin.Context) {
	categories, err := c.catalogService.Categories(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, categories, "categories retrieved successfully")
}

// GetService
// GET /api/v1/services/:id
func (c *Controller) GetService(ctx *gin.Context) {
	serviceID, ok := parseID(ctx)
	if !ok {
		return
	}

	service, err := c.catalogService.Get(ctx.Request.Context(), serviceID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, service, "service retrieved successfully")
}

// CreateService
// POST /api/v1/services
func (c *Controller) CreateService(ctx *gin.Context) {
	var req catalogapp.CreateServiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	service, err := c.catalogService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, service, "service created successfully")
}

// UpdateService
// PUT /api/v1/services/:id
func (c *Controller) UpdateService(ctx *gin.Context) {
	serviceID, ok := parseID(ctx)
	if !ok {
		return
	}

	var req catalogapp.UpdateServiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	service, err := c.catalogService.Update(ctx.Request.Context(), serviceID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, service, "service updated successfully")
}

// DeleteService
// DELETE /api/v1/services/:id
func (c *Controller) DeleteService(ctx *gin.Context) {
	serviceID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.catalogService.Delete(ctx.Request.Context(), serviceID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		response.HandleError(ctx, err, "invalid service id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}
