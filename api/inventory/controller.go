// Package inventory - stock item API controller. Mutations are owner-only;
// staff can read and check stock levels.
package inventory

import (
	"net/http"
	"strconv"

	"kocho-pos/api/middleware"
	"kocho-pos/api/response"
	inventoryapp "kocho-pos/application/inventory"

	"github.com/gin-gonic/gin"
)

// Controller Inventory controller
type Controller struct {
	inventoryService *inventoryapp.Service
}

// NewController Create inventory controller
func NewController(inventoryService *inventoryapp.Service) *Controller {
	return &Controller{
		inventoryService: inventoryService,
	}
}

// RegisterRoutes Register inventory routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/inventory")
	{
		group.GET("", c.ListItems)
		group.GET("/low-stock", c.LowStock)
		group.GET("/categories", c.ListCategories)
		group.GET("/:id", c.GetItem)

		owner := group.Group("", middleware.RequireOwner())
		{
			owner.POST("", c.CreateItem)
			owner.PUT("/:id", c.UpdateItem)
			owner.DELETE("/:id", c.DeleteItem)
			owner.POST("/:id/adjust", c.AdjustStock)
		}
	}
}

// ListItems
// GET /api/v1/inventory
func (c *Controller) ListItems(ctx *gin.Context) {
	var query inventoryapp.ListItemsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.inventoryService.List(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, result.Items,
		response.NewPagination(result.Page, result.PerPage, result.Total),
		"inventory items retrieved successfully")
}

// LowStock
// GET /api/v1/inventory/low-stock
func (c *Controller) LowStock(ctx *gin.Context) {
	items, err := c.inventoryService.LowStock(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, items, "low stock items retrieved successfully")
}

// ListCategories
// GET /api/v1/inventory/categories
func (c *Controller) ListCategories(ctx *gin.Context) {
	categories, err := c.inventoryService.Categories(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, categories, "categories retrieved successfully")
}

// GetItem
// GET /api/v1/inventory/:id
func (c *Controller) GetItem(ctx *gin.Context) {
	itemID, ok := parseID(ctx)
	if !ok {
		return
	}

	item, err := c.inventoryService.Get(ctx.Request.Context(), itemID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, item, "inventory item retrieved successfully")
}

// CreateItem
// POST /api/v1/inventory
func (c *Controller) CreateItem(ctx *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	item, err := c.inventoryService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, item, "inventory item created successfully")
}

// UpdateItem
// PUT /api/v1/inventory/:id
func (c *Controller) UpdateItem(ctx *gin.Context) {
	itemID, ok := parseID(ctx)
	if !ok {
		return
	}

	var req inventoryapp.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	item, err := c.inventoryService.Update(ctx.Request.Context(), itemID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, item, "inventory item updated successfully")
}

// DeleteItem
// DELETE /api/v1/inventory/:id
func (c *Controller) DeleteItem(ctx *gin.Context) {
	itemID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.inventoryService.Delete(ctx.Request.Context(), itemID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// AdjustStock
// POST /api/v1/inventory/:id/adjust
func (c *Controller) AdjustStock(ctx *gin.Context) {
	itemID, ok := parseID(ctx)
	if !ok {
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	item, err := c.inventoryService.Adjust(ctx.Request.Context(), itemID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, item, "stock adjusted successfully")
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		response.HandleError(ctx, err, "invalid item id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}
