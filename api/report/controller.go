// Package report - reporting API controller. Profit and loss is owner-only;
// the remaining projections are visible to all staff.
package report

import (
	"net/http"

	"kocho-pos/api/middleware"
	"kocho-pos/api/response"
	reportapp "kocho-pos/application/report"

	"github.com/gin-gonic/gin"
)

// Controller Report controller
type Controller struct {
	reportService *reportapp.Service
}

// NewController Create report controller
func NewController(reportService *reportapp.Service) *Controller {
	return &Controller{
		reportService: reportService,
	}
}

// RegisterRoutes Register report routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/reports")
	{
		group.GET("/dashboard", c.Dashboard)
		group.GET("/sales", c.Sales)
		group.GET("/items", c.Items)
		group.GET("/inventory", c.Inventory)
		group.GET("/profit-loss", middleware.RequireOwner(), c.ProfitLoss)
	}
}

// Dashboard
// GET /api/v1/reports/dashboard
func (c *Controller) Dashboard(ctx *gin.Context) {
	result, err := c.reportService.Dashboard(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "dashboard retrieved successfully")
}

// Sales
// GET /api/v1/reports/sales?date_from=...&date_to=...
func (c *Controller) Sales(ctx *gin.Context) {
	var query reportapp.PeriodQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.reportService.Sales(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "sales report retrieved successfully")
}

// Items
// GET /api/v1/reports/items?date_from=...&date_to=...
func (c *Controller) Items(ctx *gin.Context) {
	var query reportapp.PeriodQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.reportService.Items(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "item sales report retrieved successfully")
}

// Inventory
// GET /api/v1/reports/inventory
func (c *Controller) Inventory(ctx *gin.Context) {
	result, err := c.reportService.Inventory(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "inventory report retrieved successfully")
}

// ProfitLoss
// GET /api/v1/reports/profit-loss?date_from=...&date_to=...
func (c *Controller) ProfitLoss(ctx *gin.Context) {
	var query reportapp.PeriodQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.reportService.ProfitLoss(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "profit and loss retrieved successfully")
}
