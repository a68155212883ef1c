/*
Package order - order API controller

Responsibilities:
1. Receive HTTP requests and bind parameters
2. Call the application service for business logic
3. Use the response package for uniform responses and errors

Error handling rules:
1. Binding errors: response.HandleError returns 400 directly
2. Business errors: response.HandleAppError maps status codes automatically
*/
package order

import (
	"net/http"
	"strconv"

	"kocho-pos/api/middleware"
	"kocho-pos/api/response"
	orderapp "kocho-pos/application/order"
	apperrors "kocho-pos/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller Order controller
type Controller struct {
	orderService *orderapp.Service
}

// NewController Create order controller
func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes Register order routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/today", c.TodayOrders)
		orderGroup.GET("/recent", c.RecentOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.PUT("/:id", c.UpdateOrder)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
		orderGroup.GET("/:id/receipt", c.GetReceipt)
	}
}

// CreateOrder
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.Create(ctx.Request.Context(), middleware.ActorID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created successfully")
}

// ListOrders
// GET /api/v1/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	var query orderapp.ListOrdersQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.orderService.List(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, result.Orders,
		response.NewPagination(result.Page, result.PerPage, result.Total),
		"orders retrieved successfully")
}

// TodayOrders
// GET /api/v1/orders/today
func (c *Controller) TodayOrders(ctx *gin.Context) {
	result, err := c.orderService.Today(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "today's orders retrieved successfully")
}

// RecentOrders
// GET /api/v1/orders/recent?limit=10
func (c *Controller) RecentOrders(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	orders, err := c.orderService.Recent(ctx.Request.Context(), limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "recent orders retrieved successfully")
}

// GetOrder
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx)
	if !ok {
		return
	}

	order, err := c.orderService.Get(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// UpdateOrder
// PUT /api/v1/orders/:id
//
// Force transitions bypass the status table and are restricted to owners.
func (c *Controller) UpdateOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx)
	if !ok {
		return
	}

	var req orderapp.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	if req.Force && !middleware.IsOwner(ctx) {
		response.HandleAppError(ctx, apperrors.Forbidden("forced status transitions require the owner role"))
		return
	}

	order, err := c.orderService.Update(ctx.Request.Context(), orderID, middleware.ActorID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order updated successfully")
}

// CancelOrder
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx)
	if !ok {
		return
	}

	order, err := c.orderService.Cancel(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order cancelled successfully")
}

// GetReceipt
// GET /api/v1/orders/:id/receipt
func (c *Controller) GetReceipt(ctx *gin.Context) {
	orderID, ok := parseID(ctx)
	if !ok {
		return
	}

	receipt, err := c.orderService.Receipt(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, receipt, "receipt retrieved successfully")
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		response.HandleError(ctx, err, "invalid order id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}
