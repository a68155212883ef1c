// Package customer - customer account API controller.
package customer

import (
	"net/http"
	"strconv"

	"kocho-pos/api/response"
	customerapp "kocho-pos/application/customer"

	"github.com/gin-gonic/gin"
)

// Controller Customer controller
type Controller struct {
	customerService *customerapp.Service
}

// NewController Create customer controller
func NewController(customerService *customerapp.Service) *Controller {
	return &Controller{
		customerService: customerService,
	}
}

// RegisterRoutes Register customer routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/customers")
	{
		group.POST("", c.CreateCustomer)
		group.GET("", c.ListCustomers)
		group.GET("/:id", c.GetCustomer)
		group.PUT("/:id", c.UpdateCustomer)
		group.DELETE("/:id", c.DeleteCustomer)
		group.GET("/:id/orders", c.CustomerOrders)
	}
}

// CreateCustomer
// POST /api/v1/customers
func (c *Controller) CreateCustomer(ctx *gin.Context) {
	var req customerapp.CreateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customer, err := c.customerService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, customer, "customer created successfully")
}

// ListCustomers
// GET /api/v1/customers
func (c *Controller) ListCustomers(ctx *gin.Context) {
	var query customerapp.ListCustomersQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.customerService.List(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, result.Customers,
		response.NewPagination(result.Page, result.PerPage, result.Total),
		"customers retrieved successfully")
}

// GetCustomer
// GET /api/v1/customers/:id
func (c *Controller) GetCustomer(ctx *gin.Context) {
	customerID, ok := parseID(ctx)
	if !ok {
		return
	}

	customer, err := c.customerService.Get(ctx.Request.Context(), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, customer, "customer retrieved successfully")
}

// UpdateCustomer
// PUT /api/v1/customers/:id
func (c *Controller) UpdateCustomer(ctx *gin.Context) {
	customerID, ok := parseID(ctx)
	if !ok {
		return
	}

	var req customerapp.UpdateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customer, err := c.customerService.Update(ctx.Request.Context(), customerID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, customer, "customer updated successfully")
}

// DeleteCustomer
// DELETE /api/v1/customers/:id
func (c *Controller) DeleteCustomer(ctx *gin.Context) {
	customerID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.customerService.Delete(ctx.Request.Context(), customerID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// CustomerOrders
// GET /api/v1/customers/:id/orders?limit=10
func (c *Controller) CustomerOrders(ctx *gin.Context) {
	customerID, ok := parseID(ctx)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	orders, err := c.customerService.RecentOrders(ctx.Request.Context(), customerID, limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "customer orders retrieved successfully")
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		response.HandleError(ctx, err, "invalid customer id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}
