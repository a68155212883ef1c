// Package ledger - expenses and transaction ledger API controller.
// Financial records are owner-only.
package ledger

import (
	"net/http"
	"strconv"

	"kocho-pos/api/middleware"
	"kocho-pos/api/response"
	ledgerapp "kocho-pos/application/ledger"

	"github.com/gin-gonic/gin"
)

// Controller Ledger controller
type Controller struct {
	ledgerService *ledgerapp.Service
}

// NewController Create ledger controller
func NewController(ledgerService *ledgerapp.Service) *Controller {
	return &Controller{
		ledgerService: ledgerService,
	}
}

// RegisterRoutes Register ledger routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	owner := router.Group("", middleware.RequireOwner())
	{
		expenses := owner.Group("/expenses")
		{
			expenses.POST("", c.CreateExpense)
			expenses.GET("", c.ListExpenses)
			expenses.GET("/:id", c.GetExpense)
		}
		owner.GET("/transactions", c.ListTransactions)
	}
}

// CreateExpense
// POST /api/v1/expenses
func (c *Controller) CreateExpense(ctx *gin.Context) {
	var req ledgerapp.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	expense, err := c.ledgerService.CreateExpense(ctx.Request.Context(), middleware.ActorID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, expense, "expense recorded successfully")
}

// ListExpenses
// GET /api/v1/expenses
func (c *Controller) ListExpenses(ctx *gin.Context) {
	var query ledgerapp.ListExpensesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.ledgerService.ListExpenses(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, result.Expenses,
		response.NewPagination(result.Page, result.PerPage, result.Total),
		"expenses retrieved successfully")
}

// GetExpense
// GET /api/v1/expenses/:id
func (c *Controller) GetExpense(ctx *gin.Context) {
	expenseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		response.HandleError(ctx, err, "invalid expense id", http.StatusBadRequest)
		return
	}

	expense, appErr := c.ledgerService.GetExpense(ctx.Request.Context(), uint(expenseID))
	if appErr != nil {
		response.HandleAppError(ctx, appErr)
		return
	}

	response.HandleSuccess(ctx, expense, "expense retrieved successfully")
}

// ListTransactions
// GET /api/v1/transactions
func (c *Controller) ListTransactions(ctx *gin.Context) {
	var query ledgerapp.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	transactions, err := c.ledgerService.ListTransactions(ctx.Request.Context(), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, transactions, "transactions retrieved successfully")
}
