// Package ledger implements expense recording and the transaction listing.
// Expenses also land in the transaction ledger so profit and loss can be
// computed from one table.
package ledger

import (
	"context"
	"fmt"
	"time"

	"kocho-pos/domain/ledger"
	"kocho-pos/domain/shared"
	apperrors "kocho-pos/pkg/errors"
)

// CreateExpenseRequest Input for recording an operating expense.
type CreateExpenseRequest struct {
	Category      string  `json:"category" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method"`
	ReceiptNumber string  `json:"receipt_number"`
}

// ListExpensesQuery Listing filters, bound from query parameters.
type ListExpensesQuery struct {
	Category string `form:"category"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page,default=1"`
	PerPage  int    `form:"per_page,default=20"`
}

// ListTransactionsQuery Listing filters for the transaction ledger.
type ListTransactionsQuery struct {
	Kind     string `form:"type" binding:"omitempty,oneof=sale expense refund"`
	OrderID  *uint  `form:"order_id"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// ExpenseResponse Expense representation returned to callers.
type ExpenseResponse struct {
	ID            uint    `json:"id"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	ReceiptNumber string  `json:"receipt_number,omitempty"`
	CreatedBy     uint    `json:"created_by"`
	CreatedAt     string  `json:"created_at"`
}

// ListExpensesResponse One page of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

// TransactionResponse Financial record returned to callers.
type TransactionResponse struct {
	ID              uint    `json:"id"`
	OrderID         *uint   `json:"order_id,omitempty"`
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	PaymentMethod   string  `json:"payment_method,omitempty"`
	ReferenceNumber string  `json:"reference_number,omitempty"`
	Description     string  `json:"description,omitempty"`
	CreatedBy       uint    `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
}

func toExpenseResponse(e *ledger.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		PaymentMethod: e.PaymentMethod,
		ReceiptNumber: e.ReceiptNumber,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toTransactionResponse(t *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		OrderID:         t.OrderID,
		Type:            string(t.Kind),
		Amount:          t.Amount,
		PaymentMethod:   t.PaymentMethod,
		ReferenceNumber: t.ReferenceNumber,
		Description:     t.Description,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Service orchestrates ledger use cases.
type Service struct {
	uow    shared.UnitOfWork
	ledger ledger.Repository
}

// NewService creates a new ledger Service instance
func NewService(uow shared.UnitOfWork, ledgerRepo ledger.Repository) *Service {
	return &Service{uow: uow, ledger: ledgerRepo}
}

// CreateExpense records an operating expense and its mirror transaction in
// one unit of work.
func (s *Service) CreateExpense(ctx context.Context, createdBy uint, req CreateExpenseRequest) (*ExpenseResponse, error) {
	now := time.Now().UTC()
	expense := &ledger.Expense{
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ReceiptNumber: req.ReceiptNumber,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.ledger.CreateExpense(txCtx, expense); err != nil {
			return err
		}
		return s.ledger.AppendTransaction(txCtx, &ledger.Transaction{
			Kind:            ledger.KindExpense,
			Amount:          req.Amount,
			PaymentMethod:   req.PaymentMethod,
			ReferenceNumber: req.ReceiptNumber,
			Description:     fmt.Sprintf("%s: %s", req.Category, req.Description),
			CreatedBy:       createdBy,
			CreatedAt:       now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toExpenseResponse(expense)
	return &resp, nil
}

// GetExpense loads one expense.
func (s *Service) GetExpense(ctx context.Context, expenseID uint) (*ExpenseResponse, error) {
	expense, err := s.ledger.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	resp := toExpenseResponse(expense)
	return &resp, nil
}

// ListExpenses returns a page of expenses matching the query.
func (s *Service) ListExpenses(ctx context.Context, query ListExpensesQuery) (*ListExpensesResponse, error) {
	filter := ledger.ExpenseFilter{
		Category: query.Category,
		Page:     query.Page,
		PerPage:  query.PerPage,
	}
	var err error
	if filter.DateFrom, filter.DateTo, err = parseDateRange(query.DateFrom, query.DateTo); err != nil {
		return nil, err
	}

	expenses, total, err := s.ledger.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 20
	}
	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, toExpenseResponse(e))
	}
	return &ListExpensesResponse{
		Expenses: responses,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

// ListTransactions returns financial records matching the query, newest
// first.
func (s *Service) ListTransactions(ctx context.Context, query ListTransactionsQuery) ([]TransactionResponse, error) {
	filter := ledger.TransactionFilter{
		Kind:    ledger.TransactionKind(query.Kind),
		OrderID: query.OrderID,
	}
	var err error
	if filter.DateFrom, filter.DateTo, err = parseDateRange(query.DateFrom, query.DateTo); err != nil {
		return nil, err
	}

	transactions, err := s.ledger.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, toTransactionResponse(t))
	}
	return responses, nil
}

// parseDateRange parses optional YYYY-MM-DD bounds; the end date is
// inclusive.
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, apperrors.Validation("invalid date_from, expected YYYY-MM-DD")
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, apperrors.Validation("invalid date_to, expected YYYY-MM-DD")
		}
		end := t.Add(24 * time.Hour)
		to = &end
	}
	return from, to, nil
}
