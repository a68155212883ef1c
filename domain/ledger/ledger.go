// Package ledger holds the financial records: transactions and expenses.
// Both are append-only; the order engine writes sale transactions and never
// mutates or deletes existing entries.
package ledger

import (
	"context"
	"errors"
	"time"
)

var ErrExpenseNotFound = errors.New("expense not found")

// TransactionKind Financial record kind.
type TransactionKind string

const (
	KindSale    TransactionKind = "sale"
	KindExpense TransactionKind = "expense"
	KindRefund  TransactionKind = "refund"
)

// Transaction An immutable financial record. OrderID links sale transactions
// back to the order that produced them.
type Transaction struct {
	ID              uint
	OrderID         *uint
	Kind            TransactionKind
	Amount          float64
	PaymentMethod   string
	ReferenceNumber string
	Description     string
	CreatedBy       uint
	CreatedAt       time.Time
}

// Expense An operating expense (rent, utilities, supplies, salary).
type Expense struct {
	ID            uint
	Category      string
	Description   string
	Amount        float64
	PaymentMethod string
	ReceiptNumber string
	CreatedBy     uint
	CreatedAt     time.Time
}

// TransactionFilter Listing filter for transactions.
type TransactionFilter struct {
	Kind     TransactionKind
	OrderID  *uint
	DateFrom *time.Time
	DateTo   *time.Time
}

// ExpenseFilter Listing filter for expenses.
type ExpenseFilter struct {
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PerPage  int
}

// Repository Persistence contract for the ledger. Append-only: there are no
// update or delete operations on transactions.
type Repository interface {
	AppendTransaction(ctx context.Context, t *Transaction) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*Transaction, error)
	CreateExpense(ctx context.Context, e *Expense) error
	FindExpenseByID(ctx context.Context, id uint) (*Expense, error)
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*Expense, int64, error)
}
