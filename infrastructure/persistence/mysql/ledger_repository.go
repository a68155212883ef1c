package mysql

import (
	"context"
	"errors"
	"fmt"

	"kocho-pos/domain/ledger"
	"kocho-pos/infrastructure/persistence"
	"kocho-pos/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// LedgerRepository implements ledger.Repository using GORM. The ledger is
// append-only; this repository has no update or delete paths for transactions.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// AppendTransaction writes one financial record.
func (r *LedgerRepository) AppendTransaction(ctx context.Context, t *ledger.Transaction) error {
	db := r.getDB(ctx)

	transactionPO := po.FromTransactionDomain(t)
	if err := db.Create(transactionPO).Error; err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	t.ID = transactionPO.ID
	t.CreatedAt = transactionPO.CreatedAt
	return nil
}

// ListTransactions returns transactions matching the filter, newest first.
func (r *LedgerRepository) ListTransactions(ctx context.Context, filter ledger.TransactionFilter) ([]*ledger.Transaction, error) {
	db := r.getDB(ctx)

	query := db.Model(&po.TransactionPO{})
	if filter.Kind != "" {
		query = query.Where("transaction_type = ?", string(filter.Kind))
	}
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at < ?", *filter.DateTo)
	}

	var transactionPOs []*po.TransactionPO
	if err := query.Order("created_at DESC, id DESC").Find(&transactionPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*ledger.Transaction, 0, len(transactionPOs))
	for _, tp := range transactionPOs {
		transactions = append(transactions, tp.ToTransactionDomain())
	}
	return transactions, nil
}

// CreateExpense writes one expense record.
func (r *LedgerRepository) CreateExpense(ctx context.Context, e *ledger.Expense) error {
	db := r.getDB(ctx)

	expensePO := po.FromExpenseDomain(e)
	if err := db.Create(expensePO).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	e.ID = expensePO.ID
	e.CreatedAt = expensePO.CreatedAt
	return nil
}

// FindExpenseByID loads one expense.
func (r *LedgerRepository) FindExpenseByID(ctx context.Context, id uint) (*ledger.Expense, error) {
	db := r.getDB(ctx)

	var expensePO po.ExpensePO
	if err := db.First(&expensePO, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return expensePO.ToExpenseDomain(), nil
}

// ListExpenses returns a page of expenses matching the filter plus the
// unpaginated total, newest first.
func (r *LedgerRepository) ListExpenses(ctx context.Context, filter ledger.ExpenseFilter) ([]*ledger.Expense, int64, error) {
	db := r.getDB(ctx)

	query := db.Model(&po.ExpensePO{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at < ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	var expensePOs []*po.ExpensePO
	err := query.Order("created_at DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&expensePOs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := make([]*ledger.Expense, 0, len(expensePOs))
	for _, ep := range expensePOs {
		expenses = append(expenses, ep.ToExpenseDomain())
	}
	return expenses, total, nil
}

var _ ledger.Repository = (*LedgerRepository)(nil)
