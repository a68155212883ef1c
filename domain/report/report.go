// Package report defines the read models behind the reporting endpoints.
// Reports are on-demand projections computed from live tables; nothing here
// is persisted or cached.
package report

import (
	"context"
	"time"
)

// DailySales One day's aggregated sales.
type DailySales struct {
	Date   string
	Orders int64
	Total  float64
}

// ItemSales Aggregated sales for one sold item name.
type ItemSales struct {
	ItemName string
	Kind     string
	Orders   int64
	Quantity int64
	Revenue  float64
}

// MethodSales Aggregated sales for one payment method.
type MethodSales struct {
	PaymentMethod string
	Count         int64
	Total         float64
}

// CategoryExpense Aggregated expenses for one category.
type CategoryExpense struct {
	Category string
	Total    float64
}

// Valuation Inventory worth at cost and at selling price.
type Valuation struct {
	CostValue   float64
	RetailValue float64
}

// Repository Read-only aggregation queries for reports. Implementations must
// never write.
type Repository interface {
	SalesTotalBetween(ctx context.Context, from, to time.Time) (float64, error)
	OrderCountBetween(ctx context.Context, from, to time.Time) (int64, error)
	OrderCountByStatus(ctx context.Context, status string) (int64, error)
	LowStockCount(ctx context.Context) (int64, error)
	CustomerCount(ctx context.Context) (int64, error)
	DailySales(ctx context.Context, from, to time.Time) ([]DailySales, error)
	SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]MethodSales, error)
	SalesByItem(ctx context.Context, from, to time.Time) ([]ItemSales, error)
	InventoryValuation(ctx context.Context) (Valuation, error)
	ExpenseTotalBetween(ctx context.Context, from, to time.Time) (float64, error)
	ExpensesByCategory(ctx context.Context, from, to time.Time) ([]CategoryExpense, error)
}
