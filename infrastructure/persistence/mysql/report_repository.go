package mysql

import (
	"context"
	"fmt"
	"time"

	"kocho-pos/domain/report"
	"kocho-pos/infrastructure/persistence"
	"kocho-pos/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ReportRepository implements report.Repository with aggregation queries over
// the live tables. All methods are read-only.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository instance
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// SalesTotalBetween sums sale transactions in [from, to).
func (r *ReportRepository) SalesTotalBetween(ctx context.Context, from, to time.Time) (float64, error) {
	db := r.getDB(ctx)

	var total *float64
	err := db.Model(&po.TransactionPO{}).
		Select("SUM(amount)").
		Where("transaction_type = ?", "sale").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// OrderCountBetween counts orders created in [from, to).
func (r *ReportRepository) OrderCountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&po.OrderPO{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// OrderCountByStatus counts orders in one lifecycle status.
func (r *ReportRepository) OrderCountByStatus(ctx context.Context, status string) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&po.OrderPO{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders by status: %w", err)
	}
	return count, nil
}

// LowStockCount counts inventory items at or below their reorder threshold.
func (r *ReportRepository) LowStockCount(ctx context.Context) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&po.ItemPO{}).
		Where("quantity <= min_quantity").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock items: %w", err)
	}
	return count, nil
}

// CustomerCount counts all customers.
func (r *ReportRepository) CustomerCount(ctx context.Context) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	if err := db.Model(&po.CustomerPO{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// DailySales aggregates sale transactions per calendar day in [from, to).
func (r *ReportRepository) DailySales(ctx context.Context, from, to time.Time) ([]report.DailySales, error) {
	db := r.getDB(ctx)

	var rows []report.DailySales
	err := db.Model(&po.TransactionPO{}).
		Select("DATE(created_at) AS date, COUNT(*) AS orders, SUM(amount) AS total").
		Where("transaction_type = ?", "sale").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily sales: %w", err)
	}
	return rows, nil
}

// SalesByPaymentMethod aggregates sale transactions per payment method in
// [from, to).
func (r *ReportRepository) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]report.MethodSales, error) {
	db := r.getDB(ctx)

	var rows []report.MethodSales
	err := db.Model(&po.TransactionPO{}).
		Select("payment_method, COUNT(*) AS count, SUM(amount) AS total").
		Where("transaction_type = ?", "sale").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("payment_method").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by payment method: %w", err)
	}
	return rows, nil
}

// SalesByItem aggregates order lines per sold item name over paid orders
// created in [from, to).
func (r *ReportRepository) SalesByItem(ctx context.Context, from, to time.Time) ([]report.ItemSales, error) {
	db := r.getDB(ctx)

	var rows []report.ItemSales
	err := db.Table("order_items").
		Select("order_items.item_name AS item_name, order_items.item_type AS kind, COUNT(DISTINCT order_items.order_id) AS orders, SUM(order_items.quantity) AS quantity, SUM(order_items.total_price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.payment_status = ?", "paid").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Group("order_items.item_name, order_items.item_type").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by item: %w", err)
	}
	return rows, nil
}

// InventoryValuation sums stock worth at cost and at selling price.
func (r *ReportRepository) InventoryValuation(ctx context.Context) (report.Valuation, error) {
	db := r.getDB(ctx)

	var row struct {
		CostValue   *float64
		RetailValue *float64
	}
	err := db.Model(&po.ItemPO{}).
		Select("SUM(quantity * unit_price) AS cost_value, SUM(quantity * selling_price) AS retail_value").
		Scan(&row).Error
	if err != nil {
		return report.Valuation{}, fmt.Errorf("failed to compute inventory valuation: %w", err)
	}
	v := report.Valuation{}
	if row.CostValue != nil {
		v.CostValue = *row.CostValue
	}
	if row.RetailValue != nil {
		v.RetailValue = *row.RetailValue
	}
	return v, nil
}

// ExpenseTotalBetween sums expenses in [from, to).
func (r *ReportRepository) ExpenseTotalBetween(ctx context.Context, from, to time.Time) (float64, error) {
	db := r.getDB(ctx)

	var total *float64
	err := db.Model(&po.ExpensePO{}).
		Select("SUM(amount)").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// ExpensesByCategory aggregates expenses per category in [from, to).
func (r *ReportRepository) ExpensesByCategory(ctx context.Context, from, to time.Time) ([]report.CategoryExpense, error) {
	db := r.getDB(ctx)

	var rows []report.CategoryExpense
	err := db.Model(&po.ExpensePO{}).
		Select("category, SUM(amount) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	return rows, nil
}

var _ report.Repository = (*ReportRepository)(nil)
