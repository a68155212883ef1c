// Package report implements the reporting read side: on-demand projections
// over orders, transactions, expenses and stock. Nothing here mutates state.
package report

import (
	"context"
	"time"

	"kocho-pos/domain/inventory"
	"kocho-pos/domain/report"
	apperrors "kocho-pos/pkg/errors"
)

// DashboardResponse Headline numbers for the counter screen.
type DashboardResponse struct {
	TodaySales     float64        `json:"today_sales"`
	TodayOrders    int64          `json:"today_orders"`
	MonthSales     float64        `json:"month_sales"`
	PendingOrders  int64          `json:"pending_orders"`
	LowStockItems  int64          `json:"low_stock_items"`
	TotalCustomers int64          `json:"total_customers"`
	TopItems       []ItemSalesRow `json:"top_items"`
}

// dashboardTopItems caps the best-seller list on the dashboard.
const dashboardTopItems = 5

// SalesReportResponse Per-day sales over a period with the payment-method
// split.
type SalesReportResponse struct {
	DateFrom   string           `json:"date_from"`
	DateTo     string           `json:"date_to"`
	Days       []DailySalesRow  `json:"days"`
	ByMethod   []MethodSalesRow `json:"by_payment_method"`
	TotalSales float64          `json:"total_sales"`
	TotalCount int64            `json:"total_count"`
}

// MethodSalesRow One payment method in a sales report.
type MethodSalesRow struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int64   `json:"count"`
	Total         float64 `json:"total"`
}

// DailySalesRow One day in a sales report.
type DailySalesRow struct {
	Date   string  `json:"date"`
	Orders int64   `json:"orders"`
	Total  float64 `json:"total"`
}

// ItemSalesRow One sold item in the services report.
type ItemSalesRow struct {
	ItemName string  `json:"item_name"`
	Kind     string  `json:"kind"`
	Orders   int64   `json:"orders"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// InventoryReportResponse Stock valuation plus the low-stock list.
type InventoryReportResponse struct {
	TotalItems    int64          `json:"total_items"`
	CostValue     float64        `json:"cost_value"`
	RetailValue   float64        `json:"retail_value"`
	LowStockItems []LowStockItem `json:"low_stock_items"`
}

// LowStockItem One item at or below its reorder threshold.
type LowStockItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	SKU         string `json:"sku,omitempty"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}

// ProfitLossResponse Revenue against expenses over a period.
type ProfitLossResponse struct {
	DateFrom   string               `json:"date_from"`
	DateTo     string               `json:"date_to"`
	Revenue    float64              `json:"revenue"`
	Expenses   float64              `json:"expenses"`
	NetProfit  float64              `json:"net_profit"`
	ByCategory []CategoryExpenseRow `json:"expenses_by_category"`
}

// CategoryExpenseRow One expense category in a profit and loss statement.
type CategoryExpenseRow struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// PeriodQuery Optional report period, bound from query parameters. Defaults
// to the last 30 days.
type PeriodQuery struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// Service computes reports.
type Service struct {
	reports report.Repository
	items   inventory.Repository
}

// NewService creates a new report Service instance
func NewService(reports report.Repository, items inventory.Repository) *Service {
	return &Service{reports: reports, items: items}
}

// Dashboard returns the counter screen headline numbers.
func (s *Service) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	todaySales, err := s.reports.SalesTotalBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	todayOrders, err := s.reports.OrderCountBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	pending, err := s.reports.OrderCountByStatus(ctx, "pending")
	if err != nil {
		return nil, err
	}
	lowStock, err := s.reports.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.reports.CustomerCount(ctx)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthSales, err := s.reports.SalesTotalBetween(ctx, monthStart, to)
	if err != nil {
		return nil, err
	}
	topRows, err := s.reports.SalesByItem(ctx, monthStart, to)
	if err != nil {
		return nil, err
	}
	if len(topRows) > dashboardTopItems {
		topRows = topRows[:dashboardTopItems]
	}
	topItems := make([]ItemSalesRow, 0, len(topRows))
	for _, r := range topRows {
		topItems = append(topItems, ItemSalesRow(r))
	}

	return &DashboardResponse{
		TodaySales:     todaySales,
		TodayOrders:    todayOrders,
		MonthSales:     monthSales,
		PendingOrders:  pending,
		LowStockItems:  lowStock,
		TotalCustomers: customers,
		TopItems:       topItems,
	}, nil
}

// Sales returns per-day sales over the requested period.
func (s *Service) Sales(ctx context.Context, query PeriodQuery) (*SalesReportResponse, error) {
	from, to, err := resolvePeriod(query)
	if err != nil {
		return nil, err
	}

	days, err := s.reports.DailySales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.reports.SalesByPaymentMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &SalesReportResponse{
		DateFrom: from.Format("2006-01-02"),
		DateTo:   to.Add(-24 * time.Hour).Format("2006-01-02"),
		Days:     make([]DailySalesRow, 0, len(days)),
		ByMethod: make([]MethodSalesRow, 0, len(byMethod)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, DailySalesRow(d))
		resp.TotalSales += d.Total
		resp.TotalCount += d.Orders
	}
	for _, m := range byMethod {
		resp.ByMethod = append(resp.ByMethod, MethodSalesRow(m))
	}
	return resp, nil
}

// Items returns revenue per sold item name over the requested period, best
// sellers first.
func (s *Service) Items(ctx context.Context, query PeriodQuery) ([]ItemSalesRow, error) {
	from, to, err := resolvePeriod(query)
	if err != nil {
		return nil, err
	}

	rows, err := s.reports.SalesByItem(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]ItemSalesRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ItemSalesRow(r))
	}
	return out, nil
}

// Inventory returns stock valuation and the low-stock list.
func (s *Service) Inventory(ctx context.Context) (*InventoryReportResponse, error) {
	valuation, err := s.reports.InventoryValuation(ctx)
	if err != nil {
		return nil, err
	}
	_, total, err := s.items.List(ctx, inventory.Filter{Page: 1, PerPage: 1})
	if err != nil {
		return nil, err
	}
	lowStock, _, err := s.items.List(ctx, inventory.Filter{LowStock: true, PerPage: 500})
	if err != nil {
		return nil, err
	}

	resp := &InventoryReportResponse{
		TotalItems:    total,
		CostValue:     valuation.CostValue,
		RetailValue:   valuation.RetailValue,
		LowStockItems: make([]LowStockItem, 0, len(lowStock)),
	}
	for _, item := range lowStock {
		resp.LowStockItems = append(resp.LowStockItems, LowStockItem{
			ID:          item.ID,
			Name:        item.Name,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			MinQuantity: item.MinQuantity,
		})
	}
	return resp, nil
}

// ProfitLoss returns revenue against expenses over the requested period.
func (s *Service) ProfitLoss(ctx context.Context, query PeriodQuery) (*ProfitLossResponse, error) {
	from, to, err := resolvePeriod(query)
	if err != nil {
		return nil, err
	}

	revenue, err := s.reports.SalesTotalBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reports.ExpenseTotalBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.reports.ExpensesByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &ProfitLossResponse{
		DateFrom:   from.Format("2006-01-02"),
		DateTo:     to.Add(-24 * time.Hour).Format("2006-01-02"),
		Revenue:    revenue,
		Expenses:   expenses,
		NetProfit:  revenue - expenses,
		ByCategory: make([]CategoryExpenseRow, 0, len(byCategory)),
	}
	for _, c := range byCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryExpenseRow(c))
	}
	return resp, nil
}

// resolvePeriod parses the optional period bounds. The end date is inclusive;
// without bounds the period is the last 30 days.
func resolvePeriod(query PeriodQuery) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	from := to.Add(-31 * 24 * time.Hour)

	if query.DateFrom != "" {
		t, err := time.Parse("2006-01-02", query.DateFrom)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.Validation("invalid date_from, expected YYYY-MM-DD")
		}
		from = t
	}
	if query.DateTo != "" {
		t, err := time.Parse("2006-01-02", query.DateTo)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.Validation("invalid date_to, expected YYYY-MM-DD")
		}
		to = t.Add(24 * time.Hour)
	}
	return from, to, nil
}
