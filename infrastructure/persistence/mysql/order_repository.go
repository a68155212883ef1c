package mysql

import (
	"context"
	"errors"
	"fmt"

	"kocho-pos/domain/order"
	"kocho-pos/infrastructure/persistence"
	"kocho-pos/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository implements order.Repository using GORM.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context when present, the base connection
// otherwise.
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create inserts the order header and its lines, then writes the generated
// identifiers back into the aggregate.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	db := r.getDB(ctx)

	orderPO, linePOs := po.FromOrderDomain(o)
	if err := db.Create(orderPO).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	lineIDs := make([]uint, 0, len(linePOs))
	for _, lp := range linePOs {
		lp.OrderID = orderPO.ID
		if err := db.Create(lp).Error; err != nil {
			return fmt.Errorf("failed to create order line: %w", err)
		}
		lineIDs = append(lineIDs, lp.ID)
	}

	o.AssignIdentity(orderPO.ID, lineIDs)
	return nil
}

// Save updates the order header. Lines are immutable after creation and are
// never rewritten.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := r.getDB(ctx)

	orderPO, _ := po.FromOrderDomain(o)
	result := db.Model(&po.OrderPO{}).Where("id = ?", orderPO.ID).Updates(map[string]interface{}{
		"payment_status": orderPO.PaymentStatus,
		"status":         orderPO.Status,
		"notes":          orderPO.Notes,
		"completed_at":   orderPO.CompletedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to save order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// FindByID loads one order aggregate with its lines.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	if err := db.First(&orderPO, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	lines, err := r.loadLines(db, []uint{orderPO.ID})
	if err != nil {
		return nil, err
	}
	return po.ToOrderDomain(&orderPO, lines[orderPO.ID]), nil
}

// List returns a page of orders matching the filter plus the unpaginated
// total, newest first.
func (r *OrderRepository) List(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	db := r.getDB(ctx)

	query := db.Model(&po.OrderPO{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at < ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	var orderPOs []*po.OrderPO
	err := query.Order("created_at DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&orderPOs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := r.hydrate(db, orderPOs)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindRecent returns the newest orders up to limit.
func (r *OrderRepository) FindRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	db := r.getDB(ctx)

	if limit < 1 {
		limit = 10
	}
	var orderPOs []*po.OrderPO
	err := db.Order("created_at DESC, id DESC").Limit(limit).Find(&orderPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent orders: %w", err)
	}
	return r.hydrate(db, orderPOs)
}

// FindByCustomer returns a customer's newest orders up to limit.
func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID uint, limit int) ([]*order.Order, error) {
	db := r.getDB(ctx)

	if limit < 1 {
		limit = 10
	}
	var orderPOs []*po.OrderPO
	err := db.Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orderPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customer orders: %w", err)
	}
	return r.hydrate(db, orderPOs)
}

// hydrate loads lines for a batch of order rows and rebuilds the aggregates.
func (r *OrderRepository) hydrate(db *gorm.DB, orderPOs []*po.OrderPO) ([]*order.Order, error) {
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}
	ids := make([]uint, 0, len(orderPOs))
	for _, op := range orderPOs {
		ids = append(ids, op.ID)
	}
	lines, err := r.loadLines(db, ids)
	if err != nil {
		return nil, err
	}
	orders := make([]*order.Order, 0, len(orderPOs))
	for _, op := range orderPOs {
		orders = append(orders, po.ToOrderDomain(op, lines[op.ID]))
	}
	return orders, nil
}

func (r *OrderRepository) loadLines(db *gorm.DB, orderIDs []uint) (map[uint][]*po.OrderLinePO, error) {
	var linePOs []*po.OrderLinePO
	err := db.Where("order_id IN ?", orderIDs).Order("id ASC").Find(&linePOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	grouped := make(map[uint][]*po.OrderLinePO, len(orderIDs))
	for _, lp := range linePOs {
		grouped[lp.OrderID] = append(grouped[lp.OrderID], lp)
	}
	return grouped, nil
}

var _ order.Repository = (*OrderRepository)(nil)
