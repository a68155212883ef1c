// Package po contains persistence objects: flat structs with gorm tags that
// mirror table rows. Domain objects never carry gorm tags; each PO converts
// to and from its domain counterpart.
package po

import (
	"time"

	"kocho-pos/domain/order"
)

// OrderPO is the persistence object for the orders table.
type OrderPO struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"`
	OrderNumber   string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	CustomerID    *uint      `gorm:"index"`
	CreatedBy     uint       `gorm:"not null"`
	TotalAmount   float64    `gorm:"type:decimal(10,2);not null"`
	Discount      float64    `gorm:"type:decimal(10,2);not null;default:0"`
	FinalAmount   float64    `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string     `gorm:"type:varchar(20);not null;default:'cash'"`
	PaymentStatus string     `gorm:"type:varchar(20);not null;default:'pending'"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes         string     `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"not null;index"`
	CompletedAt   *time.Time `gorm:""`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderLinePO is the persistence object for the order_items table.
type OrderLinePO struct {
	ID             uint    `gorm:"primaryKey;autoIncrement"`
	OrderID        uint    `gorm:"not null;index"`
	ItemType       string  `gorm:"type:varchar(20);not null"`
	ItemID         *uint   `gorm:""`
	ItemName       string  `gorm:"type:varchar(120);not null"`
	Quantity       int     `gorm:"not null"`
	UnitPrice      float64 `gorm:"type:decimal(10,2);not null"`
	TotalPrice     float64 `gorm:"type:decimal(10,2);not null"`
	Specifications string  `gorm:"type:text"`
}

func (OrderLinePO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts an order aggregate to its persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []*OrderLinePO) {
	orderPO := &OrderPO{
		ID:            o.ID(),
		OrderNumber:   o.OrderNumber(),
		CustomerID:    o.CustomerID(),
		CreatedBy:     o.CreatedBy(),
		TotalAmount:   o.TotalAmount(),
		Discount:      o.Discount(),
		FinalAmount:   o.FinalAmount(),
		PaymentMethod: o.PaymentMethod(),
		PaymentStatus: string(o.PaymentStatus()),
		Status:        string(o.Status()),
		Notes:         o.Notes(),
		CreatedAt:     o.CreatedAt(),
		CompletedAt:   o.CompletedAt(),
	}

	lines := o.Lines()
	linePOs := make([]*OrderLinePO, 0, len(lines))
	for _, line := range lines {
		linePOs = append(linePOs, &OrderLinePO{
			ID:             line.ID(),
			OrderID:        o.ID(),
			ItemType:       string(line.Kind()),
			ItemID:         line.ItemID(),
			ItemName:       line.ItemName(),
			Quantity:       line.Quantity(),
			UnitPrice:      line.UnitPrice(),
			TotalPrice:     line.Total(),
			Specifications: line.Specifications(),
		})
	}
	return orderPO, linePOs
}

// ToOrderDomain rebuilds an order aggregate from its persistence objects.
// linePOs must already be scoped to this order and sorted by id.
func ToOrderDomain(orderPO *OrderPO, linePOs []*OrderLinePO) *order.Order {
	lines := make([]order.Line, 0, len(linePOs))
	for _, lp := range linePOs {
		lines = append(lines, order.RebuildLine(order.LineReconstructionDTO{
			ID:             lp.ID,
			Kind:           order.ItemKind(lp.ItemType),
			ItemID:         lp.ItemID,
			ItemName:       lp.ItemName,
			Quantity:       lp.Quantity,
			UnitPrice:      lp.UnitPrice,
			Total:          lp.TotalPrice,
			Specifications: lp.Specifications,
		}))
	}

	return order.Rebuild(order.ReconstructionDTO{
		ID:            orderPO.ID,
		OrderNumber:   orderPO.OrderNumber,
		CustomerID:    orderPO.CustomerID,
		CreatedBy:     orderPO.CreatedBy,
		Lines:         lines,
		TotalAmount:   orderPO.TotalAmount,
		Discount:      orderPO.Discount,
		FinalAmount:   orderPO.FinalAmount,
		PaymentMethod: orderPO.PaymentMethod,
		PaymentStatus: order.PaymentStatus(orderPO.PaymentStatus),
		Status:        order.Status(orderPO.Status),
		Notes:         orderPO.Notes,
		CreatedAt:     orderPO.CreatedAt,
		CompletedAt:   orderPO.CompletedAt,
	})
}
