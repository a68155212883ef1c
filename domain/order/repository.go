package order

import (
	"context"
	"time"
)

// Filter Listing filter for orders.
type Filter struct {
	Status     Status
	CustomerID *uint
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PerPage    int
}

// Repository Persistence contract for the Order aggregate.
//
// Create and Save must run inside the caller's transaction when one is present
// in the context; deleting an order cascades to its lines.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, filter Filter) ([]*Order, int64, error)
	FindRecent(ctx context.Context, limit int) ([]*Order, error)
	FindByCustomer(ctx context.Context, customerID uint, limit int) ([]*Order, error)
}
