package inventory

import "context"

// Filter Listing filter for inventory items.
type Filter struct {
	Category string
	Search   string // matches name or SKU
	LowStock bool
	Page     int
	PerPage  int
}

// Repository Persistence contract for the stock ledger.
//
// Reserve is the atomic check-and-decrement: it locks the item row, verifies
// availability and decrements in one step, failing with InsufficientStockError
// when on-hand quantity is short. Release is an unconditional additive restock
// and silently ignores unknown items (cancellation of an order whose catalog
// item has since been deleted must still succeed). Both participate in the
// caller's transaction when one is present in the context.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Item, error)
	FindBySKU(ctx context.Context, sku string) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	Reserve(ctx context.Context, itemID uint, qty int) error
	Release(ctx context.Context, itemID uint, qty int) error
}
