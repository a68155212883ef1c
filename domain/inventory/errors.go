package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrInvalidAdjustment = errors.New("adjustment quantity must be positive")
	// ErrInsufficientStock is the sentinel behind InsufficientStockError,
	// for errors.Is checks.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError carries the conflicting item's display name so the
// caller can tell the operator which item blocked the order.
type InsufficientStockError struct {
	ItemName  string
	Requested int
	Available int
}

func NewInsufficientStockError(name string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ItemName: name, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ItemName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
