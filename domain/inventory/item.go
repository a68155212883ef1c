// Package inventory owns physical stock. The one invariant that matters:
// an item's on-hand quantity never goes below zero under any committed
// operation.
package inventory

import "time"

// Item A physical stock item.
type Item struct {
	ID           uint
	Name         string
	Category     string
	SKU          string
	Quantity     int
	MinQuantity  int
	UnitPrice    float64 // cost price
	SellingPrice float64
	Supplier     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock reports whether the item is at or below its reorder threshold.
// Derived, never persisted.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}

// Reserve decrements on-hand stock after checking availability. Must be called
// with the item row locked (or on an otherwise serialized copy) so the check
// and decrement are atomic.
func (i *Item) Reserve(qty int) error {
	if qty <= 0 {
		return ErrInvalidAdjustment
	}
	if i.Quantity < qty {
		return NewInsufficientStockError(i.Name, qty, i.Quantity)
	}
	i.Quantity -= qty
	return nil
}

// Release adds stock back unconditionally. Used both for order cancellation
// restock and administrative additions; there is no upper cap.
func (i *Item) Release(qty int) error {
	if qty <= 0 {
		return ErrInvalidAdjustment
	}
	i.Quantity += qty
	return nil
}
