package order

import "errors"

// Sentinel errors for the order domain. Callers branch with errors.Is; the api
// layer maps them onto coded application errors.
var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrEmptyOrderLines         = errors.New("order must have at least one item")
	ErrInvalidItemKind         = errors.New("item type must be service or product")
	ErrMissingItemName         = errors.New("item name is required")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrNegativeUnitPrice       = errors.New("unit price cannot be negative")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidPaymentStatus    = errors.New("invalid payment status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrCancelCompleted         = errors.New("cannot cancel completed order")
)
