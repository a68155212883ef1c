package errors

import (
	stderrors "errors"

	"kocho-pos/domain/catalog"
	"kocho-pos/domain/customer"
	"kocho-pos/domain/inventory"
	"kocho-pos/domain/ledger"
	"kocho-pos/domain/order"
)

// FromDomainError translates a domain sentinel into an AppError carrying the
// matching error code. Unknown errors become internal errors; an AppError
// passes through untouched.
func FromDomainError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var stockErr *inventory.InsufficientStockError
	if stderrors.As(err, &stockErr) {
		return Wrap(err, CodeInsufficientStock, stockErr.Error())
	}

	switch {
	case stderrors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, "order not found")
	case stderrors.Is(err, order.ErrEmptyOrderLines),
		stderrors.Is(err, order.ErrInvalidItemKind),
		stderrors.Is(err, order.ErrMissingItemName),
		stderrors.Is(err, order.ErrInvalidQuantity),
		stderrors.Is(err, order.ErrNegativeUnitPrice),
		stderrors.Is(err, order.ErrInvalidStatus),
		stderrors.Is(err, order.ErrInvalidPaymentStatus):
		return Wrap(err, CodeValidation, err.Error())
	case stderrors.Is(err, order.ErrInvalidStatusTransition),
		stderrors.Is(err, order.ErrCancelCompleted):
		return Wrap(err, CodeInvalidOrderState, err.Error())
	case stderrors.Is(err, inventory.ErrItemNotFound):
		return Wrap(err, CodeItemNotFound, "inventory item not found")
	case stderrors.Is(err, inventory.ErrDuplicateSKU):
		return Wrap(err, CodeDuplicateSKU, "an item with this SKU already exists")
	case stderrors.Is(err, inventory.ErrInvalidAdjustment):
		return Wrap(err, CodeValidation, err.Error())
	case stderrors.Is(err, inventory.ErrInsufficientStock):
		return Wrap(err, CodeInsufficientStock, err.Error())
	case stderrors.Is(err, catalog.ErrServiceNotFound):
		return Wrap(err, CodeServiceNotFound, "service not found")
	case stderrors.Is(err, customer.ErrCustomerNotFound):
		return Wrap(err, CodeCustomerNotFound, "customer not found")
	case stderrors.Is(err, customer.ErrDuplicatePhone):
		return Wrap(err, CodeDuplicatePhone, "a customer with this phone number already exists")
	case stderrors.Is(err, ledger.ErrExpenseNotFound):
		return Wrap(err, CodeNotFound, "expense not found")
	}

	return Wrap(err, CodeInternal, "internal server error")
}
