package errors

import (
	"fmt"
	"testing"

	"kocho-pos/domain/customer"
	"kocho-pos/domain/inventory"
	"kocho-pos/domain/order"

	"github.com/stretchr/testify/assert"
)

func TestFromDomainError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"order not found", order.ErrOrderNotFound, CodeOrderNotFound},
		{"wrapped order not found", fmt.Errorf("load: %w", order.ErrOrderNotFound), CodeOrderNotFound},
		{"empty lines", order.ErrEmptyOrderLines, CodeValidation},
		{"invalid transition", order.ErrInvalidStatusTransition, CodeInvalidOrderState},
		{"cancel completed", order.ErrCancelCompleted, CodeInvalidOrderState},
		{"insufficient stock", inventory.NewInsufficientStockError("A4 Paper Ream", 3, 1), CodeInsufficientStock},
		{"item not found", inventory.ErrItemNotFound, CodeItemNotFound},
		{"duplicate sku", inventory.ErrDuplicateSKU, CodeDuplicateSKU},
		{"duplicate phone", customer.ErrDuplicatePhone, CodeDuplicatePhone},
		{"unknown error", fmt.Errorf("disk on fire"), CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			assert.Equal(t, tc.want, appErr.Code)
		})
	}
}

func TestFromDomainErrorPassesAppErrorThrough(t *testing.T) {
	original := Validation("bad date format")
	assert.Same(t, original, FromDomainError(original))
}

func TestFromDomainErrorKeepsStockDetails(t *testing.T) {
	appErr := FromDomainError(inventory.NewInsufficientStockError("Ink Cartridge", 4, 2))
	assert.Contains(t, appErr.Message, "Ink Cartridge")
	assert.Contains(t, appErr.Message, "requested 4")
}
