package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	item := &Item{Name: "A4 Paper Ream", Quantity: 5}

	require.NoError(t, item.Reserve(2))
	assert.Equal(t, 3, item.Quantity)

	err := item.Reserve(4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, item.Quantity)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "A4 Paper Ream", stockErr.ItemName)
	assert.Equal(t, 4, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	item := &Item{Quantity: 5}
	assert.ErrorIs(t, item.Reserve(0), ErrInvalidAdjustment)
	assert.ErrorIs(t, item.Reserve(-1), ErrInvalidAdjustment)
	assert.Equal(t, 5, item.Quantity)
}

func TestReleaseHasNoCap(t *testing.T) {
	item := &Item{Quantity: 5}
	require.NoError(t, item.Release(1000))
	assert.Equal(t, 1005, item.Quantity)

	assert.ErrorIs(t, item.Release(0), ErrInvalidAdjustment)
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, (&Item{Quantity: 5, MinQuantity: 5}).IsLowStock())
	assert.True(t, (&Item{Quantity: 0, MinQuantity: 5}).IsLowStock())
	assert.False(t, (&Item{Quantity: 6, MinQuantity: 5}).IsLowStock())
}
