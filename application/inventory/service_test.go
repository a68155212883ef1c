package inventory

import (
	"context"
	"testing"

	"kocho-pos/domain/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughUnitOfWork struct{}

func (passthroughUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	items  map[uint]inventory.Item
	nextID uint
}

func newMemRepo(items ...inventory.Item) *memRepo {
	r := &memRepo{items: make(map[uint]inventory.Item), nextID: 1}
	for _, item := range items {
		r.items[item.ID] = item
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
	}
	return r
}

func (r *memRepo) Create(ctx context.Context, item *inventory.Item) error {
	for _, existing := range r.items {
		if item.SKU != "" && existing.SKU == item.SKU {
			return inventory.ErrDuplicateSKU
		}
	}
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = *item
	return nil
}

func (r *memRepo) Save(ctx context.Context, item *inventory.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	return &item, nil
}

func (r *memRepo) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			return &item, nil
		}
	}
	return nil, inventory.ErrItemNotFound
}

func (r *memRepo) List(ctx context.Context, filter inventory.Filter) ([]*inventory.Item, int64, error) {
	var out []*inventory.Item
	for id := range r.items {
		item := r.items[id]
		if filter.LowStock && !item.IsLowStock() {
			continue
		}
		out = append(out, &item)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) ListCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, item := range r.items {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out, nil
}

func (r *memRepo) Reserve(ctx context.Context, itemID uint, qty int) error {
	item, ok := r.items[itemID]
	if !ok {
		return inventory.ErrItemNotFound
	}
	if err := item.Reserve(qty); err != nil {
		return err
	}
	r.items[itemID] = item
	return nil
}

func (r *memRepo) Release(ctx context.Context, itemID uint, qty int) error {
	item, ok := r.items[itemID]
	if !ok {
		return nil
	}
	item.Quantity += qty
	r.items[itemID] = item
	return nil
}

func TestAdjustAdd(t *testing.T) {
	repo := newMemRepo(inventory.Item{ID: 1, Name: "A4 Paper Ream", Quantity: 3, MinQuantity: 5})
	svc := NewService(passthroughUnitOfWork{}, repo)

	resp, err := svc.Adjust(context.Background(), 1, AdjustStockRequest{Quantity: 10, Direction: "add"})
	require.NoError(t, err)
	assert.Equal(t, 13, resp.Quantity)
	assert.False(t, resp.IsLowStock)
}

func TestAdjustRemoveCannotGoNegative(t *testing.T) {
	repo := newMemRepo(inventory.Item{ID: 1, Name: "A4 Paper Ream", Quantity: 3})
	svc := NewService(passthroughUnitOfWork{}, repo)

	_, err := svc.Adjust(context.Background(), 1, AdjustStockRequest{Quantity: 5, Direction: "remove"})
	require.Error(t, err)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)

	item, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestAdjustUnknownItem(t *testing.T) {
	svc := NewService(passthroughUnitOfWork{}, newMemRepo())

	// Add on an unknown item must be a not-found, not a silent no-op.
	_, err := svc.Adjust(context.Background(), 9, AdjustStockRequest{Quantity: 1, Direction: "add"})
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
}

func TestUpdateDoesNotTouchQuantity(t *testing.T) {
	repo := newMemRepo(inventory.Item{ID: 1, Name: "Ink", Quantity: 7, UnitPrice: 800})
	svc := NewService(passthroughUnitOfWork{}, repo)

	name := "Ink Cartridge HP 305"
	price := 950.0
	resp, err := svc.Update(context.Background(), 1, UpdateItemRequest{Name: &name, UnitPrice: &price})
	require.NoError(t, err)

	assert.Equal(t, "Ink Cartridge HP 305", resp.Name)
	assert.Equal(t, 950.0, resp.UnitPrice)
	assert.Equal(t, 7, resp.Quantity)
}

func TestLowStock(t *testing.T) {
	repo := newMemRepo(
		inventory.Item{ID: 1, Name: "Low", Quantity: 2, MinQuantity: 5},
		inventory.Item{ID: 2, Name: "Fine", Quantity: 50, MinQuantity: 5},
	)
	svc := NewService(passthroughUnitOfWork{}, repo)

	items, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Low", items[0].Name)
	assert.True(t, items[0].IsLowStock)
}
