// Package inventory implements stock item management and administrative stock
// adjustments on top of the stock ledger.
package inventory

import (
	"context"
	"time"

	"kocho-pos/domain/inventory"
	"kocho-pos/domain/shared"
	"kocho-pos/pkg/logger"

	"go.uber.org/zap"
)

// Service orchestrates inventory use cases.
type Service struct {
	uow   shared.UnitOfWork
	items inventory.Repository
}

// NewService creates a new inventory Service instance
func NewService(uow shared.UnitOfWork, items inventory.Repository) *Service {
	return &Service{uow: uow, items: items}
}

// Create registers a new stock item.
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	now := time.Now().UTC()
	item := &inventory.Item{
		Name:         req.Name,
		Category:     req.Category,
		SKU:          req.SKU,
		Quantity:     req.Quantity,
		MinQuantity:  req.MinQuantity,
		UnitPrice:    req.UnitPrice,
		SellingPrice: req.SellingPrice,
		Supplier:     req.Supplier,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Inventory item created",
		zap.Uint("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Int("quantity", item.Quantity),
	)

	resp := toItemResponse(item)
	return &resp, nil
}

// Update applies a partial patch to a stock item. On-hand quantity is out of
// scope here; it only moves through Adjust and the order engine.
func (s *Service) Update(ctx context.Context, itemID uint, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.SKU != nil {
		item.SKU = *req.SKU
	}
	if req.MinQuantity != nil {
		item.MinQuantity = *req.MinQuantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.SellingPrice != nil {
		item.SellingPrice = *req.SellingPrice
	}
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// Delete removes a stock item. Historical order lines keep their snapshots.
func (s *Service) Delete(ctx context.Context, itemID uint) error {
	return s.items.Delete(ctx, itemID)
}

// Get loads one stock item.
func (s *Service) Get(ctx context.Context, itemID uint) (*ItemResponse, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// List returns a page of stock items matching the query.
func (s *Service) List(ctx context.Context, query ListItemsQuery) (*ListItemsResponse, error) {
	items, total, err := s.items.List(ctx, inventory.Filter{
		Category: query.Category,
		Search:   query.Search,
		LowStock: query.LowStock,
		Page:     query.Page,
		PerPage:  query.PerPage,
	})
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 50
	}
	return &ListItemsResponse{
		Items:   toItemResponses(items),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Categories returns the distinct item categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.items.ListCategories(ctx)
}

// LowStock returns every item at or below its reorder threshold.
func (s *Service) LowStock(ctx context.Context) ([]ItemResponse, error) {
	items, _, err := s.items.List(ctx, inventory.Filter{LowStock: true, PerPage: 500})
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// Adjust applies an administrative stock correction, independent of any
// order. Removal goes through the same atomic reserve path the order engine
// uses, so it can never drive stock negative.
func (s *Service) Adjust(ctx context.Context, itemID uint, req AdjustStockRequest) (*ItemResponse, error) {
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		// Resolve first so an unknown item is a not-found, even for add
		// (Release alone would silently no-op).
		if _, err := s.items.FindByID(txCtx, itemID); err != nil {
			return err
		}
		switch req.Direction {
		case "add":
			return s.items.Release(txCtx, itemID, req.Quantity)
		default:
			return s.items.Reserve(txCtx, itemID, req.Quantity)
		}
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stock adjusted",
		zap.Uint("item_id", itemID),
		zap.String("direction", req.Direction),
		zap.Int("quantity", req.Quantity),
	)

	return s.Get(ctx, itemID)
}
