package inventory

import (
	"time"

	"kocho-pos/domain/inventory"
)

// CreateItemRequest Input for registering a stock item.
type CreateItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	SKU          string  `json:"sku"`
	Quantity     int     `json:"quantity" binding:"min=0"`
	MinQuantity  int     `json:"min_quantity" binding:"min=0"`
	UnitPrice    float64 `json:"unit_price" binding:"min=0"`
	SellingPrice float64 `json:"selling_price" binding:"min=0"`
	Supplier     string  `json:"supplier"`
}

// UpdateItemRequest Partial patch for a stock item. Nil fields are untouched.
// Quantity is not patchable here; stock moves through Adjust only.
type UpdateItemRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	SKU          *string  `json:"sku"`
	MinQuantity  *int     `json:"min_quantity" binding:"omitempty,min=0"`
	UnitPrice    *float64 `json:"unit_price" binding:"omitempty,min=0"`
	SellingPrice *float64 `json:"selling_price" binding:"omitempty,min=0"`
	Supplier     *string  `json:"supplier"`
}

// AdjustStockRequest Administrative stock correction.
type AdjustStockRequest struct {
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Direction string `json:"direction" binding:"required,oneof=add remove"`
}

// ListItemsQuery Listing filters, bound from query parameters.
type ListItemsQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"`
	PerPage  int    `form:"per_page,default=50"`
}

// ItemResponse Stock item representation returned to callers.
type ItemResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	SKU          string  `json:"sku,omitempty"`
	Quantity     int     `json:"quantity"`
	MinQuantity  int     `json:"min_quantity"`
	UnitPrice    float64 `json:"unit_price"`
	SellingPrice float64 `json:"selling_price"`
	Supplier     string  `json:"supplier,omitempty"`
	IsLowStock   bool    `json:"is_low_stock"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ListItemsResponse One page of stock items.
type ListItemsResponse struct {
	Items   []ItemResponse `json:"items"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

func toItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		SKU:          i.SKU,
		Quantity:     i.Quantity,
		MinQuantity:  i.MinQuantity,
		UnitPrice:    i.UnitPrice,
		SellingPrice: i.SellingPrice,
		Supplier:     i.Supplier,
		IsLowStock:   i.IsLowStock(),
		CreatedAt:    i.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    i.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toItemResponses(items []*inventory.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		responses = append(responses, toItemResponse(i))
	}
	return responses
}
