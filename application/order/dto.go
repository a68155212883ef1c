package order

import (
	"encoding/json"
	"time"

	"kocho-pos/config"
	"kocho-pos/domain/customer"
	"kocho-pos/domain/order"
)

// CreateOrderItemRequest One requested line item.
type CreateOrderItemRequest struct {
	ItemType       string                 `json:"item_type" binding:"required,oneof=service product"`
	ItemID         *uint                  `json:"item_id"`
	ItemName       string                 `json:"item_name" binding:"required"`
	Quantity       int                    `json:"quantity" binding:"required,min=1"`
	UnitPrice      float64                `json:"unit_price" binding:"min=0"`
	Specifications map[string]interface{} `json:"specifications"`
}

// CreateOrderRequest Input for creating an order.
type CreateOrderRequest struct {
	CustomerID      *uint                    `json:"customer_id"`
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount        float64                  `json:"discount"`
	PaymentMethod   string                   `json:"payment_method"`
	PaymentStatus   string                   `json:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	Notes           string                   `json:"notes"`
	ReferenceNumber string                   `json:"reference_number"`
}

// UpdateOrderRequest Partial patch for an order. Nil fields are untouched.
// Force lets owner-level actors bypass the status transition table.
type UpdateOrderRequest struct {
	Status          *string `json:"status" binding:"omitempty,oneof=pending processing completed cancelled"`
	Force           bool    `json:"force"`
	PaymentStatus   *string `json:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	Notes           *string `json:"notes"`
	ReferenceNumber *string `json:"reference_number"`
}

// ListOrdersQuery Listing filters, bound from query parameters.
type ListOrdersQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending processing completed cancelled"`
	CustomerID *uint  `form:"customer_id"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Page       int    `form:"page,default=1"`
	PerPage    int    `form:"per_page,default=20"`
}

// OrderItemResponse One line item in an order response.
type OrderItemResponse struct {
	ID             uint                   `json:"id"`
	ItemType       string                 `json:"item_type"`
	ItemID         *uint                  `json:"item_id,omitempty"`
	ItemName       string                 `json:"item_name"`
	Quantity       int                    `json:"quantity"`
	UnitPrice      float64                `json:"unit_price"`
	TotalPrice     float64                `json:"total_price"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
}

// CustomerSnapshot Minimal customer view embedded in an order response.
type CustomerSnapshot struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// OrderResponse Full order representation returned to callers.
type OrderResponse struct {
	ID            uint                `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CustomerID    *uint               `json:"customer_id,omitempty"`
	Customer      *CustomerSnapshot   `json:"customer,omitempty"`
	CreatedBy     uint                `json:"created_by"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   float64             `json:"total_amount"`
	Discount      float64             `json:"discount"`
	FinalAmount   float64             `json:"final_amount"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     string              `json:"created_at"`
	CompletedAt   *string             `json:"completed_at,omitempty"`
}

// ListOrdersResponse One page of orders.
type ListOrdersResponse struct {
	Orders  []OrderResponse `json:"orders"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// TodayOrdersResponse Today's orders with the running paid total.
type TodayOrdersResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Count      int             `json:"count"`
	TotalSales float64         `json:"total_sales"`
}

// ReceiptResponse Printable receipt: shop details plus the order.
type ReceiptResponse struct {
	BusinessName    string        `json:"business_name"`
	BusinessAddress string        `json:"business_address"`
	BusinessPhone   string        `json:"business_phone"`
	BusinessEmail   string        `json:"business_email"`
	Order           OrderResponse `json:"order"`
}

// toOrderResponse maps an order aggregate (and optional customer snapshot) to
// its response form. Timestamps are RFC 3339 in UTC.
func toOrderResponse(o *order.Order, c *customer.Customer) OrderResponse {
	lines := o.Lines()
	items := make([]OrderItemResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItemResponse{
			ID:             l.ID(),
			ItemType:       string(l.Kind()),
			ItemID:         l.ItemID(),
			ItemName:       l.ItemName(),
			Quantity:       l.Quantity(),
			UnitPrice:      l.UnitPrice(),
			TotalPrice:     l.Total(),
			Specifications: decodeSpecifications(l.Specifications()),
		})
	}

	resp := OrderResponse{
		ID:            o.ID(),
		OrderNumber:   o.OrderNumber(),
		CustomerID:    o.CustomerID(),
		CreatedBy:     o.CreatedBy(),
		Items:         items,
		TotalAmount:   o.TotalAmount(),
		Discount:      o.Discount(),
		FinalAmount:   o.FinalAmount(),
		PaymentMethod: o.PaymentMethod(),
		PaymentStatus: string(o.PaymentStatus()),
		Status:        string(o.Status()),
		Notes:         o.Notes(),
		CreatedAt:     o.CreatedAt().UTC().Format(time.RFC3339),
	}
	if o.CompletedAt() != nil {
		s := o.CompletedAt().UTC().Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	if c != nil {
		resp.Customer = &CustomerSnapshot{ID: c.ID, Name: c.Name, Phone: c.Phone}
	}
	return resp
}

func toReceiptResponse(cfg config.BusinessConfig, o OrderResponse) ReceiptResponse {
	return ReceiptResponse{
		BusinessName:    cfg.Name,
		BusinessAddress: cfg.Address,
		BusinessPhone:   cfg.Phone,
		BusinessEmail:   cfg.Email,
		Order:           o,
	}
}

// encodeSpecifications serializes the free-form specifications object for
// storage. An empty map stores as an empty string.
func encodeSpecifications(specs map[string]interface{}) (string, error) {
	if len(specs) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(specs)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeSpecifications is lenient: rows written by older clients may hold
// arbitrary text, which is surfaced under a "raw" key rather than dropped.
func decodeSpecifications(raw string) map[string]interface{} {
	if raw == "" {
		return nil
	}
	var specs map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return map[string]interface{}{"raw": raw}
	}
	return specs
}
