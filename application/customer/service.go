// Package customer implements customer account management and the customer
// order history view.
package customer

import (
	"context"
	"time"

	"kocho-pos/domain/customer"
	"kocho-pos/domain/order"
)

// CreateCustomerRequest Input for registering a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerRequest Partial patch for a customer. Nil fields are
// untouched. TotalSpent and LastVisit move only through the order engine.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ListCustomersQuery Listing filters, bound from query parameters.
type ListCustomersQuery struct {
	Search  string `form:"search"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=20"`
}

// CustomerResponse Customer representation returned to callers.
type CustomerResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Address        string  `json:"address,omitempty"`
	AccountBalance float64 `json:"account_balance"`
	TotalSpent     float64 `json:"total_spent"`
	CreatedAt      string  `json:"created_at"`
	LastVisit      *string `json:"last_visit,omitempty"`
}

// ListCustomersResponse One page of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"per_page"`
}

// OrderSummary Compact order view for the customer history.
type OrderSummary struct {
	ID          uint    `json:"id"`
	OrderNumber string  `json:"order_number"`
	FinalAmount float64 `json:"final_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func toCustomerResponse(c *customer.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		AccountBalance: c.AccountBalance,
		TotalSpent:     c.TotalSpent,
		CreatedAt:      c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.LastVisit != nil {
		s := c.LastVisit.UTC().Format(time.RFC3339)
		resp.LastVisit = &s
	}
	return resp
}

// Service orchestrates customer use cases.
type Service struct {
	customers customer.Repository
	orders    order.Repository
}

// NewService creates a new customer Service instance
func NewService(customers customer.Repository, orders order.Repository) *Service {
	return &Service{customers: customers, orders: orders}
}

// Create registers a customer. Phone numbers are unique across the shop.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	c := &customer.Customer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Update applies a partial patch to a customer.
func (s *Service) Update(ctx context.Context, customerID uint, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}

	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Delete removes a customer. Their orders survive with a dangling reference.
func (s *Service) Delete(ctx context.Context, customerID uint) error {
	return s.customers.Delete(ctx, customerID)
}

// Get loads one customer.
func (s *Service) Get(ctx context.Context, customerID uint) (*CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// List returns a page of customers matching the query.
func (s *Service) List(ctx context.Context, query ListCustomersQuery) (*ListCustomersResponse, error) {
	customers, total, err := s.customers.List(ctx, customer.Filter{
		Search:  query.Search,
		Page:    query.Page,
		PerPage: query.PerPage,
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
		perPage = 20
	}
	responses := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, toCustomerResponse(c))
	}
	return &ListCustomersResponse{
		Customers: responses,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}, nil
}

// RecentOrders returns a customer's newest orders up to limit.
func (s *Service) RecentOrders(ctx context.Context, customerID uint, limit int) ([]OrderSummary, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	orders, err := s.orders.FindByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, OrderSummary{
			ID:          o.ID(),
			OrderNumber: o.OrderNumber(),
			FinalAmount: o.FinalAmount(),
			Status:      string(o.Status()),
			CreatedAt:   o.CreatedAt().UTC().Format(time.RFC3339),
		})
	}
	return summaries, nil
}
