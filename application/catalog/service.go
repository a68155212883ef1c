// Package catalog implements service price list management.
package catalog

import (
	"context"
	"time"

	"kocho-pos/domain/catalog"
)

// CreateServiceRequest Input for adding a service to the price list.
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" binding:"min=0"`
	Unit        string  `json:"unit"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateServiceRequest Partial patch for a service. Nil fields are untouched.
type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	BasePrice   *float64 `json:"base_price" binding:"omitempty,min=0"`
	Unit        *string  `json:"unit"`
	IsActive    *bool    `json:"is_active"`
}

// ListServicesQuery Listing filters, bound from query parameters.
type ListServicesQuery struct {
	Category   string `form:"category"`
	ActiveOnly bool   `form:"active_only"`
}

// ServiceResponse Price list entry returned to callers.
type ServiceResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	BasePrice   float64 `json:"base_price"`
	Unit        string  `json:"unit,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}

func toServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		BasePrice:   s.BasePrice,
		Unit:        s.Unit,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Service orchestrates price list use cases.
type Service struct {
	services catalog.Repository
}

// NewService creates a new catalog Service instance
func NewService(services catalog.Repository) *Service {
	return &Service{services: services}
}

// Create adds a service to the price list. New services default to active.
func (s *Service) Create(ctx context.Context, req CreateServiceRequest) (*ServiceResponse, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	svc := &catalog.Service{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Unit:        req.Unit,
		IsActive:    active,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	resp := toServiceResponse(svc)
	return &resp, nil
}

// Update applies a partial patch to a price list entry. Orders snapshot name
// and price at creation, so edits never rewrite history.
func (s *Service) Update(ctx context.Context, serviceID uint, req UpdateServiceRequest) (*ServiceResponse, error) {
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.Unit != nil {
		svc.Unit = *req.Unit
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.services.Save(ctx, svc); err != nil {
		return nil, err
	}
	resp := toServiceResponse(svc)
	return &resp, nil
}

// Delete removes a service from the price list.
func (s *Service) Delete(ctx context.Context, serviceID uint) error {
	return s.services.Delete(ctx, serviceID)
}

// Get loads one price list entry.
func (s *Service) Get(ctx context.Context, serviceID uint) (*ServiceResponse, error) {
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	resp := toServiceResponse(svc)
	return &resp, nil
}

// Categories returns the distinct service categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.services.ListCategories(ctx)
}

// List returns services matching the query.
func (s *Service) List(ctx context.Context, query ListServicesQuery) ([]ServiceResponse, error) {
	services, err := s.services.List(ctx, catalog.Filter{
		Category:   query.Category,
		ActiveOnly: query.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	responses := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		responses = append(responses, toServiceResponse(svc))
	}
	return responses, nil
}
