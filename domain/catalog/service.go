// Package catalog holds the service price list: reference data for order
// lines of kind service. Orders snapshot name and price at creation time, so
// edits here never change historical orders.
package catalog

import (
	"context"
	"errors"
	"time"
)

var ErrServiceNotFound = errors.New("service not found")

// Service A sellable service (printing, scanning, design work, ...).
type Service struct {
	ID          uint
	Name        string
	Category    string
	Description string
	BasePrice   float64
	Unit        string // per_page, per_hour, per_project
	IsActive    bool
	CreatedAt   time.Time
}

// Filter Listing filter for services.
type Filter struct {
	Category   string
	ActiveOnly bool
}

// Repository Persistence contract for the service catalog.
type Repository interface {
	Create(ctx context.Context, s *Service) error
	Save(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Service, error)
	List(ctx context.Context, filter Filter) ([]*Service, error)
	ListCategories(ctx context.Context) ([]string, error)
}
