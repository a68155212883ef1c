package mysql

import (
	"context"
	"errors"
	"fmt"

	"kocho-pos/domain/catalog"
	"kocho-pos/infrastructure/persistence"
	"kocho-pos/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CatalogRepository implements catalog.Repository using GORM.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository instance
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create inserts a new service and writes the generated id back.
func (r *CatalogRepository) Create(ctx context.Context, s *catalog.Service) error {
	db := r.getDB(ctx)

	servicePO := po.FromServiceDomain(s)
	if err := db.Create(servicePO).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	s.ID = servicePO.ID
	s.CreatedAt = servicePO.CreatedAt
	return nil
}

// Save updates an existing service.
func (r *CatalogRepository) Save(ctx context.Context, s *catalog.Service) error {
	db := r.getDB(ctx)

	servicePO := po.FromServiceDomain(s)
	result := db.Model(&po.ServicePO{}).Where("id = ?", servicePO.ID).Updates(map[string]interface{}{
		"name":        servicePO.Name,
		"category":    servicePO.Category,
		"description": servicePO.Description,
		"base_price":  servicePO.BasePrice,
		"unit":        servicePO.Unit,
		"is_active":   servicePO.IsActive,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to save service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

// Delete removes a service from the catalog.
func (r *CatalogRepository) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)

	result := db.Delete(&po.ServicePO{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

// FindByID loads one service.
func (r *CatalogRepository) FindByID(ctx context.Context, id uint) (*catalog.Service, error) {
	db := r.getDB(ctx)

	var servicePO po.ServicePO
	if err := db.First(&servicePO, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return servicePO.ToServiceDomain(), nil
}

// List returns services matching the filter, grouped by category order.
func (r *CatalogRepository) List(ctx context.Context, filter catalog.Filter) ([]*catalog.Service, error) {
	db := r.getDB(ctx)

	query := db.Model(&po.ServicePO{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var servicePOs []*po.ServicePO
	if err := query.Order("category ASC, name ASC").Find(&servicePOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	services := make([]*catalog.Service, 0, len(servicePOs))
	for _, sp := range servicePOs {
		services = append(services, sp.ToServiceDomain())
	}
	return services, nil
}

// ListCategories returns the distinct non-empty service categories.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]string, error) {
	db := r.getDB(ctx)

	var categories []string
	err := db.Model(&po.ServicePO{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list service categories: %w", err)
	}
	return categories, nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)
