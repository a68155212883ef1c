package mysql

import (
	"context"
	"errors"
	"fmt"

	"kocho-pos/domain/customer"
	"kocho-pos/infrastructure/persistence"
	"kocho-pos/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CustomerRepository implements customer.Repository using GORM.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository instance
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create inserts a new customer and writes the generated id back.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	db := r.getDB(ctx)

	customerPO := po.FromCustomerDomain(c)
	if err := db.Create(customerPO).Error; err != nil {
		if isDuplicateKeyError(err) {
			return customer.ErrDuplicatePhone
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	c.ID = customerPO.ID
	c.CreatedAt = customerPO.CreatedAt
	return nil
}

// Save updates an existing customer.
func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	db := r.getDB(ctx)

	customerPO := po.FromCustomerDomain(c)
	result := db.Model(&po.CustomerPO{}).Where("id = ?", customerPO.ID).Updates(map[string]interface{}{
		"name":            customerPO.Name,
		"email":           customerPO.Email,
		"phone":           customerPO.Phone,
		"address":         customerPO.Address,
		"account_balance": customerPO.AccountBalance,
		"total_spent":     customerPO.TotalSpent,
		"last_visit":      customerPO.LastVisit,
	})
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return customer.ErrDuplicatePhone
		}
		return fmt.Errorf("failed to save customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// Delete removes a customer. Their historical orders keep the dangling
// customer_id for reporting.
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)

	result := db.Delete(&po.CustomerPO{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// FindByID loads one customer.
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	db := r.getDB(ctx)

	var customerPO po.CustomerPO
	if err := db.First(&customerPO, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customerPO.ToCustomerDomain(), nil
}

// FindByPhone loads one customer by phone number.
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	db := r.getDB(ctx)

	var customerPO po.CustomerPO
	if err := db.Where("phone = ?", phone).First(&customerPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by phone: %w", err)
	}
	return customerPO.ToCustomerDomain(), nil
}

// List returns a page of customers matching the filter plus the unpaginated
// total.
func (r *CustomerRepository) List(ctx context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	db := r.getDB(ctx)

	query := db.Model(&po.CustomerPO{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	var customerPOs []*po.CustomerPO
	err := query.Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&customerPOs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*customer.Customer, 0, len(customerPOs))
	for _, cp := range customerPOs {
		customers = append(customers, cp.ToCustomerDomain())
	}
	return customers, total, nil
}

var _ customer.Repository = (*CustomerRepository)(nil)
