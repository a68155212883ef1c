package mysql

import (
	"context"
	"errors"
	"fmt"

	"kocho-pos/domain/inventory"
	"kocho-pos/infrastructure/persistence"
	"kocho-pos/infrastructure/persistence/mysql/po"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository implements inventory.Repository using GORM.
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new InventoryRepository instance
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create inserts a new inventory item and writes the generated id back.
func (r *InventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	db := r.getDB(ctx)

	itemPO := po.FromItemDomain(item)
	if err := db.Create(itemPO).Error; err != nil {
		if isDuplicateKeyError(err) {
			return inventory.ErrDuplicateSKU
		}
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	item.ID = itemPO.ID
	item.CreatedAt = itemPO.CreatedAt
	item.UpdatedAt = itemPO.UpdatedAt
	return nil
}

// Save updates an existing inventory item.
func (r *InventoryRepository) Save(ctx context.Context, item *inventory.Item) error {
	db := r.getDB(ctx)

	itemPO := po.FromItemDomain(item)
	result := db.Model(&po.ItemPO{}).Where("id = ?", itemPO.ID).Updates(map[string]interface{}{
		"name":          itemPO.Name,
		"category":      itemPO.Category,
		"sku":           itemPO.SKU,
		"quantity":      itemPO.Quantity,
		"min_quantity":  itemPO.MinQuantity,
		"unit_price":    itemPO.UnitPrice,
		"selling_price": itemPO.SellingPrice,
		"supplier":      itemPO.Supplier,
	})
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return inventory.ErrDuplicateSKU
		}
		return fmt.Errorf("failed to save inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

// Delete removes an inventory item.
func (r *InventoryRepository) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)

	result := db.Delete(&po.ItemPO{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

// FindByID loads one inventory item.
func (r *InventoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	db := r.getDB(ctx)

	var itemPO po.ItemPO
	if err := db.First(&itemPO, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	return itemPO.ToItemDomain(), nil
}

// FindBySKU loads one inventory item by its SKU.
func (r *InventoryRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	db := r.getDB(ctx)

	var itemPO po.ItemPO
	if err := db.Where("sku = ?", sku).First(&itemPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item by sku: %w", err)
	}
	return itemPO.ToItemDomain(), nil
}

// List returns a page of inventory items matching the filter plus the
// unpaginated total.
func (r *InventoryRepository) List(ctx context.Context, filter inventory.Filter) ([]*inventory.Item, int64, error) {
	db := r.getDB(ctx)

	query := db.Model(&po.ItemPO{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
	}
	if filter.LowStock {
		query = query.Where("quantity <= min_quantity")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory items: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 50
	}

	var itemPOs []*po.ItemPO
	err := query.Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&itemPOs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory items: %w", err)
	}

	items := make([]*inventory.Item, 0, len(itemPOs))
	for _, ip := range itemPOs {
		items = append(items, ip.ToItemDomain())
	}
	return items, total, nil
}

// ListCategories returns the distinct non-empty item categories.
func (r *InventoryRepository) ListCategories(ctx context.Context) ([]string, error) {
	db := r.getDB(ctx)

	var categories []string
	err := db.Model(&po.ItemPO{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list item categories: %w", err)
	}
	return categories, nil
}

// Reserve atomically checks and decrements stock for one item. The row is
// locked with SELECT ... FOR UPDATE so concurrent reservations serialize on
// it; the committed quantity can never go below zero.
func (r *InventoryRepository) Reserve(ctx context.Context, itemID uint, qty int) error {
	if qty <= 0 {
		return inventory.ErrInvalidAdjustment
	}
	db := r.getDB(ctx)

	var itemPO po.ItemPO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&itemPO, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inventory.ErrItemNotFound
		}
		return fmt.Errorf("failed to lock inventory item: %w", err)
	}

	item := itemPO.ToItemDomain()
	if err := item.Reserve(qty); err != nil {
		return err
	}

	err = db.Model(&po.ItemPO{}).Where("id = ?", itemID).
		Update("quantity", item.Quantity).Error
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}
	return nil
}

// Release adds stock back for one item. Unknown items are silently ignored:
// cancelling an order whose item was deleted from the catalog must still
// succeed.
func (r *InventoryRepository) Release(ctx context.Context, itemID uint, qty int) error {
	if qty <= 0 {
		return inventory.ErrInvalidAdjustment
	}
	db := r.getDB(ctx)

	err := db.Model(&po.ItemPO{}).Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}
	return nil
}

// isDuplicateKeyError reports whether err is a MySQL unique key violation.
func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

var _ inventory.Repository = (*InventoryRepository)(nil)
