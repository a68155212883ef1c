package mysql

import (
	"fmt"

	"kocho-pos/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all persistence objects.
// Intended for development; production schema changes go through migrations.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&po.OrderPO{},
		&po.OrderLinePO{},
		&po.ItemPO{},
		&po.ServicePO{},
		&po.CustomerPO{},
		&po.TransactionPO{},
		&po.ExpensePO{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}
	return nil
}
