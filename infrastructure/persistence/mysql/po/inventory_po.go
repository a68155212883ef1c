package po

import (
	"time"

	"kocho-pos/domain/inventory"
)

// ItemPO is the persistence object for the inventory_items table.
type ItemPO struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(120);not null"`
	Category     string    `gorm:"type:varchar(50);index"`
	SKU          string    `gorm:"type:varchar(50);uniqueIndex"`
	Quantity     int       `gorm:"not null;default:0"`
	MinQuantity  int       `gorm:"not null;default:5"`
	UnitPrice    float64   `gorm:"type:decimal(10,2);not null;default:0"`
	SellingPrice float64   `gorm:"type:decimal(10,2);not null;default:0"`
	Supplier     string    `gorm:"type:varchar(120)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (ItemPO) TableName() string {
	return "inventory_items"
}

// FromItemDomain converts a domain item to its persistence object.
func FromItemDomain(i *inventory.Item) *ItemPO {
	return &ItemPO{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		SKU:          i.SKU,
		Quantity:     i.Quantity,
		MinQuantity:  i.MinQuantity,
		UnitPrice:    i.UnitPrice,
		SellingPrice: i.SellingPrice,
		Supplier:     i.Supplier,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ToItemDomain converts a persistence object to a domain item.
func (p *ItemPO) ToItemDomain() *inventory.Item {
	return &inventory.Item{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		SKU:          p.SKU,
		Quantity:     p.Quantity,
		MinQuantity:  p.MinQuantity,
		UnitPrice:    p.UnitPrice,
		SellingPrice: p.SellingPrice,
		Supplier:     p.Supplier,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
