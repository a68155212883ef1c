package po

import (
	"time"

	"kocho-pos/domain/catalog"
)

// ServicePO is the persistence object for the services table.
type ServicePO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Category    string    `gorm:"type:varchar(50);index"`
	Description string    `gorm:"type:text"`
	BasePrice   float64   `gorm:"type:decimal(10,2);not null;default:0"`
	Unit        string    `gorm:"type:varchar(20)"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (ServicePO) TableName() string {
	return "services"
}

// FromServiceDomain converts a domain service to its persistence object.
func FromServiceDomain(s *catalog.Service) *ServicePO {
	return &ServicePO{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		BasePrice:   s.BasePrice,
		Unit:        s.Unit,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

// ToServiceDomain converts a persistence object to a domain service.
func (p *ServicePO) ToServiceDomain() *catalog.Service {
	return &catalog.Service{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Unit:        p.Unit,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}
