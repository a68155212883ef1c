package po

import (
	"time"

	"kocho-pos/domain/customer"
)

// CustomerPO is the persistence object for the customers table.
type CustomerPO struct {
	ID             uint       `gorm:"primaryKey;autoIncrement"`
	Name           string     `gorm:"type:varchar(120);not null"`
	Email          string     `gorm:"type:varchar(120)"`
	Phone          string     `gorm:"type:varchar(20);uniqueIndex"`
	Address        string     `gorm:"type:varchar(255)"`
	AccountBalance float64    `gorm:"type:decimal(10,2);not null;default:0"`
	TotalSpent     float64    `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt      time.Time  `gorm:"not null"`
	LastVisit      *time.Time `gorm:""`
}

func (CustomerPO) TableName() string {
	return "customers"
}

// FromCustomerDomain converts a domain customer to its persistence object.
func FromCustomerDomain(c *customer.Customer) *CustomerPO {
	return &CustomerPO{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		AccountBalance: c.AccountBalance,
		TotalSpent:     c.TotalSpent,
		CreatedAt:      c.CreatedAt,
		LastVisit:      c.LastVisit,
	}
}

// ToCustomerDomain converts a persistence object to a domain customer.
func (p *CustomerPO) ToCustomerDomain() *customer.Customer {
	return &customer.Customer{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		AccountBalance: p.AccountBalance,
		TotalSpent:     p.TotalSpent,
		CreatedAt:      p.CreatedAt,
		LastVisit:      p.LastVisit,
	}
}
