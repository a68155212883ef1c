// Package customer holds customer accounts. The order engine updates
// last_visit and total_spent as a side effect of order creation; it does not
// own the rest of the record.
package customer

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicatePhone   = errors.New("customer with this phone number already exists")
)

// Customer A shop customer.
type Customer struct {
	ID             uint
	Name           string
	Email          string
	Phone          string
	Address        string
	AccountBalance float64
	TotalSpent     float64
	CreatedAt      time.Time
	LastVisit      *time.Time
}

// RecordOrder notes a visit and adds the order's final amount to the running
// spend counter. Cancellation does not reverse this (reconciled manually).
func (c *Customer) RecordOrder(amount float64, when time.Time) {
	c.LastVisit = &when
	c.TotalSpent += amount
}

// Filter Listing filter for customers.
type Filter struct {
	Search  string // matches name, phone or email
	Page    int
	PerPage int
}

// Repository Persistence contract for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Save(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	List(ctx context.Context, filter Filter) ([]*Customer, int64, error)
}
