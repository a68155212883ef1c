package po

import (
	"time"

	"kocho-pos/domain/ledger"
)

// TransactionPO is the persistence object for the transactions table.
type TransactionPO struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	OrderID         *uint     `gorm:"index"`
	TransactionType string    `gorm:"type:varchar(20);not null;index"`
	Amount          float64   `gorm:"type:decimal(10,2);not null"`
	PaymentMethod   string    `gorm:"type:varchar(20)"`
	ReferenceNumber string    `gorm:"type:varchar(60)"`
	Description     string    `gorm:"type:varchar(255)"`
	CreatedBy       uint      `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

func (TransactionPO) TableName() string {
	return "transactions"
}

// FromTransactionDomain converts a domain transaction to its persistence object.
func FromTransactionDomain(t *ledger.Transaction) *TransactionPO {
	return &TransactionPO{
		ID:              t.ID,
		OrderID:         t.OrderID,
		TransactionType: string(t.Kind),
		Amount:          t.Amount,
		PaymentMethod:   t.PaymentMethod,
		ReferenceNumber: t.ReferenceNumber,
		Description:     t.Description,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
	}
}

// ToTransactionDomain converts a persistence object to a domain transaction.
func (p *TransactionPO) ToTransactionDomain() *ledger.Transaction {
	return &ledger.Transaction{
		ID:              p.ID,
		OrderID:         p.OrderID,
		Kind:            ledger.TransactionKind(p.TransactionType),
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Description:     p.Description,
		CreatedBy:       p.CreatedBy,
		CreatedAt:       p.CreatedAt,
	}
}

// ExpensePO is the persistence object for the expenses table.
type ExpensePO struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	Category      string    `gorm:"type:varchar(50);not null;index"`
	Description   string    `gorm:"type:varchar(255);not null"`
	Amount        float64   `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string    `gorm:"type:varchar(20)"`
	ReceiptNumber string    `gorm:"type:varchar(60)"`
	CreatedBy     uint      `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

func (ExpensePO) TableName() string {
	return "expenses"
}

// FromExpenseDomain converts a domain expense to its persistence object.
func FromExpenseDomain(e *ledger.Expense) *ExpensePO {
	return &ExpensePO{
		ID:            e.ID,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		PaymentMethod: e.PaymentMethod,
		ReceiptNumber: e.ReceiptNumber,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
	}
}

// ToExpenseDomain converts a persistence object to a domain expense.
func (p *ExpensePO) ToExpenseDomain() *ledger.Expense {
	return &ledger.Expense{
		ID:            p.ID,
		Category:      p.Category,
		Description:   p.Description,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		ReceiptNumber: p.ReceiptNumber,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}
