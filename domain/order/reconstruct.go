package order

import "time"

// Reconstruction support for the repository layer. Fields on the aggregate are
// private, so repositories rebuild orders through these DTOs instead of
// setters. Not for use from the application layer.

// ReconstructionDTO Order reconstruction data.
type ReconstructionDTO struct {
	ID            uint
	OrderNumber   string
	CustomerID    *uint
	CreatedBy     uint
	Lines         []Line
	TotalAmount   float64
	Discount      float64
	FinalAmount   float64
	PaymentMethod string
	PaymentStatus PaymentStatus
	Status        Status
	Notes         string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// Rebuild reconstructs an Order aggregate from persisted state.
func Rebuild(dto ReconstructionDTO) *Order {
	return &Order{
		id:            dto.ID,
		orderNumber:   dto.OrderNumber,
		customerID:    dto.CustomerID,
		createdBy:     dto.CreatedBy,
		lines:         dto.Lines,
		totalAmount:   dto.TotalAmount,
		discount:      dto.Discount,
		finalAmount:   dto.FinalAmount,
		paymentMethod: dto.PaymentMethod,
		paymentStatus: dto.PaymentStatus,
		status:        dto.Status,
		notes:         dto.Notes,
		createdAt:     dto.CreatedAt,
		completedAt:   dto.CompletedAt,
	}
}

// LineReconstructionDTO Order line reconstruction data.
type LineReconstructionDTO struct {
	ID             uint
	Kind           ItemKind
	ItemID         *uint
	ItemName       string
	Quantity       int
	UnitPrice      float64
	Total          float64
	Specifications string
}

// RebuildLine reconstructs a Line from persisted state.
func RebuildLine(dto LineReconstructionDTO) Line {
	return Line{
		id:             dto.ID,
		kind:           dto.Kind,
		itemID:         dto.ItemID,
		itemName:       dto.ItemName,
		quantity:       dto.Quantity,
		unitPrice:      dto.UnitPrice,
		total:          dto.Total,
		specifications: dto.Specifications,
	}
}

// AssignIdentity stores the database-generated identifiers after the first
// insert. lineIDs must be in line order; a mismatched length is ignored.
func (o *Order) AssignIdentity(id uint, lineIDs []uint) {
	o.id = id
	if len(lineIDs) == len(o.lines) {
		for i := range o.lines {
			o.lines[i].id = lineIDs[i]
		}
	}
}
