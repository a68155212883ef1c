// Package order holds the Order aggregate: the order header, its line items,
// the status machine and the payment state.
//
// Order is the aggregate root. Line items are value-like entities that can only
// be created through the root; totals are recomputed by the root whenever the
// line set is established, so total_amount always equals the sum of line totals
// and final_amount always equals total_amount - discount.
package order

import (
	"time"
)

// Status Order lifecycle status
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus Order payment status
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// ItemKind Line item kind
type ItemKind string

const (
	KindService ItemKind = "service"
	KindProduct ItemKind = "product"
)

// statusTransitions is the explicit transition table. Completed and cancelled
// are terminal; owner-level actors may bypass it with force (see Transition).
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// ParsePaymentStatus validates a raw payment status string.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return PaymentStatus(s), nil
	}
	return "", ErrInvalidPaymentStatus
}

// Order Order aggregate root.
type Order struct {
	id            uint
	orderNumber   string
	customerID    *uint
	createdBy     uint
	lines         []Line
	totalAmount   float64
	discount      float64
	finalAmount   float64
	paymentMethod string
	paymentStatus PaymentStatus
	status        Status
	notes         string
	createdAt     time.Time
	completedAt   *time.Time
}

// Line Order line item. The item name and unit price are snapshots taken at
// order time; later catalog edits never alter a persisted order.
type Line struct {
	id             uint
	kind           ItemKind
	itemID         *uint
	itemName       string
	quantity       int
	unitPrice      float64
	total          float64
	specifications string
}

// LineRequest Requested line item for a new order.
type LineRequest struct {
	Kind           ItemKind
	ItemID         *uint
	ItemName       string
	Quantity       int
	UnitPrice      float64
	Specifications string
}

// PlaceOptions Inputs for creating a new order.
type PlaceOptions struct {
	CustomerID    *uint
	CreatedBy     uint
	Lines         []LineRequest
	Discount      float64
	PaymentMethod string
	PaymentStatus PaymentStatus
	Notes         string
	Now           time.Time
}

// New builds a new Order aggregate from the requested lines.
//
// Lines are kept in input order and never merged; duplicate item references are
// independent lines. The discount is not capped against the total, so a
// negative final amount is permitted. Stock availability is not checked here;
// that belongs to the stock ledger inside the creation transaction.
func New(opts PlaceOptions) (*Order, error) {
	if len(opts.Lines) == 0 {
		return nil, ErrEmptyOrderLines
	}
	if opts.PaymentMethod == "" {
		opts.PaymentMethod = "cash"
	}
	if opts.PaymentStatus == "" {
		opts.PaymentStatus = PaymentPending
	}
	if _, err := ParsePaymentStatus(string(opts.PaymentStatus)); err != nil {
		return nil, err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	lines := make([]Line, len(opts.Lines))
	total := 0.0
	for i, req := range opts.Lines {
		if req.Kind != KindService && req.Kind != KindProduct {
			return nil, ErrInvalidItemKind
		}
		if req.ItemName == "" {
			return nil, ErrMissingItemName
		}
		if req.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if req.UnitPrice < 0 {
			return nil, ErrNegativeUnitPrice
		}
		lineTotal := float64(req.Quantity) * req.UnitPrice
		lines[i] = Line{
			kind:           req.Kind,
			itemID:         req.ItemID,
			itemName:       req.ItemName,
			quantity:       req.Quantity,
			unitPrice:      req.UnitPrice,
			total:          lineTotal,
			specifications: req.Specifications,
		}
		total += lineTotal
	}

	return &Order{
		orderNumber:   NextNumber(now),
		customerID:    opts.CustomerID,
		createdBy:     opts.CreatedBy,
		lines:         lines,
		totalAmount:   total,
		discount:      opts.Discount,
		finalAmount:   total - opts.Discount,
		paymentMethod: opts.PaymentMethod,
		paymentStatus: opts.PaymentStatus,
		status:        StatusPending,
		notes:         opts.Notes,
		createdAt:     now,
	}, nil
}

// Transition moves the order to a new lifecycle status.
//
// Transitions are validated against the status table; force bypasses the table
// for owner-level corrections of exceptional workflows. Moving to completed
// stamps the completion time once.
func (o *Order) Transition(to Status, force bool, now time.Time) error {
	if _, err := ParseStatus(string(to)); err != nil {
		return err
	}
	if to == o.status {
		return nil
	}
	if !force && !transitionAllowed(o.status, to) {
		return ErrInvalidStatusTransition
	}
	o.status = to
	if to == StatusCompleted && o.completedAt == nil {
		t := now
		if t.IsZero() {
			t = time.Now().UTC()
		}
		o.completedAt = &t
	}
	return nil
}

func transitionAllowed(from, to Status) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SetPaymentStatus updates the payment status and reports whether a sale
// transaction must be recorded. The effect is edge-triggered: it fires only
// when the previous status was not paid and the new one is, so repeated paid
// writes never double-count, while paid -> pending -> paid legitimately
// records a second sale.
func (o *Order) SetPaymentStatus(to PaymentStatus) (recordSale bool, err error) {
	if _, err := ParsePaymentStatus(string(to)); err != nil {
		return false, err
	}
	was := o.paymentStatus
	o.paymentStatus = to
	return was != PaymentPaid && to == PaymentPaid, nil
}

// SetNotes replaces the free-text notes.
func (o *Order) SetNotes(notes string) {
	o.notes = notes
}

// Cancel marks the order cancelled. Completed orders cannot be cancelled.
// The caller is responsible for releasing stock held by product lines;
// payment status, ledger transactions and customer totals are left untouched
// (financial reconciliation of cancelled paid orders is a manual process).
func (o *Order) Cancel() error {
	if o.status == StatusCompleted {
		return ErrCancelCompleted
	}
	o.status = StatusCancelled
	return nil
}

// ProductLines returns the product lines that reference a catalog item, in
// input order. Used for stock reservation and release.
func (o *Order) ProductLines() []Line {
	var out []Line
	for _, l := range o.lines {
		if l.kind == KindProduct && l.itemID != nil {
			out = append(out, l)
		}
	}
	return out
}

// Getters

func (o *Order) ID() uint                     { return o.id }
func (o *Order) OrderNumber() string          { return o.orderNumber }
func (o *Order) CustomerID() *uint            { return o.customerID }
func (o *Order) CreatedBy() uint              { return o.createdBy }
func (o *Order) TotalAmount() float64         { return o.totalAmount }
func (o *Order) Discount() float64            { return o.discount }
func (o *Order) FinalAmount() float64         { return o.finalAmount }
func (o *Order) PaymentMethod() string        { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Notes() string                { return o.notes }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) CompletedAt() *time.Time      { return o.completedAt }

// Lines returns a copy of the line items in insertion order.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (l Line) ID() uint               { return l.id }
func (l Line) Kind() ItemKind         { return l.kind }
func (l Line) ItemID() *uint          { return l.itemID }
func (l Line) ItemName() string       { return l.itemName }
func (l Line) Quantity() int          { return l.quantity }
func (l Line) UnitPrice() float64     { return l.unitPrice }
func (l Line) Total() float64         { return l.total }
func (l Line) Specifications() string { return l.specifications }
