// Package order implements the order engine: atomic order creation with stock
// reservation, lifecycle updates, compensating cancellation and the order
// read side.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kocho-pos/config"
	"kocho-pos/domain/customer"
	"kocho-pos/domain/inventory"
	"kocho-pos/domain/ledger"
	"kocho-pos/domain/order"
	"kocho-pos/domain/shared"
	apperrors "kocho-pos/pkg/errors"
	"kocho-pos/pkg/logger"

	"go.uber.org/zap"
)

// Service orchestrates order use cases. Every state-mutating use case runs
// inside one unit of work so stock, order, ledger and customer writes commit
// together or not at all.
type Service struct {
	uow       shared.UnitOfWork
	orders    order.Repository
	stock     inventory.Repository
	customers customer.Repository
	ledger    ledger.Repository
	business  config.BusinessConfig
}

// NewService creates a new order Service instance
func NewService(
	uow shared.UnitOfWork,
	orders order.Repository,
	stock inventory.Repository,
	customers customer.Repository,
	ledgerRepo ledger.Repository,
	business config.BusinessConfig,
) *Service {
	return &Service{
		uow:       uow,
		orders:    orders,
		stock:     stock,
		customers: customers,
		ledger:    ledgerRepo,
		business:  business,
	}
}

// Create places a new order.
//
// Inside one transaction: stock is reserved for every product line in input
// order, the order and its lines are persisted, the customer's visit counters
// are bumped (silently skipped when the customer does not resolve) and, when
// the order is paid at creation, exactly one sale transaction is appended.
// Any failure rolls the whole thing back; a short stock reservation leaves
// inventory untouched and persists nothing.
func (s *Service) Create(ctx context.Context, createdBy uint, req CreateOrderRequest) (*OrderResponse, error) {
	lines := make([]order.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		specs, err := encodeSpecifications(item.Specifications)
		if err != nil {
			return nil, fmt.Errorf("failed to encode specifications: %w", err)
		}
		lines = append(lines, order.LineRequest{
			Kind:           order.ItemKind(item.ItemType),
			ItemID:         item.ItemID,
			ItemName:       item.ItemName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			Specifications: specs,
		})
	}

	o, err := order.New(order.PlaceOptions{
		CustomerID:    req.CustomerID,
		CreatedBy:     createdBy,
		Lines:         lines,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: order.PaymentStatus(req.PaymentStatus),
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	var cust *customer.Customer
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		for _, line := range o.ProductLines() {
			if err := s.stock.Reserve(txCtx, *line.ItemID(), line.Quantity()); err != nil {
				return err
			}
		}

		if err := s.orders.Create(txCtx, o); err != nil {
			return err
		}

		if o.CustomerID() != nil {
			c, err := s.customers.FindByID(txCtx, *o.CustomerID())
			switch {
			case errors.Is(err, customer.ErrCustomerNotFound):
				// Stale customer reference: record the order anyway.
				cust = nil
			case err != nil:
				return err
			default:
				c.RecordOrder(o.FinalAmount(), o.CreatedAt())
				if err := s.customers.Save(txCtx, c); err != nil {
					return err
				}
				cust = c
			}
		}

		if o.PaymentStatus() == order.PaymentPaid {
			if err := s.recordSale(txCtx, o, createdBy, req.ReferenceNumber); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order created",
		zap.String("order_number", o.OrderNumber()),
		zap.Float64("final_amount", o.FinalAmount()),
		zap.Int("lines", len(req.Items)),
	)

	resp := toOrderResponse(o, cust)
	return &resp, nil
}

// Update applies a partial patch to an order: lifecycle status (validated
// against the transition table unless forced), payment status, notes. Moving
// payment status onto paid appends exactly one sale transaction.
func (s *Service) Update(ctx context.Context, orderID uint, actorID uint, req UpdateOrderRequest) (*OrderResponse, error) {
	var o *order.Order
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		var err error
		o, err = s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}

		if req.Status != nil {
			to, err := order.ParseStatus(*req.Status)
			if err != nil {
				return err
			}
			if err := o.Transition(to, req.Force, time.Now().UTC()); err != nil {
				return err
			}
		}

		if req.PaymentStatus != nil {
			to, err := order.ParsePaymentStatus(*req.PaymentStatus)
			if err != nil {
				return err
			}
			recordSale, err := o.SetPaymentStatus(to)
			if err != nil {
				return err
			}
			if recordSale {
				var ref string
				if req.ReferenceNumber != nil {
					ref = *req.ReferenceNumber
				}
				if err := s.recordSale(txCtx, o, actorID, ref); err != nil {
					return err
				}
			}
		}

		if req.Notes != nil {
			o.SetNotes(*req.Notes)
		}

		return s.orders.Save(txCtx, o)
	})
	if err != nil {
		return nil, err
	}

	resp := toOrderResponse(o, s.lookupCustomer(ctx, o))
	return &resp, nil
}

// Cancel cancels an order and restores stock for every product line within
// the same transaction. Completed orders cannot be cancelled. Payment status,
// ledger entries and customer counters are deliberately left untouched;
// refunds of paid cancelled orders are reconciled manually.
func (s *Service) Cancel(ctx context.Context, orderID uint) (*OrderResponse, error) {
	var o *order.Order
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		var err error
		o, err = s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}

		if err := o.Cancel(); err != nil {
			return err
		}

		for _, line := range o.ProductLines() {
			if err := s.stock.Release(txCtx, *line.ItemID(), line.Quantity()); err != nil {
				return err
			}
		}

		return s.orders.Save(txCtx, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order cancelled", zap.String("order_number", o.OrderNumber()))

	resp := toOrderResponse(o, s.lookupCustomer(ctx, o))
	return &resp, nil
}

// Get loads one order.
func (s *Service) Get(ctx context.Context, orderID uint) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(o, s.lookupCustomer(ctx, o))
	return &resp, nil
}

// List returns a page of orders matching the query.
func (s *Service) List(ctx context.Context, query ListOrdersQuery) (*ListOrdersResponse, error) {
	filter := order.Filter{
		Status:     order.Status(query.Status),
		CustomerID: query.CustomerID,
		Page:       query.Page,
		PerPage:    query.PerPage,
	}
	if query.DateFrom != "" {
		from, err := time.Parse("2006-01-02", query.DateFrom)
		if err != nil {
			return nil, apperrors.Validation("invalid date_from, expected YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if query.DateTo != "" {
		to, err := time.Parse("2006-01-02", query.DateTo)
		if err != nil {
			return nil, apperrors.Validation("invalid date_to, expected YYYY-MM-DD")
		}
		// Inclusive end date: extend to the following midnight.
		end := to.Add(24 * time.Hour)
		filter.DateTo = &end
	}

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 20
	}
	return &ListOrdersResponse{
		Orders:  s.toResponses(ctx, orders),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// todayOrdersCap bounds the single-page fetch behind Today. A one-counter
// print shop does not approach it in a day.
const todayOrdersCap = 1000

// Today returns today's orders plus the paid sales total for the day.
func (s *Service) Today(ctx context.Context) (*TodayOrdersResponse, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	orders, _, err := s.orders.List(ctx, order.Filter{
		DateFrom: &from,
		DateTo:   &to,
		Page:     1,
		PerPage:  todayOrdersCap,
	})
	if err != nil {
		return nil, err
	}

	totalSales := 0.0
	for _, o := range orders {
		if o.PaymentStatus() == order.PaymentPaid {
			totalSales += o.FinalAmount()
		}
	}

	return &TodayOrdersResponse{
		Orders:     s.toResponses(ctx, orders),
		Count:      len(orders),
		TotalSales: totalSales,
	}, nil
}

// Recent returns the newest orders up to limit.
func (s *Service) Recent(ctx context.Context, limit int) ([]OrderResponse, error) {
	orders, err := s.orders.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, orders), nil
}

// Receipt returns the printable receipt for one order.
func (s *Service) Receipt(ctx context.Context, orderID uint) (*ReceiptResponse, error) {
	resp, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	receipt := toReceiptResponse(s.business, *resp)
	return &receipt, nil
}

// recordSale appends the sale transaction for an order's final amount.
func (s *Service) recordSale(ctx context.Context, o *order.Order, createdBy uint, referenceNumber string) error {
	return s.ledger.AppendTransaction(ctx, &ledger.Transaction{
		OrderID:         ptr(o.ID()),
		Kind:            ledger.KindSale,
		Amount:          o.FinalAmount(),
		PaymentMethod:   o.PaymentMethod(),
		ReferenceNumber: referenceNumber,
		Description:     fmt.Sprintf("Payment for order %s", o.OrderNumber()),
		CreatedBy:       createdBy,
		CreatedAt:       time.Now().UTC(),
	})
}

// lookupCustomer resolves the order's customer for response embedding.
// Best-effort: a missing customer yields a nil snapshot, never an error.
func (s *Service) lookupCustomer(ctx context.Context, o *order.Order) *customer.Customer {
	if o.CustomerID() == nil {
		return nil
	}
	c, err := s.customers.FindByID(ctx, *o.CustomerID())
	if err != nil {
		return nil
	}
	return c
}

func (s *Service) toResponses(ctx context.Context, orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toOrderResponse(o, s.lookupCustomer(ctx, o)))
	}
	return responses
}

func ptr[T any](v T) *T {
	return &v
}
