package order

import (
	"context"
	"testing"

	"kocho-pos/config"
	"kocho-pos/domain/customer"
	"kocho-pos/domain/inventory"
	"kocho-pos/domain/ledger"
	"kocho-pos/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. The fake unit of work snapshots every repository before
// running the transaction body and restores the snapshots on error, modelling
// a database rollback.

type snapshotter interface {
	snapshot()
	restore()
}

type fakeUnitOfWork struct {
	repos []snapshotter
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	for _, r := range u.repos {
		r.snapshot()
	}
	if err := fn(ctx); err != nil {
		for _, r := range u.repos {
			r.restore()
		}
		return err
	}
	return nil
}

type fakeStockRepo struct {
	items map[uint]inventory.Item
	saved map[uint]inventory.Item
}

func newFakeStockRepo(items ...inventory.Item) *fakeStockRepo {
	r := &fakeStockRepo{items: make(map[uint]inventory.Item)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeStockRepo) snapshot() {
	r.saved = make(map[uint]inventory.Item, len(r.items))
	for id, item := range r.items {
		r.saved[id] = item
	}
}

func (r *fakeStockRepo) restore() {
	r.items = r.saved
}

func (r *fakeStockRepo) Create(ctx context.Context, item *inventory.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeStockRepo) Save(ctx context.Context, item *inventory.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeStockRepo) Delete(ctx context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *fakeStockRepo) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	return &item, nil
}

func (r *fakeStockRepo) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			return &item, nil
		}
	}
	return nil, inventory.ErrItemNotFound
}

func (r *fakeStockRepo) List(ctx context.Context, filter inventory.Filter) ([]*inventory.Item, int64, error) {
	var out []*inventory.Item
	for id := range r.items {
		item := r.items[id]
		out = append(out, &item)
	}
	return out, int64(len(out)), nil
}

func (r *fakeStockRepo) ListCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (r *fakeStockRepo) Reserve(ctx context.Context, itemID uint, qty int) error {
	item, ok := r.items[itemID]
	if !ok {
		return inventory.ErrItemNotFound
	}
	if err := item.Reserve(qty); err != nil {
		return err
	}
	r.items[itemID] = item
	return nil
}

func (r *fakeStockRepo) Release(ctx context.Context, itemID uint, qty int) error {
	item, ok := r.items[itemID]
	if !ok {
		return nil
	}
	item.Quantity += qty
	r.items[itemID] = item
	return nil
}

func (r *fakeStockRepo) quantity(t *testing.T, id uint) int {
	t.Helper()
	item, ok := r.items[id]
	require.True(t, ok)
	return item.Quantity
}

type fakeOrderRepo struct {
	orders map[uint]*order.Order
	nextID uint
	saved  map[uint]*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
}

func (r *fakeOrderRepo) snapshot() {
	r.saved = make(map[uint]*order.Order, len(r.orders))
	for id, o := range r.orders {
		r.saved[id] = o
	}
}

func (r *fakeOrderRepo) restore() {
	r.orders = r.saved
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	id := r.nextID
	r.nextID++
	lineIDs := make([]uint, len(o.Lines()))
	for i := range lineIDs {
		lineIDs[i] = uint(i + 1)
	}
	o.AssignIdentity(id, lineIDs)
	r.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) Save(ctx context.Context, o *order.Order) error {
	if _, ok := r.orders[o.ID()]; !ok {
		return order.ErrOrderNotFound
	}
	r.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) FindRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	out, _, _ := r.List(ctx, order.Filter{})
	return out, nil
}

func (r *fakeOrderRepo) FindByCustomer(ctx context.Context, customerID uint, limit int) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.CustomerID() != nil && *o.CustomerID() == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uint]customer.Customer
	saved     map[uint]customer.Customer
}

func newFakeCustomerRepo(customers ...customer.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uint]customer.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) snapshot() {
	r.saved = make(map[uint]customer.Customer, len(r.customers))
	for id, c := range r.customers {
		r.saved[id] = c
	}
}

func (r *fakeCustomerRepo) restore() {
	r.customers = r.saved
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Save(ctx context.Context, c *customer.Customer) error {
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uint) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return &c, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) List(ctx context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	var out []*customer.Customer
	for id := range r.customers {
		c := r.customers[id]
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

type fakeLedgerRepo struct {
	transactions []ledger.Transaction
	expenses     []ledger.Expense
	savedTx      []ledger.Transaction
	savedExp     []ledger.Expense
}

func (r *fakeLedgerRepo) snapshot() {
	r.savedTx = append([]ledger.Transaction(nil), r.transactions...)
	r.savedExp = append([]ledger.Expense(nil), r.expenses...)
}

func (r *fakeLedgerRepo) restore() {
	r.transactions = r.savedTx
	r.expenses = r.savedExp
}

func (r *fakeLedgerRepo) AppendTransaction(ctx context.Context, t *ledger.Transaction) error {
	t.ID = uint(len(r.transactions) + 1)
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *fakeLedgerRepo) ListTransactions(ctx context.Context, filter ledger.TransactionFilter) ([]*ledger.Transaction, error) {
	out := make([]*ledger.Transaction, 0, len(r.transactions))
	for i := range r.transactions {
		out = append(out, &r.transactions[i])
	}
	return out, nil
}

func (r *fakeLedgerRepo) CreateExpense(ctx context.Context, e *ledger.Expense) error {
	e.ID = uint(len(r.expenses) + 1)
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *fakeLedgerRepo) FindExpenseByID(ctx context.Context, id uint) (*ledger.Expense, error) {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			return &r.expenses[i], nil
		}
	}
	return nil, ledger.ErrExpenseNotFound
}

func (r *fakeLedgerRepo) ListExpenses(ctx context.Context, filter ledger.ExpenseFilter) ([]*ledger.Expense, int64, error) {
	out := make([]*ledger.Expense, 0, len(r.expenses))
	for i := range r.expenses {
		out = append(out, &r.expenses[i])
	}
	return out, int64(len(out)), nil
}

type fixture struct {
	service   *Service
	orders    *fakeOrderRepo
	stock     *fakeStockRepo
	customers *fakeCustomerRepo
	ledger    *fakeLedgerRepo
}

func newFixture(items ...inventory.Item) *fixture {
	orders := newFakeOrderRepo()
	stock := newFakeStockRepo(items...)
	customers := newFakeCustomerRepo()
	ledgerRepo := &fakeLedgerRepo{}
	uow := &fakeUnitOfWork{repos: []snapshotter{orders, stock, customers, ledgerRepo}}

	return &fixture{
		service:   NewService(uow, orders, stock, customers, ledgerRepo, config.BusinessConfig{Name: "Test Shop"}),
		orders:    orders,
		stock:     stock,
		customers: customers,
		ledger:    ledgerRepo,
	}
}

func itemID(id uint) *uint {
	return &id
}

func TestCreateOrderReservesStock(t *testing.T) {
	f := newFixture(inventory.Item{ID: 7, Name: "A4 Paper Ream", Quantity: 5})

	resp, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ItemType: "service", ItemName: "Printing", Quantity: 1, UnitPrice: 20},
			{ItemType: "product", ItemID: itemID(7), ItemName: "A4 Paper Ream", Quantity: 2, UnitPrice: 50},
		},
		Discount: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, resp.TotalAmount)
	assert.Equal(t, 110.0, resp.FinalAmount)
	assert.NotEmpty(t, resp.OrderNumber)
	assert.Equal(t, 3, f.stock.quantity(t, 7))
	assert.Len(t, f.orders.orders, 1)
}

func TestCreateOrderInsufficientStockIsAtomic(t *testing.T) {
	f := newFixture(
		inventory.Item{ID: 1, Name: "Ink Cartridge", Quantity: 10},
		inventory.Item{ID: 2, Name: "A4 Paper Ream", Quantity: 1},
	)

	// The first line reserves fine; the second is short. Everything must
	// roll back.
	_, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ItemType: "product", ItemID: itemID(1), ItemName: "Ink Cartridge", Quantity: 4, UnitPrice: 800},
			{ItemType: "product", ItemID: itemID(2), ItemName: "A4 Paper Ream", Quantity: 3, UnitPrice: 550},
		},
	})
	require.Error(t, err)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "A4 Paper Ream", stockErr.ItemName)

	assert.Equal(t, 10, f.stock.quantity(t, 1))
	assert.Equal(t, 1, f.stock.quantity(t, 2))
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.ledger.transactions)
}

func TestCreateThenCancelRestoresStock(t *testing.T) {
	f := newFixture(
		inventory.Item{ID: 1, Name: "Ink Cartridge", Quantity: 10},
		inventory.Item{ID: 2, Name: "A4 Paper Ream", Quantity: 5},
	)

	resp, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ItemType: "product", ItemID: itemID(1), ItemName: "Ink Cartridge", Quantity: 2, UnitPrice: 800},
			{ItemType: "product", ItemID: itemID(2), ItemName: "A4 Paper Ream", Quantity: 2, UnitPrice: 550},
			{ItemType: "service", ItemName: "Binding", Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, f.stock.quantity(t, 1))
	assert.Equal(t, 3, f.stock.quantity(t, 2))

	cancelled, err := f.service.Cancel(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, 10, f.stock.quantity(t, 1))
	assert.Equal(t, 5, f.stock.quantity(t, 2))
}

func TestCancelCompletedOrderFails(t *testing.T) {
	f := newFixture(inventory.Item{ID: 7, Name: "A4 Paper Ream", Quantity: 5})

	resp, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ItemType: "product", ItemID: itemID(7), ItemName: "A4 Paper Ream", Quantity: 2, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	completed := "completed"
	_, err = f.service.Update(context.Background(), resp.ID, 1, UpdateOrderRequest{Status: &completed})
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), resp.ID)
	assert.ErrorIs(t, err, order.ErrCancelCompleted)

	// Stock stays reserved and the order stays completed.
	assert.Equal(t, 3, f.stock.quantity(t, 7))
	stored, err := f.orders.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, stored.Status())
}

func TestPaidAtCreationEmitsOneSaleTransaction(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), 3, CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ItemType: "service", ItemName: "Printing", Quantity: 4, UnitPrice: 10},
		},
		PaymentStatus:   "paid",
		PaymentMethod:   "mpesa",
		ReferenceNumber: "QX12ABC",
	})
	require.NoError(t, err)

	require.Len(t, f.ledger.transactions, 1)
	tx := f.ledger.transactions[0]
	assert.Equal(t, ledger.KindSale, tx.Kind)
	assert.Equal(t, resp.FinalAmount, tx.Amount)
	assert.Equal(t, "mpesa", tx.PaymentMethod)
	assert.Equal(t, "QX12ABC", tx.ReferenceNumber)
	assert.Equal(t, uint(3), tx.CreatedBy)
	require.NotNil(t, tx.OrderID)
	assert.Equal(t, resp.ID, *tx.OrderID)
}

func TestPaymentStatusEdgeTriggeredSales(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ItemType: "service", ItemName: "Printing", Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)
	require.Empty(t, f.ledger.transactions)

	paid := "paid"
	pending := "pending"

	_, err = f.service.Update(context.Background(), resp.ID, 1, UpdateOrderRequest{PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Len(t, f.ledger.transactions, 1)

	// Repeated paid write: no extra transaction.
	_, err = f.service.Update(context.Background(), resp.ID, 1, UpdateOrderRequest{PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Len(t, f.ledger.transactions, 1)

	// Flap through pending and back: a second sale is recorded.
	_, err = f.service.Update(context.Background(), resp.ID, 1, UpdateOrderRequest{PaymentStatus: &pending})
	require.NoError(t, err)
	_, err = f.service.Update(context.Background(), resp.ID, 1, UpdateOrderRequest{PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Len(t, f.ledger.transactions, 2)
	assert.Equal(t, 100.0, f.ledger.transactions[1].Amount)
}

func TestCreateOrderUpdatesCustomer(t *testing.T) {
	f := newFixture()
	f.customers.customers[4] = customer.Customer{ID: 4, Name: "Jane", Phone: "0700000000"}

	custID := uint(4)
	resp, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		CustomerID: &custID,
		Items: []CreateOrderItemRequest{
			{ItemType: "service", ItemName: "Design", Quantity: 1, UnitPrice: 500},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "Jane", resp.Customer.Name)

	stored := f.customers.customers[4]
	assert.Equal(t, 500.0, stored.TotalSpent)
	assert.NotNil(t, stored.LastVisit)
}

func TestCreateOrderUnknownCustomerIsSkipped(t *testing.T) {
	f := newFixture()

	custID := uint(99)
	resp, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		CustomerID: &custID,
		Items: []CreateOrderItemRequest{
			{ItemType: "service", ItemName: "Design", Quantity: 1, UnitPrice: 500},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Customer)
	assert.Len(t, f.orders.orders, 1)
}

func TestUpdateUnknownOrder(t *testing.T) {
	f := newFixture()
	notes := "x"
	_, err := f.service.Update(context.Background(), 42, 1, UpdateOrderRequest{Notes: &notes})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestInvalidTransitionRejectedWithoutForce(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{ItemType: "service", ItemName: "Printing", Quantity: 1, UnitPrice: 10},
		},
	})
	require.NoError(t, err)

	completed := "completed"
	_, err = f.service.Update(context.Background(), resp.ID, 1, UpdateOrderRequest{Status: &completed})
	require.NoError(t, err)

	processing := "processing"
	_, err = f.service.Update(context.Background(), resp.ID, 1, UpdateOrderRequest{Status: &processing})
	assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

	_, err = f.service.Update(context.Background(), resp.ID, 1, UpdateOrderRequest{Status: &processing, Force: true})
	require.NoError(t, err)
}

func TestSpecificationsRoundTrip(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), 1, CreateOrderRequest{
		Items: []CreateOrderItemRequest{
			{
				ItemType:  "service",
				ItemName:  "Printing",
				Quantity:  10,
				UnitPrice: 5,
				Specifications: map[string]interface{}{
					"paper": "A4",
					"color": true,
				},
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	specs := resp.Items[0].Specifications
	require.NotNil(t, specs)
	assert.Equal(t, "A4", specs["paper"])
	assert.Equal(t, true, specs["color"])
}
