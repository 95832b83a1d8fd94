package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
)

// fakeRemote backs the store with an in-memory remote: Add* assign server
// ids, per-operation error fields force confirmation failures, and the write
// logs let tests assert what reached the remote.
type fakeRemote struct {
	mu   sync.Mutex
	cols model.Collections
	seq  int

	addOrderErr        error
	updateOrderErr     error
	updateItemErr      error
	updateStatusErr    error
	addCustomerErr     error
	updateCustomerErr  error
	deleteInventoryErr error

	orderItems  map[string][]model.OrderItem
	orderStatus map[string]model.OrderStatus
	loadItemsFn func(orderID string) ([]model.OrderItem, error)

	updatedItems    []model.OrderItem
	statusWrites    []model.OrderStatus
	inventoryWrites []model.InventoryItem
	customerWrites  []model.Customer
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		orderItems:  map[string][]model.OrderItem{},
		orderStatus: map[string]model.OrderStatus{},
	}
}

func (f *fakeRemote) nextID() string {
	f.seq++
	return fmt.Sprintf("srv-%d", f.seq)
}

func (f *fakeRemote) LoadAll(ctx context.Context) model.Collections {
	f.mu.Lock()
	defer f.mu.Unlock()
	cols := f.cols
	cols.Orders = f.remoteOrders()
	return cols
}

func (f *fakeRemote) LoadOrders(ctx context.Context) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remoteOrders(), nil
}

// remoteOrders composes the remote's own view of each order: the durable
// status and item set live in the per-order maps, not in the slices the
// store mutates optimistically. Caller holds the lock.
func (f *fakeRemote) remoteOrders() []model.Order {
	out := append([]model.Order(nil), f.cols.Orders...)
	for i, o := range out {
		if st, ok := f.orderStatus[o.ID]; ok {
			out[i].Status = st
		}
		if items, ok := f.orderItems[o.ID]; ok {
			out[i].Items = append([]model.OrderItem(nil), items...)
		}
	}
	return out
}

func (f *fakeRemote) LoadCustomers(ctx context.Context) ([]model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols.Customers, nil
}

func (f *fakeRemote) LoadInventory(ctx context.Context) ([]model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols.Inventory, nil
}

func (f *fakeRemote) LoadMembers(ctx context.Context) ([]model.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols.Members, nil
}

func (f *fakeRemote) LoadProducts(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols.Products, nil
}

func (f *fakeRemote) LoadWorkflows(ctx context.Context) ([]model.WorkflowDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols.Workflows, nil
}

func (f *fakeRemote) LoadServices(ctx context.Context) ([]model.ServiceDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols.Services, nil
}

func (f *fakeRemote) AddOrder(ctx context.Context, o model.Order) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addOrderErr != nil {
		return model.Order{}, f.addOrderErr
	}
	o.ID = f.nextID()
	for i := range o.Items {
		o.Items[i].ID = f.nextID()
		o.Items[i].OrderID = o.ID
	}
	f.orderItems[o.ID] = append([]model.OrderItem(nil), o.Items...)
	return o, nil
}

func (f *fakeRemote) UpdateOrder(ctx context.Context, o model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateOrderErr
}

func (f *fakeRemote) DeleteOrder(ctx context.Context, id string) error { return nil }

func (f *fakeRemote) UpdateOrderItem(ctx context.Context, it model.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateItemErr != nil {
		return f.updateItemErr
	}
	f.updatedItems = append(f.updatedItems, it)
	items := f.orderItems[it.OrderID]
	for i := range items {
		if items[i].ID == it.ID {
			items[i] = it
		}
	}
	return nil
}

func (f *fakeRemote) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	f.statusWrites = append(f.statusWrites, status)
	f.orderStatus[id] = status
	return nil
}

func (f *fakeRemote) LoadOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadItemsFn != nil {
		return f.loadItemsFn(orderID)
	}
	return append([]model.OrderItem(nil), f.orderItems[orderID]...), nil
}

func (f *fakeRemote) AddCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addCustomerErr != nil {
		return model.Customer{}, f.addCustomerErr
	}
	c.ID = f.nextID()
	return c, nil
}

func (f *fakeRemote) UpdateCustomer(ctx context.Context, c model.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateCustomerErr != nil {
		return f.updateCustomerErr
	}
	f.customerWrites = append(f.customerWrites, c)
	return nil
}

func (f *fakeRemote) DeleteCustomer(ctx context.Context, id string) error { return nil }

func (f *fakeRemote) AddInventoryItem(ctx context.Context, it model.InventoryItem) (model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it.ID = f.nextID()
	return it, nil
}

func (f *fakeRemote) UpdateInventoryItem(ctx context.Context, it model.InventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inventoryWrites = append(f.inventoryWrites, it)
	return nil
}

func (f *fakeRemote) DeleteInventoryItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteInventoryErr
}

func (f *fakeRemote) AddMember(ctx context.Context, m model.Member) (model.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.nextID()
	return m, nil
}

func (f *fakeRemote) UpdateMember(ctx context.Context, m model.Member) error { return nil }

func (f *fakeRemote) DeleteMember(ctx context.Context, id string) error { return nil }

func (f *fakeRemote) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID()
	return p, nil
}

func (f *fakeRemote) UpdateProduct(ctx context.Context, p model.Product) error { return nil }

func (f *fakeRemote) DeleteProduct(ctx context.Context, id string) error { return nil }

type fakeSnap struct {
	mu        sync.Mutex
	hydrate   model.Collections
	scheduled int
	persisted int
}

func (f *fakeSnap) Hydrate(ctx context.Context) model.Collections {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hydrate
}

func (f *fakeSnap) Schedule(snapshot func() model.Collections) {
	f.mu.Lock()
	f.scheduled++
	f.mu.Unlock()
	_ = snapshot()
}

func (f *fakeSnap) PersistNow(ctx context.Context, cols model.Collections) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.persisted++
}

func newStore(t *testing.T, fake *fakeRemote) *Store {
	t.Helper()
	st := New(fake, nil)
	st.Bootstrap(context.Background())
	return st
}

func TestHydrateThenBootstrap(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = model.Collections{Customers: []model.Customer{{ID: "cus-1", Name: "remote"}}}
	snap := &fakeSnap{hydrate: model.Collections{Customers: []model.Customer{{ID: "cached", Name: "cached"}}}}
	st := New(fake, snap)
	ctx := context.Background()

	st.Hydrate(ctx)
	require.Len(t, st.Customers(), 1)
	assert.Equal(t, "cached", st.Customers()[0].ID)

	st.Bootstrap(ctx)
	require.Len(t, st.Customers(), 1)
	assert.Equal(t, "cus-1", st.Customers()[0].ID)
	assert.GreaterOrEqual(t, snap.scheduled, 1)
}

func TestReloadSingleCollection(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = model.Collections{Members: []model.Member{{ID: "mem-1"}}}
	st := newStore(t, fake)
	ctx := context.Background()

	fake.mu.Lock()
	fake.cols.Members = append(fake.cols.Members, model.Member{ID: "mem-2"})
	fake.cols.Customers = []model.Customer{{ID: "cus-1"}}
	fake.mu.Unlock()

	require.NoError(t, st.Reload(ctx, EntityMembers))
	assert.Len(t, st.Members(), 2)
	// only the named collection refreshed
	assert.Empty(t, st.Customers())

	assert.Error(t, st.Reload(ctx, "bogus"))
}

func TestAddCustomerSwapsInServerID(t *testing.T) {
	fake := newFakeRemote()
	st := newStore(t, fake)

	added, err := st.AddCustomer(context.Background(), model.Customer{Name: "Ngọc Anh"})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", added.ID)

	customers := st.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, "srv-1", customers[0].ID)
}

func TestAddCustomerRollsBack(t *testing.T) {
	fake := newFakeRemote()
	fake.addCustomerErr = errors.New("remote down")
	st := newStore(t, fake)

	_, err := st.AddCustomer(context.Background(), model.Customer{Name: "Ngọc Anh"})
	require.Error(t, err)
	assert.Empty(t, st.Customers())
}

func TestUpdateCustomerRollsBack(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = model.Collections{Customers: []model.Customer{{ID: "cus-1", Name: "before"}}}
	fake.updateCustomerErr = errors.New("remote down")
	st := newStore(t, fake)

	err := st.UpdateCustomer(context.Background(), model.Customer{ID: "cus-1", Name: "after"})
	require.Error(t, err)
	require.Len(t, st.Customers(), 1)
	assert.Equal(t, "before", st.Customers()[0].Name)
}

func TestDeleteInventoryRestoresPosition(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = model.Collections{Inventory: []model.InventoryItem{
		{ID: "inv-1"}, {ID: "inv-2"}, {ID: "inv-3"},
	}}
	fake.deleteInventoryErr = errors.New("remote down")
	st := newStore(t, fake)

	require.Error(t, st.DeleteInventoryItem(context.Background(), "inv-2"))
	inv := st.Inventory()
	require.Len(t, inv, 3)
	assert.Equal(t, "inv-2", inv[1].ID)
}

func workflowFixture() model.Collections {
	return model.Collections{
		Customers: []model.Customer{{ID: "cus-1", Name: "Ngọc Anh", TotalSpent: 100000}},
		Inventory: []model.InventoryItem{
			{ID: "inv-glue", Name: "Keo dán", Quantity: 10},
			{ID: "inv-wax", Name: "Xi", Quantity: 4},
		},
		Workflows: []model.WorkflowDefinition{{
			ID:    "wf-clean",
			Label: "Cleaning",
			Stages: []model.WorkflowStage{
				{ID: "soak", Name: "Soak", Order: 1},
				{ID: "dry", Name: "Dry", Order: 2},
			},
			Materials: []model.MaterialRequirement{
				{InventoryItemID: "inv-glue", QuantityPerUnit: 2},
				{InventoryItemID: "inv-wax", QuantityPerUnit: 0.5},
			},
		}},
		Services: []model.ServiceDefinition{
			{ID: "svc-clean", Name: "Deep Clean", WorkflowIDs: []string{"wf-clean"}},
		},
	}
}

func TestCreateOrderDeductsMaterialsAndSpend(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = workflowFixture()
	st := newStore(t, fake)

	created, err := st.CreateOrder(context.Background(), model.Order{
		CustomerID:  "cus-1",
		TotalAmount: 250000,
		Items: []model.OrderItem{
			{Name: "Túi da", ServiceID: "svc-clean", Quantity: 3},
			{Name: "Nước hoa", IsProduct: true, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, model.OrderPending, created.Status)
	assert.Equal(t, "wf-clean", created.Items[0].WorkflowID)
	assert.Equal(t, stageInQueue, created.Items[0].Status)

	orders := st.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "srv-1", orders[0].ID)

	// materials: 2/unit and 0.5/unit across 3 units of work
	inv := st.Inventory()
	byID := map[string]model.InventoryItem{}
	for _, it := range inv {
		byID[it.ID] = it
	}
	assert.Equal(t, float64(4), byID["inv-glue"].Quantity)
	assert.Equal(t, 2.5, byID["inv-wax"].Quantity)

	require.Len(t, st.Customers(), 1)
	assert.Equal(t, float64(350000), st.Customers()[0].TotalSpent)

	// consumption and the new total reached the remote
	assert.Len(t, fake.inventoryWrites, 2)
	require.Len(t, fake.customerWrites, 1)
	assert.Equal(t, float64(350000), fake.customerWrites[0].TotalSpent)
}

func TestCreateOrderRollsBackEverything(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = workflowFixture()
	fake.addOrderErr = errors.New("remote down")
	st := newStore(t, fake)

	_, err := st.CreateOrder(context.Background(), model.Order{
		CustomerID:  "cus-1",
		TotalAmount: 250000,
		Items:       []model.OrderItem{{Name: "Túi da", ServiceID: "svc-clean", Quantity: 3}},
	})
	require.Error(t, err)

	assert.Empty(t, st.Orders())
	byID := map[string]model.InventoryItem{}
	for _, it := range st.Inventory() {
		byID[it.ID] = it
	}
	assert.Equal(t, float64(10), byID["inv-glue"].Quantity)
	assert.Equal(t, float64(4), byID["inv-wax"].Quantity)
	assert.Equal(t, float64(100000), st.Customers()[0].TotalSpent)
	assert.Empty(t, fake.inventoryWrites)
	assert.Empty(t, fake.customerWrites)
}

func orderFixture(status model.OrderStatus, items ...model.OrderItem) model.Collections {
	cols := workflowFixture()
	cols.Orders = []model.Order{{ID: "ord-1", Status: status, Items: items}}
	return cols
}

func TestAdvanceItemMovesStageAndOrder(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderPending,
		model.OrderItem{ID: "it-1", OrderID: "ord-1", WorkflowID: "wf-clean", Status: stageInQueue},
		model.OrderItem{ID: "it-2", OrderID: "ord-1", WorkflowID: "wf-clean", Status: stageInQueue},
	)
	st := newStore(t, fake)
	fake.orderItems["ord-1"] = fake.cols.Orders[0].Items

	err := st.AdvanceItem(context.Background(), "ord-1", "it-1", "soak", "alice", "leather is fragile")
	require.NoError(t, err)

	orders := st.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, model.OrderProcessing, orders[0].Status)

	var it model.OrderItem
	for _, cand := range orders[0].Items {
		if cand.ID == "it-1" {
			it = cand
		}
	}
	assert.Equal(t, "soak", it.Status)
	require.Len(t, it.History, 1)
	assert.Equal(t, "Soak", it.History[0].StageName)
	assert.Equal(t, "alice", it.History[0].PerformedBy)
	assert.Nil(t, it.History[0].LeftAt)
	require.Len(t, it.TechnicalLog, 1)
	assert.Equal(t, "leather is fragile", it.TechnicalLog[0].Content)
	assert.Equal(t, "soak", it.TechnicalLog[0].Stage)

	require.Len(t, fake.updatedItems, 1)
	assert.Equal(t, "soak", fake.updatedItems[0].Status)

	// the remote row still said Pending; the derivation must reach it
	require.Len(t, fake.statusWrites, 1)
	assert.Equal(t, model.OrderProcessing, fake.statusWrites[0])
}

func TestAdvanceLastItemFinishesOrder(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderProcessing,
		model.OrderItem{ID: "it-1", OrderID: "ord-1", WorkflowID: "wf-clean", Status: "done"},
		model.OrderItem{ID: "it-2", OrderID: "ord-1", WorkflowID: "wf-clean", Status: "dry"},
	)
	st := newStore(t, fake)
	fake.orderItems["ord-1"] = fake.cols.Orders[0].Items

	require.NoError(t, st.AdvanceItem(context.Background(), "ord-1", "it-2", "done", "alice", ""))

	assert.Equal(t, model.OrderDone, st.Orders()[0].Status)
	// Done differs from the remote's Processing row, so it must be written
	// even though the confirmed derivation matched the local guess
	require.Len(t, fake.statusWrites, 1)
	assert.Equal(t, model.OrderDone, fake.statusWrites[0])
}

func TestReloadAfterAdvanceKeepsDerivedStatus(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderProcessing,
		model.OrderItem{ID: "it-1", OrderID: "ord-1", WorkflowID: "wf-clean", Status: "done"},
		model.OrderItem{ID: "it-2", OrderID: "ord-1", WorkflowID: "wf-clean", Status: "dry"},
	)
	st := newStore(t, fake)
	fake.orderItems["ord-1"] = fake.cols.Orders[0].Items

	require.NoError(t, st.AdvanceItem(context.Background(), "ord-1", "it-2", "done", "alice", ""))
	assert.Equal(t, model.OrderDone, st.Orders()[0].Status)

	// an authoritative reload serves the persisted status, not a stale row
	require.NoError(t, st.Reload(context.Background(), EntityOrders))
	assert.Equal(t, model.OrderDone, st.Orders()[0].Status)
}

func TestAdvanceCorrectsStatusFromRemoteItems(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderPending,
		model.OrderItem{ID: "it-1", OrderID: "ord-1", WorkflowID: "wf-clean", Status: "done"},
		model.OrderItem{ID: "it-2", OrderID: "ord-1", WorkflowID: "wf-clean", Status: "dry"},
	)
	st := newStore(t, fake)
	// another client reopened it-1 remotely
	fake.loadItemsFn = func(orderID string) ([]model.OrderItem, error) {
		return []model.OrderItem{
			{ID: "it-1", OrderID: "ord-1", Status: "soak"},
			{ID: "it-2", OrderID: "ord-1", Status: "done"},
		}, nil
	}

	require.NoError(t, st.AdvanceItem(context.Background(), "ord-1", "it-2", "done", "alice", ""))

	// local guess was Done; the remote items demote it to Processing, which
	// also gets persisted since the row still said Pending
	assert.Equal(t, model.OrderProcessing, st.Orders()[0].Status)
	require.Len(t, fake.statusWrites, 1)
	assert.Equal(t, model.OrderProcessing, fake.statusWrites[0])
}

func TestAdvanceSkipsStatusWriteWhenRowAlreadyCorrect(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderProcessing,
		model.OrderItem{ID: "it-1", OrderID: "ord-1", WorkflowID: "wf-clean", Status: "soak"},
		model.OrderItem{ID: "it-2", OrderID: "ord-1", WorkflowID: "wf-clean", Status: stageInQueue},
	)
	st := newStore(t, fake)
	fake.orderItems["ord-1"] = fake.cols.Orders[0].Items

	require.NoError(t, st.AdvanceItem(context.Background(), "ord-1", "it-2", "soak", "alice", ""))

	assert.Equal(t, model.OrderProcessing, st.Orders()[0].Status)
	assert.Empty(t, fake.statusWrites)
}

func TestAdvanceUnknownItem(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderPending,
		model.OrderItem{ID: "it-1", OrderID: "ord-1", WorkflowID: "wf-clean", Status: stageInQueue},
	)
	st := newStore(t, fake)

	err := st.AdvanceItem(context.Background(), "ord-1", "missing", "soak", "alice", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, model.OrderPending, st.Orders()[0].Status)
	assert.Empty(t, fake.updatedItems)
}

func TestAdvanceRollsBackOnRemoteFailure(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderPending,
		model.OrderItem{ID: "it-1", OrderID: "ord-1", WorkflowID: "wf-clean", Status: stageInQueue},
	)
	fake.updateItemErr = errors.New("remote down")
	st := newStore(t, fake)

	err := st.AdvanceItem(context.Background(), "ord-1", "it-1", "soak", "alice", "")
	require.Error(t, err)

	orders := st.Orders()
	assert.Equal(t, model.OrderPending, orders[0].Status)
	assert.Equal(t, stageInQueue, orders[0].Items[0].Status)
	assert.Empty(t, orders[0].Items[0].History)
}

func TestSetOrderStatusRollsBack(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderPending)
	fake.updateStatusErr = errors.New("remote down")
	st := newStore(t, fake)

	require.Error(t, st.SetOrderStatus(context.Background(), "ord-1", model.OrderCancelled))
	assert.Equal(t, model.OrderPending, st.Orders()[0].Status)
}

func TestUpdateOrderRollsBack(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderPending)
	fake.updateOrderErr = errors.New("remote down")
	st := newStore(t, fake)

	changed := st.Orders()[0]
	changed.Notes = "rush"
	require.Error(t, st.UpdateOrder(context.Background(), changed))
	assert.Equal(t, "", st.Orders()[0].Notes)
}

func TestDeleteOrder(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = orderFixture(model.OrderPending)
	st := newStore(t, fake)

	require.NoError(t, st.DeleteOrder(context.Background(), "ord-1"))
	assert.Empty(t, st.Orders())
}

func TestAccessorsReturnCopies(t *testing.T) {
	fake := newFakeRemote()
	fake.cols = model.Collections{Customers: []model.Customer{{ID: "cus-1", Name: "before"}}}
	st := newStore(t, fake)

	got := st.Customers()
	got[0].Name = "mutated"
	assert.Equal(t, "before", st.Customers()[0].Name)
}
