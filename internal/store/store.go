// Package store owns the in-memory entity collections and every operation
// the rest of the application is allowed to perform on them. Mutations are
// optimistic: applied locally first, confirmed against the remote store, and
// restored from a pre-mutation snapshot when confirmation fails. The remote
// store stays the sole source of durable truth; the cache snapshot only makes
// the last-known state available before the first network round-trip.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/pkg/logger"
)

// Entity keys, used for reloads and realtime routing.
const (
	EntityOrders    = "orders"
	EntityCustomers = "customers"
	EntityInventory = "inventory"
	EntityMembers   = "members"
	EntityProducts  = "products"
	EntityWorkflows = "workflows"
	EntityServices  = "services"
)

var ErrNotFound = errors.New("record not found")

// RemoteClient is the sync client for the authoritative store. Loads degrade
// on their own; mutation calls propagate failures.
type RemoteClient interface {
	LoadAll(ctx context.Context) model.Collections
	LoadOrders(ctx context.Context) ([]model.Order, error)
	LoadCustomers(ctx context.Context) ([]model.Customer, error)
	LoadInventory(ctx context.Context) ([]model.InventoryItem, error)
	LoadMembers(ctx context.Context) ([]model.Member, error)
	LoadProducts(ctx context.Context) ([]model.Product, error)
	LoadWorkflows(ctx context.Context) ([]model.WorkflowDefinition, error)
	LoadServices(ctx context.Context) ([]model.ServiceDefinition, error)

	AddOrder(ctx context.Context, o model.Order) (model.Order, error)
	UpdateOrder(ctx context.Context, o model.Order) error
	DeleteOrder(ctx context.Context, id string) error
	UpdateOrderItem(ctx context.Context, it model.OrderItem) error
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
	LoadOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error)

	AddCustomer(ctx context.Context, c model.Customer) (model.Customer, error)
	UpdateCustomer(ctx context.Context, c model.Customer) error
	DeleteCustomer(ctx context.Context, id string) error

	AddInventoryItem(ctx context.Context, it model.InventoryItem) (model.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, it model.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id string) error

	AddMember(ctx context.Context, m model.Member) (model.Member, error)
	UpdateMember(ctx context.Context, m model.Member) error
	DeleteMember(ctx context.Context, id string) error

	AddProduct(ctx context.Context, p model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// SnapshotStore persists last-known state; all failures are its own problem.
type SnapshotStore interface {
	Hydrate(ctx context.Context) model.Collections
	Schedule(snapshot func() model.Collections)
	PersistNow(ctx context.Context, cols model.Collections)
}

type Store struct {
	remote RemoteClient
	snap   SnapshotStore

	mu   sync.Mutex
	cols model.Collections
}

func New(remote RemoteClient, snap SnapshotStore) *Store {
	return &Store{remote: remote, snap: snap}
}

// Hydrate installs the cached snapshot so callers can render immediately.
// Runs synchronously before any network call resolves.
func (s *Store) Hydrate(ctx context.Context) {
	if s.snap == nil {
		return
	}
	cols := s.snap.Hydrate(ctx)
	s.mu.Lock()
	s.cols = cols
	s.mu.Unlock()
}

// Bootstrap replaces the hydrated state with the authoritative remote state.
// Per-entity failures have already degraded to empty collections inside the
// client.
func (s *Store) Bootstrap(ctx context.Context) {
	cols := s.remote.LoadAll(ctx)
	s.mu.Lock()
	s.cols = cols
	s.mu.Unlock()
	s.persistSoon()
}

// Reload refreshes a single collection from the remote store. On failure the
// previous collection is kept and the error returned.
func (s *Store) Reload(ctx context.Context, entity string) error {
	switch entity {
	case EntityOrders:
		orders, err := s.remote.LoadOrders(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.cols.Orders = orders
		s.mu.Unlock()
	case EntityCustomers:
		customers, err := s.remote.LoadCustomers(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.cols.Customers = customers
		s.mu.Unlock()
	case EntityInventory:
		inventory, err := s.remote.LoadInventory(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.cols.Inventory = inventory
		s.mu.Unlock()
	case EntityMembers:
		members, err := s.remote.LoadMembers(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.cols.Members = members
		s.mu.Unlock()
	case EntityProducts:
		products, err := s.remote.LoadProducts(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.cols.Products = products
		s.mu.Unlock()
	case EntityWorkflows:
		workflows, err := s.remote.LoadWorkflows(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.cols.Workflows = workflows
		s.mu.Unlock()
	case EntityServices:
		services, err := s.remote.LoadServices(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.cols.Services = services
		s.mu.Unlock()
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
	s.persistSoon()
	return nil
}

// snapshot copies the collections for persisting outside the lock.
func (s *Store) snapshot() model.Collections {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Collections{
		Orders:    append([]model.Order(nil), s.cols.Orders...),
		Customers: append([]model.Customer(nil), s.cols.Customers...),
		Inventory: append([]model.InventoryItem(nil), s.cols.Inventory...),
		Members:   append([]model.Member(nil), s.cols.Members...),
		Products:  append([]model.Product(nil), s.cols.Products...),
		Workflows: append([]model.WorkflowDefinition(nil), s.cols.Workflows...),
		Services:  append([]model.ServiceDefinition(nil), s.cols.Services...),
	}
}

func (s *Store) persistSoon() {
	if s.snap == nil {
		return
	}
	s.snap.Schedule(s.snapshot)
}

// PersistNow flushes the current state; used at shutdown.
func (s *Store) PersistNow(ctx context.Context) {
	if s.snap == nil {
		return
	}
	s.snap.PersistNow(ctx, s.snapshot())
}

// mutate is the uniform optimistic-update coordinator: apply runs under the
// lock and returns the restore closure; confirm talks to the remote store.
// On confirmation failure the restore closure runs and the error is re-thrown
// to the caller for surfacing.
func (s *Store) mutate(ctx context.Context, apply func() (restore func()), confirm func(context.Context) error) error {
	s.mu.Lock()
	restore := apply()
	s.mu.Unlock()
	s.persistSoon()

	if err := confirm(ctx); err != nil {
		s.mu.Lock()
		restore()
		s.mu.Unlock()
		s.persistSoon()
		return err
	}
	return nil
}

func logConfirmDrift(op string, err error) {
	logger.Warn("post-confirmation write failed", zap.String("op", op), zap.Error(err))
}

// Read accessors return copies; callers never see the live slices.

func (s *Store) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.cols.Orders...)
}

func (s *Store) Customers() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Customer(nil), s.cols.Customers...)
}

func (s *Store) Inventory() []model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.InventoryItem(nil), s.cols.Inventory...)
}

func (s *Store) Members() []model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Member(nil), s.cols.Members...)
}

func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Product(nil), s.cols.Products...)
}

func (s *Store) Workflows() []model.WorkflowDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.WorkflowDefinition(nil), s.cols.Workflows...)
}

func (s *Store) Services() []model.ServiceDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ServiceDefinition(nil), s.cols.Services...)
}
