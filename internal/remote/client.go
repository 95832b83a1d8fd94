// Package remote is the sync client for the authoritative store. Reads are
// bounded and sorted per entity; loads degrade to empty collections so one
// entity's outage cannot take down the other five; mutations propagate their
// errors to the caller.
package remote

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/pkg/logger"
)

type Client struct {
	db        *gorm.DB
	orderCap  int
	entityCap int
}

func NewClient(db *gorm.DB, orderCap, entityCap int) *Client {
	if orderCap <= 0 {
		orderCap = 500
	}
	if entityCap <= 0 {
		entityCap = 1000
	}
	return &Client{db: db, orderCap: orderCap, entityCap: entityCap}
}

// LoadAll fans out one load per collection and waits for every outcome.
// Failed loads have already been logged and replaced by empty collections, so
// a partial remote outage yields a partial but usable result.
func (c *Client) LoadAll(ctx context.Context) model.Collections {
	var (
		wg   sync.WaitGroup
		cols model.Collections
	)
	run := func(load func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			load()
		}()
	}
	run(func() { cols.Orders = loadOrSkip(ctx, "orders", c.LoadOrders) })
	run(func() { cols.Customers = loadOrSkip(ctx, "customers", c.LoadCustomers) })
	run(func() { cols.Inventory = loadOrSkip(ctx, "inventory", c.LoadInventory) })
	run(func() { cols.Members = loadOrSkip(ctx, "members", c.LoadMembers) })
	run(func() { cols.Products = loadOrSkip(ctx, "products", c.LoadProducts) })
	run(func() { cols.Workflows = loadOrSkip(ctx, "workflows", c.LoadWorkflows) })
	run(func() { cols.Services = loadOrSkip(ctx, "services", c.LoadServices) })
	wg.Wait()
	return cols
}

func loadOrSkip[T any](ctx context.Context, name string, load func(context.Context) ([]T, error)) []T {
	out, err := load(ctx)
	if err != nil {
		logger.Warn("load failed, continuing with empty collection",
			zap.String("entity", name), zap.Error(err))
		return []T{}
	}
	return out
}

func (c *Client) LoadCustomers(ctx context.Context) ([]model.Customer, error) {
	var rows []customerRow
	if err := c.db.WithContext(ctx).Order("name").Limit(c.entityCap).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Customer, len(rows))
	for i, r := range rows {
		out[i] = fromCustomerRow(r)
	}
	return out, nil
}

func (c *Client) LoadInventory(ctx context.Context) ([]model.InventoryItem, error) {
	var rows []inventoryRow
	if err := c.db.WithContext(ctx).Order("name").Limit(c.entityCap).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.InventoryItem, len(rows))
	for i, r := range rows {
		out[i] = fromInventoryRow(r)
	}
	return out, nil
}

func (c *Client) LoadMembers(ctx context.Context) ([]model.Member, error) {
	var rows []memberRow
	if err := c.db.WithContext(ctx).Order("name").Limit(c.entityCap).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Member, len(rows))
	for i, r := range rows {
		out[i] = fromMemberRow(r)
	}
	return out, nil
}

func (c *Client) LoadProducts(ctx context.Context) ([]model.Product, error) {
	var rows []productRow
	if err := c.db.WithContext(ctx).Order("name").Limit(c.entityCap).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Product, len(rows))
	for i, r := range rows {
		out[i] = fromProductRow(r)
	}
	return out, nil
}

func (c *Client) LoadWorkflows(ctx context.Context) ([]model.WorkflowDefinition, error) {
	var rows []workflowRow
	if err := c.db.WithContext(ctx).Order("label").Limit(c.entityCap).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.WorkflowDefinition, len(rows))
	for i, r := range rows {
		out[i] = fromWorkflowRow(r)
	}
	return out, nil
}

func (c *Client) LoadServices(ctx context.Context) ([]model.ServiceDefinition, error) {
	var rows []serviceRow
	if err := c.db.WithContext(ctx).Order("name").Limit(c.entityCap).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.ServiceDefinition, len(rows))
	for i, r := range rows {
		out[i] = fromServiceRow(r)
	}
	return out, nil
}

func (c *Client) AddCustomer(ctx context.Context, cu model.Customer) (model.Customer, error) {
	if cu.ID == "" {
		cu.ID = uuid.NewString()
	}
	if cu.CreatedAt.IsZero() {
		cu.CreatedAt = time.Now()
	}
	row := toCustomerRow(cu)
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Customer{}, err
	}
	return fromCustomerRow(row), nil
}

func (c *Client) UpdateCustomer(ctx context.Context, cu model.Customer) error {
	row := toCustomerRow(cu)
	return c.db.WithContext(ctx).Save(&row).Error
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(&customerRow{}).Error
}

func (c *Client) AddInventoryItem(ctx context.Context, it model.InventoryItem) (model.InventoryItem, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.UpdatedAt = time.Now()
	row := toInventoryRow(it)
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.InventoryItem{}, err
	}
	return fromInventoryRow(row), nil
}

func (c *Client) UpdateInventoryItem(ctx context.Context, it model.InventoryItem) error {
	it.UpdatedAt = time.Now()
	row := toInventoryRow(it)
	return c.db.WithContext(ctx).Save(&row).Error
}

func (c *Client) DeleteInventoryItem(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(&inventoryRow{}).Error
}

func (c *Client) AddMember(ctx context.Context, m model.Member) (model.Member, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	row := toMemberRow(m)
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Member{}, err
	}
	return fromMemberRow(row), nil
}

func (c *Client) UpdateMember(ctx context.Context, m model.Member) error {
	row := toMemberRow(m)
	return c.db.WithContext(ctx).Save(&row).Error
}

func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(&memberRow{}).Error
}

func (c *Client) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	row := toProductRow(p)
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Product{}, err
	}
	return fromProductRow(row), nil
}

func (c *Client) UpdateProduct(ctx context.Context, p model.Product) error {
	row := toProductRow(p)
	return c.db.WithContext(ctx).Save(&row).Error
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(&productRow{}).Error
}
