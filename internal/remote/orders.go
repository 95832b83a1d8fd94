package remote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/internal/workflow"
)

// LoadOrders performs the three-way join in application logic: orders, their
// line items and the service catalog are fetched as separate reads and merged
// here, because the line-item table does not always carry the eventual
// workflow linkage. Missing workflow ids are reconciled against the catalog.
func (c *Client) LoadOrders(ctx context.Context) ([]model.Order, error) {
	var orderRows []orderRow
	if err := c.db.WithContext(ctx).Order("created_at DESC").Limit(c.orderCap).Find(&orderRows).Error; err != nil {
		return nil, err
	}
	if len(orderRows) == 0 {
		return []model.Order{}, nil
	}

	ids := make([]string, len(orderRows))
	for i, r := range orderRows {
		ids[i] = r.ID
	}
	var itemRows []orderItemRow
	if err := c.db.WithContext(ctx).Where("order_id IN ?", ids).Find(&itemRows).Error; err != nil {
		return nil, err
	}

	services, err := c.LoadServices(ctx)
	if err != nil {
		return nil, err
	}
	catalog := workflow.NewCatalog(services)

	byOrder := make(map[string][]model.OrderItem, len(orderRows))
	for _, r := range itemRows {
		it := fromItemRow(r)
		it.WorkflowID = catalog.ResolveWorkflowID(it)
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	out := make([]model.Order, len(orderRows))
	for i, r := range orderRows {
		o := fromOrderRow(r)
		o.Items = byOrder[r.ID]
		out[i] = o
	}
	return out, nil
}

// AddOrder writes the order and its items in one transaction and returns the
// order with assigned ids.
func (c *Client) AddOrder(ctx context.Context, o model.Order) (model.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := toOrderRow(o)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, it := range o.Items {
			itemRow := toItemRow(it)
			if err := tx.Create(&itemRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// UpdateOrder rewrites the order row and replaces its item set.
func (c *Client) UpdateOrder(ctx context.Context, o model.Order) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := toOrderRow(o)
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", o.ID).Delete(&orderItemRow{}).Error; err != nil {
			return err
		}
		for i := range o.Items {
			if o.Items[i].ID == "" {
				o.Items[i].ID = uuid.NewString()
			}
			o.Items[i].OrderID = o.ID
			itemRow := toItemRow(o.Items[i])
			if err := tx.Create(&itemRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteOrder removes the order and the items it owns.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&orderItemRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&orderRow{}).Error
	})
}

// UpdateOrderItem persists one line item, including its history and log
// documents.
func (c *Client) UpdateOrderItem(ctx context.Context, it model.OrderItem) error {
	row := toItemRow(it)
	return c.db.WithContext(ctx).Save(&row).Error
}

// UpdateOrderStatus writes only the status column; used by the authoritative
// recompute after an item mutation confirms.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	row := toOrderRow(model.Order{Status: status})
	return c.db.WithContext(ctx).Model(&orderRow{}).Where("id = ?", id).
		Update("status", row.Status).Error
}

// LoadOrderItems re-reads the remote-confirmed items of one order.
func (c *Client) LoadOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var rows []orderItemRow
	if err := c.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.OrderItem, len(rows))
	for i, r := range rows {
		out[i] = fromItemRow(r)
	}
	return out, nil
}
