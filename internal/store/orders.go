package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/internal/workflow"
	"github.com/dungvu242k3/XoXo-sub001/pkg/logger"
)

// Items that never went through a stage yet sit in the queue.
const stageInQueue = "in-queue"

// CreateOrder applies the order optimistically at the head of the collection,
// resolves missing workflow links against the service catalog (and persists
// them onto the items so future loads need no re-resolution), consumes the
// resolved workflows' material requirements from inventory and bumps the
// customer's running total. The remote insert assigns the durable id.
func (s *Store) CreateOrder(ctx context.Context, o model.Order) (model.Order, error) {
	placeholder := "local-" + uuid.NewString()
	o.ID = placeholder
	if o.Status == "" {
		o.Status = model.OrderPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	s.mu.Lock()
	catalog := workflow.NewCatalog(s.cols.Services)
	workflows := indexWorkflows(s.cols.Workflows)
	for i := range o.Items {
		o.Items[i].WorkflowID = catalog.ResolveWorkflowID(o.Items[i])
		if o.Items[i].Status == "" {
			o.Items[i].Status = stageInQueue
		}
	}
	deductions := materialDeductions(o.Items, workflows)
	s.mu.Unlock()

	var confirmed model.Order
	err := s.mutate(ctx,
		func() func() {
			s.cols.Orders = insertAt(s.cols.Orders, o, 0)
			restoreInv := s.applyDeductions(deductions)
			restoreCust := s.addCustomerSpend(o.CustomerID, o.TotalAmount)
			return func() {
				s.cols.Orders = removeOrder(s.cols.Orders, placeholder)
				restoreInv()
				restoreCust()
			}
		},
		func(ctx context.Context) error {
			record := o
			record.ID = ""
			for i := range record.Items {
				record.Items[i].ID = ""
			}
			added, err := s.remote.AddOrder(ctx, record)
			if err != nil {
				return err
			}
			confirmed = added
			s.mu.Lock()
			for i := range s.cols.Orders {
				if s.cols.Orders[i].ID == placeholder {
					s.cols.Orders[i] = added
				}
			}
			s.mu.Unlock()
			return nil
		},
	)
	if err != nil {
		return model.Order{}, err
	}

	// Secondary writes ride behind the confirmed insert; a failure here
	// leaves the optimistic local state standing and is only logged.
	s.syncDeductions(ctx, deductions)
	s.syncCustomerSpend(ctx, o.CustomerID)
	s.persistSoon()
	return confirmed, nil
}

func (s *Store) UpdateOrder(ctx context.Context, o model.Order) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findOrder(s.cols.Orders, o.ID)
			if idx < 0 {
				return func() {}
			}
			s.cols.Orders[idx] = o
			return func() {
				if _, i := findOrder(s.cols.Orders, o.ID); i >= 0 {
					s.cols.Orders[i] = prev
				}
			}
		},
		func(ctx context.Context) error { return s.remote.UpdateOrder(ctx, o) },
	)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findOrder(s.cols.Orders, id)
			if idx < 0 {
				return func() {}
			}
			s.cols.Orders = removeOrder(s.cols.Orders, id)
			return func() { s.cols.Orders = insertAt(s.cols.Orders, prev, idx) }
		},
		func(ctx context.Context) error { return s.remote.DeleteOrder(ctx, id) },
	)
}

// SetOrderStatus is the direct-user-action path for statuses the derivation
// never produces (Confirmed, Delivered, Cancelled).
func (s *Store) SetOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return s.mutate(ctx,
		func() func() {
			_, idx := findOrder(s.cols.Orders, id)
			if idx < 0 {
				return func() {}
			}
			prev := s.cols.Orders[idx].Status
			s.cols.Orders[idx].Status = status
			return func() {
				if _, i := findOrder(s.cols.Orders, id); i >= 0 {
					s.cols.Orders[i].Status = prev
				}
			}
		},
		func(ctx context.Context) error { return s.remote.UpdateOrderStatus(ctx, id, status) },
	)
}

// AdvanceItem moves one line item to a new workflow stage: the open history
// entry is closed, a new one opened, an optional technical note appended, and
// the owning order's status re-derived. After the remote confirms the item
// write, the order status is derived a second time from the remote-confirmed
// state of all the order's items; the optimistic local guess can race with
// other concurrently-changing items, the post-confirmation derivation is
// authoritative.
func (s *Store) AdvanceItem(ctx context.Context, orderID, itemID, newStage, performedBy, note string) error {
	now := time.Now()

	var (
		advanced    model.OrderItem
		localStatus model.OrderStatus
		prevStatus  model.OrderStatus
	)
	err := s.mutate(ctx,
		func() func() {
			_, oi := findOrder(s.cols.Orders, orderID)
			if oi < 0 {
				return func() {}
			}
			order := &s.cols.Orders[oi]
			ii := -1
			for i := range order.Items {
				if order.Items[i].ID == itemID {
					ii = i
					break
				}
			}
			if ii < 0 {
				return func() {}
			}
			prevItem := order.Items[ii]
			prevStatus = order.Status

			def := lookupWorkflow(s.cols.Workflows, prevItem.WorkflowID)
			advanced = workflow.Advance(prevItem, def, newStage, performedBy, note, now)
			order.Items[ii] = advanced
			localStatus = workflow.DeriveOrderStatus(order.Status, order.Items)
			order.Status = localStatus

			return func() {
				if _, i := findOrder(s.cols.Orders, orderID); i >= 0 {
					o := &s.cols.Orders[i]
					for j := range o.Items {
						if o.Items[j].ID == itemID {
							o.Items[j] = prevItem
						}
					}
					o.Status = prevStatus
				}
			}
		},
		func(ctx context.Context) error {
			if advanced.ID == "" {
				return fmt.Errorf("%w: order %s item %s", ErrNotFound, orderID, itemID)
			}
			return s.remote.UpdateOrderItem(ctx, advanced)
		},
	)
	if err != nil {
		return err
	}

	s.confirmOrderStatus(ctx, orderID, localStatus, prevStatus)
	s.persistSoon()
	return nil
}

// confirmOrderStatus re-derives the order status from the remote-confirmed
// items, corrects the stored status when the optimistic guess differed, and
// persists the derivation whenever the remote row still carries the
// pre-advance status. Without the remote write a derived Done/Processing
// would be reverted by the next authoritative load.
func (s *Store) confirmOrderStatus(ctx context.Context, orderID string, guessed, previous model.OrderStatus) {
	confirmed := guessed
	items, err := s.remote.LoadOrderItems(ctx, orderID)
	if err != nil {
		logger.Warn("post-confirmation item read failed, keeping optimistic status",
			zap.String("order", orderID), zap.Error(err))
	} else {
		confirmed = workflow.DeriveOrderStatus(guessed, items)
	}
	if confirmed != guessed {
		s.mu.Lock()
		if _, i := findOrder(s.cols.Orders, orderID); i >= 0 {
			s.cols.Orders[i].Status = confirmed
		}
		s.mu.Unlock()
	}
	if confirmed == previous {
		return
	}
	if err := s.remote.UpdateOrderStatus(ctx, orderID, confirmed); err != nil {
		logConfirmDrift("order status", err)
	}
}

type deduction struct {
	inventoryID string
	quantity    float64
}

// materialDeductions expands each non-product item's resolved workflow
// material list into per-inventory-item quantities (per unit of work times
// item quantity).
func materialDeductions(items []model.OrderItem, workflows map[string]model.WorkflowDefinition) []deduction {
	var out []deduction
	for _, it := range items {
		if it.IsProduct || it.WorkflowID == "" {
			continue
		}
		def, ok := workflows[it.WorkflowID]
		if !ok {
			continue
		}
		for _, mat := range def.Materials {
			out = append(out, deduction{
				inventoryID: mat.InventoryItemID,
				quantity:    mat.QuantityPerUnit * float64(it.Quantity),
			})
		}
	}
	return out
}

// applyDeductions mutates inventory in place; caller holds the lock.
func (s *Store) applyDeductions(deductions []deduction) func() {
	prev := make(map[string]float64, len(deductions))
	for _, d := range deductions {
		if _, i := findInventory(s.cols.Inventory, d.inventoryID); i >= 0 {
			if _, seen := prev[d.inventoryID]; !seen {
				prev[d.inventoryID] = s.cols.Inventory[i].Quantity
			}
			s.cols.Inventory[i].Quantity -= d.quantity
		}
	}
	return func() {
		for id, q := range prev {
			if _, i := findInventory(s.cols.Inventory, id); i >= 0 {
				s.cols.Inventory[i].Quantity = q
			}
		}
	}
}

func (s *Store) syncDeductions(ctx context.Context, deductions []deduction) {
	seen := map[string]bool{}
	for _, d := range deductions {
		if seen[d.inventoryID] {
			continue
		}
		seen[d.inventoryID] = true
		s.mu.Lock()
		item, i := findInventory(s.cols.Inventory, d.inventoryID)
		s.mu.Unlock()
		if i < 0 {
			continue
		}
		if err := s.remote.UpdateInventoryItem(ctx, item); err != nil {
			logConfirmDrift("inventory consumption", err)
		}
	}
}

// addCustomerSpend mutates the customer's running total; caller holds the
// lock.
func (s *Store) addCustomerSpend(customerID string, amount float64) func() {
	_, i := findCustomer(s.cols.Customers, customerID)
	if i < 0 || amount == 0 {
		return func() {}
	}
	prev := s.cols.Customers[i].TotalSpent
	s.cols.Customers[i].TotalSpent = prev + amount
	return func() {
		if _, j := findCustomer(s.cols.Customers, customerID); j >= 0 {
			s.cols.Customers[j].TotalSpent = prev
		}
	}
}

func (s *Store) syncCustomerSpend(ctx context.Context, customerID string) {
	s.mu.Lock()
	c, i := findCustomer(s.cols.Customers, customerID)
	s.mu.Unlock()
	if i < 0 {
		return
	}
	if err := s.remote.UpdateCustomer(ctx, c); err != nil {
		logConfirmDrift("customer total", err)
	}
}

func findOrder(list []model.Order, id string) (model.Order, int) {
	return findByID(list, id, func(o model.Order) string { return o.ID })
}

func removeOrder(list []model.Order, id string) []model.Order {
	return removeByID(list, id, func(o model.Order) string { return o.ID })
}

func indexWorkflows(list []model.WorkflowDefinition) map[string]model.WorkflowDefinition {
	out := make(map[string]model.WorkflowDefinition, len(list))
	for _, w := range list {
		out[w.ID] = w
	}
	return out
}

func lookupWorkflow(list []model.WorkflowDefinition, id string) *model.WorkflowDefinition {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
