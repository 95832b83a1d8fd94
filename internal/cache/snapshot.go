// Package cache keeps the last-known state of every collection in redis so
// the console can render instantly on startup, before the authoritative
// bootstrap load returns. It is a best-effort layer: every failure here is
// logged and swallowed.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dungvu242k3/XoXo-sub001/internal/debounce"
	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/pkg/logger"
)

const (
	keyOrders    = "snapshot:orders"
	keyCustomers = "snapshot:customers"
	keyInventory = "snapshot:inventory"
	keyMembers   = "snapshot:members"
	keyProducts  = "snapshot:products"
	keyWorkflows = "snapshot:workflows"
	keyServices  = "snapshot:services"
)

type Snapshot struct {
	rdb      *redis.Client
	orderCap int
	deb      *debounce.Debouncer
}

// New builds a snapshot store. window coalesces Schedule bursts into one
// write; orderCap bounds how many recent orders a snapshot keeps.
func New(rdb *redis.Client, orderCap int, window time.Duration) *Snapshot {
	if orderCap <= 0 {
		orderCap = 100
	}
	return &Snapshot{rdb: rdb, orderCap: orderCap, deb: debounce.New(window)}
}

// Hydrate reads whatever the last persist left behind. Missing or corrupt
// keys simply yield empty collections.
func (s *Snapshot) Hydrate(ctx context.Context) model.Collections {
	var cols model.Collections
	readInto(ctx, s.rdb, keyOrders, &cols.Orders)
	readInto(ctx, s.rdb, keyCustomers, &cols.Customers)
	readInto(ctx, s.rdb, keyInventory, &cols.Inventory)
	readInto(ctx, s.rdb, keyMembers, &cols.Members)
	readInto(ctx, s.rdb, keyProducts, &cols.Products)
	readInto(ctx, s.rdb, keyWorkflows, &cols.Workflows)
	readInto(ctx, s.rdb, keyServices, &cols.Services)
	return cols
}

func readInto(ctx context.Context, rdb *redis.Client, key string, out any) {
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("snapshot read failed", zap.String("key", key), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("snapshot decode failed", zap.String("key", key), zap.Error(err))
	}
}

// Schedule queues a debounced persist. snapshot is evaluated when the window
// fires, so a burst of mutations produces one write of the final state.
func (s *Snapshot) Schedule(snapshot func() model.Collections) {
	s.deb.Trigger("snapshot", func() {
		s.persist(context.Background(), snapshot())
	})
}

// PersistNow bypasses the debounce window; used at shutdown.
func (s *Snapshot) PersistNow(ctx context.Context, cols model.Collections) {
	s.persist(ctx, cols)
}

func (s *Snapshot) persist(ctx context.Context, cols model.Collections) {
	orders := cols.Orders
	if len(orders) > s.orderCap {
		orders = orders[:s.orderCap]
	}

	pipe := s.rdb.Pipeline()
	writeKey(ctx, pipe, keyOrders, orders)
	writeKey(ctx, pipe, keyCustomers, cols.Customers)
	writeKey(ctx, pipe, keyInventory, cols.Inventory)
	writeKey(ctx, pipe, keyMembers, cols.Members)
	writeKey(ctx, pipe, keyProducts, cols.Products)
	writeKey(ctx, pipe, keyWorkflows, cols.Workflows)
	writeKey(ctx, pipe, keyServices, cols.Services)
	if _, err := pipe.Exec(ctx); err != nil {
		// non-fatal: the remote store is the durable truth
		logger.Warn("snapshot persist failed", zap.Error(err))
	}
}

func writeKey(ctx context.Context, pipe redis.Pipeliner, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.Warn("snapshot encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	pipe.Set(ctx, key, payload, 0)
}

// Stop cancels any pending debounced persist.
func (s *Snapshot) Stop() { s.deb.Stop() }
