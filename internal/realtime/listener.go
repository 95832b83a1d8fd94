// Package realtime keeps the store eventually consistent with out-of-band
// writes: one redis pub/sub subscription per remote table, each notification
// feeding a debounced reload of the affected collection. Everything here is
// best-effort; when a subscription cannot be established or drops, the
// console keeps working on manual reloads.
package realtime

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dungvu242k3/XoXo-sub001/internal/debounce"
	"github.com/dungvu242k3/XoXo-sub001/internal/store"
	"github.com/dungvu242k3/XoXo-sub001/pkg/logger"
)

// Reloader is the slice of the store the listener needs.
type Reloader interface {
	Reload(ctx context.Context, entity string) error
}

// channel table → store entity. Item-level writes reload the owning order
// collection.
var tableEntity = map[string]string{
	"orders":          store.EntityOrders,
	"order_items":     store.EntityOrders,
	"customers":       store.EntityCustomers,
	"inventory_items": store.EntityInventory,
	"members":         store.EntityMembers,
	"products":        store.EntityProducts,
	"workflows":       store.EntityWorkflows,
	"services":        store.EntityServices,
}

const channelPrefix = "rt:"

type Listener struct {
	rdb   *redis.Client
	store Reloader
	deb   *debounce.Debouncer
	delay time.Duration

	cancel context.CancelFunc
}

// New builds a listener. delay postpones subscriptions past bootstrap
// traffic; window coalesces notification bursts into a single reload.
func New(rdb *redis.Client, st Reloader, delay, window time.Duration) *Listener {
	return &Listener{rdb: rdb, store: st, deb: debounce.New(window), delay: delay}
}

// Start arms the subscriptions after the configured delay and returns
// immediately. Call only after the bootstrap load has completed.
func (l *Listener) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.delay):
		}
		for table, entity := range tableEntity {
			go l.listen(ctx, table, entity)
		}
	}()
}

func (l *Listener) listen(ctx context.Context, table, entity string) {
	sub := l.rdb.Subscribe(ctx, channelPrefix+table)
	if _, err := sub.Receive(ctx); err != nil {
		logger.Warn("realtime subscription failed, falling back to manual reloads",
			zap.String("table", table), zap.Error(err))
		_ = sub.Close()
		return
	}
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				logger.Warn("realtime subscription dropped",
					zap.String("table", table))
				return
			}
			l.deb.Trigger(entity, func() { l.reload(entity) })
		}
	}
}

func (l *Listener) reload(entity string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := l.store.Reload(ctx, entity); err != nil {
		logger.Warn("realtime reload failed", zap.String("entity", entity), zap.Error(err))
		return
	}
	logger.Debug("realtime reload applied", zap.String("entity", entity))
}

// Stop tears down subscriptions and pending reload timers.
func (l *Listener) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
	l.deb.Stop()
}
