package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestPersistHydrateRoundTrip(t *testing.T) {
	_, rdb := newTestRedis(t)
	snap := New(rdb, 100, time.Second)
	defer snap.Stop()
	ctx := context.Background()

	cols := model.Collections{
		Orders:    []model.Order{{ID: "ord-1", Status: model.OrderProcessing, CustomerName: "Ngọc Anh"}},
		Customers: []model.Customer{{ID: "cus-1", Name: "Ngọc Anh", Tier: model.TierVIP}},
		Inventory: []model.InventoryItem{{ID: "inv-1", Name: "Keo dán", Quantity: 3.5}},
		Workflows: []model.WorkflowDefinition{{ID: "wf-1", Label: "Cleaning"}},
		Services:  []model.ServiceDefinition{{ID: "svc-1", Name: "Deep Clean", WorkflowIDs: []string{"wf-1"}}},
	}
	snap.PersistNow(ctx, cols)

	got := snap.Hydrate(ctx)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, model.OrderProcessing, got.Orders[0].Status)
	require.Len(t, got.Customers, 1)
	assert.Equal(t, model.TierVIP, got.Customers[0].Tier)
	require.Len(t, got.Inventory, 1)
	assert.Equal(t, 3.5, got.Inventory[0].Quantity)
	require.Len(t, got.Services, 1)
	assert.Equal(t, []string{"wf-1"}, got.Services[0].WorkflowIDs)
	assert.Empty(t, got.Members)
}

func TestPersistCapsOrders(t *testing.T) {
	_, rdb := newTestRedis(t)
	snap := New(rdb, 3, time.Second)
	defer snap.Stop()
	ctx := context.Background()

	var orders []model.Order
	for i := 0; i < 10; i++ {
		orders = append(orders, model.Order{ID: fmt.Sprintf("ord-%d", i)})
	}
	snap.PersistNow(ctx, model.Collections{Orders: orders})

	got := snap.Hydrate(ctx)
	require.Len(t, got.Orders, 3)
	// head of the list survives: orders are kept newest-first upstream
	assert.Equal(t, "ord-0", got.Orders[0].ID)
	assert.Equal(t, "ord-2", got.Orders[2].ID)
}

func TestScheduleCoalescesBursts(t *testing.T) {
	_, rdb := newTestRedis(t)
	snap := New(rdb, 100, 30*time.Millisecond)
	defer snap.Stop()
	ctx := context.Background()

	calls := 0
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("cus-%d", i)
		snap.Schedule(func() model.Collections {
			calls++
			return model.Collections{Customers: []model.Customer{{ID: id}}}
		})
	}

	assert.Eventually(t, func() bool {
		return len(snap.Hydrate(ctx).Customers) == 1
	}, time.Second, 5*time.Millisecond)

	// only the last scheduled snapshot ran, with the final state
	assert.Equal(t, 1, calls)
	assert.Equal(t, "cus-4", snap.Hydrate(ctx).Customers[0].ID)
}

func TestHydrateSurvivesMissingAndCorruptKeys(t *testing.T) {
	mr, rdb := newTestRedis(t)
	snap := New(rdb, 100, time.Second)
	defer snap.Stop()
	ctx := context.Background()

	require.NoError(t, mr.Set("snapshot:orders", "{not json"))

	got := snap.Hydrate(ctx)
	assert.Empty(t, got.Orders)
	assert.Empty(t, got.Customers)
}

func TestPersistSwallowsRedisOutage(t *testing.T) {
	mr, rdb := newTestRedis(t)
	snap := New(rdb, 100, time.Second)
	defer snap.Stop()
	ctx := context.Background()

	mr.Close()
	// must not panic or error out
	snap.PersistNow(ctx, model.Collections{Customers: []model.Customer{{ID: "cus-1"}}})

	got := snap.Hydrate(ctx)
	assert.Empty(t, got.Customers)
}
