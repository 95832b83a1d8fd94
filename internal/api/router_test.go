package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/internal/store"
	"github.com/dungvu242k3/XoXo-sub001/pkg/response"
)

// stubRemote serves fixed collections and accepts every mutation.
type stubRemote struct {
	cols model.Collections
}

func (s *stubRemote) LoadAll(ctx context.Context) model.Collections { return s.cols }

func (s *stubRemote) LoadOrders(ctx context.Context) ([]model.Order, error) {
	return s.cols.Orders, nil
}

func (s *stubRemote) LoadCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.cols.Customers, nil
}

func (s *stubRemote) LoadInventory(ctx context.Context) ([]model.InventoryItem, error) {
	return s.cols.Inventory, nil
}

func (s *stubRemote) LoadMembers(ctx context.Context) ([]model.Member, error) {
	return s.cols.Members, nil
}

func (s *stubRemote) LoadProducts(ctx context.Context) ([]model.Product, error) {
	return s.cols.Products, nil
}

func (s *stubRemote) LoadWorkflows(ctx context.Context) ([]model.WorkflowDefinition, error) {
	return s.cols.Workflows, nil
}

func (s *stubRemote) LoadServices(ctx context.Context) ([]model.ServiceDefinition, error) {
	return s.cols.Services, nil
}

func (s *stubRemote) AddOrder(ctx context.Context, o model.Order) (model.Order, error) {
	o.ID = "srv-order"
	for i := range o.Items {
		o.Items[i].ID = "srv-item"
		o.Items[i].OrderID = o.ID
	}
	return o, nil
}

func (s *stubRemote) UpdateOrder(ctx context.Context, o model.Order) error { return nil }
func (s *stubRemote) DeleteOrder(ctx context.Context, id string) error { return nil }

func (s *stubRemote) UpdateOrderItem(ctx context.Context, it model.OrderItem) error { return nil }

func (s *stubRemote) UpdateOrderStatus(ctx context.Context, id string, st model.OrderStatus) error {
	return nil
}

func (s *stubRemote) LoadOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	for _, o := range s.cols.Orders {
		if o.ID == orderID {
			return o.Items, nil
		}
	}
	return nil, nil
}

func (s *stubRemote) AddCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	c.ID = "srv-customer"
	return c, nil
}

func (s *stubRemote) UpdateCustomer(ctx context.Context, c model.Customer) error { return nil }
func (s *stubRemote) DeleteCustomer(ctx context.Context, id string) error { return nil }

func (s *stubRemote) AddInventoryItem(ctx context.Context, it model.InventoryItem) (model.InventoryItem, error) {
	it.ID = "srv-inventory"
	return it, nil
}

func (s *stubRemote) UpdateInventoryItem(ctx context.Context, it model.InventoryItem) error {
	return nil
}

func (s *stubRemote) DeleteInventoryItem(ctx context.Context, id string) error { return nil }

func (s *stubRemote) AddMember(ctx context.Context, m model.Member) (model.Member, error) {
	m.ID = "srv-member"
	return m, nil
}

func (s *stubRemote) UpdateMember(ctx context.Context, m model.Member) error { return nil }
func (s *stubRemote) DeleteMember(ctx context.Context, id string) error { return nil }

func (s *stubRemote) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = "srv-product"
	return p, nil
}

func (s *stubRemote) UpdateProduct(ctx context.Context, p model.Product) error { return nil }
func (s *stubRemote) DeleteProduct(ctx context.Context, id string) error { return nil }

func newTestRouter(t *testing.T, cols model.Collections) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.New(&stubRemote{cols: cols}, nil)
	st.Bootstrap(context.Background())
	return NewRouter(st)
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListOrders(t *testing.T) {
	r := newTestRouter(t, model.Collections{
		Orders: []model.Order{{ID: "ord-1", Status: model.OrderPending}},
	})

	w := do(r, http.MethodGet, "/api/v1/orders", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, 0, resp.Code)
	orders, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, orders, 1)
}

func TestCreateOrder(t *testing.T) {
	r := newTestRouter(t, model.Collections{})

	w := do(r, http.MethodPost, "/api/v1/orders",
		`{"customer_name":"Ngọc Anh","items":[{"name":"Túi da","quantity":1}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	created, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "srv-order", created["id"])

	list := do(r, http.MethodGet, "/api/v1/orders", "")
	listResp := decode(t, list)
	assert.Len(t, listResp.Data, 1)
}

func TestCreateOrderRejectsBadJSON(t *testing.T) {
	r := newTestRouter(t, model.Collections{})
	w := do(r, http.MethodPost, "/api/v1/orders", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdvanceItemValidation(t *testing.T) {
	r := newTestRouter(t, model.Collections{
		Orders: []model.Order{{ID: "ord-1", Status: model.OrderPending,
			Items: []model.OrderItem{{ID: "it-1", OrderID: "ord-1", Status: "in-queue"}}}},
	})

	// stage and performed_by are required
	w := do(r, http.MethodPost, "/api/v1/orders/ord-1/items/it-1/advance", `{"note":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/orders/ord-1/items/missing/advance",
		`{"stage":"soak","performed_by":"alice"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/v1/orders/ord-1/items/it-1/advance",
		`{"stage":"soak","performed_by":"alice"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddCustomer(t *testing.T) {
	r := newTestRouter(t, model.Collections{})

	w := do(r, http.MethodPost, "/api/v1/customers", `{"name":"Ngọc Anh","tier":"VIP"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	added, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "srv-customer", added["id"])
}

func TestReloadUnknownEntity(t *testing.T) {
	r := newTestRouter(t, model.Collections{})
	w := do(r, http.MethodPost, "/api/v1/reload/bogus", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReloadKnownEntity(t *testing.T) {
	r := newTestRouter(t, model.Collections{})
	w := do(r, http.MethodPost, "/api/v1/reload/customers", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
