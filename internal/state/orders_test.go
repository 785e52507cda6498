package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/adr1ann32323/restorApp/internal/api"
	"github.com/adr1ann32323/restorApp/internal/models"
)

// orderBackend holds a small in-memory order list behind the REST surface
// the manager talks to.
type orderBackend struct {
	t      *testing.T
	orders []models.Order
	// query values of the last list request
	lastQuery map[string]string
}

func newOrderBackend(t *testing.T, orders ...models.Order) (*orderBackend, *Orders) {
	t.Helper()
	b := &orderBackend{t: t, orders: orders}

	r := mux.NewRouter()
	r.HandleFunc("/orders", b.list).Methods(http.MethodGet)
	r.HandleFunc("/orders", b.create).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id:[0-9]+}", b.get).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id:[0-9]+}/status", b.setStatus(false)).Methods(http.MethodPut)
	r.HandleFunc("/orders/{id:[0-9]+}/cancel", b.setStatus(true)).Methods(http.MethodPut)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return b, NewOrders(api.NewClient(srv.URL))
}

func (b *orderBackend) list(w http.ResponseWriter, r *http.Request) {
	b.lastQuery = map[string]string{}
	for k, v := range r.URL.Query() {
		b.lastQuery[k] = v[0]
	}
	json.NewEncoder(w).Encode(b.orders)
}

func (b *orderBackend) find(r *http.Request) *models.Order {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	require.NoError(b.t, err)
	for i := range b.orders {
		if b.orders[i].ID == id {
			return &b.orders[i]
		}
	}
	return nil
}

func (b *orderBackend) get(w http.ResponseWriter, r *http.Request) {
	order := b.find(r)
	if order == nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "order not found"})
		return
	}
	json.NewEncoder(w).Encode(order)
}

func (b *orderBackend) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&req))
	order := models.Order{ID: len(b.orders) + 1, Status: models.StatusPending, CreatedAt: time.Now()}
	b.orders = append(b.orders, order)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (b *orderBackend) setStatus(cancel bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order := b.find(r)
		if order == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "order not found"})
			return
		}
		if cancel {
			order.Status = models.StatusCancelled
		} else {
			var req models.UpdateOrderStatusRequest
			require.NoError(b.t, json.NewDecoder(r.Body).Decode(&req))
			order.Status = req.Status
		}
		json.NewEncoder(w).Encode(order)
	}
}

func TestListPublishesCollection(t *testing.T) {
	_, orders := newOrderBackend(t,
		models.Order{ID: 1, Status: models.StatusPending},
		models.Order{ID: 2, Status: models.StatusDelivered},
	)

	var published [][]models.Order
	orders.Subscribe(func(v []models.Order) { published = append(published, v) })

	got, err := orders.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Len(t, published, 1)
	require.Equal(t, got, orders.Current())
}

func TestListPassesFilters(t *testing.T) {
	backend, orders := newOrderBackend(t)

	_, err := orders.List(context.Background(), &models.OrderFilters{
		Status:    models.StatusDelivered,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-28",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"status":    "DELIVERED",
		"startDate": "2026-08-01",
		"endDate":   "2026-08-28",
	}, backend.lastQuery)
}

func TestListFailureKeepsCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))
	t.Cleanup(srv.Close)

	orders := NewOrders(api.NewClient(srv.URL))

	_, err := orders.List(context.Background(), nil)
	require.Error(t, err)
	require.Nil(t, orders.Current())
}

func TestGetPublishesSelected(t *testing.T) {
	_, orders := newOrderBackend(t, models.Order{ID: 5, Status: models.StatusPreparing})

	order, err := orders.Get(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 5, order.ID)
	require.Equal(t, order, orders.Selected())
}

func TestUpdateStatusReplacesCachedOrder(t *testing.T) {
	_, orders := newOrderBackend(t,
		models.Order{ID: 1, Status: models.StatusPending},
		models.Order{ID: 2, Status: models.StatusPending},
	)

	_, err := orders.List(context.Background(), nil)
	require.NoError(t, err)

	updated, err := orders.UpdateStatus(context.Background(), 1, models.StatusPreparing)
	require.NoError(t, err)
	require.Equal(t, models.StatusPreparing, updated.Status)

	// The cached collection is patched in place; the other order is untouched.
	current := orders.Current()
	require.Len(t, current, 2)
	require.Equal(t, models.StatusPreparing, current[0].Status)
	require.Equal(t, models.StatusPending, current[1].Status)
	require.Equal(t, updated, orders.Selected())
}

func TestCancelReplacesCachedOrder(t *testing.T) {
	_, orders := newOrderBackend(t, models.Order{ID: 3, Status: models.StatusPending})

	_, err := orders.List(context.Background(), nil)
	require.NoError(t, err)

	cancelled, err := orders.Cancel(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, cancelled.Status)
	require.Equal(t, models.StatusCancelled, orders.Current()[0].Status)
}

func TestSelectAndClear(t *testing.T) {
	_, orders := newOrderBackend(t)

	var published []*models.Order
	orders.SubscribeSelected(func(o *models.Order) { published = append(published, o) })

	order := &models.Order{ID: 9}
	orders.Select(order)
	require.Equal(t, order, orders.Selected())

	orders.ClearSelected()
	require.Nil(t, orders.Selected())
	require.Equal(t, []*models.Order{order, nil}, published)
}

func TestComputeStats(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	stats := ComputeStats([]models.Order{
		{ID: 1, Status: models.StatusDelivered, Total: 50, CreatedAt: now},
		{ID: 2, Status: models.StatusPending, Total: 30, CreatedAt: yesterday},
	})

	require.Equal(t, models.OrderStats{
		TotalOrders:   2,
		PendingOrders: 1,
		TotalRevenue:  50,
		TodayOrders:   1,
		TodayRevenue:  50,
	}, stats)
}

func TestComputeStatsRevenueIsDeliveredOnly(t *testing.T) {
	now := time.Now()

	stats := ComputeStats([]models.Order{
		{Status: models.StatusDelivered, Total: 20, CreatedAt: now},
		{Status: models.StatusDelivered, Total: 15, CreatedAt: now.AddDate(0, 0, -3)},
		{Status: models.StatusCancelled, Total: 99, CreatedAt: now},
		{Status: models.StatusPreparing, Total: 42, CreatedAt: now},
	})

	require.InDelta(t, 35.0, stats.TotalRevenue, 1e-9)
	require.InDelta(t, 20.0, stats.TodayRevenue, 1e-9)
	require.Equal(t, 0, stats.PendingOrders)
	require.Equal(t, 3, stats.TodayOrders)
}

func TestComputeStatsEmpty(t *testing.T) {
	require.Equal(t, models.OrderStats{}, ComputeStats(nil))
}
