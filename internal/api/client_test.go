package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adr1ann32323/restorApp/internal/models"
)

// capture records what the last request looked like so assertions can be
// made about headers, method, path, and query.
type capture struct {
	method string
	path   string
	query  string
	auth   string
	body   []byte
}

func newCaptureServer(t *testing.T, status int, response any) (*capture, *Client) {
	t.Helper()
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.query = r.URL.RawQuery
		c.auth = r.Header.Get("Authorization")
		var err error
		c.body, err = json.Marshal(mustDecode(t, r))
		require.NoError(t, err)
		w.WriteHeader(status)
		if response != nil {
			json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(srv.Close)
	return c, NewClient(srv.URL)
}

func mustDecode(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil
	}
	return body
}

func TestBearerTokenAttachedWhenSet(t *testing.T) {
	c, client := newCaptureServer(t, http.StatusOK, []models.Product{})

	_, err := client.ListProducts(context.Background(), false)
	require.NoError(t, err)
	require.Empty(t, c.auth)

	client.SetToken("tok-123")
	_, err = client.ListProducts(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", c.auth)

	// Clearing the token removes the header again.
	client.SetToken("")
	_, err = client.ListProducts(context.Background(), false)
	require.NoError(t, err)
	require.Empty(t, c.auth)
}

func TestListProductsActiveOnlyQuery(t *testing.T) {
	c, client := newCaptureServer(t, http.StatusOK, []models.Product{})

	_, err := client.ListProducts(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, c.method)
	require.Equal(t, "/products", c.path)
	require.Equal(t, "is_active=true", c.query)
}

func TestListOrdersFilters(t *testing.T) {
	c, client := newCaptureServer(t, http.StatusOK, []models.Order{})

	_, err := client.ListOrders(context.Background(), &models.OrderFilters{
		Status:    models.StatusPending,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-28",
	})
	require.NoError(t, err)
	require.Equal(t, "endDate=2026-08-28&startDate=2026-08-01&status=PENDING", c.query)

	// Nil filters send no query at all.
	_, err = client.ListOrders(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, c.query)
}

func TestErrorResponseDecoding(t *testing.T) {
	_, client := newCaptureServer(t, http.StatusNotFound, map[string]string{"error": "product not found"})

	_, err := client.GetProduct(context.Background(), 42)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "product not found", apiErr.Message)
	require.Contains(t, apiErr.Error(), "404")
	require.Contains(t, apiErr.Error(), "product not found")
}

func TestErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL).GetProduct(context.Background(), 1)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Empty(t, apiErr.Message)
	require.Contains(t, apiErr.Error(), "502")
}

func TestCreateOrderRequestShape(t *testing.T) {
	c, client := newCaptureServer(t, http.StatusCreated, models.Order{ID: 1})

	order, err := client.CreateOrder(context.Background(), models.CreateOrderRequest{
		Items: []models.CreateOrderItem{{ProductID: 3, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, order.ID)
	require.Equal(t, http.MethodPost, c.method)
	require.Equal(t, "/orders", c.path)
	require.JSONEq(t, `{"items":[{"product_id":3,"quantity":2}]}`, string(c.body))
}

func TestOrderStatusEndpoints(t *testing.T) {
	c, client := newCaptureServer(t, http.StatusOK, models.Order{ID: 7, Status: models.StatusPreparing})

	_, err := client.UpdateOrderStatus(context.Background(), 7, models.StatusPreparing)
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, c.method)
	require.Equal(t, "/orders/7/status", c.path)
	require.JSONEq(t, `{"status":"PREPARING"}`, string(c.body))

	_, err = client.CancelOrder(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, c.method)
	require.Equal(t, "/orders/7/cancel", c.path)
}

func TestDeactivateProductUsesDelete(t *testing.T) {
	c, client := newCaptureServer(t, http.StatusOK, models.Product{ID: 4, IsActive: false})

	p, err := client.DeactivateProduct(context.Background(), 4)
	require.NoError(t, err)
	require.False(t, p.IsActive)
	require.Equal(t, http.MethodDelete, c.method)
	require.Equal(t, "/products/4", c.path)
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).ListProducts(ctx, false)
	require.ErrorIs(t, err, context.Canceled)
}
