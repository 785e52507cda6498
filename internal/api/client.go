// Package api is the typed REST client for the ordering backend. It does
// no retries and no client-side validation; failures are surfaced to the
// caller as *api.Error (backend rejections) or wrapped transport errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/adr1ann32323/restorApp/internal/models"
)

// Error is a non-2xx backend response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the bearer token attached to subsequent requests. An empty
// token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// errorBody is the JSON shape handlers use for failures.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
		}
	}
	return nil
}

// --- AUTH ---

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- PRODUCTS ---

// ListProducts fetches the menu. With activeOnly the backend filters out
// deactivated products (the USER view); admins list everything.
func (c *Client) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	var query url.Values
	if activeOnly {
		query = url.Values{"is_active": {"true"}}
	}
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+strconv.Itoa(id), nil, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeactivateProduct is the DELETE endpoint; the backend soft-deletes by
// clearing is_active and returns the updated product.
func (c *Client) DeactivateProduct(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodDelete, "/products/"+strconv.Itoa(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// --- ORDERS ---

func (c *Client) ListOrders(ctx context.Context, filters *models.OrderFilters) ([]models.Order, error) {
	query := url.Values{}
	if filters != nil {
		if filters.Status != "" {
			query.Set("status", string(filters.Status))
		}
		if filters.StartDate != "" {
			query.Set("startDate", filters.StartDate)
		}
		if filters.EndDate != "" {
			query.Set("endDate", filters.EndDate)
		}
	}
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+strconv.Itoa(id), nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	var o models.Order
	req := models.UpdateOrderStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, "/orders/"+strconv.Itoa(id)+"/status", nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) CancelOrder(ctx context.Context, id int) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+strconv.Itoa(id)+"/cancel", nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
