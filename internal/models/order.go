package models

import "time"

// OrderStatus follows the PENDING -> PREPARING -> DELIVERED workflow, with
// CANCELLED as the alternative exit from PENDING. The client never checks
// transition legality; it reflects whatever the backend returns.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPreparing OrderStatus = "PREPARING"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderUser is the slimmed-down user info embedded in an order.
type OrderUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	User      *OrderUser  `json:"user,omitempty"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items,omitempty"`
}

// OrderItem is a snapshot taken at order-creation time. Price is the
// historical unit price, decoupled from the live product price.
type OrderItem struct {
	ID          int     `json:"id,omitempty"`
	OrderID     int     `json:"order_id,omitempty"`
	ProductID   int     `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name,omitempty"`
}

type CreateOrderItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CreateOrderRequest carries only product ids and quantities; pricing and
// the total are computed and owned by the backend.
type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// OrderFilters narrows an order listing. Zero-valued fields impose no
// constraint. Dates are YYYY-MM-DD strings, matching the query params.
type OrderFilters struct {
	Status    OrderStatus
	StartDate string
	EndDate   string
}

// OrderStats is the admin dashboard summary, computed client-side over an
// already-fetched order collection.
type OrderStats struct {
	TotalOrders   int     `json:"totalOrders"`
	PendingOrders int     `json:"pendingOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TodayOrders   int     `json:"todayOrders"`
	TodayRevenue  float64 `json:"todayRevenue"`
}
