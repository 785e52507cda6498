package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/adr1ann32323/restorApp/internal/models"
)

var (
	// ErrProductUnavailable covers unknown, inactive and out-of-stock
	// products at order-creation time.
	ErrProductUnavailable = errors.New("product unavailable")
	ErrEmptyOrder         = errors.New("order has no items")
)

// CreateOrder prices the requested items from the live products table,
// snapshots those prices into order_items and decrements stock, all in one
// transaction. The computed total is owned here, never trusted from the
// client.
func (s *Store) CreateOrder(userID int, items []models.CreateOrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var total float64
	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %d: quantity must be at least 1", ErrProductUnavailable, item.ProductID)
		}

		var price float64
		var stock int
		var isActive bool
		row := tx.QueryRow(`SELECT price, stock, is_active FROM products WHERE id = ?`, item.ProductID)
		if err := row.Scan(&price, &stock, &isActive); err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("%w: product %d not found", ErrProductUnavailable, item.ProductID)
			}
			return nil, err
		}
		if !isActive {
			return nil, fmt.Errorf("%w: product %d is not active", ErrProductUnavailable, item.ProductID)
		}
		if stock < item.Quantity {
			return nil, fmt.Errorf("%w: product %d has %d in stock", ErrProductUnavailable, item.ProductID, stock)
		}

		if _, err := tx.Exec(`UPDATE products SET stock = stock - ? WHERE id = ?`, item.Quantity, item.ProductID); err != nil {
			return nil, err
		}

		total += price * float64(item.Quantity)
		lines = append(lines, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	res, err := tx.Exec(`INSERT INTO orders (user_id, status, total, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		userID, models.StatusPending, total)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		_, err := tx.Exec(`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
			int(orderID), line.ProductID, line.Quantity, line.Price)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetOrder(int(orderID))
}

// ListOrders returns orders newest first. userID of 0 means no user scoping
// (the ADMIN view). Each non-zero filter field narrows the result; dates
// are YYYY-MM-DD and compared on the calendar day.
func (s *Store) ListOrders(userID int, filters *models.OrderFilters) ([]models.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.status, o.total, o.created_at, u.id, u.name, u.email
		FROM orders o
		JOIN users u ON o.user_id = u.id
		WHERE 1 = 1
	`
	var args []any
	if userID != 0 {
		query += ` AND o.user_id = ?`
		args = append(args, userID)
	}
	if filters != nil {
		if filters.Status != "" {
			query += ` AND o.status = ?`
			args = append(args, filters.Status)
		}
		if filters.StartDate != "" {
			query += ` AND date(o.created_at) >= date(?)`
			args = append(args, filters.StartDate)
		}
		if filters.EndDate != "" {
			query += ` AND date(o.created_at) <= date(?)`
			args = append(args, filters.EndDate)
		}
	}
	query += ` ORDER BY o.created_at DESC, o.id DESC`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var u models.OrderUser
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt, &u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		o.User = &u
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetOrder returns the order with its line items, or nil, nil when absent.
func (s *Store) GetOrder(id int) (*models.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.status, o.total, o.created_at, u.id, u.name, u.email
		FROM orders o
		JOIN users u ON o.user_id = u.id
		WHERE o.id = ?
	`
	var o models.Order
	var u models.OrderUser
	err := s.DB.QueryRow(query, id).Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt, &u.ID, &u.Name, &u.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	o.User = &u

	itemQuery := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id
	`
	rows, err := s.DB.Query(itemQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

// UpdateOrderStatus sets the status and returns the updated order, or
// nil, nil when the order does not exist.
func (s *Store) UpdateOrderStatus(id int, status models.OrderStatus) (*models.Order, error) {
	res, err := s.DB.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetOrder(id)
}
