package store

import (
	"database/sql"

	"github.com/adr1ann32323/restorApp/internal/models"
)

const productColumns = `id, name, description, price, stock, is_active, COALESCE(link_image, '') as link_image, COALESCE(category, '') as category, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.IsActive, &p.ImageURL, &p.Category, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProduct(req models.CreateProductRequest) (*models.Product, error) {
	query := `
		INSERT INTO products (name, description, price, stock, is_active, link_image, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, req.Name, req.Description, req.Price, req.Stock, req.IsActive, req.ImageURL, req.Category)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProductByID(int(id))
}

// GetAllProducts lists the menu, newest first. With activeOnly, products
// that were deactivated are excluded (the USER view).
func (s *Store) GetAllProducts(activeOnly bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *Store) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	return scanProduct(s.DB.QueryRow(query, id))
}

// UpdateProduct applies the non-nil fields of req and returns the updated
// row, or nil, nil when the product does not exist.
func (s *Store) UpdateProduct(id int, req models.UpdateProductRequest) (*models.Product, error) {
	current, err := s.GetProductByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Price != nil {
		current.Price = *req.Price
	}
	if req.Stock != nil {
		current.Stock = *req.Stock
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if req.ImageURL != nil {
		current.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		current.Category = *req.Category
	}

	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, is_active = ?, link_image = ?, category = ?
		WHERE id = ?
	`
	_, err = s.DB.Exec(query, current.Name, current.Description, current.Price, current.Stock, current.IsActive, current.ImageURL, current.Category, id)
	if err != nil {
		return nil, err
	}
	return current, nil
}

// DeactivateProduct soft-deletes: the row stays (orders reference it) but
// the product disappears from the USER menu.
func (s *Store) DeactivateProduct(id int) (*models.Product, error) {
	res, err := s.DB.Exec(`UPDATE products SET is_active = 0 WHERE id = ?`, id)
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
	return s.GetProductByID(id)
}

// CountProducts supports the first-run menu seed.
func (s *Store) CountProducts() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
