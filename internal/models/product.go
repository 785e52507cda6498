package models

import "time"

// Category is a fixed menu section. An empty category means "uncategorized".
type Category string

const (
	CategoryBurgers  Category = "BURGERS"
	CategorySides    Category = "SIDES"
	CategoryDrinks   Category = "DRINKS"
	CategoryDesserts Category = "DESSERTS"
	CategoryPizza    Category = "PIZZA"
)

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	ImageURL    string    `json:"link_image"`
	Category    Category  `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	IsActive    bool     `json:"is_active"`
	ImageURL    string   `json:"link_image"`
	Category    Category `json:"category,omitempty"`
}

// UpdateProductRequest carries a partial update; nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	ImageURL    *string   `json:"link_image,omitempty"`
	Category    *Category `json:"category,omitempty"`
}
