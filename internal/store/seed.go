package store

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/adr1ann32323/restorApp/internal/models"
)

// SeedAdmin creates the admin account on first run. It is a no-op when a
// user with that email already exists or when no password is configured.
func (s *Store) SeedAdmin(name, email, password string) error {
	if password == "" {
		slog.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	existing, _, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.CreateUser(name, email, string(hashed), models.RoleAdmin); err != nil {
		return err
	}
	slog.Info("Seeded admin account", "email", email)
	return nil
}

// SeedMenu inserts a starter menu when the products table is empty, so a
// fresh server has something to order from.
func (s *Store) SeedMenu() error {
	count, err := s.CountProducts()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	menu := []models.CreateProductRequest{
		{Name: "Classic Burger", Description: "Beef patty, lettuce, tomato, house sauce", Price: 8.50, Stock: 50, IsActive: true, Category: models.CategoryBurgers},
		{Name: "Double Cheeseburger", Description: "Two patties, double cheddar", Price: 11.00, Stock: 40, IsActive: true, Category: models.CategoryBurgers},
		{Name: "French Fries", Description: "Crispy, salted", Price: 3.50, Stock: 100, IsActive: true, Category: models.CategorySides},
		{Name: "Onion Rings", Description: "Beer battered", Price: 4.00, Stock: 80, IsActive: true, Category: models.CategorySides},
		{Name: "Cola", Description: "330ml can", Price: 2.00, Stock: 200, IsActive: true, Category: models.CategoryDrinks},
		{Name: "Lemonade", Description: "Fresh squeezed", Price: 3.00, Stock: 60, IsActive: true, Category: models.CategoryDrinks},
		{Name: "Chocolate Brownie", Description: "Warm, with fudge", Price: 4.50, Stock: 30, IsActive: true, Category: models.CategoryDesserts},
		{Name: "Margherita", Description: "Tomato, mozzarella, basil", Price: 9.50, Stock: 35, IsActive: true, Category: models.CategoryPizza},
		{Name: "Pepperoni", Description: "Extra pepperoni", Price: 11.50, Stock: 35, IsActive: true, Category: models.CategoryPizza},
	}

	for _, p := range menu {
		if _, err := s.CreateProduct(p); err != nil {
			return err
		}
	}
	slog.Info("Seeded starter menu", "products", len(menu))
	return nil
}
