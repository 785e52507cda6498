package state

import (
	"encoding/json"
	"log/slog"

	"github.com/adr1ann32323/restorApp/internal/localstore"
	"github.com/adr1ann32323/restorApp/internal/models"
)

// TaxRate is the fixed 8% applied on the cart subtotal.
const TaxRate = 0.08

// Cart manages the client-side cart: an ordered list of line items,
// deduplicated by product id. Every mutation publishes the full updated
// collection and persists it.
type Cart struct {
	store *localstore.Store
	items *Subject[[]models.CartItem]
}

func NewCart(store *localstore.Store) *Cart {
	c := &Cart{
		store: store,
		items: NewSubject[[]models.CartItem](nil),
	}
	c.load()
	return c
}

// load restores the persisted cart. Corrupt state is logged and treated as
// an empty cart (fail-open), never a crash.
func (c *Cart) load() {
	raw, ok, err := c.store.Get(localstore.KeyCart)
	if err != nil {
		slog.Warn("Failed to read persisted cart", "error", err)
		return
	}
	if !ok {
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("Persisted cart is corrupt, starting empty", "error", err)
		if err := c.store.Delete(localstore.KeyCart); err != nil {
			slog.Warn("Failed to discard corrupt cart", "error", err)
		}
		return
	}
	c.items.Publish(items)
}

// Items returns a copy of the current line items.
func (c *Cart) Items() []models.CartItem {
	current := c.items.Value()
	out := make([]models.CartItem, len(current))
	copy(out, current)
	return out
}

// Add merges item into the cart. If a line for the same product exists its
// quantity is incremented by item.Quantity; otherwise the line is appended.
func (c *Cart) Add(item models.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	items := c.Items()
	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	c.publish(items)
}

// UpdateQuantity sets the quantity for a product's line item. A quantity of
// zero or less removes the line.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	items := c.Items()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			c.publish(items)
			return
		}
	}
}

// Remove deletes the matching line item; no-op when absent.
func (c *Cart) Remove(productID int) {
	items := c.Items()
	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			c.publish(items)
			return
		}
	}
}

// Clear empties the cart and erases the persisted state.
func (c *Cart) Clear() {
	c.items.Publish(nil)
	if err := c.store.Delete(localstore.KeyCart); err != nil {
		slog.Warn("Failed to erase persisted cart", "error", err)
	}
}

func (c *Cart) publish(items []models.CartItem) {
	c.items.Publish(items)

	data, err := json.Marshal(items)
	if err != nil {
		slog.Warn("Failed to encode cart for persistence", "error", err)
		return
	}
	if err := c.store.Set(localstore.KeyCart, string(data)); err != nil {
		slog.Warn("Failed to persist cart", "error", err)
	}
}

// Subtotal is the sum of unit price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.items.Value() {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c *Cart) Tax() float64 {
	return c.Subtotal() * TaxRate
}

func (c *Cart) Total() float64 {
	return c.Subtotal() + c.Tax()
}

// ItemCount is the total quantity across all lines, not the line count.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.items.Value() {
		count += item.Quantity
	}
	return count
}

// CheckoutRequest converts the cart into the order-creation payload.
// Pricing is deliberately not included; the backend owns it.
func (c *Cart) CheckoutRequest() models.CreateOrderRequest {
	items := c.items.Value()
	req := models.CreateOrderRequest{Items: make([]models.CreateOrderItem, 0, len(items))}
	for _, item := range items {
		req.Items = append(req.Items, models.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return req
}

// Subscribe registers fn for cart changes.
func (c *Cart) Subscribe(fn func([]models.CartItem)) func() {
	return c.items.Subscribe(fn)
}
