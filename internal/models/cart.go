package models

// CartItem is one line of the client-side cart. The cart holds at most one
// line per product id; adding the same product again increments Quantity.
type CartItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"link_image,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}
