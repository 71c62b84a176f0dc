package models

// CartItem is one line of a profile's cart collection. The price is captured
// when the item is added, so later catalog edits do not move the cart total.
type CartItem struct {
	ID       ID      `json:"id"`
	Name     string  `json:"name"`
	Price    Price   `json:"price"`
	ImageURL *string `json:"imageUrl"`
	Quantity int     `json:"quantity"`
}

// CartTotals summarizes a cart collection.
type CartTotals struct {
	Subtotal   float64 `json:"subtotal"`
	TotalItems int     `json:"totalItems"`
}
