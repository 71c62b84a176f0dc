package models

// WishlistItem is one saved product in a profile's wishlist collection.
type WishlistItem struct {
	ID       ID       `json:"id"`
	Name     string   `json:"name"`
	Price    Price    `json:"price"`
	ImageURL *string  `json:"imageUrl"`
	Category Category `json:"category"`
}
