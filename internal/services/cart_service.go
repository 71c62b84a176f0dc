package services

import (
	"encoding/json"
	"fmt"
	"math"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// cartKey is the collection name the cart is persisted under.
const cartKey = "cart"

// CartService handles a profile's cart collection. Every operation is a
// single read-modify-write of the whole collection; there are no partial
// writes. Concurrent writers race last-writer-wins, which matches how the
// storefront client behaves across tabs.
type CartService struct {
	store repositories.RecordStore
}

// NewCartService creates a new CartService.
func NewCartService(store repositories.RecordStore) *CartService {
	return &CartService{
		store: store,
	}
}

// items loads the cart collection. A missing or corrupted document reads as
// an empty cart; read failures are never surfaced.
func (s *CartService) items(profile string) []models.CartItem {
	raw, err := s.store.Read(profile, cartKey)
	if err != nil || len(raw) == 0 {
		return []models.CartItem{}
	}
	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.CartItem{}
	}
	return items
}

// write persists the full collection snapshot. Unlike reads, write failures
// propagate so the caller can tell the user the mutation was lost.
func (s *CartService) write(profile string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	if err := s.store.Write(profile, cartKey, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Items returns the profile's cart collection.
func (s *CartService) Items(profile string) []models.CartItem {
	return s.items(profile)
}

// AddToCart merges a product into the cart. An existing line for the same id
// has its quantity incremented; otherwise a new line is appended. Quantities
// below one count as one. Stock ceilings are the caller's concern.
func (s *CartService) AddToCart(profile string, product *models.Product, quantity int) ([]models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	items := s.items(profile)
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity += quantity
			if err := s.write(profile, items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	items = append(items, models.CartItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageRef(),
		Quantity: quantity,
	})
	if err := s.write(profile, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets a line's quantity to max(1, round(quantity)). An absent
// id is a no-op and the unchanged collection is returned.
func (s *CartService) UpdateQuantity(profile, id string, quantity float64) ([]models.CartItem, error) {
	items := s.items(profile)
	for i := range items {
		if items[i].ID == models.ID(id) {
			next := int(math.Round(quantity))
			if next < 1 || math.IsNaN(quantity) {
				next = 1
			}
			items[i].Quantity = next
			if err := s.write(profile, items); err != nil {
				return nil, err
			}
			break
		}
	}
	return items, nil
}

// RemoveFromCart removes the line with the given id, if present.
func (s *CartService) RemoveFromCart(profile, id string) ([]models.CartItem, error) {
	items := s.items(profile)
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != models.ID(id) {
			kept = append(kept, item)
		}
	}
	if err := s.write(profile, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// ClearCart replaces the collection with an empty one.
func (s *CartService) ClearCart(profile string) error {
	return s.write(profile, []models.CartItem{})
}

// Totals computes the cart summary without mutating the collection.
func (s *CartService) Totals(profile string) models.CartTotals {
	var totals models.CartTotals
	for _, item := range s.items(profile) {
		totals.Subtotal += float64(item.Price) * float64(item.Quantity)
		totals.TotalItems += item.Quantity
	}
	return totals
}
