package services

import (
	"encoding/json"
	"fmt"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// wishlistKey is the collection name the wishlist is persisted under.
const wishlistKey = "wishlist"

// WishlistService handles a profile's wishlist collection. Items are unique
// per product id; add and remove are idempotent.
type WishlistService struct {
	store repositories.RecordStore
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(store repositories.RecordStore) *WishlistService {
	return &WishlistService{
		store: store,
	}
}

func (s *WishlistService) items(profile string) []models.WishlistItem {
	raw, err := s.store.Read(profile, wishlistKey)
	if err != nil || len(raw) == 0 {
		return []models.WishlistItem{}
	}
	var items []models.WishlistItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.WishlistItem{}
	}
	return items
}

func (s *WishlistService) write(profile string, items []models.WishlistItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize wishlist: %w", err)
	}
	if err := s.store.Write(profile, wishlistKey, data); err != nil {
		return fmt.Errorf("failed to persist wishlist: %w", err)
	}
	return nil
}

// Items returns the profile's wishlist collection.
func (s *WishlistService) Items(profile string) []models.WishlistItem {
	return s.items(profile)
}

// IDs returns the wishlisted product ids.
func (s *WishlistService) IDs(profile string) []string {
	items := s.items(profile)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, string(item.ID))
	}
	return ids
}

// IsWishlisted reports whether a product is in the wishlist.
func (s *WishlistService) IsWishlisted(profile, id string) bool {
	for _, item := range s.items(profile) {
		if item.ID == models.ID(id) {
			return true
		}
	}
	return false
}

// AddToWishlist inserts the product unless it is already present.
func (s *WishlistService) AddToWishlist(profile string, product *models.Product) ([]models.WishlistItem, error) {
	items := s.items(profile)
	for _, item := range items {
		if item.ID == product.ID {
			return items, nil
		}
	}
	items = append(items, models.WishlistItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageRef(),
		Category: product.Category,
	})
	if err := s.write(profile, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveFromWishlist removes the product if present.
func (s *WishlistService) RemoveFromWishlist(profile, id string) ([]models.WishlistItem, error) {
	items := s.items(profile)
	kept := make([]models.WishlistItem, 0, len(items))
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

// ToggleWishlist removes the product when present, adds it when absent, and
// returns the resulting collection. Applying it twice restores the original
// wishlist.
func (s *WishlistService) ToggleWishlist(profile string, product *models.Product) ([]models.WishlistItem, error) {
	if s.IsWishlisted(profile, string(product.ID)) {
		return s.RemoveFromWishlist(profile, string(product.ID))
	}
	return s.AddToWishlist(profile, product)
}

// ClearWishlist replaces the collection with an empty one.
func (s *WishlistService) ClearWishlist(profile string) error {
	return s.write(profile, []models.WishlistItem{})
}

// Count returns the number of wishlisted products.
func (s *WishlistService) Count(profile string) int {
	return len(s.items(profile))
}
