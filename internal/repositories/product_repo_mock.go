package repositories

import (
	"fmt"
	"strings"
	"sync"

	"lapak/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It seeds the fallback catalog source and stands in for the database in tests.
type MockProductRepository struct {
	products map[models.ID]models.Product
	order    []models.ID
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[models.ID]models.Product),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// GetActive returns the purchasable listings in insertion order.
func (r *MockProductRepository) GetActive() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.products[id]
		if p.Purchasable() {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[models.ID(id)]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// GetByCategory returns the purchasable listings in a category.
func (r *MockProductRepository) GetByCategory(name string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0)
	for _, id := range r.order {
		p := r.products[id]
		if p.Purchasable() && strings.EqualFold(p.Category.Name, name) {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// Search returns purchasable listings whose name or description contains the
// search term, case-insensitively.
func (r *MockProductRepository) Search(text string) ([]models.Product, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return r.GetActive()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0)
	for _, id := range r.order {
		p := r.products[id]
		if !p.Purchasable() {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), text) ||
			strings.Contains(strings.ToLower(p.Description), text) {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = models.ID(uuid.New().String())
	}
	if product.Status == "" {
		product.Status = models.StatusActive
	}
	if _, ok := r.products[product.ID]; !ok {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[models.ID(id)]
	if !ok {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	delete(r.products, models.ID(id))
	for i, oid := range r.order {
		if oid == models.ID(id) {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
