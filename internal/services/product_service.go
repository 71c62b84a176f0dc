package services

import (
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// ProductService handles business logic related to the catalog's own
// listings. Browsing with filters goes through CatalogService instead.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products, including inactive and sold ones.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetActiveProducts retrieves the purchasable listings.
func (s *ProductService) GetActiveProducts() ([]models.Product, error) {
	return s.repo.GetActive()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductsByCategory retrieves the purchasable listings in a category.
func (s *ProductService) GetProductsByCategory(name string) ([]models.Product, error) {
	return s.repo.GetByCategory(name)
}

// SearchProducts retrieves purchasable listings matching a search term.
func (s *ProductService) SearchProducts(text string) ([]models.Product, error) {
	return s.repo.Search(text)
}

// CreateProduct creates a new product. Listings without an explicit status
// come up ACTIVE.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
