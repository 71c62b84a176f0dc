package repositories

import (
	"context"

	"lapak/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetActive() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByCategory(name string) ([]models.Product, error)
	Search(text string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}

// ProductSource is the read-side boundary the catalog browses through. Unlike
// ProductRepository it is context-aware: a fetch whose originating request has
// been cancelled is abandoned instead of resolving against a dead view.
type ProductSource interface {
	FetchActive(ctx context.Context) ([]models.Product, error)
	FetchByID(ctx context.Context, id string) (*models.Product, error)
	FetchByCategory(ctx context.Context, name string) ([]models.Product, error)
	Search(ctx context.Context, text string) ([]models.Product, error)
}
