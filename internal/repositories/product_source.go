package repositories

import (
	"context"
	"log"

	"lapak/internal/models"
)

// LocalProductSource exposes a ProductRepository through the ProductSource
// boundary. The repository calls are not cancellable, so the context is only
// checked up front.
type LocalProductSource struct {
	repo ProductRepository
}

// NewLocalProductSource creates a new instance of LocalProductSource.
func NewLocalProductSource(repo ProductRepository) *LocalProductSource {
	return &LocalProductSource{
		repo: repo,
	}
}

// FetchActive returns the purchasable listings.
func (s *LocalProductSource) FetchActive(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetActive()
}

// FetchByID returns a single listing.
func (s *LocalProductSource) FetchByID(ctx context.Context, id string) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// FetchByCategory returns the purchasable listings in a category.
func (s *LocalProductSource) FetchByCategory(ctx context.Context, name string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetByCategory(name)
}

// Search returns purchasable listings matching the search term.
func (s *LocalProductSource) Search(ctx context.Context, text string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.Search(text)
}

// FallbackProductSource serves from a primary source and falls back to a
// secondary one when the primary fails, so a flaky upstream degrades the
// catalog to stale or sample data instead of an error page. A cancelled
// request is never retried against the fallback; its view is already gone.
type FallbackProductSource struct {
	primary  ProductSource
	fallback ProductSource
}

// NewFallbackProductSource creates a new instance of FallbackProductSource.
func NewFallbackProductSource(primary, fallback ProductSource) *FallbackProductSource {
	return &FallbackProductSource{
		primary:  primary,
		fallback: fallback,
	}
}

func (s *FallbackProductSource) recover(ctx context.Context, op string, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	log.Printf("Primary product source failed on %s: %v; serving fallback", op, err)
	return true
}

// FetchActive returns the purchasable listings.
func (s *FallbackProductSource) FetchActive(ctx context.Context) ([]models.Product, error) {
	products, err := s.primary.FetchActive(ctx)
	if err != nil {
		if !s.recover(ctx, "FetchActive", err) {
			return nil, err
		}
		return s.fallback.FetchActive(ctx)
	}
	return products, nil
}

// FetchByID returns a single listing.
func (s *FallbackProductSource) FetchByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.primary.FetchByID(ctx, id)
	if err != nil {
		if !s.recover(ctx, "FetchByID", err) {
			return nil, err
		}
		return s.fallback.FetchByID(ctx, id)
	}
	return product, nil
}

// FetchByCategory returns the purchasable listings in a category.
func (s *FallbackProductSource) FetchByCategory(ctx context.Context, name string) ([]models.Product, error) {
	products, err := s.primary.FetchByCategory(ctx, name)
	if err != nil {
		if !s.recover(ctx, "FetchByCategory", err) {
			return nil, err
		}
		return s.fallback.FetchByCategory(ctx, name)
	}
	return products, nil
}

// Search returns purchasable listings matching the search term.
func (s *FallbackProductSource) Search(ctx context.Context, text string) ([]models.Product, error) {
	products, err := s.primary.Search(ctx, text)
	if err != nil {
		if !s.recover(ctx, "Search", err) {
			return nil, err
		}
		return s.fallback.Search(ctx, text)
	}
	return products, nil
}

// SampleProducts is the built-in demo catalog served when no other source is
// reachable.
func SampleProducts() []models.Product {
	return []models.Product{
		{ID: "0001", Name: "Auriculares Pro", Category: models.Category{Name: "tecnologia"}, Price: 99.99, Status: models.StatusActive, Stock: 10},
		{ID: "0002", Name: "Cafetera Smart", Category: models.Category{Name: "hogar"}, Price: 149.00, Status: models.StatusActive, Stock: 8},
		{ID: "0003", Name: "Zapatillas Urbanas", Category: models.Category{Name: "moda"}, Price: 59.90, Status: models.StatusActive, Stock: 20},
		{ID: "0004", Name: "Keyboard Mecánico", Category: models.Category{Name: "tecnologia"}, Price: 79.50, Status: models.StatusActive, Stock: 15},
		{ID: "0005", Name: "Lámpara Minimal", Category: models.Category{Name: "hogar"}, Price: 34.25, Status: models.StatusActive, Stock: 12},
		{ID: "0006", Name: "Mochila Daily", Category: models.Category{Name: "moda"}, Price: 45.00, Status: models.StatusActive, Stock: 18},
		{ID: "0007", Name: "Mouse Inalámbrico", Category: models.Category{Name: "tecnologia"}, Price: 29.99, Status: models.StatusActive, Stock: 30},
		{ID: "0008", Name: "Set de Sábanas", Category: models.Category{Name: "hogar"}, Price: 25.99, Status: models.StatusActive, Stock: 25},
	}
}

// NewSampleProductSource builds a source over the in-memory repository seeded
// with the demo catalog.
func NewSampleProductSource() *LocalProductSource {
	repo := NewMockProductRepository()
	samples := SampleProducts()
	for i := range samples {
		if err := repo.Create(&samples[i]); err != nil {
			log.Printf("Error seeding sample product %s: %v", samples[i].Name, err)
		}
	}
	return NewLocalProductSource(repo)
}
