package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingSource is a ProductSource whose primary path always errors.
type failingSource struct {
	err error
}

func (s *failingSource) FetchActive(ctx context.Context) ([]models.Product, error) {
	return nil, s.err
}

func (s *failingSource) FetchByID(ctx context.Context, id string) (*models.Product, error) {
	return nil, s.err
}

func (s *failingSource) FetchByCategory(ctx context.Context, name string) ([]models.Product, error) {
	return nil, s.err
}

func (s *failingSource) Search(ctx context.Context, text string) ([]models.Product, error) {
	return nil, s.err
}

func TestFallbackSource_ServesPrimaryWhenHealthy(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	primary := &models.Product{ID: "p-1", Name: "Primary Listing", Price: 10, Status: models.StatusActive, Stock: 1}
	require.NoError(t, repo.Create(primary))

	source := repositories.NewFallbackProductSource(
		repositories.NewLocalProductSource(repo),
		repositories.NewSampleProductSource(),
	)

	products, err := source.FetchActive(context.Background())
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.ID("p-1"), products[0].ID)
}

func TestFallbackSource_FailsOverWhenPrimaryErrors(t *testing.T) {
	source := repositories.NewFallbackProductSource(
		&failingSource{err: fmt.Errorf("upstream timed out")},
		repositories.NewSampleProductSource(),
	)

	products, err := source.FetchActive(context.Background())
	assert.NoError(t, err)
	assert.Len(t, products, len(repositories.SampleProducts()))

	product, err := source.FetchByID(context.Background(), "0001")
	assert.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Auriculares Pro", product.Name)
}

func TestFallbackSource_CancelledRequestIsNotRetried(t *testing.T) {
	source := repositories.NewFallbackProductSource(
		&failingSource{err: context.Canceled},
		repositories.NewSampleProductSource(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.FetchActive(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalSource_ChecksContextUpFront(t *testing.T) {
	source := repositories.NewLocalProductSource(repositories.NewMockProductRepository())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.FetchActive(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleProducts_AreAllPurchasable(t *testing.T) {
	for _, p := range repositories.SampleProducts() {
		assert.True(t, p.Purchasable(), p.Name)
		assert.Greater(t, p.Stock, 0, p.Name)
	}
}
