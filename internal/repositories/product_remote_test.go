package repositories_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteSource_FetchActive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/active", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		// Untyped upstream payload: numeric id, quoted price, object category.
		w.Write([]byte(`[{"id":7,"name":"Lampara Led","price":"34.25","category":{"name":"hogar"},"status":"ACTIVE"}]`))
	}))
	defer server.Close()

	source := repositories.NewRemoteProductSource(server.URL)

	products, err := source.FetchActive(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.ID("7"), products[0].ID)
	assert.Equal(t, 34.25, float64(products[0].Price))
	assert.Equal(t, "hogar", products[0].Category.Name)
}

func TestRemoteSource_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "lampara led", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	source := repositories.NewRemoteProductSource(server.URL)

	products, err := source.Search(context.Background(), "lampara led")
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestRemoteSource_NonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := repositories.NewRemoteProductSource(server.URL)

	_, err := source.FetchActive(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestRemoteSource_CancelledContextAbortsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	source := repositories.NewRemoteProductSource(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.FetchActive(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
