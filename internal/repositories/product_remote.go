package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lapak/internal/models"
)

// RemoteProductSource is a ProductSource backed by an upstream marketplace
// REST API. Failures surface as errors with no taxonomy beyond the transport
// status; the caller decides whether to fall back.
type RemoteProductSource struct {
	baseURL string
	client  *http.Client
}

// NewRemoteProductSource creates a new instance of RemoteProductSource.
func NewRemoteProductSource(baseURL string) *RemoteProductSource {
	return &RemoteProductSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *RemoteProductSource) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// FetchActive returns the upstream's purchasable listings.
func (s *RemoteProductSource) FetchActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.getJSON(ctx, "/products/active", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchByID returns a single upstream listing.
func (s *RemoteProductSource) FetchByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.getJSON(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchByCategory returns the upstream listings in a category.
func (s *RemoteProductSource) FetchByCategory(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	if err := s.getJSON(ctx, "/products/category/"+url.PathEscape(name), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Search returns upstream listings matching the search term.
func (s *RemoteProductSource) Search(ctx context.Context, text string) ([]models.Product, error) {
	query := url.Values{}
	query.Set("q", text)
	var products []models.Product
	if err := s.getJSON(ctx, "/products/search?"+query.Encode(), &products); err != nil {
		return nil, err
	}
	return products, nil
}
