package services

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog sort orders. Relevance keeps the filtered order untouched.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
)

// Criteria are the user-chosen catalog filters. Price bounds arrive as raw
// query-parameter strings; an empty bound is unset and an unparseable bound
// matches nothing, the same way the storefront UI treats them.
type Criteria struct {
	Text     string
	Category string
	PriceMin string
	PriceMax string
	Sort     string
}

// CatalogService browses products through a ProductSource and shapes the
// result with the filter/sort pipeline.
type CatalogService struct {
	source repositories.ProductSource
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(source repositories.ProductSource) *CatalogService {
	return &CatalogService{
		source: source,
	}
}

// Browse fetches the candidate listings and applies the criteria. A search
// term routes through the source's own search; the term is then cleared from
// the local pipeline because the source may have matched it against fields
// (like the description) the local text filter does not see.
func (s *CatalogService) Browse(ctx context.Context, criteria Criteria) ([]models.Product, error) {
	var (
		list []models.Product
		err  error
	)
	if strings.TrimSpace(criteria.Text) != "" {
		list, err = s.source.Search(ctx, strings.TrimSpace(criteria.Text))
		criteria.Text = ""
	} else {
		list, err = s.source.FetchActive(ctx)
	}
	if err != nil {
		return nil, err
	}
	return ApplyQuery(list, criteria), nil
}

// FetchByID returns a single listing.
func (s *CatalogService) FetchByID(ctx context.Context, id string) (*models.Product, error) {
	return s.source.FetchByID(ctx, id)
}

// FetchByCategory returns the listings in a category.
func (s *CatalogService) FetchByCategory(ctx context.Context, name string) ([]models.Product, error) {
	return s.source.FetchByCategory(ctx, name)
}

// parseBound interprets a raw price-bound parameter. The second return is
// false when the bound is unset. An unparseable bound becomes NaN, which no
// price satisfies.
func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN(), true
	}
	return f, true
}

// ApplyQuery runs the filter/sort pipeline over an in-memory product list:
// text match on name or category, category match ("all" passes everything),
// inclusive price bounds, then a stable sort. The input slice is never
// mutated. Malformed records never break the pipeline; they compare through
// their coerced defaults (empty name or category, NaN price) and a NaN price
// fails any bound that is set.
func ApplyQuery(products []models.Product, criteria Criteria) []models.Product {
	text := strings.ToLower(strings.TrimSpace(criteria.Text))
	category := strings.TrimSpace(criteria.Category)
	filterCategory := category != "" && !strings.EqualFold(category, "all")
	min, hasMin := parseBound(criteria.PriceMin)
	max, hasMax := parseBound(criteria.PriceMax)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		name := strings.ToLower(p.Name)
		categoryName := strings.ToLower(p.Category.Name)
		if text != "" && !strings.Contains(name, text) && !strings.Contains(categoryName, text) {
			continue
		}
		if filterCategory && !strings.EqualFold(p.Category.Name, category) {
			continue
		}
		price := float64(p.Price)
		if hasMin && !(price >= min) {
			continue
		}
		if hasMax && !(price <= max) {
			continue
		}
		out = append(out, p)
	}

	switch criteria.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return float64(out[i].Price) < float64(out[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return float64(out[i].Price) > float64(out[j].Price)
		})
	case SortNameAsc:
		coll := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}
