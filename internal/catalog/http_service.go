package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 8 * time.Second

// HTTPClient matches the subset of http.Client used by HTTPCatalog.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPCatalog implements Service against the external product-listing API.
type HTTPCatalog struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPCatalog constructs a catalog client for the given base URL.
func NewHTTPCatalog(baseURL string, client HTTPClient) (*HTTPCatalog, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("catalog: base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base URL: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPCatalog{base: parsed, client: client}, nil
}

// List issues GET {base}/products with the serialized filter parameters
// plus page and limit, and normalizes the response payload.
func (c *HTTPCatalog) List(ctx context.Context, state FilterState) (ListResult, error) {
	state = state.normalize()

	endpoint := *c.base
	endpoint.Path = joinPath(endpoint.Path, "products")
	endpoint.RawQuery = APIQuery(state).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return ListResult{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return ListResult{}, fmt.Errorf("catalog: list products: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return ListResult{}, fmt.Errorf("catalog: list status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var payload listPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ListResult{}, fmt.Errorf("catalog: decode listing: %w", err)
	}
	return payload.toListResult(state), nil
}

// Get fetches a single product by slug from GET {base}/products/{slug}.
func (c *HTTPCatalog) Get(ctx context.Context, slug string) (Product, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return Product{}, ErrProductNotFound
	}

	endpoint := *c.base
	endpoint.Path = joinPath(endpoint.Path, "products", url.PathEscape(slug))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Product{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("catalog: get product: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Product{}, ErrProductNotFound
	}
	if resp.StatusCode >= 400 {
		return Product{}, fmt.Errorf("catalog: get status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Product{}, fmt.Errorf("catalog: decode product: %w", err)
	}
	return payload.toProduct(), nil
}

type listPayload struct {
	Products []productPayload `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type productPayload struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Fabric         string   `json:"fabric"`
	Occasion       string   `json:"occasion"`
	Colors         []string `json:"colors"`
	Sizes          []string `json:"sizes"`
	Price          int      `json:"price"`
	CompareAtPrice int      `json:"compareAtPrice"`
	Rating         float64  `json:"rating"`
	RatingCount    int      `json:"ratingCount"`
	InStock        *bool    `json:"inStock"`
	Image          string   `json:"image"`
	Description    string   `json:"description"`
	CreatedAt      string   `json:"createdAt"`
}

func (p listPayload) toListResult(state FilterState) ListResult {
	products := make([]Product, 0, len(p.Products))
	for _, item := range p.Products {
		products = append(products, item.toProduct())
	}
	result := ListResult{
		Products: products,
		Total:    p.Total,
		Page:     p.Page,
		Limit:    p.Limit,
	}
	if result.Total < 0 {
		result.Total = 0
	}
	if result.Page < 1 {
		result.Page = state.Page
	}
	if result.Limit <= 0 {
		result.Limit = state.Limit
	}
	return result
}

func (p productPayload) toProduct() Product {
	product := Product{
		ID:             strings.TrimSpace(p.ID),
		Slug:           strings.TrimSpace(strings.ToLower(p.Slug)),
		Title:          strings.TrimSpace(p.Title),
		Fabric:         canonicalValue(FieldFabric, p.Fabric),
		Occasion:       canonicalValue(FieldOccasion, p.Occasion),
		Colors:         canonicalValues(FieldColor, p.Colors),
		Sizes:          canonicalValues(FieldSize, p.Sizes),
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Rating:         p.Rating,
		RatingCount:    p.RatingCount,
		InStock:        true,
		Image:          strings.TrimSpace(p.Image),
		Description:    strings.TrimSpace(p.Description),
		CreatedAt:      parseCreatedAt(p.CreatedAt),
	}
	if p.InStock != nil {
		product.InStock = *p.InStock
	}
	if product.Price < 0 {
		product.Price = 0
	}
	return product
}

func parseCreatedAt(val string) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func joinPath(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return "/" + strings.Join(cleaned, "/")
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
