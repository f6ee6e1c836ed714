package catalog

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned when a product slug does not exist.
var ErrProductNotFound = errors.New("catalog: product not found")

// Service exposes product listing for the storefront. Implementations:
// StaticCatalog (fixtures), SQLiteCatalog (local store), HTTPCatalog
// (remote listing API) and CachedCatalog (read-through cache over any of
// them).
type Service interface {
	// List returns the page of products matching the filter state.
	List(ctx context.Context, state FilterState) (ListResult, error)

	// Get returns a single product by slug.
	Get(ctx context.Context, slug string) (Product, error)
}

// ListResult is one page of matching products.
type ListResult struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// TotalPages derives the page count: ceil(total/limit).
func (r ListResult) TotalPages() int {
	if r.Limit <= 0 || r.Total <= 0 {
		return 0
	}
	return (r.Total + r.Limit - 1) / r.Limit
}

// pageWindowSize is the maximum number of page buttons shown at once.
const pageWindowSize = 5

// PageWindow returns up to five page numbers centered on current, clamped
// at the bounds, for the pagination control.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}
	start := current - pageWindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + pageWindowSize - 1
	if end > totalPages {
		end = totalPages
		start = end - pageWindowSize + 1
		if start < 1 {
			start = 1
		}
	}
	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
