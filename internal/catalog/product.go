package catalog

import (
	"strings"
	"time"
)

// Product is the normalized catalog record used across the storefront.
// Loose upstream payloads are mapped onto this shape at the API boundary
// rather than handled with optional access in templates.
type Product struct {
	ID             string
	Slug           string
	Title          string
	Fabric         string
	Occasion       string
	Colors         []string
	Sizes          []string
	Price          int // whole rupees
	CompareAtPrice int // 0 when not discounted
	Rating         float64
	RatingCount    int
	InStock        bool
	Image          string
	Description    string
	CreatedAt      time.Time
}

// Discounted reports whether the product carries a compare-at price above
// the selling price.
func (p Product) Discounted() bool {
	return p.CompareAtPrice > p.Price && p.Price > 0
}

// Sort identifies a product ordering.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortPopular   Sort = "popular"
	SortRating    Sort = "rating"
)

// sortSafelist is the full set of orderings the catalog accepts. Anything
// else falls back to SortNewest.
var sortSafelist = []Sort{SortNewest, SortPriceAsc, SortPriceDesc, SortPopular, SortRating}

// ParseSort maps a sort token to a known ordering, defaulting to newest.
func ParseSort(raw string) Sort {
	token := Sort(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range sortSafelist {
		if token == s {
			return s
		}
	}
	return SortNewest
}

// SortOptions returns the orderings in display order.
func SortOptions() []Sort {
	return append([]Sort(nil), sortSafelist...)
}

// SortLabel returns the storefront label for a sort token.
func SortLabel(s Sort) string {
	switch s {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortPopular:
		return "Most Popular"
	case SortRating:
		return "Top Rated"
	default:
		return "Newest First"
	}
}
