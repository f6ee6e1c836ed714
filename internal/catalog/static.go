package catalog

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"
)

// StaticCatalog serves a deterministic in-memory catalog suitable for
// local development and tests.
type StaticCatalog struct {
	products []Product
}

// NewStaticCatalog returns a StaticCatalog populated with representative
// apparel products across the full filter space.
func NewStaticCatalog() *StaticCatalog {
	now := time.Now()

	products := []Product{
		{
			ID: "prd-1001", Slug: "midnight-silk-gown", Title: "Midnight Silk Gown",
			Fabric: "Silk", Occasion: "Formal", Colors: []string{"Black"}, Sizes: []string{"S", "M", "L"},
			Price: 18500, CompareAtPrice: 21000, Rating: 4.8, RatingCount: 212, InStock: true,
			Image: "/assets/img/products/midnight-silk-gown.jpg", CreatedAt: now.Add(-2 * 24 * time.Hour),
			Description: "Floor-length silk gown with hand-finished hems.",
		},
		{
			ID: "prd-1002", Slug: "garden-lawn-two-piece", Title: "Garden Lawn Two Piece",
			Fabric: "Lawn", Occasion: "Casual", Colors: []string{"Green", "White"}, Sizes: []string{"XS", "S", "M", "L", "XL"},
			Price: 4250, Rating: 4.4, RatingCount: 534, InStock: true,
			Image: "/assets/img/products/garden-lawn-two-piece.jpg", CreatedAt: now.Add(-5 * 24 * time.Hour),
			Description: "Printed lawn shirt with matching trousers.",
		},
		{
			ID: "prd-1003", Slug: "scarlet-chiffon-saree", Title: "Scarlet Chiffon Saree",
			Fabric: "Chiffon", Occasion: "Party", Colors: []string{"Red"}, Sizes: []string{"S", "M", "L"},
			Price: 12900, Rating: 4.6, RatingCount: 178, InStock: true,
			Image: "/assets/img/products/scarlet-chiffon-saree.jpg", CreatedAt: now.Add(-9 * 24 * time.Hour),
			Description: "Lightweight chiffon saree with sequin border.",
		},
		{
			ID: "prd-1004", Slug: "ivory-organza-bridal", Title: "Ivory Organza Bridal Set",
			Fabric: "Organza", Occasion: "Wedding", Colors: []string{"White", "Beige"}, Sizes: []string{"S", "M"},
			Price: 46500, Rating: 4.9, RatingCount: 64, InStock: true,
			Image: "/assets/img/products/ivory-organza-bridal.jpg", CreatedAt: now.Add(-20 * 24 * time.Hour),
			Description: "Three-piece organza bridal set with zari work.",
		},
		{
			ID: "prd-1005", Slug: "emerald-velvet-shawl", Title: "Emerald Velvet Shawl",
			Fabric: "Velvet", Occasion: "Formal", Colors: []string{"Green"}, Sizes: []string{"M", "L", "XL"},
			Price: 9800, CompareAtPrice: 11500, Rating: 4.2, RatingCount: 91, InStock: false,
			Image: "/assets/img/products/emerald-velvet-shawl.jpg", CreatedAt: now.Add(-15 * 24 * time.Hour),
			Description: "Winter velvet shawl with embroidered edge.",
		},
		{
			ID: "prd-1006", Slug: "classic-white-cotton-kurta", Title: "Classic White Cotton Kurta",
			Fabric: "Cotton", Occasion: "Casual", Colors: []string{"White"}, Sizes: []string{"S", "M", "L", "XL", "XXL"},
			Price: 2950, Rating: 4.5, RatingCount: 820, InStock: true,
			Image: "/assets/img/products/classic-white-cotton-kurta.jpg", CreatedAt: now.Add(-1 * 24 * time.Hour),
			Description: "Everyday straight-cut kurta in soft cotton.",
		},
		{
			ID: "prd-1007", Slug: "festive-eid-khaddar-suit", Title: "Festive Eid Khaddar Suit",
			Fabric: "Khaddar", Occasion: "Eid", Colors: []string{"Maroon"}, Sizes: []string{"M", "L"},
			Price: 7600, Rating: 4.3, RatingCount: 143, InStock: true,
			Image: "/assets/img/products/festive-eid-khaddar-suit.jpg", CreatedAt: now.Add(-12 * 24 * time.Hour),
			Description: "Khaddar suit with festive gota detailing.",
		},
		{
			ID: "prd-1008", Slug: "blush-pink-party-frock", Title: "Blush Pink Party Frock",
			Fabric: "Chiffon", Occasion: "Party", Colors: []string{"Pink"}, Sizes: []string{"XS", "S", "M"},
			Price: 15400, Rating: 4.7, RatingCount: 257, InStock: true,
			Image: "/assets/img/products/blush-pink-party-frock.jpg", CreatedAt: now.Add(-3 * 24 * time.Hour),
			Description: "Tiered chiffon frock with pearl buttons.",
		},
		{
			ID: "prd-1009", Slug: "navy-linen-coord", Title: "Navy Linen Co-ord",
			Fabric: "Linen", Occasion: "Casual", Colors: []string{"Blue"}, Sizes: []string{"S", "M", "L", "XL"},
			Price: 5800, Rating: 4.1, RatingCount: 312, InStock: true,
			Image: "/assets/img/products/navy-linen-coord.jpg", CreatedAt: now.Add(-7 * 24 * time.Hour),
			Description: "Relaxed linen co-ord for warm days.",
		},
		{
			ID: "prd-1010", Slug: "regal-maroon-velvet-lehenga", Title: "Regal Maroon Velvet Lehenga",
			Fabric: "Velvet", Occasion: "Wedding", Colors: []string{"Maroon", "Red"}, Sizes: []string{"S", "M", "L"},
			Price: 38900, Rating: 4.8, RatingCount: 88, InStock: true,
			Image: "/assets/img/products/regal-maroon-velvet-lehenga.jpg", CreatedAt: now.Add(-25 * 24 * time.Hour),
			Description: "Heavily worked velvet lehenga with dupatta.",
		},
		{
			ID: "prd-1011", Slug: "sky-lawn-summer-dress", Title: "Sky Lawn Summer Dress",
			Fabric: "Lawn", Occasion: "Casual", Colors: []string{"Blue", "White"}, Sizes: []string{"XS", "S", "M", "L"},
			Price: 3650, CompareAtPrice: 4200, Rating: 4.0, RatingCount: 468, InStock: false,
			Image: "/assets/img/products/sky-lawn-summer-dress.jpg", CreatedAt: now.Add(-6 * 24 * time.Hour),
			Description: "Breezy printed lawn dress, digital print.",
		},
		{
			ID: "prd-1012", Slug: "black-organza-evening-suit", Title: "Black Organza Evening Suit",
			Fabric: "Organza", Occasion: "Formal", Colors: []string{"Black"}, Sizes: []string{"M", "L", "XL"},
			Price: 22750, Rating: 4.6, RatingCount: 132, InStock: true,
			Image: "/assets/img/products/black-organza-evening-suit.jpg", CreatedAt: now.Add(-4 * 24 * time.Hour),
			Description: "Sheer organza evening suit with inner slip.",
		},
		{
			ID: "prd-1013", Slug: "beige-silk-dupatta", Title: "Beige Silk Dupatta",
			Fabric: "Silk", Occasion: "Eid", Colors: []string{"Beige"}, Sizes: []string{"S", "M", "L", "XL"},
			Price: 6400, Rating: 4.4, RatingCount: 201, InStock: true,
			Image: "/assets/img/products/beige-silk-dupatta.jpg", CreatedAt: now.Add(-11 * 24 * time.Hour),
			Description: "Pure silk dupatta with tassel finish.",
		},
		{
			ID: "prd-1014", Slug: "winter-khaddar-basics", Title: "Winter Khaddar Basics",
			Fabric: "Khaddar", Occasion: "Casual", Colors: []string{"Beige", "Black"}, Sizes: []string{"M", "L", "XL", "XXL"},
			Price: 4900, Rating: 3.9, RatingCount: 377, InStock: true,
			Image: "/assets/img/products/winter-khaddar-basics.jpg", CreatedAt: now.Add(-18 * 24 * time.Hour),
			Description: "Solid khaddar kurta for everyday winter wear.",
		},
	}

	return &StaticCatalog{products: products}
}

// List implements Service against the in-memory fixtures.
func (s *StaticCatalog) List(_ context.Context, state FilterState) (ListResult, error) {
	state = state.normalize()

	matched := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if matchesFilters(p, state) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, state.Sort)

	total := len(matched)
	start := (state.Page - 1) * state.Limit
	if start > total {
		start = total
	}
	end := start + state.Limit
	if end > total {
		end = total
	}

	return ListResult{
		Products: append([]Product(nil), matched[start:end]...),
		Total:    total,
		Page:     state.Page,
		Limit:    state.Limit,
	}, nil
}

// Get implements Service.
func (s *StaticCatalog) Get(_ context.Context, slug string) (Product, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Products returns the full fixture set, used to seed local stores.
func (s *StaticCatalog) Products() []Product {
	return append([]Product(nil), s.products...)
}

func matchesFilters(p Product, state FilterState) bool {
	if len(state.Fabric) > 0 && !slices.Contains(state.Fabric, p.Fabric) {
		return false
	}
	if len(state.Occasion) > 0 && !slices.Contains(state.Occasion, p.Occasion) {
		return false
	}
	if len(state.Color) > 0 && !intersects(state.Color, p.Colors) {
		return false
	}
	if len(state.Size) > 0 && !intersects(state.Size, p.Sizes) {
		return false
	}
	if len(state.Availability) > 0 {
		token := AvailabilityOutOfStock
		if p.InStock {
			token = AvailabilityInStock
		}
		if !slices.Contains(state.Availability, token) {
			return false
		}
	}
	if p.Price < state.MinPrice || p.Price > state.MaxPrice {
		return false
	}
	return true
}

func intersects(selected, have []string) bool {
	for _, v := range have {
		if slices.Contains(selected, v) {
			return true
		}
	}
	return false
}

func sortProducts(products []Product, by Sort) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch by {
		case SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case SortPopular:
			if a.RatingCount != b.RatingCount {
				return a.RatingCount > b.RatingCount
			}
		case SortRating:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		default: // newest
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.Slug < b.Slug
	})
}
