package seo

import (
	"strconv"

	"laraibcreative.com/store-web/internal/catalog"
)

// OpenGraph holds the og: meta tag values.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// Twitter holds the twitter: meta tag values.
type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the head metadata for a page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// ProductMeta builds the head metadata for a product detail page,
// including the schema.org Product payload with an offer.
func ProductMeta(p catalog.Product, path string) Meta {
	return Meta{
		Title:       p.Title,
		Description: p.Description,
		Canonical:   path,
		OG: OpenGraph{
			Title:       p.Title,
			Description: p.Description,
			Image:       p.Image,
			Type:        "product",
		},
		Twitter: Twitter{Card: "summary_large_image", Image: p.Image},
		JSONLD:  []string{JSON(ProductSchema(p, path))},
	}
}

// ProductSchema returns the schema.org Product payload for a catalog
// product. Prices are whole rupees.
func ProductSchema(p catalog.Product, url string) map[string]any {
	availability := "https://schema.org/InStock"
	if !p.InStock {
		availability = "https://schema.org/OutOfStock"
	}
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        p.Title,
		"description": p.Description,
		"sku":         p.ID,
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         strconv.Itoa(p.Price),
			"priceCurrency": "PKR",
			"availability":  availability,
		},
	}
	if url != "" {
		m["url"] = url
	}
	if p.Image != "" {
		m["image"] = p.Image
	}
	if p.RatingCount > 0 {
		m["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": p.Rating,
			"reviewCount": p.RatingCount,
		}
	}
	return m
}
