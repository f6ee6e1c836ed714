package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPCatalogList(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/products", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total": 2, "page": 1, "limit": 12,
			"products": [
				{"id": "prd-1", "slug": "Midnight-Silk-Gown", "title": " Midnight Silk Gown ",
				 "fabric": "silk", "occasion": "formal", "colors": ["black", "onyx"],
				 "sizes": ["m"], "price": 18500, "compareAtPrice": 21000,
				 "rating": 4.8, "ratingCount": 212, "createdAt": "2026-06-01"},
				{"id": "prd-2", "slug": "beige-silk-dupatta", "title": "Beige Silk Dupatta",
				 "fabric": "Silk", "price": 6400, "inStock": false}
			]
		}`))
	}))
	defer srv.Close()

	svc, err := NewHTTPCatalog(srv.URL+"/v1/", nil)
	require.NoError(t, err)

	state := DefaultFilterState()
	state.Fabric = []string{"Silk"}
	result, err := svc.List(context.Background(), state)
	require.NoError(t, err)

	require.Contains(t, gotQuery, "fabric=Silk")
	require.Contains(t, gotQuery, "page=1")
	require.Contains(t, gotQuery, "limit=12")

	require.Equal(t, 2, result.Total)
	require.Len(t, result.Products, 2)

	first := result.Products[0]
	require.Equal(t, "midnight-silk-gown", first.Slug, "slug lowercased")
	require.Equal(t, "Midnight Silk Gown", first.Title, "title trimmed")
	require.Equal(t, "Silk", first.Fabric, "fabric canonicalized")
	require.Equal(t, []string{"Black"}, first.Colors, "unknown colors dropped")
	require.True(t, first.InStock, "missing inStock defaults to true")
	require.False(t, first.CreatedAt.IsZero())

	require.False(t, result.Products[1].InStock)
}

func TestHTTPCatalogListDefaultsMissingPaging(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 0, "products": []}`))
	}))
	defer srv.Close()

	svc, err := NewHTTPCatalog(srv.URL, nil)
	require.NoError(t, err)

	state := Reduce(DefaultFilterState(), SetPage{Page: 3})
	result, err := svc.List(context.Background(), state)
	require.NoError(t, err)
	require.Equal(t, 3, result.Page, "missing page falls back to the request's")
	require.Equal(t, state.Limit, result.Limit)
}

func TestHTTPCatalogListErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc, err := NewHTTPCatalog(srv.URL, nil)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), DefaultFilterState())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
	require.Contains(t, err.Error(), "upstream exploded")
}

func TestHTTPCatalogGet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/midnight-silk-gown":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "prd-1", "slug": "midnight-silk-gown", "title": "Midnight Silk Gown", "price": 18500}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc, err := NewHTTPCatalog(srv.URL, nil)
	require.NoError(t, err)

	p, err := svc.Get(context.Background(), "Midnight-Silk-Gown")
	require.NoError(t, err)
	require.Equal(t, "prd-1", p.ID)

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestNewHTTPCatalogRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewHTTPCatalog("   ", nil)
	require.Error(t, err)
}
