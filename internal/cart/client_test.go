package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFakeCartLifecycle(t *testing.T) {
	t.Parallel()

	client := NewClient("")
	ctx := context.Background()

	summary, err := client.Summary(ctx, "")
	require.NoError(t, err)
	require.Zero(t, summary.Count, "no cart yet")

	summary, err = client.AddItem(ctx, "", AddItemRequest{
		ProductID: "prd-1001",
		Title:     "Midnight Silk Gown",
		Size:      "M",
		Quantity:  2,
		UnitPrice: 18500,
	})
	require.NoError(t, err)
	require.NotEmpty(t, summary.CartID, "first add mints a cart")
	require.Equal(t, 2, summary.Count)
	require.Equal(t, 37000, summary.Subtotal)

	cartID := summary.CartID
	summary, err = client.AddItem(ctx, cartID, AddItemRequest{
		ProductID: "prd-1006",
		Title:     "Classic White Cotton Kurta",
		UnitPrice: 2950,
	})
	require.NoError(t, err)
	require.Equal(t, cartID, summary.CartID)
	require.Equal(t, 3, summary.Count, "zero quantity defaults to one")
	require.Equal(t, 39950, summary.Subtotal)

	full, err := client.Get(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, full.Items, 2)

	summary, err = client.RemoveItem(ctx, cartID, full.Items[0].ID)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	require.Equal(t, 2950, summary.Subtotal)

	_, err = client.RemoveItem(ctx, cartID, "nope")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestHTTPCartGet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/carts/cart-1":
			_ = json.NewEncoder(w).Encode(Cart{
				ID:       "cart-1",
				Subtotal: 18500,
				Items:    []Item{{ID: "it-1", ProductID: "prd-1001", Quantity: 1, UnitPrice: 18500}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	summary, err := client.Summary(ctx, "cart-1")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	require.Equal(t, 18500, summary.Subtotal)

	// Unknown carts are a normal state, not an error.
	summary, err = client.Summary(ctx, "cart-gone")
	require.NoError(t, err)
	require.Zero(t, summary.Count)
}

func TestHTTPCartAddItem(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var item AddItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&item))
		require.Equal(t, "prd-1001", item.ProductID)
		_ = json.NewEncoder(w).Encode(Cart{
			Items: []Item{{ID: "it-1", ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.UnitPrice}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	summary, err := client.AddItem(context.Background(), "", AddItemRequest{
		ProductID: "prd-1001",
		Quantity:  1,
		UnitPrice: 18500,
	})
	require.NoError(t, err)
	require.NotEmpty(t, summary.CartID, "client keeps the ID it minted when the API omits one")
	require.Equal(t, 18500, summary.Subtotal, "subtotal derived from lines when absent")
}

func TestHTTPCartRemoveMissing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.RemoveItem(context.Background(), "cart-1", "it-404")
	require.ErrorIs(t, err, ErrItemNotFound)
}
