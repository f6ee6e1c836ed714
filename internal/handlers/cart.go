package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"laraibcreative.com/store-web/internal/cart"
	"laraibcreative.com/store-web/internal/catalog"
	"laraibcreative.com/store-web/internal/middleware"
)

// CartData is the cart page view model.
type CartData struct {
	Layout
	Cart cart.Cart
}

// BadgeData is the header badge fragment view model.
type BadgeData struct {
	Count    int
	Subtotal int
}

// Cart renders the cart page.
func (s *Server) Cart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r)
	c, err := s.cart.Get(r.Context(), sess.CartID())
	if err != nil {
		s.log.Error("cart get", zap.Error(err))
		http.Error(w, "cart unavailable", http.StatusBadGateway)
		return
	}
	s.render.HTML(w, http.StatusOK, "cart", CartData{
		Layout: s.layout(r, "Cart"),
		Cart:   c,
	})
}

// CartBadge serves the header badge fragment.
func (s *Server) CartBadge(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r)
	summary, err := s.cart.Summary(r.Context(), sess.CartID())
	if err != nil {
		s.log.Error("cart summary", zap.Error(err))
		http.Error(w, "cart unavailable", http.StatusBadGateway)
		return
	}
	s.render.HTML(w, http.StatusOK, "cart-badge", BadgeData{
		Count:    summary.Count,
		Subtotal: summary.Subtotal,
	})
}

// CartAdd puts a product into the visitor's cart, creating the cart on
// first use. The product is re-read from the catalog so the price in the
// cart is always the catalog's, never the form's.
func (s *Server) CartAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	slug := r.PostForm.Get("slug")
	product, err := s.catalog.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			s.notFound(w, r)
			return
		}
		s.log.Error("cart add lookup", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	qty := formInt(r.PostForm.Get("quantity"), 1)
	if qty < 1 {
		qty = 1
	}
	sess := middleware.GetSession(r)
	summary, err := s.cart.AddItem(r.Context(), sess.CartID(), cart.AddItemRequest{
		ProductID: product.ID,
		Title:     product.Title,
		Size:      r.PostForm.Get("size"),
		Color:     r.PostForm.Get("color"),
		Quantity:  qty,
		UnitPrice: product.Price,
	})
	if err != nil {
		s.log.Error("cart add", zap.Error(err))
		http.Error(w, "cart unavailable", http.StatusBadGateway)
		return
	}

	sess.SetCartID(summary.CartID)
	sess.Save(w)

	if middleware.IsHTMX(r.Context()) {
		s.render.HTML(w, http.StatusOK, "cart-badge", BadgeData{
			Count:    summary.Count,
			Subtotal: summary.Subtotal,
		})
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartRemove deletes one line from the cart.
func (s *Server) CartRemove(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r)
	itemID := chi.URLParam(r, "itemID")
	summary, err := s.cart.RemoveItem(r.Context(), sess.CartID(), itemID)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		s.log.Error("cart remove", zap.String("item", itemID), zap.Error(err))
		http.Error(w, "cart unavailable", http.StatusBadGateway)
		return
	}

	sess.SetCartID(summary.CartID)
	sess.Save(w)

	if middleware.IsHTMX(r.Context()) {
		c, err := s.cart.Get(r.Context(), sess.CartID())
		if err != nil {
			http.Error(w, "cart unavailable", http.StatusBadGateway)
			return
		}
		s.render.HTML(w, http.StatusOK, "cart-lines", CartData{
			Layout: s.layout(r, "Cart"),
			Cart:   c,
		})
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
