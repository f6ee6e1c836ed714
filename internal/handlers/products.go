package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"laraibcreative.com/store-web/internal/catalog"
	"laraibcreative.com/store-web/internal/grid"
	"laraibcreative.com/store-web/internal/middleware"
	"laraibcreative.com/store-web/internal/seo"
)

// FilterOption is one checkbox in a filter group. Href is the full-page
// link; Fragment is the same state on the grid endpoint for htmx swaps.
type FilterOption struct {
	Value    string
	Label    string
	Checked  bool
	Href     string
	Fragment string
}

// FilterGroup is one facet of the filter panel.
type FilterGroup struct {
	Field   catalog.Field
	Label   string
	Options []FilterOption
}

// ChipView is one removable chip in the active-filters row.
type ChipView struct {
	Label    string
	Href     string
	Fragment string
}

// SortView is one entry in the sort selector.
type SortView struct {
	Value    string
	Label    string
	Href     string
	Fragment string
	Selected bool
}

// PageLink is one button in the pagination window.
type PageLink struct {
	Page     int
	Href     string
	Fragment string
	Current  bool
}

// GridView is the fragment-level view model for the product grid.
type GridView struct {
	Phase        grid.Phase
	Products     []catalog.Product
	Total        int
	Page         int
	TotalPages   int
	Window       []PageLink
	PrevHref     string
	PrevFragment string
	NextHref     string
	NextFragment string
	Canonical    string
	Fragment     string
	ErrMessage   string
}

// ProductsData is the full listing-page view model.
type ProductsData struct {
	Layout
	State        catalog.FilterState
	Groups       []FilterGroup
	Chips        []ChipView
	ActiveCount  int
	ClearHref    string
	Sorts        []SortView
	PriceMin     int
	PriceMax     int
	PriceCeiling int
	CurrentQuery string
	Grid         GridView
}

// Products renders the listing page. Requests whose query string is not
// the canonical encoding of their own state are redirected so every
// reachable state has exactly one URL.
func (s *Server) Products(w http.ResponseWriter, r *http.Request) {
	state := catalog.Decode(r.URL.Query())

	canonical := catalog.CanonicalPath("/products", state)
	if got := requestPath(r); got != canonical {
		http.Redirect(w, r, canonical, http.StatusFound)
		return
	}

	sess := middleware.GetSession(r)
	loader := s.grid.For(sess.VisitorID())
	snap, _ := loader.Load(r.Context(), state)

	s.rememberQuery(w, sess, state)

	data := s.productsData(r, state, snap)
	s.render.HTML(w, http.StatusOK, "products", data)
}

// ProductsGrid serves the grid fragment for filter changes issued from the
// listing page. When a newer request supersedes this one mid-flight the
// response is 204 so the stale markup never replaces fresher content.
func (s *Server) ProductsGrid(w http.ResponseWriter, r *http.Request) {
	state := catalog.Decode(r.URL.Query())

	sess := middleware.GetSession(r)
	loader := s.grid.For(sess.VisitorID())
	snap, ok := loader.Load(r.Context(), state)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.rememberQuery(w, sess, state)

	w.Header().Set("HX-Push-Url", catalog.CanonicalPath("/products", state))
	s.render.HTML(w, http.StatusOK, "product-grid", s.gridView(state, snap))
}

// ProductsApply commits the mobile drawer's staged selection in one step.
// The form carries the state the drawer was opened against plus the full
// staged selection; nothing touches the live filters until this commit.
func (s *Server) ProductsApply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	opened, _ := url.ParseQuery(r.PostForm.Get("current"))
	base := catalog.NewStore(catalog.Decode(opened), nil)
	staging := catalog.BeginStaging(base)

	if r.PostForm.Get("discard") != "" {
		state := staging.Discard()
		s.finishApply(w, r, state)
		return
	}

	for _, field := range catalog.SetFields {
		staging.Update(catalog.SetValues{Field: field, Values: r.PostForm[string(field)]})
	}
	minPrice := formInt(r.PostForm.Get("minPrice"), 0)
	maxPrice := formInt(r.PostForm.Get("maxPrice"), catalog.PriceCeiling)
	staging.Update(catalog.SetPriceRange{Min: minPrice, Max: maxPrice})
	if raw := r.PostForm.Get("sort"); raw != "" {
		staging.Update(catalog.SetSort{Sort: catalog.Sort(raw)})
	}

	state := staging.Commit()
	s.finishApply(w, r, state)
}

func (s *Server) finishApply(w http.ResponseWriter, r *http.Request, state catalog.FilterState) {
	canonical := catalog.CanonicalPath("/products", state)
	if !middleware.IsHTMX(r.Context()) {
		http.Redirect(w, r, canonical, http.StatusSeeOther)
		return
	}

	sess := middleware.GetSession(r)
	loader := s.grid.For(sess.VisitorID())
	snap, ok := loader.Load(r.Context(), state)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.rememberQuery(w, sess, state)
	w.Header().Set("HX-Push-Url", canonical)
	s.render.HTML(w, http.StatusOK, "product-grid", s.gridView(state, snap))
}

// ProductDetail renders one product page.
func (s *Server) ProductDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := s.catalog.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			s.notFound(w, r)
			return
		}
		s.log.Error("product detail", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	layout := s.layout(r, product.Title)
	layout.Meta = seo.ProductMeta(product, "/products/"+product.Slug)

	data := struct {
		Layout
		Product catalog.Product
	}{Layout: layout, Product: product}
	s.render.HTML(w, http.StatusOK, "product", data)
}

func (s *Server) productsData(r *http.Request, state catalog.FilterState, snap grid.Snapshot) ProductsData {
	layout := s.layout(r, "Shop")
	layout.Meta.Canonical = catalog.CanonicalPath("/products", state)

	data := ProductsData{
		Layout:       layout,
		State:        state,
		ActiveCount:  state.ActiveCount(),
		ClearHref:    catalog.CanonicalPath("/products", catalog.Reduce(state, catalog.ClearAll{})),
		PriceMin:     state.MinPrice,
		PriceMax:     state.MaxPrice,
		PriceCeiling: catalog.PriceCeiling,
		CurrentQuery: catalog.Encode(state).Encode(),
		Grid:         s.gridView(state, snap),
	}

	for _, field := range catalog.SetFields {
		group := FilterGroup{Field: field, Label: catalog.FieldLabel(field)}
		for _, value := range catalog.Options(field) {
			toggled := catalog.Reduce(state, catalog.ToggleValue{Field: field, Value: value})
			group.Options = append(group.Options, FilterOption{
				Value:    value,
				Label:    catalog.OptionLabel(field, value),
				Checked:  state.Has(field, value),
				Href:     catalog.CanonicalPath("/products", toggled),
				Fragment: catalog.CanonicalPath("/products/grid", toggled),
			})
		}
		data.Groups = append(data.Groups, group)
	}

	for _, chip := range catalog.Chips(state) {
		data.Chips = append(data.Chips, ChipView{
			Label:    chip.Label,
			Href:     catalog.CanonicalPath("/products", chip.Remove),
			Fragment: catalog.CanonicalPath("/products/grid", chip.Remove),
		})
	}

	for _, sort := range catalog.SortOptions() {
		sorted := catalog.Reduce(state, catalog.SetSort{Sort: sort})
		data.Sorts = append(data.Sorts, SortView{
			Value:    string(sort),
			Label:    catalog.SortLabel(sort),
			Href:     catalog.CanonicalPath("/products", sorted),
			Fragment: catalog.CanonicalPath("/products/grid", sorted),
			Selected: state.Sort == sort,
		})
	}

	return data
}

func (s *Server) gridView(state catalog.FilterState, snap grid.Snapshot) GridView {
	view := GridView{
		Phase:     snap.Phase,
		Products:  snap.Result.Products,
		Total:     snap.Result.Total,
		Page:      state.Page,
		Canonical: catalog.CanonicalPath("/products", state),
		Fragment:  catalog.CanonicalPath("/products/grid", state),
	}
	if snap.Err != nil {
		view.ErrMessage = "Something went wrong loading products. Please try again."
	}

	view.TotalPages = snap.Result.TotalPages()
	for _, page := range catalog.PageWindow(state.Page, view.TotalPages) {
		target := catalog.Reduce(state, catalog.SetPage{Page: page})
		view.Window = append(view.Window, PageLink{
			Page:     page,
			Href:     catalog.CanonicalPath("/products", target),
			Fragment: catalog.CanonicalPath("/products/grid", target),
			Current:  page == state.Page,
		})
	}
	if state.Page > 1 {
		prev := catalog.Reduce(state, catalog.SetPage{Page: state.Page - 1})
		view.PrevHref = catalog.CanonicalPath("/products", prev)
		view.PrevFragment = catalog.CanonicalPath("/products/grid", prev)
	}
	if state.Page < view.TotalPages {
		next := catalog.Reduce(state, catalog.SetPage{Page: state.Page + 1})
		view.NextHref = catalog.CanonicalPath("/products", next)
		view.NextFragment = catalog.CanonicalPath("/products/grid", next)
	}
	return view
}

// rememberQuery keeps the visitor's latest listing query in the session so
// the home page can offer a resume link. The default state clears it.
func (s *Server) rememberQuery(w http.ResponseWriter, sess *middleware.Session, state catalog.FilterState) {
	if state.IsDefault() {
		sess.SetLastQuery("")
	} else {
		sess.SetLastQuery(catalog.Encode(state).Encode())
	}
	sess.Save(w)
}

func requestPath(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + r.URL.RawQuery
}

func formInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
