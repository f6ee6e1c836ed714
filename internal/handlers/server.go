package handlers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"laraibcreative.com/store-web/internal/blog"
	"laraibcreative.com/store-web/internal/cart"
	"laraibcreative.com/store-web/internal/catalog"
	"laraibcreative.com/store-web/internal/grid"
	"laraibcreative.com/store-web/internal/middleware"
	"laraibcreative.com/store-web/internal/nav"
	"laraibcreative.com/store-web/internal/seo"
)

// Server bundles the storefront's handler dependencies.
type Server struct {
	log       *zap.Logger
	render    *Renderer
	catalog   catalog.Service
	grid      *grid.Registry
	cart      *cart.Client
	blog      *blog.Store
	analytics Analytics
}

// NewServer wires the handler set.
func NewServer(log *zap.Logger, render *Renderer, svc catalog.Service, registry *grid.Registry, cartClient *cart.Client, blogStore *blog.Store) *Server {
	return &Server{
		log:       log,
		render:    render,
		catalog:   svc,
		grid:      registry,
		cart:      cartClient,
		blog:      blogStore,
		analytics: LoadAnalyticsFromEnv(),
	}
}

// Routes mounts the storefront routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Home)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.Products)
		r.With(middleware.RequireHTMX).Get("/grid", s.ProductsGrid)
		r.Post("/apply", s.ProductsApply)
		r.Get("/{slug}", s.ProductDetail)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.Cart)
		r.With(middleware.RequireHTMX).Get("/badge", s.CartBadge)
		r.Post("/items", s.CartAdd)
		r.Post("/items/{itemID}/remove", s.CartRemove)
	})

	r.Route("/blog", func(r chi.Router) {
		r.Get("/", s.BlogIndex)
		r.Get("/{slug}", s.BlogPost)
	})
}

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
	Debug            bool
}

// LoadAnalyticsFromEnv builds Analytics from environment variables.
func LoadAnalyticsFromEnv() Analytics {
	return Analytics{
		GA4MeasurementID: os.Getenv("STORE_GA_MEASUREMENT_ID"),
		GTMContainerID:   os.Getenv("STORE_GTM_CONTAINER_ID"),
		Debug:            os.Getenv("STORE_ANALYTICS_DEBUG") != "",
	}
}

// Layout carries the fields every page shares.
type Layout struct {
	Title       string
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Meta        seo.Meta
	Analytics   Analytics
	CartCount   int
	ResumeHref  string
	CSRFToken   string
}

func (s *Server) layout(r *http.Request, title string) Layout {
	sess := middleware.GetSession(r)
	l := Layout{
		Title:       title,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		Meta:        seo.Meta{Title: title},
		Analytics:   s.analytics,
		CSRFToken:   sess.CSRFToken(),
	}
	if q := sess.LastQuery(); q != "" {
		l.ResumeHref = "/products?" + q
	}
	if summary, err := s.cart.Summary(r.Context(), sess.CartID()); err == nil {
		l.CartCount = summary.Count
	}
	return l
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Layout
	}{Layout: s.layout(r, "Not found")}
	s.render.HTML(w, http.StatusNotFound, "not_found", data)
}
