package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"laraibcreative.com/store-web/internal/catalog"
	"laraibcreative.com/store-web/internal/seo"
)

const featuredCount = 4

// Testimonial is a customer quote shown on the landing page.
type Testimonial struct {
	Quote  string
	Author string
	City   string
}

var testimonials = []Testimonial{
	{
		Quote:  "The lawn suit arrived before Eid and the print is even brighter in person.",
		Author: "Mehwish A.",
		City:   "Lahore",
	},
	{
		Quote:  "Ordered the maroon lehenga for my sister's walima. Stitching was flawless.",
		Author: "Sana R.",
		City:   "Karachi",
	},
	{
		Quote:  "Third order this year. The silk gowns drape beautifully and sizing is true.",
		Author: "Hira K.",
		City:   "Islamabad",
	},
}

// HomeData is the view model for the landing page.
type HomeData struct {
	Layout
	Featured     []catalog.Product
	Testimonials []Testimonial
}

// Home renders the landing page with a handful of popular products and,
// when the visitor browsed before, a link back to their last listing.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	layout := s.layout(r, "Laraib Creative")
	layout.Meta = seo.Meta{
		Title:       "Laraib Creative – Pakistani Apparel",
		Description: "Unstitched and ready-to-wear Pakistani apparel in lawn, silk, chiffon and more.",
		Canonical:   "/",
		JSONLD:      []string{seo.JSON(seo.Organization("Laraib Creative", "/", ""))},
	}

	state := catalog.DefaultFilterState()
	state.Sort = catalog.SortPopular
	state.Limit = featuredCount
	result, err := s.catalog.List(r.Context(), state)
	if err != nil {
		// The landing page still renders without the featured row.
		s.log.Warn("featured products", zap.Error(err))
	}

	s.render.HTML(w, http.StatusOK, "home", HomeData{
		Layout:       layout,
		Featured:     result.Products,
		Testimonials: testimonials,
	})
}
