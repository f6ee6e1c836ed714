package middleware

import (
	"net/http"
)

// HTMX marks requests coming from htmx so handlers can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireHTMX rejects direct navigation to fragment routes with 404 so
// they never render as bare pages.
func RequireHTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("HX-Request") != "true" {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
