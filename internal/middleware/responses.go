package middleware

import (
	"fmt"
	"net/http"
)

// writeError reports a middleware rejection. Every htmx endpoint here
// swaps an HTML fragment, so the response tells htmx not to swap at all;
// a rejection must never clobber the region the action targeted.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("HX-Reswap", "none")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		fmt.Fprintln(w, msg)
		return
	}
	http.Error(w, msg, code)
}
