// Package api implements the folio read-only JSON API using chi.
package api

import (
	"net/http"
	"strings"

	"github.com/starford/folio/internal/catalog"
)

// RequireCatalog answers 503 until a catalog snapshot has been stored.
func RequireCatalog(h *catalog.Holder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.Load() == nil {
				writeProblem(w, http.StatusServiceUnavailable, "catalog not loaded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CatalogETag tags GET responses with the snapshot version and answers
// 304 when the client already holds it. Responses only change when the
// catalog is rebuilt.
func CatalogETag(h *catalog.Holder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := h.Load()
			if c == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			opaque := `"` + c.Version() + `"`
			w.Header().Set("ETag", "W/"+opaque)
			if matchETag(r.Header.Get("If-None-Match"), opaque) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// matchETag applies the weak comparison of If-None-Match: the W/ prefix
// is ignored on both sides.
func matchETag(header, opaque string) bool {
	for cand := range strings.SplitSeq(header, ",") {
		cand = strings.TrimPrefix(strings.TrimSpace(cand), "W/")
		if cand == opaque || cand == "*" {
			return true
		}
	}
	return false
}
