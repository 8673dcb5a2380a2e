package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/catalog"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events; it stays reachable
// before the first catalog load so clients can wait for one.
func NewRouter(svc *Service, h *catalog.Holder, sseHandler http.Handler, logger *slog.Logger) chi.Router {
	hd := NewHandler(svc, logger)

	r := chi.NewRouter()

	// Stateless helpers.
	r.Get("/route", hd.ParseRoute)
	r.Get("/media", hd.ClassifyMedia)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	// Catalog queries.
	r.Group(func(r chi.Router) {
		r.Use(RequireCatalog(h))
		r.Use(CatalogETag(h))
		r.Get("/categories", hd.ListCategories)
		r.Get("/categories/{category}/projects", hd.ListProjects)
		r.Get("/projects/{id}", hd.GetProject)
	})

	// Long-form content can change without a catalog rebuild.
	r.Group(func(r chi.Router) {
		r.Use(RequireCatalog(h))
		r.Get("/projects/{id}/content", hd.GetContent)
	})

	return r
}
