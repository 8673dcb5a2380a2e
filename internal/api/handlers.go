package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/gallery"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// urlParam returns a path parameter, tolerating percent-encoding from
// clients that escape ids.
func urlParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// writeError maps err to a status and JSON error body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		writeProblem(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrNoCatalog):
		writeProblem(w, http.StatusServiceUnavailable, "catalog not loaded")
	default:
		h.logger.Error("api: request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeProblem(w, http.StatusInternalServerError, "internal error")
	}
}

// ListCategories handles GET /api/categories.
//
//	@Summary	List configured categories with project counts
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	CategoryListResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Categories()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListProjects handles GET /api/categories/{category}/projects.
//
//	@Summary	Filter, sort and paginate the projects of a category
//	@Tags		catalog
//	@Produce	json
//	@Param		category	path		string	true	"Category name"
//	@Param		year		query		int		false	"End year, or 'all'"
//	@Param		platform	query		string	false	"Exact platform, or 'all'"
//	@Param		sort		query		string	false	"Sort order"	Enums(date-desc, date-asc, name-asc, name-desc)
//	@Param		q			query		string	false	"Search term"
//	@Param		page		query		int		false	"1-based page"
//	@Success	200			{object}	ProjectPage
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/categories/{category}/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	st, err := gallery.ParseState(r.URL.Query())
	if err != nil {
		writeProblem(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Projects(urlParam(r, "category"), st)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetProject handles GET /api/projects/{id}.
//
//	@Summary	Get one project descriptor
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		string	true	"Project id"
//	@Success	200	{object}	models.Project
//	@Failure	404	{object}	ErrorResponse
//	@Router		/projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Project(urlParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetContent handles GET /api/projects/{id}/content.
//
//	@Summary	Render a project's long-form description
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		string	true	"Project id"
//	@Success	200	{object}	ProjectContent
//	@Failure	404	{object}	ErrorResponse
//	@Router		/projects/{id}/content [get]
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Content(r.Context(), urlParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ParseRoute handles GET /api/route.
//
//	@Summary	Parse a location fragment into a route intent
//	@Tags		routing
//	@Produce	json
//	@Param		fragment	query		string	false	"Location fragment, e.g. #/project/x"
//	@Success	200			{object}	RouteResponse
//	@Router		/route [get]
func (h *Handler) ParseRoute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Route(r.URL.Query().Get("fragment")))
}

// ClassifyMedia handles GET /api/media.
//
//	@Summary	Classify a media URL and derive its embed and thumbnail URLs
//	@Tags		media
//	@Produce	json
//	@Param		url	query		string	true	"Media URL"
//	@Success	200	{object}	MediaResponse
//	@Failure	400	{object}	ErrorResponse
//	@Router		/media [get]
func (h *Handler) ClassifyMedia(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		writeProblem(w, http.StatusBadRequest, "query parameter 'url' is required")
		return
	}
	writeJSON(w, http.StatusOK, Media(raw))
}
