package api

import (
	"context"
	"fmt"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/fetch"
	"github.com/starford/folio/internal/gallery"
	"github.com/starford/folio/internal/media"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/parser"
	"github.com/starford/folio/internal/router"
	"github.com/starford/folio/internal/view"
)

// Service answers API queries against the current catalog snapshot.
type Service struct {
	catalogs *catalog.Holder
	fetcher  fetch.Fetcher
	md       *view.Markdown
	pageSize int
}

// NewService creates a service reading snapshots from h and long-form
// content through f.
func NewService(h *catalog.Holder, f fetch.Fetcher, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = gallery.DefaultPageSize
	}
	return &Service{catalogs: h, fetcher: f, md: view.NewMarkdown(), pageSize: pageSize}
}

// Snapshot returns the current catalog or apperr.ErrNoCatalog before the
// first successful load.
func (s *Service) Snapshot() (*catalog.Catalog, error) {
	c := s.catalogs.Load()
	if c == nil {
		return nil, apperr.ErrNoCatalog
	}
	return c, nil
}

// Categories lists the loaded categories in configuration order.
func (s *Service) Categories() (*CategoryListResponse, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	out := &CategoryListResponse{Categories: []CategorySummary{}, Version: c.Version()}
	for _, cat := range c.Categories() {
		out.Categories = append(out.Categories, CategorySummary{
			Name:         cat.Name,
			Title:        cat.Title,
			Platformless: cat.Platformless,
			Projects:     len(c.InCategory(cat.Name)),
		})
	}
	return out, nil
}

// Projects runs the gallery pipeline for category.
func (s *Service) Projects(category string, st gallery.State) (*ProjectPage, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	cat, ok := c.Category(category)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", category, apperr.ErrNotFound)
	}
	res := gallery.Apply(c.All(), cat.Name, st, gallery.Options{PageSize: s.pageSize, Platformless: cat.Platformless})
	return &ProjectPage{
		Category: cat.Name,
		State:    st.WithPage(res.Page),
		Items:    res.Items,
		Page:     res.Page,
		Pages:    res.TotalPages,
		Total:    res.Total,
		Filters:  gallery.OptionsFor(c.All(), cat.Name, cat.Platformless),
	}, nil
}

// Project returns one descriptor by id.
func (s *Service) Project(id string) (models.Project, error) {
	c, err := s.Snapshot()
	if err != nil {
		return models.Project{}, err
	}
	p, ok := c.ByID(id)
	if !ok {
		return models.Project{}, fmt.Errorf("project %q: %w", id, apperr.ErrNotFound)
	}
	return p, nil
}

// Readme returns a project's raw long-form Markdown.
func (s *Service) Readme(ctx context.Context, id string) ([]byte, error) {
	p, err := s.Project(id)
	if err != nil {
		return nil, err
	}
	return s.fetcher.Fetch(ctx, p.BaseDir+view.ReadmeName)
}

// Content renders a project's README to HTML.
func (s *Service) Content(ctx context.Context, id string) (*ProjectContent, error) {
	data, err := s.Readme(ctx, id)
	if err != nil {
		return nil, err
	}
	html, err := s.md.Render(data)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", id, err)
	}
	return &ProjectContent{ID: id, Title: parser.Parse(data).Title, HTML: string(html)}, nil
}

// Route parses a location fragment.
func Route(fragment string) RouteResponse {
	in := router.Parse(fragment)
	return RouteResponse{Intent: in, Fragment: in.Fragment()}
}

// Media classifies a media URL.
func Media(raw string) MediaResponse {
	out := MediaResponse{URL: raw, Type: media.Classify(raw)}
	if out.Type == media.Video {
		out.EmbedURL = media.ToEmbeddable(raw)
		if thumb, ok := media.AutoThumbnail(raw); ok {
			out.Thumbnail = thumb
		}
	}
	return out
}
