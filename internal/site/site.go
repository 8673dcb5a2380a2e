// Package site is the application state container: it owns the catalog
// snapshot, the view templates, the regions and the router, and turns
// navigation and user events into renders.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/fetch"
	"github.com/starford/folio/internal/gallery"
	"github.com/starford/folio/internal/router"
	"github.com/starford/folio/internal/view"
)

// ErrFatal marks a site that failed to start; it only shows the fatal
// message from then on.
var ErrFatal = errors.New("site: fatal startup failure")

// Config is what the site needs from the application config.
type Config struct {
	Categories    []catalog.Category
	ViewsDir      string
	PageSize      int
	SlideInterval time.Duration
	PausePolicy   view.PausePolicy
}

// Site is one running instance of the portfolio.
type Site struct {
	cfg     Config
	fetcher fetch.Fetcher
	logger  *slog.Logger
	md      *view.Markdown

	main      *view.MemRegion
	quickLook *view.QuickLook
	lightbox  *view.Lightbox
	viewport  *view.Viewport
	router    *router.Router

	mu       sync.Mutex
	catalog  *catalog.Catalog
	tpl      *view.Templates
	fatal    error
	category string
	states   map[string]gallery.State
	slider   *view.Slider
}

// New creates a site that loads its content through f. Nothing is
// fetched until Load.
func New(ctx context.Context, cfg Config, f fetch.Fetcher, logger *slog.Logger) *Site {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = gallery.DefaultPageSize
	}
	s := &Site{
		cfg:     cfg,
		fetcher: f,
		logger:  logger,
		md:      view.NewMarkdown(),
		main:    view.NewRegion("main"),
		states:  make(map[string]gallery.State),
	}
	s.viewport = view.NewViewport(s.main)
	s.router = router.New(ctx, s.render, s.viewport, logger)
	return s
}

// Load fetches the catalog and the view templates concurrently. If every
// category fails or any required template is missing, the site enters
// the fatal state, shows the fatal message and returns an error
// matching ErrFatal.
func (s *Site) Load(ctx context.Context) error {
	var (
		cat *catalog.Catalog
		tpl *view.Templates
	)
	var g errgroup.Group
	g.Go(func() error {
		l := &catalog.Loader{Fetcher: s.fetcher, Categories: s.cfg.Categories, Logger: s.logger}
		var err error
		cat, err = l.Load(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		tpl, err = view.LoadTemplates(ctx, s.fetcher, s.cfg.ViewsDir)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fatal = fmt.Errorf("%w: %w", ErrFatal, err)
		s.logger.Error("site: startup failed", slog.String("error", err.Error()))
		view.RenderFatal(s.main)
		return s.fatal
	}
	s.catalog, s.tpl = cat, tpl
	s.quickLook = view.NewQuickLook(view.NewRegion("quick-look"), tpl)
	s.lightbox = view.NewLightbox(view.NewRegion("lightbox"), tpl)
	return nil
}

// Err returns the fatal startup error, if any.
func (s *Site) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fatal
}

// Catalog returns the loaded snapshot, nil before Load succeeds.
func (s *Site) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// Navigate transitions to fragment. Render failures are shown in the
// main region and also returned.
func (s *Site) Navigate(fragment string) (router.Intent, error) {
	return s.router.Navigate(fragment)
}

// Current returns the intent of the last navigation.
func (s *Site) Current() (router.Intent, bool) {
	return s.router.Current()
}

// Wait blocks until background renders have finished.
func (s *Site) Wait() { s.router.Wait() }

// Close stops timers and background renders.
func (s *Site) Close() { s.router.Close() }

// Main is the region holding the current view.
func (s *Site) Main() view.Region { return s.main }

// Viewport reports the scroll position of the main region.
func (s *Site) Viewport() *view.Viewport { return s.viewport }

// QuickLook returns the quick look overlay, nil before Load.
func (s *Site) QuickLook() *view.QuickLook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quickLook
}

// Lightbox returns the lightbox overlay, nil before Load.
func (s *Site) Lightbox() *view.Lightbox {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lightbox
}

// GalleryState returns the remembered filter selection of a category.
func (s *Site) GalleryState(category string) gallery.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[category]; ok {
		return st
	}
	return gallery.DefaultState()
}

// Dispatch delivers a user event to the top-most surface: the lightbox,
// then the quick look, then the main region.
func (s *Site) Dispatch(ev view.Event) error {
	if s.Err() != nil {
		return s.Err()
	}
	for _, m := range []*view.Modal{s.lightboxModal(), s.quickLookModal()} {
		if m != nil && m.IsOpen() {
			return m.Region().Dispatch(ev)
		}
	}
	return s.main.Dispatch(ev)
}

// Escape closes the top-most open overlay and reports whether one was
// open.
func (s *Site) Escape() bool {
	for _, m := range []*view.Modal{s.lightboxModal(), s.quickLookModal()} {
		if m != nil && m.Escape() {
			return true
		}
	}
	return false
}

// OpenQuickLook previews a project by id.
func (s *Site) OpenQuickLook(id string) error {
	s.mu.Lock()
	cat, q := s.catalog, s.quickLook
	s.mu.Unlock()
	if cat == nil {
		return apperr.ErrNoCatalog
	}
	p, ok := cat.ByID(id)
	if !ok {
		return fmt.Errorf("site: quick look %q: %w", id, apperr.ErrNotFound)
	}
	return q.Open(p)
}

// Overlays returns the open overlays' regions, top-most last.
func (s *Site) Overlays() []view.Region {
	var out []view.Region
	for _, m := range []*view.Modal{s.quickLookModal(), s.lightboxModal()} {
		if m != nil && m.IsOpen() {
			out = append(out, m.Region())
		}
	}
	return out
}

func (s *Site) quickLookModal() *view.Modal {
	if q := s.QuickLook(); q != nil {
		return q.Modal
	}
	return nil
}

func (s *Site) lightboxModal() *view.Modal {
	if l := s.Lightbox(); l != nil {
		return l.Modal
	}
	return nil
}

// render is the router's handler.
func (s *Site) render(ctx context.Context, in router.Intent) error {
	s.mu.Lock()
	fatal, cat, tpl := s.fatal, s.catalog, s.tpl
	s.slider = nil
	s.mu.Unlock()

	if fatal != nil || cat == nil {
		view.RenderFatal(s.main)
		return nil
	}
	if m := s.quickLookModal(); m != nil {
		m.Close()
	}
	if m := s.lightboxModal(); m != nil {
		m.Close()
	}

	switch in.Kind {
	case router.KindLanding:
		return s.renderLanding(cat, tpl)
	case router.KindGallery:
		return s.renderGallery(cat, tpl, in.Category)
	case router.KindDetail:
		return s.renderDetail(cat, tpl, in.ProjectID)
	default:
		view.RenderPlaceholder(s.main, in)
		return nil
	}
}

func (s *Site) renderLanding(cat *catalog.Catalog, tpl *view.Templates) error {
	// Listeners resolve the slider lazily; it starts after the first
	// render so it never writes before the landing owns the region.
	ctl := func(fn func(*view.Slider)) func(view.Event) error {
		return func(view.Event) error {
			if sl := s.Slider(); sl != nil {
				fn(sl)
			}
			return nil
		}
	}

	data := view.BuildLanding(tpl, cat)
	var listeners []view.Listener
	if data.HasSlider() {
		listeners = []view.Listener{
			{Action: "slider-next", Handle: ctl((*view.Slider).Next)},
			{Action: "slider-prev", Handle: ctl((*view.Slider).Prev)},
			{Action: "slider-enter", Handle: ctl((*view.Slider).HoverEnter)},
			{Action: "slider-leave", Handle: ctl((*view.Slider).HoverLeave)},
			{Action: "cta-enter", Handle: ctl((*view.Slider).CTAEnter)},
			{Action: "cta-leave", Handle: ctl((*view.Slider).CTALeave)},
			{Action: "slider-goto", Handle: func(ev view.Event) error {
				i, err := strconv.Atoi(ev.Value)
				if err != nil {
					return fmt.Errorf("site: slide index %q", ev.Value)
				}
				if sl := s.Slider(); sl != nil {
					sl.Goto(i)
				}
				return nil
			}},
		}
	}

	landing := view.NewLanding(s.main, tpl, data, listeners...)
	if _, err := landing.Render(); err != nil {
		return s.renderError(err)
	}
	if !data.HasSlider() {
		return nil
	}

	slider := view.NewSlider(landing.Slides(), s.cfg.SlideInterval, s.cfg.PausePolicy, func(i int) {
		if err := landing.ShowSlide(i); err != nil && !errors.Is(err, view.ErrStale) {
			s.logger.Warn("site: slide render failed", slog.String("error", err.Error()))
		}
	})
	s.router.Track(slider)
	s.mu.Lock()
	s.slider = slider
	s.mu.Unlock()
	return nil
}

// Slider returns the landing slider while the landing page is showing.
func (s *Site) Slider() *view.Slider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slider
}

func (s *Site) renderGallery(cat *catalog.Catalog, tpl *view.Templates, name string) error {
	s.mu.Lock()
	if name == "" {
		name = s.category
	}
	if name == "" && len(s.cfg.Categories) > 0 {
		name = s.cfg.Categories[0].Name
	}
	s.mu.Unlock()

	c, ok := cat.Category(name)
	if !ok {
		view.RenderMessage(s.main, view.MsgNoCategory)
		return nil
	}
	if c.Title == "" {
		c.Title = c.Name
	}

	s.mu.Lock()
	s.category = name
	s.mu.Unlock()

	g := view.NewGallery(s.main, tpl, c, cat.Categories(), cat.All(), s.GalleryState(name), s.cfg.PageSize, view.GalleryHandlers{
		OnState: func(st gallery.State) {
			s.mu.Lock()
			s.states[name] = st
			s.mu.Unlock()
		},
		OnQuickLook: s.OpenQuickLook,
	})
	if _, err := g.Render(); err != nil {
		return s.renderError(err)
	}
	return nil
}

func (s *Site) renderDetail(cat *catalog.Catalog, tpl *view.Templates, id string) error {
	p, ok := cat.ByID(id)
	if !ok {
		view.RenderNotFound(s.main)
		return nil
	}

	lb := s.Lightbox()
	d := view.NewDetail(s.main, tpl, p, view.DetailHandlers{OnOpenMedia: lb.Open})
	if _, err := d.Render(); err != nil {
		return s.renderError(err)
	}

	s.router.Go(func(ctx context.Context) {
		err := d.LoadContent(ctx, s.fetcher, s.md)
		switch {
		case err == nil:
		case errors.Is(err, view.ErrStale), errors.Is(err, context.Canceled):
			s.logger.Debug("site: detail content discarded", slog.String("id", id))
		default:
			s.logger.Warn("site: detail content failed",
				slog.String("id", id),
				slog.String("path", d.ReadmePath()),
				slog.String("error", err.Error()))
		}
	})
	return nil
}

// renderError replaces the main region after a template failure.
func (s *Site) renderError(err error) error {
	view.RenderMessage(s.main, view.MsgRenderFailed)
	return err
}
