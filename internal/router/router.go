package router

import (
	"context"
	"log/slog"
	"sync"
)

// Viewport is the scroll surface of the page.
type Viewport interface {
	ScrollTop()
	// ScrollTo moves to the element with the given id and reports
	// whether it exists.
	ScrollTo(anchor string) bool
}

// Stopper is a recurring activity that must not outlive its view.
type Stopper interface {
	Stop()
}

// Handler renders the view for an intent. ctx is cancelled as soon as
// the router transitions again.
type Handler func(ctx context.Context, in Intent) error

// Router is the long-lived navigation state machine. Every Navigate is a
// transition: timers registered with Track are stopped, the previous
// render's context is cancelled, the viewport is reset and the handler
// runs for the new intent.
type Router struct {
	handler  Handler
	viewport Viewport
	logger   *slog.Logger

	// nav serializes transitions; mu guards the fields below it.
	nav     sync.Mutex
	mu      sync.Mutex
	base    context.Context
	current Intent
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
	timers  []Stopper
	wg      sync.WaitGroup
}

// New creates a Router. base bounds every render context.
func New(base context.Context, h Handler, vp Viewport, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		handler:  h,
		viewport: vp,
		logger:   logger,
		base:     base,
	}
}

// Current returns the intent of the last transition.
func (r *Router) Current() (Intent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.started
}

// Track registers a timer to be stopped on the next transition.
func (r *Router) Track(s Stopper) {
	r.mu.Lock()
	r.timers = append(r.timers, s)
	r.mu.Unlock()
}

// Navigate parses fragment and transitions to it.
func (r *Router) Navigate(fragment string) (Intent, error) {
	in := Parse(fragment)

	r.nav.Lock()
	defer r.nav.Unlock()

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
	ctx, cancel := context.WithCancel(r.base)
	r.ctx, r.cancel = ctx, cancel
	r.current = in
	r.started = true
	r.mu.Unlock()

	if in.Anchor == "" && r.viewport != nil {
		r.viewport.ScrollTop()
	}

	r.logger.Debug("router: transition",
		slog.String("kind", string(in.Kind)),
		slog.String("fragment", in.Fragment()))

	if err := r.handler(ctx, in); err != nil {
		r.logger.Warn("router: render failed",
			slog.String("fragment", in.Fragment()),
			slog.String("error", err.Error()))
		return in, err
	}

	if in.Anchor != "" && r.viewport != nil {
		if !r.viewport.ScrollTo(in.Anchor) {
			r.viewport.ScrollTop()
		}
	}
	return in, nil
}

// Go runs fn in the background under the current render context. The
// context is cancelled by the next transition.
func (r *Router) Go(fn func(ctx context.Context)) {
	r.mu.Lock()
	ctx := r.ctx
	if ctx == nil {
		ctx = r.base
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		fn(ctx)
	}()
}

// Wait blocks until every function started with Go has returned.
func (r *Router) Wait() {
	r.wg.Wait()
}

// Close cancels the current render and stops tracked timers.
func (r *Router) Close() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
	r.mu.Unlock()
	r.wg.Wait()
}
