package internal

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/watch"
)

// newServeHandler builds the HTTP surface of `serve`: health checks, the
// JSON API with its event stream, and the static content tree.
func newServeHandler(contentRoot string, holder *catalog.Holder, svc *api.Service, broker *sse.Broker, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if holder.Load() == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"loading"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc, holder, broker, logger))

	// The content tree exactly as a static host would serve it.
	r.Handle("/content/*", http.StripPrefix("/content/", http.FileServer(http.Dir(contentRoot))))

	return r
}

// reloader rebuilds the catalog after content changes. A failed rebuild
// keeps the previous snapshot.
func reloader(loader *catalog.Loader, holder *catalog.Holder, broker *sse.Broker, logger *slog.Logger) watch.Callback {
	return func(ctx context.Context, changed []string) {
		c, err := loader.Load(ctx)
		if err != nil {
			logger.Warn("reload failed, keeping previous catalog",
				slog.Int("changes", len(changed)),
				slog.String("error", err.Error()))
			broker.PublishReloadFailed(err)
			return
		}
		// README edits leave the version alone but are still announced,
		// since clients re-fetch long-form content on any reload.
		prev := holder.Swap(c)
		logger.Info("reload: catalog swapped",
			slog.String("version", c.Version()),
			slog.Bool("descriptors_changed", prev == nil || prev.Version() != c.Version()),
			slog.Int("projects", c.Len()),
			slog.Int("changes", len(changed)))
		broker.PublishReload(sse.Reload{Version: c.Version(), Projects: c.Len(), Changed: changed})
	}
}
