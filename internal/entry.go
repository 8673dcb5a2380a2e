// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/fetch"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/site"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/watch"
)

var (
	errNoConfig      = errors.New("config is required")
	errNoContentRoot = errors.New("serve needs content.root")
)

// RunServe hosts the content tree and the read-only JSON API until ctx is
// cancelled or a shutdown signal arrives.
func RunServe(ctx context.Context, opts ...Option) error {
	app := newApplication(os.Stdout, opts...)
	if app.config == nil {
		return errNoConfig
	}
	cfg, logger := app.config, app.logger
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_root", cfg.Content.Root),
		slog.Int("categories", len(cfg.Content.Categories)),
		slog.Bool("watch", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	if cfg.Content.Root == "" {
		return errNoContentRoot
	}
	store, err := storage.NewFS(cfg.Content.Root)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	fetcher := fetch.NewStore(store)

	loader := &catalog.Loader{Fetcher: fetcher, Categories: cfg.Content.Categories, Logger: logger}
	holder := &catalog.Holder{}

	// Initial load. The server still starts on failure; readiness
	// reports 503 and a later content fix is picked up by the watcher.
	if c, err := loader.Load(ctx); err != nil {
		logger.Warn("initial catalog load failed", slog.String("error", err.Error()))
	} else {
		holder.Store(c)
	}

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	svc := api.NewService(holder, fetcher, cfg.Gallery.PageSize)
	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newServeHandler(store.Root(), holder, svc, broker, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher with reload callback.
	if cfg.Watch.Enabled {
		g.Go(func() error {
			if err := watch.Watch(gCtx, store.Root(), cfg.Watch.Debounce, logger, reloader(loader, holder, broker, logger)); err != nil {
				logger.Error("watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// Closing the broker ends open event streams so Shutdown can finish.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// newFetcher picks the HTTP fetcher when a base URL is configured and the
// local content root otherwise.
func newFetcher(cfg *Config) (fetch.Fetcher, error) {
	if cfg.Content.BaseURL != "" {
		return fetch.NewHTTP(cfg.Content.BaseURL, cfg.Content.Timeout)
	}
	store, err := storage.NewFS(cfg.Content.Root)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return fetch.NewStore(store), nil
}

// RunBrowse runs the portfolio in a terminal: it loads the site, opens
// the initial route and then executes shell commands read from the input
// stream until EOF or quit.
func RunBrowse(ctx context.Context, opts ...Option) error {
	app := newApplication(os.Stderr, opts...)
	if app.config == nil {
		return errNoConfig
	}
	cfg, logger := app.config, app.logger

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	s := site.New(ctx, cfg.Site(), fetcher, logger)
	defer s.Close()

	sh := &site.Shell{Site: s, Out: app.out, Echo: true}
	if err := s.Load(ctx); err != nil {
		sh.Show()
		return err
	}
	if _, err := s.Navigate(app.route); err != nil {
		logger.Warn("initial route failed", slog.String("route", app.route), slog.String("error", err.Error()))
	}
	sh.Show()

	return sh.Run(ctx, app.in)
}

// RunMCP serves the read-only catalog tools over MCP on the configured
// streams.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := newApplication(os.Stderr, opts...)
	if app.config == nil {
		return errNoConfig
	}
	cfg, logger := app.config, app.logger

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	holder := &catalog.Holder{}
	loader := &catalog.Loader{Fetcher: fetcher, Categories: cfg.Content.Categories, Logger: logger}
	if c, err := loader.Load(ctx); err != nil {
		// Tools answer "catalog not loaded" rather than the server refusing to start.
		logger.Warn("catalog load failed", slog.String("error", err.Error()))
	} else {
		holder.Store(c)
	}

	srv := mcpserver.New(api.NewService(holder, fetcher, cfg.Gallery.PageSize), app.version)
	logger.Info("MCP server listening on stdio")
	return srv.Serve(ctx, app.in, app.out)
}
