package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/fetch"
	"github.com/starford/folio/internal/models"
)

// descriptorFetchLimit bounds concurrent descriptor fetches per category.
const descriptorFetchLimit = 8

// Loader builds catalogs from a content source.
type Loader struct {
	Fetcher    fetch.Fetcher
	Categories []Category
	Logger     *slog.Logger
}

// Load fetches every category concurrently. A category whose manifest
// cannot be loaded contributes nothing; a descriptor that cannot be
// loaded is dropped alone. Load fails only when every category failed or
// ids collide.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([][]models.Project, len(l.Categories))
	errs := make([]error, len(l.Categories))

	var g errgroup.Group
	for i, cat := range l.Categories {
		g.Go(func() error {
			projects, err := l.loadCategory(ctx, cat, logger)
			if err != nil {
				logger.Warn("catalog: category failed",
					slog.String("category", cat.Name),
					slog.String("error", err.Error()))
				errs[i] = fmt.Errorf("category %s: %w", cat.Name, err)
				return nil
			}
			results[i] = projects
			return nil
		})
	}
	_ = g.Wait()

	var all []models.Project
	failed := 0
	for i := range l.Categories {
		if errs[i] != nil {
			failed++
			continue
		}
		all = append(all, results[i]...)
	}
	if len(l.Categories) == 0 || failed == len(l.Categories) {
		return nil, fmt.Errorf("catalog: %w", errors.Join(append([]error{apperr.ErrNoCatalog}, errs...)...))
	}

	c, err := New(l.Categories, all)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog: loaded",
		slog.Int("projects", c.Len()),
		slog.Int("failed_categories", failed),
		slog.String("version", c.Version()))
	return c, nil
}

func (l *Loader) loadCategory(ctx context.Context, cat Category, logger *slog.Logger) ([]models.Project, error) {
	manifestPath := cat.ManifestPath()
	var entries []models.ManifestEntry
	if err := fetch.JSON(ctx, l.Fetcher, manifestPath, &entries); err != nil {
		return nil, err
	}
	manifestDir := path.Dir(manifestPath)

	projects := make([]models.Project, len(entries))
	loaded := make([]bool, len(entries))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(descriptorFetchLimit)
	for i, entry := range entries {
		g.Go(func() error {
			p, err := l.loadDescriptor(gCtx, cat, manifestDir, entry)
			if err != nil {
				logger.Warn("catalog: descriptor dropped",
					slog.String("category", cat.Name),
					slog.String("id", entry.ID),
					slog.String("error", err.Error()))
				return nil
			}
			projects[i] = p
			loaded[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.Project, 0, len(entries))
	for i := range entries {
		if loaded[i] {
			out = append(out, projects[i])
		}
	}
	return out, nil
}

func (l *Loader) loadDescriptor(ctx context.Context, cat Category, manifestDir string, entry models.ManifestEntry) (models.Project, error) {
	loc := entry.Location()
	if err := validation.ValidateStruct(&entry,
		validation.Field(&entry.ID, validation.Required),
	); err != nil {
		return models.Project{}, err
	}
	if loc == "" {
		return models.Project{}, fmt.Errorf("manifest entry %q has no path", entry.ID)
	}

	configPath := path.Join(manifestDir, strings.TrimPrefix(loc, models.RelativeMarker))
	var p models.Project
	if err := fetch.JSON(ctx, l.Fetcher, configPath, &p); err != nil {
		return models.Project{}, err
	}

	p.ID = entry.ID
	p.Category = cat.Name
	p.ConfigPath = configPath
	p.BaseDir = path.Dir(configPath) + "/"
	return p, nil
}
