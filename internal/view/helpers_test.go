package view

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/testutil"
)

var shippedCategories = []catalog.Category{
	{Name: "unity-projects", Title: "Unity Projects"},
	{Name: "blender-projects", Title: "3D Art", Platformless: true},
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func shippedTemplates(t *testing.T) *Templates {
	t.Helper()
	tpl, err := LoadTemplates(context.Background(), testutil.Fetcher(t, testutil.ShippedContent(t)), "views")
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	return tpl
}

func shippedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	l := &catalog.Loader{
		Fetcher:    testutil.Fetcher(t, testutil.ShippedContent(t)),
		Categories: shippedCategories,
		Logger:     testLogger(),
	}
	c, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

// templatesWith replaces one shipped template source.
func templatesWith(t *testing.T, name, src string) *Templates {
	t.Helper()
	base := shippedTemplates(t)
	sources := map[string]string{}
	for _, n := range append(Required, TplLightbox) {
		sources[n] = base.Source(n)
	}
	sources[name] = src
	tpl, err := ParseTemplates(sources)
	if err != nil {
		t.Fatalf("ParseTemplates: %v", err)
	}
	return tpl
}

func numberedProjects(category string, n int) []models.Project {
	out := make([]models.Project, 0, n)
	for i := range n {
		id := fmt.Sprintf("%s-%d", category, i)
		out = append(out, models.Project{
			ID:         id,
			Category:   category,
			Title:      fmt.Sprintf("Project %02d", i),
			DevEndDate: models.Date(fmt.Sprintf("01-01-%d", 2010+i)),
			Platforms:  []string{"Windows"},
			ConfigPath: category + "/" + id + "/project.json",
			BaseDir:    category + "/" + id + "/",
		})
	}
	return out
}
