// Package testutil provides shared test helpers for building content trees.
package testutil

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/starford/folio/internal/fetch"
	"github.com/starford/folio/internal/storage"
)

// ShippedContent returns the repository's own content directory.
func ShippedContent(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("testutil: cannot locate source file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "content")
}

// TestContent creates an empty content root with a storage.Provider.
func TestContent(t *testing.T) (string, storage.Provider) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}

// Fetcher serves root through the storage-backed fetcher.
func Fetcher(t *testing.T, root string) fetch.Fetcher {
	t.Helper()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return fetch.NewStore(store)
}

// WriteFile writes data at the slash-separated path rel under root.
func WriteFile(t *testing.T, root, rel, data string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

// WriteJSON marshals v to rel under root.
func WriteJSON(t *testing.T, root, rel string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	WriteFile(t, root, rel, string(data))
}

// CopyViews copies the shipped view templates into root/views.
func CopyViews(t *testing.T, root string) {
	t.Helper()
	src := filepath.Join(ShippedContent(t), "views")
	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		WriteFile(t, root, "views/"+e.Name(), string(data))
	}
}

// Descriptor is a minimal authored project descriptor.
type Descriptor struct {
	Title         string              `json:"title"`
	Tagline       string              `json:"tagline,omitempty"`
	DevEndDate    string              `json:"devEndDate,omitempty"`
	Platforms     []string            `json:"platforms"`
	TechStack     []string            `json:"techStack"`
	Features      []string            `json:"features,omitempty"`
	PreviewImage  string              `json:"previewImage"`
	Media         []map[string]string `json:"media"`
	ExternalLinks []map[string]string `json:"externalLinks"`
}

// WriteCategory writes a manifest for category plus one descriptor and
// README per project, keyed by id.
func WriteCategory(t *testing.T, root, category string, projects map[string]Descriptor) {
	t.Helper()
	type entry struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	}
	var manifest []entry
	for _, id := range slices.Sorted(maps.Keys(projects)) {
		d := projects[id]
		manifest = append(manifest, entry{ID: id, Path: "./" + id + "/project.json"})
		WriteJSON(t, root, category+"/"+id+"/project.json", d)
		WriteFile(t, root, category+"/"+id+"/README.md", "# "+d.Title+"\n\nAbout "+id+".\n")
	}
	WriteJSON(t, root, category+"/manifest.json", manifest)
}
