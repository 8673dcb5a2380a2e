// Package catalog aggregates per-category project descriptors into one
// immutable, in-memory collection.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// Category is one top-level grouping of projects.
type Category struct {
	Name         string `yaml:"name" json:"name"`
	Title        string `yaml:"title" json:"title"`
	Manifest     string `yaml:"manifest" json:"-"`
	Platformless bool   `yaml:"platformless" json:"platformless"`
}

// ManifestPath returns the manifest location, defaulting to
// <name>/manifest.json.
func (c Category) ManifestPath() string {
	if c.Manifest != "" {
		return c.Manifest
	}
	return c.Name + "/manifest.json"
}

// Catalog is a write-once snapshot of every loaded descriptor. Callers
// must treat returned projects as read-only.
type Catalog struct {
	projects   []models.Project
	byID       map[string]int
	byPath     map[string]int
	categories []Category
	version    string
}

// New builds a catalog from already-loaded descriptors, in order. Ids must
// be unique across the whole catalog.
func New(categories []Category, projects []models.Project) (*Catalog, error) {
	c := &Catalog{
		projects:   slices.Clone(projects),
		byID:       make(map[string]int, len(projects)),
		byPath:     make(map[string]int, len(projects)),
		categories: slices.Clone(categories),
	}
	h := sha256.New()
	enc := json.NewEncoder(h)
	for i, p := range c.projects {
		if prev, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: %w: %q in %s and %s",
				apperr.ErrDuplicateID, p.ID, c.projects[prev].Category, p.Category)
		}
		c.byID[p.ID] = i
		if p.ConfigPath != "" {
			c.byPath[p.ConfigPath] = i
		}
		if err := enc.Encode(p); err != nil {
			return nil, fmt.Errorf("catalog: version %q: %w", p.ID, err)
		}
	}
	c.version = hex.EncodeToString(h.Sum(nil))[:16]
	return c, nil
}

// Len returns the number of projects.
func (c *Catalog) Len() int { return len(c.projects) }

// All returns every project in load order.
func (c *Catalog) All() []models.Project {
	return slices.Clone(c.projects)
}

// ByID looks a project up by id.
func (c *Catalog) ByID(id string) (models.Project, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Project{}, false
	}
	return c.projects[i], true
}

// ByConfigPath looks a project up by its derived descriptor path.
func (c *Catalog) ByConfigPath(path string) (models.Project, bool) {
	i, ok := c.byPath[path]
	if !ok {
		return models.Project{}, false
	}
	return c.projects[i], true
}

// InCategory returns the projects of one category in load order.
func (c *Catalog) InCategory(name string) []models.Project {
	var out []models.Project
	for _, p := range c.projects {
		if p.Category == name {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the configured categories, including ones that
// failed to load.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// Category returns the named category.
func (c *Catalog) Category(name string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Version is a short digest of every descriptor, usable as an ETag.
func (c *Catalog) Version() string { return c.version }

// Holder publishes the current catalog snapshot to concurrent readers.
// Snapshots are swapped whole, never mutated.
type Holder struct {
	cur atomic.Pointer[Catalog]
}

// Load returns the current snapshot, or nil before the first Store.
func (h *Holder) Load() *Catalog { return h.cur.Load() }

// Store replaces the current snapshot.
func (h *Holder) Store(c *Catalog) { h.cur.Store(c) }

// Swap replaces the current snapshot and returns the previous one.
func (h *Holder) Swap(c *Catalog) *Catalog { return h.cur.Swap(c) }
