package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"maps"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/fetch"
)

// View template names. Each is loaded from <dir>/<name>.html.
const (
	TplLanding   = "landing"
	TplGallery   = "gallery"
	TplDetail    = "detail"
	TplQuickLook = "quick-look"
	TplFooter    = "footer"
	TplLightbox  = "lightbox"
)

// Required are the templates without which the site cannot start.
var Required = []string{TplLanding, TplGallery, TplDetail, TplQuickLook, TplFooter}

// Element ids of the configuration blobs embedded in the landing template.
const (
	LandingConfigID = "landing-config-data"
	FeaturedID      = "featured-projects-data"
)

const defaultLightbox = `<div id="lightbox" class="lightbox is-active" data-action="backdrop">
  <div class="lightbox-content">
    <span id="close-lightbox" class="close-btn" data-action="close">&times;</span>
    {{- if eq .Type "video"}}
    <iframe class="lightbox-media lightbox-video" src="{{.EmbedURL}}" frameborder="0" allow="autoplay; encrypted-media; picture-in-picture" allowfullscreen></iframe>
    {{- else}}
    <img class="lightbox-media" src="{{.URL}}" alt="{{.Alt}}">
    {{- end}}
  </div>
</div>
`

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Templates is the parsed set of view templates plus their raw sources,
// which hold the embedded configuration blobs.
type Templates struct {
	set     *template.Template
	sources map[string]string
}

// LoadTemplates fetches every view template from dir concurrently. Any
// required template that fails to load or parse fails the whole set. The
// lightbox template is optional and has a built-in default.
func LoadTemplates(ctx context.Context, f fetch.Fetcher, dir string) (*Templates, error) {
	sources := make([]string, len(Required))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range Required {
		g.Go(func() error {
			src, err := fetch.Text(gctx, f, path.Join(dir, name+".html"))
			if err != nil {
				return fmt.Errorf("view: template %s: %w", name, err)
			}
			sources[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lightbox, err := fetch.Text(ctx, f, path.Join(dir, TplLightbox+".html"))
	if err != nil {
		lightbox = defaultLightbox
	}

	all := make(map[string]string, len(Required)+1)
	for i, name := range Required {
		all[name] = sources[i]
	}
	all[TplLightbox] = lightbox
	return ParseTemplates(all)
}

// ParseTemplates builds a set from in-memory sources keyed by name.
func ParseTemplates(sources map[string]string) (*Templates, error) {
	sources = maps.Clone(sources)
	set := template.New("views").Funcs(funcs)
	for _, name := range Required {
		if _, ok := sources[name]; !ok {
			return nil, fmt.Errorf("view: template %s missing", name)
		}
	}
	if _, ok := sources[TplLightbox]; !ok {
		sources[TplLightbox] = defaultLightbox
	}
	for name, src := range sources {
		if _, err := set.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
	}
	return &Templates{set: set, sources: sources}, nil
}

// Source returns the unexecuted text of a template.
func (t *Templates) Source(name string) string {
	return t.sources[name]
}

func (t *Templates) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("view: render %s: %w", name, err)
	}
	return buf.String(), nil
}
