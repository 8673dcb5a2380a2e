package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/starford/folio/internal/fetch"
	"github.com/starford/folio/internal/models"
)

// ReadmeName is the long-form document beside every descriptor.
const ReadmeName = "README.md"

// DetailData feeds the detail template.
type DetailData struct {
	ID          string
	Title       string
	Tagline     string
	Summary     string
	Specs       []Spec
	Links       []models.ExternalLink
	Features    []string
	TechStack   []string
	Main        *Media
	Media       []Media
	Description template.HTML
	Loading     bool
}

// BuildDetail shapes p for the template with media item active shown as
// the main view.
func BuildDetail(p *models.Project, active int) DetailData {
	d := DetailData{
		ID:        p.ID,
		Title:     p.Title,
		Tagline:   p.Tagline,
		Summary:   p.ShortDescription,
		Links:     p.VisibleLinks(),
		Features:  p.Features,
		TechStack: p.TechStack,
		Media:     MediaOf(p, active),
		Loading:   true,
		Specs: specs(
			Spec{"Unity Version", p.EngineVersion},
			Spec{"Initiation Date", p.InitiationDate.Long()},
			Spec{"Start Date", p.DevStartDate.Long()},
			Spec{"End Date", p.DevEndDate.Long()},
			Spec{"Platform(s)", strings.Join(p.Platforms, ", ")},
			Spec{"Client", p.Client},
		),
	}
	if active >= 0 && active < len(d.Media) {
		d.Main = &d.Media[active]
	}
	return d
}

// DetailHandlers are the detail view's outward effects.
type DetailHandlers struct {
	// OnOpenMedia shows one media item in the lightbox.
	OnOpenMedia func(Media) error
}

// Detail is the detail view of one project. The long-form document is
// loaded after the first render; every later write is guarded by the
// view's own generation so a slow load never overwrites another view.
type Detail struct {
	owned
	tpl     *Templates
	project models.Project
	data    DetailData
	on      DetailHandlers
}

// NewDetail prepares the detail view of p over region.
func NewDetail(region Region, t *Templates, p models.Project, on DetailHandlers) *Detail {
	return &Detail{
		owned:   owned{region: region},
		tpl:     t,
		project: p,
		data:    BuildDetail(&p, 0),
		on:      on,
	}
}

// Render takes the region over with the descriptor's content and a
// loading state for the long-form document.
func (d *Detail) Render() (Token, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	markup, err := d.tpl.execute(TplDetail, d.data)
	if err != nil {
		return 0, err
	}
	return d.claim(markup, d.listeners()), nil
}

// ReadmePath is where the long-form document of the project lives.
func (d *Detail) ReadmePath() string {
	return d.project.BaseDir + ReadmeName
}

// LoadContent fetches and renders the long-form document. On failure the
// whole region is replaced by an error message. A cancelled ctx writes
// nothing. ErrStale means another render got there first; the result
// was dropped.
func (d *Detail) LoadContent(ctx context.Context, f fetch.Fetcher, md *Markdown) error {
	src, err := f.Fetch(ctx, d.ReadmePath())
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var html template.HTML
	if err == nil {
		html, err = md.Render(src)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		if uerr := d.update(message(fmt.Sprintf(msgDetailErrorFmt, d.project.ID)), nil); uerr != nil {
			return uerr
		}
		return fmt.Errorf("view: detail %s: %w", d.project.ID, err)
	}
	d.data.Description = html
	d.data.Loading = false
	markup, err := d.tpl.execute(TplDetail, d.data)
	if err != nil {
		return err
	}
	return d.update(markup, d.listeners())
}

// Select makes media item i the main view.
func (d *Detail) Select(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.data.Media) {
		return fmt.Errorf("view: media %d out of range", i)
	}
	for j := range d.data.Media {
		d.data.Media[j].Active = j == i
	}
	d.data.Main = &d.data.Media[i]
	markup, err := d.tpl.execute(TplDetail, d.data)
	if err != nil {
		return err
	}
	return d.update(markup, d.listeners())
}

func (d *Detail) listeners() []Listener {
	if len(d.data.Media) == 0 {
		return nil
	}
	return []Listener{
		{Action: "thumbnail", Handle: func(ev Event) error {
			i, err := mediaIndex(ev)
			if err != nil {
				return err
			}
			return d.Select(i)
		}},
		{Action: "open-media", Handle: func(ev Event) error {
			i, err := mediaIndex(ev)
			if err != nil {
				return err
			}
			d.mu.Lock()
			if i < 0 || i >= len(d.data.Media) {
				d.mu.Unlock()
				return fmt.Errorf("view: media %d out of range", i)
			}
			m := d.data.Media[i]
			d.mu.Unlock()
			if d.on.OnOpenMedia == nil {
				return nil
			}
			return d.on.OnOpenMedia(m)
		}},
	}
}

func mediaIndex(ev Event) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(ev.Value))
	if err != nil {
		return 0, errors.New("view: media index required")
	}
	return i, nil
}
