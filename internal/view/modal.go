package view

import (
	"fmt"
	"strings"
	"sync"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/router"
)

// Modal is an overlay with the shared open/close contract: the close
// control, a click on the backdrop and Escape close it; clicks on the
// content do not. Closing empties the region, which tears down any
// playing embed.
type Modal struct {
	region Region

	mu   sync.Mutex
	open bool
}

// NewModal wraps region as an overlay.
func NewModal(region Region) *Modal {
	return &Modal{region: region}
}

// Show reveals markup with the caller's listeners plus the closing ones.
func (m *Modal) Show(markup string, listeners ...Listener) Token {
	all := append([]Listener{
		{Action: "close", Handle: m.handleClose},
		{Action: "backdrop", Handle: m.handleClose},
		{Action: "content", Handle: func(Event) error { return nil }},
	}, listeners...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	return m.region.Replace(markup, all...)
}

// Close hides the overlay. Closing a closed modal is a no-op.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return
	}
	m.open = false
	m.region.Replace("")
}

// Escape closes the modal if it is open and reports whether it was.
func (m *Modal) Escape() bool {
	m.mu.Lock()
	was := m.open
	m.mu.Unlock()
	if was {
		m.Close()
	}
	return was
}

// IsOpen reports whether the overlay is showing.
func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Region exposes the overlay's region.
func (m *Modal) Region() Region { return m.region }

func (m *Modal) handleClose(Event) error {
	m.Close()
	return nil
}

// quickLookItems caps the features and tech entries of a quick look.
const quickLookItems = 3

// QuickLookData feeds the quick-look template.
type QuickLookData struct {
	ID         string
	Title      string
	Tagline    string
	Summary    string
	DetailURL  string
	Features   []string
	Specs      []Spec
	Main       *Media
	Media      []Media
	Thumbnails bool
}

// BuildQuickLook shapes p for the quick look with media item active as
// the main view.
func BuildQuickLook(p *models.Project, active int) QuickLookData {
	d := QuickLookData{
		ID:        p.ID,
		Title:     p.Title,
		Tagline:   p.Tagline,
		Summary:   p.ShortDescription,
		DetailURL: router.ProjectFragment(p.ID),
		Features:  p.Features[:min(len(p.Features), quickLookItems)],
		Media:     MediaOf(p, active),
	}
	tech := strings.Join(p.TechStack[:min(len(p.TechStack), quickLookItems)], ", ")
	if len(p.TechStack) > quickLookItems {
		tech += "..."
	}
	d.Specs = specs(
		Spec{"Platforms", strings.Join(p.Platforms, ", ")},
		Spec{"Duration", p.Duration},
		Spec{"Key Tech", tech},
	)
	if active >= 0 && active < len(d.Media) {
		d.Main = &d.Media[active]
	}
	d.Thumbnails = len(d.Media) > 1
	return d
}

// QuickLook previews a project without navigating.
type QuickLook struct {
	*Modal
	tpl *Templates

	mu      sync.Mutex
	project models.Project
}

// NewQuickLook creates the quick look over region.
func NewQuickLook(region Region, t *Templates) *QuickLook {
	return &QuickLook{Modal: NewModal(region), tpl: t}
}

// Open populates the overlay from p and reveals it.
func (q *QuickLook) Open(p models.Project) error {
	q.mu.Lock()
	q.project = p
	q.mu.Unlock()
	return q.show(0)
}

// Select swaps the main media of the open quick look.
func (q *QuickLook) Select(i int) error {
	if !q.IsOpen() {
		return nil
	}
	q.mu.Lock()
	n := len(q.project.Media)
	q.mu.Unlock()
	if i < 0 || i >= n {
		return fmt.Errorf("view: media %d out of range", i)
	}
	return q.show(i)
}

func (q *QuickLook) show(active int) error {
	q.mu.Lock()
	p := q.project
	q.mu.Unlock()

	markup, err := q.tpl.execute(TplQuickLook, BuildQuickLook(&p, active))
	if err != nil {
		return err
	}
	q.Show(markup, Listener{Action: "thumbnail", Handle: func(ev Event) error {
		i, err := mediaIndex(ev)
		if err != nil {
			return err
		}
		return q.Select(i)
	}})
	return nil
}

// Lightbox shows a single media item full size.
type Lightbox struct {
	*Modal
	tpl *Templates
}

// NewLightbox creates the lightbox over region.
func NewLightbox(region Region, t *Templates) *Lightbox {
	return &Lightbox{Modal: NewModal(region), tpl: t}
}

// Open shows m.
func (l *Lightbox) Open(m Media) error {
	markup, err := l.tpl.execute(TplLightbox, m)
	if err != nil {
		return err
	}
	l.Show(markup)
	return nil
}
