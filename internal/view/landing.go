package view

import (
	"strings"

	"github.com/starford/folio/internal/models"
)

// maxSectionCards caps the cards of one landing section.
const maxSectionCards = 4

// DefaultSectionLink is where a section's "View All" goes by default.
const DefaultSectionLink = "#/gallery"

// Lookup resolves projects for the landing page.
type Lookup interface {
	ByID(id string) (models.Project, bool)
	ByConfigPath(path string) (models.Project, bool)
}

// SectionConfig is one entry of the landing layout blob.
type SectionConfig struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	LinkURL     string   `json:"linkUrl"`
	Projects    []string `json:"projects"`
}

// Section is a rendered landing section.
type Section struct {
	ID          string
	Title       string
	Description string
	LinkURL     string
	Cards       []Card
}

// Slide is one featured project.
type Slide struct {
	Card
	Index  int
	Active bool
}

// LandingData feeds the landing template.
type LandingData struct {
	Sections []Section
	Slides   []Slide
}

// HasSlider is a template helper.
func (d LandingData) HasSlider() bool { return len(d.Slides) > 0 }

// BuildLanding reads the layout and featured blobs embedded in the
// landing template and resolves them against the catalog. A blob that is
// missing or malformed leaves its feature out.
func BuildLanding(t *Templates, cat Lookup) LandingData {
	src := t.Source(TplLanding)
	var data LandingData

	var sections []SectionConfig
	if EmbeddedJSON(src, LandingConfigID, &sections) {
		for _, sc := range sections {
			s := Section{
				ID:          sc.ID,
				Title:       sc.Title,
				Description: sc.Description,
				LinkURL:     sc.LinkURL,
			}
			if s.LinkURL == "" {
				s.LinkURL = DefaultSectionLink
			}
			for _, ref := range sc.Projects {
				if len(s.Cards) == maxSectionCards {
					break
				}
				p, ok := cat.ByConfigPath(contentPath(ref))
				if !ok {
					continue
				}
				s.Cards = append(s.Cards, NewCard(&p))
			}
			if len(s.Cards) > 0 {
				data.Sections = append(data.Sections, s)
			}
		}
	}

	var featured []string
	if EmbeddedJSON(src, FeaturedID, &featured) {
		for _, id := range featured {
			p, ok := cat.ByID(id)
			if !ok {
				continue
			}
			data.Slides = append(data.Slides, Slide{Card: NewCard(&p), Index: len(data.Slides)})
		}
	}
	return data
}

// contentPath normalises a descriptor reference to a content-root path.
func contentPath(ref string) string {
	ref = strings.TrimPrefix(ref, models.RelativeMarker)
	return strings.TrimLeft(ref, "/")
}

// Landing is the landing view. It owns its region until another render
// takes it over.
type Landing struct {
	owned
	tpl       *Templates
	data      LandingData
	listeners []Listener
}

// NewLanding prepares a landing view over region.
func NewLanding(region Region, t *Templates, data LandingData, listeners ...Listener) *Landing {
	return &Landing{
		owned:     owned{region: region},
		tpl:       t,
		data:      data,
		listeners: listeners,
	}
}

// Render takes the region over and shows slide 0.
func (l *Landing) Render() (Token, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mark(0)
	markup, err := l.tpl.execute(TplLanding, l.data)
	if err != nil {
		return 0, err
	}
	return l.claim(markup, l.listeners), nil
}

// ShowSlide re-renders with slide i active. It returns ErrStale once
// another view owns the region.
func (l *Landing) ShowSlide(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mark(i)
	markup, err := l.tpl.execute(TplLanding, l.data)
	if err != nil {
		return err
	}
	return l.update(markup, l.listeners)
}

// Slides returns the number of featured slides.
func (l *Landing) Slides() int { return len(l.data.Slides) }

func (l *Landing) mark(active int) {
	for i := range l.data.Slides {
		l.data.Slides[i].Active = i == active
	}
}
