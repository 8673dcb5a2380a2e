package view

import (
	"strconv"
	"strings"

	"github.com/starford/folio/internal/media"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/router"
)

// NotAvailable stands in for a missing platform and marks an omitted spec.
const NotAvailable = "N/A"

// Card is the summary tile of a project.
type Card struct {
	ID           string
	Title        string
	Tagline      string
	Preview      string
	Overlay      media.Type // Video or GIF when the preview animates
	Year         string
	Platform     string
	PlatformIcon string
	DetailURL    string
}

// NewCard builds the tile of p.
func NewCard(p *models.Project) Card {
	c := Card{
		ID:        p.ID,
		Title:     p.Title,
		Tagline:   p.Tagline,
		Preview:   p.PreviewURL(),
		Platform:  NotAvailable,
		DetailURL: router.ProjectFragment(p.ID),
	}
	if t := media.Classify(c.Preview); t != media.Image {
		c.Overlay = t
	}
	if y, ok := p.EndYear(); ok {
		c.Year = strconv.Itoa(y)
	}
	if len(p.Platforms) > 0 {
		c.Platform = p.Platforms[0]
	}
	c.PlatformIcon = PlatformIcon(c.Platform)
	return c
}

// PlatformIcon picks an icon class by platform name.
func PlatformIcon(platform string) string {
	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "windows"):
		return "fab fa-windows"
	case strings.Contains(p, "quest"), strings.Contains(p, "vr"), strings.Contains(p, "oculus"):
		return "fas fa-vr-cardboard"
	case strings.Contains(p, "android"):
		return "fab fa-android"
	case strings.Contains(p, "web"):
		return "fas fa-globe"
	}
	return "fas fa-desktop"
}

// Media is one resolved media item of a project.
type Media struct {
	Index    int
	Type     media.Type
	URL      string
	EmbedURL string
	Thumb    string
	Alt      string
	Active   bool
}

// IsVideo is a template helper.
func (m Media) IsVideo() bool { return m.Type == media.Video }

// IsGIF is a template helper.
func (m Media) IsGIF() bool { return m.Type == media.GIF }

// MediaOf resolves every media item of p against its base directory.
// The item at active is marked active.
func MediaOf(p *models.Project, active int) []Media {
	preview := p.PreviewURL()
	out := make([]Media, 0, len(p.Media))
	for i, item := range p.Media {
		item.URL = p.ResolvePath(item.URL)
		if item.ThumbnailURL != "" {
			item.ThumbnailURL = p.ResolvePath(item.ThumbnailURL)
		}
		t := media.TypeOf(item)
		out = append(out, Media{
			Index:    i,
			Type:     t,
			URL:      item.URL,
			EmbedURL: media.ToEmbeddable(item.URL),
			Thumb:    media.ResolveThumbnail(item, preview),
			Alt:      item.Alt,
			Active:   i == active,
		})
	}
	return out
}

// Spec is one labelled fact in a details list.
type Spec struct {
	Label string
	Value string
}

// specs drops empty and "N/A" values.
func specs(all ...Spec) []Spec {
	out := make([]Spec, 0, len(all))
	for _, s := range all {
		if v := strings.TrimSpace(s.Value); v != "" && v != NotAvailable {
			out = append(out, s)
		}
	}
	return out
}
