// Package models defines the domain types for folio.
package models

import "strings"

// RelativeMarker prefixes descriptor paths that resolve against the
// descriptor's own directory.
const RelativeMarker = "./"

// Project is one portfolio project descriptor. It is immutable once it
// has been placed in a catalog.
type Project struct {
	ID               string         `json:"id"`
	Category         string         `json:"category"`
	Title            string         `json:"title"`
	Tagline          string         `json:"tagline,omitempty"`
	ShortDescription string         `json:"shortDescription,omitempty"`
	InitiationDate   Date           `json:"initiationDate,omitempty"`
	DevStartDate     Date           `json:"devStartDate,omitempty"`
	DevEndDate       Date           `json:"devEndDate,omitempty"`
	Platforms        []string       `json:"platforms"`
	TechStack        []string       `json:"techStack"`
	Features         []string       `json:"features,omitempty"`
	Client           string         `json:"client,omitempty"`
	EngineVersion    string         `json:"unityVersion,omitempty"`
	Duration         string         `json:"projectDuration,omitempty"`
	Media            []MediaItem    `json:"media"`
	PreviewImage     string         `json:"previewImage"`
	ExternalLinks    []ExternalLink `json:"externalLinks"`

	// Derived at load time, never authored.
	BaseDir    string `json:"baseDir"`
	ConfigPath string `json:"projectConfigPath"`
}

// MediaItem is one entry of a project's media gallery. Type is inferred
// from URL when empty.
type MediaItem struct {
	URL          string `json:"url"`
	Alt          string `json:"alt"`
	Type         string `json:"type,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// ExternalLink is a labelled outbound link.
type ExternalLink struct {
	Label     string `json:"label"`
	URL       string `json:"url"`
	IconClass string `json:"iconClass,omitempty"`
}

// ManifestEntry is one row of a per-category manifest file. Older
// manifests name the descriptor path projectConfigPath.
type ManifestEntry struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	ConfigPath string `json:"projectConfigPath,omitempty"`
}

// Location returns the descriptor path of the entry.
func (e ManifestEntry) Location() string {
	if e.Path != "" {
		return e.Path
	}
	return e.ConfigPath
}

// ResolvePath resolves p against the project's base directory when it
// starts with RelativeMarker; any other path is returned unchanged.
func (p *Project) ResolvePath(path string) string {
	if !strings.HasPrefix(path, RelativeMarker) {
		return path
	}
	return p.BaseDir + strings.TrimPrefix(path, RelativeMarker)
}

// PreviewURL is the resolved preview image path.
func (p *Project) PreviewURL() string {
	return p.ResolvePath(p.PreviewImage)
}

// EndYear returns the year of DevEndDate, or false when it is unknown.
func (p *Project) EndYear() (int, bool) {
	t, ok := p.DevEndDate.Time()
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// VisibleLinks drops links with an empty URL.
func (p *Project) VisibleLinks() []ExternalLink {
	out := make([]ExternalLink, 0, len(p.ExternalLinks))
	for _, l := range p.ExternalLinks {
		if l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}

// HasPlatform reports exact, case-sensitive membership.
func (p *Project) HasPlatform(platform string) bool {
	for _, pl := range p.Platforms {
		if pl == platform {
			return true
		}
	}
	return false
}
