// Package router maps location fragments to view intents and runs the
// transition side effects between views.
package router

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the view a fragment selects.
type Kind string

const (
	KindLanding Kind = "landing"
	KindGallery Kind = "gallery"
	KindDetail  Kind = "detail"
	KindUnknown Kind = "unknown"
)

// Intent is the parsed form of a location fragment.
type Intent struct {
	Kind Kind `json:"kind"`
	// ProjectID is set for detail intents.
	ProjectID string `json:"projectId,omitempty"`
	// Category optionally narrows a gallery intent (#/gallery/<category>).
	Category string `json:"category,omitempty"`
	// Section is the unmatched fragment of an unknown intent.
	Section string `json:"section,omitempty"`
	// Anchor names an in-page target (#/gallery#top).
	Anchor string `json:"anchor,omitempty"`
}

// Parse maps a fragment, with or without its leading '#', to an Intent.
//
//	""  "#"  "#/"           landing
//	"#/gallery[/<cat>]"     gallery ("projects" is accepted as an alias)
//	"#/project/<id>"        detail(id)
//	anything else           unknown(section)
//
// A second '#' splits off an in-page anchor.
func Parse(fragment string) Intent {
	f := strings.TrimSpace(fragment)
	f = strings.TrimPrefix(f, "#")

	var anchor string
	if i := strings.IndexByte(f, '#'); i >= 0 {
		f, anchor = f[:i], f[i+1:]
	}

	p := strings.Trim(f, "/")
	segs := strings.Split(p, "/")
	in := Intent{Anchor: anchor}

	switch {
	case p == "":
		in.Kind = KindLanding
	case segs[0] == "gallery" || segs[0] == "projects":
		in.Kind = KindGallery
		if len(segs) > 1 {
			in.Category = unescape(segs[1])
		}
	case segs[0] == "project" && len(segs) > 1:
		in.Kind = KindDetail
		in.ProjectID = unescape(segs[1])
	default:
		in.Kind = KindUnknown
		in.Section = p
	}
	return in
}

// Fragment renders the intent back to a canonical "#/..." fragment.
func (in Intent) Fragment() string {
	var f string
	switch in.Kind {
	case KindGallery:
		f = "#/gallery"
		if in.Category != "" {
			f += "/" + url.PathEscape(in.Category)
		}
	case KindDetail:
		f = "#/project/" + url.PathEscape(in.ProjectID)
	case KindUnknown:
		f = "#/" + in.Section
	default:
		f = "#/"
	}
	if in.Anchor != "" {
		f += "#" + in.Anchor
	}
	return f
}

// Title is the heading of the placeholder page for an unknown intent.
func (in Intent) Title() string {
	s := in.Section
	if s == "" {
		return ""
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

// ProjectFragment is the detail link for a project id.
func ProjectFragment(id string) string {
	return Intent{Kind: KindDetail, ProjectID: id}.Fragment()
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}
