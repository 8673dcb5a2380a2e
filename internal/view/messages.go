package view

import (
	"html/template"
	"strings"

	"github.com/starford/folio/internal/router"
)

// User-facing messages.
const (
	MsgFatal          = "Failed to load essential portfolio data."
	MsgNotFound       = "Project not found."
	MsgNoCategory     = "Category not found."
	MsgRenderFailed   = "Something went wrong rendering this page."
	msgDetailErrorFmt = "Error loading project data for %s."
)

var messageTpl = template.Must(template.New("message").Parse(
	`<p class="error-message">{{.}}</p>`))

var placeholderTpl = template.Must(template.New("placeholder").Parse(
	`<section id="{{.ID}}-view" class="static-view"><h1 class="page-title">{{.Title}}</h1><p>Content for the {{.Section}} section will go here.</p></section>`))

func message(text string) string {
	var b strings.Builder
	_ = messageTpl.Execute(&b, text)
	return b.String()
}

// RenderMessage replaces region with a single error message.
func RenderMessage(region Region, text string) Token {
	return region.Replace(message(text))
}

// RenderFatal shows the startup failure message.
func RenderFatal(region Region) Token {
	return RenderMessage(region, MsgFatal)
}

// RenderNotFound shows the unknown project message.
func RenderNotFound(region Region) Token {
	return RenderMessage(region, MsgNotFound)
}

// RenderPlaceholder fills region with the generic page of a section that
// has no view of its own.
func RenderPlaceholder(region Region, in router.Intent) Token {
	var b strings.Builder
	_ = placeholderTpl.Execute(&b, struct {
		ID, Title, Section string
	}{
		ID:      strings.ReplaceAll(in.Section, "/", "-"),
		Title:   in.Title(),
		Section: in.Section,
	})
	return region.Replace(b.String())
}
