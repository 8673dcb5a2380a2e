package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	mdparser "github.com/starford/folio/internal/parser"
)

// Markdown converts long-form project documents to HTML.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a GFM renderer with heading ids and highlighted
// code blocks. Raw HTML in documents is passed through; content is
// authored by the site owner.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)}
}

// Render strips any front matter and converts the body.
func (m *Markdown) Render(src []byte) (template.HTML, error) {
	doc := mdparser.Parse(src)
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(doc.Body), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
