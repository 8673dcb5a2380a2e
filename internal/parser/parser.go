// Package parser splits a project's long-form document into its YAML
// front matter and Markdown body.
package parser

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

const delim = "---"

// Document is a parsed long-form file.
type Document struct {
	Frontmatter map[string]any
	Body        string
	Title       string
}

// Parse separates front matter from body. Content without a well-formed
// front matter block is returned whole as the body.
func Parse(data []byte) *Document {
	fm, body := splitFrontmatter(data)
	return &Document{
		Frontmatter: fm,
		Body:        body,
		Title:       deriveTitle(fm, body),
	}
}

// splitFrontmatter cuts a leading block fenced by --- lines. An unclosed
// fence or invalid YAML leaves the document untouched.
func splitFrontmatter(data []byte) (map[string]any, string) {
	trimmed := bytes.TrimLeft(data, "\n\r\ufeff")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	block := rest[:idx]
	after := rest[idx+1+len(delim):]
	// The closing fence must stand on its own line.
	if len(after) > 0 && after[0] != '\n' && after[0] != '\r' {
		return nil, string(data)
	}

	var fm map[string]any
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, string(data)
	}
	return fm, strings.TrimLeft(string(after), "\n\r")
}

// deriveTitle prefers a front matter title, then the first H1.
func deriveTitle(fm map[string]any, body string) string {
	if s, ok := fm["title"].(string); ok && s != "" {
		return s
	}
	for line := range strings.SplitSeq(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
