package view

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// findByID returns the first element with the given id attribute.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func parseFragment(markup string) (*html.Node, bool) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, false
	}
	return doc, true
}

// HasElement reports whether markup contains an element with the id.
func HasElement(markup, id string) bool {
	doc, ok := parseFragment(markup)
	return ok && findByID(doc, id) != nil
}

// EmbeddedText returns the text content of the element with the given id.
func EmbeddedText(markup, id string) (string, bool) {
	doc, ok := parseFragment(markup)
	if !ok {
		return "", false
	}
	n := findByID(doc, id)
	if n == nil {
		return "", false
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String(), true
}

// EmbeddedJSON decodes the JSON blob held by the element with the given
// id. A missing element or malformed JSON reports false.
func EmbeddedJSON(markup, id string, v any) bool {
	text, ok := EmbeddedText(markup, id)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(strings.TrimSpace(text)), v) == nil
}
