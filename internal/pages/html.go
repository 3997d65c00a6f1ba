package pages

import (
	"fmt"
	"io"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/swiftgg/docmigrate/internal/anchors"
)

// DefaultSelector picks the heading anchors of a rendered page.
const DefaultSelector = "h1[id], h2[id], h3[id], h4[id], h5[id], h6[id]"

// CompileSelector parses a CSS selector group. An empty selector matches
// every element that has an id.
func CompileSelector(sel string) (cascadia.Matcher, error) {
	if sel == "" {
		return nil, nil
	}
	group, err := cascadia.ParseGroup(sel)
	if err != nil {
		return nil, fmt.Errorf("invalid anchor selector %q: %w", sel, err)
	}
	return group, nil
}

// ParseHTML extracts the id attributes of elements matched by sel, in
// document order. A nil sel matches every element.
func ParseHTML(page string, r io.Reader, sel cascadia.Matcher) ([]anchors.PageAnchor, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse HTML: %w", page, err)
	}

	var nodes []*html.Node
	if sel != nil {
		nodes = cascadia.QueryAll(doc, sel)
	} else {
		nodes = elements(doc)
	}

	var out []anchors.PageAnchor
	for _, n := range nodes {
		if id := attr(n, "id"); id != "" {
			out = append(out, anchors.PageAnchor{Page: page, Anchor: id})
		}
	}
	return out, nil
}

// elements returns every element node below n in document order.
func elements(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
