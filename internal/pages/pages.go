// Package pages collects the anchors of the new documentation build, either
// from a local build directory or by fetching chapter pages over HTTP.
package pages

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/andybalholm/cascadia"

	"github.com/swiftgg/docmigrate/internal/anchors"
)

// ErrNotFound is returned when a page does not exist.
var ErrNotFound = errors.New("page not found")

// Format is the representation of a page of the new build.
type Format string

const (
	// FormatJSON is the render JSON emitted by the documentation compiler.
	FormatJSON Format = "json"
	// FormatHTML is a rendered HTML page.
	FormatHTML Format = "html"
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown page format: %q (want json or html)", s)
	}
}

// Ext returns the file extension used for pages of this format.
func (f Format) Ext() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".json"
}

// Source produces the anchors of every page it knows about.
type Source interface {
	Anchors(ctx context.Context) ([]anchors.PageAnchor, error)
}

// Parser extracts anchors from raw page bodies.
type Parser struct {
	Format   Format
	Selector cascadia.Matcher // HTML only; nil matches every element with an id
}

// Parse extracts the anchors of a single page.
func (p Parser) Parse(page string, data []byte) ([]anchors.PageAnchor, error) {
	switch p.Format {
	case FormatHTML:
		return ParseHTML(page, bytes.NewReader(data), p.Selector)
	case FormatJSON, "":
		return ParseRenderJSON(page, data)
	default:
		return nil, fmt.Errorf("unknown page format: %q", p.Format)
	}
}

// Page is the raw body of one page.
type Page struct {
	// ID is the page file name, e.g. "basicoperators.json".
	ID   string `json:"id" yaml:"id"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
	Body []byte `json:"-" yaml:"-"`
}

// ParseAll extracts the anchors of every page, in page order.
func (p Parser) ParseAll(pages []*Page) ([]anchors.PageAnchor, error) {
	var out []anchors.PageAnchor
	for _, pg := range pages {
		recs, err := p.Parse(pg.ID, pg.Body)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}
