package output

import (
	"github.com/swiftgg/docmigrate/internal/anchors"
	"github.com/swiftgg/docmigrate/internal/pages"
)

// RedirectsReport summarizes one reconciliation run.
type RedirectsReport struct {
	Table       string          `json:"table" yaml:"table"`
	Output      string          `json:"output" yaml:"output"`
	Export      string          `json:"export,omitempty" yaml:"export,omitempty"`
	PageAnchors int             `json:"page_anchors" yaml:"page_anchors"`
	Stats       anchors.Stats   `json:"stats" yaml:"stats"`
	Events      []anchors.Event `json:"events,omitempty" yaml:"events,omitempty"`
}

// NewRedirectsReport builds the report for res. output is the destination
// the table was written to ("stdout" or a path).
func NewRedirectsReport(table, output string, records int, res *anchors.Result) RedirectsReport {
	return RedirectsReport{
		Table:       table,
		Output:      output,
		PageAnchors: records,
		Stats:       res.Stats,
		Events:      res.Events,
	}
}

// FetchedPage describes one cached page.
type FetchedPage struct {
	ID    string `json:"id" yaml:"id"`
	URL   string `json:"url" yaml:"url"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

// FetchReport summarizes one fetch run.
type FetchReport struct {
	RunID string        `json:"run_id" yaml:"run_id"`
	Dir   string        `json:"dir" yaml:"dir"`
	Total int           `json:"total_bytes" yaml:"total_bytes"`
	Pages []FetchedPage `json:"pages" yaml:"pages"`
}

// NewFetchReport lists fetched pages in download order.
func NewFetchReport(runID, dir string, fetched []*pages.Page) FetchReport {
	r := FetchReport{RunID: runID, Dir: dir, Pages: make([]FetchedPage, 0, len(fetched))}
	for _, p := range fetched {
		r.Pages = append(r.Pages, FetchedPage{ID: p.ID, URL: p.URL, Bytes: len(p.Body)})
		r.Total += len(p.Body)
	}
	return r
}
