package anchors

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
)

const (
	// DefaultDelimiter separates the chapter from the section in a legacy
	// name, e.g. "basicOperators-terminology".
	DefaultDelimiter = "-"

	// DefaultSeparator marks a legacy name that spans chapters,
	// e.g. "advancedOperators/overflow".
	DefaultSeparator = "/"
)

// Options controls how legacy names are split and compared.
type Options struct {
	Delimiter string
	Separator string
}

// DefaultOptions returns the options used by the Sphinx naming scheme.
func DefaultOptions() Options {
	return Options{Delimiter: DefaultDelimiter, Separator: DefaultSeparator}
}

func (o Options) withDefaults() Options {
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	return o
}

// PageAnchor is one anchor found on a page of the new build.
type PageAnchor struct {
	Page   string `json:"page" yaml:"page"`
	Anchor string `json:"anchor" yaml:"anchor"`
}

// Stats summarizes a reconciliation run.
type Stats struct {
	Rows        int `json:"rows" yaml:"rows"`
	WithLegacy  int `json:"with_legacy" yaml:"with_legacy"`
	Matched     int `json:"matched" yaml:"matched"`
	Unmatched   int `json:"unmatched" yaml:"unmatched"`
	Skipped     int `json:"skipped" yaml:"skipped"`
	Overwritten int `json:"overwritten" yaml:"overwritten"`
	Ambiguous   int `json:"ambiguous" yaml:"ambiguous"`
}

// Result is the reconciled table plus everything worth auditing.
type Result struct {
	Header string
	Rows   []Row
	Events []Event
	Stats  Stats
}

// normalizer folds names into their comparison form.
// A cases.Caser keeps state, so each run owns one.
type normalizer struct {
	delim string
	fold  cases.Caser
}

func newNormalizer(delim string) *normalizer {
	return &normalizer{delim: delim, fold: cases.Fold()}
}

// anchor drops every delimiter and case-folds.
func (n *normalizer) anchor(s string) string {
	return n.fold.String(strings.ReplaceAll(s, n.delim, ""))
}

// page drops a trailing extension and case-folds.
func (n *normalizer) page(s string) string {
	return n.fold.String(strings.TrimSuffix(s, path.Ext(s)))
}

type matchKey struct {
	page, anchor string
}

// anchorIndex maps (page, anchor) in normalized form to the distinct anchor
// strings that produce it, in collection order.
type anchorIndex map[matchKey][]string

func buildIndex(n *normalizer, records []PageAnchor) anchorIndex {
	idx := make(anchorIndex)
	for _, rec := range records {
		if rec.Anchor == "" {
			continue
		}
		k := matchKey{page: n.page(rec.Page), anchor: n.anchor(rec.Anchor)}
		dup := false
		for _, a := range idx[k] {
			if a == rec.Anchor {
				dup = true
				break
			}
		}
		if !dup {
			idx[k] = append(idx[k], rec.Anchor)
		}
	}
	return idx
}

// Reconcile fills in the new name of every row whose legacy name can be
// found among records. The input table is not modified.
//
// A legacy name is split on the first delimiter into a chapter and a
// section; it matches a record when the section equals the record's anchor
// and the chapter equals the record's page, both compared in normalized
// form. Legacy names containing the separator are left alone. When several
// distinct anchors match, the first one in records order wins and an
// ambiguous event is reported.
func Reconcile(table *Table, records []PageAnchor, opts Options) *Result {
	opts = opts.withDefaults()
	n := newNormalizer(opts.Delimiter)
	idx := buildIndex(n, records)

	res := &Result{Header: table.Header, Rows: table.Rows()}
	res.Stats.Rows = len(res.Rows)

	for i := range res.Rows {
		row := &res.Rows[i]
		legacy, ok := row.Legacy.Get()
		if !ok {
			continue
		}
		res.Stats.WithLegacy++

		if strings.Contains(legacy, opts.Separator) {
			res.Stats.Skipped++
			res.Events = append(res.Events, Event{
				Kind: EventSkip, ID: row.ID, Legacy: legacy, Reason: ReasonCrossChapter,
			})
			continue
		}

		chapter, section, found := strings.Cut(legacy, opts.Delimiter)
		if !found || section == "" {
			res.Stats.Skipped++
			res.Events = append(res.Events, Event{
				Kind: EventSkip, ID: row.ID, Legacy: legacy, Reason: ReasonNoSection,
			})
			continue
		}

		candidates := idx[matchKey{page: n.fold.String(chapter), anchor: n.anchor(section)}]
		if len(candidates) == 0 {
			res.Stats.Unmatched++
			continue
		}
		res.Stats.Matched++

		chosen := candidates[0]
		if len(candidates) > 1 {
			res.Stats.Ambiguous++
			res.Events = append(res.Events, Event{
				Kind: EventAmbiguous, ID: row.ID, Legacy: legacy,
				Replacement: chosen, Candidates: append([]string(nil), candidates...),
			})
		}

		if prev, had := row.New.Get(); had && prev != chosen {
			res.Stats.Overwritten++
			res.Events = append(res.Events, Event{
				Kind: EventOverwrite, ID: row.ID, Legacy: legacy,
				Previous: prev, Replacement: chosen,
			})
		}
		row.New = NameOf(chosen)
	}

	return res
}
