// Package rewrite applies fixed text replacements to every file of a tree.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Replacement swaps every occurrence of From for To.
type Replacement struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// DefaultReplacements move the ace editor scripts from cdnjs to bootcss.
func DefaultReplacements() []Replacement {
	return []Replacement{
		{
			From: `<script src="https://cdnjs.cloudflare.com/ajax/libs/ace/1.1.3/ace.js"></script>`,
			To:   `<script src="http://cdn.bootcss.com/ace/1.1.3/ace.js"></script>`,
		},
		{
			From: `<script src="https://cdnjs.cloudflare.com/ajax/libs/ace/1.1.3/mode-javascript.js"></script>`,
			To:   `<script src="http://cdn.bootcss.com/ace/1.1.3/mode-javascript.js"></script>`,
		},
	}
}

// Count is the number of substitutions made for one replacement.
type Count struct {
	From  string `json:"from" yaml:"from"`
	Count int    `json:"count" yaml:"count"`
}

// Report summarizes a rewrite run.
type Report struct {
	Root         string   `json:"root" yaml:"root"`
	DryRun       bool     `json:"dry_run" yaml:"dry_run"`
	FilesScanned int      `json:"files_scanned" yaml:"files_scanned"`
	FilesChanged int      `json:"files_changed" yaml:"files_changed"`
	Changed      []string `json:"changed,omitempty" yaml:"changed,omitempty"`
	Counts       []Count  `json:"counts" yaml:"counts"`
}

// Rewriter rewrites files in place.
type Rewriter struct {
	Fs           afero.Fs // defaults to the OS filesystem
	Extensions   []string // e.g. ".html"; matched case-insensitively
	Replacements []Replacement
	DryRun       bool // report changes without writing
	Logger       *slog.Logger
}

// Run walks root and applies the replacements, in order, to every file with
// a matching extension. Only files whose content changes are written back,
// keeping their permissions.
func (rw *Rewriter) Run(ctx context.Context, root string) (*Report, error) {
	if len(rw.Replacements) == 0 {
		return nil, errors.New("no replacements configured")
	}
	for _, r := range rw.Replacements {
		if r.From == "" {
			return nil, errors.New("replacement with empty search text")
		}
	}
	fs := rw.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := rw.Logger
	if log == nil {
		log = slog.Default()
	}

	report := &Report{Root: root, DryRun: rw.DryRun, Counts: make([]Count, len(rw.Replacements))}
	for i, r := range rw.Replacements {
		report.Counts[i].From = r.From
	}

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() || !rw.matches(path) {
			return nil
		}
		report.FilesScanned++

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		content := string(data)
		for i, r := range rw.Replacements {
			if n := strings.Count(content, r.From); n > 0 {
				report.Counts[i].Count += n
				content = strings.ReplaceAll(content, r.From, r.To)
			}
		}
		if content == string(data) {
			return nil
		}

		report.FilesChanged++
		report.Changed = append(report.Changed, path)
		log.Debug("rewrote file", "path", path, "dry_run", rw.DryRun)
		if rw.DryRun {
			return nil
		}
		if err := afero.WriteFile(fs, path, []byte(content), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("rewrite complete", "root", root, "scanned", report.FilesScanned, "changed", report.FilesChanged)
	return report, nil
}

func (rw *Rewriter) matches(path string) bool {
	if len(rw.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range rw.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
