package pages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/swiftgg/docmigrate/internal/anchors"
)

// DirSource reads the pages of a local build directory. With Chapters set,
// exactly those pages are read in list order and each must exist. Otherwise
// every file directly inside Dir with the format's extension is read, in
// lexical order.
type DirSource struct {
	Fs       afero.Fs // defaults to the OS filesystem
	Dir      string
	Chapters []string
	Parser   Parser
	Logger   *slog.Logger
}

// Pages loads the raw pages of the directory.
func (s *DirSource) Pages(ctx context.Context) ([]*Page, error) {
	fs := s.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}

	names, err := s.names(fs)
	if err != nil {
		return nil, err
	}

	pages := make([]*Page, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.Dir, name)
		body, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %s: %w", path, err)
		}
		log.Debug("read page", "file", path, "bytes", len(body))
		pages = append(pages, &Page{ID: name, Body: body})
	}
	log.Info("loaded pages", "dir", s.Dir, "count", len(pages))
	return pages, nil
}

func (s *DirSource) names(fs afero.Fs) ([]string, error) {
	ext := s.Parser.Format.Ext()
	if len(s.Chapters) > 0 {
		names := make([]string, len(s.Chapters))
		for i, ch := range s.Chapters {
			names[i] = ch + ext
		}
		return names, nil
	}

	infos, err := afero.ReadDir(fs, s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read page directory %s: %w", s.Dir, err)
	}
	var names []string
	for _, fi := range infos {
		if fi.IsDir() || !strings.EqualFold(filepath.Ext(fi.Name()), ext) {
			continue
		}
		names = append(names, fi.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Anchors implements Source.
func (s *DirSource) Anchors(ctx context.Context) ([]anchors.PageAnchor, error) {
	pages, err := s.Pages(ctx)
	if err != nil {
		return nil, err
	}
	return s.Parser.ParseAll(pages)
}

// SavePages writes the raw body of every page into dir.
func SavePages(fs afero.Fs, dir string, pages []*Page) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create page cache %s: %w", dir, err)
	}
	for _, p := range pages {
		path := filepath.Join(dir, p.ID)
		if err := afero.WriteFile(fs, path, p.Body, 0o644); err != nil {
			return fmt.Errorf("failed to save page %s: %w", path, err)
		}
	}
	return nil
}
