package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/swiftgg/docmigrate/internal/config"
	"github.com/swiftgg/docmigrate/internal/home"
	"github.com/swiftgg/docmigrate/internal/pages"
	"github.com/swiftgg/docmigrate/internal/svcctx"
)

// annotationNoServices marks commands that run without loaded services.
const annotationNoServices = "docmigrate/no-services"

// newLogger writes text logs to the command's stderr.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}

// newServices resolves the home directory and loads configuration from
// --config, ./config.yaml or <home>/config.yaml.
func newServices(cmd *cobra.Command) (*svcctx.Services, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	mgr, err := config.NewManager(cfgFile, ".", h.Path())
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd)
	if used := mgr.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config", "file", used)
	}
	return &svcctx.Services{
		Config:     mgr.Get(),
		Home:       h,
		Logger:     logger,
		ConfigFile: mgr.ConfigFileUsed(),
	}, nil
}

// readChapters loads a chapter list file.
func readChapters(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chapter list: %w", err)
	}
	defer f.Close()

	chapters, err := pages.ReadChapters(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%s: no chapters listed", path)
	}
	return chapters, nil
}

// newFetcher builds a page fetcher from configuration.
func newFetcher(cfg *config.Config, format pages.Format, logger *slog.Logger) *pages.Fetcher {
	base := cfg.Site.DataURL
	if format == pages.FormatHTML {
		base = cfg.Site.BaseURL
	}
	f := &pages.Fetcher{
		BaseURL:  base,
		Format:   format,
		Client:   &http.Client{Timeout: cfg.FetchTimeout()},
		Attempts: cfg.Attempts(),
		Delay:    cfg.RetryDelay(),
		Logger:   logger,
	}
	if cfg.Fetch.RateLimit > 0 {
		f.Limiter = rate.NewLimiter(rate.Limit(cfg.Fetch.RateLimit), 1)
	}
	return f
}

// newRunID identifies one fetch run in the page cache.
func newRunID() string {
	return uuid.New().String()
}

// pageFlags select where page anchors come from.
type pageFlags struct {
	dir      string
	chapters string
	format   string
	save     bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "pages", "", "local build directory holding the new pages")
	cmd.Flags().StringVar(&f.chapters, "chapters", "", "chapter list file; fetched from the site unless --pages is set")
	cmd.Flags().StringVar(&f.format, "format", "", "page format: json or html (default from config)")
	cmd.Flags().BoolVar(&f.save, "save", false, "cache fetched pages under the home directory")
}

func (f *pageFlags) parser(cfg *config.Config) (pages.Parser, error) {
	format := cfg.PageFormat()
	if f.format != "" {
		var err error
		if format, err = pages.ParseFormat(f.format); err != nil {
			return pages.Parser{}, err
		}
	}
	p := pages.Parser{Format: format}
	if format == pages.FormatHTML {
		sel, err := pages.CompileSelector(cfg.Site.HTMLSelector)
		if err != nil {
			return pages.Parser{}, err
		}
		p.Selector = sel
	}
	return p, nil
}

// source builds the page-anchor source described by the flags.
func (f *pageFlags) source(svc *svcctx.Services) (pages.Source, error) {
	cfg, logger := svc.Config, svc.Logger
	if f.dir == "" && f.chapters == "" {
		return nil, errors.New("either --pages or --chapters is required")
	}
	parser, err := f.parser(cfg)
	if err != nil {
		return nil, err
	}

	var chapters []string
	if f.chapters != "" {
		if chapters, err = readChapters(f.chapters); err != nil {
			return nil, err
		}
	}

	if f.dir != "" {
		return &pages.DirSource{Dir: f.dir, Chapters: chapters, Parser: parser, Logger: logger}, nil
	}

	src := &pages.FetchSource{
		Fetcher:  newFetcher(cfg, parser.Format, logger),
		Chapters: chapters,
		Parser:   parser,
	}
	if f.save {
		src.CacheDir = svc.Home.RunPagesDir(newRunID())
		logger.Info("caching fetched pages", "dir", src.CacheDir)
	}
	return src, nil
}
