package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/swiftgg/docmigrate/internal/anchors"
	"github.com/swiftgg/docmigrate/internal/emit"
	"github.com/swiftgg/docmigrate/internal/pages"
	"github.com/swiftgg/docmigrate/internal/rewrite"
)

// Config holds docmigrate configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Reconcile ReconcileCfg `mapstructure:"reconcile" yaml:"reconcile"`
	Site      SiteCfg      `mapstructure:"site" yaml:"site"`
	Fetch     FetchCfg     `mapstructure:"fetch" yaml:"fetch"`
	Rewrite   RewriteCfg   `mapstructure:"rewrite" yaml:"rewrite"`
	Emit      EmitCfg      `mapstructure:"emit" yaml:"emit"`
}

// ReconcileCfg controls how legacy anchor names are split.
type ReconcileCfg struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"` // chapter/section delimiter
	Separator string `mapstructure:"separator" yaml:"separator"` // marks cross-chapter names
}

// SiteCfg locates the published new build.
type SiteCfg struct {
	BaseURL      string `mapstructure:"base_url" yaml:"base_url"`           // rendered pages
	DataURL      string `mapstructure:"data_url" yaml:"data_url"`           // render JSON
	Format       string `mapstructure:"format" yaml:"format"`               // "json" or "html"
	HTMLSelector string `mapstructure:"html_selector" yaml:"html_selector"` // CSS selector for HTML anchors
}

// FetchCfg tunes page downloads.
type FetchCfg struct {
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     int     `mapstructure:"max_retries" yaml:"max_retries"`
	RetryDelayMS   int     `mapstructure:"retry_delay_ms" yaml:"retry_delay_ms"`
	RateLimit      float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second, 0 = unlimited
}

// RewriteCfg lists the substitutions made by the cdn command.
type RewriteCfg struct {
	Extensions   []string         `mapstructure:"extensions" yaml:"extensions"`
	Replacements []ReplacementCfg `mapstructure:"replacements" yaml:"replacements"`
}

// ReplacementCfg is one from/to pair.
type ReplacementCfg struct {
	From string `mapstructure:"from" yaml:"from"`
	To   string `mapstructure:"to" yaml:"to"`
}

// EmitCfg configures the head command.
type EmitCfg struct {
	Template string `mapstructure:"template" yaml:"template"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	var repl []ReplacementCfg
	for _, r := range rewrite.DefaultReplacements() {
		repl = append(repl, ReplacementCfg{From: r.From, To: r.To})
	}
	return &Config{
		Reconcile: ReconcileCfg{
			Delimiter: anchors.DefaultDelimiter,
			Separator: anchors.DefaultSeparator,
		},
		Site: SiteCfg{
			BaseURL:      "https://docs.swift.org/swift-book/documentation/the-swift-programming-language/",
			DataURL:      "https://docs.swift.org/swift-book/data/documentation/the-swift-programming-language/",
			Format:       string(pages.FormatJSON),
			HTMLSelector: pages.DefaultSelector,
		},
		Fetch: FetchCfg{
			TimeoutSeconds: 30,
			MaxRetries:     3,
			RetryDelayMS:   1000,
			RateLimit:      5.0,
		},
		Rewrite: RewriteCfg{
			Extensions:   []string{".html"},
			Replacements: repl,
		},
		Emit: EmitCfg{
			Template: emit.DefaultTemplate,
		},
	}
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.Reconcile.Delimiter == "" {
		return errors.New("reconcile.delimiter must not be empty")
	}
	if c.Reconcile.Separator == "" {
		return errors.New("reconcile.separator must not be empty")
	}
	if c.Reconcile.Delimiter == c.Reconcile.Separator {
		return fmt.Errorf("reconcile.delimiter and reconcile.separator are both %q", c.Reconcile.Delimiter)
	}
	if _, err := pages.ParseFormat(c.Site.Format); err != nil {
		return fmt.Errorf("site.format: %w", err)
	}
	if c.Fetch.MaxRetries < 0 || c.Fetch.TimeoutSeconds < 0 || c.Fetch.RateLimit < 0 {
		return errors.New("fetch settings must not be negative")
	}
	for i, r := range c.Rewrite.Replacements {
		if r.From == "" {
			return fmt.Errorf("rewrite.replacements[%d].from must not be empty", i)
		}
	}
	return nil
}

// ReconcileOptions converts the reconcile section for anchors.Reconcile.
func (c *Config) ReconcileOptions() anchors.Options {
	return anchors.Options{Delimiter: c.Reconcile.Delimiter, Separator: c.Reconcile.Separator}
}

// PageFormat returns the configured page format.
func (c *Config) PageFormat() pages.Format {
	f, _ := pages.ParseFormat(c.Site.Format)
	return f
}

// FetchTimeout returns the per-request timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// RetryDelay returns the base delay between fetch attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Fetch.RetryDelayMS) * time.Millisecond
}

// Attempts returns the total number of tries per page.
func (c *Config) Attempts() uint {
	return uint(c.Fetch.MaxRetries) + 1
}

// Replacements converts the rewrite section for rewrite.Rewriter.
func (c *Config) Replacements() []rewrite.Replacement {
	out := make([]rewrite.Replacement, len(c.Rewrite.Replacements))
	for i, r := range c.Rewrite.Replacements {
		out[i] = rewrite.Replacement{From: r.From, To: r.To}
	}
	return out
}
