package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"github.com/swiftgg/docmigrate/internal/anchors"
)

// StatusError is returned for a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// Is makes a 404 match ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Fetcher downloads chapter pages of the published new build.
type Fetcher struct {
	BaseURL  string
	Format   Format
	Client   *http.Client  // defaults to a client with a 30s timeout
	Limiter  *rate.Limiter // nil means unthrottled
	Attempts uint          // total attempts per page, default 3
	Delay    time.Duration // base retry delay, default 1s
	Logger   *slog.Logger
}

// URL returns the address of a chapter page. Render JSON lives at
// <base>/<chapter>.json; HTML pages are served at <base>/<chapter>.
func (f *Fetcher) URL(chapter string) (string, error) {
	name := chapter
	if f.Format != FormatHTML {
		name += FormatJSON.Ext()
	}
	u, err := url.JoinPath(f.BaseURL, name)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", f.BaseURL, err)
	}
	return u, nil
}

// Fetch downloads one chapter. Server errors and transport failures are
// retried; other non-200 responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, chapter string) (*Page, error) {
	u, err := f.URL(chapter)
	if err != nil {
		return nil, err
	}

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	attempts := f.Attempts
	if attempts == 0 {
		attempts = 3
	}
	delay := f.Delay
	if delay == 0 {
		delay = time.Second
	}
	log := f.logger()

	var body []byte
	err = retry.Do(
		func() error {
			// A limiter or request error repeats identically on every attempt.
			if f.Limiter != nil {
				if err := f.Limiter.Wait(ctx); err != nil {
					return retry.Unrecoverable(fmt.Errorf("rate limiter: %w", err))
				}
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				_, _ = io.Copy(io.Discard, resp.Body)
				return &StatusError{URL: u, Code: resp.StatusCode}
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && retryable(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("retrying page fetch", "url", u, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chapter %s: %w", chapter, err)
	}

	log.Debug("fetched page", "url", u, "bytes", len(body))
	return &Page{ID: chapter + f.Format.Ext(), URL: u, Body: body}, nil
}

// FetchAll downloads every chapter in order, stopping at the first failure.
func (f *Fetcher) FetchAll(ctx context.Context, chapters []string) ([]*Page, error) {
	pages := make([]*Page, 0, len(chapters))
	for _, ch := range chapters {
		p, err := f.Fetch(ctx, ch)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	f.logger().Info("fetched pages", "base_url", f.BaseURL, "count", len(pages))
	return pages, nil
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}

// retryable reports whether a failed request is worth repeating. Per-request
// timeouts are; cancellation of the run is checked by the caller.
func retryable(err error) bool {
	if !retry.IsRecoverable(err) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return true
}

// FetchSource fetches the listed chapters and extracts their anchors. When
// CacheDir is set the raw pages are saved there as well.
type FetchSource struct {
	Fetcher  *Fetcher
	Chapters []string
	Parser   Parser
	Fs       afero.Fs
	CacheDir string
}

// Anchors implements Source.
func (s *FetchSource) Anchors(ctx context.Context) ([]anchors.PageAnchor, error) {
	pages, err := s.Fetcher.FetchAll(ctx, s.Chapters)
	if err != nil {
		return nil, err
	}
	if s.CacheDir != "" {
		if err := SavePages(s.Fs, s.CacheDir, pages); err != nil {
			return nil, err
		}
	}
	return s.Parser.ParseAll(pages)
}
