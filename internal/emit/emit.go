// Package emit prints one shell command per chapter instead of running it.
package emit

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/template"

	"al.essio.dev/pkg/shellescape"
)

// DefaultTemplate issues a HEAD request against each chapter page.
const DefaultTemplate = `curl --head --silent {{shellquote .URL}}`

// Command is the data available to a command template.
type Command struct {
	Chapter string
	URL     string
}

// Emitter renders a command template for every chapter.
type Emitter struct {
	baseURL string
	tmpl    *template.Template
}

// New parses tmpl. An empty tmpl uses DefaultTemplate.
func New(tmpl, baseURL string) (*Emitter, error) {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	t, err := template.New("command").
		Funcs(template.FuncMap{"shellquote": shellescape.Quote}).
		Option("missingkey=error").
		Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("invalid command template: %w", err)
	}
	return &Emitter{baseURL: baseURL, tmpl: t}, nil
}

// Emit writes one command line per chapter to w.
func (e *Emitter) Emit(w io.Writer, chapters []string) error {
	for _, ch := range chapters {
		u, err := url.JoinPath(e.baseURL, ch)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", e.baseURL, err)
		}
		var sb strings.Builder
		if err := e.tmpl.Execute(&sb, Command{Chapter: ch, URL: u}); err != nil {
			return fmt.Errorf("failed to render command for %s: %w", ch, err)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), "\n")); err != nil {
			return err
		}
	}
	return nil
}
