package pages

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/swiftgg/docmigrate/internal/anchors"
)

const basicOperatorsJSON = `{
  "identifier": {"url": "doc://tspl/documentation/the-swift-programming-language/basicoperators"},
  "primaryContentSections": [
    {
      "kind": "content",
      "content": [
        {"type": "paragraph", "inlineContent": []},
        {"type": "heading", "level": 2, "text": "Terminology", "anchor": "Terminology"},
        {"type": "heading", "level": 2, "text": "Assignment Operator", "anchor": "Assignment-Operator"},
        {"type": "codeListing", "code": ["let b = 10"]}
      ]
    },
    {
      "kind": "content",
      "content": [
        {"type": "heading", "level": 3, "text": "Remainder Operator", "anchor": "Remainder-Operator"}
      ]
    }
  ]
}`

func TestParseRenderJSON(t *testing.T) {
	t.Run("collects anchors across sections", func(t *testing.T) {
		got, err := ParseRenderJSON("basicoperators.json", []byte(basicOperatorsJSON))
		if err != nil {
			t.Fatalf("ParseRenderJSON() error = %v", err)
		}
		want := []anchors.PageAnchor{
			{Page: "basicoperators.json", Anchor: "Terminology"},
			{Page: "basicoperators.json", Anchor: "Assignment-Operator"},
			{Page: "basicoperators.json", Anchor: "Remainder-Operator"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("anchors mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("page without content sections has no anchors", func(t *testing.T) {
		got, err := ParseRenderJSON("index.json", []byte(`{"topicSections": []}`))
		if err != nil {
			t.Fatalf("ParseRenderJSON() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no anchors, got %v", got)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRenderJSON("broken.json", []byte(`{"primaryContentSections": [`))
		if err == nil || !strings.Contains(err.Error(), "broken.json") {
			t.Fatalf("expected error naming the page, got %v", err)
		}
	})

	t.Run("schema violation", func(t *testing.T) {
		_, err := ParseRenderJSON("odd.json", []byte(`{"primaryContentSections": {"content": []}}`))
		if err == nil {
			t.Fatal("expected schema error")
		}
	})

	t.Run("non-string anchor is rejected", func(t *testing.T) {
		doc := `{"primaryContentSections": [{"content": [{"anchor": 7}]}]}`
		if _, err := ParseRenderJSON("num.json", []byte(doc)); err == nil {
			t.Fatal("expected schema error for numeric anchor")
		}
	})
}

const closuresHTML = `<!doctype html>
<html><head><title>Closures</title></head>
<body>
<nav id="sidebar"></nav>
<h1 id="Closures">Closures</h1>
<p id="intro">Closures are self-contained blocks.</p>
<h2 id="Closure-Expressions">Closure Expressions</h2>
<h3 id="Trailing-Closures">Trailing Closures</h3>
<h3>Untitled</h3>
</body></html>`

func TestParseHTML(t *testing.T) {
	t.Run("default selector takes headings", func(t *testing.T) {
		sel, err := CompileSelector(DefaultSelector)
		if err != nil {
			t.Fatalf("CompileSelector() error = %v", err)
		}
		got, err := ParseHTML("closures.html", strings.NewReader(closuresHTML), sel)
		if err != nil {
			t.Fatalf("ParseHTML() error = %v", err)
		}
		want := []anchors.PageAnchor{
			{Page: "closures.html", Anchor: "Closures"},
			{Page: "closures.html", Anchor: "Closure-Expressions"},
			{Page: "closures.html", Anchor: "Trailing-Closures"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("anchors mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil selector takes every id", func(t *testing.T) {
		got, err := ParseHTML("closures.html", strings.NewReader(closuresHTML), nil)
		if err != nil {
			t.Fatalf("ParseHTML() error = %v", err)
		}
		if len(got) != 5 {
			t.Errorf("expected 5 anchors, got %d: %v", len(got), got)
		}
		if got[0].Anchor != "sidebar" {
			t.Errorf("first anchor = %q, want sidebar", got[0].Anchor)
		}
	})

	t.Run("invalid selector", func(t *testing.T) {
		if _, err := CompileSelector("h2[id"); err == nil {
			t.Fatal("expected selector error")
		}
	})

	t.Run("empty selector compiles to nil", func(t *testing.T) {
		sel, err := CompileSelector("")
		if err != nil || sel != nil {
			t.Fatalf("CompileSelector(\"\") = %v, %v", sel, err)
		}
	})
}

func TestReadChapters(t *testing.T) {
	in := "# chapters of the book\nthebasics\n\nbasicoperators  \r\n  closures\n"
	got, err := ReadChapters(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadChapters() error = %v", err)
	}
	want := []string{"thebasics", "basicoperators", "closures"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chapters mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "json": FormatJSON, "html": FormatHTML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestDirSource(t *testing.T) {
	memFs := afero.NewMemMapFs()
	files := map[string]string{
		"/build/basicoperators.json": basicOperatorsJSON,
		"/build/closures.json":       `{"primaryContentSections": [{"content": [{"anchor": "Trailing-Closures"}]}]}`,
		"/build/closures.html":       closuresHTML,
		"/build/notes.txt":           "ignored",
	}
	for path, body := range files {
		if err := afero.WriteFile(memFs, path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := memFs.MkdirAll("/build/images.json", 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("reads every page in lexical order", func(t *testing.T) {
		src := &DirSource{Fs: memFs, Dir: "/build", Parser: Parser{Format: FormatJSON}}
		got, err := src.Anchors(context.Background())
		if err != nil {
			t.Fatalf("Anchors() error = %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("expected 4 anchors, got %d: %v", len(got), got)
		}
		if got[3] != (anchors.PageAnchor{Page: "closures.json", Anchor: "Trailing-Closures"}) {
			t.Errorf("last anchor = %v", got[3])
		}
	})

	t.Run("html format", func(t *testing.T) {
		src := &DirSource{Fs: memFs, Dir: "/build", Parser: Parser{Format: FormatHTML}}
		got, err := src.Anchors(context.Background())
		if err != nil {
			t.Fatalf("Anchors() error = %v", err)
		}
		if len(got) != 5 || got[0].Page != "closures.html" {
			t.Errorf("unexpected anchors: %v", got)
		}
	})

	t.Run("chapter list restricts and orders pages", func(t *testing.T) {
		src := &DirSource{
			Fs: memFs, Dir: "/build", Chapters: []string{"closures", "basicoperators"},
			Parser: Parser{Format: FormatJSON},
		}
		pages, err := src.Pages(context.Background())
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}
		if len(pages) != 2 || pages[0].ID != "closures.json" {
			t.Errorf("unexpected pages: %v", pages)
		}
	})

	t.Run("missing chapter page fails", func(t *testing.T) {
		src := &DirSource{Fs: memFs, Dir: "/build", Chapters: []string{"generics"}}
		_, err := src.Anchors(context.Background())
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected not-exist error, got %v", err)
		}
		if !strings.Contains(err.Error(), "generics.json") {
			t.Errorf("error should name the page: %v", err)
		}
	})

	t.Run("missing directory fails", func(t *testing.T) {
		src := &DirSource{Fs: memFs, Dir: "/nowhere"}
		if _, err := src.Anchors(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestSavePages(t *testing.T) {
	memFs := afero.NewMemMapFs()
	pages := []*Page{
		{ID: "closures.json", Body: []byte("{}")},
		{ID: "generics.json", Body: []byte(`{"a":1}`)},
	}
	if err := SavePages(memFs, "/cache/run", pages); err != nil {
		t.Fatalf("SavePages() error = %v", err)
	}
	data, err := afero.ReadFile(memFs, "/cache/run/generics.json")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("saved body = %q", data)
	}
}
