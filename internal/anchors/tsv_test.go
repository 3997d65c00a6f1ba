package anchors

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadTable(t *testing.T) {
	t.Run("parses rows after header", func(t *testing.T) {
		in := "id\tsphinx\tdocc\n" +
			"S1\tbasicOperators-terminology\t\n" +
			"S2\t\tTerminology\n" +
			"S3\t\t\n"
		table, err := ReadTable(strings.NewReader(in))
		if err != nil {
			t.Fatalf("ReadTable() error = %v", err)
		}
		if table.Header != "id\tsphinx\tdocc" {
			t.Errorf("Header = %q", table.Header)
		}
		want := []Row{
			{ID: "S1", Legacy: NameOf("basicOperators-terminology")},
			{ID: "S2", New: NameOf("Terminology")},
			{ID: "S3"},
		}
		if diff := cmp.Diff(want, table.Rows()); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("strips carriage returns and trailing empty lines", func(t *testing.T) {
		in := "header\r\nS1\ta-b\tB\r\n\r\n\n"
		table, err := ReadTable(strings.NewReader(in))
		if err != nil {
			t.Fatalf("ReadTable() error = %v", err)
		}
		if table.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", table.Len())
		}
		row, _ := table.Lookup("S1")
		if row.New.String() != "B" {
			t.Errorf("New = %q, want B", row.New)
		}
	})

	t.Run("empty line before data is malformed", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader("h\nS1\ta-b\t\n\nS2\tc-d\t\n"))
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if perr.Line != 3 || perr.Content != "" {
			t.Errorf("ParseError = %+v, want line 3 with empty content", perr)
		}
	})

	t.Run("whitespace-only line is malformed", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader("h\nS1\ta-b\t\n   \nS2\tc-d\t\n"))
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Line != 3 || perr.Fields != 1 {
			t.Fatalf("expected 1-field ParseError on line 3, got %v", err)
		}
	})

	t.Run("tabs-only line has an empty stable ID", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader("h\nS1\ta-b\t\n\t\t\nS2\tc-d\t\n"))
		if err == nil || !strings.Contains(err.Error(), "line 3: empty stable ID") {
			t.Fatalf("expected empty stable ID error on line 3, got %v", err)
		}
	})

	t.Run("empty input yields empty table", func(t *testing.T) {
		table, err := ReadTable(strings.NewReader(""))
		if err != nil {
			t.Fatalf("ReadTable() error = %v", err)
		}
		if table.Len() != 0 {
			t.Errorf("Len() = %d, want 0", table.Len())
		}
	})

	t.Run("wrong field count names the line", func(t *testing.T) {
		in := "header\nS1\ta\t\nS2\tonly-two\n"
		_, err := ReadTable(strings.NewReader(in))
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if perr.Line != 3 {
			t.Errorf("Line = %d, want 3", perr.Line)
		}
		if perr.Content != "S2\tonly-two" {
			t.Errorf("Content = %q", perr.Content)
		}
		if perr.Fields != 2 {
			t.Errorf("Fields = %d, want 2", perr.Fields)
		}
		if !strings.Contains(err.Error(), "line 3") {
			t.Errorf("error should mention line: %v", err)
		}
	})

	t.Run("too many fields", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader("h\nS1\ta\tb\tc\n"))
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Fields != 4 {
			t.Fatalf("expected 4-field ParseError, got %v", err)
		}
	})

	t.Run("duplicate stable ID", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader("h\nS1\ta\t\nS1\tb\t\n"))
		if err == nil || !strings.Contains(err.Error(), "duplicate") {
			t.Fatalf("expected duplicate error, got %v", err)
		}
	})
}

func TestWriteTable(t *testing.T) {
	rows := []Row{
		{ID: "S1", Legacy: NameOf("basicOperators-terminology"), New: NameOf("Terminology")},
		{ID: "S2", Legacy: NameOf("advancedOperators/overflow")},
		{ID: "S3"},
	}

	t.Run("keeps header and order", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteTable(&buf, "id\tsphinx\tdocc", rows); err != nil {
			t.Fatalf("WriteTable() error = %v", err)
		}
		want := "id\tsphinx\tdocc\n" +
			"S1\tbasicOperators-terminology\tTerminology\n" +
			"S2\tadvancedOperators/overflow\t\n" +
			"S3\t\t\n"
		if diff := cmp.Diff(want, buf.String()); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("default header", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteTable(&buf, "", nil); err != nil {
			t.Fatalf("WriteTable() error = %v", err)
		}
		if buf.String() != DefaultHeader+"\n" {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("round trips through ReadTable", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteTable(&buf, "", rows); err != nil {
			t.Fatalf("WriteTable() error = %v", err)
		}
		table, err := ReadTable(&buf)
		if err != nil {
			t.Fatalf("ReadTable() error = %v", err)
		}
		if diff := cmp.Diff(rows, table.Rows()); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})
}
