package anchors

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultHeader is written when a table has no header of its own.
const DefaultHeader = "stable_id\tlegacy_name\tnew_name"

// fieldCount is the number of tab-separated fields in every data line.
const fieldCount = 3

// ParseError reports a malformed line of a table file.
type ParseError struct {
	Line    int    // 1-based, counting the header
	Content string // the offending line
	Fields  int    // number of fields found
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: expected %d tab-separated fields, got %d: %q",
		e.Line, fieldCount, e.Fields, e.Content)
}

// ReadTable parses a tab-separated anchor table. The first line is a header
// and is kept verbatim; every following line must have exactly three
// fields: stable ID, legacy name, new name. Empty fields are absent names.
// Only empty lines at the end of the input are ignored.
func ReadTable(r io.Reader) (*Table, error) {
	t := NewTable()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	blank := 0 // first empty line not yet followed by data
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if lineNo == 1 {
			t.Header = line
			continue
		}
		if line == "" {
			if blank == 0 {
				blank = lineNo
			}
			continue
		}
		if blank != 0 {
			return nil, &ParseError{Line: blank, Fields: 1}
		}

		fields := strings.Split(line, "\t")
		if len(fields) != fieldCount {
			return nil, &ParseError{Line: lineNo, Content: line, Fields: len(fields)}
		}
		if fields[0] == "" {
			return nil, fmt.Errorf("line %d: empty stable ID: %q", lineNo, line)
		}

		row := Row{
			ID:     StableID(fields[0]),
			Legacy: NameOf(fields[1]),
			New:    NameOf(fields[2]),
		}
		if err := t.Add(row); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return t, nil
}

// WriteTable writes header followed by one tab-separated line per row.
// An empty header is replaced with DefaultHeader.
func WriteTable(w io.Writer, header string, rows []Row) error {
	if header == "" {
		header = DefaultHeader
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", r.ID, r.Legacy, r.New); err != nil {
			return err
		}
	}
	return bw.Flush()
}
