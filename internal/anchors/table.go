// Package anchors reconciles legacy stable anchor identifiers with the
// anchor names produced by the new documentation build.
package anchors

import (
	"fmt"
)

// StableID permanently identifies a conceptual anchor in the book,
// independent of the publishing system that renders it.
type StableID string

// Name is an anchor name that may be absent. The zero value is absent.
// An empty string is never a present name.
type Name struct {
	value string
	valid bool
}

// NameOf returns a present Name for s, or an absent Name when s is empty.
func NameOf(s string) Name {
	if s == "" {
		return Name{}
	}
	return Name{value: s, valid: true}
}

// Get returns the name and whether it is present.
func (n Name) Get() (string, bool) {
	return n.value, n.valid
}

// Valid reports whether the name is present.
func (n Name) Valid() bool {
	return n.valid
}

// String returns the name, or "" when absent.
func (n Name) String() string {
	return n.value
}

// Row is one entry of the anchor table.
type Row struct {
	ID     StableID
	Legacy Name // name used by the legacy (Sphinx) build
	New    Name // name used by the new build
}

// Table is an ordered set of rows keyed by StableID.
type Table struct {
	// Header is the first line of the source file, re-emitted on output.
	Header string

	rows  []Row
	index map[StableID]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[StableID]int)}
}

// Add appends a row. StableIDs must be unique.
func (t *Table) Add(row Row) error {
	if t.index == nil {
		t.index = make(map[StableID]int)
	}
	if _, exists := t.index[row.ID]; exists {
		return fmt.Errorf("duplicate stable ID %q", row.ID)
	}
	t.index[row.ID] = len(t.rows)
	t.rows = append(t.rows, row)
	return nil
}

// Lookup returns the row for id.
func (t *Table) Lookup(id StableID) (Row, bool) {
	i, ok := t.index[id]
	if !ok {
		return Row{}, false
	}
	return t.rows[i], true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in insertion order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}
