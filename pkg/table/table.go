// Package table holds raw tabular input as read from CSV and XLSX files,
// before any cleaning. Rows may be ragged; cells are kept as text.
package table

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Table is a header plus rows of text cells.
type Table struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// New creates a table with the given header and rows.
func New(columns []string, rows ...[]string) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no header and no rows.
func (t *Table) Empty() bool {
	return t == nil || (len(t.Columns) == 0 && len(t.Rows) == 0)
}

// Cell returns the trimmed cell at row, col or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Find returns the index of the first column whose header matches any alias.
// Matching ignores case, surrounding space and the space/underscore distinction.
// Aliases are tried in order so earlier aliases take precedence.
func (t *Table) Find(aliases ...string) (int, bool) {
	if t == nil {
		return -1, false
	}
	folded := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		folded[i] = HeaderKey(c)
	}
	for _, alias := range aliases {
		want := HeaderKey(alias)
		for i, have := range folded {
			if have != "" && have == want {
				return i, true
			}
		}
	}
	return -1, false
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}

// DropColumns returns a copy without the given column indexes.
func (t *Table) DropColumns(idx ...int) *Table {
	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		drop[i] = struct{}{}
	}
	keep := func(cells []string) []string {
		out := make([]string, 0, len(cells))
		for i, c := range cells {
			if _, ok := drop[i]; !ok {
				out = append(out, c)
			}
		}
		return out
	}

	out := &Table{Columns: keep(t.Columns), Rows: make([][]string, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = keep(r)
	}
	return out
}

// Width returns the widest record, header included.
func (t *Table) Width() int {
	w := len(t.Columns)
	for _, r := range t.Rows {
		w = max(w, len(r))
	}
	return w
}

var folder = cases.Fold()

// HeaderKey folds a column header for alias comparison.
func HeaderKey(s string) string {
	s = folder.String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}
		return r
	}, s)
}
