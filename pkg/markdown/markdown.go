// Package markdown has the few markdown builders the planner document
// needs. Output is plain strings so callers can concatenate freely.
package markdown

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRowLength is returned when a table row does not match the header.
var ErrRowLength = errors.New("row length does not match header length")

// Header returns a level-n ATX heading.
func Header(level int, text string) string {
	return strings.Repeat("#", level) + " " + text + "\n"
}

// CenteredHeader returns an HTML heading centered with inline style.
func CenteredHeader(level int, text string) string {
	return fmt.Sprintf("<h%d style='text-align: center;'>%s</h%d>\n\n", level, text, level)
}

// ListItem returns a bullet item.
func ListItem(text string) string {
	return "* " + text + "\n"
}

// PageBreak forces a page break when the document is printed.
func PageBreak() string {
	return "<div style='page-break-after: always;'></div>\n"
}

// Table is a markdown table with centered columns.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. It fails when the row length differs from the
// number of headers.
func (t *Table) AddRow(cells ...string) error {
	if len(cells) != len(t.headers) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrRowLength, len(cells), len(t.headers))
	}
	t.rows = append(t.rows, cells)
	return nil
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return len(t.rows) }

// String renders the table.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(t.headers, " | ") + " |\n")
	sep := make([]string, len(t.headers))
	for i := range sep {
		sep[i] = ":---:"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for i, row := range t.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |")
	}
	b.WriteByte('\n')
	return b.String()
}
