// Package entity holds the typed records built from spreadsheet rows and
// the parsers that build them.
//
// Every parser takes one row of string cells in the fixed column order of
// its kind. Trailing cells the spreadsheet service leaves out are treated
// as empty; rows with more cells than the kind has columns are rejected.
// Failures are reported as *ParseError.
package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/sheetprint/pkg/textutil"
)

// Kind names an entity variant.
type Kind string

const (
	KindEquipment Kind = "equipment"
	KindMonster   Kind = "monster"
	KindCurse     Kind = "curse"
	KindBonus     Kind = "bonus"
	KindPerson    Kind = "person"
	KindDay       Kind = "day"
	KindDayPart   Kind = "day part"
)

// Entity is implemented by every record that ends up on a page.
type Entity interface {
	Kind() Kind
	// Label is the display name the symbol identifier is derived from.
	Label() string
	// Quantity is how many copies of the entity are placed.
	Quantity() int
}

var (
	// ErrArity is reported when a row has more cells than its kind.
	ErrArity = errors.New("wrong number of cells")
	// ErrOutOfRange is reported for integers outside the allowed interval.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidEnum is reported for values outside a fixed set.
	ErrInvalidEnum = errors.New("invalid value")
	// ErrMissing is reported for an empty required cell.
	ErrMissing = errors.New("required value is empty")
	// ErrNoIdentifier is reported for names without a letter or digit,
	// which cannot be turned into a symbol identifier.
	ErrNoIdentifier = errors.New("name has no letters or digits")
)

// ParseError describes why a row could not be turned into an entity.
type ParseError struct {
	Kind   Kind
	Row    int    // zero-based index within the fetched range
	Column string // empty when the row as a whole is malformed
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s row %d", e.Kind, e.Row+1)
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %s", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (%q)", e.Value)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseRows applies parse to every row in order and stops at the first
// failure. The row index of a *ParseError is filled in here.
func ParseRows[T any](rows [][]string, parse func([]string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		v, err := parse(row)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Row = i
				return nil, pe
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// row is a fixed-width view of one spreadsheet row.
type row struct {
	kind    Kind
	columns []string
	cells   []string
}

func newRow(kind Kind, columns []string, cells []string) (row, error) {
	if len(cells) > len(columns) {
		return row{}, &ParseError{
			Kind: kind,
			Err:  fmt.Errorf("%w: got %d, want at most %d", ErrArity, len(cells), len(columns)),
		}
	}
	padded := make([]string, len(columns))
	copy(padded, cells)
	return row{kind: kind, columns: columns, cells: padded}, nil
}

func (r row) str(i int) string { return r.cells[i] }

// name returns the trimmed name in cell i. It must be non-empty and yield
// a symbol identifier.
func (r row) name(i int) (string, error) {
	n := strings.TrimSpace(r.cells[i])
	if n == "" {
		return "", r.fail(i, ErrMissing)
	}
	if textutil.ID(n) == "" {
		return "", r.fail(i, ErrNoIdentifier)
	}
	return n, nil
}

func (r row) fail(i int, err error) *ParseError {
	return &ParseError{Kind: r.kind, Column: r.columns[i], Value: r.cells[i], Err: err}
}

// integer parses cell i and checks it against [lo, hi).
func (r row) integer(i, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(r.cells[i]))
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return 0, r.fail(i, fmt.Errorf("not an integer: %w", err))
	}
	if n < lo || n >= hi {
		return 0, r.fail(i, fmt.Errorf("%w: %d not in [%d, %d)", ErrOutOfRange, n, lo, hi))
	}
	return n, nil
}
