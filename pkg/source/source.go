// Package source defines how rows are fetched from a spreadsheet.
//
// A [RowSource] answers range-addressed reads in A1 notation, for example
// "'Vybavení'!B2:F" (open-ended rows) or "'den 1'!A1:I8". Results follow
// the conventions of the Google Sheets values API: cells are formatted
// strings, trailing empty cells and trailing empty rows are omitted.
//
// Implementations live in the subpackages: sheets (Google Sheets REST)
// and xlsx (local workbooks).
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/sheetprint/pkg/errors"
)

// RowSource reads cell ranges from a spreadsheet identified by id.
type RowSource interface {
	// Range returns the rows of rng, an A1 reference with a sheet name.
	Range(ctx context.Context, id, rng string) ([][]string, error)
	// Sheets returns the sheet (tab) titles in workbook order.
	Sheets(ctx context.Context, id string) ([]string, error)
}

// Ref is a parsed A1 range. Columns and rows are 1-based; an EndRow of 0
// means the range extends to the last row with data.
type Ref struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// A1 formats a range on sheet, quoting the sheet title.
func A1(sheet, cells string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}

// ParseRange parses "<sheet>!<from>:<to>" where the sheet may be quoted,
// <from> is a cell like B2 and <to> a cell (F20) or a bare column (F).
func ParseRange(s string) (Ref, error) {
	sheet, cells, err := splitSheet(s)
	if err != nil {
		return Ref{}, err
	}
	from, to, ok := strings.Cut(cells, ":")
	if !ok {
		to = from
	}

	var r Ref
	r.Sheet = sheet
	col, row, err := excelize.SplitCellName(from)
	if err != nil {
		return Ref{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "range %q: start cell", s)
	}
	if r.StartCol, err = excelize.ColumnNameToNumber(col); err != nil {
		return Ref{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "range %q: start column", s)
	}
	r.StartRow = row

	if col, row, err := excelize.SplitCellName(to); err == nil {
		r.EndCol, _ = excelize.ColumnNameToNumber(col)
		r.EndRow = row
	} else if r.EndCol, err = excelize.ColumnNameToNumber(to); err != nil {
		return Ref{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "range %q: end", s)
	}

	if r.EndCol < r.StartCol || (r.EndRow != 0 && r.EndRow < r.StartRow) {
		return Ref{}, errors.New(errors.ErrCodeInvalidRange, "range %q ends before it starts", s)
	}
	return r, nil
}

func splitSheet(s string) (sheet, cells string, err error) {
	if strings.HasPrefix(s, "'") {
		var b strings.Builder
		for i := 1; i < len(s); i++ {
			if s[i] != '\'' {
				b.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			rest := s[i+1:]
			if !strings.HasPrefix(rest, "!") {
				return "", "", errors.New(errors.ErrCodeInvalidRange, "range %q: expected ! after sheet name", s)
			}
			return b.String(), rest[1:], nil
		}
		return "", "", errors.New(errors.ErrCodeInvalidRange, "range %q: unterminated sheet name", s)
	}
	sheet, cells, ok := strings.Cut(s, "!")
	if !ok {
		return "", "", errors.New(errors.ErrCodeInvalidRange, "range %q has no sheet name", s)
	}
	return sheet, cells, nil
}

// String formats r back into A1 notation.
func (r Ref) String() string {
	from, _ := excelize.CoordinatesToCellName(r.StartCol, r.StartRow)
	to, _ := excelize.ColumnNumberToName(r.EndCol)
	if r.EndRow > 0 {
		to = fmt.Sprintf("%s%d", to, r.EndRow)
	}
	return A1(r.Sheet, from+":"+to)
}

// Slice cuts the window described by r out of a full sheet (rows starting
// at A1) and trims it the way the values API does.
func (r Ref) Slice(all [][]string) [][]string {
	var out [][]string
	for i := r.StartRow - 1; i < len(all); i++ {
		if r.EndRow > 0 && i >= r.EndRow {
			break
		}
		row := all[i]
		var cells []string
		if r.StartCol-1 < len(row) {
			cells = row[r.StartCol-1 : min(len(row), r.EndCol)]
		}
		out = append(out, TrimRow(cells))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// TrimRow drops trailing empty cells.
func TrimRow(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	if n == 0 {
		return []string{}
	}
	return append([]string(nil), cells[:n]...)
}
