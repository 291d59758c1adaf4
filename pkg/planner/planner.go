// Package planner builds the day planner document: it turns the overview
// sheet and the per-day sheets into entity.Day values and assembles the
// markdown summary.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/sheetprint/pkg/entity"
)

// Defaults of the planner spreadsheet layout.
const (
	SummaryRange = "'Přehled'!B2:E15"
	SheetPrefix  = "den "
	DayCells     = "A1:I8"
)

// Day sheet geometry: three blocks of three rows, nine columns (A..I).
const (
	blocks      = 3
	blockHeight = 3
	sheetRows   = blocks*blockHeight - 1
	sheetCols   = 9
	cthColumn   = sheetCols - 1
)

// DaySheets returns the titles starting with prefix, in workbook order.
func DaySheets(titles []string, prefix string) []string {
	var out []string
	for _, t := range titles {
		if strings.HasPrefix(t, prefix) {
			out = append(out, t)
		}
	}
	return out
}

// BuildDays parses the overview rows. Row i describes day i+1, dated
// start plus i days, whose program lives on sheets[i].
func BuildDays(summary [][]string, sheets []string, start time.Time) ([]entity.Day, error) {
	rows, err := entity.ParseRows(summary, entity.ParseDaySummary)
	if err != nil {
		return nil, err
	}
	if len(rows) > len(sheets) {
		return nil, fmt.Errorf("overview has %d days but only %d day sheets were found", len(rows), len(sheets))
	}
	days := make([]entity.Day, 0, len(rows))
	for i, s := range rows {
		days = append(days, entity.Day{
			Number:     i + 1,
			Date:       start.AddDate(0, 0, i),
			SheetName:  sheets[i],
			DaySummary: s,
		})
	}
	return days, nil
}

// Skipped identifies a block of a day sheet that had no part name.
type Skipped struct {
	Sheet string
	Block int // 1-based
}

// ParseDayParts reads the three program blocks of a day sheet.
//
// Each block is a header row whose first cell is "<part>: ..." followed by
// keys in columns B..H, and a value row with values in B..H and "TRUE" in
// column I for CTH programs. Blocks without a part name are reported as
// skipped. Empty values are dropped; the remaining keys keep sheet order.
func ParseDayParts(sheet string, rows [][]string) ([]entity.DayPart, []Skipped, error) {
	grid := pad(rows)

	var (
		parts   []entity.DayPart
		skipped []Skipped
	)
	for b := range blocks {
		start := b * blockHeight
		header, values := grid[start], grid[start+1]

		name, _, _ := strings.Cut(header[0], ":")
		name = strings.TrimSpace(name)
		if name == "" {
			skipped = append(skipped, Skipped{Sheet: sheet, Block: b + 1})
			continue
		}
		typ, err := entity.ParseProgramType(name)
		if err != nil {
			var pe *entity.ParseError
			if errors.As(err, &pe) {
				pe.Row = start
			}
			return nil, nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}

		part := entity.DayPart{Name: typ, CTH: values[cthColumn] == "TRUE"}
		for c := 1; c < cthColumn; c++ {
			v := strings.TrimSpace(values[c])
			if v == "" {
				continue
			}
			part.Values = append(part.Values, entity.Field{Key: header[c], Value: v})
		}
		parts = append(parts, part)
	}
	return parts, skipped, nil
}

// pad returns a sheetRows×sheetCols copy of rows; the spreadsheet service
// drops trailing empty rows and cells.
func pad(rows [][]string) [][]string {
	grid := make([][]string, sheetRows)
	for i := range grid {
		grid[i] = make([]string, sheetCols)
		if i < len(rows) {
			copy(grid[i], rows[i])
		}
	}
	return grid
}
