// Package xlsx reads rows from local Excel workbooks, so a spreadsheet
// exported from Google Sheets can be printed offline.
//
// The spreadsheet id is the path of the .xlsx file.
package xlsx

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/source"
)

// Ext is the file extension that selects this source.
const Ext = ".xlsx"

// IsWorkbook reports whether id names a local workbook rather than a
// spreadsheet id.
func IsWorkbook(id string) bool {
	return strings.EqualFold(filepath.Ext(id), Ext)
}

// Source implements [source.RowSource] for workbooks on disk.
type Source struct{}

// New creates a workbook source.
func New() *Source { return &Source{} }

func open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "workbook %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open workbook %s", path)
	}
	return f, nil
}

// Range reads rng from the workbook at path. Cells are returned as
// formatted by the workbook's number formats.
func (s *Source) Range(ctx context.Context, path, rng string) ([][]string, error) {
	ref, err := source.ParseRange(rng)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !slices.Contains(f.GetSheetList(), ref.Sheet) {
		return nil, errors.New(errors.ErrCodeSheetNotFound, "workbook %s has no sheet %q", path, ref.Sheet)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := f.GetRows(ref.Sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read sheet %q", ref.Sheet)
	}
	return ref.Slice(all), nil
}

// Sheets returns the sheet names in workbook order.
func (s *Source) Sheets(ctx context.Context, path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

var _ source.RowSource = (*Source)(nil)
