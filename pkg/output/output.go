// Package output writes rendered pages and documents to the output
// directory.
//
// Card sheets are named file{n}.svg by page index, lineage pages
// front{position}.svg and cover{position}.svg, and the planner document
// summary.md. The directory is created when missing. Files written before
// a failure are left on disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/sheetprint/pkg/render/lineage"
	"github.com/matzehuels/sheetprint/pkg/svg"
)

// File names used by the three programs.
const (
	PDFName     = "output.pdf"
	SummaryName = "summary.md"
	SummaryPDF  = "summary.pdf"
)

// File is one written page.
type File struct {
	Path string
	Data []byte
}

// Paths returns the paths of files in order.
func Paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

// Contents returns the data of files in order.
func Contents(files []File) [][]byte {
	out := make([][]byte, len(files))
	for i, f := range files {
		out[i] = f.Data
	}
	return out
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}

// Export writes data to dir/name, creating dir when needed.
func Export(dir, name string, data []byte) (File, error) {
	if err := EnsureDir(dir); err != nil {
		return File{}, err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return File{}, fmt.Errorf("write %s: %w", path, err)
	}
	return File{Path: path, Data: data}, nil
}

// CardSheets writes one file{n}.svg per page.
func CardSheets(dir string, pages []svg.Document) ([]File, error) {
	files := make([]File, 0, len(pages))
	for n, doc := range pages {
		f, err := Export(dir, fmt.Sprintf("file%d.svg", n), doc.Bytes())
		if err != nil {
			return files, err
		}
		files = append(files, f)
	}
	return files, nil
}

// LineageSheets writes the front and cover page of every sheet, in sheet
// order with the front page first.
func LineageSheets(dir string, sheets []lineage.Sheet) ([]File, error) {
	files := make([]File, 0, 2*len(sheets))
	for _, s := range sheets {
		pos := s.Person.Position
		for _, p := range []struct {
			name string
			doc  svg.Document
		}{
			{fmt.Sprintf("front%d.svg", pos), s.Front},
			{fmt.Sprintf("cover%d.svg", pos), s.Cover},
		} {
			f, err := Export(dir, p.name, p.doc.Bytes())
			if err != nil {
				return files, err
			}
			files = append(files, f)
		}
	}
	return files, nil
}

// Summary writes the planner markdown document.
func Summary(dir, markdown string) (File, error) {
	return Export(dir, SummaryName, []byte(markdown))
}
