package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// RSVG converts SVG pages with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RSVG struct {
	bin string
}

// NewRSVG creates an rsvg-convert converter.
func NewRSVG() *RSVG { return &RSVG{bin: "rsvg-convert"} }

// Available reports whether rsvg-convert is on PATH.
func (r *RSVG) Available() bool {
	_, err := exec.LookPath(r.bin)
	return err == nil
}

// SVGToPDF writes the pages to a temporary directory and lets rsvg-convert
// combine them; each page keeps the size declared by its SVG root.
func (r *RSVG) SVGToPDF(ctx context.Context, pages [][]byte, _ PageSize) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if !r.Available() {
		return nil, fmt.Errorf("%w: PDF export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", ErrPDFGeneration)
	}

	dir, err := os.MkdirTemp("", "sheetprint-rsvg-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"-f", "pdf"}
	for i, p := range pages {
		path := filepath.Join(dir, fmt.Sprintf("page%03d.svg", i))
		if err := os.WriteFile(path, p, 0o600); err != nil {
			return nil, fmt.Errorf("write page: %w", err)
		}
		args = append(args, path)
	}

	cmd := exec.CommandContext(ctx, r.bin, args...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: rsvg-convert: %v: %s", ErrPDFGeneration, err, errBuf.String())
	}
	return out.Bytes(), nil
}

// HTMLToPDF is not supported: librsvg only reads SVG.
func (r *RSVG) HTMLToPDF(context.Context, string, PageSize) ([]byte, error) {
	return nil, ErrUnsupported
}

func (r *RSVG) Close() error { return nil }

var _ PDFConverter = (*RSVG)(nil)
