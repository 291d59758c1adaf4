// Package convert turns rendered pages into a single printable PDF.
//
// Backends:
//   - [Chrome]: headless Chrome driven by go-rod (SVG pages and HTML)
//   - [RSVG]: the rsvg-convert tool from librsvg (SVG pages only)
//   - [None]: conversion disabled
//
// Markdown documents are first turned into HTML with [MarkdownToHTML].
package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for conversion failures.
var (
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnsupported    = errors.New("conversion not supported by this engine")
	ErrNoPages        = errors.New("no pages to convert")
)

// PageSize is a paper size in millimetres.
type PageSize struct {
	Width  float64
	Height float64
}

// Paper sizes used by the programs.
var (
	A4Landscape = PageSize{Width: 297, Height: 210}
	A4Portrait  = PageSize{Width: 210, Height: 297}
)

const mmPerInch = 25.4

// Inches returns the size in inches.
func (p PageSize) Inches() (w, h float64) {
	return p.Width / mmPerInch, p.Height / mmPerInch
}

// PDFConverter produces PDF documents.
type PDFConverter interface {
	// SVGToPDF combines SVG documents into one PDF, one page per document.
	SVGToPDF(ctx context.Context, pages [][]byte, size PageSize) ([]byte, error)
	// HTMLToPDF prints an HTML document.
	HTMLToPDF(ctx context.Context, html string, size PageSize) ([]byte, error)
	// Close releases external resources such as a browser process.
	Close() error
}

// Engine names a conversion backend.
type Engine string

const (
	EngineChrome Engine = "chrome"
	EngineRSVG   Engine = "rsvg"
	EngineNone   Engine = "none"
)

// Engines lists the accepted engine names.
var Engines = []Engine{EngineChrome, EngineRSVG, EngineNone}

// ParseEngine validates an engine name.
func ParseEngine(s string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Engines {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown PDF engine %q (want chrome, rsvg or none)", s)
}

// DefaultTimeout bounds a single page load in the browser.
const DefaultTimeout = 60 * time.Second

// New creates the converter for engine.
func New(engine Engine) (PDFConverter, error) {
	switch engine {
	case EngineChrome, "":
		return NewChrome(DefaultTimeout), nil
	case EngineRSVG:
		return NewRSVG(), nil
	case EngineNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown PDF engine %q", engine)
	}
}

// None is a converter that produces nothing.
type None struct{}

func (None) SVGToPDF(context.Context, [][]byte, PageSize) ([]byte, error) { return nil, nil }
func (None) HTMLToPDF(context.Context, string, PageSize) ([]byte, error)  { return nil, nil }
func (None) Close() error                                                 { return nil }

var _ PDFConverter = None{}
