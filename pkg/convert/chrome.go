package convert

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Chrome prints through headless Chrome. The browser is launched on first
// use and stays up until Close, so several documents of one run share it.
// Rod downloads Chromium when no browser is found; ROD_BROWSER_BIN selects
// a preinstalled one.
type Chrome struct {
	timeout time.Duration

	mu      sync.Mutex
	browser *rod.Browser
}

// NewChrome creates a Chrome converter with the given page-load timeout.
func NewChrome(timeout time.Duration) *Chrome {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Chrome{timeout: timeout}
}

func (c *Chrome) ensureBrowser() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		return c.browser, nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.browser = b
	return b, nil
}

// Close shuts the browser down.
func (c *Chrome) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	c.browser = nil
	return err
}

// SVGToPDF places every SVG on its own page of the given size.
func (c *Chrome) SVGToPDF(ctx context.Context, pages [][]byte, size PageSize) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return c.HTMLToPDF(ctx, PagesHTML(pages, size), size)
}

// HTMLToPDF prints html with zero margins and backgrounds enabled.
func (c *Chrome) HTMLToPDF(ctx context.Context, html string, size PageSize) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, cleanup, err := writeTemp(html, "*.html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderFile(ctx, path, size)
}

func (c *Chrome) renderFile(ctx context.Context, path string, size PageSize) ([]byte, error) {
	browser, err := c.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if timeout = time.Until(deadline); timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	w, h := size.Inches()
	zero := 0.0
	reader, err := page.Context(ctx).PDF(&proto.PagePrintToPDF{
		PaperWidth:        &w,
		PaperHeight:       &h,
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// PagesHTML builds an HTML document showing each SVG as one page. Pages
// are embedded as images so symbol ids of different pages cannot clash.
func PagesHTML(pages [][]byte, size PageSize) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
@page { size: %[1]smm %[2]smm; margin: 0; }
html, body { margin: 0; padding: 0; }
.page { width: %[1]smm; height: %[2]smm; overflow: hidden; break-after: page; page-break-after: always; }
.page:last-child { break-after: auto; page-break-after: auto; }
.page img { display: block; width: 100%%; height: 100%%; }
</style>
</head>
<body>
`, fmtMM(size.Width), fmtMM(size.Height))
	for _, p := range pages {
		b.WriteString(`<div class="page"><img src="data:image/svg+xml;base64,`)
		b.WriteString(base64.StdEncoding.EncodeToString(p))
		b.WriteString(`"></div>` + "\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func fmtMM(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func writeTemp(content, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", "sheetprint-"+pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { os.Remove(f.Name()) }
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), cleanup, nil
}

var _ PDFConverter = (*Chrome)(nil)
