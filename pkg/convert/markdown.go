package convert

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// markdownTemplate wraps goldmark's fragment output in a complete HTML5 document.
const markdownTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: "DejaVu Sans", Arial, sans-serif; font-size: 11pt; margin: 15mm; }
table { border-collapse: collapse; width: 100%%; }
th, td { border: 1px solid #888; padding: 2px 6px; text-align: left; vertical-align: top; }
h1, h2, h3 { page-break-after: avoid; }
</style>
</head>
<body>
%s
</body>
</html>`

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
		gmhtml.WithXHTML(),
	),
)

// MarkdownToHTML converts a markdown document (GFM tables, raw HTML
// allowed) into a standalone HTML5 page titled title.
func MarkdownToHTML(ctx context.Context, title, md string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return fmt.Sprintf(markdownTemplate, html.EscapeString(title), buf.String()), nil
}
