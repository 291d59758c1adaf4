// Package svg is a small immutable SVG markup tree and its serializer.
//
// Renderers build symbols from the primitive constructors ([Rect], [Text],
// [Path], ...) and the layout engine places them on a [Document] with
// [Use] references. [Document.Bytes] serializes the tree; text and
// attribute values are XML-escaped, nothing else is validated.
package svg

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

// Attr is a single name="value" attribute.
type Attr struct {
	Name  string
	Value string
}

// A builds a string attribute.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

// F builds a numeric attribute, formatted without trailing zeros.
func F(name string, v float64) Attr { return Attr{Name: name, Value: Num(v)} }

// Class is shorthand for A("class", name).
func Class(name string) Attr { return A("class", name) }

// Num formats v the shortest way that round-trips (0.5, 80, 148.5).
func Num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Node is an element of the markup tree.
type Node interface {
	render(buf *bytes.Buffer, depth int)
}

// Element is a generic SVG element. Constructors below cover the shapes the
// renderers need; Element can be used directly for anything else.
type Element struct {
	Tag      string
	Attrs    []Attr
	Content  string
	Children []Node
}

func (e Element) render(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	writeAttrs(buf, e.Attrs)

	switch {
	case len(e.Children) == 0 && e.Content == "":
		buf.WriteString("/>\n")
	case len(e.Children) == 0:
		buf.WriteByte('>')
		EscapeText(buf, e.Content)
		buf.WriteString("</")
		buf.WriteString(e.Tag)
		buf.WriteString(">\n")
	default:
		buf.WriteByte('>')
		EscapeText(buf, e.Content)
		buf.WriteByte('\n')
		for _, c := range e.Children {
			c.render(buf, depth+1)
		}
		indent(buf, depth)
		buf.WriteString("</")
		buf.WriteString(e.Tag)
		buf.WriteString(">\n")
	}
}

// Attr returns the value of the named attribute and whether it is set.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Rect is a rectangle at (x, y) of size w×h.
func Rect(x, y, w, h float64, attrs ...Attr) Element {
	base := []Attr{F("x", x), F("y", y), F("width", w), F("height", h)}
	return Element{Tag: "rect", Attrs: append(base, attrs...)}
}

// Text is a text element. Position is given through attrs because some
// layouts use percentages ("50%").
func Text(content string, attrs ...Attr) Element {
	return Element{Tag: "text", Attrs: attrs, Content: content}
}

// MultilineText is a text element whose lines are tspans.
func MultilineText(lines []Node, attrs ...Attr) Element {
	return Element{Tag: "text", Attrs: attrs, Children: lines}
}

// TSpan is one line inside a text element.
func TSpan(content string, attrs ...Attr) Element {
	return Element{Tag: "tspan", Attrs: attrs, Content: content}
}

// Path is a path with the given d attribute.
func Path(d string, attrs ...Attr) Element {
	return Element{Tag: "path", Attrs: append([]Attr{A("d", d)}, attrs...)}
}

// Line is a straight line from (x1, y1) to (x2, y2).
func Line(x1, y1, x2, y2 float64, attrs ...Attr) Element {
	base := []Attr{F("x1", x1), F("y1", y1), F("x2", x2), F("y2", y2)}
	return Element{Tag: "line", Attrs: append(base, attrs...)}
}

// Use places a reference to the symbol with the given id.
func Use(id string, x, y, w, h float64) Element {
	return Element{Tag: "use", Attrs: []Attr{
		A("href", "#"+id), F("x", x), F("y", y), F("width", w), F("height", h),
	}}
}

// Symbol is a reusable definition identified by ID.
type Symbol struct {
	ID       string
	ViewBox  string
	Children []Node
}

func (s Symbol) render(buf *bytes.Buffer, depth int) {
	Element{
		Tag:      "symbol",
		Attrs:    []Attr{A("id", s.ID), A("viewBox", s.ViewBox)},
		Children: s.Children,
	}.render(buf, depth)
}

// Document is one SVG page. Size values carry their unit ("297mm").
type Document struct {
	Width   string
	Height  string
	ViewBox string
	Style   string
	Defs    []Node
	Body    []Node
}

// Bytes serializes the document.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	d.render(&buf, 0)
	return buf.Bytes()
}

func (d Document) render(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"`)
	writeAttrs(buf, []Attr{A("width", d.Width), A("height", d.Height), A("viewBox", d.ViewBox)})
	buf.WriteString(">\n")

	if d.Style != "" {
		indent(buf, depth+1)
		buf.WriteString("<style><![CDATA[")
		buf.WriteString(d.Style)
		buf.WriteString("]]></style>\n")
	}
	if len(d.Defs) > 0 {
		Element{Tag: "defs", Children: d.Defs}.render(buf, depth+1)
	}
	for _, n := range d.Body {
		n.render(buf, depth+1)
	}

	indent(buf, depth)
	buf.WriteString("</svg>\n")
}

// EscapeText writes s to buf with XML special characters escaped.
func EscapeText(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}

// EscapeXML returns s with XML special characters escaped.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	EscapeText(&buf, s)
	return buf.String()
}

func writeAttrs(buf *bytes.Buffer, attrs []Attr) {
	for _, a := range attrs {
		if a.Value == "" {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		EscapeText(buf, a.Value)
		buf.WriteByte('"')
	}
}

func indent(buf *bytes.Buffer, depth int) {
	for range depth {
		buf.WriteString("  ")
	}
}
