// Package lineage renders the front and cover pages of a vampire lineage.
//
// People are ordered by position. Each front page shows the person's word
// plus two hints: what the predecessor knows ("Před") and what the
// successor knows ("Po"). The cover page carries the name.
package lineage

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/sheetprint/pkg/entity"
	"github.com/matzehuels/sheetprint/pkg/layout"
	"github.com/matzehuels/sheetprint/pkg/svg"
	"github.com/matzehuels/sheetprint/pkg/textutil"
)

// WrapWidth is the hint line length in characters.
const WrapWidth = 30

// Style is the stylesheet of a lineage page.
const Style = `
.small { font: 3.88056px sans-serif; }
.normal { font: 9px sans-serif; }
.big { font: 10.5833px sans-serif; }
.dashed { stroke-width: 1; stroke-dasharray: 0.5; stroke: black; }
.line { stroke-width: 2; stroke: black;}
`

// Sheet is the pair of pages printed for one person.
type Sheet struct {
	Person entity.Person
	Front  svg.Document
	Cover  svg.Document
}

// ErrDuplicatePosition is reported when two people share a position. Pages
// are named by position, so they would overwrite each other.
var ErrDuplicatePosition = errors.New("position is used twice")

// CheckPositions fails on the first position held by two people.
func CheckPositions(people []entity.Person) error {
	seen := make(map[int]string, len(people))
	for _, p := range people {
		if other, ok := seen[p.Position]; ok {
			return fmt.Errorf("%w: %d (%s and %s)", ErrDuplicatePosition, p.Position, other, p.Name)
		}
		seen[p.Position] = p.Name
	}
	return nil
}

// Sort orders people by position, keeping sheet order for ties.
func Sort(people []entity.Person) []entity.Person {
	out := slices.Clone(people)
	slices.SortStableFunc(out, func(a, b entity.Person) int { return cmp.Compare(a.Position, b.Position) })
	return out
}

// Render sorts people and renders a sheet for every one of them.
// wrap <= 0 selects WrapWidth.
func Render(people []entity.Person, wrap int) []Sheet {
	if wrap <= 0 {
		wrap = WrapWidth
	}
	sorted := Sort(people)
	chain := layout.Neighbors(len(sorted))

	sheets := make([]Sheet, 0, len(sorted))
	for i, p := range sorted {
		var before, after *entity.Person
		if j, ok := chain.Prev(i); ok {
			before = &sorted[j]
		}
		if j, ok := chain.Next(i); ok {
			after = &sorted[j]
		}
		sheets = append(sheets, Sheet{
			Person: p,
			Front:  Front(p, before, after, wrap),
			Cover:  Cover(p),
		})
	}
	return sheets
}

func page() svg.Document {
	return svg.Document{
		Width:   "210mm",
		Height:  "297mm",
		ViewBox: "0 0 210 297",
		Style:   Style,
	}
}

func heading(text string, x float64) svg.Element {
	return svg.Text(text, svg.F("y", 190), svg.F("x", x), svg.A("text-anchor", "middle"), svg.Class("big"))
}

// Front renders the word page of p. before and after are the neighbors in
// position order and may be nil.
func Front(p entity.Person, before, after *entity.Person, wrap int) svg.Document {
	doc := page()
	doc.Body = []svg.Node{
		svg.Line(0, 148.5, 210, 148.5, svg.Class("dashed")),
		svg.Line(0, 178.5, 210, 178.5, svg.Class("line")),
		svg.Line(70, 297, 70, 178.5, svg.Class("line")),
		svg.Line(140, 297, 140, 178.5, svg.Class("line")),
		heading("Slovo", 105),
		heading("Před", 35),
		heading("Po", 175),
		svg.Text(p.Word, svg.F("y", 237), svg.F("x", 105), svg.A("text-anchor", "middle"), svg.Class("normal")),
	}
	if before != nil {
		doc.Body = append(doc.Body, svg.MultilineText(
			hint(before.InfoBefore, wrap, 35),
			svg.F("y", 233), svg.F("x", 35), svg.A("text-anchor", "middle"),
		))
	}
	if after != nil {
		doc.Body = append(doc.Body, svg.MultilineText(
			hint(after.InfoAfter, wrap, 175),
			svg.F("y", 233), svg.F("x", 175), svg.A("text-anchor", "middle"), svg.A("dominant-baseline", "middle"),
		))
	}
	return doc
}

// Cover renders the name page of p.
func Cover(p entity.Person) svg.Document {
	doc := page()
	doc.Body = []svg.Node{
		svg.Line(0, 178.5, 210, 178.5, svg.Class("dashed")),
		svg.Line(0, 148.5, 210, 148.5, svg.Class("dashed")),
		svg.Text(p.Name, svg.F("y", 233), svg.F("x", 105), svg.A("text-anchor", "middle"),
			svg.A("dominant-baseline", "text-bottom"), svg.Class("big")),
	}
	return doc
}

func hint(text string, wrap int, x float64) []svg.Node {
	var out []svg.Node
	for _, line := range textutil.Wrap(textutil.Capitalize(text), wrap) {
		out = append(out, svg.TSpan(line, svg.F("dy", 4), svg.F("x", x), svg.Class("small")))
	}
	return out
}
