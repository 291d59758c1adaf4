// Package cards renders Munchkin card entities into SVG symbols and lays
// them out on landscape A4 sheets.
package cards

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/matzehuels/sheetprint/pkg/entity"
	"github.com/matzehuels/sheetprint/pkg/layout"
	"github.com/matzehuels/sheetprint/pkg/svg"
	"github.com/matzehuels/sheetprint/pkg/textutil"
)

// Card geometry in page units (millimetres).
const (
	CardWidth  = 80
	CardHeight = 30
	Rows       = 7
	Columns    = 3
	WrapWidth  = 35
)

// BonusDescription is printed on every bonus card.
const BonusDescription = "Lze použít jen jednou, musí být v batohu"

// Style is the stylesheet of a card sheet.
const Style = `
.normal { font: 4.23333px sans-serif; }
.small { font: 3.88056px sans-serif; }
.big { font: 10.5833px sans-serif; }
`

// DefaultGrid is the 7×3 card grid of one landscape A4 sheet.
var DefaultGrid = layout.Grid{Rows: Rows, Columns: Columns, CellWidth: CardWidth, CellHeight: CardHeight}

var viewBox = fmt.Sprintf("0 0 %d %d", CardWidth, CardHeight)

// Card is any entity that can be drawn as a card.
type Card interface {
	entity.Entity
}

// Renderer turns cards into symbols. Results are cached by card value, so
// the copies produced by layout.Expand share one rendering.
type Renderer struct {
	wrap  int
	mu    sync.Mutex
	cache map[Card]svg.Symbol
}

// NewRenderer returns a renderer that wraps descriptions at wrap
// characters. Zero selects WrapWidth.
func NewRenderer(wrap int) *Renderer {
	if wrap <= 0 {
		wrap = WrapWidth
	}
	return &Renderer{wrap: wrap, cache: make(map[Card]svg.Symbol)}
}

// Symbol renders c, reusing an earlier rendering of an equal card.
func (r *Renderer) Symbol(c Card) (svg.Symbol, error) {
	switch c.(type) {
	case entity.Equipment, entity.Monster, entity.Curse, entity.Bonus:
	case nil:
		return svg.Symbol{}, fmt.Errorf("cards: nil card")
	default:
		return svg.Symbol{}, fmt.Errorf("cards: cannot render %s", c.Kind())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.cache[c]; ok {
		return s, nil
	}
	s := r.render(c)
	r.cache[c] = s
	return s, nil
}

// Labeled renders c along with its label. It is a [layout.SymbolFunc].
func (r *Renderer) Labeled(c Card) (svg.Symbol, string, error) {
	s, err := r.Symbol(c)
	if err != nil {
		return svg.Symbol{}, "", err
	}
	return s, c.Label(), nil
}

func (r *Renderer) render(c Card) svg.Symbol {
	var nodes []svg.Node
	switch v := c.(type) {
	case entity.Equipment:
		nodes = equipment(v)
	case entity.Monster:
		nodes = monster(v)
	case entity.Curse:
		nodes = curse(v, r.wrap)
	case entity.Bonus:
		nodes = bonus(v, r.wrap)
	}
	return svg.Symbol{ID: textutil.ID(c.Label()), ViewBox: viewBox, Children: nodes}
}

// Document wraps a laid-out page into a landscape A4 sheet.
func Document(p layout.Page) svg.Document {
	doc := svg.Document{
		Width:   "297mm",
		Height:  "210mm",
		ViewBox: "0 0 297 210",
		Style:   Style,
	}
	for _, s := range p.Symbols {
		doc.Defs = append(doc.Defs, s)
	}
	for _, u := range p.References {
		doc.Body = append(doc.Body, u)
	}
	return doc
}

func frame() svg.Element {
	return svg.Rect(0.5, 0.5, 79, 29,
		svg.A("fill", "none"), svg.A("stroke", "#000000"), svg.A("stroke-width", "1"))
}

func rarityBar(level int) svg.Element {
	return svg.Path("M 16,3 62,3", svg.A("stroke-width", "1"), svg.A("stroke", RarityColor(level)))
}

func equipment(e entity.Equipment) []svg.Node {
	nodes := []svg.Node{
		frame(),
		svg.Text(e.Name, svg.A("x", "50%"), svg.F("y", 10),
			svg.A("text-anchor", "middle"), svg.A("dominant-baseline", "middle"), svg.Class("normal")),
		svg.Text("+"+strconv.Itoa(e.Bonus), svg.F("x", 35), svg.F("y", 20),
			svg.A("dominant-baseline", "middle"), svg.Class("big")),
		svg.Text(string(e.Type), svg.F("x", 75), svg.F("y", 26),
			svg.A("text-anchor", "end"), svg.A("dominant-baseline", "middle"), svg.Class("small")),
		rarityBar(e.Bonus),
	}
	if e.HasCondition() {
		nodes = append(nodes, svg.Text(e.Condition, svg.F("x", 2), svg.F("y", 26),
			svg.A("dominant-baseline", "middle"), svg.Class("small")))
	}
	return nodes
}

func monster(m entity.Monster) []svg.Node {
	return []svg.Node{
		frame(),
		svg.Text(m.Name, svg.A("x", "50%"), svg.F("y", 5),
			svg.A("text-anchor", "middle"), svg.A("dominant-baseline", "middle"), svg.Class("normal")),
		svg.Text(strconv.Itoa(m.Level), svg.F("x", 40), svg.F("y", 15),
			svg.A("text-anchor", "middle"), svg.A("dominant-baseline", "middle"), svg.Class("big")),
		svg.Text("Úroveň", svg.F("x", 50), svg.F("y", 15.5),
			svg.A("dominant-baseline", "middle"), svg.Class("small")),
		svg.Text(Difficulty(m.Level), svg.F("x", 40), svg.F("y", 28),
			svg.A("text-anchor", "middle"), svg.Class("small")),
	}
}

func curse(c entity.Curse, wrap int) []svg.Node {
	return []svg.Node{
		frame(),
		svg.Text("KLETBA", svg.F("x", 40), svg.F("y", 10),
			svg.A("text-anchor", "middle"), svg.Class("big")),
		svg.Text(c.Name, svg.F("x", 40), svg.F("y", 13),
			svg.A("text-anchor", "middle"), svg.A("dominant-baseline", "middle"),
			svg.Class("normal"), svg.A("font-weight", "bold")),
		svg.MultilineText(tspans(c.Description, wrap, 5), svg.F("x", 5), svg.F("y", 16)),
	}
}

func bonus(b entity.Bonus, wrap int) []svg.Node {
	return []svg.Node{
		frame(),
		svg.Text("BONUS +"+strconv.Itoa(b.Bonus), svg.F("x", 40), svg.F("y", 13),
			svg.A("text-anchor", "middle"), svg.Class("big")),
		svg.Text(b.Name, svg.F("x", 40), svg.F("y", 17),
			svg.A("text-anchor", "middle"), svg.A("dominant-baseline", "middle"),
			svg.Class("normal"), svg.A("font-weight", "bold")),
		svg.MultilineText(tspans(BonusDescription, wrap, 5), svg.F("x", 5), svg.F("y", 19), svg.Class("small")),
		rarityBar(b.Bonus),
	}
}

// tspans wraps text into lines stacked 4 units apart, all starting at x.
func tspans(text string, width int, x float64) []svg.Node {
	var out []svg.Node
	for _, line := range textutil.Wrap(text, width) {
		out = append(out, svg.TSpan(line, svg.F("dy", 4), svg.F("x", x), svg.Class("small")))
	}
	return out
}
