// Package layout turns a flat list of entities into pages.
//
// The flow is Expand (one copy per unit of quantity), Cluster (fixed-size
// chunks in input order) and BuildPages, which places each chunk on a
// row-major grid and collects the distinct symbol definitions the page
// references.
package layout

import (
	"slices"

	"github.com/matzehuels/sheetprint/pkg/svg"
)

// Quantified is anything that is placed a number of times.
type Quantified interface {
	Quantity() int
}

// Expand replicates every item Quantity() times, preserving input order.
// Items with a non-positive quantity are dropped.
func Expand[T Quantified](items []T) []T {
	total := 0
	for _, it := range items {
		total += max(0, it.Quantity())
	}
	out := make([]T, 0, total)
	for _, it := range items {
		for range it.Quantity() {
			out = append(out, it)
		}
	}
	return out
}

// Cluster splits items into consecutive chunks of at most size elements.
// The last chunk may be shorter. A non-positive size yields one chunk.
func Cluster[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}
	return slices.Collect(slices.Chunk(items, size))
}

// Grid is a row-major placement of equally sized cells.
type Grid struct {
	Rows       int
	Columns    int
	CellWidth  float64
	CellHeight float64
}

// Capacity is the number of cells on one page.
func (g Grid) Capacity() int { return g.Rows * g.Columns }

// Place returns the top-left corner of the i-th cell, filling each row
// left to right before moving down.
func (g Grid) Place(i int) (x, y float64) {
	cols := max(1, g.Columns)
	col := i % cols
	row := (i / cols) % max(1, g.Rows)
	return float64(col) * g.CellWidth, float64(row) * g.CellHeight
}

// Page is one laid-out sheet: distinct symbol definitions plus the placed
// references, both in first-appearance order.
type Page struct {
	Index      int
	Symbols    []svg.Symbol
	References []svg.Element
}

// Collision reports two labels that map to the same symbol identifier.
type Collision struct {
	ID     string
	First  string
	Second string
}

// SymbolFunc renders an item. The label identifies the item for
// collision reporting.
type SymbolFunc[T any] func(T) (sym svg.Symbol, label string, err error)

// BuildPages clusters items to the grid capacity and assembles the pages.
//
// A symbol is defined once per page; later items with an identifier that is
// already defined reuse the first definition. Pairs of different labels
// sharing an identifier are returned as collisions, once per identifier.
// The first rendering error stops the build.
func BuildPages[T any](items []T, grid Grid, symbol SymbolFunc[T]) ([]Page, []Collision, error) {
	var (
		pages      []Page
		collisions []Collision
		owners     = map[string]string{}
	)
	for n, chunk := range Cluster(items, grid.Capacity()) {
		page := Page{Index: n}
		defined := map[string]bool{}
		for i, item := range chunk {
			sym, label, err := symbol(item)
			if err != nil {
				return nil, nil, err
			}
			if owner, ok := owners[sym.ID]; !ok {
				owners[sym.ID] = label
			} else if owner != label && !reported(collisions, sym.ID) {
				collisions = append(collisions, Collision{ID: sym.ID, First: owner, Second: label})
			}
			if !defined[sym.ID] {
				defined[sym.ID] = true
				page.Symbols = append(page.Symbols, sym)
			}
			x, y := grid.Place(i)
			page.References = append(page.References, svg.Use(sym.ID, x, y, grid.CellWidth, grid.CellHeight))
		}
		pages = append(pages, page)
	}
	return pages, collisions, nil
}

func reported(cs []Collision, id string) bool {
	return slices.ContainsFunc(cs, func(c Collision) bool { return c.ID == id })
}
