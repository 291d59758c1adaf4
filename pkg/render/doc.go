// Package render groups the SVG renderers of the print programs.
//
// # Overview
//
// Each subpackage turns parsed spreadsheet rows into [svg.Document] pages:
//
//   - [cards]: Munchkin equipment, monster, curse and bonus cards, placed
//     7x3 on landscape A4 sheets
//   - [lineage]: the front and cover page of every person in a vampire
//     lineage, ordered by position
//
// Renderers are pure: they neither fetch rows nor write files. The
// [pipeline] package wires them between a row source and the output
// directory, and the [convert] package combines the pages into a PDF.
//
// # Cards
//
// A card is rendered once as a symbol and referenced by every copy:
//
//	r := cards.NewRenderer(cards.WrapWidth)
//	pages, collisions, err := layout.BuildPages(layout.Expand(deck), cards.DefaultGrid, r.Labeled)
//	doc := cards.Document(pages[0])
//
// # Lineage
//
//	for _, sheet := range lineage.Render(people, lineage.WrapWidth) {
//	    front, cover := sheet.Front, sheet.Cover
//	}
//
// [svg.Document]: github.com/matzehuels/sheetprint/pkg/svg.Document
// [pipeline]: github.com/matzehuels/sheetprint/pkg/pipeline
// [convert]: github.com/matzehuels/sheetprint/pkg/convert
package render
