// Package pkg provides the libraries behind sheetprint.
//
// # Overview
//
// Sheetprint reads rows from a Google spreadsheet (or a local .xlsx
// workbook) and prints them: Munchkin card sheets, the pages of a vampire
// lineage and the markdown overview of a camp day planner. The pkg
// directory is organized into four areas:
//
//  1. Domain: [entity] row types, [layout] card placement, [render] SVG
//     pages, [planner] day summaries and [markdown] tables
//  2. Sources: [source] with the Google Sheets client ([source/sheets]) and
//     the workbook reader ([source/xlsx])
//  3. Infrastructure: [cache], [session], [config], [convert] PDF engines,
//     [httputil] retries, [observability] hooks and [output] files
//  4. Orchestration: [pipeline] runs one program from fetch to PDF
//
// # Architecture
//
// Every program follows the same flow:
//
//	Spreadsheet ranges
//	         ↓
//	    [source] (fetch rows, cached)
//	         ↓
//	    [entity] (parse and validate rows)
//	         ↓
//	    [render] / [planner] (SVG pages or markdown)
//	         ↓
//	    [output] + [convert] (files and PDF)
//
// # Quick Start
//
// Print the Munchkin cards of a local workbook without a PDF:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/sheetprint/pkg/convert"
//	    "github.com/matzehuels/sheetprint/pkg/pipeline"
//	    "github.com/matzehuels/sheetprint/pkg/source/xlsx"
//	)
//
//	r := pipeline.NewRunner(xlsx.New(), convert.None{}, nil, nil)
//	defer r.Close()
//	res, err := r.RunMunchkin(context.Background(), pipeline.Options{ID: "tabor.xlsx"})
//
// The result lists the written files and the PDF path, if any.
package pkg
