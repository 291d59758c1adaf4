// Package pipeline provides the print pipelines behind the sheetprint CLI.
//
// This package implements the fetch → parse → layout → render → export →
// convert flow of the three programs, so the CLI only deals with flags and
// presentation.
//
// # Programs
//
//  1. Munchkin: equipment, monster, curse and bonus cards on A4 landscape
//     sheets (file{n}.svg, output.pdf)
//  2. Lineage: a front and a cover page per person of a vampire lineage
//     (front{n}.svg, cover{n}.svg, output.pdf)
//  3. Planner: a markdown overview of the camp days (summary.md,
//     summary.pdf)
//
// # Usage
//
// Create a Runner with a row source and a PDF converter:
//
//	runner := pipeline.NewRunner(src, conv, cfg, logger)
//	defer runner.Close()
//
//	result, err := runner.RunMunchkin(ctx, pipeline.Options{ID: id})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.PDF)
package pipeline

import (
	"time"

	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/layout"
	"github.com/matzehuels/sheetprint/pkg/output"
	"github.com/matzehuels/sheetprint/pkg/planner"
)

// Program names used in results, logs and observability events.
const (
	ProgramMunchkin = "munchkin"
	ProgramLineage  = "lineage"
	ProgramPlanner  = "planner"
)

// Options holds the per-run inputs. Everything else comes from the
// runner's configuration.
type Options struct {
	// ID is the spreadsheet identifier or a path to an .xlsx workbook.
	ID string

	// Output overrides the configured output directory of the program.
	Output string

	// Date is the date of the first planner day. Required by the planner.
	Date time.Time

	// Sheets replaces the prefix-based discovery of planner day sheets.
	Sheets []string

	// PageBreaks separates planner days with page breaks. The configured
	// value is used when false.
	PageBreaks bool
}

// Validate checks the options common to every program.
func (o Options) Validate() error {
	if o.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "spreadsheet id cannot be empty")
	}
	if o.Output != "" {
		if err := errors.ValidateOutputDir(o.Output); err != nil {
			return err
		}
	}
	return nil
}

// Result describes the files produced by one run.
type Result struct {
	// RunID identifies the run in logs.
	RunID   string
	Program string
	Output  string

	// Files are the written pages (or the markdown document) in print order.
	Files []output.File

	// PDF is the path of the combined document, empty when no PDF was made.
	PDF string

	// Collisions lists card names that share a symbol identifier.
	Collisions []layout.Collision

	// Skipped lists planner blocks without a part name.
	Skipped []planner.Skipped

	Stats Stats
}

// Stats holds counts and stage timings of a run.
type Stats struct {
	Rows        int
	Items       int
	Pages       int
	FetchTime   time.Duration
	RenderTime  time.Duration
	ConvertTime time.Duration
}
