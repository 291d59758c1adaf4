package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/sheetprint/pkg/convert"
	"github.com/matzehuels/sheetprint/pkg/entity"
	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/observability"
	"github.com/matzehuels/sheetprint/pkg/output"
	"github.com/matzehuels/sheetprint/pkg/planner"
	"github.com/matzehuels/sheetprint/pkg/source"
)

// SummaryTitle is the title of the planner HTML document.
const SummaryTitle = "Přehled"

// DaySheets lists the sheets of the spreadsheet that hold a day program.
func (r *Runner) DaySheets(ctx context.Context, id string) ([]string, error) {
	titles, err := r.Source.Sheets(ctx, id)
	if err != nil {
		return nil, err
	}
	return planner.DaySheets(titles, r.Config.Planner.DayPrefix), nil
}

// RunPlanner writes the markdown overview of the days and, with an engine
// that prints HTML, its PDF.
func (r *Runner) RunPlanner(ctx context.Context, opts Options) (*Result, error) {
	cfg := r.Config.Planner
	res, logger, err := r.start(ProgramPlanner, cfg.Output, opts)
	if err != nil {
		return nil, err
	}
	if opts.Date.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "planner start date is required")
	}

	sheets, err := r.daySheets(ctx, opts)
	if err != nil {
		return nil, err
	}
	summary, err := r.fetch(ctx, res, opts.ID, cfg.SummaryRange)
	if err != nil {
		return nil, err
	}
	days, err := planner.BuildDays(summary, sheets, opts.Date)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRow, err, "%s", cfg.SummaryRange)
	}
	if days, err = pickDays(days, opts.Sheets); err != nil {
		return nil, err
	}

	for i := range days {
		day := &days[i]
		rows, err := r.fetch(ctx, res, opts.ID, source.A1(day.SheetName, cfg.DayCells))
		if err != nil {
			return nil, err
		}
		parts, skipped, err := planner.ParseDayParts(day.SheetName, rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRow, err, "day %d", day.Number)
		}
		for _, p := range parts {
			day.SetPart(p)
		}
		for _, s := range skipped {
			logger.Warn("day part has no name, skipping", "sheet", s.Sheet, "block", s.Block)
		}
		res.Skipped = append(res.Skipped, skipped...)
	}
	logger.Info("fetched days",
		"days", len(days),
		"rows", res.Stats.Rows,
		"duration", res.Stats.FetchTime)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, ProgramPlanner, len(days))
	renderStart := time.Now()

	md, err := planner.Document(days, planner.Options{PageBreaks: opts.PageBreaks || cfg.PageBreaks})
	var file output.File
	if err == nil {
		file, err = output.Summary(res.Output, md)
	}
	res.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, ProgramPlanner, 1, res.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	res.Files = []output.File{file}
	res.Stats.Items = len(days)
	res.Stats.Pages = len(days)
	logger.Info("wrote summary",
		"file", file.Path,
		"duration", res.Stats.RenderTime)

	err = r.toPDF(ctx, res, logger, output.SummaryPDF, len(days), func() ([]byte, error) {
		html, err := convert.MarkdownToHTML(ctx, SummaryTitle, md)
		if err != nil {
			return nil, err
		}
		return r.Converter.HTMLToPDF(ctx, html, convert.A4Portrait)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// daySheets returns every sheet matching the day prefix. Picked sheets
// must be among them.
func (r *Runner) daySheets(ctx context.Context, opts Options) ([]string, error) {
	titles, err := r.Source.Sheets(ctx, opts.ID)
	if err != nil {
		return nil, err
	}
	sheets := planner.DaySheets(titles, r.Config.Planner.DayPrefix)
	for _, s := range opts.Sheets {
		if !slices.Contains(sheets, s) {
			return nil, errors.New(errors.ErrCodeSheetNotFound, "day sheet %q not found", s)
		}
	}
	return sheets, nil
}

// pickDays keeps the days printed from the picked sheets. Each day keeps the
// number, date and overview row of its position in the workbook.
func pickDays(days []entity.Day, picked []string) ([]entity.Day, error) {
	if len(picked) == 0 {
		return days, nil
	}
	out := slices.DeleteFunc(slices.Clone(days), func(d entity.Day) bool {
		return !slices.Contains(picked, d.SheetName)
	})
	for _, s := range picked {
		if !slices.ContainsFunc(out, func(d entity.Day) bool { return d.SheetName == s }) {
			return nil, errors.New(errors.ErrCodeInvalidRow, "day sheet %q has no overview row", s)
		}
	}
	return out, nil
}
