package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/sheetprint/pkg/convert"
	"github.com/matzehuels/sheetprint/pkg/entity"
	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/observability"
	"github.com/matzehuels/sheetprint/pkg/output"
	"github.com/matzehuels/sheetprint/pkg/render/lineage"
)

// RunLineage prints a front and a cover page for every person, ordered by
// position.
func (r *Runner) RunLineage(ctx context.Context, opts Options) (*Result, error) {
	cfg := r.Config.Lineage
	res, logger, err := r.start(ProgramLineage, cfg.Output, opts)
	if err != nil {
		return nil, err
	}

	rows, err := r.fetch(ctx, res, opts.ID, cfg.Range)
	if err != nil {
		return nil, err
	}
	people, err := parse(cfg.Range, rows, entity.ParsePerson)
	if err != nil {
		return nil, err
	}
	if err := lineage.CheckPositions(people); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRow, err, "%s", cfg.Range)
	}
	logger.Info("fetched lineage",
		"people", len(people),
		"duration", res.Stats.FetchTime)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, ProgramLineage, len(people))
	renderStart := time.Now()

	sheets := lineage.Render(people, cfg.WrapWidth)
	files, err := output.LineageSheets(res.Output, sheets)
	res.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, ProgramLineage, len(files), res.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	res.Files = files
	res.Stats.Items = len(people)
	res.Stats.Pages = len(files)
	logger.Info("rendered lineage pages",
		"people", len(people),
		"pages", len(files),
		"duration", res.Stats.RenderTime)

	if len(files) == 0 {
		logger.Warn("no people to print")
		return res, nil
	}
	err = r.toPDF(ctx, res, logger, output.PDFName, len(files), func() ([]byte, error) {
		return r.Converter.SVGToPDF(ctx, output.Contents(files), convert.A4Portrait)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
