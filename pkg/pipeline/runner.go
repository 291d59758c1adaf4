package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/sheetprint/pkg/config"
	"github.com/matzehuels/sheetprint/pkg/convert"
	"github.com/matzehuels/sheetprint/pkg/entity"
	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/observability"
	"github.com/matzehuels/sheetprint/pkg/output"
	"github.com/matzehuels/sheetprint/pkg/source"
)

// Runner executes the programs against one row source.
//
// The Runner keeps no per-run state; the converter may hold a browser that
// is reused across runs until Close.
type Runner struct {
	Source    source.RowSource
	Converter convert.PDFConverter
	Config    *config.Config
	Logger    *log.Logger
}

// NewRunner creates a runner reading from src.
// If conv is nil, PDF conversion is disabled.
// If cfg is nil, the built-in defaults are used.
func NewRunner(src source.RowSource, conv convert.PDFConverter, cfg *config.Config, logger *log.Logger) *Runner {
	if conv == nil {
		conv = convert.None{}
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source:    src,
		Converter: conv,
		Config:    cfg,
		Logger:    logger,
	}
}

// Close releases the converter.
func (r *Runner) Close() error {
	return r.Converter.Close()
}

// start prepares a result and a logger tagged with the run.
func (r *Runner) start(program, dir string, opts Options) (*Result, *log.Logger, error) {
	if r.Source == nil {
		return nil, nil, errors.New(errors.ErrCodeInternal, "pipeline: no row source")
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Output != "" {
		dir = opts.Output
	}
	res := &Result{
		RunID:   uuid.NewString(),
		Program: program,
		Output:  dir,
	}
	logger := r.Logger.With("program", program, "run", res.RunID[:8])
	logger.Debug("starting run", "id", opts.ID, "output", dir)
	return res, logger, nil
}

// fetch reads rng and reports it to the observability hooks.
func (r *Runner) fetch(ctx context.Context, res *Result, id, rng string) ([][]string, error) {
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, rng)
	start := time.Now()

	rows, err := r.Source.Range(ctx, id, rng)
	d := time.Since(start)
	hooks.OnFetchComplete(ctx, rng, len(rows), d, err)
	res.Stats.FetchTime += d
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rng, err)
	}
	res.Stats.Rows += len(rows)
	return rows, nil
}

// parse converts the rows of rng into entities.
func parse[T any](rng string, rows [][]string, fn func([]string) (T, error)) ([]T, error) {
	items, err := entity.ParseRows(rows, fn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRow, err, "%s", rng)
	}
	return items, nil
}

// toPDF runs a conversion and writes its output to dir/name. Engines that
// produce nothing or do not support the input yield an empty path.
func (r *Runner) toPDF(ctx context.Context, res *Result, logger *log.Logger, name string, pages int, run func() ([]byte, error)) error {
	engine := engineName(r.Converter)
	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, engine, pages)
	start := time.Now()

	data, err := run()
	res.Stats.ConvertTime = time.Since(start)
	hooks.OnConvertComplete(ctx, engine, len(data), res.Stats.ConvertTime, err)
	if stderrors.Is(err, convert.ErrUnsupported) {
		logger.Warn("PDF engine cannot convert this document, skipping", "engine", engine)
		return nil
	}
	if err != nil {
		return fmt.Errorf("convert to PDF: %w", err)
	}
	if len(data) == 0 {
		logger.Debug("PDF conversion disabled", "engine", engine)
		return nil
	}

	f, err := output.Export(res.Output, name, data)
	if err != nil {
		return err
	}
	res.PDF = f.Path
	logger.Info("converted to PDF",
		"engine", engine,
		"file", f.Path,
		"duration", res.Stats.ConvertTime)
	return nil
}

func engineName(c convert.PDFConverter) string {
	switch c.(type) {
	case *convert.Chrome:
		return string(convert.EngineChrome)
	case *convert.RSVG:
		return string(convert.EngineRSVG)
	case convert.None:
		return string(convert.EngineNone)
	default:
		return fmt.Sprintf("%T", c)
	}
}
