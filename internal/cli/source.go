package cli

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/matzehuels/sheetprint/pkg/cache"
	"github.com/matzehuels/sheetprint/pkg/config"
	"github.com/matzehuels/sheetprint/pkg/convert"
	"github.com/matzehuels/sheetprint/pkg/pipeline"
	"github.com/matzehuels/sheetprint/pkg/session"
	"github.com/matzehuels/sheetprint/pkg/source"
	"github.com/matzehuels/sheetprint/pkg/source/sheets"
	"github.com/matzehuels/sheetprint/pkg/source/xlsx"
)

// loadConfig reads the --config file (or the default one) over the
// built-in defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner builds the pipeline runner for the spreadsheet id. The returned
// function releases the cache and the converter.
func (c *CLI) newRunner(ctx context.Context, id string, opts *printOpts) (*pipeline.Runner, func(), error) {
	if err := opts.validate(id); err != nil {
		return nil, nil, err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	opts.apply(cfg)

	conv, err := newConverter(cfg.PDF)
	if err != nil {
		return nil, nil, err
	}

	var (
		src source.RowSource
		ch  cache.Cache = cache.NewNullCache()
	)
	if xlsx.IsWorkbook(id) {
		c.Logger.Debug("reading local workbook", "path", id)
		src = xlsx.New()
	} else {
		if ch, err = newCache(ctx, cfg.Cache); err != nil {
			conv.Close()
			return nil, nil, err
		}
		if src, err = c.newSheetsClient(ctx, cfg, opts, ch); err != nil {
			ch.Close()
			conv.Close()
			return nil, nil, err
		}
	}

	runner := pipeline.NewRunner(src, conv, cfg, c.Logger)
	cleanup := func() {
		if err := runner.Close(); err != nil {
			c.Logger.Warn("close PDF converter", "error", err)
		}
		ch.Close()
	}
	return runner, cleanup, nil
}

// newConverter creates the configured PDF engine.
func newConverter(cfg config.PDF) (convert.PDFConverter, error) {
	engine, err := convert.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	switch engine {
	case convert.EngineChrome:
		return convert.NewChrome(cfg.Timeout), nil
	case convert.EngineRSVG:
		r := convert.NewRSVG()
		if !r.Available() {
			return nil, fmt.Errorf("rsvg-convert not found in PATH (install librsvg or use --pdf chrome)")
		}
		return r, nil
	default:
		return convert.New(engine)
	}
}

// newCache opens the configured cache backend.
func newCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, redisConfig(cfg))
	default:
		dir, err := fileCacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newSheetsClient authorizes against Google and creates the Sheets client.
// Cache keys are scoped to the OAuth client so different credentials never
// share cached ranges.
func (c *CLI) newSheetsClient(ctx context.Context, cfg *config.Config, opts *printOpts, ch cache.Cache) (*sheets.Client, error) {
	oauthCfg, err := sheets.LoadConfig(opts.secret)
	if err != nil {
		return nil, err
	}
	store, err := session.NewFileStore("")
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	hc, err := sheets.HTTPClient(ctx, oauthCfg, store, c.authorizer(oauthCfg))
	if err != nil {
		return nil, fmt.Errorf("authorize: %w", err)
	}

	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "client:"+cache.Hash([]byte(oauthCfg.ClientID))[:12]+":")
	return sheets.NewClient(hc,
		sheets.WithCache(ch, keyer),
		sheets.WithTTL(cfg.Cache.RangeTTL, cfg.Cache.SheetsTTL),
		sheets.WithRefresh(opts.refresh),
		sheets.WithLogger(c.Logger),
	), nil
}

// authorizer runs the browser consent flow when no usable token is stored.
func (c *CLI) authorizer(cfg *oauth2.Config) sheets.Authorizer {
	return func(ctx context.Context) (*oauth2.Token, error) {
		return c.login(ctx, cfg)
	}
}
