package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/sheetprint/pkg/convert"
	"github.com/matzehuels/sheetprint/pkg/entity"
	"github.com/matzehuels/sheetprint/pkg/layout"
	"github.com/matzehuels/sheetprint/pkg/observability"
	"github.com/matzehuels/sheetprint/pkg/output"
	"github.com/matzehuels/sheetprint/pkg/render/cards"
	"github.com/matzehuels/sheetprint/pkg/svg"
)

// RunMunchkin prints the card sheets.
//
// Cards are laid out as bonuses, monsters, equipment and curses, each kind
// in sheet order and each card repeated by its amount.
func (r *Runner) RunMunchkin(ctx context.Context, opts Options) (*Result, error) {
	cfg := r.Config.Munchkin
	res, logger, err := r.start(ProgramMunchkin, cfg.Output, opts)
	if err != nil {
		return nil, err
	}

	deck, err := r.fetchDeck(ctx, res, opts.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("fetched cards",
		"kinds", len(deck),
		"rows", res.Stats.Rows,
		"duration", res.Stats.FetchTime)

	renderer := cards.NewRenderer(cfg.WrapWidth)
	var all []cards.Card
	for _, kind := range deck {
		all = append(all, kind...)
	}

	hooks := observability.Pipeline()
	expanded := layout.Expand(all)
	hooks.OnRenderStart(ctx, ProgramMunchkin, len(expanded))
	renderStart := time.Now()

	grid := layout.Grid{
		Rows:       cfg.Rows,
		Columns:    cfg.Columns,
		CellWidth:  cards.CardWidth,
		CellHeight: cards.CardHeight,
	}
	pages, collisions, err := layout.BuildPages(expanded, grid, renderer.Labeled)
	if err != nil {
		res.Stats.RenderTime = time.Since(renderStart)
		hooks.OnRenderComplete(ctx, ProgramMunchkin, 0, res.Stats.RenderTime, err)
		return nil, err
	}
	for _, c := range collisions {
		logger.Warn("cards share a symbol, the first one is printed for both",
			"id", c.ID, "first", c.First, "second", c.Second)
	}
	docs := make([]svg.Document, len(pages))
	for i, p := range pages {
		docs[i] = cards.Document(p)
	}
	files, err := output.CardSheets(res.Output, docs)
	res.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, ProgramMunchkin, len(files), res.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	res.Files = files
	res.Collisions = collisions
	res.Stats.Items = len(expanded)
	res.Stats.Pages = len(files)
	logger.Info("rendered card sheets",
		"cards", len(expanded),
		"pages", len(files),
		"duration", res.Stats.RenderTime)

	if len(files) == 0 {
		logger.Warn("no cards to print")
		return res, nil
	}
	err = r.toPDF(ctx, res, logger, output.PDFName, len(files), func() ([]byte, error) {
		return r.Converter.SVGToPDF(ctx, output.Contents(files), convert.A4Landscape)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// fetchDeck reads the four card ranges in print order.
func (r *Runner) fetchDeck(ctx context.Context, res *Result, id string) ([][]cards.Card, error) {
	cfg := r.Config.Munchkin
	readers := []struct {
		rng  string
		read func(rows [][]string) ([]cards.Card, error)
	}{
		{cfg.BonusRange, func(rows [][]string) ([]cards.Card, error) {
			return asCards(parse(cfg.BonusRange, rows, entity.ParseBonus))
		}},
		{cfg.MonsterRange, func(rows [][]string) ([]cards.Card, error) {
			return asCards(parse(cfg.MonsterRange, rows, entity.ParseMonster))
		}},
		{cfg.EquipmentRange, func(rows [][]string) ([]cards.Card, error) {
			return asCards(parse(cfg.EquipmentRange, rows, entity.ParseEquipment))
		}},
		{cfg.CurseRange, func(rows [][]string) ([]cards.Card, error) {
			return asCards(parse(cfg.CurseRange, rows, entity.ParseCurse))
		}},
	}

	deck := make([][]cards.Card, 0, len(readers))
	for _, rd := range readers {
		rows, err := r.fetch(ctx, res, id, rd.rng)
		if err != nil {
			return nil, err
		}
		kind, err := rd.read(rows)
		if err != nil {
			return nil, err
		}
		deck = append(deck, kind)
	}
	return deck, nil
}

func asCards[T cards.Card](items []T, err error) ([]cards.Card, error) {
	if err != nil {
		return nil, err
	}
	out := make([]cards.Card, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out, nil
}
