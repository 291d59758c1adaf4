package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/pipeline"
)

// maxListedFiles limits the page files listed after a run.
const maxListedFiles = 6

type runFunc func(ctx context.Context, r *pipeline.Runner) (*pipeline.Result, error)

// munchkinCommand creates the munchkin command.
func (c *CLI) munchkinCommand() *cobra.Command {
	var opts printOpts
	cmd := &cobra.Command{
		Use:   "munchkin <spreadsheet-id | file.xlsx>",
		Short: "Print Munchkin card sheets",
		Long: `Print equipment, monster, curse and bonus cards.

Cards are placed 7x3 on A4 landscape sheets (file0.svg, file1.svg, ...)
and combined into output.pdf. Default output: output/munchkin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), args[0], &opts, func(ctx context.Context, r *pipeline.Runner) (*pipeline.Result, error) {
				return r.RunMunchkin(ctx, pipeline.Options{ID: args[0], Output: opts.output})
			})
		},
	}
	opts.register(cmd)
	return cmd
}

// lineageCommand creates the lineage command.
func (c *CLI) lineageCommand() *cobra.Command {
	var opts printOpts
	cmd := &cobra.Command{
		Use:     "lineage <spreadsheet-id | file.xlsx>",
		Aliases: []string{"vampires"},
		Short:   "Print the pages of a vampire lineage",
		Long: `Print a front page (word and hints about the neighbors) and a cover
page (name) for every person, ordered by position. Default output:
output/vampires.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), args[0], &opts, func(ctx context.Context, r *pipeline.Runner) (*pipeline.Result, error) {
				return r.RunLineage(ctx, pipeline.Options{ID: args[0], Output: opts.output})
			})
		},
	}
	opts.register(cmd)
	return cmd
}

// plannerCommand creates the planner command.
func (c *CLI) plannerCommand() *cobra.Command {
	var (
		opts       printOpts
		start      time.Time
		pick       bool
		pageBreaks bool
	)
	cmd := &cobra.Command{
		Use:   "planner <spreadsheet-id | file.xlsx>",
		Short: "Write the day planner overview",
		Long: `Write summary.md: the overview table of all days followed by the
program of every day, read from the sheets named "den ...". With the
chrome engine the document is also printed to summary.pdf.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return c.run(cmd.Context(), id, &opts, func(ctx context.Context, r *pipeline.Runner) (*pipeline.Result, error) {
				popts := pipeline.Options{ID: id, Output: opts.output, Date: start, PageBreaks: pageBreaks}
				if pick {
					sheets, err := c.pickDaySheets(ctx, r, id)
					if err != nil {
						return nil, err
					}
					popts.Sheets = sheets
				}
				return r.RunPlanner(ctx, popts)
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().VarP(newDateValue(&start), "date", "d", "date of the first day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the day sheets interactively")
	cmd.Flags().BoolVar(&pageBreaks, "page-breaks", false, "start every day on a new page")
	cmd.MarkFlagRequired("date")
	return cmd
}

// run builds a runner for id, executes fn and prints the result.
func (c *CLI) run(ctx context.Context, id string, opts *printOpts, fn runFunc) error {
	runner, cleanup, err := c.newRunner(ctx, id, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	prog := newProgress(loggerFromContext(ctx))
	res, err := fn(ctx, runner)
	if err != nil {
		return err
	}
	prog.done("Finished "+res.Program, "run", res.RunID[:8], "files", len(res.Files))
	printResult(res)
	return nil
}

// pickDaySheets lists the day sheets and lets the user choose.
func (c *CLI) pickDaySheets(ctx context.Context, r *pipeline.Runner, id string) ([]string, error) {
	spinner := newSpinnerWithContext(ctx, "Loading day sheets...")
	spinner.Start()
	sheets, err := r.DaySheets(ctx, id)
	if err != nil {
		spinner.StopWithError("Could not list the sheets")
		return nil, err
	}
	if len(sheets) == 0 {
		spinner.Stop()
		return nil, errors.New(errors.ErrCodeSheetNotFound, "no sheets starting with %q", r.Config.Planner.DayPrefix)
	}
	spinner.StopWithSuccess(fmt.Sprintf("Found %d day %s", len(sheets), plural(len(sheets), "sheet", "sheets")))

	chosen, err := pickSheets(sheets)
	if err != nil {
		return nil, err
	}
	if len(chosen) == 0 {
		return nil, context.Canceled
	}
	return chosen, nil
}
