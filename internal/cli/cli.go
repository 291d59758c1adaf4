// Package cli implements the sheetprint command-line interface.
//
// This package provides one command per print program, reading a Google
// spreadsheet (or a local .xlsx workbook) and writing SVG pages, markdown
// and PDF files. The CLI is built using cobra and logs with
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - munchkin: Print Munchkin card sheets
//   - lineage: Print the pages of a vampire lineage
//   - planner: Write the camp day planner overview
//   - cache: Manage the fetched-range cache
//   - auth: Log in to and out of Google
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every fetch, cache and HTTP event. Loggers are passed through
// context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetprint/pkg/buildinfo"
	"github.com/matzehuels/sheetprint/pkg/cache"
	"github.com/matzehuels/sheetprint/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = "sheetprint"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag shared by every command.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and HTTP events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Sheetprint prints game cards and camp documents from spreadsheets",
		Long: `Sheetprint reads Google Sheets (or local .xlsx workbooks) and prints them:
Munchkin card sheets, vampire lineage pages and the day planner overview.

Pages are written as SVG (markdown for the planner) and combined into a PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (TOML, or YAML with a .yaml extension)")

	root.AddCommand(c.munchkinCommand())
	root.AddCommand(c.lineageCommand())
	root.AddCommand(c.plannerCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheDir returns the file cache directory using the XDG standard
// (~/.cache/sheetprint/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}
