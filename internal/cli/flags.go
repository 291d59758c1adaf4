package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/sheetprint/pkg/config"
	"github.com/matzehuels/sheetprint/pkg/convert"
	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/source/xlsx"
)

// defaultSecret is the OAuth client file looked up in the working directory.
const defaultSecret = "client_secret.json"

// printOpts holds the flags shared by the print commands.
type printOpts struct {
	secret  string // OAuth client secret file
	output  string // output directory, empty for the configured one
	pdf     string // PDF engine, empty for the configured one
	noCache bool   // bypass the range cache completely
	refresh bool   // refetch but update the cache
}

// register adds the shared flags to cmd.
func (o *printOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.secret, "secret", "s", defaultSecret, "path to the Google OAuth client secret")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&o.pdf, "pdf", "", "PDF engine: chrome, rsvg or none")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the fetched-range cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "refetch ranges, updating the cache")
}

// validate checks the flags before anything is fetched. The secret is only
// needed for Google spreadsheets.
func (o *printOpts) validate(id string) error {
	if !xlsx.IsWorkbook(id) {
		if err := errors.ValidateSpreadsheetID(id); err != nil {
			return err
		}
		if err := errors.ValidateFile(o.secret); err != nil {
			return err
		}
	}
	if o.output != "" {
		if err := errors.ValidateOutputDir(o.output); err != nil {
			return err
		}
	}
	if o.pdf != "" {
		if _, err := convert.ParseEngine(o.pdf); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--pdf")
		}
	}
	return nil
}

// apply overrides the configuration with the flags that were set.
func (o *printOpts) apply(cfg *config.Config) {
	if o.pdf != "" {
		cfg.PDF.Engine = o.pdf
	}
	if o.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
}

// dateLayout is the ISO date format of --date.
const dateLayout = time.DateOnly

// dateValue is a pflag.Value holding an ISO date.
type dateValue struct {
	t *time.Time
}

func newDateValue(t *time.Time) *dateValue { return &dateValue{t: t} }

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid date %q, want YYYY-MM-DD", s)
	}
	*d.t = t
	return nil
}

func (d *dateValue) Type() string { return "date" }

var _ pflag.Value = (*dateValue)(nil)
