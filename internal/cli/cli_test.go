package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/sheetprint/pkg/cache"
	"github.com/matzehuels/sheetprint/pkg/config"
	"github.com/matzehuels/sheetprint/pkg/errors"
)

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, want := range []string{"munchkin", "lineage", "planner", "cache", "auth", "completion"} {
		if !slices.Contains(got, want) {
			t.Errorf("root command is missing %q (have %v)", want, got)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root command should have a --config flag")
	}
}

func TestPlannerRequiresDate(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"planner", "tabor.xlsx"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("planner without --date should fail")
	}
}

func TestDateValue(t *testing.T) {
	var d time.Time
	v := newDateValue(&d)
	if v.String() != "" {
		t.Errorf("zero date String() = %q, want empty", v.String())
	}
	if v.Type() != "date" {
		t.Errorf("Type() = %q", v.Type())
	}

	if err := v.Set("2024-07-01"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if want := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC); !d.Equal(want) {
		t.Errorf("date = %v, want %v", d, want)
	}
	if v.String() != "2024-07-01" {
		t.Errorf("String() = %q", v.String())
	}

	err := v.Set("1.7.2024")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Set(1.7.2024) error = %v, want INVALID_INPUT", err)
	}
}

func TestPrintOptsValidate(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "client_secret.json")
	if err := os.WriteFile(secret, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	notDir := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(notDir, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	const sheetID = "1AbCdEfGhIjKlMnOpQrStUvWxYz0123456789"

	tests := []struct {
		name string
		id   string
		opts printOpts
		want errors.Code
	}{
		{"spreadsheet", sheetID, printOpts{secret: secret}, ""},
		{"missing secret", sheetID, printOpts{secret: filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"bad id", "a/b", printOpts{secret: secret}, errors.ErrCodeInvalidInput},
		{"workbook needs no secret", "tabor.xlsx", printOpts{secret: "nope.json"}, ""},
		{"output is a file", "tabor.xlsx", printOpts{output: notDir}, errors.ErrCodeInvalidPath},
		{"unknown engine", "tabor.xlsx", printOpts{pdf: "pandoc"}, errors.ErrCodeInvalidInput},
		{"known engine", "tabor.xlsx", printOpts{pdf: "rsvg"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate(tt.id)
			if tt.want == "" {
				if err != nil {
					t.Errorf("validate() error: %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("validate() code = %q (%v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestPrintOptsApply(t *testing.T) {
	cfg := config.Default()
	(&printOpts{pdf: "none", noCache: true}).apply(cfg)
	if cfg.PDF.Engine != "none" {
		t.Errorf("engine = %q, want none", cfg.PDF.Engine)
	}
	if cfg.Cache.Backend != config.BackendNone {
		t.Errorf("backend = %q, want none", cfg.Cache.Backend)
	}

	cfg = config.Default()
	want := cfg.PDF.Engine
	(&printOpts{}).apply(cfg)
	if cfg.PDF.Engine != want {
		t.Errorf("unset --pdf changed the engine to %q", cfg.PDF.Engine)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	c, err := newCache(ctx, config.Cache{Backend: config.BackendNone})
	if err != nil {
		t.Fatalf("newCache(none) error: %v", err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("newCache(none) = %T, want cache.NullCache", c)
	}

	dir := filepath.Join(t.TempDir(), "ranges")
	c, err = newCache(ctx, config.Cache{Backend: config.BackendFile, Dir: dir})
	if err != nil {
		t.Fatalf("newCache(file) error: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newCache(file) = %T, want *cache.FileCache", c)
	}
}

func TestNewConverter(t *testing.T) {
	if _, err := newConverter(config.PDF{Engine: "none"}); err != nil {
		t.Errorf("newConverter(none) error: %v", err)
	}
	if _, err := newConverter(config.PDF{Engine: "pandoc"}); err == nil {
		t.Error("newConverter(pandoc) should fail")
	}
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m SheetPickerModel, msgs ...tea.Msg) SheetPickerModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SheetPickerModel)
	}
	return m
}

func TestSheetPicker(t *testing.T) {
	sheets := []string{"den 1", "den 2", "den 3"}

	t.Run("all checked", func(t *testing.T) {
		m := update(t, NewSheetPickerModel(sheets), tea.KeyMsg{Type: tea.KeyEnter})
		if !m.Done {
			t.Error("enter should finish the picker")
		}
		if diff := cmp.Diff(sheets, m.Selected()); diff != "" {
			t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("toggle", func(t *testing.T) {
		m := update(t, NewSheetPickerModel(sheets), key('j'), key('x'), tea.KeyMsg{Type: tea.KeyEnter})
		if diff := cmp.Diff([]string{"den 1", "den 3"}, m.Selected()); diff != "" {
			t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
		}
		if m.dayNumber(2) != 2 || m.dayNumber(1) != 0 {
			t.Errorf("day numbers = %d, %d; want 2, 0", m.dayNumber(2), m.dayNumber(1))
		}
	})

	t.Run("cursor stays in range", func(t *testing.T) {
		m := update(t, NewSheetPickerModel(sheets), key('k'), key('j'), key('j'), key('j'), key('j'))
		if m.Cursor != 2 {
			t.Errorf("Cursor = %d, want 2", m.Cursor)
		}
	})

	t.Run("toggle all", func(t *testing.T) {
		m := update(t, NewSheetPickerModel(sheets), key('a'))
		if len(m.Selected()) != 0 {
			t.Errorf("a with everything checked should clear, got %v", m.Selected())
		}
		m = update(t, m, key('a'))
		if len(m.Selected()) != 3 {
			t.Errorf("a again should check everything, got %v", m.Selected())
		}
	})

	t.Run("quit", func(t *testing.T) {
		m := update(t, NewSheetPickerModel(sheets), key('q'))
		if !m.Canceled || m.Selected() != nil {
			t.Errorf("q should cancel, got Canceled=%v Selected=%v", m.Canceled, m.Selected())
		}
	})

	t.Run("view", func(t *testing.T) {
		m := update(t, NewSheetPickerModel(sheets), key('x'))
		if v := m.View(); v == "" {
			t.Error("View() should not be empty")
		}
	})
}

// writeLineageWorkbook saves a workbook with the lineage sheet.
func writeLineageWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "zaklinadlo"
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatal(err)
	}
	rows := [][]any{
		{"Jméno", "Poznámka", "Pozice", "Slovo", "Před", "Po"},
		{"Anna", "", 2, "krev", "Bára je před tebou", ""},
		{"Bára", "", 1, "noc", "", "Anna je za tebou"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "tabor.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLineageFromWorkbook(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(config.EnvRedisAddr, "")

	path := writeLineageWorkbook(t)
	out := filepath.Join(t.TempDir(), "vampires")

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"lineage", path, "--pdf", "none", "-o", out})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("lineage error: %v", err)
	}

	for _, name := range []string{"front1.svg", "cover1.svg", "front2.svg", "cover2.svg"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "output.pdf")); !os.IsNotExist(err) {
		t.Error("--pdf none should not write a PDF")
	}
}
