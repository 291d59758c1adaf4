// Package config loads the optional sheetprint configuration file.
//
// The file is TOML by default; a .yaml or .yml extension selects YAML.
// Every key is optional: values missing from the file keep the built-in
// defaults returned by [Default], and command-line flags override both.
//
//	[munchkin]
//	equipment_range = "'Vybavení'!B2:F"
//	rows = 7
//
//	[pdf]
//	engine = "rsvg"
//
//	[cache]
//	backend = "redis"
//	redis.addr = "localhost:6379"
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/matzehuels/sheetprint/pkg/cache"
	"github.com/matzehuels/sheetprint/pkg/convert"
	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/planner"
	"github.com/matzehuels/sheetprint/pkg/render/cards"
	"github.com/matzehuels/sheetprint/pkg/render/lineage"
	"github.com/matzehuels/sheetprint/pkg/session"
	"github.com/matzehuels/sheetprint/pkg/source"
)

// FileName is the config file looked up in the config directory.
const FileName = "config.toml"

// EnvRedisAddr selects the Redis cache and sets its address.
const EnvRedisAddr = "SHEETPRINT_REDIS_ADDR"

// maxSize bounds the config file size.
const maxSize = 1 << 20

// ErrTooLarge is returned for config files over 1MB.
var ErrTooLarge = stderrors.New("config file too large")

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete configuration.
type Config struct {
	Munchkin Munchkin `toml:"munchkin" yaml:"munchkin"`
	Lineage  Lineage  `toml:"lineage" yaml:"lineage"`
	Planner  Planner  `toml:"planner" yaml:"planner"`
	PDF      PDF      `toml:"pdf" yaml:"pdf"`
	Cache    Cache    `toml:"cache" yaml:"cache"`
}

// Munchkin configures the card program.
type Munchkin struct {
	EquipmentRange string `toml:"equipment_range" yaml:"equipment_range"`
	MonsterRange   string `toml:"monster_range" yaml:"monster_range"`
	CurseRange     string `toml:"curse_range" yaml:"curse_range"`
	BonusRange     string `toml:"bonus_range" yaml:"bonus_range"`
	Rows           int    `toml:"rows" yaml:"rows"`
	Columns        int    `toml:"columns" yaml:"columns"`
	WrapWidth      int    `toml:"wrap_width" yaml:"wrap_width"`
	Output         string `toml:"output" yaml:"output"`
}

// Lineage configures the lineage pages program.
type Lineage struct {
	Range     string `toml:"range" yaml:"range"`
	WrapWidth int    `toml:"wrap_width" yaml:"wrap_width"`
	Output    string `toml:"output" yaml:"output"`
}

// Planner configures the day planner program.
type Planner struct {
	SummaryRange string `toml:"summary_range" yaml:"summary_range"`
	DayPrefix    string `toml:"day_prefix" yaml:"day_prefix"`
	DayCells     string `toml:"day_cells" yaml:"day_cells"`
	PageBreaks   bool   `toml:"page_breaks" yaml:"page_breaks"`
	Output       string `toml:"output" yaml:"output"`
}

// PDF configures the converter.
type PDF struct {
	Engine  string        `toml:"engine" yaml:"engine"`
	Timeout time.Duration `toml:"timeout" yaml:"timeout"`
}

// Cache configures the fetched-range cache.
type Cache struct {
	Backend   string        `toml:"backend" yaml:"backend"`
	Dir       string        `toml:"dir" yaml:"dir"`
	RangeTTL  time.Duration `toml:"range_ttl" yaml:"range_ttl"`
	SheetsTTL time.Duration `toml:"sheets_ttl" yaml:"sheets_ttl"`
	Redis     Redis         `toml:"redis" yaml:"redis"`
}

// Redis holds connection settings of the Redis backend.
type Redis struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Munchkin: Munchkin{
			EquipmentRange: "'Vybavení'!B2:F",
			MonsterRange:   "'Příšerky'!B2:D",
			CurseRange:     "'Kletby'!B2:D",
			BonusRange:     "'Bonus'!B2:E",
			Rows:           cards.Rows,
			Columns:        cards.Columns,
			WrapWidth:      cards.WrapWidth,
			Output:         filepath.Join("output", "munchkin"),
		},
		Lineage: Lineage{
			Range:     "'zaklinadlo'!A2:F",
			WrapWidth: lineage.WrapWidth,
			Output:    filepath.Join("output", "vampires"),
		},
		Planner: Planner{
			SummaryRange: planner.SummaryRange,
			DayPrefix:    planner.SheetPrefix,
			DayCells:     planner.DayCells,
			Output:       "output",
		},
		PDF: PDF{
			Engine:  string(convert.EngineChrome),
			Timeout: convert.DefaultTimeout,
		},
		Cache: Cache{
			Backend:   BackendFile,
			RangeTTL:  cache.TTLRange,
			SheetsTTL: cache.TTLSheets,
			Redis:     Redis{Prefix: "sheetprint:"},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sheetprint/config.toml or
// ~/.config/sheetprint/config.toml.
func DefaultPath() (string, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the file at path over the defaults. An empty path loads the
// default file if it exists and the defaults otherwise. The Redis
// environment override is applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(p); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	if len(data) > maxSize {
		return errors.Wrap(errors.ErrCodeInvalidConfig, ErrTooLarge, "%s: %d bytes", path, len(data))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, c, yaml.Strict()); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if addr := os.Getenv(EnvRedisAddr); addr != "" {
		c.Cache.Backend = BackendRedis
		c.Cache.Redis.Addr = addr
	}
}

// Validate checks ranges, grid shape and backend names.
func (c *Config) Validate() error {
	ranges := map[string]string{
		"munchkin.equipment_range": c.Munchkin.EquipmentRange,
		"munchkin.monster_range":   c.Munchkin.MonsterRange,
		"munchkin.curse_range":     c.Munchkin.CurseRange,
		"munchkin.bonus_range":     c.Munchkin.BonusRange,
		"lineage.range":            c.Lineage.Range,
		"planner.summary_range":    c.Planner.SummaryRange,
	}
	for key, rng := range ranges {
		if _, err := source.ParseRange(rng); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", key)
		}
	}
	if _, err := source.ParseRange(source.A1("den 1", c.Planner.DayCells)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "planner.day_cells")
	}
	if c.Planner.DayPrefix == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "planner.day_prefix cannot be empty")
	}

	if c.Munchkin.Rows < 1 || c.Munchkin.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "munchkin grid must be at least 1x1, got %dx%d", c.Munchkin.Rows, c.Munchkin.Columns)
	}
	if c.Munchkin.WrapWidth < 1 || c.Lineage.WrapWidth < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "wrap widths must be positive")
	}

	if _, err := convert.ParseEngine(c.PDF.Engine); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "pdf.engine")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	return nil
}
