// Package cache stores fetched spreadsheet ranges between runs.
//
// Rows fetched from the spreadsheet service are cached as JSON under keys
// produced by a [Keyer]. Backends:
//   - [FileCache]: sharded JSON files under the user cache directory (CLI default)
//   - [RedisCache]: shared cache for several machines printing from one sheet
//   - [NullCache]: caching disabled (--no-cache)
//
// The cache is a transport optimization only; entities and rendered pages
// are never cached.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the cached bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default lifetimes of cached entries.
const (
	// TTLRange is the lifetime of a fetched cell range. Sheets are edited
	// while cards are being prepared, so this is kept short.
	TTLRange = 10 * time.Minute

	// TTLSheets is the lifetime of a spreadsheet's tab list.
	TTLSheets = time.Hour
)

// DefaultDir returns the default cache directory: $XDG_CACHE_HOME/sheetprint
// or ~/.cache/sheetprint.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "sheetprint"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "sheetprint"), nil
}

// Keyer derives cache keys for spreadsheet data.
type Keyer interface {
	// RangeKey is the key of the rows of rng in spreadsheet id.
	RangeKey(id, rng string) string
	// SheetsKey is the key of the tab titles of spreadsheet id.
	SheetsKey(id string) string
}

// DefaultKeyer produces "range:<hash>" and "sheets:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RangeKey hashes the spreadsheet id together with the range.
func (DefaultKeyer) RangeKey(id, rng string) string { return hashKey("range", id, rng) }

// SheetsKey hashes the spreadsheet id.
func (DefaultKeyer) SheetsKey(id string) string { return hashKey("sheets", id) }
