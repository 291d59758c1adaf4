// Package session persists OAuth credentials for the spreadsheet service.
//
// The Google installed-app flow yields an [oauth2.Token] with a refresh
// token. Storing it lets later runs skip the browser consent screen:
//   - [FileStore]: token.json under the user config directory (CLI default)
//   - [MemoryStore]: in-process storage for tests
//
// State tokens generated with [GenerateState] protect the loopback
// callback against cross-site request forgery.
//
// # Usage
//
//	store, err := session.NewFileStore("")  // ~/.config/sheetprint/token.json
//	tok, err := store.Load(ctx)
//	if tok == nil {
//	    // Not logged in
//	}
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// Sentinel errors for session operations.
var (
	// ErrNotLoggedIn is returned when no token has been stored yet.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrInvalidState is returned when an OAuth callback carries an unknown state token.
	ErrInvalidState = errors.New("invalid or expired state token")
)

// TokenStore is the interface for token storage backends.
type TokenStore interface {
	// Load retrieves the stored token.
	// Returns nil, nil if no token has been stored.
	Load(ctx context.Context) (*oauth2.Token, error)

	// Save stores tok, replacing any previous token.
	Save(ctx context.Context, tok *oauth2.Token) error

	// Delete removes the stored token. Deleting a missing token is not an error.
	Delete(ctx context.Context) error
}

// DefaultDir returns the configuration directory: $XDG_CONFIG_HOME/sheetprint
// or ~/.config/sheetprint.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sheetprint"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sheetprint"), nil
}

// GenerateState creates a cryptographically secure random state token.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
