package errors

import (
	"os"
	"regexp"
	"strings"
	"unicode"
)

// spreadsheetIDRegex matches Google spreadsheet identifiers as they appear in
// the document URL (base64url alphabet).
var spreadsheetIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{10,128}$`)

// ValidateSpreadsheetID validates a Google spreadsheet identifier.
//
// The identifier is embedded in request paths, so anything outside the URL
// alphabet is rejected before a request is built.
func ValidateSpreadsheetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "spreadsheet id cannot be empty")
	}
	if !spreadsheetIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid spreadsheet id: %q", id)
	}
	return nil
}

// ValidateSheetTitle validates a sheet (tab) title used inside a range.
//
// Validation rules:
//   - Title cannot be empty
//   - Maximum length of 100 characters (spreadsheet service limit)
//   - No control characters
//   - No characters that cannot appear in a tab name: [ ] * ? / \ :
func ValidateSheetTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidRange, "sheet title cannot be empty")
	}
	if len([]rune(title)) > 100 {
		return New(ErrCodeInvalidRange, "sheet title too long (max 100 characters)")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRange, "sheet title contains control characters")
		}
	}
	if strings.ContainsAny(title, "[]*?/\\:") {
		return New(ErrCodeInvalidRange, "sheet title contains invalid characters: %q", title)
	}
	return nil
}

// ValidateFile checks that path names an existing regular file.
// Used for credential files that must exist before any data is fetched.
func ValidateFile(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "file path cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "%s is not a valid file", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is a directory, not a file", path)
	}
	return nil
}

// ValidateOutputDir checks that path can be used as an output directory.
// A missing directory is valid (it is created later); an existing
// non-directory is not.
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is not a valid directory", path)
	}
	return nil
}
