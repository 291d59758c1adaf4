// Package textutil provides the text helpers shared by every renderer:
// symbol identifier derivation, greedy word wrapping and capitalization.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun   = regexp.MustCompile(`[ ]+`)
	notIDChars = regexp.MustCompile(`[^0-9a-zA-Z_-]`)

	upper = cases.Upper(language.Czech)
	lower = cases.Lower(language.Czech)
)

// RemoveAccents decomposes s (NFKD) and drops the combining marks, so
// "Příšerky" becomes "Priserky".
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ID derives a symbol identifier from a display name: lowercased, accents
// removed, runs of spaces replaced by "_" and anything outside
// [0-9a-zA-Z_-] dropped.
//
// ID is idempotent. Distinct names may collide ("Meč" and "Mec").
func ID(name string) string {
	s := RemoveAccents(strings.ToLower(name))
	s = spaceRun.ReplaceAllString(s, "_")
	return notIDChars.ReplaceAllString(s, "")
}

// Wrap splits text into lines no longer than width characters.
//
// Whitespace is normalized: words are separated by single spaces and
// leading or trailing blanks are dropped. A word longer than width is kept
// whole on its own line. A non-positive width returns the normalized text
// as a single line. Empty input yields no lines.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var (
		lines   []string
		current strings.Builder
		n       int
	)
	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		switch {
		case n == 0:
			current.WriteString(w)
			n = wl
		case n+1+wl <= width:
			current.WriteByte(' ')
			current.WriteString(w)
			n += 1 + wl
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(w)
			n = wl
		}
	}
	return append(lines, current.String())
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return upper.String(string(r)) + lower.String(s[size:])
}
