// Package normalize canonicalizes free-text restaurant names so the two
// input sources can be compared key-to-key.
package normalize

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// nonASCII removes every rune outside the 7-bit range. Emoji and accented
// glyphs are dropped entirely, not transliterated.
var nonASCII = runes.Remove(runes.Predicate(func(r rune) bool { return r > 127 }))

// Key returns the canonical matching key for a display name: non-ASCII
// runes stripped, "&" spelled out, whitespace collapsed, lowercased.
// Key is idempotent: Key(Key(s)) == Key(s).
func Key(name string) string {
	cleaned, _, _ := transform.String(nonASCII, name)
	cleaned = strings.ReplaceAll(cleaned, "&", "and")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.ToLower(cleaned)
}

// Filename reduces a display name to a filename-safe artifact token.
// ASCII letters, digits, hyphens and underscores survive; spaces become
// underscores; everything else is dropped.
func Filename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}
