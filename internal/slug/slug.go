// Package slug derives URL-safe identifiers and display titles from photo file names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
	// Matches separators in raw base names (for title derivation).
	titleSeparatorRe = regexp.MustCompile(`[-_\s]+`)

	titleCaser = cases.Title(language.Und)
)

// Make converts a raw name to a canonical URL-safe slug.
// The slug is the source of truth for photo identity in the manifest.
//
// Normalization rules:
//  1. Decompose accented characters (NFKD) and drop non-ASCII
//  2. Trim whitespace and lowercase
//  3. Replace spaces, underscores, and slashes with dashes
//  4. Remove non-alphanumeric characters (except dashes)
//  5. Collapse multiple dashes, trim leading/trailing dashes
//
// Examples:
//
//	"Golden Hour"     → "golden-hour"
//	"golden_hour"     → "golden-hour"
//	"Café/Terrasse"   → "cafe-terrasse"
//	"  multi   word " → "multi-word"
//	"🌅"              → ""
//
// The empty result for symbol-only input is deliberate; callers fall back
// to a sequential id.
func Make(input string) string {
	// Decompose accented characters, then drop what is left outside ASCII.
	s := norm.NFKD.String(input)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(strings.TrimSpace(s))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Title converts a raw base name to a human-readable title.
// Separators (dashes, underscores, whitespace runs) become single spaces
// and each word is title-cased.
//
//	"golden_hour"  → "Golden Hour"
//	"beach-day 02" → "Beach Day 02"
func Title(input string) string {
	s := titleSeparatorRe.ReplaceAllString(strings.TrimSpace(input), " ")
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}
