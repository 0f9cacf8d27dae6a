package geo

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonLetterRegex  = regexp.MustCompile(`[^a-z ]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// NFD-decompose, drop combining marks, recompose: turns "Besançon"
	// into "Besancon" without touching base letters.
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize canonicalizes free text for gazetteer and dictionary matching:
// accents are transliterated to ASCII, everything that is not a letter
// becomes a space, whitespace is collapsed, and the result is lowercased
// and trimmed. Location strings and display names go through the same
// function so that lookups stay consistent across the pipeline.
func Normalize(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the raw
		// bytes so matching degrades instead of aborting.
		out = s
	}
	out = strings.ToLower(out)
	out = nonLetterRegex.ReplaceAllString(out, " ")
	out = whitespaceRegex.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// FirstToken returns the first whitespace-delimited token of the normalized
// form of s, or "" when nothing remains after normalization.
func FirstToken(s string) string {
	normalized := Normalize(s)
	if normalized == "" {
		return ""
	}
	token, _, _ := strings.Cut(normalized, " ")
	return token
}
