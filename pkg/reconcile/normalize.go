package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks decomposes accented letters and drops the combining marks, so
// "José" folds to "Jose" before the ASCII strip below would discard it.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a raw name into the matching key: everything from
// the first parenthesis on is dropped, formatting hyphens are removed, the
// remainder is lowercased, accent-folded, and reduced to bare [a-z].
// The result may be empty; an empty key can never match.
//
// Normalize is pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	// Drop trailing annotations like "(inactive)" or "(note)".
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)

	// Hyphens that are pure formatting, not part of a name.
	text = strings.ReplaceAll(text, " - ", " ")
	text = strings.TrimPrefix(text, "- ")
	text = strings.TrimSuffix(text, " -")

	text = strings.ToLower(text)

	if folded, _, err := transform.String(foldMarks, text); err == nil {
		text = folded
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
