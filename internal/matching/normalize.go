// Package matching implements the name normalization and multi-algorithm
// scoring core of the screening engine. Everything in this package is pure:
// the same input always produces the same output, which is what makes
// screening results reproducible for audit.
package matching

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizedName is the canonical comparable form of a raw name. The
// original token order is preserved in Canonical for exact-match checks;
// SortedTokens backs token-set comparisons that are insensitive to
// "García Juan" vs "Juan García" reordering.
type NormalizedName struct {
	Original  string
	Canonical string
	Tokens    []string
	Sorted    []string
}

// foldDiacritics strips combining marks after NFD decomposition, so that
// "Putín" and "Putin" compare equal.
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize canonicalizes a raw name for comparison. Rules, in order:
// Unicode diacritic folding, case folding, punctuation stripping (internal
// hyphens in compound surnames survive), whitespace collapsing, token
// splitting. An empty or symbol-only input normalizes to its stripped form;
// treating an empty subject name as a validation error is the caller's job.
func Normalize(raw string) NormalizedName {
	folded, _, err := transform.String(foldDiacritics, raw)
	if err != nil {
		// Malformed input falls through un-folded; the remaining rules
		// still apply and stay deterministic.
		folded = raw
	}

	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	rs := []rune(folded)
	for i, r := range rs {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' && i > 0 && i < len(rs)-1 &&
			unicode.IsLetter(rs[i-1]) && unicode.IsLetter(rs[i+1]):
			// internal hyphen in a compound surname
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	canonical := strings.Join(tokens, " ")

	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)

	return NormalizedName{
		Original:  raw,
		Canonical: canonical,
		Tokens:    tokens,
		Sorted:    sorted,
	}
}

// IsEmpty reports whether normalization produced no comparable content
func (n NormalizedName) IsEmpty() bool {
	return n.Canonical == ""
}

// SortedCanonical joins the alphabetically ordered tokens
func (n NormalizedName) SortedCanonical() string {
	return strings.Join(n.Sorted, " ")
}

// TokenSet returns the unique tokens of the name
func (n NormalizedName) TokenSet() map[string]bool {
	set := make(map[string]bool, len(n.Tokens))
	for _, tok := range n.Tokens {
		set[tok] = true
	}
	return set
}
