package matching

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Algorithm identifies one similarity strategy. The set is closed: scoring
// is a reduction over these four variants, not an extension point.
type Algorithm string

const (
	AlgorithmExact        Algorithm = "exact"
	AlgorithmTokenSet     Algorithm = "token_set"
	AlgorithmEditDistance Algorithm = "edit_distance"
	AlgorithmPhonetic     Algorithm = "phonetic"
)

// Algorithms returns the algorithm set in its fixed evaluation order.
// Iteration anywhere on the scoring path goes through this slice, never
// through a map, so results are reproducible.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmExact,
		AlgorithmTokenSet,
		AlgorithmEditDistance,
		AlgorithmPhonetic,
	}
}

// ScoreVector holds one [0,1] score per algorithm for a single name pair
type ScoreVector map[Algorithm]float64

// ScoreNames scores a subject name against one candidate name variant with
// every algorithm. Each score is in [0,1]; 1.0 is a perfect match under
// that algorithm's definition.
func ScoreNames(subject, candidate NormalizedName) ScoreVector {
	return ScoreVector{
		AlgorithmExact:        exactScore(subject, candidate),
		AlgorithmTokenSet:     tokenSetScore(subject, candidate),
		AlgorithmEditDistance: editDistanceScore(subject, candidate),
		AlgorithmPhonetic:     phoneticScore(subject, candidate),
	}
}

// Max returns the highest score in the vector
func (v ScoreVector) Max() float64 {
	max := 0.0
	for _, alg := range Algorithms() {
		if s := v[alg]; s > max {
			max = s
		}
	}
	return max
}

// Mean returns the unweighted average over the algorithm set
func (v ScoreVector) Mean() float64 {
	algs := Algorithms()
	sum := 0.0
	for _, alg := range algs {
		sum += v[alg]
	}
	return sum / float64(len(algs))
}

// AllBelow reports whether every algorithm scored under the floor
func (v ScoreVector) AllBelow(floor float64) bool {
	return v.Max() < floor
}

// exactScore: normalized-string equality, insensitive to token order.
// "Vladimir Putin" and "Putin, Vladimir" are the same name written in a
// different convention, so equality is checked on the sorted token form.
// Differing token multisets ("Vladimir Putin" vs "Vladimir Vladimirovich
// Putin") are not exact.
func exactScore(subject, candidate NormalizedName) float64 {
	if subject.Canonical == "" || candidate.Canonical == "" {
		return 0
	}
	if subject.Canonical == candidate.Canonical ||
		subject.SortedCanonical() == candidate.SortedCanonical() {
		return 1
	}
	return 0
}

// tokenSetScore: Jaccard overlap of the token sets. Handles reordered
// names such as "García Juan" vs "Juan García".
func tokenSetScore(subject, candidate NormalizedName) float64 {
	a, b := subject.TokenSet(), candidate.TokenSet()
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// editDistanceScore: Levenshtein similarity ratio over the canonical forms.
// Handles typos and OCR errors. Token order is a naming convention, not a
// typo, so the score is the better of the as-written and sorted-token
// comparisons: "Putin Vladimir" vs "Vladimir Putin" scores 1, while a real
// misspelling still pays per edited rune.
func editDistanceScore(subject, candidate NormalizedName) float64 {
	if subject.Canonical == "" || candidate.Canonical == "" {
		return 0
	}
	asWritten := levenshteinRatio(subject.Canonical, candidate.Canonical)
	sorted := levenshteinRatio(subject.SortedCanonical(), candidate.SortedCanonical())
	if sorted > asWritten {
		return sorted
	}
	return asWritten
}

// levenshteinRatio computes similarity against the longer string so the
// result stays in [0,1].
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}

	dist := matchr.Levenshtein(a, b)
	score := 1.0 - float64(dist)/float64(longest)
	if score < 0 {
		return 0
	}
	return score
}

// phoneticScore: Jaccard overlap of per-token Double Metaphone keys.
// Handles transliteration variants ("Mohammed" / "Muhammad") and is
// insensitive to token order.
func phoneticScore(subject, candidate NormalizedName) float64 {
	a := phoneticKeySet(subject)
	b := phoneticKeySet(candidate)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for key := range a {
		if b[key] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

func phoneticKeySet(n NormalizedName) map[string]bool {
	keys := make(map[string]bool, len(n.Tokens))
	for _, tok := range n.Tokens {
		for _, key := range PhoneticKeys(tok) {
			keys[key] = true
		}
	}
	return keys
}

// PhoneticKeys returns the Double Metaphone encodings of a single token:
// the primary key and, when it differs, the alternate. Tokens that encode
// to nothing (numerals, symbols) yield no keys.
func PhoneticKeys(token string) []string {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	primary, alternate := matchr.DoubleMetaphone(token)
	if primary == "" {
		return nil
	}
	if alternate != "" && alternate != primary {
		return []string{primary, alternate}
	}
	return []string{primary}
}
