// Package index provides the immutable, queryable snapshot of sanctioned
// entities that all screening reads go through. A snapshot is built once
// from supplier records and never mutated; rebuilds construct a fresh
// snapshot off to the side and publish it atomically through the Store.
package index

import (
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
	"github.com/complianceworks/sanctions-screening-backend/internal/matching"
)

// Index is one immutable snapshot of all sanctioned entities. Entities and
// their precomputed name normalizations are owned by the snapshot; readers
// share it without locking.
type Index struct {
	version string
	builtAt time.Time

	records []matching.Candidate

	// blocking keys: normalized token and phonetic key of every token of
	// every name variant, each mapped to record ordinals
	byToken    map[string][]int
	byPhonetic map[string][]int

	countBySource map[string]int
}

// Build constructs a snapshot from a finite sequence of entities. An empty
// input builds a valid index that matches nothing. Entity order is
// preserved: it fixes the capped-scan fallback order and makes rebuilds
// from identical input reproducible.
func Build(entities []*sanction.Entity) *Index {
	ix := &Index{
		version:       ulid.Make().String(),
		builtAt:       time.Now().UTC(),
		records:       make([]matching.Candidate, 0, len(entities)),
		byToken:       make(map[string][]int),
		byPhonetic:    make(map[string][]int),
		countBySource: make(map[string]int),
	}

	for _, entity := range entities {
		if entity == nil {
			continue
		}

		ordinal := len(ix.records)
		names := entity.AllNames()
		variants := make([]matching.NameVariant, 0, len(names))

		for i, name := range names {
			norm := matching.Normalize(name)
			if norm.IsEmpty() {
				continue
			}
			variants = append(variants, matching.NameVariant{
				Raw:   name,
				Norm:  norm,
				Alias: i > 0,
			})

			for _, tok := range norm.Tokens {
				ix.addKey(ix.byToken, tok, ordinal)
				for _, key := range matching.PhoneticKeys(tok) {
					ix.addKey(ix.byPhonetic, key, ordinal)
				}
			}
		}

		if len(variants) == 0 {
			continue
		}

		ix.records = append(ix.records, matching.Candidate{
			Entity:   entity,
			Variants: variants,
		})
		ix.countBySource[entity.Source.String()]++
	}

	return ix
}

func (ix *Index) addKey(bucket map[string][]int, key string, ordinal int) {
	ords := bucket[key]
	if len(ords) > 0 && ords[len(ords)-1] == ordinal {
		return
	}
	bucket[key] = append(ords, ordinal)
}

// Candidates returns entities worth full scoring for the subject, capped at
// max. The pre-filter unions the blocking-key buckets (exact token and
// phonetic key) of every subject token; when blocking yields nothing the
// lookup falls back to a capped scan in build order so that bounded latency
// is guaranteed without silently excluding the whole list.
func (ix *Index) Candidates(subject matching.NormalizedName, max int) []matching.Candidate {
	if max <= 0 || len(ix.records) == 0 || subject.IsEmpty() {
		return nil
	}

	seen := make(map[int]bool)
	ordinals := make([]int, 0, max)

	collect := func(ords []int) {
		for _, o := range ords {
			if !seen[o] {
				seen[o] = true
				ordinals = append(ordinals, o)
			}
		}
	}

	for _, tok := range subject.Tokens {
		collect(ix.byToken[tok])
		for _, key := range matching.PhoneticKeys(tok) {
			collect(ix.byPhonetic[key])
		}
	}

	if len(ordinals) == 0 {
		// capped full scan fallback
		limit := len(ix.records)
		if limit > max {
			limit = max
		}
		out := make([]matching.Candidate, limit)
		copy(out, ix.records[:limit])
		return out
	}

	sort.Ints(ordinals)
	if len(ordinals) > max {
		ordinals = ordinals[:max]
	}

	out := make([]matching.Candidate, 0, len(ordinals))
	for _, o := range ordinals {
		out = append(out, ix.records[o])
	}
	return out
}

// Version is the snapshot identifier; results produced against the same
// version are comparable bit-for-bit.
func (ix *Index) Version() string {
	return ix.version
}

// BuiltAt is when the snapshot was constructed
func (ix *Index) BuiltAt() time.Time {
	return ix.builtAt
}

// Size returns the number of indexed entities
func (ix *Index) Size() int {
	return len(ix.records)
}

// CountBySource returns entity counts per sanctions list
func (ix *Index) CountBySource() map[string]int {
	out := make(map[string]int, len(values.GetSupportedSources()))
	for _, src := range values.GetSupportedSources() {
		out[src] = ix.countBySource[src]
	}
	return out
}
