package matching

import (
	"sort"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
)

// NameVariant is one comparable name of an entity: the canonical name or an
// alias, with its normalization precomputed at index build time.
type NameVariant struct {
	Raw   string
	Norm  NormalizedName
	Alias bool
}

// Candidate is an entity the pre-filter judged worth full scoring, together
// with all its name variants.
type Candidate struct {
	Entity   *sanction.Entity
	Variants []NameVariant
}

// CandidateSource enumerates candidates for a normalized subject name.
// The sanction list index implements it.
type CandidateSource interface {
	Candidates(subject NormalizedName, max int) []Candidate
}

// Match is one entity that survived scoring and pruning. Scores holds the
// raw per-algorithm [0,1] scores for the best name variant; aggregation to
// a confidence percentage happens downstream.
type Match struct {
	Entity         *sanction.Entity
	MatchedName    string
	MatchedOnAlias bool
	Scores         ScoreVector
}

// Config tunes candidate pruning
type Config struct {
	// MaxCandidates caps how many entities the pre-filter may hand over
	// for full scoring on a single lookup.
	MaxCandidates int `koanf:"max_candidates"`

	// JointMinimum drops a candidate when every algorithm scores below it.
	// A single low algorithm score never disqualifies on its own.
	JointMinimum float64 `koanf:"joint_minimum"`
}

// Validate checks the pruning configuration at startup
func (c Config) Validate() error {
	if c.MaxCandidates <= 0 {
		return errors.NewConfigurationError("INVALID_MAX_CANDIDATES",
			"matching.max_candidates must be positive")
	}
	if c.JointMinimum < 0 || c.JointMinimum > 1 {
		return errors.NewConfigurationError("INVALID_JOINT_MINIMUM",
			"matching.joint_minimum must be within [0,1]")
	}
	return nil
}

// DefaultConfig returns the tuned pruning defaults
func DefaultConfig() Config {
	return Config{
		MaxCandidates: 200,
		JointMinimum:  0.35,
	}
}

// RankFunc collapses a score vector into a single comparable value used to
// pick the strongest name variant of a candidate. It must agree with the
// downstream confidence aggregation, otherwise the variant reported for an
// entity can carry a lower confidence than one of its siblings.
type RankFunc func(ScoreVector) float64

// Matcher scores screening subjects against sanction list candidates
type Matcher struct {
	cfg  Config
	rank RankFunc
}

// NewMatcher creates a matcher with validated pruning configuration.
// Variants rank by the unweighted mean until WithRank installs the
// aggregator's weighted combination.
func NewMatcher(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{
		cfg:  cfg,
		rank: ScoreVector.Mean,
	}, nil
}

// WithRank sets the variant ranking function and returns the matcher
func (m *Matcher) WithRank(rank RankFunc) *Matcher {
	if rank != nil {
		m.rank = rank
	}
	return m
}

// Match enumerates candidates for the subject and fully scores each one.
// Every name variant of a candidate (canonical + aliases) is scored; only
// the best variant is recorded, so an entity never appears twice no matter
// how many of its aliases resemble the subject. Candidates whose scores all
// fall below the joint minimum are dropped.
//
// Output order is normalized to entity ID so downstream aggregation sees a
// deterministic sequence; the final presentation order is fixed later by
// aggregated confidence.
func (m *Matcher) Match(subject NormalizedName, source CandidateSource) []Match {
	if subject.IsEmpty() {
		return nil
	}

	candidates := source.Candidates(subject, m.cfg.MaxCandidates)

	matches := make([]Match, 0, len(candidates))
	for _, cand := range candidates {
		best, ok := m.bestVariant(subject, cand)
		if !ok {
			continue
		}
		matches = append(matches, best)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Entity.ID < matches[j].Entity.ID
	})

	return matches
}

// bestVariant scores all name variants of one candidate and keeps the
// strongest. Variants tie-break to the earlier one, so the canonical name
// wins over an alias with identical scores.
func (m *Matcher) bestVariant(subject NormalizedName, cand Candidate) (Match, bool) {
	var (
		bestScores ScoreVector
		bestIdx    = -1
		bestKey    float64
	)

	for i, variant := range cand.Variants {
		if variant.Norm.IsEmpty() {
			continue
		}
		scores := ScoreNames(subject, variant.Norm)
		key := m.rank(scores)
		if bestIdx == -1 || key > bestKey {
			bestScores = scores
			bestIdx = i
			bestKey = key
		}
	}

	if bestIdx == -1 || bestScores.AllBelow(m.cfg.JointMinimum) {
		return Match{}, false
	}

	variant := cand.Variants[bestIdx]
	return Match{
		Entity:         cand.Entity,
		MatchedName:    variant.Raw,
		MatchedOnAlias: variant.Alias,
		Scores:         bestScores,
	}, true
}
