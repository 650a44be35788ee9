package screening

import (
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
)

// Candidate flags carried on a match for analyst context
const (
	FlagMatchedOnAlias      = "MATCHED_ON_ALIAS"
	FlagHighSeverityProgram = "HIGH_SEVERITY_PROGRAM"
	FlagCountryMatch        = "COUNTRY_MATCH"
	FlagExactNameMatch      = "EXACT_NAME_MATCH"
)

// MatchCandidate is one entity judged similar enough to the subject to
// report. It is assembled in sequence by the matcher (entity, raw scores),
// the aggregator (confidence), and the recommendation engine, and is
// immutable once its result owns it.
type MatchCandidate struct {
	Entity         *sanction.Entity      `json:"entity"`
	MatchedName    string                `json:"matched_name"`
	MatchedOnAlias bool                  `json:"matched_on_alias"`
	Scores         map[string]float64    `json:"scores"`
	Confidence     values.Confidence     `json:"confidence"`
	Recommendation values.Recommendation `json:"recommendation"`
	Flags          []string              `json:"flags,omitempty"`
}

// MoreRelevantThan fixes the presentation order of candidates inside a
// result: confidence descending, recommendation severity then list
// authority as tie-breaks for equal confidence, entity ID ascending as the
// final total-order tie-break so sorting is deterministic.
func (c MatchCandidate) MoreRelevantThan(other MatchCandidate) bool {
	if !c.Confidence.Equal(other.Confidence) {
		return c.Confidence.GreaterThan(other.Confidence)
	}
	if c.Recommendation.Severity() != other.Recommendation.Severity() {
		return c.Recommendation.Severity() > other.Recommendation.Severity()
	}
	if c.Entity.Source.AuthorityLevel() != other.Entity.Source.AuthorityLevel() {
		return c.Entity.Source.AuthorityLevel() > other.Entity.Source.AuthorityLevel()
	}
	return c.Entity.ID < other.Entity.ID
}
