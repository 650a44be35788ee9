package values

import (
	"encoding/json"
	"fmt"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
)

// Recommendation is the compliance action implied by a screening outcome.
// The set is closed; severity ordering drives whole-result reduction.
type Recommendation string

const (
	RecommendationApprove             Recommendation = "APPROVE"
	RecommendationLowConfidenceReview Recommendation = "LOW_CONFIDENCE_REVIEW"
	RecommendationManualReview        Recommendation = "MANUAL_REVIEW"
	RecommendationReject              Recommendation = "REJECT"
	RecommendationAutoEscalate        Recommendation = "AUTO_ESCALATE"
)

var recommendationSeverity = map[Recommendation]int{
	RecommendationApprove:             0,
	RecommendationLowConfidenceReview: 1,
	RecommendationManualReview:        2,
	RecommendationReject:              3,
	RecommendationAutoEscalate:        4,
}

// NewRecommendation validates a recommendation string
func NewRecommendation(s string) (Recommendation, error) {
	r := Recommendation(s)
	if _, ok := recommendationSeverity[r]; !ok {
		return "", errors.NewValidationError("UNKNOWN_RECOMMENDATION",
			fmt.Sprintf("recommendation '%s' is not supported", s))
	}
	return r, nil
}

// Severity returns the ordering rank (higher = more severe):
// AUTO_ESCALATE > REJECT > MANUAL_REVIEW > LOW_CONFIDENCE_REVIEW > APPROVE
func (r Recommendation) Severity() int {
	return recommendationSeverity[r]
}

// MoreSevereThan compares two recommendations by severity
func (r Recommendation) MoreSevereThan(other Recommendation) bool {
	return r.Severity() > other.Severity()
}

// IsValid checks if the recommendation is one of the supported actions
func (r Recommendation) IsValid() bool {
	_, ok := recommendationSeverity[r]
	return ok
}

// RequiresAnalyst reports whether a human must look at the result
func (r Recommendation) RequiresAnalyst() bool {
	return r == RecommendationLowConfidenceReview ||
		r == RecommendationManualReview ||
		r == RecommendationAutoEscalate
}

// IsBlocking reports whether the subject must not be approved
func (r Recommendation) IsBlocking() bool {
	return r == RecommendationReject || r == RecommendationAutoEscalate
}

func (r Recommendation) String() string {
	return string(r)
}

// MostSevere reduces a set of recommendations to the most severe one.
// An empty set reduces to APPROVE.
func MostSevere(recs ...Recommendation) Recommendation {
	result := RecommendationApprove
	for _, r := range recs {
		if r.MoreSevereThan(result) {
			result = r
		}
	}
	return result
}

// MarshalJSON implements JSON marshaling
func (r Recommendation) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// UnmarshalJSON implements JSON unmarshaling
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	rec, err := NewRecommendation(s)
	if err != nil {
		return err
	}

	*r = rec
	return nil
}
