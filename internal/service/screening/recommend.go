package screening

import (
	"fmt"
	"strings"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
)

// Thresholds carve the [0,100] confidence domain into contiguous
// recommendation bands with no gaps and no overlaps:
//
//	[0, ReviewFloor)   APPROVE
//	[ReviewFloor, Low) LOW_CONFIDENCE_REVIEW
//	[Low, High)        MANUAL_REVIEW
//	[High, 100]        REJECT, or AUTO_ESCALATE for high-severity programs
type Thresholds struct {
	ReviewFloor float64 `koanf:"review_floor"`
	Low         float64 `koanf:"low"`
	High        float64 `koanf:"high"`
}

// DefaultThresholds returns the documented default band cut points
func DefaultThresholds() Thresholds {
	return Thresholds{
		ReviewFloor: 40.0,
		Low:         70.0,
		High:        90.0,
	}
}

// Validate enforces band monotonicity at startup
func (t Thresholds) Validate() error {
	if !(t.ReviewFloor > 0 && t.ReviewFloor < t.Low && t.Low < t.High && t.High <= 100) {
		return errors.NewConfigurationError("INVALID_THRESHOLDS",
			fmt.Sprintf("thresholds must satisfy 0 < review_floor < low < high <= 100, got %v < %v < %v",
				t.ReviewFloor, t.Low, t.High))
	}
	return nil
}

// DefaultHighSeverityPrograms lists the sanctions programs that force
// AUTO_ESCALATE on strong matches: terrorism and WMD proliferation related.
func DefaultHighSeverityPrograms() []string {
	return []string{"SDGT", "SDNTK", "FTO", "NPWMD"}
}

// Recommender maps aggregated confidence plus entity metadata to one
// terminal recommendation. The mapping is a pure function of its inputs;
// for a fixed entity, higher confidence never yields a less severe action.
type Recommender struct {
	thresholds   Thresholds
	highSeverity map[string]bool
}

// NewRecommender validates the threshold table once, at startup
func NewRecommender(thresholds Thresholds, highSeverityPrograms []string) (*Recommender, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	programs := make(map[string]bool, len(highSeverityPrograms))
	for _, p := range highSeverityPrograms {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			programs[p] = true
		}
	}

	return &Recommender{
		thresholds:   thresholds,
		highSeverity: programs,
	}, nil
}

// Recommend picks the terminal action for one candidate. Confidence is
// consumed on the 0-100 scale it already carries; no rescaling happens
// here.
func (r *Recommender) Recommend(confidence values.Confidence, entity *sanction.Entity) values.Recommendation {
	switch {
	case confidence.Below(r.thresholds.ReviewFloor):
		return values.RecommendationApprove
	case confidence.Below(r.thresholds.Low):
		return values.RecommendationLowConfidenceReview
	case confidence.Below(r.thresholds.High):
		return values.RecommendationManualReview
	case entity != nil && entity.HasAnyProgram(r.highSeverity):
		return values.RecommendationAutoEscalate
	default:
		return values.RecommendationReject
	}
}

// IsHighSeverity reports whether the entity carries a program that forces
// escalation
func (r *Recommender) IsHighSeverity(entity *sanction.Entity) bool {
	return entity != nil && entity.HasAnyProgram(r.highSeverity)
}
