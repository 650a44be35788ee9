package screening

import (
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
)

const screeningIDPrefix = "scr_"

// NewScreeningID generates an opaque, unique, lexicographically sortable
// identifier suitable as an audit/idempotency key.
func NewScreeningID() string {
	return screeningIDPrefix + ulid.Make().String()
}

// RecordError marks a per-record failure inside a batch: a stable error
// kind/code and a human-readable message, never internals.
type RecordError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of screening one subject. Invariant:
// IsHit == (HitCount > 0) == (len(Matches) > 0). Matches are ordered by
// confidence descending with recommendation severity as the tie-break.
type Result struct {
	ScreeningID  string           `json:"screening_id"`
	Input        Input            `json:"input"`
	IndexVersion string           `json:"index_version,omitempty"`
	IsHit        bool             `json:"is_hit"`
	HitCount     int              `json:"hit_count"`
	Matches      []MatchCandidate `json:"matches"`
	Error        *RecordError     `json:"error,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NewResult assembles an immutable screening result from scored candidates.
// The hit invariant is enforced by construction and candidates are sorted
// into their final presentation order.
func NewResult(input Input, indexVersion string, matches []MatchCandidate, now time.Time) *Result {
	sorted := make([]MatchCandidate, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MoreRelevantThan(sorted[j])
	})

	return &Result{
		ScreeningID:  NewScreeningID(),
		Input:        input,
		IndexVersion: indexVersion,
		IsHit:        len(sorted) > 0,
		HitCount:     len(sorted),
		Matches:      sorted,
		CreatedAt:    now,
	}
}

// NewErrorResult builds the error-marked result that replaces a failed
// record in a batch. It counts toward total_processed but never toward
// hits.
func NewErrorResult(input Input, err error, now time.Time) *Result {
	return &Result{
		ScreeningID: NewScreeningID(),
		Input:       input,
		IsHit:       false,
		HitCount:    0,
		Matches:     []MatchCandidate{},
		Error: &RecordError{
			Code:    errors.GetCode(err),
			Message: err.Error(),
		},
		CreatedAt: now,
	}
}

// Errored reports whether this result marks a failed record
func (r *Result) Errored() bool {
	return r.Error != nil
}

// Recommendation reduces the whole result to one action: the most severe
// recommendation among its candidates, APPROVE when there are none. With
// matches sorted, this is always Matches[0].Recommendation. A failed record
// was never actually screened, so it answers MANUAL_REVIEW rather than a
// clean APPROVE.
func (r *Result) Recommendation() values.Recommendation {
	if r.Errored() {
		return values.RecommendationManualReview
	}
	if len(r.Matches) == 0 {
		return values.RecommendationApprove
	}
	most := r.Matches[0].Recommendation
	for _, m := range r.Matches[1:] {
		if m.Recommendation.MoreSevereThan(most) {
			most = m.Recommendation
		}
	}
	return most
}

// TopConfidence is the confidence of the strongest match, zero without
// matches.
func (r *Result) TopConfidence() values.Confidence {
	if len(r.Matches) == 0 {
		return values.Confidence{}
	}
	return r.Matches[0].Confidence
}
