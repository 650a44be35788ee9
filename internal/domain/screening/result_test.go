package screening

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
)

func testCandidate(t *testing.T, id string, confidence float64, rec values.Recommendation) MatchCandidate {
	t.Helper()
	entity, err := sanction.NewEntity(id, "Entity "+id, values.IndividualEntityType(), values.OFACListSource())
	require.NoError(t, err)
	return MatchCandidate{
		Entity:         entity,
		MatchedName:    entity.Name,
		Confidence:     values.MustNewConfidence(confidence),
		Recommendation: rec,
	}
}

func TestInput_Validate(t *testing.T) {
	assert.NoError(t, Input{FullName: "Carlos Hernández"}.Validate())

	err := Input{FullName: "   "}.Validate()
	require.Error(t, err)
	assert.Equal(t, "EMPTY_NAME", errors.GetCode(err))
}

func TestNewScreeningID(t *testing.T) {
	a := NewScreeningID()
	b := NewScreeningID()

	assert.True(t, strings.HasPrefix(a, "scr_"))
	assert.NotEqual(t, a, b)
}

func TestNewResult_HitInvariant(t *testing.T) {
	now := time.Now().UTC()

	empty := NewResult(Input{FullName: "Carlos Hernández"}, "v1", nil, now)
	assert.False(t, empty.IsHit)
	assert.Equal(t, 0, empty.HitCount)
	assert.Empty(t, empty.Matches)
	assert.Equal(t, values.RecommendationApprove, empty.Recommendation())

	withMatches := NewResult(Input{FullName: "Vladimir Putin"}, "v1", []MatchCandidate{
		testCandidate(t, "OFAC-1", 95, values.RecommendationReject),
	}, now)
	assert.True(t, withMatches.IsHit)
	assert.Equal(t, 1, withMatches.HitCount)
	assert.Len(t, withMatches.Matches, 1)

	for _, r := range []*Result{empty, withMatches} {
		assert.Equal(t, r.IsHit, r.HitCount > 0)
		assert.Equal(t, r.IsHit, len(r.Matches) > 0)
	}
}

func TestNewResult_MatchOrdering(t *testing.T) {
	now := time.Now().UTC()

	result := NewResult(Input{FullName: "x"}, "v1", []MatchCandidate{
		testCandidate(t, "OFAC-3", 70, values.RecommendationManualReview),
		testCandidate(t, "OFAC-2", 95, values.RecommendationReject),
		// equal confidence: severity breaks the tie
		testCandidate(t, "OFAC-4", 95, values.RecommendationAutoEscalate),
		// equal confidence and severity: entity ID breaks the tie
		testCandidate(t, "OFAC-1", 70, values.RecommendationManualReview),
	}, now)

	ids := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		ids = append(ids, m.Entity.ID)
	}
	assert.Equal(t, []string{"OFAC-4", "OFAC-2", "OFAC-1", "OFAC-3"}, ids)

	assert.Equal(t, values.RecommendationAutoEscalate, result.Recommendation())
	assert.Equal(t, 95.0, result.TopConfidence().Value())
}

func TestNewErrorResult(t *testing.T) {
	now := time.Now().UTC()

	r := NewErrorResult(Input{}, errors.ErrEmptyName, now)

	assert.True(t, r.Errored())
	assert.False(t, r.IsHit)
	assert.Equal(t, 0, r.HitCount)
	assert.Empty(t, r.Matches)
	require.NotNil(t, r.Error)
	assert.Equal(t, "EMPTY_NAME", r.Error.Code)
	assert.NotEmpty(t, r.Error.Message)
	// an unscreened record is never a clean APPROVE
	assert.Equal(t, values.RecommendationManualReview, r.Recommendation())
}
