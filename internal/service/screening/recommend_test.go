package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
)

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name       string
		thresholds Thresholds
		wantErr    bool
	}{
		{"defaults", DefaultThresholds(), false},
		{"tight bands", Thresholds{ReviewFloor: 1, Low: 2, High: 3}, false},
		{"high at ceiling", Thresholds{ReviewFloor: 40, Low: 70, High: 100}, false},
		{"zero review floor", Thresholds{ReviewFloor: 0, Low: 70, High: 90}, true},
		{"floor above low", Thresholds{ReviewFloor: 80, Low: 70, High: 90}, true},
		{"low equals high", Thresholds{ReviewFloor: 40, Low: 90, High: 90}, true},
		{"high above ceiling", Thresholds{ReviewFloor: 40, Low: 70, High: 101}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.thresholds.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "INVALID_THRESHOLDS", errCode(t, err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func testEntity(t *testing.T, programs ...string) *sanction.Entity {
	t.Helper()
	entity, err := sanction.NewEntity("OFAC-1", "Test Subject",
		values.IndividualEntityType(), values.OFACListSource())
	require.NoError(t, err)
	return entity.WithPrograms(programs...)
}

func TestRecommender_Recommend(t *testing.T) {
	rec, err := NewRecommender(DefaultThresholds(), DefaultHighSeverityPrograms())
	require.NoError(t, err)

	ordinary := testEntity(t, "UKRAINE-EO13662")
	terror := testEntity(t, "SDGT")

	tests := []struct {
		name       string
		confidence float64
		entity     *sanction.Entity
		want       values.Recommendation
	}{
		{"zero approves", 0.0, ordinary, values.RecommendationApprove},
		{"just under review floor approves", 39.99, ordinary, values.RecommendationApprove},
		{"review floor starts low confidence band", 40.0, ordinary, values.RecommendationLowConfidenceReview},
		{"mid band low confidence", 55.0, ordinary, values.RecommendationLowConfidenceReview},
		{"low threshold starts manual review", 70.0, ordinary, values.RecommendationManualReview},
		{"just under high stays manual", 89.99, ordinary, values.RecommendationManualReview},
		{"high threshold rejects", 90.0, ordinary, values.RecommendationReject},
		{"ceiling rejects", 100.0, ordinary, values.RecommendationReject},
		{"high severity escalates instead of rejecting", 95.0, terror, values.RecommendationAutoEscalate},
		{"high severity below high band gets manual review", 85.0, terror, values.RecommendationManualReview},
		{"nil entity in reject band rejects", 95.0, nil, values.RecommendationReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rec.Recommend(values.MustNewConfidence(tt.confidence), tt.entity)
			assert.Equal(t, tt.want, got)
		})
	}
}

// For a fixed entity, raising confidence must never lower severity.
func TestRecommender_RecommendIsMonotone(t *testing.T) {
	rec, err := NewRecommender(DefaultThresholds(), DefaultHighSeverityPrograms())
	require.NoError(t, err)

	for _, entity := range []*sanction.Entity{
		testEntity(t, "CUBA"),
		testEntity(t, "NPWMD"),
	} {
		prev := values.RecommendationApprove
		for c := 0.0; c <= 100.0; c += 0.25 {
			got := rec.Recommend(values.MustNewConfidence(c), entity)
			assert.False(t, prev.MoreSevereThan(got),
				"severity dropped from %s to %s at confidence %.2f", prev, got, c)
			prev = got
		}
	}
}

func TestRecommender_ProgramMatchingIsCaseInsensitive(t *testing.T) {
	rec, err := NewRecommender(DefaultThresholds(), []string{" sdgt ", "fto"})
	require.NoError(t, err)

	assert.True(t, rec.IsHighSeverity(testEntity(t, "SDGT")))
	assert.True(t, rec.IsHighSeverity(testEntity(t, "FTO")))
	assert.False(t, rec.IsHighSeverity(testEntity(t, "CUBA")))
	assert.False(t, rec.IsHighSeverity(nil))
}

func TestNewRecommender_RejectsBadThresholds(t *testing.T) {
	_, err := NewRecommender(Thresholds{ReviewFloor: 90, Low: 70, High: 40}, nil)
	require.Error(t, err)
	assert.Equal(t, "INVALID_THRESHOLDS", errCode(t, err))
}
