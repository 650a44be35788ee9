package screening

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	domain "github.com/complianceworks/sanctions-screening-backend/internal/domain/screening"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
	"github.com/complianceworks/sanctions-screening-backend/internal/index"
)

func mustEntity(t *testing.T, id, name string, source values.ListSource) *sanction.Entity {
	t.Helper()
	entity, err := sanction.NewEntity(id, name, values.IndividualEntityType(), source)
	require.NoError(t, err)
	return entity
}

func testList(t *testing.T) []*sanction.Entity {
	t.Helper()
	return []*sanction.Entity{
		mustEntity(t, "OFAC-26094", "Vladimir PUTIN", values.OFACListSource()).
			WithAliases("PUTIN, Vladimir Vladimirovich", "Vladimir Vladimirovich PUTIN").
			WithPrograms("UKRAINE-EO13661").
			WithCountries("RU"),
		mustEntity(t, "OFAC-30001", "Abu Bakr al-BAGHDADI", values.OFACListSource()).
			WithAliases("AL-BAGHDADI, Abu Bakr").
			WithPrograms("SDGT"),
		mustEntity(t, "UN-QDi-361", "Osama BIN LADEN", values.UNListSource()).
			WithAliases("Usama bin Muhammad bin Awad BIN LADIN").
			WithPrograms("SDGT"),
	}
}

func newTestService(t *testing.T, entities []*sanction.Entity) *Service {
	t.Helper()
	store := index.NewStore()
	if entities != nil {
		store.Swap(index.Build(entities))
	}
	svc, err := NewService(zap.NewNop(), DefaultConfig(), store)
	require.NoError(t, err)
	return svc
}

func TestNewService_ValidatesConfiguration(t *testing.T) {
	store := index.NewStore()

	_, err := NewService(nil, DefaultConfig(), store)
	require.Error(t, err)

	_, err = NewService(zap.NewNop(), DefaultConfig(), nil)
	require.Error(t, err)

	bad := DefaultConfig()
	bad.Thresholds.High = 0
	_, err = NewService(zap.NewNop(), bad, store)
	require.Error(t, err)
	assert.Equal(t, "INVALID_THRESHOLDS", errCode(t, err))
}

func TestService_ScreenExactHit(t *testing.T) {
	svc := newTestService(t, testList(t))

	result, err := svc.Screen(context.Background(), domain.Input{FullName: "Vladimir Putin"})
	require.NoError(t, err)

	assert.True(t, result.IsHit)
	require.Equal(t, 1, result.HitCount)
	require.Len(t, result.Matches, 1)
	assert.True(t, strings.HasPrefix(result.ScreeningID, "scr_"))
	assert.NotEmpty(t, result.IndexVersion)

	match := result.Matches[0]
	assert.Equal(t, "OFAC-26094", match.Entity.ID)
	assert.Equal(t, "Vladimir PUTIN", match.MatchedName)
	assert.False(t, match.MatchedOnAlias)
	assert.Equal(t, 100.0, match.Confidence.Value())
	assert.Equal(t, values.RecommendationReject, match.Recommendation)
	assert.Contains(t, match.Flags, domain.FlagExactNameMatch)
	assert.NotContains(t, match.Flags, domain.FlagHighSeverityProgram)
	assert.Equal(t, values.RecommendationReject, result.Recommendation())
}

func TestService_ScreenCleanSubject(t *testing.T) {
	svc := newTestService(t, testList(t))

	result, err := svc.Screen(context.Background(), domain.Input{FullName: "Carlos Hernández"})
	require.NoError(t, err)

	assert.False(t, result.IsHit)
	assert.Equal(t, 0, result.HitCount)
	assert.Empty(t, result.Matches)
	assert.Equal(t, values.RecommendationApprove, result.Recommendation())
}

func TestService_ScreenDedupesAliasVariants(t *testing.T) {
	svc := newTestService(t, testList(t))

	// The subject resembles canonical name and both aliases; the entity must
	// still surface exactly once, on its best variant.
	result, err := svc.Screen(context.Background(),
		domain.Input{FullName: "Vladimir Vladimirovich Putin"})
	require.NoError(t, err)

	require.True(t, result.IsHit)
	ids := make(map[string]int)
	for _, m := range result.Matches {
		ids[m.Entity.ID]++
	}
	assert.Equal(t, 1, ids["OFAC-26094"])
}

func TestService_ScreenFlagsHighSeverityAndCountry(t *testing.T) {
	svc := newTestService(t, testList(t))

	result, err := svc.Screen(context.Background(),
		domain.Input{FullName: "Abu Bakr al-Baghdadi"})
	require.NoError(t, err)

	require.True(t, result.IsHit)
	match := result.Matches[0]
	assert.Equal(t, "OFAC-30001", match.Entity.ID)
	assert.Contains(t, match.Flags, domain.FlagHighSeverityProgram)
	assert.Equal(t, values.RecommendationAutoEscalate, match.Recommendation)

	withCountry, err := svc.Screen(context.Background(),
		domain.Input{FullName: "Vladimir Putin", Country: "RU"})
	require.NoError(t, err)
	require.True(t, withCountry.IsHit)
	assert.Contains(t, withCountry.Matches[0].Flags, domain.FlagCountryMatch)
}

func TestService_ScreenRejectsEmptyName(t *testing.T) {
	svc := newTestService(t, testList(t))

	_, err := svc.Screen(context.Background(), domain.Input{FullName: "   "})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestService_ScreenFailsClosedWithoutIndex(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Screen(context.Background(), domain.Input{FullName: "Vladimir Putin"})
	require.Error(t, err)
	assert.Equal(t, "INDEX_UNAVAILABLE", errCode(t, err))
}

func TestService_ScreenIsIdempotent(t *testing.T) {
	svc := newTestService(t, testList(t))
	input := domain.Input{FullName: "Usama bin Ladin"}

	first, err := svc.Screen(context.Background(), input)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := svc.Screen(context.Background(), input)
		require.NoError(t, err)

		assert.Equal(t, first.IsHit, again.IsHit)
		assert.Equal(t, first.IndexVersion, again.IndexVersion)
		require.Len(t, again.Matches, len(first.Matches))
		for j := range first.Matches {
			assert.Equal(t, first.Matches[j].Entity.ID, again.Matches[j].Entity.ID)
			assert.Equal(t, first.Matches[j].MatchedName, again.Matches[j].MatchedName)
			assert.Equal(t, first.Matches[j].Scores, again.Matches[j].Scores)
			assert.True(t, first.Matches[j].Confidence.Equal(again.Matches[j].Confidence))
			assert.Equal(t, first.Matches[j].Recommendation, again.Matches[j].Recommendation)
		}
	}
}

func TestService_ScreenReportsAliasMatch(t *testing.T) {
	svc := newTestService(t, testList(t))

	result, err := svc.Screen(context.Background(),
		domain.Input{FullName: "Usama bin Muhammad bin Awad bin Ladin"})
	require.NoError(t, err)

	require.True(t, result.IsHit)
	match := result.Matches[0]
	assert.Equal(t, "UN-QDi-361", match.Entity.ID)
	assert.True(t, match.MatchedOnAlias)
	assert.Contains(t, match.Flags, domain.FlagMatchedOnAlias)
}

// A surname-first alias is the same name as the given-first subject; the
// hit must clear the auto-reject threshold, not land in review.
func TestService_ScreenSurnameFirstAliasRejects(t *testing.T) {
	entity := mustEntity(t, "OFAC-26094", "PUTIN, Vladimir Vladimirovich",
		values.OFACListSource()).
		WithAliases("Putin, Vladimir").
		WithPrograms("UKRAINE-EO13661").
		WithCountries("RU")
	svc := newTestService(t, []*sanction.Entity{entity})

	result, err := svc.Screen(context.Background(), domain.Input{FullName: "Vladimir Putin"})
	require.NoError(t, err)

	require.True(t, result.IsHit)
	match := result.Matches[0]
	assert.Equal(t, "Putin, Vladimir", match.MatchedName)
	assert.True(t, match.Confidence.AtLeast(90))
	assert.Equal(t, values.RecommendationReject, match.Recommendation)
	assert.Contains(t, match.Flags, domain.FlagExactNameMatch)
}
