package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
	"github.com/complianceworks/sanctions-screening-backend/internal/matching"
)

func entity(t *testing.T, id, name, source string, aliases ...string) *sanction.Entity {
	t.Helper()
	e, err := sanction.NewEntity(id, name, values.IndividualEntityType(), values.MustNewListSource(source))
	require.NoError(t, err)
	e.WithAliases(aliases...)
	return e
}

func TestBuild_Empty(t *testing.T) {
	ix := Build(nil)

	assert.Equal(t, 0, ix.Size())
	assert.NotEmpty(t, ix.Version())
	assert.Empty(t, ix.Candidates(matching.Normalize("anyone"), 10))
}

func TestBuild_CountsAndVariants(t *testing.T) {
	ix := Build([]*sanction.Entity{
		entity(t, "OFAC-1", "PUTIN, Vladimir Vladimirovich", "ofac", "Putin, Vladimir"),
		entity(t, "UN-1", "Al-Qaida", "un"),
		nil, // skipped
	})

	assert.Equal(t, 2, ix.Size())
	assert.Equal(t, map[string]int{"ofac": 1, "un": 1}, ix.CountBySource())
}

func TestIndex_CandidatesByTokenKey(t *testing.T) {
	ix := Build([]*sanction.Entity{
		entity(t, "OFAC-1", "PUTIN, Vladimir Vladimirovich", "ofac"),
		entity(t, "OFAC-2", "Juan García", "ofac"),
	})

	got := ix.Candidates(matching.Normalize("Vladimir Putin"), 10)

	require.Len(t, got, 1)
	assert.Equal(t, "OFAC-1", got[0].Entity.ID)
}

func TestIndex_CandidatesByAliasToken(t *testing.T) {
	ix := Build([]*sanction.Entity{
		entity(t, "UN-7", "Usama bin Muhammad bin Awad bin Ladin", "un", "Osama bin Laden"),
	})

	got := ix.Candidates(matching.Normalize("osama laden"), 10)

	require.Len(t, got, 1)
	assert.Equal(t, "UN-7", got[0].Entity.ID)
}

func TestIndex_CandidatesByPhoneticKey(t *testing.T) {
	ix := Build([]*sanction.Entity{
		entity(t, "OFAC-3", "Mohammed Hussein", "ofac"),
	})

	// Different spelling, same phonetic blocking key
	got := ix.Candidates(matching.Normalize("Muhammad Hussain"), 10)

	require.Len(t, got, 1)
	assert.Equal(t, "OFAC-3", got[0].Entity.ID)
}

func TestIndex_CandidatesFallbackScanIsCapped(t *testing.T) {
	entities := []*sanction.Entity{
		entity(t, "OFAC-1", "Alpha One", "ofac"),
		entity(t, "OFAC-2", "Beta Two", "ofac"),
		entity(t, "OFAC-3", "Gamma Three", "ofac"),
	}
	ix := Build(entities)

	// No blocking bucket matches; fallback scans in build order, capped
	got := ix.Candidates(matching.Normalize("Zzyzx Qwfp"), 2)

	require.Len(t, got, 2)
	assert.Equal(t, "OFAC-1", got[0].Entity.ID)
	assert.Equal(t, "OFAC-2", got[1].Entity.ID)
}

func TestIndex_CandidateCap(t *testing.T) {
	var entities []*sanction.Entity
	for i := 0; i < 50; i++ {
		entities = append(entities, entity(t, ulidLike(i), "Ivan Petrov", "ofac"))
	}
	ix := Build(entities)

	got := ix.Candidates(matching.Normalize("Ivan Petrov"), 10)
	assert.Len(t, got, 10)
}

func ulidLike(i int) string {
	return string(rune('A'+i/26)) + string(rune('A'+i%26))
}

func TestIndex_CandidatesDeterministic(t *testing.T) {
	ix := Build([]*sanction.Entity{
		entity(t, "OFAC-9", "Vladimir Sorokin", "ofac"),
		entity(t, "OFAC-2", "Vladimir Putin", "ofac"),
		entity(t, "UN-5", "Vladimir Orlov", "un"),
	})

	subject := matching.Normalize("Vladimir")
	first := ix.Candidates(subject, 10)
	require.Len(t, first, 3)

	for i := 0; i < 10; i++ {
		again := ix.Candidates(subject, 10)
		require.Len(t, again, 3)
		for j := range first {
			assert.Equal(t, first[j].Entity.ID, again[j].Entity.ID)
		}
	}
}

func TestStore_FailsClosedWhenEmpty(t *testing.T) {
	store := NewStore()

	assert.False(t, store.Loaded())
	_, err := store.Active()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnavailable))
	assert.Equal(t, "INDEX_UNAVAILABLE", errors.GetCode(err))
}

func TestStore_SwapPublishesAtomically(t *testing.T) {
	store := NewStore()
	first := Build([]*sanction.Entity{entity(t, "OFAC-1", "Someone", "ofac")})

	old := store.Swap(first)
	assert.Nil(t, old)

	active, err := store.Active()
	require.NoError(t, err)
	assert.Equal(t, first.Version(), active.Version())

	second := Build(nil)
	replaced := store.Swap(second)
	assert.Equal(t, first.Version(), replaced.Version())

	active, err = store.Active()
	require.NoError(t, err)
	assert.Equal(t, second.Version(), active.Version())
}

func TestStore_ConcurrentReadersDuringSwap(t *testing.T) {
	store := NewStore()
	store.Swap(Build([]*sanction.Entity{entity(t, "OFAC-1", "Vladimir Putin", "ofac")}))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				ix, err := store.Active()
				if !assert.NoError(t, err) {
					return
				}
				// A reader always sees a complete snapshot
				assert.NotEmpty(t, ix.Version())
				ix.Candidates(matching.Normalize("Vladimir Putin"), 5)
			}
		}()
	}

	for i := 0; i < 50; i++ {
		store.Swap(Build([]*sanction.Entity{entity(t, "OFAC-1", "Vladimir Putin", "ofac")}))
	}
	close(stop)
	wg.Wait()
}
