package catalog

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

func newTestService(t *testing.T, opts ...ServiceOption) (Service, *MockFetcher) {
	t.Helper()
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything).Return(loadDataset(t), nil)
	return NewService(NewCache(fetcher), opts...), fetcher
}

func TestService_FilterBySchool(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	war, err := svc.Filter(ctx, FilterOptions{Type: "Unit", School: "War"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Harpy", "Knight"}, names(war))

	lower, err := svc.Filter(ctx, FilterOptions{Type: "unit", School: "war"})
	require.NoError(t, err)
	assert.Len(t, lower, 2, "type and school compare case-insensitively")
}

func TestService_FilterBySchoolAndRank(t *testing.T) {
	svc, _ := newTestService(t)

	results, err := svc.Filter(context.Background(), FilterOptions{Type: "Unit", School: "War", Rank: "II"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Harpy"}, names(results))

	results, err = svc.Filter(context.Background(), FilterOptions{Type: "Unit", Rank: "ii"})
	require.NoError(t, err)
	assert.Empty(t, results, "rank comparison is exact")
}

func TestService_FilterHeroUsesClass(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Frostmage carries class Astral and a stray magic_school of War
	astral, err := svc.Filter(ctx, FilterOptions{Type: "Hero", School: "Astral"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Frostmage"}, names(astral))

	war, err := svc.Filter(ctx, FilterOptions{Type: "Hero", School: "War"})
	require.NoError(t, err)
	assert.Empty(t, war)
}

func TestService_FilterRankExcludesUnranked(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, rank := range domain.Ranks {
		heroes, err := svc.Filter(ctx, FilterOptions{Type: "Hero", Rank: rank})
		require.NoError(t, err)
		assert.Empty(t, heroes, "hero matched rank %s", rank)

		consumables, err := svc.Filter(ctx, FilterOptions{Type: "Consumable", Rank: rank})
		require.NoError(t, err)
		assert.Empty(t, consumables)
	}
}

func TestService_FilterUnknownType(t *testing.T) {
	svc, _ := newTestService(t)

	results, err := svc.Filter(context.Background(), FilterOptions{Type: "Building"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestService_FilterNoRestriction(t *testing.T) {
	svc, _ := newTestService(t)

	results, err := svc.Filter(context.Background(), FilterOptions{Type: "Unit"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Harpy", "Knight", "Skeleton"}, names(results))
}

func TestService_Search(t *testing.T) {
	svc, fetcher := newTestService(t)
	ctx := context.Background()

	results, err := svc.Search(ctx, "hrapy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Harpy"}, names(results))

	empty, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestService_SearchEmptyDoesNotFetch(t *testing.T) {
	svc, fetcher := newTestService(t)

	results, err := svc.Search(context.Background(), " ")
	require.NoError(t, err)
	assert.Empty(t, results)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestService_FindByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e, ok, err := svc.FindByName(ctx, "fireball")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.EntitySpell, e.GetType())

	e, ok, err = svc.FindByName(ctx, "Fire")
	require.NoError(t, err)
	assert.False(t, ok, "exact lookup does not fuzzy match")
	assert.Nil(t, e)
}

func TestService_RandomSingleSpell(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 0; i < 20; i++ {
		e, ok, err := svc.Random(context.Background(), "Spell")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Fireball", e.GetName())
	}
}

func TestService_RandomUsesSource(t *testing.T) {
	svc, _ := newTestService(t, WithRandomSource(rand.New(rand.NewPCG(1, 2))))
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		e, ok, err := svc.Random(context.Background(), "")
		require.NoError(t, err)
		require.True(t, ok)
		seen[e.GetName()] = true
	}

	assert.Len(t, seen, 7, "every entity is reachable from the flattened pool")
}

func TestService_RandomUnknownOrEmpty(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything).Return(&domain.Dataset{
		Units: []*domain.Unit{{BaseEntity: domain.BaseEntity{Name: "Harpy"}}},
	}, nil)
	svc := NewService(NewCache(fetcher))

	e, ok, err := svc.Random(context.Background(), "Dragon")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, e)

	e, ok, err = svc.Random(context.Background(), "Titan")
	require.NoError(t, err)
	assert.False(t, ok, "empty pool yields none")
	assert.Nil(t, e)
}

func TestService_AllAndFetchData(t *testing.T) {
	svc, fetcher := newTestService(t)
	ctx := context.Background()

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	store, err := svc.FetchData(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 7, store.Len())
	fetcher.AssertNumberOfCalls(t, "Fetch", 2)
}

func TestService_PropagatesFetchError(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything).Return(nil, &domain.NetworkError{URL: "https://example.invalid", StatusCode: 503})
	svc := NewService(NewCache(fetcher))

	_, err := svc.Filter(context.Background(), FilterOptions{Type: "Unit"})
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)

	_, _, err = svc.Random(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}
