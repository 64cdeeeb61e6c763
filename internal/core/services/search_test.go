package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFixture struct {
	service  *searchService
	plans    *mocks.MockPlanCache
	store    *mocks.MockProducerStore
	provider *mocks.MockGeocodingProvider
}

func newSearchFixture(t *testing.T, places ...string) *searchFixture {
	t.Helper()
	plans := mocks.NewMockPlanCache()
	store := mocks.NewMockProducerStore()
	provider := mocks.NewMockGeocodingProvider()
	geocoder := NewGeocodeService(mocks.NewMockGeocodeCache(), mocks.NewMockRateLimiter(), provider, nil)
	svc := NewSearchService(plans, store, testNormalizer(places...), geocoder, nil)
	return &searchFixture{
		service:  svc.(*searchService),
		plans:    plans,
		store:    store,
		provider: provider,
	}
}

func producerRows(n int) []domain.SearchResultRow {
	rows := make([]domain.SearchResultRow, n)
	for i := range rows {
		rows[i] = domain.SearchResultRow{ID: fmt.Sprintf("p%03d", i), Name: fmt.Sprintf("Producer %d", i)}
	}
	return rows
}

func TestSearch_GeoWithFilters(t *testing.T) {
	f := newSearchFixture(t, "eugene", "oregon")
	f.provider.Results["eugene, oregon"] = eugeneResult()
	f.store.Rows = producerRows(3)

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "organic farm eugene oregon"})
	require.NoError(t, err)

	assert.Equal(t, domain.StrategyGeo, page.Strategy)
	assert.Equal(t, 3, page.Count)
	assert.False(t, page.HasMore)

	sq := f.store.LastQuery()
	require.NotNil(t, sq)
	assert.Equal(t, "farm", sq.Filters.Category)
	assert.True(t, sq.Filters.OrganicOnly)
	assert.Empty(t, sq.Keywords, "geo-only strategy carries no keywords")
	require.NotNil(t, sq.Center)
	assert.Equal(t, 44.05, sq.Center.Lat)
	require.NotNil(t, sq.Box, "geocoded box must prefilter the scan")
	assert.Equal(t, defaultLimit+1, sq.Limit)
}

func TestSearch_LocalIntentUsesDeviceLocation(t *testing.T) {
	f := newSearchFixture(t)
	f.store.Rows = producerRows(1)
	loc := &domain.GeoPoint{Lat: 45.52, Lon: -122.68}

	page, err := f.service.Search(context.Background(), domain.SearchQuery{
		RawText:      "blueberries near me",
		UserLocation: loc,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyGeoText, page.Strategy)

	sq := f.store.LastQuery()
	require.NotNil(t, sq.Center)
	assert.Equal(t, loc.Lat, sq.Center.Lat)
	require.NotNil(t, sq.RadiusKm)
	assert.Equal(t, defaultRadiusKm, *sq.RadiusKm)
	assert.Equal(t, []string{"blueberries"}, sq.Keywords)
	assert.Equal(t, []string{"blueberries"}, sq.Filters.Commodities)
	assert.Equal(t, 0, f.provider.Calls, "local intent never geocodes")
}

func TestSearch_LocalIntentWithoutLocationFallsBack(t *testing.T) {
	f := newSearchFixture(t)

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "blueberries near me"})
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyText, page.Strategy)

	sq := f.store.LastQuery()
	assert.Nil(t, sq.Center)
	assert.Nil(t, sq.Box)
}

func TestSearch_RepeatQueryHitsPlanCache(t *testing.T) {
	f := newSearchFixture(t, "eugene")
	f.provider.Results["eugene"] = eugeneResult()

	first, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "honey near eugene"})
	require.NoError(t, err)
	second, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "honey near eugene"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.Calls, "repeat query must not re-derive the plan")
	assert.Equal(t, 1, f.plans.SetCalls)
	assert.Equal(t, first.Strategy, second.Strategy)
	require.Len(t, f.store.Queries, 2)
	assert.Equal(t, f.store.Queries[0].Keywords, f.store.Queries[1].Keywords)
}

func TestSearch_Pagination(t *testing.T) {
	f := newSearchFixture(t)
	f.store.Rows = producerRows(25)

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "pickles"})
	require.NoError(t, err)
	assert.Equal(t, 20, page.Count)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextOffset)
	assert.Equal(t, 20, *page.NextOffset)
	assert.Equal(t, 21, f.store.LastQuery().Limit, "store is over-fetched by one")

	page, err = f.service.Search(context.Background(), domain.SearchQuery{RawText: "pickles", Offset: *page.NextOffset})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Count)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextOffset)
	assert.Equal(t, 2, page.Page)
}

func TestSearch_PageNumberToOffset(t *testing.T) {
	f := newSearchFixture(t)
	f.store.Rows = producerRows(30)

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "pickles", Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, f.store.LastQuery().Offset)
	assert.Equal(t, 2, page.Page)
	assert.True(t, page.HasMore)
}

func TestSearch_NegativeOffsetClamped(t *testing.T) {
	f := newSearchFixture(t)
	f.store.Rows = producerRows(5)

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "pickles", Offset: -40})
	require.NoError(t, err)
	assert.Equal(t, 0, f.store.LastQuery().Offset, "negative offset must never reach the store")
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Count)
}

func TestSearch_LimitClamped(t *testing.T) {
	f := newSearchFixture(t)

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "pickles", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, maxLimit, page.Limit)
	assert.Equal(t, maxLimit+1, f.store.LastQuery().Limit)
}

func TestSearch_OverridesWinOverCachedPlan(t *testing.T) {
	f := newSearchFixture(t)
	f.plans.Set(context.Background(), "cheese", &domain.CachedQueryPlan{
		Keywords: []string{"cheese"},
		Filters:  &domain.QueryFilters{Category: "farm"},
	})

	_, err := f.service.Search(context.Background(), domain.SearchQuery{
		RawText: "cheese",
		Overrides: domain.Overrides{
			Category:       "dairy",
			Certifications: []string{"usda organic"},
			Country:        "France",
		},
	})
	require.NoError(t, err)

	sq := f.store.LastQuery()
	assert.Equal(t, "dairy", sq.Filters.Category)
	assert.Equal(t, []string{"usda organic"}, sq.Filters.Certifications)
	assert.Equal(t, "FR", sq.Filters.CountryCode)

	// The cached plan itself is untouched.
	cached, err := f.plans.Get(context.Background(), "cheese")
	require.NoError(t, err)
	assert.Equal(t, "farm", cached.Filters.Category)
	assert.Empty(t, cached.CountryHint)
}

func TestSearch_CountryHintResolution(t *testing.T) {
	f := newSearchFixture(t)

	for _, tc := range []struct {
		hint, want string
	}{
		{"Canada", "CA"},
		{"can", "CA"},
		{"ca", "CA"},
		{"atlantis", ""},
	} {
		f.plans.Set(context.Background(), "honey", &domain.CachedQueryPlan{CountryHint: tc.hint})
		_, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "honey"})
		require.NoError(t, err)
		assert.Equal(t, tc.want, f.store.LastQuery().Filters.CountryCode, "hint %q", tc.hint)
	}
}

func TestSearch_StrategySelection(t *testing.T) {
	radius := 10.0
	geo := &domain.GeoSpec{Center: &domain.GeoPoint{Lat: 1, Lon: 2}, RadiusKm: &radius}

	for _, tc := range []struct {
		name     string
		geo      *domain.GeoSpec
		keywords []string
		want     domain.SearchStrategy
	}{
		{"geo and text", geo, []string{"honey"}, domain.StrategyGeoText},
		{"text only", nil, []string{"honey"}, domain.StrategyText},
		{"geo only", geo, nil, domain.StrategyGeo},
		{"neither", nil, nil, domain.StrategyBrowse},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, selectStrategy(tc.geo, tc.keywords))
		})
	}
}

func TestSearch_EmptyQueryBrowses(t *testing.T) {
	f := newSearchFixture(t)
	f.store.Rows = producerRows(2)

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "   "})
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyBrowse, page.Strategy)
	assert.Equal(t, 0, f.plans.SetCalls, "empty queries are never cached")
	assert.Nil(t, page.MaxDistance.Km)
	assert.Equal(t, "none", page.MaxDistance.Source)
}

func TestSearch_GeocodeFailureIsHard(t *testing.T) {
	f := newSearchFixture(t, "xanadu")

	_, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "honey near xanadu"})
	require.ErrorIs(t, err, domain.ErrGeocodeFailed)
	assert.Empty(t, f.store.Queries, "failed plans must not reach the store")
	assert.Equal(t, 0, f.plans.SetCalls, "failed plans must not be cached")
}

func TestSearch_StoreErrorPropagates(t *testing.T) {
	f := newSearchFixture(t)
	f.store.Err = errors.New("connection reset")

	_, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "honey"})
	require.Error(t, err)
	assert.Equal(t, "connection reset", err.Error())
}

func TestSearch_MaxDistanceFromRadius(t *testing.T) {
	f := newSearchFixture(t)
	radius := 25.0
	f.plans.Set(context.Background(), "honey", &domain.CachedQueryPlan{
		Geo: &domain.GeoSpec{Center: &domain.GeoPoint{Lat: 44, Lon: -123}, RadiusKm: &radius},
	})

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "honey"})
	require.NoError(t, err)
	require.NotNil(t, page.MaxDistance.Km)
	assert.Equal(t, 25.0, *page.MaxDistance.Km)
	assert.Equal(t, "radius", page.MaxDistance.Source)
}

func TestSearch_PlanCacheWriteFailureNotFatal(t *testing.T) {
	f := newSearchFixture(t)
	f.plans.SetErr = errors.New("redis down")
	f.store.Rows = producerRows(1)

	page, err := f.service.Search(context.Background(), domain.SearchQuery{RawText: "honey"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
}
