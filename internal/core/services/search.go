package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

const (
	defaultLimit = 20
	maxLimit     = 100

	// defaultRadiusKm bounds a "near me" search around the device
	// location when the query names no radius of its own.
	defaultRadiusKm = 100.0
)

// searchService is the hybrid retrieval planner. It decomposes raw
// query text into a plan (served from the plan cache when possible),
// picks exactly one of four retrieval strategies and executes it with
// over-fetch-by-one pagination.
type searchService struct {
	plans      driven.PlanCache
	store      driven.ProducerStore
	normalizer *Normalizer
	geocoder   *GeocodeService
	logger     *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(
	plans driven.PlanCache,
	store driven.ProducerStore,
	normalizer *Normalizer,
	geocoder *GeocodeService,
	logger *slog.Logger,
) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		plans:      plans,
		store:      store,
		normalizer: normalizer,
		geocoder:   geocoder,
		logger:     logger,
	}
}

// Search plans and executes one search request.
func (s *searchService) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResultPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset == 0 && q.Page > 1 {
		offset = (q.Page - 1) * limit
	}

	plan, err := s.Plan(ctx, q.RawText)
	if err != nil {
		return nil, err
	}
	plan = applyOverrides(plan, q.Overrides)

	geo := plan.Geo
	if plan.UseDeviceLocation && q.UserLocation != nil {
		radius := defaultRadiusKm
		geo = &domain.GeoSpec{Center: q.UserLocation, RadiusKm: &radius}
	}
	if geo != nil && geo.Center == nil && geo.Box == nil {
		geo = nil
	}

	filters := domain.QueryFilters{}
	if plan.Filters != nil {
		filters = *plan.Filters
	}
	if plan.CountryHint != "" {
		// No match drops the hint silently; an unresolvable hint is
		// not an error.
		if c, ok := domain.ResolveCountry(plan.CountryHint); ok {
			filters.CountryCode = c.Alpha2
		}
	}

	strategy := selectStrategy(geo, plan.Keywords)

	sq := &domain.StoreQuery{
		Strategy: strategy,
		Filters:  filters,
		Limit:    limit + 1, // over-fetch by one to detect more pages
		Offset:   offset,
	}
	if strategy == domain.StrategyGeoText || strategy == domain.StrategyText {
		sq.Keywords = plan.Keywords
	}
	if strategy == domain.StrategyGeoText || strategy == domain.StrategyGeo {
		sq.Center = geo.Center
		sq.RadiusKm = geo.RadiusKm
		sq.Box = geo.PrefilterBox()
	}

	rows, err := s.store.Search(ctx, sq)
	if err != nil {
		return nil, err
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	var nextOffset *int
	if hasMore {
		n := offset + limit
		nextOffset = &n
	}

	page := q.Page
	if page <= 0 {
		page = offset/limit + 1
	}

	return &domain.SearchResultPage{
		Items:       rows,
		Count:       len(rows),
		Page:        page,
		Limit:       limit,
		Offset:      offset,
		HasMore:     hasMore,
		NextOffset:  nextOffset,
		MaxDistance: domain.EstimateMaxDistance(geo, q.DistanceMethod),
		Strategy:    strategy,
	}, nil
}

// Plan returns the derived plan for a raw query, deriving and caching
// it on a miss. Geocode failure for a detected place phrase is
// returned as the typed error rather than degraded to a non-geo
// strategy, so callers can distinguish it from zero results.
func (s *searchService) Plan(ctx context.Context, rawText string) (*domain.CachedQueryPlan, error) {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return &domain.CachedQueryPlan{}, nil
	}

	cached, err := s.plans.Get(ctx, rawText)
	if err == nil {
		return cached, nil
	}
	if err != domain.ErrNotFound {
		s.logger.Warn("plan cache read failed", "error", err)
	}

	signals, err := s.normalizer.Normalize(ctx, rawText)
	if err != nil {
		return nil, err
	}

	plan := &domain.CachedQueryPlan{
		Keywords:          signals.Keywords,
		UseDeviceLocation: signals.LocalIntent,
		CountryHint:       signals.CountryHint,
	}
	if f := filtersFromSignals(signals); f != nil {
		plan.Filters = f
	}
	if signals.PlacePhrase != "" {
		result, err := s.geocoder.Resolve(ctx, signals.PlacePhrase)
		if err != nil {
			return nil, err
		}
		plan.Geo = &domain.GeoSpec{Center: &result.Point, Box: &result.Box}
	}

	// Inline, last-writer-wins; a failed write never fails the search.
	if err := s.plans.Set(ctx, rawText, plan); err != nil {
		s.logger.Warn("plan cache write failed", "error", err)
	}
	return plan, nil
}

// filtersFromSignals converts extracted signals to the filter set, or
// nil when nothing constrains.
func filtersFromSignals(signals *domain.QuerySignals) *domain.QueryFilters {
	if signals.Category == "" && len(signals.Commodities) == 0 &&
		len(signals.Variants) == 0 && !signals.Organic {
		return nil
	}
	return &domain.QueryFilters{
		Category:    signals.Category,
		Commodities: signals.Commodities,
		Variants:    signals.Variants,
		OrganicOnly: signals.Organic,
	}
}

// applyOverrides lays caller-supplied filter values over a cached
// plan. The cache is a baseline, not a frozen query; overrides win on
// every hit. The input plan is never mutated.
func applyOverrides(plan *domain.CachedQueryPlan, o domain.Overrides) *domain.CachedQueryPlan {
	if o.Empty() {
		return plan
	}
	out := *plan
	if plan.Filters != nil {
		f := *plan.Filters
		out.Filters = &f
	} else {
		out.Filters = &domain.QueryFilters{}
	}
	if o.Category != "" {
		out.Filters.Category = o.Category
	}
	if len(o.Certifications) > 0 {
		out.Filters.Certifications = o.Certifications
	}
	if o.Country != "" {
		out.CountryHint = o.Country
	}
	return &out
}

// selectStrategy picks exactly one retrieval strategy. Geo+Text has
// the highest priority; filter/browse is the fallthrough.
func selectStrategy(geo *domain.GeoSpec, keywords []string) domain.SearchStrategy {
	hasGeo := geo != nil
	hasText := len(keywords) > 0
	switch {
	case hasGeo && hasText:
		return domain.StrategyGeoText
	case hasText:
		return domain.StrategyText
	case hasGeo:
		return domain.StrategyGeo
	default:
		return domain.StrategyBrowse
	}
}
