package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
)

// geocodeLimitKey is the single provider-wide limiter key. Every
// caller draws from the same counter regardless of identity.
const geocodeLimitKey = "geocode:provider"

// GeocodeService resolves place phrases cache-first, falling back to
// the rate-limited network provider on a miss.
type GeocodeService struct {
	cache    driven.GeocodeCache
	limiter  driven.RateLimiter
	provider driven.GeocodingProvider
	logger   *slog.Logger
}

// NewGeocodeService creates a GeocodeService.
func NewGeocodeService(cache driven.GeocodeCache, limiter driven.RateLimiter, provider driven.GeocodingProvider, logger *slog.Logger) *GeocodeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeocodeService{cache: cache, limiter: limiter, provider: provider, logger: logger}
}

// Resolve returns the point and bounding box for a place phrase.
// A cache hit skips the limiter entirely. A limiter denial returns
// domain.ErrRateLimited; the call is never retried internally.
// Provider failures come back as *domain.GeocodeError.
func (s *GeocodeService) Resolve(ctx context.Context, phrase string) (*domain.GeocodeResult, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, domain.ErrInvalidInput
	}

	cached, err := s.cache.Get(ctx, phrase)
	if err == nil {
		return cached, nil
	}
	if err != domain.ErrNotFound {
		// A broken cache should not take geocoding down with it.
		s.logger.Warn("geocode cache read failed", "phrase", phrase, "error", err)
	}

	ok, err := s.limiter.Allow(ctx, geocodeLimitKey)
	if err != nil {
		return nil, &domain.GeocodeError{Phrase: phrase, Err: err}
	}
	if !ok {
		return nil, domain.ErrRateLimited
	}

	result, err := s.provider.Geocode(ctx, phrase)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, phrase, result); err != nil {
		s.logger.Warn("geocode cache write failed", "phrase", phrase, "error", err)
	}
	return result, nil
}
