package driven

import (
	"context"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// GeocodingProvider resolves a place phrase over the network. The
// adapter parses the provider's string-encoded bounding-box bounds
// defensively; a malformed payload yields a *domain.GeocodeError,
// never a malformed point.
type GeocodingProvider interface {
	Geocode(ctx context.Context, phrase string) (*domain.GeocodeResult, error)
}

// GeocodeCache stores geocoding results keyed by exact place phrase
// (Redis). Geocodes are long-lived, so entries carry a long fixed TTL
// in a namespace separate from query plans.
type GeocodeCache interface {
	// Get returns the cached result for the phrase, or
	// domain.ErrNotFound on a miss.
	Get(ctx context.Context, phrase string) (*domain.GeocodeResult, error)

	// Set stores the result, replacing any previous value.
	Set(ctx context.Context, phrase string, result *domain.GeocodeResult) error
}
