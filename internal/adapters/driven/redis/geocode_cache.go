package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.GeocodeCache = (*GeocodeCache)(nil)

const geocodePrefix = "geocode:place:"

// DefaultGeocodeTTL keeps resolved places for a month. Place geometry
// changes far slower than query plans, so the window is long and not
// sliding.
const DefaultGeocodeTTL = 30 * 24 * time.Hour

// GeocodeCache implements driven.GeocodeCache using Redis, keyed by
// exact place phrase in a namespace separate from query plans.
type GeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGeocodeCache creates a Redis-backed GeocodeCache. A non-positive
// ttl falls back to DefaultGeocodeTTL.
func NewGeocodeCache(client *redis.Client, ttl time.Duration) *GeocodeCache {
	if ttl <= 0 {
		ttl = DefaultGeocodeTTL
	}
	return &GeocodeCache{client: client, ttl: ttl}
}

// Get retrieves a cached geocode result.
func (c *GeocodeCache) Get(ctx context.Context, phrase string) (*domain.GeocodeResult, error) {
	data, err := c.client.Get(ctx, geocodePrefix+phrase).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get geocode: %w", err)
	}

	var result domain.GeocodeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal geocode: %w", err)
	}
	return &result, nil
}

// Set stores a geocode result, fully replacing any previous value.
func (c *GeocodeCache) Set(ctx context.Context, phrase string, result *domain.GeocodeResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal geocode: %w", err)
	}
	if err := c.client.Set(ctx, geocodePrefix+phrase, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set geocode: %w", err)
	}
	return nil
}
