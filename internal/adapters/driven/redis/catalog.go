package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.CommodityCatalog = (*CommodityCatalog)(nil)

const catalogKey = "catalog:commodities"

// catalogMemoTTL bounds how stale the in-process snapshot may be.
// The catalog itself is written by an external refresh pipeline.
const catalogMemoTTL = time.Minute

// CommodityCatalog reads the externally-refreshed commodity catalog
// from Redis, memoizing the full list in-process for a short window so
// every Normalize call does not pay a round trip.
type CommodityCatalog struct {
	client *redis.Client

	mu        sync.Mutex
	snapshot  []domain.Commodity
	fetchedAt time.Time
}

// NewCommodityCatalog creates a Redis-backed CommodityCatalog.
func NewCommodityCatalog(client *redis.Client) *CommodityCatalog {
	return &CommodityCatalog{client: client}
}

// Commodities returns the full current catalog. A missing key is an
// empty catalog, not an error.
func (c *CommodityCatalog) Commodities(ctx context.Context) ([]domain.Commodity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && time.Since(c.fetchedAt) < catalogMemoTTL {
		return c.snapshot, nil
	}

	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		c.snapshot = []domain.Commodity{}
		c.fetchedAt = time.Now()
		return c.snapshot, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	var commodities []domain.Commodity
	if err := json.Unmarshal(data, &commodities); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	c.snapshot = commodities
	c.fetchedAt = time.Now()
	return c.snapshot, nil
}
