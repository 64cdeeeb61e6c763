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
var _ driven.PlanCache = (*PlanCache)(nil)

const planPrefix = "search:plan:"

// DefaultPlanTTL is the sliding expiration window for derived query
// plans. Five days trades staleness against re-running NL extraction
// and geocoding for popular queries.
const DefaultPlanTTL = 5 * 24 * time.Hour

// PlanCache implements driven.PlanCache using Redis. Plans are keyed
// by the exact raw query text with a sliding TTL: every read refreshes
// the countdown via GETEX.
type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache creates a Redis-backed PlanCache. A non-positive ttl
// falls back to DefaultPlanTTL.
func NewPlanCache(client *redis.Client, ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = DefaultPlanTTL
	}
	return &PlanCache{client: client, ttl: ttl}
}

// Get retrieves the plan for the exact raw text and refreshes its TTL.
func (c *PlanCache) Get(ctx context.Context, rawText string) (*domain.CachedQueryPlan, error) {
	data, err := c.client.GetEx(ctx, planPrefix+rawText, c.ttl).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	var plan domain.CachedQueryPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &plan, nil
}

// Set stores the plan, fully replacing any previous value.
func (c *PlanCache) Set(ctx context.Context, rawText string, plan *domain.CachedQueryPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := c.client.Set(ctx, planPrefix+rawText, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	return nil
}

// Delete removes a cached plan.
func (c *PlanCache) Delete(ctx context.Context, rawText string) error {
	if err := c.client.Del(ctx, planPrefix+rawText).Err(); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}
