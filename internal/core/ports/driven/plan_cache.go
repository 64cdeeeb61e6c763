package driven

import (
	"context"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// PlanCache stores derived query plans keyed by raw query text
// (Redis). Entries use a sliding TTL: every Get hit refreshes the
// countdown. Values are written whole and never partially mutated.
type PlanCache interface {
	// Get returns the cached plan for the exact raw text, refreshing
	// its TTL. Returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, rawText string) (*domain.CachedQueryPlan, error)

	// Set stores the plan under the raw text with the configured TTL,
	// replacing any previous value.
	Set(ctx context.Context, rawText string, plan *domain.CachedQueryPlan) error

	// Delete removes a cached plan.
	Delete(ctx context.Context, rawText string) error
}
