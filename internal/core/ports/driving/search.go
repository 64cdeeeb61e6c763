package driving

import (
	"context"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// SearchService handles producer search operations
type SearchService interface {
	// Search plans and executes one hybrid geo+text search and
	// returns a freshly computed result page.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResultPage, error)

	// Plan returns the derived plan for a raw query without executing
	// it. Served from the plan cache when present.
	Plan(ctx context.Context, rawText string) (*domain.CachedQueryPlan, error)
}
