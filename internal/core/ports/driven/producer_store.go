package driven

import (
	"context"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// ProducerStore executes one composed retrieval query per strategy
// against the entity store (PostgreSQL). The store owns the coarse 2-D
// coordinate index, the two independent full-text indexes (profile,
// reviews) and the relational filter indexes; all joins are
// pre-resolved into the producer search view.
type ProducerStore interface {
	// Search executes the store query and returns up to q.Limit rows
	// in the strategy's canonical order. Errors are propagated as-is;
	// partial results are never returned.
	Search(ctx context.Context, q *domain.StoreQuery) ([]domain.SearchResultRow, error)

	// HealthCheck verifies the store is reachable.
	HealthCheck(ctx context.Context) error
}
