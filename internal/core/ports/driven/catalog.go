package driven

import (
	"context"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// CommodityCatalog is the read-only accessor over the full commodity
// catalog. The catalog is refreshed by an external pipeline; this core
// only reads it to build the commodity/variant alternation.
type CommodityCatalog interface {
	Commodities(ctx context.Context) ([]domain.Commodity, error)
}
