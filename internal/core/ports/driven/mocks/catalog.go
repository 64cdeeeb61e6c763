package mocks

import (
	"context"
	"sync"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// MockCommodityCatalog is a fixed-list implementation of
// CommodityCatalog for testing.
type MockCommodityCatalog struct {
	mu    sync.RWMutex
	items []domain.Commodity
	Err   error
}

// NewMockCommodityCatalog creates a MockCommodityCatalog with the
// given entries.
func NewMockCommodityCatalog(items ...domain.Commodity) *MockCommodityCatalog {
	return &MockCommodityCatalog{items: items}
}

func (m *MockCommodityCatalog) Commodities(ctx context.Context) ([]domain.Commodity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.items, nil
}

// Replace swaps the catalog contents, simulating an external refresh.
func (m *MockCommodityCatalog) Replace(items ...domain.Commodity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
}
