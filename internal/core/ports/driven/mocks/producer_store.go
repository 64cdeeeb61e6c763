package mocks

import (
	"context"
	"sync"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// MockProducerStore is a canned-row implementation of ProducerStore
// for testing. It records every query and serves Rows honoring limit
// and offset, the way the real store paginates.
type MockProducerStore struct {
	mu      sync.Mutex
	Rows    []domain.SearchResultRow
	Err     error
	Queries []*domain.StoreQuery
}

// NewMockProducerStore creates a new MockProducerStore
func NewMockProducerStore() *MockProducerStore {
	return &MockProducerStore{}
}

func (m *MockProducerStore) Search(ctx context.Context, q *domain.StoreQuery) ([]domain.SearchResultRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, q)
	if m.Err != nil {
		return nil, m.Err
	}

	if q.Offset >= len(m.Rows) {
		return nil, nil
	}
	rows := m.Rows[q.Offset:]
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	out := make([]domain.SearchResultRow, len(rows))
	copy(out, rows)
	return out, nil
}

func (m *MockProducerStore) HealthCheck(ctx context.Context) error {
	return m.Err
}

// LastQuery returns the most recent query, or nil.
func (m *MockProducerStore) LastQuery() *domain.StoreQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Queries) == 0 {
		return nil
	}
	return m.Queries[len(m.Queries)-1]
}
