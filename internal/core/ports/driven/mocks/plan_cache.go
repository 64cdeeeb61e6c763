package mocks

import (
	"context"
	"sync"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// MockPlanCache is an in-memory implementation of PlanCache for testing
type MockPlanCache struct {
	mu       sync.RWMutex
	plans    map[string]*domain.CachedQueryPlan
	GetCalls int
	SetCalls int
	GetErr   error
	SetErr   error
}

// NewMockPlanCache creates a new MockPlanCache
func NewMockPlanCache() *MockPlanCache {
	return &MockPlanCache{plans: make(map[string]*domain.CachedQueryPlan)}
}

func (m *MockPlanCache) Get(ctx context.Context, rawText string) (*domain.CachedQueryPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	plan, ok := m.plans[rawText]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func (m *MockPlanCache) Set(ctx context.Context, rawText string, plan *domain.CachedQueryPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.plans[rawText] = plan
	return nil
}

func (m *MockPlanCache) Delete(ctx context.Context, rawText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.plans, rawText)
	return nil
}
