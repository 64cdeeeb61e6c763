package mocks

import (
	"context"
	"sync"
)

// MockRateLimiter is a counting implementation of RateLimiter for
// testing. Allows the first Limit calls, denies the rest; Limit <= 0
// means unlimited.
type MockRateLimiter struct {
	mu    sync.Mutex
	Limit int
	Err   error
	Calls int
}

// NewMockRateLimiter creates an unlimited MockRateLimiter
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	m.Calls++
	if m.Limit <= 0 {
		return true, nil
	}
	return m.Calls <= m.Limit, nil
}
