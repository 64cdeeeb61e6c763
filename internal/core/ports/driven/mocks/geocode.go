package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

// MockGeocodeCache is an in-memory implementation of GeocodeCache for testing
type MockGeocodeCache struct {
	mu      sync.RWMutex
	results map[string]*domain.GeocodeResult
	GetErr  error
	SetErr  error
}

// NewMockGeocodeCache creates a new MockGeocodeCache
func NewMockGeocodeCache() *MockGeocodeCache {
	return &MockGeocodeCache{results: make(map[string]*domain.GeocodeResult)}
}

func (m *MockGeocodeCache) Get(ctx context.Context, phrase string) (*domain.GeocodeResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	result, ok := m.results[phrase]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return result, nil
}

func (m *MockGeocodeCache) Set(ctx context.Context, phrase string, result *domain.GeocodeResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.results[phrase] = result
	return nil
}

// MockGeocodingProvider is a canned-response implementation of
// GeocodingProvider for testing. Calls counts network lookups.
type MockGeocodingProvider struct {
	mu      sync.Mutex
	Results map[string]*domain.GeocodeResult
	Err     error
	Calls   int
}

// NewMockGeocodingProvider creates a new MockGeocodingProvider
func NewMockGeocodingProvider() *MockGeocodingProvider {
	return &MockGeocodingProvider{Results: make(map[string]*domain.GeocodeResult)}
}

func (m *MockGeocodingProvider) Geocode(ctx context.Context, phrase string) (*domain.GeocodeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	result, ok := m.Results[phrase]
	if !ok {
		return nil, &domain.GeocodeError{Phrase: phrase, Err: errors.New("no results")}
	}
	return result, nil
}
