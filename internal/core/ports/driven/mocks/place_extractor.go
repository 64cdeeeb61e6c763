package mocks

import "strings"

// MockPlaceExtractor recognizes a fixed set of place names by
// substring match, standing in for the external recognizer.
type MockPlaceExtractor struct {
	Places []string
}

// NewMockPlaceExtractor creates a MockPlaceExtractor recognizing the
// given names.
func NewMockPlaceExtractor(places ...string) *MockPlaceExtractor {
	return &MockPlaceExtractor{Places: places}
}

func (m *MockPlaceExtractor) ExtractPlaceNames(text string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, place := range m.Places {
		if strings.Contains(lower, strings.ToLower(place)) {
			hits = append(hits, place)
		}
	}
	return hits
}
