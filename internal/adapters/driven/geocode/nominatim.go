// Package geocode adapts an HTTP geocoding provider speaking the
// Nominatim wire format to the GeocodingProvider port.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.GeocodingProvider = (*Client)(nil)

// Client implements driven.GeocodingProvider over HTTP.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Config holds geocoding provider configuration
type Config struct {
	// BaseURL is the provider endpoint (e.g., https://nominatim.openstreetmap.org)
	BaseURL string

	// UserAgent identifies this service to the provider, which most
	// public instances require.
	UserAgent string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		UserAgent: "eat-authentically-search",
		Timeout:   10 * time.Second,
	}
}

// NewClient creates a new geocoding client
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// place is one entry of the provider's response. Coordinates and the
// four bounding-box bounds arrive string-encoded.
type place struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox"` // minLat, maxLat, minLon, maxLon
}

// Geocode resolves a place phrase to a point and bounding box. Every
// failure mode, HTTP, empty result or malformed payload, comes back as
// a *domain.GeocodeError; no malformed point escapes this boundary.
func (c *Client) Geocode(ctx context.Context, phrase string) (*domain.GeocodeResult, error) {
	endpoint := c.baseURL + "/search?format=jsonv2&limit=1&q=" + url.QueryEscape(phrase)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.GeocodeError{Phrase: phrase, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.GeocodeError{Phrase: phrase, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GeocodeError{Phrase: phrase, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.GeocodeError{
			Phrase: phrase,
			Err:    fmt.Errorf("provider returned %d: %s", resp.StatusCode, truncate(body, 200)),
		}
	}

	var places []place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, &domain.GeocodeError{Phrase: phrase, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(places) == 0 {
		return nil, &domain.GeocodeError{Phrase: phrase, Err: errors.New("no results")}
	}

	result, err := parsePlace(places[0])
	if err != nil {
		return nil, &domain.GeocodeError{Phrase: phrase, Err: err}
	}
	result.Raw = json.RawMessage(body)
	return result, nil
}

// parsePlace converts the string-encoded payload to numerics, failing
// closed on any malformation.
func parsePlace(p place) (*domain.GeocodeResult, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	if len(p.BoundingBox) != 4 {
		return nil, fmt.Errorf("bounding box has %d bounds, want 4", len(p.BoundingBox))
	}

	var bounds [4]float64
	for i, raw := range p.BoundingBox {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse bound %d %q: %w", i, raw, err)
		}
		bounds[i] = v
	}

	return &domain.GeocodeResult{
		Point: domain.GeoPoint{Lat: lat, Lon: lon},
		Box: domain.BoundingBox{
			MinLat: bounds[0],
			MaxLat: bounds[1],
			MinLon: bounds[2],
			MaxLon: bounds[3],
		},
	}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
