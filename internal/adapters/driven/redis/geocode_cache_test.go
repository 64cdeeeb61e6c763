package redis

import (
	"context"
	"testing"
	"time"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
)

func testGeocodeResult() *domain.GeocodeResult {
	return &domain.GeocodeResult{
		Point: domain.GeoPoint{Lat: 44.05, Lon: -123.09},
		Box:   domain.BoundingBox{MinLat: 43.9, MaxLat: 44.2, MinLon: -123.3, MaxLon: -122.9},
	}
}

func TestGeocodeCache_SetAndGet(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewGeocodeCache(client, 0)
	ctx := context.Background()

	if err := cache.Set(ctx, "eugene, oregon", testGeocodeResult()); err != nil {
		t.Fatalf("unexpected error setting result: %v", err)
	}

	result, err := cache.Get(ctx, "eugene, oregon")
	if err != nil {
		t.Fatalf("unexpected error getting result: %v", err)
	}
	if result.Point.Lat != 44.05 || result.Point.Lon != -123.09 {
		t.Errorf("expected point to survive round trip, got %+v", result.Point)
	}
	if result.Box.MinLat != 43.9 || result.Box.MaxLon != -122.9 {
		t.Errorf("expected box to survive round trip, got %+v", result.Box)
	}
}

func TestGeocodeCache_GetMissing(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewGeocodeCache(client, 0)

	_, err := cache.Get(context.Background(), "nowhere")
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGeocodeCache_FixedTTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewGeocodeCache(client, time.Hour)
	ctx := context.Background()

	if err := cache.Set(ctx, "eugene", testGeocodeResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reads do not refresh the window; the entry expires on schedule.
	mr.FastForward(30 * time.Minute)
	if _, err := cache.Get(ctx, "eugene"); err != nil {
		t.Fatalf("expected entry alive mid-window, got %v", err)
	}

	mr.FastForward(45 * time.Minute)
	if _, err := cache.Get(ctx, "eugene"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestGeocodeCache_DistinctNamespace(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	geocodes := NewGeocodeCache(client, 0)
	plans := NewPlanCache(client, 0)
	ctx := context.Background()

	// The same literal key text in both caches must not collide.
	if err := geocodes.Set(ctx, "eugene", testGeocodeResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := plans.Get(ctx, "eugene"); err != domain.ErrNotFound {
		t.Errorf("expected plan namespace to be empty, got %v", err)
	}
}
