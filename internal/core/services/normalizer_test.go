package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven/mocks"
)

func testNormalizer(places ...string) *Normalizer {
	catalog := mocks.NewMockCommodityCatalog(
		domain.Commodity{Name: "blueberries"},
		domain.Commodity{Name: "honey", Variants: []string{"raw honey"}},
		domain.Commodity{Name: "tomatoes", Variants: []string{"heirloom"}},
	)
	return NewNormalizer(mocks.NewMockPlaceExtractor(places...), catalog)
}

func TestNormalizer_CategoryExceptionPrecedence(t *testing.T) {
	n := testNormalizer("eugene")

	// An idiom containing a category word must never select the
	// category.
	signals, err := n.Normalize(context.Background(), "farm to table products near eugene")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.Category != "" {
		t.Errorf("expected no category, got %q", signals.Category)
	}
	if signals.PlacePhrase != "eugene" {
		t.Errorf("expected place phrase eugene, got %q", signals.PlacePhrase)
	}

	// The same word outside the idiom selects it.
	signals, err = n.Normalize(context.Background(), "organic farm near eugene")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.Category != "farm" {
		t.Errorf("expected category farm, got %q", signals.Category)
	}
	if !signals.Organic {
		t.Error("expected organic flag")
	}
}

func TestNormalizer_ScenarioOrganicFarmEugeneOregon(t *testing.T) {
	n := testNormalizer("eugene", "oregon")

	signals, err := n.Normalize(context.Background(), "organic farm eugene oregon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if signals.Category != "farm" {
		t.Errorf("expected category farm, got %q", signals.Category)
	}
	if !signals.Organic {
		t.Error("expected organic flag")
	}
	if signals.PlacePhrase != "eugene, oregon" {
		t.Errorf("expected place phrase 'eugene, oregon', got %q", signals.PlacePhrase)
	}
	if signals.LocalIntent {
		t.Error("expected no local intent")
	}
	if len(signals.Keywords) != 0 {
		t.Errorf("expected no residual keywords, got %v", signals.Keywords)
	}
}

func TestNormalizer_LocalIntent(t *testing.T) {
	n := testNormalizer()

	signals, err := n.Normalize(context.Background(), "blueberries near me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !signals.LocalIntent {
		t.Error("expected local intent")
	}
	if signals.PlacePhrase != "" {
		t.Errorf("expected no place phrase, got %q", signals.PlacePhrase)
	}
	if len(signals.Commodities) != 1 || signals.Commodities[0] != "blueberries" {
		t.Errorf("expected commodity blueberries, got %v", signals.Commodities)
	}
	if len(signals.Keywords) != 1 || signals.Keywords[0] != "blueberries" {
		t.Errorf("expected keyword blueberries, got %v", signals.Keywords)
	}
}

func TestNormalizer_AllCommodityMatchesCollected(t *testing.T) {
	n := testNormalizer()

	signals, err := n.Normalize(context.Background(), "Blueberries and raw honey and heirloom tomatoes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCommodities := []string{"blueberries", "tomatoes"}
	if len(signals.Commodities) != len(wantCommodities) {
		t.Fatalf("expected commodities %v, got %v", wantCommodities, signals.Commodities)
	}
	for i, want := range wantCommodities {
		if signals.Commodities[i] != want {
			t.Errorf("commodity %d: expected %s, got %s", i, want, signals.Commodities[i])
		}
	}

	wantVariants := []string{"raw honey", "heirloom"}
	if len(signals.Variants) != len(wantVariants) {
		t.Fatalf("expected variants %v, got %v", wantVariants, signals.Variants)
	}
}

func TestNormalizer_KeywordCapAndDedupe(t *testing.T) {
	n := testNormalizer()

	words := make([]string, 0, 40)
	for i := 0; i < 20; i++ {
		w := fmt.Sprintf("residual%02d", i)
		words = append(words, strings.ToUpper(w), w) // duplicates in mixed case
	}

	signals, err := n.Normalize(context.Background(), strings.Join(words, " "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(signals.Keywords) != maxKeywords {
		t.Fatalf("expected %d keywords, got %d: %v", maxKeywords, len(signals.Keywords), signals.Keywords)
	}
	seen := make(map[string]bool)
	for _, kw := range signals.Keywords {
		if kw != strings.ToLower(kw) {
			t.Errorf("keyword %q not lowercased", kw)
		}
		if len(kw) <= 3 {
			t.Errorf("keyword %q too short", kw)
		}
		if seen[kw] {
			t.Errorf("duplicate keyword %q", kw)
		}
		seen[kw] = true
	}
	// Insertion order preserved.
	if signals.Keywords[0] != "residual00" {
		t.Errorf("expected first keyword residual00, got %s", signals.Keywords[0])
	}
}

func TestNormalizer_ShortTokensDropped(t *testing.T) {
	n := testNormalizer()

	signals, err := n.Normalize(context.Background(), "the big red jam pots")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, kw := range signals.Keywords {
		if len(kw) <= 3 {
			t.Errorf("short token %q survived", kw)
		}
	}
}

func TestNormalizer_CountryHitBecomesHint(t *testing.T) {
	n := testNormalizer("portland", "canada")

	signals, err := n.Normalize(context.Background(), "honey portland canada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if signals.CountryHint != "Canada" {
		t.Errorf("expected country hint Canada, got %q", signals.CountryHint)
	}
	if signals.PlacePhrase != "portland" {
		t.Errorf("expected place phrase portland, got %q", signals.PlacePhrase)
	}
}

func TestNormalizer_MultiplePlacesCommaJoined(t *testing.T) {
	n := testNormalizer("bend", "oregon")

	signals, err := n.Normalize(context.Background(), "cider bend oregon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.PlacePhrase != "bend, oregon" {
		t.Errorf("expected 'bend, oregon', got %q", signals.PlacePhrase)
	}
}

func TestNormalizer_EmptyAndNoSignals(t *testing.T) {
	n := testNormalizer()

	signals, err := n.Normalize(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.PlacePhrase != "" || signals.Category != "" || len(signals.Keywords) != 0 {
		t.Errorf("expected empty signals, got %+v", signals)
	}
}

func TestNormalizer_UnsearchableTokensDropped(t *testing.T) {
	n := testNormalizer()

	signals, err := n.Normalize(context.Background(), "#### stuff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals.Keywords) != 1 || signals.Keywords[0] != "stuff" {
		t.Errorf("expected keywords [stuff], got %v", signals.Keywords)
	}

	// A query with no searchable token yields no keywords, so strategy
	// selection falls through to browse instead of a dead text search.
	signals, err = n.Normalize(context.Background(), "蜂蜜と農場")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals.Keywords) != 0 {
		t.Errorf("expected no keywords, got %v", signals.Keywords)
	}
}

func TestNormalizer_PlaceStrippedWholeWordOnly(t *testing.T) {
	n := testNormalizer("eugene")

	signals, err := n.Normalize(context.Background(), "honey from eugenes best eugene")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.PlacePhrase != "eugene" {
		t.Errorf("expected place phrase eugene, got %q", signals.PlacePhrase)
	}
	// The embedded occurrence inside "eugenes" must survive intact.
	found := false
	for _, kw := range signals.Keywords {
		if kw == "eugenes" {
			found = true
		}
		if kw == "s" {
			t.Errorf("stray fragment leaked into keywords: %v", signals.Keywords)
		}
	}
	if !found {
		t.Errorf("expected keyword eugenes to survive, got %v", signals.Keywords)
	}
}
