package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
)

const maxKeywords = 8

// localIntentRe matches the fixed phrase set signalling "near my
// current location" rather than a named place.
var localIntentRe = regexp.MustCompile(`(?i)\b(near me|nearby|close to me|close by|around me|in my area)\b`)

// organicRe matches standalone organic intent. "organically" or
// "organics" in a producer name should not trip it.
var organicRe = regexp.MustCompile(`(?i)\borganic\b`)

// categoryAlias maps a canonical category to the whole-word aliases
// that select it. Order matters: the first alias that matches wins.
type categoryAlias struct {
	category string
	aliases  []string
}

var categoryAliases = []categoryAlias{
	{"farm", []string{"farm", "farms", "ranch", "ranches", "orchard", "orchards", "homestead", "homesteads"}},
	{"dairy", []string{"dairy", "dairies", "creamery", "creameries"}},
	{"apiary", []string{"apiary", "apiaries", "beekeeper", "beekeepers"}},
	{"vineyard", []string{"vineyard", "vineyards", "winery", "wineries"}},
	{"fishery", []string{"fishery", "fisheries", "fishmonger"}},
	{"butcher", []string{"butcher", "butchers", "butchery"}},
}

// exceptionPhrases are idioms that coincidentally contain category
// words. They are masked before alias matching so "farm to table"
// never selects category "farm".
var exceptionPhrases = []string{
	"farm to table",
	"farmers market",
	"farmers markets",
	"farmer's market",
	"dairy free",
}

// Normalizer decomposes raw natural-language query text into
// structured search signals.
type Normalizer struct {
	places  driven.PlaceExtractor
	catalog driven.CommodityCatalog
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(places driven.PlaceExtractor, catalog driven.CommodityCatalog) *Normalizer {
	return &Normalizer{places: places, catalog: catalog}
}

// Normalize extracts local intent, a place phrase, a category hint,
// commodity/variant hints, organic intent and residual keywords from
// raw text. The catalog is read on every call so the alternation
// always reflects the current commodity list.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (*domain.QuerySignals, error) {
	signals := &domain.QuerySignals{}
	text := raw

	// 1. Local intent.
	if localIntentRe.MatchString(text) {
		signals.LocalIntent = true
		text = localIntentRe.ReplaceAllString(text, " ")
	}

	// 2. Place names, ordered by first appearance. Hits that resolve
	// in the country table become the country hint instead of part of
	// the geocoding phrase.
	text = n.extractPlaces(text, signals)

	// 3. Category, with exception phrases masked first.
	text = extractCategory(text, signals)

	// 4. Commodity and variant hints: every whole-word match counts,
	// not just the first. Matched terms stay in the residual so they
	// still contribute to full-text relevance downstream.
	if err := n.extractCommodities(ctx, text, signals); err != nil {
		return nil, err
	}

	// 5. Organic intent, stripped from the residual.
	if organicRe.MatchString(text) {
		signals.Organic = true
		text = organicRe.ReplaceAllString(text, " ")
	}

	// 6. Residual keywords.
	signals.Residual = strings.Join(strings.Fields(text), " ")
	signals.Keywords = residualKeywords(signals.Residual)

	return signals, nil
}

func (n *Normalizer) extractPlaces(text string, signals *domain.QuerySignals) string {
	hits := n.places.ExtractPlaceNames(text)
	if len(hits) == 0 {
		return text
	}

	type placeHit struct {
		name string
		pos  int
	}
	seen := make(map[string]bool)
	var ordered []placeHit
	for _, hit := range hits {
		key := strings.ToLower(hit)
		if seen[key] {
			continue
		}
		loc := wordIndex(text, hit)
		if loc == nil {
			continue
		}
		pos := loc[0]
		seen[key] = true
		ordered = append(ordered, placeHit{name: hit, pos: pos})
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].pos < ordered[j].pos })

	var parts []string
	for _, hit := range ordered {
		if c, ok := domain.ResolveCountry(hit.name); ok {
			if signals.CountryHint == "" {
				signals.CountryHint = c.Name
			}
		} else {
			parts = append(parts, hit.name)
		}
		text = stripFirst(text, hit.name)
	}
	signals.PlacePhrase = strings.Join(parts, ", ")
	return text
}

func extractCategory(text string, signals *domain.QuerySignals) string {
	masked := maskExceptions(text)
	for _, ca := range categoryAliases {
		for _, alias := range ca.aliases {
			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(alias) + `\b`)
			loc := re.FindStringIndex(masked)
			if loc == nil {
				continue
			}
			signals.Category = ca.category
			return text[:loc[0]] + " " + text[loc[1]:]
		}
	}
	return text
}

// maskExceptions overwrites exception-phrase spans with '*' so
// whole-word alias matching cannot see them. The mask preserves
// length, keeping indexes valid against the original text.
func maskExceptions(text string) string {
	masked := text
	lower := strings.ToLower(masked)
	for _, phrase := range exceptionPhrases {
		for {
			i := strings.Index(lower, phrase)
			if i < 0 {
				break
			}
			mask := strings.Repeat("*", len(phrase))
			masked = masked[:i] + mask + masked[i+len(phrase):]
			lower = lower[:i] + mask + lower[i+len(phrase):]
		}
	}
	return masked
}

func (n *Normalizer) extractCommodities(ctx context.Context, text string, signals *domain.QuerySignals) error {
	catalog, err := n.catalog.Commodities(ctx)
	if err != nil {
		return fmt.Errorf("load commodity catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil
	}

	isVariant := make(map[string]bool)
	var terms []string
	for _, c := range catalog {
		terms = append(terms, c.Name)
		for _, v := range c.Variants {
			terms = append(terms, v)
			isVariant[strings.ToLower(v)] = true
		}
	}
	// Longer terms first so "raw honey" beats "honey" at the same
	// position.
	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return fmt.Errorf("compile commodity alternation: %w", err)
	}

	seen := make(map[string]bool)
	for _, match := range re.FindAllString(text, -1) {
		key := strings.ToLower(match)
		if seen[key] {
			continue
		}
		seen[key] = true
		if isVariant[key] {
			signals.Variants = append(signals.Variants, key)
		} else {
			signals.Commodities = append(signals.Commodities, key)
		}
	}
	return nil
}

// searchableRe: the text index only sees these characters, so a token
// without any of them can never match and must not drive strategy
// selection.
var searchableRe = regexp.MustCompile(`[a-z0-9]`)

// residualKeywords splits on whitespace, drops short and unsearchable
// tokens, lowercases, dedupes in insertion order and caps the set.
func residualKeywords(residual string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, tok := range strings.Fields(residual) {
		tok = strings.ToLower(strings.Trim(tok, ",.;:!?'\""))
		if len(tok) <= 3 || !searchableRe.MatchString(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// wordIndex locates the first whole-word, case-insensitive occurrence
// of sub, consistent with the recognizer's word-bounded matching. A
// plain substring search would hit sub embedded in a longer word.
func wordIndex(text, sub string) []int {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(sub) + `\b`)
	return re.FindStringIndex(text)
}

// stripFirst removes the first whole-word occurrence of sub.
func stripFirst(text, sub string) string {
	loc := wordIndex(text, sub)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + " " + text[loc[1]:]
}
