// Package places provides a gazetteer-backed place-name recognizer.
// It stands in for the external NLP entity recognizer behind the
// PlaceExtractor port; deployments with a real NER service swap it
// out without touching the normalizer.
package places

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PlaceExtractor = (*Lexicon)(nil)

// Lexicon recognizes place names by whole-word lookup against a
// registered gazetteer. Multi-word entries win over their single-word
// parts at the same position.
type Lexicon struct {
	mu      sync.RWMutex
	entries map[string]struct{}
	re      *regexp.Regexp
}

// NewLexicon creates a Lexicon seeded with the default gazetteer.
func NewLexicon() *Lexicon {
	l := &Lexicon{entries: make(map[string]struct{})}
	l.Register(defaultGazetteer...)
	return l
}

// NewEmptyLexicon creates a Lexicon with no entries, for tests and
// custom gazetteers.
func NewEmptyLexicon() *Lexicon {
	return &Lexicon{entries: make(map[string]struct{})}
}

// Register adds place names to the gazetteer.
func (l *Lexicon) Register(names ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			l.entries[name] = struct{}{}
		}
	}
	l.re = nil // rebuilt lazily
}

// ExtractPlaceNames returns recognized place names in order of first
// appearance in text.
func (l *Lexicon) ExtractPlaceNames(text string) []string {
	re := l.pattern()
	if re == nil {
		return nil
	}
	var hits []string
	for _, m := range re.FindAllString(text, -1) {
		hits = append(hits, strings.ToLower(m))
	}
	return hits
}

func (l *Lexicon) pattern() *regexp.Regexp {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.re != nil {
		return l.re
	}
	if len(l.entries) == 0 {
		return nil
	}

	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	// Longest first so "new york" beats "york".
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	l.re = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	return l.re
}
