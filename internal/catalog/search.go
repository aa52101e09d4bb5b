package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// prefixPenalty is added to prefix matches so that whole-word matches rank first
const prefixPenalty = 0.1

// Match is one fuzzy search hit. Score is 0 for an exact match and grows with
// edit distance.
type Match struct {
	Entity domain.Entity
	Score  float64
}

type indexEntry struct {
	entity     domain.Entity
	name       string
	words      []string
	wordStarts []int // rune offsets of each word within name
}

// SearchIndex is an immutable fuzzy index over entity names.
type SearchIndex struct {
	entries   []indexEntry
	threshold float64
}

// NewSearchIndex indexes entities in the given order. A threshold outside
// (0, 1] falls back to domain.DefaultSearchThreshold.
func NewSearchIndex(entities []domain.Entity, threshold float64) *SearchIndex {
	if !validThreshold(threshold) {
		threshold = domain.DefaultSearchThreshold
	}
	idx := &SearchIndex{
		entries:   make([]indexEntry, 0, len(entities)),
		threshold: threshold,
	}
	for _, e := range entities {
		name := normalize(e.GetName())
		words := strings.Split(name, " ")
		starts := make([]int, len(words))
		offset := 0
		for i, w := range words {
			starts[i] = offset
			offset += utf8.RuneCountInString(w) + 1
		}
		idx.entries = append(idx.entries, indexEntry{
			entity:     e,
			name:       name,
			words:      words,
			wordStarts: starts,
		})
	}
	return idx
}

// Threshold returns the largest score accepted as a match.
func (idx *SearchIndex) Threshold() float64 {
	return idx.threshold
}

// Search returns matching entities, best match first. Equal scores keep index
// order. An empty or whitespace-only query matches nothing.
func (idx *SearchIndex) Search(query string) []domain.Entity {
	matches := idx.Matches(query)
	out := make([]domain.Entity, len(matches))
	for i, m := range matches {
		out[i] = m.Entity
	}
	return out
}

// Matches is Search with scores.
func (idx *SearchIndex) Matches(query string) []Match {
	q := normalize(query)
	if q == "" {
		return []Match{}
	}
	qWords := strings.Split(q, " ")

	matches := make([]Match, 0)
	for _, entry := range idx.entries {
		if s := score(q, qWords, entry); s <= idx.threshold {
			matches = append(matches, Match{Entity: entry.entity, Score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
	return matches
}

// score is the best normalized distance of the query against the full name,
// against every run of consecutive name words as long as the query, and
// against word-aligned prefixes of the query's length.
func score(q string, qWords []string, entry indexEntry) float64 {
	best := normalizedDistance(q, entry.name)
	if best == 0 {
		return 0
	}

	n := len(qWords)
	for i := 0; i+n <= len(entry.words) && n < len(entry.words); i++ {
		window := strings.Join(entry.words[i:i+n], " ")
		best = min(best, normalizedDistance(q, window))
	}

	qLen := utf8.RuneCountInString(q)
	nameRunes := []rune(entry.name)
	for _, start := range entry.wordStarts {
		if start+qLen >= len(nameRunes) {
			// Covered by the full-name and window comparisons
			continue
		}
		prefix := string(nameRunes[start : start+qLen])
		d := float64(levenshtein.ComputeDistance(q, prefix)) / float64(qLen)
		best = min(best, d+prefixPenalty)
	}
	return best
}

func normalizedDistance(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

// normalize case-folds and collapses whitespace runs to single spaces.
// A Caser is not safe for concurrent use, so one is built per call.
func normalize(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

func validThreshold(threshold float64) bool {
	return threshold > 0 && threshold <= 1
}
