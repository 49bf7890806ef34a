package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Result is one filtered entry with match metadata
type Result struct {
	Entry          domain.Entry
	Index          int   // position in the input slice
	MatchedIndexes []int // byte offsets of the matched characters in the name
	Score          int   // higher is better
}

// entryIndex implements sahilm/fuzzy.Source over lowercase names
type entryIndex struct {
	entries    []domain.Entry
	lowerNames []string
}

func (idx *entryIndex) String(i int) string { return idx.lowerNames[i] }

func (idx *entryIndex) Len() int { return len(idx.entries) }

func newEntryIndex(entries []domain.Entry) *entryIndex {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = strings.ToLower(e.GetName())
	}
	return &entryIndex{entries: entries, lowerNames: names}
}

// Filter fuzzy-matches query against entry names, best match first.
// An empty query returns every entry in input order.
func Filter(query string, entries []domain.Entry) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]Result, len(entries))
		for i, e := range entries {
			results[i] = Result{Entry: e, Index: i}
		}
		return results
	}

	idx := newEntryIndex(entries)
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          entries[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// RankLocal returns the local heroes whose names contain the query's
// characters in order, closest match first. Ties keep storage order.
func RankLocal(query string, heroes []domain.CustomHero) []domain.CustomHero {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]domain.CustomHero(nil), heroes...)
	}

	names := make([]string, len(heroes))
	for i, h := range heroes {
		names[i] = h.Name
	}

	ranks := lfuzzy.RankFindNormalizedFold(query, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]domain.CustomHero, len(ranks))
	for i, r := range ranks {
		out[i] = heroes[r.OriginalIndex]
	}
	return out
}
