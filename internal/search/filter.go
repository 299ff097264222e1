// Package search provides local fuzzy filtering over already-loaded lists.
// Server search is a separate endpoint; this only narrows what is on screen.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"
)

// Entry is one filterable row: the display title plus the caller's index
// into its own backing slice.
type Entry struct {
	Title string
	Index int
}

// Match is a ranked filter hit with the character positions that matched,
// for highlighting.
type Match struct {
	Entry
	MatchedIndexes []int
	Score          int
}

// index implements sahilm/fuzzy.Source over pre-lowered titles.
type index struct {
	entries []Entry
	lowered []string
}

func (ix *index) String(i int) string { return ix.lowered[i] }
func (ix *index) Len() int            { return len(ix.entries) }

// Filter ranks entries against the query. An empty query returns every
// entry in original order with no match metadata.
func Filter(query string, entries []Entry) []Match {
	if query == "" {
		out := make([]Match, len(entries))
		for i, e := range entries {
			out[i] = Match{Entry: e}
		}
		return out
	}

	q := strings.ToLower(query)

	// Cheap prefilter keeps the ranking pass small on big lists
	ix := &index{}
	for _, e := range entries {
		lowered := strings.ToLower(e.Title)
		if !fuzzy.Match(q, lowered) {
			continue
		}
		ix.entries = append(ix.entries, e)
		ix.lowered = append(ix.lowered, lowered)
	}
	if ix.Len() == 0 {
		return nil
	}

	matches := sahilm.FindFrom(q, ix)
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		out = append(out, Match{
			Entry:          ix.entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
