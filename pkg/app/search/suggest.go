package search

import (
	"sort"
	"strings"

	"github.com/folioworks/folio/pkg/domain/content"
	"github.com/sahilm/fuzzy"
)

type titleSource []string

func (t titleSource) String(i int) string { return t[i] }

func (t titleSource) Len() int { return len(t) }

type Suggestion struct {
	Item           content.Item `json:"item"`
	MatchedIndexes []int        `json:"matched_indexes"`
}

// Suggest completes titles for prefix. Titles starting with prefix come
// first, then other subsequence matches by fuzzy rank.
func (idx *Index) Suggest(prefix string, limit int) []Suggestion {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || len(idx.titles) == 0 {
		return []Suggestion{}
	}
	if r := []rune(prefix); len(r) > MaxPatternRunes {
		prefix = string(r[:MaxPatternRunes])
	}

	matches := fuzzy.FindFrom(prefix, idx.titles)
	lower := strings.ToLower(prefix)
	sort.SliceStable(matches, func(a, b int) bool {
		pa := strings.HasPrefix(strings.ToLower(matches[a].Str), lower)
		pb := strings.HasPrefix(strings.ToLower(matches[b].Str), lower)
		return pa && !pb
	})

	out := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, Suggestion{Item: idx.entries[m.Index].item, MatchedIndexes: m.MatchedIndexes})
	}
	return out
}
