package search

import (
	"math"
	"sort"
	"strings"

	"github.com/folioworks/folio/pkg/domain/content"
	"github.com/sirupsen/logrus"
)

type Field string

const (
	FieldTitle       Field = "title"
	FieldTags        Field = "tags"
	FieldDescription Field = "description"
	FieldContent     Field = "content"
	FieldCategory    Field = "category"

	DefaultThreshold = 0.4
	OtherGroup       = "Other"

	// MaxQueryRunes is the longest query text callers should accept.
	MaxQueryRunes = 256
	// MaxPatternRunes bounds the matched pattern; scoring cost grows with
	// pattern length times field length, so longer queries are truncated.
	MaxPatternRunes = 64

	// scoreFloor keeps exact matches from collapsing the product to zero.
	scoreFloor = 0.001
)

// fieldWeights are applied in this order; earlier fields matter more.
var fieldWeights = []struct {
	field  Field
	weight float64
}{
	{FieldTitle, 0.35},
	{FieldTags, 0.25},
	{FieldDescription, 0.20},
	{FieldContent, 0.12},
	{FieldCategory, 0.08},
}

type Match struct {
	Field Field   `json:"field"`
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

type Result struct {
	Item    content.Item `json:"item"`
	Score   float64      `json:"score"`
	Matches []Match      `json:"matches"`
	ref     int
}

type fieldValue struct {
	raw    string
	runes  []rune
	weight float64
}

type entry struct {
	item   content.Item
	fields map[Field][]fieldValue
}

// Index is an immutable snapshot of searchable items. Build a new one to
// pick up content changes.
type Index struct {
	entries   []entry
	threshold float64
	titles    titleSource
}

type Option func(*options)

type options struct {
	threshold float64
	logger    *logrus.Logger
}

func WithThreshold(t float64) Option {
	return func(o *options) {
		if t > 0 && t <= 1 {
			o.threshold = t
		}
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// BuildIndex indexes items in order. Invalid items and duplicate ids are
// skipped and logged; the same input always produces the same index.
func BuildIndex(items []content.Item, opts ...Option) *Index {
	o := &options{threshold: DefaultThreshold, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(o)
	}

	idx := &Index{threshold: o.threshold}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			o.logger.WithError(err).WithField("item_id", it.ID).Warn("skipping malformed search item")
			continue
		}
		if _, dup := seen[it.ID]; dup {
			o.logger.WithField("item_id", it.ID).Warn("skipping duplicate search item")
			continue
		}
		seen[it.ID] = struct{}{}
		idx.entries = append(idx.entries, newEntry(it))
	}
	idx.titles = make(titleSource, len(idx.entries))
	for i, e := range idx.entries {
		idx.titles[i] = e.item.Title
	}
	return idx
}

func newEntry(it content.Item) entry {
	e := entry{item: it, fields: make(map[Field][]fieldValue, len(fieldWeights))}
	for _, fw := range fieldWeights {
		var values []string
		switch fw.field {
		case FieldTitle:
			values = []string{it.Title}
		case FieldTags:
			values = it.Tags
		case FieldDescription:
			values = []string{it.Description}
		case FieldContent:
			values = []string{it.Content}
		case FieldCategory:
			values = []string{it.Category}
		}
		for _, v := range values {
			n := normalize(v)
			if n == "" {
				continue
			}
			e.fields[fw.field] = append(e.fields[fw.field], fieldValue{
				raw:    v,
				runes:  []rune(n),
				weight: fw.weight / math.Sqrt(float64(tokenCount(n))),
			})
		}
	}
	return e
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

// Items returns the indexed items in index order.
func (idx *Index) Items() []content.Item {
	out := make([]content.Item, len(idx.entries))
	for i, e := range idx.entries {
		out[i] = e.item
	}
	return out
}

// Query returns matching items, best first. Lower scores are better. A
// non-positive limit returns every match. Only the first MaxPatternRunes
// runes of text are matched.
func (idx *Index) Query(text string, limit int) []Result {
	pattern := []rune(normalize(text))
	if len(pattern) == 0 {
		return []Result{}
	}
	if len(pattern) > MaxPatternRunes {
		pattern = pattern[:MaxPatternRunes]
	}

	results := make([]Result, 0)
	for i, e := range idx.entries {
		score := 1.0
		var matches []Match
		for _, fw := range fieldWeights {
			best, ok := idx.bestValue(pattern, e.fields[fw.field])
			if !ok {
				continue
			}
			score *= math.Pow(math.Max(best.score, scoreFloor), best.weight)
			matches = append(matches, Match{Field: fw.field, Value: best.raw, Score: best.score})
		}
		if len(matches) == 0 {
			continue
		}
		results = append(results, Result{Item: e.item, Score: score, Matches: matches, ref: i})
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score < results[b].Score
		}
		return results[a].ref < results[b].ref
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

type scoredValue struct {
	raw    string
	score  float64
	weight float64
}

func (idx *Index) bestValue(pattern []rune, values []fieldValue) (scoredValue, bool) {
	var best scoredValue
	found := false
	for _, v := range values {
		s := fieldScore(pattern, v.runes)
		if s > idx.threshold {
			continue
		}
		if !found || s < best.score {
			best = scoredValue{raw: v.raw, score: s, weight: v.weight}
			found = true
		}
	}
	return best, found
}

func GroupByType(results []Result) map[string][]Result {
	return groupBy(results, func(r Result) string { return string(r.Item.Type) })
}

func GroupByCategory(results []Result) map[string][]Result {
	return groupBy(results, func(r Result) string { return r.Item.Category })
}

func groupBy(results []Result, key func(Result) string) map[string][]Result {
	groups := make(map[string][]Result)
	for _, r := range results {
		k := strings.TrimSpace(key(r))
		if k == "" {
			k = OtherGroup
		}
		groups[k] = append(groups[k], r)
	}
	return groups
}
