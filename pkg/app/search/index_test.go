package search_test

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/folioworks/folio/pkg/app/search"
	"github.com/folioworks/folio/pkg/domain/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() []content.Item {
	return []content.Item{
		{ID: "qc", Type: content.TypeProject, Title: "Quantum Core", Description: "A tiny RISC-V core", Category: "Silicon", Tags: []string{"fpga", "verilog"}, URL: "/projects/quantum-core"},
		{ID: "qp", Type: content.TypeResearch, Title: "Quantum Corp", Description: "Notes on a fictional company", Category: "Business", URL: "/research/quantum-corp"},
		{ID: "go", Type: content.TypeBlog, Title: "Writing a rate limiter in Go", Description: "Sliding windows explained", Tags: []string{"go", "backend"}, URL: "/blog/rate-limiter", Content: "A sliding window counter keeps timestamps."},
		{ID: "bench", Type: content.TypeHardware, Title: "Bench power supply", Description: "Linear regulator build", URL: "/hardware/psu"},
	}
}

func ids(results []search.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.ID
	}
	return out
}

func TestIndex_QuantumCorMatchesBoth(t *testing.T) {
	idx := search.BuildIndex(fixtures())

	results := idx.Query("quantum cor", 0)

	assert.ElementsMatch(t, []string{"qc", "qp"}, ids(results))
}

func TestIndex_EmptyQuery(t *testing.T) {
	idx := search.BuildIndex(fixtures())

	assert.Empty(t, idx.Query("", 10))
	assert.Empty(t, idx.Query("   \t", 10))
	assert.NotNil(t, idx.Query("", 10))
}

func TestIndex_ScoresFiniteAndAscending(t *testing.T) {
	idx := search.BuildIndex(fixtures())

	for _, q := range []string{"quantum", "qantum", "go", "window", "power", "e", "verilog"} {
		results := idx.Query(q, 0)
		for i, r := range results {
			assert.False(t, math.IsNaN(r.Score) || math.IsInf(r.Score, 0), "query %q", q)
			assert.GreaterOrEqual(t, r.Score, 0.0)
			if i > 0 {
				assert.LessOrEqual(t, results[i-1].Score, r.Score, "query %q", q)
			}
			assert.NotEmpty(t, r.Matches)
		}
	}
}

func TestIndex_TypoTolerance(t *testing.T) {
	idx := search.BuildIndex(fixtures())

	results := idx.Query("qantum core", 0)

	require.NotEmpty(t, results)
	assert.Equal(t, "qc", results[0].Item.ID)
}

func TestIndex_TitleOutranksContent(t *testing.T) {
	items := []content.Item{
		{ID: "body", Type: content.TypeBlog, Title: "Unrelated", URL: "/a", Content: "limiter"},
		{ID: "title", Type: content.TypeBlog, Title: "Limiter", URL: "/b"},
	}
	results := search.BuildIndex(items).Query("limiter", 0)

	assert.Equal(t, []string{"title", "body"}, ids(results))
	assert.Equal(t, search.FieldTitle, results[0].Matches[0].Field)
	assert.Equal(t, search.FieldContent, results[1].Matches[0].Field)
}

func TestIndex_NoMatch(t *testing.T) {
	assert.Empty(t, search.BuildIndex(fixtures()).Query("xylophone", 0))
}

func TestIndex_Limit(t *testing.T) {
	assert.Len(t, search.BuildIndex(fixtures()).Query("quantum", 1), 1)
}

func TestIndex_SkipsMalformedAndDuplicates(t *testing.T) {
	items := append(fixtures(),
		content.Item{ID: "", Type: content.TypeBlog, Title: "No id", URL: "/x"},
		content.Item{ID: "notitle", Type: content.TypeBlog, URL: "/y"},
		content.Item{ID: "badtype", Type: "podcast", Title: "Pod", URL: "/z"},
		content.Item{ID: "qc", Type: content.TypeBlog, Title: "Duplicate", URL: "/dup"},
	)

	idx := search.BuildIndex(items)

	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, "Quantum Core", idx.Items()[0].Title)
}

func TestIndex_Deterministic(t *testing.T) {
	a := search.BuildIndex(fixtures()).Query("quantum", 0)
	b := search.BuildIndex(fixtures()).Query("quantum", 0)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Item.ID, b[i].Item.ID)
		assert.Equal(t, a[i].Score, b[i].Score)
	}
}

func TestIndex_TiesKeepIndexOrder(t *testing.T) {
	items := []content.Item{
		{ID: "second", Type: content.TypeBlog, Title: "Twin", URL: "/a"},
		{ID: "first", Type: content.TypeBlog, Title: "Twin", URL: "/b"},
	}

	assert.Equal(t, []string{"second", "first"}, ids(search.BuildIndex(items).Query("twin", 0)))
}

func TestGroupBy(t *testing.T) {
	idx := search.BuildIndex(fixtures())
	results := idx.Query("quantum", 0)
	results = append(results, idx.Query("power", 0)...)

	byType := search.GroupByType(results)
	assert.Len(t, byType["project"], 1)
	assert.Len(t, byType["research"], 1)
	assert.Len(t, byType["hardware"], 1)

	byCategory := search.GroupByCategory(results)
	assert.Len(t, byCategory["Silicon"], 1)
	assert.Len(t, byCategory["Business"], 1)
	require.Len(t, byCategory[search.OtherGroup], 1)
	assert.Equal(t, "bench", byCategory[search.OtherGroup][0].Item.ID)
}

func TestIndex_Suggest(t *testing.T) {
	idx := search.BuildIndex(fixtures())

	suggestions := idx.Suggest("qua", 5)
	require.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.Equal(t, []int{0, 1, 2}, s.MatchedIndexes)
	}

	assert.Empty(t, idx.Suggest("", 5))
	assert.Len(t, idx.Suggest("qua", 1), 1)
}

func TestIndex_SuggestPrefixFirst(t *testing.T) {
	items := []content.Item{
		{ID: "mid", Type: content.TypeBlog, Title: "A Power build", URL: "/a"},
		{ID: "pre", Type: content.TypeBlog, Title: "Power supply", URL: "/b"},
	}

	suggestions := search.BuildIndex(items).Suggest("pow", 0)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "pre", suggestions[0].Item.ID)
}

func TestIndex_LongQueryIsTruncated(t *testing.T) {
	items := make([]content.Item, 100)
	body := strings.Repeat("lorem ipsum ", 750)
	for i := range items {
		items[i] = content.Item{ID: fmt.Sprintf("post-%d", i), Type: content.TypeBlog, Title: fmt.Sprintf("Post %d", i), URL: "/blog/p", Content: body}
	}
	idx := search.BuildIndex(items)

	long := strings.Repeat("lorem ipsum ", 250)
	head := string([]rune(long)[:search.MaxPatternRunes])

	start := time.Now()
	got := idx.Query(long, 0)
	elapsed := time.Since(start)

	assert.Equal(t, ids(idx.Query(head, 0)), ids(got))
	assert.Len(t, got, len(items))
	assert.Less(t, elapsed, 5*time.Second)
}
