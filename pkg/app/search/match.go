package search

import (
	"strings"
	"unicode"
)

// normalize lower-cases s and collapses runs of whitespace into one space.
func normalize(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace), " ")
}

func tokenCount(s string) int {
	n := len(strings.Fields(s))
	if n == 0 {
		return 1
	}
	return n
}

// substringDistance returns the smallest edit distance between pattern and
// any substring of text. Leading and trailing text is free, so an exact
// occurrence anywhere in text scores 0.
func substringDistance(pattern, text []rune) int {
	m := len(pattern)
	if m == 0 {
		return 0
	}
	prev := make([]int, len(text)+1)
	curr := make([]int, len(text)+1)
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= len(text); j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	best := prev[0]
	for _, d := range prev[1:] {
		if d < best {
			best = d
		}
	}
	return best
}

// fieldScore is the normalised substring distance in [0, 1] (clamped), where
// 0 is an exact occurrence.
func fieldScore(pattern, text []rune) float64 {
	if len(pattern) == 0 {
		return 1
	}
	s := float64(substringDistance(pattern, text)) / float64(len(pattern))
	if s > 1 {
		return 1
	}
	return s
}
