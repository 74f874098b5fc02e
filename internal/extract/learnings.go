package extract

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rcliao/research-hub/internal/sentence"
)

// MaxLearnings is how many sentences the local heuristic keeps.
const MaxLearnings = 4

var researchKeywords = []string{
	"consumers", "consumer", "users", "user", "customers", "customer",
	"prefer", "preferred", "behavior", "behaviour", "insight", "insights",
	"majority", "most", "significant", "key", "main", "primary",
	"increase", "decrease", "grew", "declined", "improved",
	"found", "shows", "indicates", "reveals", "suggests",
	"percent", "%", "rate", "adoption", "usage",
	"pain point", "opportunity", "barrier", "challenge",
	"trust", "satisfaction", "engagement", "awareness",
	"digital", "mobile", "payment", "financial", "bank",
}

// KeyLearnings picks the most insight-like sentences from text without
// calling any service. Results keep document order. Text with no usable
// sentence yields an empty slice.
func KeyLearnings(text string) []string {
	var candidates []string
	for _, s := range sentence.Split(text) {
		if utf8.RuneCountInString(s) > 20 && sentence.Words(s) >= 4 {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return []string{}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(candidates))
	for i, s := range candidates {
		ranked[i] = scored{idx: i, score: score(s, i, len(candidates))}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	if len(ranked) > MaxLearnings {
		ranked = ranked[:MaxLearnings]
	}

	keep := make([]bool, len(candidates))
	for _, r := range ranked {
		keep[r.idx] = true
	}
	out := make([]string, 0, len(ranked))
	for i, s := range candidates {
		if keep[i] {
			out = append(out, s)
		}
	}
	return out
}

// score favours early, mid-length sentences with numbers and research vocabulary.
func score(s string, i, n int) float64 {
	lower := strings.ToLower(s)
	v := (1 - float64(i)/float64(n)) * 2

	words := sentence.Words(s)
	switch {
	case words >= 8 && words <= 40:
		v += 2
	case words >= 5:
		v++
	}
	for _, kw := range researchKeywords {
		if strings.Contains(lower, kw) {
			v++
		}
	}
	if sentence.HasDigit(s) {
		v += 1.5
	}
	if words < 5 {
		v -= 3
	}
	return v
}
