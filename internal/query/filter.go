// Package query filters and ranks research records for browsing.
//
// Everything here is a pure function over a snapshot from the repository;
// nothing touches storage.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcliao/research-hub/internal/model"
)

// Tab partitions the catalog into internal and external research.
type Tab string

const (
	TabAll      Tab = ""
	TabInternal Tab = "internal"
	TabExternal Tab = "external"
)

// ParseTab accepts the CLI spelling of a tab.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TabAll, nil
	case "internal", "gba":
		return TabInternal, nil
	case "external":
		return TabExternal, nil
	}
	return TabAll, fmt.Errorf("unknown tab %q (want all, internal or external)", s)
}

// DefaultLatest is how many records the latest view shows.
const DefaultLatest = 3

// Filter is the browsing state. The zero value matches every record.
type Filter struct {
	Tab     Tab
	Country model.Country
	Squad   model.Squad
	Tag     string
	Search  string
}

// Active reports whether any narrowing filter besides the tab is set.
func (f Filter) Active() bool {
	return f.Search != "" || f.Country != "" || f.Squad != "" || f.Tag != ""
}

// WithTab switches tab. Squad and tag are per-tab and reset on switch.
func (f Filter) WithTab(tab Tab) Filter {
	if f.Tab == tab {
		return f
	}
	f.Tab = tab
	f.Squad = ""
	f.Tag = ""
	return f
}

// Match reports whether r satisfies every predicate of f.
func (f Filter) Match(r model.Research) bool {
	return f.matchTab(r) &&
		(f.Country == "" || r.Country == f.Country) &&
		(f.Squad == "" || (r.Squad != nil && *r.Squad == f.Squad)) &&
		f.matchTag(r) &&
		f.matchSearch(r)
}

func (f Filter) matchTab(r model.Research) bool {
	switch f.Tab {
	case TabInternal:
		return !r.IsExternal()
	case TabExternal:
		return r.IsExternal()
	}
	return true
}

func (f Filter) matchTag(r model.Research) bool {
	if f.Tag == "" {
		return true
	}
	for _, t := range r.Tags {
		if strings.EqualFold(t, f.Tag) {
			return true
		}
	}
	return false
}

func (f Filter) matchSearch(r model.Research) bool {
	q := strings.ToLower(f.Search)
	if q == "" {
		return true
	}
	has := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }
	anyOf := func(ss []string) bool {
		for _, s := range ss {
			if has(s) {
				return true
			}
		}
		return false
	}

	return has(r.Title) ||
		has(r.Description) ||
		anyOf(r.Team) ||
		anyOf(r.Tags) ||
		has(string(r.Country)) ||
		has(r.Date) ||
		has(r.Methodology) ||
		anyOf(r.KeyLearnings) ||
		(r.Squad != nil && has(r.Squad.Label())) ||
		(r.Researcher != nil && has(*r.Researcher))
}

// Apply returns the records matching f, in their original order.
func Apply(records []model.Research, f Filter) []model.Research {
	out := make([]model.Research, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the n most recently created records.
func Latest(records []model.Research, n int) []model.Research {
	sorted := append([]model.Research(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// LatestView is the highlight strip shown above the list. It is hidden
// while a narrowing filter is active.
func LatestView(records []model.Research, f Filter) []model.Research {
	if f.Active() {
		return nil
	}
	return Latest(Apply(records, f), DefaultLatest)
}

// TagCount is one entry of the tag cloud.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Tags counts tags across records. Tags differing only in case are merged
// under the spelling seen first.
func Tags(records []model.Research) []TagCount {
	idx := map[string]int{}
	var out []TagCount
	for _, r := range records {
		for _, t := range r.Tags {
			key := strings.ToLower(strings.TrimSpace(t))
			if key == "" {
				continue
			}
			if i, ok := idx[key]; ok {
				out[i].Count++
				continue
			}
			idx[key] = len(out)
			out = append(out, TagCount{Tag: strings.TrimSpace(t), Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Tag) < strings.ToLower(out[j].Tag)
	})
	return out
}
