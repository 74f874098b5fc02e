package store

import (
	"sort"
	"strings"

	"github.com/rcliao/research-hub/internal/query"
)

// Stats holds catalog statistics.
type Stats struct {
	Total         int          `json:"total"`
	Internal      int          `json:"internal"`
	External      int          `json:"external"`
	Countries     []GroupCount `json:"countries"`
	Squads        []GroupCount `json:"squads"`
	Methodologies []GroupCount `json:"methodologies"`
	Tags          []GroupCount `json:"tags"`
	KeyLearnings  int          `json:"key_learnings"`
}

// GroupCount is the number of records sharing a value.
type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats returns per-country, per-squad, per-methodology and per-tag counts.
func (r *Repository) Stats() *Stats {
	records := r.All()
	st := &Stats{Total: len(records)}

	countries := map[string]int{}
	squads := map[string]int{}
	methods := map[string]int{}
	for _, rec := range records {
		if rec.IsExternal() {
			st.External++
		} else {
			st.Internal++
		}
		countries[rec.Country.Label()]++
		if rec.Squad != nil {
			squads[rec.Squad.Label()]++
		} else {
			squads["Unassigned"]++
		}
		if m := strings.TrimSpace(rec.Methodology); m != "" {
			methods[m]++
		}
		st.KeyLearnings += len(rec.KeyLearnings)
	}

	st.Countries = sortedCounts(countries)
	st.Squads = sortedCounts(squads)
	st.Methodologies = sortedCounts(methods)
	for _, t := range query.Tags(records) {
		st.Tags = append(st.Tags, GroupCount{Name: t.Tag, Count: t.Count})
	}
	return st
}

func sortedCounts(m map[string]int) []GroupCount {
	out := make([]GroupCount, 0, len(m))
	for name, n := range m {
		out = append(out, GroupCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
