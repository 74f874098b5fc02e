package insights

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rcliao/research-hub/internal/model"
)

// DefaultBudget is the context size in characters when none is given.
const DefaultBudget = 24000

// Section is one country's block of studies.
type Section struct {
	Country model.Country `json:"country"`
	Total   int           `json:"total"`
	Entries []string      `json:"entries"`
	Excerpt bool          `json:"excerpt,omitempty"`
}

// Pack is the assembled prompt context.
type Pack struct {
	Budget   int       `json:"budget"`
	Used     int       `json:"used"`
	Sections []Section `json:"sections"`
}

// Empty reports whether no study made it into the pack.
func (p *Pack) Empty() bool {
	for _, s := range p.Sections {
		if len(s.Entries) > 0 {
			return false
		}
	}
	return true
}

// String renders the pack as markdown, one section per country.
func (p *Pack) String() string {
	var blocks []string
	for _, s := range p.Sections {
		if len(s.Entries) == 0 {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("## %s (%d studies)\n%s", s.Country.Label(), s.Total, strings.Join(s.Entries, "\n")))
	}
	return strings.Join(blocks, "\n\n")
}

func entry(r model.Research) string {
	squad := "N/A"
	if r.Squad != nil {
		squad = r.Squad.Label()
	}
	return fmt.Sprintf("- %q (%s, %s)\n  Description: %s\n  Key learnings: %s",
		r.Title, squad, r.Date, r.Description, strings.Join(r.KeyLearnings, "; "))
}

// BuildContext packs studies for countries, in the given order, into budget
// characters. Within a country the newest studies go first. When an entry
// does not fit, it is cut down if at least 100 characters remain and
// packing stops.
func BuildContext(records []model.Research, countries []model.Country, budget int) *Pack {
	if budget <= 0 {
		budget = DefaultBudget
	}
	pack := &Pack{Budget: budget, Sections: []Section{}}

	used := 0
	full := false
	for _, c := range countries {
		var matched []model.Research
		for _, r := range records {
			if r.Country == c {
				matched = append(matched, r)
			}
		}
		if len(matched) == 0 {
			continue
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})

		sec := Section{Country: c, Total: len(matched)}
		used += len(fmt.Sprintf("## %s (%d studies)\n", c.Label(), sec.Total))
		for _, r := range matched {
			if full {
				break
			}
			e := entry(r)
			if used+len(e) <= budget {
				sec.Entries = append(sec.Entries, e)
				used += len(e) + 1
			} else if remaining := budget - used; remaining >= 100 {
				sec.Entries = append(sec.Entries, cut(e, remaining)+"...")
				sec.Excerpt = true
				used += remaining
				full = true
			} else {
				full = true
			}
		}
		pack.Sections = append(pack.Sections, sec)
		if full {
			break
		}
	}

	pack.Used = used
	return pack
}

// cut shortens s to at most n bytes without splitting a rune.
func cut(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
