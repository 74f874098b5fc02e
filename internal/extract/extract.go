// Package extract turns research documents into submission fields, using a
// language model when one is configured and a local heuristic otherwise.
package extract

import (
	"context"
	"strings"

	"github.com/rcliao/research-hub/internal/llm"
	"github.com/rcliao/research-hub/internal/model"
)

// ErrNoAPIKey is returned when the model path is used without a key.
var ErrNoAPIKey = llm.ErrNoAPIKey

// Fields are the values an extractor could infer. Every field is optional;
// empty means "not found".
type Fields struct {
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Date         string   `json:"date,omitempty"`
	Country      string   `json:"country,omitempty"`
	Squad        string   `json:"squad,omitempty"`
	Methodology  string   `json:"methodology,omitempty"`
	Team         []string `json:"team,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	KeyLearnings []string `json:"keyLearnings,omitempty"`
}

// Empty reports whether nothing useful was returned.
func (f Fields) Empty() bool {
	return f.Description == "" && len(f.Tags) == 0 && len(f.KeyLearnings) == 0
}

// Request is the material to extract from. Title is used when Text is empty.
type Request struct {
	Text  string
	Title string
}

// Extractor infers submission fields from a document.
type Extractor interface {
	Extract(ctx context.Context, req Request) (Fields, error)
}

// Sanitize trims every value and drops anything that is not a valid
// choice. External squads are never assigned automatically.
func Sanitize(f Fields) Fields {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Date = strings.TrimSpace(f.Date)
	f.Methodology = strings.TrimSpace(f.Methodology)

	if c := model.Country(strings.TrimSpace(f.Country)); c.Valid() {
		f.Country = string(c)
	} else {
		f.Country = ""
	}
	if s := model.Squad(strings.TrimSpace(f.Squad)); s.Valid() && !s.External() {
		f.Squad = string(s)
	} else {
		f.Squad = ""
	}

	f.Team = compact(f.Team)
	f.Tags = compact(f.Tags)
	f.KeyLearnings = compact(f.KeyLearnings)
	return f
}

func compact(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" && s != "null" {
			out = append(out, s)
		}
	}
	return out
}
