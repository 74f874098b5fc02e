package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rcliao/research-hub/internal/model"
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid research: " + strings.Join(parts, "; ")
}

// Field order used when reporting the first problem to a user.
var fieldOrder = []string{"title", "description", "date", "country", "squad", "methodology", "team", "tags", "pptScreenshots"}

// First returns the first offending field in form order.
func (e *ValidationError) First() string {
	for _, f := range fieldOrder {
		if _, ok := e.Fields[f]; ok {
			return f
		}
	}
	return ""
}

// Normalize trims the submission the way the form does before saving.
func Normalize(in model.Input) model.Input {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Date = strings.TrimSpace(in.Date)
	in.Methodology = strings.TrimSpace(in.Methodology)
	in.Team = nonBlank(in.Team)
	in.Tags = nonBlank(in.Tags)
	in.KeyLearnings = nonBlank(in.KeyLearnings)
	if in.KeyLearnings == nil {
		in.KeyLearnings = []string{}
	}

	if in.Squad != nil && *in.Squad == "" {
		in.Squad = nil
	}
	in.Researcher = trimOptional(in.Researcher)
	in.PresentationURL = trimOptional(in.PresentationURL)

	var links []model.UsefulLink
	for _, l := range in.UsefulLinks {
		l.Name, l.URL = strings.TrimSpace(l.Name), strings.TrimSpace(l.URL)
		if l.Name != "" && l.URL != "" {
			links = append(links, l)
		}
	}
	in.UsefulLinks = links

	if len(in.PPTScreenshots) > model.MaxScreenshots {
		in.PPTScreenshots = in.PPTScreenshots[:model.MaxScreenshots]
	}
	return in
}

// Validate checks a normalized submission.
func Validate(in model.Input) error {
	fields := map[string]string{}

	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required."
	}
	if strings.TrimSpace(in.Description) == "" {
		fields["description"] = "Description / research question is required."
	}
	if d := strings.TrimSpace(in.Date); d == "" {
		fields["date"] = "Date is required."
	} else if _, err := time.Parse(model.DateLayout, d); err != nil {
		fields["date"] = "Date must be in YYYY-MM-DD format."
	}
	if !in.Country.Valid() {
		fields["country"] = fmt.Sprintf("Unknown country %q.", in.Country)
	}
	if in.Squad != nil && !in.Squad.Valid() {
		fields["squad"] = fmt.Sprintf("Unknown squad %q.", *in.Squad)
	}
	if strings.TrimSpace(in.Methodology) == "" {
		fields["methodology"] = "Methodology is required."
	}
	if len(nonBlank(in.Team)) == 0 {
		fields["team"] = "Add at least one team member."
	}
	if len(nonBlank(in.Tags)) == 0 {
		fields["tags"] = "Add at least one tag."
	}
	if len(in.PPTScreenshots) > model.MaxScreenshots {
		fields["pptScreenshots"] = fmt.Sprintf("At most %d screenshots.", model.MaxScreenshots)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidatePatch checks the record that applying p to rec would produce.
func ValidatePatch(rec model.Research, p model.Patch) error {
	return Validate(Normalize(model.InputFrom(p.Apply(rec.Clone()))))
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func trimOptional(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
