package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/research-hub/internal/model"
)

// render writes v in the --format encoding. text is used for --format text;
// a nil text falls back to JSON.
func render(w io.Writer, v any, text func(io.Writer)) {
	switch strings.ToLower(formatFlag) {
	case "yaml", "yml":
		b, err := yaml.Marshal(v)
		if err != nil {
			exitErr("encode yaml", err)
		}
		fmt.Fprint(w, string(b))
	case "text":
		if text != nil {
			text(w)
			return
		}
		fallthrough
	default:
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(w, string(b))
	}
}

func out(v any, text func(io.Writer)) {
	render(os.Stdout, v, text)
}

func ok(fields map[string]any) {
	fields["ok"] = true
	out(fields, func(w io.Writer) {
		for _, k := range sortedKeys(fields) {
			if k != "ok" {
				fmt.Fprintf(w, "%s: %v\n", k, fields[k])
			}
		}
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func recordLine(r model.Research) string {
	squad := r.SquadLabel()
	if squad == "" {
		squad = "-"
	}
	return fmt.Sprintf("%-36s  %s  %s %-9s  %-22s  %s", r.ID, r.Date, model.CountryEmoji[r.Country], r.Country.Label(), squad, r.Title)
}

func printRecords(records []model.Research) func(io.Writer) {
	return func(w io.Writer) {
		for _, r := range records {
			fmt.Fprintln(w, recordLine(r))
		}
	}
}

func printRecord(r model.Research) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintf(w, "%s\n%s\n\n", r.Title, strings.Repeat("=", len([]rune(r.Title))))
		fmt.Fprintf(w, "ID:          %s\n", r.ID)
		fmt.Fprintf(w, "Date:        %s\n", r.Date)
		fmt.Fprintf(w, "Country:     %s %s\n", model.CountryEmoji[r.Country], r.Country.Label())
		if r.Squad != nil {
			fmt.Fprintf(w, "Squad:       %s\n", r.Squad.Label())
		}
		if r.Researcher != nil {
			fmt.Fprintf(w, "Researcher:  %s\n", *r.Researcher)
		}
		fmt.Fprintf(w, "Methodology: %s\n", r.Methodology)
		fmt.Fprintf(w, "Team:        %s\n", strings.Join(r.Team, ", "))
		fmt.Fprintf(w, "Tags:        %s\n", strings.Join(r.Tags, ", "))
		fmt.Fprintf(w, "\n%s\n", r.Description)
		if len(r.KeyLearnings) > 0 {
			fmt.Fprintln(w, "\nKey learnings:")
			for i, k := range r.KeyLearnings {
				fmt.Fprintf(w, "  %d. %s\n", i+1, k)
			}
		}
		if r.PresentationURL != nil {
			fmt.Fprintf(w, "\nPresentation: %s\n", *r.PresentationURL)
		}
		for _, l := range r.UsefulLinks {
			fmt.Fprintf(w, "Link: %s <%s>\n", l.Name, l.URL)
		}
	}
}
