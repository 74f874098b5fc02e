package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a completed study",
		Long: `Submit a completed study. Fields come from flags; --from-suggestion pre-fills
from a planned study and --file reads a report to fill in the rest.`,
		Run: runSubmit,
	}

	addRecordFlags(cmd)
	cmd.Flags().String("file", "", "Report (.pdf, .txt, .md) to auto-extract fields from")
	cmd.Flags().String("from-suggestion", "", "Pre-fill from a planned study id")

	RootCmd.AddCommand(cmd)
}

// addRecordFlags registers the editable fields shared by submit and edit.
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Title")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("date", "", "Completion date (YYYY-MM-DD)")
	cmd.Flags().StringP("country", "c", "", "Country: brasil, mexico, usa, colombia, global")
	cmd.Flags().StringP("squad", "s", "", "Squad key")
	cmd.Flags().StringP("researcher", "r", "", "Researcher")
	cmd.Flags().StringP("methodology", "m", "", "Methodology")
	cmd.Flags().String("team", "", "Comma-separated team members")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().StringArray("learning", nil, "Key learning (repeatable)")
	cmd.Flags().String("presentation-url", "", "Link to the presentation")
	cmd.Flags().String("ppt-file", "", "Presentation file to attach")
	cmd.Flags().String("plan-file", "", "Research plan file to attach")
	cmd.Flags().StringArray("screenshot", nil, "Presentation screenshot image to embed (repeatable, max 3)")
	cmd.Flags().StringArray("link", nil, "Useful link as name=url (repeatable)")
}

func runSubmit(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")
	fromSuggestion, _ := cmd.Flags().GetString("from-suggestion")

	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	in := model.Input{
		Country:     model.CountryBrasil,
		Date:        time.Now().Format(model.DateLayout),
		Methodology: "Qualitative interviews",
	}
	if fromSuggestion != "" {
		s, ok := a.suggestions.Lookup(fromSuggestion)
		if !ok {
			exitErr("submit", fmt.Errorf("unknown suggestion %q", fromSuggestion))
		}
		in = prefill(in, s)
	}

	in = readPatch(cmd).ApplyInput(in)

	var warning string
	if file != "" {
		res, err := a.autoFill(cmd.Context(), file, in)
		if err != nil {
			exitErr("read "+file, err)
		}
		in, warning = res.Input, res.Warning
		a.logger.Debug("auto-filled submission")
	}

	created, err := a.repo.Create(cmd.Context(), in)
	if err != nil {
		exitErr("submit", err)
	}
	if warning != "" {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}
	out(created, printRecord(created))
}

// prefill copies a planned study into a blank submission.
func prefill(in model.Input, s model.Suggestion) model.Input {
	in.Title = s.Title
	in.Description = s.Question
	in.Squad = model.SquadPtr(s.Squad)
	if r := strings.TrimSpace(s.Researcher); r != "" {
		in.Researcher = model.StringPtr(r)
	}
	if len(s.Countries) > 0 {
		in.Country = s.Countries[0]
	}
	in.Tags = append([]string(nil), s.Tags...)
	return in
}
