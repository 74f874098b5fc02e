package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/extract"
	"github.com/rcliao/research-hub/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Preview the fields auto-extracted from a report",
		Long:  "Read a report and show the submission fields a model (or the local heuristic) would fill in. Nothing is stored.",
		Args:  cobra.ExactArgs(1),
		Run:   runExtract,
	}

	cmd.Flags().String("title", "", "Study title, used when the file has no text")

	RootCmd.AddCommand(cmd)
}

func runExtract(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")

	a := mustOpen(cmd)
	defer a.Close()

	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	if title == "" {
		title = base
	}
	res, err := a.autoFill(cmd.Context(), args[0], model.Input{Title: title})
	if err != nil {
		exitErr("extract", err)
	}

	out(res, func(w io.Writer) {
		fmt.Fprintf(w, "Source: %s\n", res.Source)
		if res.Warning != "" {
			fmt.Fprintf(w, "Warning: %s\n", res.Warning)
		}
		in := res.Input
		fmt.Fprintf(w, "\nTitle:       %s\nDate:        %s\nCountry:     %s\nMethodology: %s\n", in.Title, in.Date, in.Country.Label(), in.Methodology)
		if in.Squad != nil {
			fmt.Fprintf(w, "Squad:       %s\n", in.Squad.Label())
		}
		fmt.Fprintf(w, "Team:        %s\nTags:        %s\n\n%s\n", strings.Join(in.Team, ", "), strings.Join(in.Tags, ", "), in.Description)
		if res.Source == extract.SourceNone {
			return
		}
		fmt.Fprintln(w, "\nKey learnings:")
		for i, k := range in.KeyLearnings {
			fmt.Fprintf(w, "  %d. %s\n", i+1, k)
		}
	})
}
