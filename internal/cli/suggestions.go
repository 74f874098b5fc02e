package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/model"
	"github.com/rcliao/research-hub/internal/suggest"
)

func init() {
	sugCmd := &cobra.Command{
		Use:     "suggestions",
		Aliases: []string{"sug"},
		Short:   "Planned studies not yet submitted",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List pending suggestions grouped by month",
		Run:   runSuggestionsList,
	}
	listCmd.Flags().StringP("squad", "s", "", "Only this squad")

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a custom suggestion",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSuggestionsAdd,
	}
	addCmd.Flags().StringP("question", "q", "", "Research question")
	addCmd.Flags().StringP("squad", "s", "", "Squad key (default cross-gba)")
	addCmd.Flags().StringP("researcher", "r", "", "Researcher (default "+suggest.DefaultResearcher+")")
	addCmd.Flags().StringP("countries", "c", "", "Comma-separated countries (default brasil)")
	addCmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	addCmd.Flags().String("month", "", "Planned month, e.g. \"Mar 2026\" or \"Q3 2026\"")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Hide a suggestion",
		Args:  cobra.ExactArgs(1),
		Run:   runSuggestionsRm,
	}

	sugCmd.AddCommand(listCmd, addCmd, rmCmd)
	RootCmd.AddCommand(sugCmd)
}

func runSuggestionsList(cmd *cobra.Command, args []string) {
	squadStr, _ := cmd.Flags().GetString("squad")
	sq, err := parseSquad(squadStr)
	if err != nil {
		exitErr("suggestions", err)
	}
	var squad *model.Squad
	if sq != "" {
		squad = &sq
	}

	a := mustOpen(cmd)
	defer a.Close()

	groups := a.suggestions.Pending(a.repo.Titles(), squad)
	out(groups, func(w io.Writer) {
		for _, g := range groups {
			fmt.Fprintf(w, "%s (%d)\n", g.Label, len(g.Items))
			for _, s := range g.Items {
				fmt.Fprintf(w, "  %-24s  %-22s  %s\n", s.ID, s.Squad.Label(), s.Title)
			}
		}
	})
}

func runSuggestionsAdd(cmd *cobra.Command, args []string) {
	question, _ := cmd.Flags().GetString("question")
	squadStr, _ := cmd.Flags().GetString("squad")
	researcher, _ := cmd.Flags().GetString("researcher")
	countriesStr, _ := cmd.Flags().GetString("countries")
	tagsStr, _ := cmd.Flags().GetString("tags")
	month, _ := cmd.Flags().GetString("month")

	var countries []model.Country
	for _, c := range splitList(countriesStr) {
		country, err := parseCountry(c)
		if err != nil {
			exitErr("suggestions add", err)
		}
		countries = append(countries, country)
	}

	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	s, err := a.suggestions.AddCustom(cmd.Context(), suggest.CustomInput{
		Title:      strings.Join(args, " "),
		Question:   question,
		Squad:      model.Squad(strings.ToLower(strings.TrimSpace(squadStr))),
		Researcher: researcher,
		Countries:  countries,
		Tags:       splitList(tagsStr),
		Month:      month,
	})
	if err != nil {
		exitErr("suggestions add", err)
	}
	out(s, nil)
}

func runSuggestionsRm(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	if _, found := a.suggestions.Lookup(args[0]); !found {
		exitErr("suggestions rm", fmt.Errorf("unknown suggestion %q", args[0]))
	}
	a.suggestions.SoftDelete(cmd.Context(), args[0])
	ok(map[string]any{"hidden": args[0]})
}
