package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/query"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search studies by keyword",
		Long:  "Search titles, descriptions, team, tags, methodology, learnings, squads and researchers.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	addFilterFlags(cmd)
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	f := readFilter(cmd)
	f.Search = strings.Join(args, " ")
	limit, _ := cmd.Flags().GetInt("limit")

	a := mustOpen(cmd)
	defer a.Close()

	results := query.Apply(a.repo.All(), f)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	out(results, printRecords(results))
}
