package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/query"
)

func init() {
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recently submitted studies",
		Run:   runLatest,
	}

	cmd.Flags().String("tab", "all", "Tab: all, internal or external")
	cmd.Flags().IntP("limit", "l", query.DefaultLatest, "How many to show")

	RootCmd.AddCommand(cmd)
}

func runLatest(cmd *cobra.Command, args []string) {
	tabStr, _ := cmd.Flags().GetString("tab")
	limit, _ := cmd.Flags().GetInt("limit")
	tab, err := query.ParseTab(tabStr)
	if err != nil {
		exitErr("latest", err)
	}

	a := mustOpen(cmd)
	defer a.Close()

	latest := query.Latest(query.Apply(a.repo.All(), query.Filter{Tab: tab}), limit)
	out(latest, printRecords(latest))
}
