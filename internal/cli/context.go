package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/insights"
	"github.com/rcliao/research-hub/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context <country> [country...]",
		Short: "Assemble the research context sent for insights",
		Long:  "Group studies by country, newest first, and greedily pack them into a character budget.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runContext,
	}

	cmd.Flags().IntP("budget", "b", insights.DefaultBudget, "Max characters in output")

	RootCmd.AddCommand(cmd)
}

func parseCountries(args []string) []model.Country {
	countries := make([]model.Country, 0, len(args))
	for _, arg := range args {
		for _, s := range splitList(arg) {
			c, err := parseCountry(s)
			if err != nil {
				exitErr("country", err)
			}
			countries = append(countries, c)
		}
	}
	return countries
}

func runContext(cmd *cobra.Command, args []string) {
	budget, _ := cmd.Flags().GetInt("budget")
	countries := parseCountries(args)

	a := mustOpen(cmd)
	defer a.Close()

	pack := insights.BuildContext(a.repo.All(), countries, budget)
	out(pack, func(w io.Writer) { fmt.Fprintln(w, pack.String()) })
}
