package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List countries with their study counts",
		Run:   runCountries,
	}

	RootCmd.AddCommand(cmd)
}

type countryRow struct {
	Key     model.Country `json:"key" yaml:"key"`
	Name    string        `json:"name" yaml:"name"`
	Flag    string        `json:"flag" yaml:"flag"`
	Studies int           `json:"studies" yaml:"studies"`
}

func runCountries(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()

	counts := map[model.Country]int{}
	for _, r := range a.repo.All() {
		counts[r.Country]++
	}
	flags := a.settings.CountryFlags(cmd.Context())

	rows := make([]countryRow, 0, len(model.Countries))
	for _, c := range model.Countries {
		flag, ok := flags[c.Label()]
		if !ok {
			flag = model.CountryEmoji[c]
		}
		rows = append(rows, countryRow{Key: c, Name: c.Label(), Flag: flag, Studies: counts[c]})
	}

	out(rows, func(w io.Writer) {
		for _, r := range rows {
			fmt.Fprintf(w, "%s %-10s %-9s %d\n", r.Flag, r.Name, r.Key, r.Studies)
		}
	})
}
