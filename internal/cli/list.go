package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/model"
	"github.com/rcliao/research-hub/internal/query"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List research studies",
		Run:   runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("search", "", "Free-text search")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = all)")

	RootCmd.AddCommand(cmd)
}

type listResult struct {
	Latest  []model.Research `json:"latest,omitempty" yaml:"latest,omitempty"`
	Count   int              `json:"count" yaml:"count"`
	Results []model.Research `json:"results" yaml:"results"`
}

func runList(cmd *cobra.Command, args []string) {
	f := readFilter(cmd)
	f.Search, _ = cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")

	a := mustOpen(cmd)
	defer a.Close()

	all := a.repo.All()
	res := listResult{Latest: query.LatestView(all, f), Results: query.Apply(all, f)}
	res.Count = len(res.Results)
	if limit > 0 && len(res.Results) > limit {
		res.Results = res.Results[:limit]
	}

	out(res, func(w io.Writer) {
		if len(res.Latest) > 0 {
			fmt.Fprintln(w, "Latest:")
			printRecords(res.Latest)(w)
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%d studies\n", res.Count)
		printRecords(res.Results)(w)
	})
}
