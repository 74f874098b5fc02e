package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/query"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Count tags across studies",
		Run:   runTags,
	}

	addFilterFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runTags(cmd *cobra.Command, args []string) {
	f := readFilter(cmd)
	f.Tag = ""

	a := mustOpen(cmd)
	defer a.Close()

	tags := query.Tags(query.Apply(a.repo.All(), f))
	out(tags, func(w io.Writer) {
		for _, t := range tags {
			fmt.Fprintf(w, "%4d  %s\n", t.Count, t.Tag)
		}
	})
}
