package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the seed studies and forget suggestion changes",
		Run:   runReset,
	}

	cmd.Flags().Bool("yes", false, "Confirm the reset")
	cmd.MarkFlagRequired("yes")

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	ctx := cmd.Context()
	a.repo.Reset(ctx)
	a.suggestions.Reset(ctx)
	ok(map[string]any{"studies": a.repo.Len()})
}
