package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a study",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	if !a.repo.Delete(cmd.Context(), args[0]) {
		exitErr("rm", fmt.Errorf("%w: %s", store.ErrNotFound, args[0]))
	}
	ok(map[string]any{"deleted": args[0]})
}
