package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one study",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()

	rec, ok := a.repo.Lookup(args[0])
	if !ok {
		exitErr("get", fmt.Errorf("%w: %s", store.ErrNotFound, args[0]))
	}
	out(rec, printRecord(rec))
}
