package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import studies from a JSON export",
		Long:  "Import studies from a file or stdin. By default records are added with fresh ids; --replace swaps the whole catalog.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	cmd.Flags().Bool("replace", false, "Replace the catalog instead of merging")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	replace, _ := cmd.Flags().GetBool("replace")

	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open "+args[0], err)
		}
		defer f.Close()
		r = f
	}

	mode := store.ImportMerge
	if replace {
		mode = store.ImportReplace
	}
	n, err := a.repo.Import(cmd.Context(), r, mode)
	if err != nil {
		exitErr("import", err)
	}
	ok(map[string]any{"imported": n, "total": a.repo.Len()})
}
