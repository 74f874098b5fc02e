package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all studies as JSON",
		Run:   runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")

	a := mustOpen(cmd)
	defer a.Close()

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			exitErr("create "+output, err)
		}
		defer f.Close()
		w = f
	}
	if err := a.repo.Export(w); err != nil {
		exitErr("export", err)
	}
}
