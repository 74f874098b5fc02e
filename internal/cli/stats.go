package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/slot"
	"github.com/rcliao/research-hub/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

type statsResult struct {
	store.Stats `yaml:",inline"`
	DBPath       string         `json:"db_path" yaml:"db_path"`
	SlotBytes    map[string]int `json:"slot_bytes" yaml:"slot_bytes"`
	QuotaBytes   int            `json:"quota_bytes" yaml:"quota_bytes"`
}

func runStats(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()

	ctx := cmd.Context()
	res := statsResult{
		Stats:      *a.repo.Stats(),
		DBPath:     a.slots.Path(),
		SlotBytes:  map[string]int{},
		QuotaBytes: a.cfg.DB.QuotaBytes,
	}
	for _, key := range []string{slot.KeyResearch, slot.KeyDeletedSuggestion, slot.KeyCustomSuggestion, slot.KeySettings} {
		res.SlotBytes[key] = a.slots.Size(ctx, key)
	}

	out(res, func(w io.Writer) {
		st := res.Stats
		fmt.Fprintf(w, "Studies:       %d (%d internal, %d external)\n", st.Total, st.Internal, st.External)
		fmt.Fprintf(w, "Key learnings: %d\n", st.KeyLearnings)
		for _, g := range []struct {
			name   string
			counts []store.GroupCount
		}{{"Countries", st.Countries}, {"Squads", st.Squads}, {"Methodologies", st.Methodologies}} {
			fmt.Fprintf(w, "\n%s:\n", g.name)
			for _, c := range g.counts {
				fmt.Fprintf(w, "  %4d  %s\n", c.Count, c.Name)
			}
		}
		fmt.Fprintf(w, "\nDatabase: %s\n", res.DBPath)
		for _, k := range sortedKeys(res.SlotBytes) {
			fmt.Fprintf(w, "  %-24s %d bytes\n", k, res.SlotBytes[k])
		}
	})
}
