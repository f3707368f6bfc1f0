package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/scengen/pkg/report"
)

var diffCmd = &cobra.Command{
	Use:   "diff [baseline.json] [current.json]",
	Short: "Compare two resolution snapshots",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		baseline, err := report.LoadSnapshot(args[0])
		if err != nil {
			fmt.Printf("Error loading baseline: %v\n", err)
			return
		}
		current, err := report.LoadSnapshot(args[1])
		if err != nil {
			fmt.Printf("Error loading snapshot: %v\n", err)
			return
		}

		d := report.Diff(baseline, current)
		fmt.Printf("Comparing %s (%s) with %s (%s)\n", baseline.Scenario, baseline.RunID, current.Scenario, current.RunID)
		if len(d.Added) == 0 && len(d.Removed) == 0 {
			fmt.Printf("No changes: %d module(s) in both runs.\n", len(d.Kept))
			return
		}
		for _, e := range d.Added {
			fmt.Printf("+ [%s] %s\n", e.Type, e.Path)
		}
		for _, e := range d.Removed {
			fmt.Printf("- [%s] %s\n", e.Type, e.Path)
		}
		fmt.Printf("\n%d added, %d removed, %d kept\n", len(d.Added), len(d.Removed), len(d.Kept))
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
