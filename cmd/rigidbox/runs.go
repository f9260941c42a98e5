package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rigidbox/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show the run log",
	Long: `Display recent runs, newest first, for one scene or all scenes.

Examples:
  rigidbox runs
  rigidbox runs drop --limit 5
  rigidbox runs drop --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the runs of the given scene")
}

func runRuns(_ *cobra.Command, args []string) error {
	var sceneID string
	if len(args) > 0 {
		sceneID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer store.Close()

	if flagRunsClear {
		if sceneID == "" {
			return fmt.Errorf("--clear needs a scene id")
		}
		if err := store.ClearRuns(sceneID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s\n", sceneID)
		return nil
	}

	runs, err := store.RecentRuns(sceneID, flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Try 'rigidbox run drop' to record one.")
		return nil
	}

	fmt.Printf("  %-8s  %-8s  %-8s  %8s  %8s  %-18s  %s\n",
		"Scene", "Source", "Seed", "Ticks", "Contacts", "Energy", "Date")
	fmt.Printf("  %-8s  %-8s  %-8s  %8s  %8s  %-18s  %s\n",
		"-----", "------", "----", "-----", "--------", "------", "----")

	for _, r := range runs {
		energy := fmt.Sprintf("%.0f -> %.0f", r.EnergyStart, r.EnergyEnd)
		if r.Corrupted {
			energy = "diverged"
		}
		fmt.Printf("  %-8s  %-8s  %-8d  %8d  %8d  %-18s  %s\n",
			r.SceneID, r.Source, r.Seed, r.Ticks, r.Contacts, energy,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if sceneID != "" {
		if stats, err := store.SceneStats(sceneID); err == nil {
			fmt.Println()
			fmt.Printf("Total: %d runs, %d ticks, %d contacts\n", stats.Runs, stats.TotalTicks, stats.TotalContacts)
		}
	}
	return nil
}
