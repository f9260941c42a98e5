package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rigidbox/internal/platform/tui"
	"github.com/vovakirdan/rigidbox/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenes from an interactive menu",
	Long: `Start rigidbox in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to watch a scene, Tab for the
run log. Leaving a scene returns to the menu.

Examples:
  rigidbox menu
  rigidbox menu --fps 30
  rigidbox menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsRuns {
			goBack, runsErr := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if goBack {
				continue
			}
			break
		}

		scenario, err := registry.Create(menuResult.SceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
			continue
		}

		// Fresh seed per visit unless pinned on the command line
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(scenario, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
