package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rigidbox/internal/core"
	"github.com/vovakirdan/rigidbox/internal/platform/tui"
	"github.com/vovakirdan/rigidbox/internal/registry"
	"github.com/vovakirdan/rigidbox/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch [scene]",
	Short: "Watch a scene in the terminal",
	Long: `Run a scene in real time and push bodies around.

Controls:
  WASD/Arrows  - Push selected body
  Q/E          - Spin selected body
  Tab          - Select next body
  P/Space      - Pause
  N            - Step once while paused
  R            - Reload the scene
  ?            - Full help
  Esc/Ctrl+C   - Quit

Examples:
  rigidbox watch drop
  rigidbox watch rain --seed 7
  rigidbox watch --scene ./my-scene.yaml --preset precise`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

// terminalConfig builds a runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run log, or returns nil so the viewer keeps working
// without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open run log", "error", err)
		return nil
	}
	return store
}

func runWatch(_ *cobra.Command, args []string) error {
	sceneID, err := sceneArg(args)
	if err != nil {
		return err
	}

	scenario, err := registry.Create(sceneID)
	if err != nil {
		return fmt.Errorf("%w (run 'rigidbox list' to see available scenes)", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(scenario, store, terminalConfig()); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
