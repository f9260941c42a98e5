// rigidbox is a 2D rigid-body sandbox for oriented rectangles that runs in
// the terminal, over SSH, or headless.
//
// Usage:
//
//	rigidbox list              - List available scenes
//	rigidbox run <scene>       - Simulate a scene headless and print poses
//	rigidbox watch <scene>     - Watch and poke a scene in the terminal
//	rigidbox menu              - Pick scenes interactively
//	rigidbox serve             - Start SSH server for remote viewing
//	rigidbox runs [scene]      - Show the run log
//
// Global flags:
//
//	--fps <rate>        - Set render tick rate (default: 60)
//	--seed <value>      - Set RNG seed for seeded scenes
//	--db <path>         - Set database path (default: ~/.rigidbox/runs.db)
//	--config <path>     - Simulation config YAML
//	--preset <name>     - Timing preset: coarse, normal, precise
//	--scene <path>      - Load an extra scene from a YAML file
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rigidbox/internal/config"
	"github.com/vovakirdan/rigidbox/internal/scenes"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagPreset    string
	flagSceneFile string
	flagLogLevel  string

	// fileSceneID is the ID of the scene loaded with --scene, if any.
	fileSceneID string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rigidbox",
	Short: "rigidbox - oriented-box physics in your terminal",
	Long: `rigidbox simulates rigid rectangles with SAT collision detection and
impulse-based response, and draws them in the terminal.

Available commands:
  list     - Show all available scenes
  run      - Simulate a scene headless
  watch    - Watch a scene interactively
  menu     - Interactive scene picker
  serve    - Start SSH server for remote viewing
  runs     - View the run log

Examples:
  rigidbox list
  rigidbox run stack --ticks 2000
  rigidbox watch rain --seed 7
  rigidbox watch --scene ./my-scene.yaml
  rigidbox serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for seeded scenes (0 = time based in the viewer)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rigidbox/runs.db", "Path to run log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Timing preset: coarse, normal, precise")
	rootCmd.PersistentFlags().StringVar(&flagSceneFile, "scene", "", "Load an extra scene from a YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

// setup applies the global flags before any subcommand runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	log.SetLevel(level)

	cfg, err := config.LoadSim(flagConfig)
	if err != nil {
		return err
	}
	if flagPreset != "" {
		preset := config.ParsePreset(flagPreset)
		if preset == "" {
			return fmt.Errorf("invalid --preset %q: want coarse, normal or precise", flagPreset)
		}
		config.ApplyPreset(&cfg, preset)
	}
	scenes.SetConfig(cfg)
	log.Debug("config loaded", "substeps", cfg.Timing.Substeps, "gravity", cfg.Physics.Gravity)

	if flagSceneFile != "" {
		scene, err := config.LoadScene(flagSceneFile)
		if err != nil {
			return err
		}
		if err := scenes.RegisterFile(scene); err != nil {
			return err
		}
		fileSceneID = scene.ID
		log.Info("scene loaded", "id", scene.ID, "path", flagSceneFile)
	}

	return nil
}

// sceneArg picks the scene named on the command line, falling back to the
// one loaded with --scene.
func sceneArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if fileSceneID != "" {
		return fileSceneID, nil
	}
	return "", fmt.Errorf("no scene given: pass a scene id or --scene <file>")
}
