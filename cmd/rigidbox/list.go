package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rigidbox/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenes",
	Long:  `Shows the built-in scenes plus any scene loaded with --scene.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range scenarios {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'rigidbox watch <id>' to watch a scene.")
}
