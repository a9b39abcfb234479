package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroids-pilot/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available environments",
	Long:  `Shows a list of all environments the pilot can play.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	envs := registry.List()

	if len(envs) == 0 {
		fmt.Println("No environments available.")
		return
	}

	fmt.Println("Available environments:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, e := range envs {
		maxIDLen = max(maxIDLen, len(e.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, e := range envs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, e.ID, e.Title)
	}

	fmt.Println()
	fmt.Println("Run 'pilot watch <id>' to watch the pilot play.")
}
