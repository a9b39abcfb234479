package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroids-pilot/internal/platform/tui"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/storage"
)

var (
	flagBoard bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [env]",
	Short: "Show recorded episodes",
	Long: `Display the best recorded episodes for an environment, or the latest
episodes across all environments when none is given.

Examples:
  pilot scores
  pilot scores asteroids
  pilot scores asteroids --board
  pilot scores asteroids --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Browse episodes in an interactive board")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all episodes of the environment")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of episodes to show")
}

func runScores(cmd *cobra.Command, args []string) {
	envID := ""
	if len(args) == 1 {
		envID = args[0]
		if !registry.Exists(envID) {
			fmt.Fprintf(os.Stderr, "Error: unknown environment %q\n", envID)
			fmt.Fprintln(os.Stderr, "Run 'pilot list' to see available environments.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening episodes database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagBoard:
		width, height := 100, 30
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunBoard(store, envID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return

	case flagClear:
		if envID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs an environment")
			os.Exit(1)
		}
		if err := store.ClearEpisodes(envID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared episodes for %s.\n", envID)
		return
	}

	var episodes []storage.Episode
	if envID == "" {
		episodes, err = store.RecentEpisodes(flagLimit)
		fmt.Println("Recent episodes")
	} else {
		episodes, err = store.TopEpisodes(envID, flagLimit)
		fmt.Printf("Best episodes - %s\n", envID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving episodes: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pilot run asteroids' to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-7s  %-7s  %-4s  %-6s  %s\n", "Rank", "Env", "Score", "Ticks", "Lost", "Evade", "Date")
	fmt.Printf("  %-4s  %-10s  %-7s  %-7s  %-4s  %-6s  %s\n", "----", "---", "-----", "-----", "----", "-----", "----")
	for i, e := range episodes {
		fmt.Printf("  %-4d  %-10s  %-7d  %-7d  %-4d  %5.0f%%  %s\n",
			i+1, e.EnvID, e.Score, e.Ticks, e.LivesLost, 100*e.EvadeRatio(), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if envID != "" {
		stats, err := store.EnvStats(envID)
		if err == nil {
			fmt.Println()
			fmt.Printf("Best: %d   Average: %.1f over %d episodes\n", stats.HighScore, stats.AvgScore, stats.Episodes)
		}
	}
}
