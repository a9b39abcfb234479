// pilot runs a pixel-reading Asteroids agent against simulated or recorded
// games.
//
// Usage:
//
//	pilot list                - List available environments
//	pilot run <env>           - Play episodes headless and print a summary
//	pilot watch <env>         - Watch the pilot play in the terminal
//	pilot analyze <image>     - Show what the pilot sees in one frame
//	pilot serve               - Start SSH server for remote viewing
//	pilot scores [env]        - Show recorded episodes
//
// Global flags:
//
//	--fps <rate>        - Steps per second in the viewers (default: 30)
//	--seed <value>      - Episode seed (0 = random based on time)
//	--db <path>         - Database path (default: ~/.pilot/episodes.db)
//	--config <path>     - Custom pilot.yaml
//	--preset <name>     - Simulator preset: calm, normal, swarm
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroids-pilot/internal/config"

	// Import environments to register them
	_ "github.com/vovakirdan/asteroids-pilot/internal/games/asteroids"
	_ "github.com/vovakirdan/asteroids-pilot/internal/replay"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pilot",
	Short: "Asteroids pilot - a reactive agent that plays from raw pixels",
	Long: `pilot reads each RGB frame of an Asteroids game, finds its ship and the
nearest obstacle, and answers with one of five joystick actions.

Available commands:
  list     - Show all available environments
  run      - Play episodes headless and record them
  watch    - Watch the pilot play in the terminal
  analyze  - Inspect a single frame file
  serve    - Start SSH server for remote viewing
  scores   - View recorded episodes

Examples:
  pilot list
  pilot run asteroids --episodes 10
  pilot run replay --frames ./frames
  pilot watch asteroids --preset swarm
  pilot analyze ./frames/0001.png
  pilot serve --ssh :2222
  pilot scores asteroids`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagPreset != "" && !config.IsPreset(flagPreset) {
			return fmt.Errorf("unknown preset %q (use calm, normal or swarm)", flagPreset)
		}
		return setupLogger(flagLogLevel)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Steps per second in the viewers")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Episode seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pilot/episodes.db", "Path to episodes database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pilot config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Simulator preset: calm, normal, swarm")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
