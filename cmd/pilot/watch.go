package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroids-pilot/internal/core"
	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/platform/tui"
)

var (
	flagWatchFrames string
	flagLogFile     string
)

var watchCmd = &cobra.Command{
	Use:   "watch <env>",
	Short: "Watch the pilot play",
	Long: `Watch the pilot play one environment in the terminal. The view shows
the frame as the pilot classifies it, its personal-space radius and the
threat it is tracking.

Controls:
  Space/P    - Pause
  N          - Single step while paused
  + / -      - Faster / slower
  O          - Toggle overlay
  R          - Restart with the next seed
  Q/Ctrl+C   - Quit

Logs are discarded while the view is up unless --log-file is given.

Examples:
  pilot watch asteroids
  pilot watch asteroids --preset swarm --fps 60
  pilot watch replay --frames ./frames --fps 10`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchFrames, "frames", "", "Frame directory for the replay environment")
	watchCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while watching")
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg, pcfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	env, err := createEnv(args[0], flagWatchFrames, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	watchLogger := newLogger(logOut)
	watchLogger.SetLevel(logger.GetLevel())

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if err := tui.Run(env, pilot.New(pcfg), store, rc, watchLogger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
