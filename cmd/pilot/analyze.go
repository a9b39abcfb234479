package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/replay"
	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

var flagLives int

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Show what the pilot sees in one frame",
	Long: `Classify and segment a single PNG or BMP frame, then print the blobs,
the ship location, the nearest threat and the action a fresh pilot would
take on it.

Examples:
  pilot analyze ./frames/0001.png
  pilot analyze ./frame.bmp --lives 2`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&flagLives, "lives", 0, "Lives reported with the frame (0 = configured start lives)")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	_, pcfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	frame, err := replay.LoadFrame(args[0], pcfg.Width, pcfg.Height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lives := flagLives
	if lives == 0 {
		lives = pcfg.StartLives
	}

	p := pilot.New(pcfg)
	action := p.Act(frame, lives)
	scene := p.Scene()
	state := p.State()

	fmt.Printf("Frame %s (%dx%d)\n", args[0], frame.Width, frame.Height)
	fmt.Println()

	if scene.ShipFound {
		fmt.Printf("Ship:        (%.1f, %.1f)\n", scene.Ship.X, scene.Ship.Y)
	} else {
		fmt.Printf("Ship:        not visible, assumed at (%.1f, %.1f)\n", state.Location.X, state.Location.Y)
	}
	fmt.Printf("Projectiles: %d pixels\n", scene.Projectiles)
	fmt.Printf("Obstacles:   %d blobs\n", len(scene.Blobs))
	fmt.Println()

	if len(scene.Blobs) > 0 {
		fmt.Printf("  %-4s  %-6s  %-16s  %s\n", "#", "Pixels", "Centroid", "Distance")
		fmt.Printf("  %-4s  %-6s  %-16s  %s\n", "-", "------", "--------", "--------")
		for i, b := range scene.Blobs {
			c := scene.Centroids[i]
			fmt.Printf("  %-4d  %-6d  (%6.1f, %6.1f)  %.1f\n", i+1, b.Size(), c.X, c.Y, vision.Distance(c, state.Location))
		}
		fmt.Println()
	}

	if state.Threat.Seen {
		fmt.Printf("Threat:      (%.1f, %.1f) at %.1f px\n", state.Threat.Point.X, state.Threat.Point.Y, state.Threat.Distance)
	} else {
		fmt.Println("Threat:      none")
	}
	fmt.Printf("Mode:        %s\n", state.Mode)
	fmt.Printf("Counter:     %+.1f (heading %.0f°)\n", state.Counter, state.Heading())
	fmt.Printf("Action:      %s (%d)\n", action, int(action))
}
