package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/runner"
)

var (
	flagEpisodes int
	flagMaxTicks int
	flagFrames   string
	flagNoSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run <env>",
	Short: "Play episodes headless",
	Long: `Play one or more episodes as fast as possible, print a summary and
record each episode in the database.

Episode i uses seed --seed + i, so a fixed --seed reproduces a batch.

Examples:
  pilot run asteroids
  pilot run asteroids --episodes 20 --seed 1
  pilot run asteroids --preset swarm --max-ticks 5000
  pilot run replay --frames ./frames --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&flagEpisodes, "episodes", "n", 1, "Number of episodes to play")
	runCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Stop an episode after this many ticks (0 = no limit)")
	runCmd.Flags().StringVar(&flagFrames, "frames", "", "Frame directory for the replay environment")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record episodes in the database")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, pcfg, err := loadConfig()
	if err != nil {
		return err
	}

	env, err := createEnv(args[0], flagFrames, cfg)
	if err != nil {
		return err
	}

	b := batch{
		Episodes: flagEpisodes,
		Seed:     baseSeed(),
		MaxTicks: flagMaxTicks,
	}
	if !flagNoSave {
		if store := openStore(); store != nil {
			defer store.Close()
			b.Save = func(r runner.Result) {
				if _, err := store.SaveEpisode(r.Episode()); err != nil {
					logger.Warn("could not save episode", "error", err)
				}
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := b.play(ctx, env, pilot.New(pcfg))
	if err != nil {
		return err
	}
	printSummary(env.Title(), results)
	return nil
}

// batch describes a run of back to back episodes.
type batch struct {
	Episodes int
	Seed     int64 // episode i plays Seed + i
	MaxTicks int
	Save     func(runner.Result)
}

// play runs the batch. An interrupt ends it early and keeps the finished
// episodes; any other failure aborts it.
func (b batch) play(ctx context.Context, env registry.Env, p *pilot.Pilot) ([]runner.Result, error) {
	var results []runner.Result
	for i := 0; i < b.Episodes; i++ {
		r, err := runner.Run(ctx, env, p, runner.Options{
			Seed:     b.Seed + int64(i),
			MaxTicks: b.MaxTicks,
			Logger:   logger.With("episode", i+1),
		})
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("interrupted", "episode", i+1, "ticks", r.Ticks)
				break
			}
			return results, err
		}
		results = append(results, r)
		if b.Save != nil {
			b.Save(r)
		}
	}
	return results, nil
}

func printSummary(title string, results []runner.Result) {
	fmt.Printf("%s - %d episode(s)\n", title, len(results))
	fmt.Println()
	if len(results) == 0 {
		return
	}

	fmt.Printf("  %-4s  %-20s  %-7s  %-7s  %-4s  %-6s  %-6s  %-6s\n",
		"#", "Seed", "Score", "Ticks", "Lost", "Fires", "Turns", "Evade")
	fmt.Printf("  %-4s  %-20s  %-7s  %-7s  %-4s  %-6s  %-6s  %-6s\n",
		"-", "----", "-----", "-----", "----", "-----", "-----", "-----")

	total, best := 0, results[0].Score
	for i, r := range results {
		e := r.Episode()
		fmt.Printf("  %-4d  %-20d  %-7d  %-7d  %-4d  %-6d  %-6d  %5.0f%%\n",
			i+1, r.Seed, r.Score, r.Ticks, r.LivesLost, e.Fires, e.Turns, 100*e.EvadeRatio())
		total += r.Score
		best = max(best, r.Score)
	}

	fmt.Println()
	fmt.Printf("Best: %d   Average: %.1f\n", best, float64(total)/float64(len(results)))
}
