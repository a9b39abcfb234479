package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroids-pilot/internal/config"
	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/storage"
)

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "pilot",
	})
}

func setupLogger(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return nil
}

// loadConfig reads the YAML config and applies the preset flag.
func loadConfig() (config.PilotConfig, pilot.Config, error) {
	cfg, err := config.LoadPilot(flagConfig)
	if err != nil {
		return cfg, pilot.Config{}, err
	}
	if flagPreset != "" {
		config.ApplySimPreset(&cfg, config.SimPreset(flagPreset))
	}
	pcfg, err := cfg.Pilot()
	if err != nil {
		return cfg, pilot.Config{}, err
	}
	return cfg, pcfg, nil
}

// createEnv checks the ID and builds the environment.
func createEnv(envID, framesDir string, cfg config.PilotConfig) (registry.Env, error) {
	if !registry.Exists(envID) {
		return nil, fmt.Errorf("unknown environment %q, run 'pilot list' to see available environments", envID)
	}
	return registry.Create(envID, registry.Options{Config: cfg, FramesDir: framesDir})
}

// openStore opens the episodes database. A failure is logged and yields a
// nil store; episodes still play without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open episodes database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// baseSeed returns the seed flag, or one from the clock when it is zero.
func baseSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
