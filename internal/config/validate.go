package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a usable pilot and simulator.
func (c PilotConfig) Validate() error {
	for name, rgb := range map[string][]int{
		"palette.ship":       c.Palette.Ship,
		"palette.projectile": c.Palette.Projectile,
		"palette.background": c.Palette.Background,
	} {
		if _, err := toRGB(rgb); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}

	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		return fmt.Errorf("%w: frame must be positive, got %dx%d", ErrInvalidConfig, c.Frame.Width, c.Frame.Height)
	}
	if c.Frame.ScoreboardHeight < 0 || c.Frame.ScoreboardHeight >= c.Frame.Height-1 {
		return fmt.Errorf("%w: scoreboard_height %d leaves no playfield", ErrInvalidConfig, c.Frame.ScoreboardHeight)
	}
	if c.Ship.Radius <= 0 {
		return fmt.Errorf("%w: ship.radius must be positive", ErrInvalidConfig)
	}
	if c.Ship.StartLives <= 0 {
		return fmt.Errorf("%w: ship.start_lives must be positive", ErrInvalidConfig)
	}

	// The limit is compared against the counter for equality, so it must be
	// reachable in half steps and sit inside the wrap bound.
	limit := c.Steering.Limit
	if limit <= 0 || limit >= pilot.CounterBound || math.Mod(limit, pilot.HeadingStep) != 0 {
		return fmt.Errorf("%w: steering.limit %v must be a positive multiple of %v below %v",
			ErrInvalidConfig, limit, pilot.HeadingStep, pilot.CounterBound)
	}
	if c.Fire.Cooldown < 0 {
		return fmt.Errorf("%w: fire.cooldown must not be negative", ErrInvalidConfig)
	}

	s := c.Sim
	if s.Asteroids <= 0 {
		return fmt.Errorf("%w: sim.asteroids must be positive", ErrInvalidConfig)
	}
	if s.MinSpeed <= 0 || s.MaxSpeed < s.MinSpeed {
		return fmt.Errorf("%w: sim speeds must satisfy 0 < min_speed <= max_speed", ErrInvalidConfig)
	}
	if s.MaxTicks < 0 || s.RespawnTicks < 0 {
		return fmt.Errorf("%w: sim tick limits must not be negative", ErrInvalidConfig)
	}
	if s.MaxBullets <= 0 || s.BulletTTL <= 0 || s.BulletSpeed <= 0 {
		return fmt.Errorf("%w: sim bullet settings must be positive", ErrInvalidConfig)
	}
	if s.Drag <= 0 || s.Drag > 1 {
		return fmt.Errorf("%w: sim.drag must be in (0, 1]", ErrInvalidConfig)
	}
	return nil
}

// PaletteColors converts the configured colors. Call Validate first.
func (c PilotConfig) PaletteColors() vision.Palette {
	ship, _ := toRGB(c.Palette.Ship)
	proj, _ := toRGB(c.Palette.Projectile)
	bg, _ := toRGB(c.Palette.Background)
	return vision.Palette{Ship: ship, Projectile: proj, Background: bg}
}

// Pilot builds the pilot configuration.
func (c PilotConfig) Pilot() (pilot.Config, error) {
	if err := c.Validate(); err != nil {
		return pilot.Config{}, err
	}
	return pilot.Config{
		Palette:          c.PaletteColors(),
		Width:            c.Frame.Width,
		Height:           c.Frame.Height,
		ScoreboardHeight: c.Frame.ScoreboardHeight,
		Radius:           c.Ship.Radius,
		StartLives:       c.Ship.StartLives,
		SteerLimit:       c.Steering.Limit,
		FireCooldown:     c.Fire.Cooldown,
	}, nil
}

func toRGB(v []int) (vision.RGB, error) {
	var rgb vision.RGB
	if len(v) != 3 {
		return rgb, fmt.Errorf("expected 3 channels, got %d", len(v))
	}
	for i, ch := range v {
		if ch < 0 || ch > 255 {
			return rgb, fmt.Errorf("channel %d out of range: %d", i, ch)
		}
		rgb[i] = uint8(ch)
	}
	return rgb, nil
}
