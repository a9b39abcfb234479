package config

import (
	_ "embed"
)

//go:embed defaults/pilot.yaml
var defaultPilotYAML []byte

// DefaultPilotConfig returns the default configuration.
func DefaultPilotConfig() PilotConfig {
	return PilotConfig{
		Palette: PaletteConfig{
			Ship:       []int{240, 128, 128},
			Projectile: []int{117, 181, 239},
			Background: []int{0, 0, 0},
		},
		Frame: FrameConfig{
			Width:            160,
			Height:           210,
			ScoreboardHeight: 14,
		},
		Ship: ShipConfig{
			Radius:     35,
			StartLives: 3,
		},
		Steering: SteeringConfig{
			Limit: 7.5,
		},
		Fire: FireConfig{
			Cooldown: 4,
		},
		Sim: SimConfig{
			Asteroids:    4,
			MinSpeed:     0.3,
			MaxSpeed:     0.9,
			MaxTicks:     20000,
			RespawnTicks: 40,
			MaxBullets:   4,
			BulletTTL:    45,
			BulletSpeed:  3.0,
			Thrust:       0.12,
			Drag:         0.98,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPilotYAML
}
