// Package config provides YAML-based configuration loading for the pilot
// and the built-in simulator.
package config

// PilotConfig contains all tunable constants for the pilot and the simulator.
type PilotConfig struct {
	Palette  PaletteConfig  `yaml:"palette"`
	Frame    FrameConfig    `yaml:"frame"`
	Ship     ShipConfig     `yaml:"ship"`
	Steering SteeringConfig `yaml:"steering"`
	Fire     FireConfig     `yaml:"fire"`
	Sim      SimConfig      `yaml:"sim"`
}

// PaletteConfig holds the three reference colors as [r, g, b] lists.
type PaletteConfig struct {
	Ship       []int `yaml:"ship"`
	Projectile []int `yaml:"projectile"`
	Background []int `yaml:"background"`
}

// FrameConfig describes the observation video mode.
type FrameConfig struct {
	Width            int `yaml:"width"`
	Height           int `yaml:"height"`
	ScoreboardHeight int `yaml:"scoreboard_height"` // rows 0..N are never classified
}

// ShipConfig defines the pilot's ship parameters.
type ShipConfig struct {
	Radius     float64 `yaml:"radius"` // personal space that triggers evasion
	StartLives int     `yaml:"start_lives"`
}

// SteeringConfig defines the partial-turn cap used while evading.
type SteeringConfig struct {
	Limit float64 `yaml:"limit"`
}

// FireConfig defines the fire cooldown.
type FireConfig struct {
	Cooldown int `yaml:"cooldown"` // ticks held between shots
}

// SimConfig defines the built-in asteroids simulator.
type SimConfig struct {
	Asteroids    int     `yaml:"asteroids"`     // large asteroids per wave
	MinSpeed     float64 `yaml:"min_speed"`     // pixels per tick
	MaxSpeed     float64 `yaml:"max_speed"`     // pixels per tick
	MaxTicks     int     `yaml:"max_ticks"`     // 0 = unlimited
	RespawnTicks int     `yaml:"respawn_ticks"` // ticks the ship is hidden after a death
	MaxBullets   int     `yaml:"max_bullets"`
	BulletTTL    int     `yaml:"bullet_ttl"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	Thrust       float64 `yaml:"thrust"` // velocity added per thrust tick
	Drag         float64 `yaml:"drag"`   // velocity multiplier per tick
}

// SimPreset represents a named simulator density.
type SimPreset string

const (
	PresetCalm   SimPreset = "calm"
	PresetNormal SimPreset = "normal"
	PresetSwarm  SimPreset = "swarm"
)

// ApplySimPreset modifies the simulator config for a named preset.
// Unknown presets leave the config untouched.
func ApplySimPreset(cfg *PilotConfig, preset SimPreset) {
	switch preset {
	case PresetCalm:
		cfg.Sim.Asteroids = 2
		cfg.Sim.MinSpeed = 0.2
		cfg.Sim.MaxSpeed = 0.5
	case PresetNormal:
		cfg.Sim.Asteroids = 4
		cfg.Sim.MinSpeed = 0.3
		cfg.Sim.MaxSpeed = 0.9
	case PresetSwarm:
		cfg.Sim.Asteroids = 7
		cfg.Sim.MinSpeed = 0.5
		cfg.Sim.MaxSpeed = 1.4
	}
}

// IsPreset reports whether name is a known preset.
func IsPreset(name string) bool {
	switch SimPreset(name) {
	case PresetCalm, PresetNormal, PresetSwarm:
		return true
	}
	return false
}
