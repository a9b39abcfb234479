package pilot

import "github.com/vovakirdan/asteroids-pilot/internal/vision"

// Config holds the fixed protocol constants the pilot needs.
type Config struct {
	Palette          vision.Palette
	Width            int     // frame width in pixels
	Height           int     // frame height in pixels
	ScoreboardHeight int     // rows y <= this are ignored
	Radius           float64 // personal-space radius that triggers evasion
	StartLives       int
	SteerLimit       float64 // partial-turn cap used while evading
	FireCooldown     int
}

// DefaultConfig returns the constants of the stock game.
func DefaultConfig() Config {
	return Config{
		Palette:          vision.DefaultPalette(),
		Width:            160,
		Height:           210,
		ScoreboardHeight: 14,
		Radius:           35,
		StartLives:       3,
		SteerLimit:       7.5,
		FireCooldown:     DefaultFireCooldown,
	}
}

// Center returns the frame center, where the ship spawns.
func (c Config) Center() vision.PointF {
	return vision.PointF{X: float64(c.Width) / 2, Y: float64(c.Height) / 2}
}

// Pilot is the per-episode agent. It owns one ShipState and is not safe for
// concurrent use.
type Pilot struct {
	cfg   Config
	seg   *vision.Segmenter
	state ShipState
	scene vision.Scene
}

// New creates a pilot at the start of an episode.
func New(cfg Config) *Pilot {
	return &Pilot{
		cfg:   cfg,
		seg:   vision.NewSegmenter(cfg.Palette, cfg.ScoreboardHeight),
		state: NewShipState(cfg),
	}
}

// Reset discards all state and starts a fresh episode.
func (p *Pilot) Reset() {
	p.state = NewShipState(p.cfg)
	p.scene = vision.Scene{}
}

// Act consumes one observation and returns the action for this tick.
func (p *Pilot) Act(frame *vision.Frame, lives int) Action {
	p.state.OnTick(lives, p.cfg.Center())

	p.scene = p.seg.Scan(frame)
	if p.scene.ShipFound {
		p.state.Location = p.scene.Ship
	}
	p.state.Threat = p.state.Threat.Update(p.scene.Centroids, p.state.Location)

	return Decide(&p.state, p.cfg.SteerLimit)
}

// State returns a copy of the current ship state.
func (p *Pilot) State() ShipState {
	return p.state
}

// Scene returns what the pilot extracted from the last frame.
func (p *Pilot) Scene() vision.Scene {
	return p.scene
}

// Segmenter exposes the classifier used for the last frame, so viewers can
// draw what the pilot saw.
func (p *Pilot) Segmenter() *vision.Segmenter {
	return p.seg
}
