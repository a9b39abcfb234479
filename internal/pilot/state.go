package pilot

import "github.com/vovakirdan/asteroids-pilot/internal/vision"

// ShipState is everything the pilot remembers between ticks. It is owned by a
// single Pilot and mutated once per tick.
type ShipState struct {
	Location vision.PointF
	Radius   float64
	Counter  float64 // heading counter, a multiple of HeadingStep in (-30, 30)
	Fire     FireController
	Lives    int
	Mode     Mode
	Threat   Threat
}

// NewShipState returns the state at episode start: ship at the frame
// center, full lives, engage mode and no threat observed.
func NewShipState(cfg Config) ShipState {
	return ShipState{
		Location: cfg.Center(),
		Radius:   cfg.Radius,
		Fire:     NewFireController(cfg.FireCooldown),
		Lives:    cfg.StartLives,
		Mode:     ModeEngage,
		Threat:   NoThreat(),
	}
}

// Heading returns the estimated facing in degrees.
func (s *ShipState) Heading() float64 {
	return HeadingFromCounter(s.Counter)
}

// turn steps the heading counter one half step and returns the matching action.
func (s *ShipState) turn(a Action) Action {
	delta := HeadingStep
	if a == ActionTurnLeft {
		delta = -HeadingStep
	}
	s.Counter = AdvanceCounter(s.Counter, delta)
	return a
}
