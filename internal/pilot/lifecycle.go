package pilot

import "github.com/vovakirdan/asteroids-pilot/internal/vision"

// OnTick compares the lives reported by the environment with the stored
// count. On any change the ship has respawned, so location and heading are
// reset. The sticky threat and fire cooldown are carried over.
// Reports whether a reset happened.
func (s *ShipState) OnTick(reportedLives int, center vision.PointF) bool {
	if reportedLives == s.Lives {
		return false
	}
	s.Location = center
	s.Counter = 0
	s.Lives = reportedLives
	return true
}
