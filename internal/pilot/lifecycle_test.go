package pilot

import (
	"testing"

	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

func TestOnTickLifeLost(t *testing.T) {
	cfg := DefaultConfig()
	s := NewShipState(cfg)
	s.Location = vision.PointF{X: 12, Y: 34}
	s.Counter = 4.5
	s.Threat = NoThreat().Update([]vision.PointF{{X: 100, Y: 100}}, s.Location)
	s.Fire.Tick()
	s.Fire.Tick()
	threat := s.Threat

	if !s.OnTick(2, cfg.Center()) {
		t.Fatal("OnTick() did not report a reset")
	}
	if s.Location != (vision.PointF{X: 80, Y: 105}) {
		t.Errorf("Location = %v, expected frame center", s.Location)
	}
	if s.Counter != 0 {
		t.Errorf("Counter = %v, expected 0", s.Counter)
	}
	if s.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", s.Lives)
	}

	// Carried over across the respawn.
	if s.Threat != threat {
		t.Errorf("Threat = %+v, expected unchanged %+v", s.Threat, threat)
	}
	if s.Fire.Count() != 2 {
		t.Errorf("Fire.Count() = %d, expected 2", s.Fire.Count())
	}
}

func TestOnTickSameLives(t *testing.T) {
	cfg := DefaultConfig()
	s := NewShipState(cfg)
	s.Counter = 3

	if s.OnTick(3, cfg.Center()) {
		t.Error("OnTick() reset with unchanged lives")
	}
	if s.Counter != 3 {
		t.Errorf("Counter = %v, expected 3", s.Counter)
	}
}

func TestOnTickLivesGained(t *testing.T) {
	cfg := DefaultConfig()
	s := NewShipState(cfg)
	s.Counter = 2

	// Any change counts, not just a decrease.
	if !s.OnTick(4, cfg.Center()) {
		t.Error("OnTick() ignored a lives increase")
	}
	if s.Lives != 4 || s.Counter != 0 {
		t.Errorf("Lives = %d, Counter = %v, expected 4 and 0", s.Lives, s.Counter)
	}
}
