package pilot

import (
	"testing"

	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

// newTestState returns a fresh state with the ship at the frame center.
func newTestState() ShipState {
	return NewShipState(DefaultConfig())
}

func withThreat(s ShipState, p vision.PointF) ShipState {
	s.Threat = NoThreat().Update([]vision.PointF{p}, s.Location)
	return s
}

func TestSelectModeBoundary(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected Mode
	}{
		{"exactly at radius", 35, ModeEvade},
		{"inside radius", 20, ModeEvade},
		{"just outside radius", 35.0001, ModeEngage},
		{"nothing seen", NoThreat().Distance, ModeEngage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectMode(tc.distance, 35); got != tc.expected {
				t.Errorf("SelectMode(%v, 35) = %v, expected %v", tc.distance, got, tc.expected)
			}
		})
	}
}

func TestEvadeThreatOnRight(t *testing.T) {
	s := withThreat(newTestState(), vision.PointF{X: 100, Y: 105})

	action := Decide(&s, 7.5)
	if s.Mode != ModeEvade {
		t.Fatalf("Mode = %v, expected EVADE", s.Mode)
	}
	if action != ActionTurnLeft {
		t.Errorf("Decide() = %v, expected TurnLeft", action)
	}
	if s.Counter != -0.5 {
		t.Errorf("Counter = %v, expected -0.5", s.Counter)
	}
}

func TestEvadeThreatOnLeft(t *testing.T) {
	s := withThreat(newTestState(), vision.PointF{X: 60, Y: 105})

	action := Decide(&s, 7.5)
	if action != ActionTurnRight {
		t.Errorf("Decide() = %v, expected TurnRight", action)
	}
	if s.Counter != 0.5 {
		t.Errorf("Counter = %v, expected 0.5", s.Counter)
	}
}

func TestEvadeAlignedThreatCountsAsRight(t *testing.T) {
	s := withThreat(newTestState(), vision.PointF{X: 80, Y: 90})

	if action := Decide(&s, 7.5); action != ActionTurnLeft {
		t.Errorf("Decide() = %v, expected TurnLeft for dx == 0", action)
	}
}

func TestEvadeThrustsAtSteeringLimit(t *testing.T) {
	s := withThreat(newTestState(), vision.PointF{X: 60, Y: 105})
	s.Counter = 7.5
	if action := Decide(&s, 7.5); action != ActionThrust {
		t.Errorf("threat left at +limit: Decide() = %v, expected Thrust", action)
	}
	if s.Counter != 7.5 {
		t.Errorf("Counter changed to %v while thrusting", s.Counter)
	}

	s = withThreat(newTestState(), vision.PointF{X: 100, Y: 105})
	s.Counter = -7.5
	if action := Decide(&s, 7.5); action != ActionThrust {
		t.Errorf("threat right at -limit: Decide() = %v, expected Thrust", action)
	}
}

func TestEvadeHeadingPastLeftmost(t *testing.T) {
	// Counter -10 estimates 210 degrees, so the turn directions flip.
	s := withThreat(newTestState(), vision.PointF{X: 60, Y: 105})
	s.Counter = -10
	if action := Decide(&s, 7.5); action != ActionTurnLeft {
		t.Errorf("threat left, heading 210: Decide() = %v, expected TurnLeft", action)
	}
	if s.Counter != -10.5 {
		t.Errorf("Counter = %v, expected -10.5", s.Counter)
	}

	s = withThreat(newTestState(), vision.PointF{X: 100, Y: 105})
	s.Counter = -10
	if action := Decide(&s, 7.5); action != ActionTurnRight {
		t.Errorf("threat right, heading 210: Decide() = %v, expected TurnRight", action)
	}
}

func TestEvadeNegativeHeadingIsNormalized(t *testing.T) {
	// Counter 10 estimates -30 degrees, normalized to 330.
	s := withThreat(newTestState(), vision.PointF{X: 100, Y: 105})
	s.Counter = 10
	if action := Decide(&s, 7.5); action != ActionTurnRight {
		t.Errorf("Decide() = %v, expected TurnRight", action)
	}
}

func TestEngageWithoutThreatIdles(t *testing.T) {
	s := newTestState()

	expected := []Action{ActionIdle, ActionIdle, ActionIdle, ActionIdle, ActionFire}
	for i, want := range expected {
		if got := Decide(&s, 7.5); got != want {
			t.Errorf("tick %d: Decide() = %v, expected %v", i, got, want)
		}
	}
	if s.Mode != ModeEngage {
		t.Errorf("Mode = %v, expected ENGAGE", s.Mode)
	}
}

func TestEngageAlreadyAimedFires(t *testing.T) {
	// Straight above: bearing 90, target counter 0.
	s := withThreat(newTestState(), vision.PointF{X: 80, Y: 20})

	if action := Decide(&s, 7.5); action != ActionFire {
		t.Errorf("Decide() = %v, expected Fire when aimed", action)
	}
	if s.Fire.Count() != 1 {
		t.Errorf("aimed shot should not reset the cooldown, Count() = %d", s.Fire.Count())
	}
}

func TestEngageSteering(t *testing.T) {
	tests := []struct {
		name     string
		threat   vision.PointF
		expected Action
		counter  float64
	}{
		// bearing 0, heading 90: difference positive
		{"threat right", vision.PointF{X: 150, Y: 105}, ActionTurnRight, 0.5},
		// bearing -180: difference 270
		{"threat left", vision.PointF{X: 10, Y: 105}, ActionTurnRight, 0.5},
		// bearing -90: difference 180
		{"threat below", vision.PointF{X: 80, Y: 180}, ActionTurnRight, 0.5},
		// bearing ~112.8: difference negative
		{"threat up and left", vision.PointF{X: 40, Y: 10}, ActionTurnLeft, -0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := withThreat(newTestState(), tc.threat)
			if got := Decide(&s, 7.5); got != tc.expected {
				t.Errorf("Decide() = %v, expected %v", got, tc.expected)
			}
			if s.Counter != tc.counter {
				t.Errorf("Counter = %v, expected %v", s.Counter, tc.counter)
			}
		})
	}
}

func TestEngageTurnsUntilAimed(t *testing.T) {
	// Bearing 0 maps to target counter 7.
	s := withThreat(newTestState(), vision.PointF{X: 150, Y: 105})

	aimed := false
	for i := 0; i < 40; i++ {
		action := Decide(&s, 7.5)
		if s.Counter == 7 && action == ActionFire {
			aimed = true
			break
		}
	}
	if !aimed {
		t.Errorf("never fired on target, Counter = %v", s.Counter)
	}
}
