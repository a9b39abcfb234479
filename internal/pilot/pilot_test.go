package pilot

import (
	"testing"

	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

var rock = vision.RGB{180, 122, 48}

func TestNewPilotState(t *testing.T) {
	p := New(DefaultConfig())
	s := p.State()

	if s.Location != (vision.PointF{X: 80, Y: 105}) {
		t.Errorf("Location = %v, expected (80, 105)", s.Location)
	}
	if s.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", s.Lives)
	}
	if s.Mode != ModeEngage {
		t.Errorf("Mode = %v, expected ENGAGE", s.Mode)
	}
	if s.Threat.Seen {
		t.Error("new pilot should not have a threat")
	}
	if s.Radius != 35 {
		t.Errorf("Radius = %v, expected 35", s.Radius)
	}
}

func TestActEvadesNearbyObstacle(t *testing.T) {
	p := New(DefaultConfig())

	f := vision.NewFrame(160, 210)
	f.FillRect(98, 103, 5, 5, rock) // centroid (100, 105)

	action := p.Act(f, 3)
	s := p.State()

	if s.Threat.Distance != 20 {
		t.Errorf("Threat.Distance = %v, expected 20", s.Threat.Distance)
	}
	if s.Mode != ModeEvade {
		t.Errorf("Mode = %v, expected EVADE", s.Mode)
	}
	if action != ActionTurnLeft {
		t.Errorf("Act() = %v, expected TurnLeft", action)
	}
	if s.Counter != -0.5 {
		t.Errorf("Counter = %v, expected -0.5", s.Counter)
	}
}

func TestActKeepsLocationWhenShipHidden(t *testing.T) {
	p := New(DefaultConfig())

	f := vision.NewFrame(160, 210)
	f.FillRect(48, 148, 5, 5, vision.ShipColor)
	p.Act(f, 3)
	if loc := p.State().Location; loc != (vision.PointF{X: 50, Y: 150}) {
		t.Fatalf("Location = %v, expected (50, 150)", loc)
	}

	p.Act(vision.NewFrame(160, 210), 3)
	if loc := p.State().Location; loc != (vision.PointF{X: 50, Y: 150}) {
		t.Errorf("Location after occlusion = %v, expected (50, 150)", loc)
	}
}

func TestActKeepsThreatWhenNothingVisible(t *testing.T) {
	p := New(DefaultConfig())

	f := vision.NewFrame(160, 210)
	f.FillRect(18, 28, 5, 5, rock)
	p.Act(f, 3)
	threat := p.State().Threat

	p.Act(vision.NewFrame(160, 210), 3)
	if p.State().Threat != threat {
		t.Errorf("Threat = %+v, expected sticky %+v", p.State().Threat, threat)
	}
}

func TestActResetsOnLifeLost(t *testing.T) {
	p := New(DefaultConfig())

	f := vision.NewFrame(160, 210)
	f.FillRect(48, 148, 5, 5, vision.ShipColor)
	f.FillRect(18, 28, 5, 5, rock)
	p.Act(f, 3)
	threat := p.State().Threat

	// Ship gone, one life fewer: location snaps back to center.
	empty := vision.NewFrame(160, 210)
	p.Act(empty, 2)
	s := p.State()
	if s.Location != (vision.PointF{X: 80, Y: 105}) {
		t.Errorf("Location = %v, expected center", s.Location)
	}
	if s.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", s.Lives)
	}
	if s.Threat != threat {
		t.Errorf("Threat changed across respawn: %+v", s.Threat)
	}
}

func TestActDeterministic(t *testing.T) {
	frames := make([]*vision.Frame, 0, 30)
	for i := 0; i < 30; i++ {
		f := vision.NewFrame(160, 210)
		f.FillRect(78, 100, 5, 11, vision.ShipColor)
		f.FillRect(10+i*4, 40+i*2, 6, 6, rock)
		frames = append(frames, f)
	}

	p1 := New(DefaultConfig())
	p2 := New(DefaultConfig())
	for i, f := range frames {
		a1 := p1.Act(f, 3)
		a2 := p2.Act(f, 3)
		if a1 != a2 {
			t.Fatalf("tick %d: actions diverged %v vs %v", i, a1, a2)
		}
	}
}

func TestReset(t *testing.T) {
	p := New(DefaultConfig())
	f := vision.NewFrame(160, 210)
	f.FillRect(98, 103, 5, 5, rock)
	p.Act(f, 3)

	p.Reset()
	s := p.State()
	if s.Counter != 0 || s.Threat.Seen || s.Mode != ModeEngage {
		t.Errorf("Reset() left state %+v", s)
	}
}

func TestActionCodes(t *testing.T) {
	tests := []struct {
		action Action
		code   int
		name   string
	}{
		{ActionIdle, 0, "Idle"},
		{ActionFire, 1, "Fire"},
		{ActionThrust, 2, "Thrust"},
		{ActionTurnRight, 3, "TurnRight"},
		{ActionTurnLeft, 4, "TurnLeft"},
	}

	for _, tc := range tests {
		if int(tc.action) != tc.code {
			t.Errorf("%s code = %d, expected %d", tc.name, int(tc.action), tc.code)
		}
		if tc.action.String() != tc.name {
			t.Errorf("String() = %q, expected %q", tc.action.String(), tc.name)
		}
		if !tc.action.Valid() {
			t.Errorf("%s should be valid", tc.name)
		}
	}
	if Action(5).Valid() {
		t.Error("Action(5) should be invalid")
	}
}
