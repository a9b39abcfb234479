package asteroids

import (
	"bytes"
	"math"
	"testing"

	"github.com/vovakirdan/asteroids-pilot/internal/config"
	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(config.DefaultPilotConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func TestResetObservation(t *testing.T) {
	g := newTestGame(t)
	obs, err := g.Reset(42)
	if err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	if obs.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", obs.Lives)
	}
	if obs.Done {
		t.Error("fresh episode should not be done")
	}
	if obs.Frame.Width != 160 || obs.Frame.Height != 210 {
		t.Errorf("frame = %dx%d, expected 160x210", obs.Frame.Width, obs.Frame.Height)
	}

	seg := vision.NewSegmenter(vision.DefaultPalette(), 14)
	scene := seg.Scan(obs.Frame)
	if !scene.ShipFound {
		t.Fatal("ship not visible after Reset")
	}
	if math.Abs(scene.Ship.X-80) > 2 || math.Abs(scene.Ship.Y-105) > 2 {
		t.Errorf("ship at (%v, %v), expected near (80, 105)", scene.Ship.X, scene.Ship.Y)
	}
	// Rocks drawn across an edge split into two blobs, so only check presence.
	if len(scene.Blobs) == 0 {
		t.Errorf("found no blobs for %d rocks", len(g.rocks))
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t)
	g2 := newTestGame(t)
	g1.Reset(7)
	g2.Reset(7)

	actions := []pilot.Action{
		pilot.ActionFire, pilot.ActionTurnLeft, pilot.ActionThrust,
		pilot.ActionTurnRight, pilot.ActionIdle,
	}
	for i := 0; i < 300; i++ {
		a := actions[i%len(actions)]
		o1, _ := g1.Step(a)
		o2, _ := g2.Step(a)
		if !bytes.Equal(o1.Frame.Pix, o2.Frame.Pix) {
			t.Fatalf("tick %d: frames diverged", i)
		}
		if o1.Lives != o2.Lives || g1.Score() != g2.Score() {
			t.Fatalf("tick %d: state diverged", i)
		}
	}
}

func TestStepErrors(t *testing.T) {
	g := newTestGame(t)
	if _, err := g.Step(pilot.ActionIdle); err == nil {
		t.Error("Step() before Reset should fail")
	}

	g.Reset(1)
	if _, err := g.Step(pilot.Action(9)); err == nil {
		t.Error("Step() should reject an invalid action")
	}
}

func TestTurnChangesAngle(t *testing.T) {
	g := newTestGame(t)
	g.Reset(1)
	g.rocks = nil

	g.Step(pilot.ActionTurnRight)
	if g.ship.angle != 84 {
		t.Errorf("angle after TurnRight = %v, expected 84", g.ship.angle)
	}
	g.Step(pilot.ActionTurnLeft)
	g.Step(pilot.ActionTurnLeft)
	if g.ship.angle != 96 {
		t.Errorf("angle after two TurnLeft = %v, expected 96", g.ship.angle)
	}
}

func TestThrustMovesShipUp(t *testing.T) {
	g := newTestGame(t)
	g.Reset(1)
	g.rocks = []rock{{x: 10, y: 30, size: sizeSmall, color: rockColors[0]}}

	startY := g.ship.y
	for i := 0; i < 10; i++ {
		g.Step(pilot.ActionThrust)
	}
	if g.ship.y >= startY {
		t.Errorf("ship y = %v, expected above %v after thrusting up", g.ship.y, startY)
	}
}

func TestShotSplitsRock(t *testing.T) {
	g := newTestGame(t)
	g.Reset(1)
	// A large rock straight above the ship.
	g.rocks = []rock{{x: 80, y: 70, size: sizeLarge, color: rockColors[0]}}

	g.Step(pilot.ActionFire)
	for i := 0; i < 20 && g.score == 0; i++ {
		g.Step(pilot.ActionIdle)
	}

	if g.score != 20 {
		t.Fatalf("score = %d, expected 20", g.score)
	}
	if len(g.rocks) != 2 {
		t.Fatalf("rocks after split = %d, expected 2", len(g.rocks))
	}
	for _, r := range g.rocks {
		if r.size != sizeMedium {
			t.Errorf("child size = %v, expected medium", r.size)
		}
	}
}

func TestBulletLimit(t *testing.T) {
	g := newTestGame(t)
	g.Reset(1)
	g.rocks = []rock{{x: 10, y: 200, size: sizeSmall, color: rockColors[0]}}

	for i := 0; i < 10; i++ {
		g.Step(pilot.ActionFire)
	}
	if len(g.shots) > 4 {
		t.Errorf("live bullets = %d, expected at most 4", len(g.shots))
	}
}

func TestCollisionCostsLife(t *testing.T) {
	g := newTestGame(t)
	g.Reset(1)
	g.rocks = []rock{{x: 80, y: 105, size: sizeLarge, color: rockColors[0]}}

	obs, _ := g.Step(pilot.ActionIdle)
	if obs.Lives != 2 {
		t.Fatalf("Lives = %d, expected 2", obs.Lives)
	}
	if g.ship.alive {
		t.Error("ship should be hidden after a collision")
	}

	seg := vision.NewSegmenter(vision.DefaultPalette(), 14)
	if _, ok := seg.LocateShip(obs.Frame); ok {
		t.Error("dead ship should not be drawn")
	}

	// Respawn once the grace period ends and the center is clear.
	g.rocks = []rock{{x: 10, y: 200, size: sizeSmall, color: rockColors[0]}}
	for i := 0; i < 41; i++ {
		g.Step(pilot.ActionIdle)
	}
	if !g.ship.alive {
		t.Error("ship did not respawn")
	}
}

func TestDeadShipIgnoresControls(t *testing.T) {
	g := newTestGame(t)
	g.Reset(1)
	g.rocks = []rock{{x: 80, y: 105, size: sizeLarge, color: rockColors[0]}}
	g.Step(pilot.ActionTurnLeft)
	if g.ship.alive {
		t.Fatal("ship should be dead after the collision")
	}

	// Turns and shots during the grace period are dropped, and the ship
	// comes back facing up no matter what the pilot sent.
	g.rocks = []rock{{x: 10, y: 200, size: sizeSmall, color: rockColors[0]}}
	for i := 0; i < g.cfg.RespawnTicks; i++ {
		a := pilot.ActionTurnRight
		if i%2 == 1 {
			a = pilot.ActionFire
		}
		g.Step(a)
		if len(g.shots) != 0 {
			t.Fatalf("dead ship fired on tick %d", i)
		}
	}
	if !g.ship.alive {
		t.Fatal("ship did not respawn")
	}
	if g.ship.angle != pilot.ResetHeading {
		t.Errorf("angle after respawn = %v, expected %v", g.ship.angle, pilot.ResetHeading)
	}

	g.Step(pilot.ActionTurnRight)
	if g.ship.angle != pilot.ResetHeading-turnDegrees {
		t.Errorf("angle after first live turn = %v", g.ship.angle)
	}
}

func TestEpisodeEndsWithoutLives(t *testing.T) {
	g := newTestGame(t)
	g.Reset(1)
	g.lives = 1
	g.rocks = []rock{{x: 80, y: 105, size: sizeLarge, color: rockColors[0]}}

	obs, _ := g.Step(pilot.ActionIdle)
	if !obs.Done {
		t.Error("episode should end at zero lives")
	}

	// Further steps are no-ops.
	obs, err := g.Step(pilot.ActionFire)
	if err != nil || !obs.Done {
		t.Errorf("Step() after done = (%+v, %v)", obs, err)
	}
}

func TestMaxTicks(t *testing.T) {
	cfg := config.DefaultPilotConfig()
	cfg.Sim.MaxTicks = 5
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(3)

	var obs = g.observe(0)
	for i := 0; i < 5; i++ {
		obs, _ = g.Step(pilot.ActionIdle)
	}
	if !obs.Done {
		t.Error("episode should end at max ticks")
	}
}

func TestNewWaveWhenCleared(t *testing.T) {
	g := newTestGame(t)
	g.Reset(1)
	g.rocks = nil

	g.Step(pilot.ActionIdle)
	if g.wave != 2 {
		t.Errorf("wave = %d, expected 2", g.wave)
	}
	if len(g.rocks) != 5 {
		t.Errorf("rocks = %d, expected 5", len(g.rocks))
	}
}

func TestRockColorsAreObstacles(t *testing.T) {
	p := vision.DefaultPalette()
	for _, c := range rockColors {
		if p.Classify(c) != vision.CategoryObstacle {
			t.Errorf("rock color %v classifies as %v", c, p.Classify(c))
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, lo, hi, expected float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 9},
		{10, 0, 10, 0},
		{14, 15, 210, 209},
	}
	for _, tc := range tests {
		if got := wrap(tc.v, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("wrap(%v, %v, %v) = %v, expected %v", tc.v, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
