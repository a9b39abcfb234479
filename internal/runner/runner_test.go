package runner

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroids-pilot/internal/config"
	"github.com/vovakirdan/asteroids-pilot/internal/games/asteroids"
	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

var rock = vision.RGB{180, 122, 48}

// scriptedEnv shows a rock next to the ship and takes a life on tick 3.
type scriptedEnv struct {
	ticks    int
	length   int
	lives    int
	received []pilot.Action
	failAt   int
}

func (e *scriptedEnv) ID() string    { return "scripted" }
func (e *scriptedEnv) Title() string { return "Scripted" }
func (e *scriptedEnv) Score() int    { return e.ticks * 10 }

func (e *scriptedEnv) Reset(int64) (registry.Observation, error) {
	e.ticks = 0
	e.lives = 3
	e.received = nil
	return e.observe(), nil
}

func (e *scriptedEnv) Step(a pilot.Action) (registry.Observation, error) {
	if e.failAt > 0 && e.ticks == e.failAt {
		return registry.Observation{}, errors.New("boom")
	}
	e.received = append(e.received, a)
	e.ticks++
	if e.ticks == 3 {
		e.lives--
	}
	return e.observe(), nil
}

func (e *scriptedEnv) observe() registry.Observation {
	f := vision.NewFrame(160, 210)
	f.FillRect(79, 104, 3, 3, vision.ShipColor)
	f.FillRect(98, 103, 5, 5, rock)
	return registry.Observation{
		Frame: f,
		Done:  e.ticks >= e.length,
		Lives: e.lives,
	}
}

func quietOptions() Options {
	return Options{Seed: 7, Logger: log.New(io.Discard)}
}

func TestRunScriptedEpisode(t *testing.T) {
	env := &scriptedEnv{length: 5}
	p := pilot.New(pilot.DefaultConfig())

	r, err := Run(context.Background(), env, p, quietOptions())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if r.EnvID != "scripted" || r.Seed != 7 {
		t.Errorf("identity = %s/%d", r.EnvID, r.Seed)
	}
	if r.Ticks != 5 {
		t.Errorf("Ticks = %d, expected 5", r.Ticks)
	}
	if r.Score != 50 {
		t.Errorf("Score = %d, expected 50", r.Score)
	}
	if r.LivesLost != 1 {
		t.Errorf("LivesLost = %d, expected 1", r.LivesLost)
	}
	// The rock sits 20px from the ship, inside the radius, every tick.
	if r.EvadeTicks != 5 {
		t.Errorf("EvadeTicks = %d, expected 5", r.EvadeTicks)
	}
	if r.Truncated {
		t.Error("episode ended by the environment should not be truncated")
	}

	total := 0
	for _, n := range r.Actions {
		total += n
	}
	if total != r.Ticks || len(env.received) != r.Ticks {
		t.Errorf("histogram total %d, env received %d, ticks %d", total, len(env.received), r.Ticks)
	}
	for i, a := range env.received {
		if a != pilot.ActionTurnLeft && a != pilot.ActionTurnRight && a != pilot.ActionThrust {
			t.Errorf("tick %d: evading pilot chose %v", i, a)
		}
	}
}

func TestRunMaxTicks(t *testing.T) {
	env := &scriptedEnv{length: 100}
	opts := quietOptions()
	opts.MaxTicks = 4

	r, err := Run(context.Background(), env, pilot.New(pilot.DefaultConfig()), opts)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if r.Ticks != 4 || !r.Truncated {
		t.Errorf("Ticks = %d, Truncated = %v", r.Ticks, r.Truncated)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := Run(ctx, &scriptedEnv{length: 100}, pilot.New(pilot.DefaultConfig()), quietOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if r.Ticks != 0 {
		t.Errorf("Ticks = %d, expected 0", r.Ticks)
	}
}

func TestRunStepError(t *testing.T) {
	env := &scriptedEnv{length: 100, failAt: 2}

	r, err := Run(context.Background(), env, pilot.New(pilot.DefaultConfig()), quietOptions())
	if err == nil {
		t.Fatal("Run() should surface the step error")
	}
	if r.Ticks != 2 {
		t.Errorf("partial Ticks = %d, expected 2", r.Ticks)
	}
}

func TestSessionStepAfterDone(t *testing.T) {
	env := &scriptedEnv{length: 1}
	s, err := Start(env, pilot.New(pilot.DefaultConfig()), quietOptions())
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if err := s.Step(); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if !s.Done() {
		t.Fatal("session should be done after the last frame")
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step() after done failed: %v", err)
	}
	if s.Result().Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", s.Result().Ticks)
	}
	if s.LastAction() != env.received[0] {
		t.Errorf("LastAction() = %v, env got %v", s.LastAction(), env.received[0])
	}
}

func TestResultEpisode(t *testing.T) {
	r := Result{EnvID: "asteroids", Seed: 3, Score: 120, Ticks: 10, LivesLost: 2, EvadeTicks: 4}
	r.Actions[pilot.ActionFire] = 3
	r.Actions[pilot.ActionTurnLeft] = 2
	r.Actions[pilot.ActionTurnRight] = 1
	r.Actions[pilot.ActionThrust] = 1
	r.Actions[pilot.ActionIdle] = 3

	e := r.Episode()
	if e.Fires != 3 || e.Turns != 3 || e.Thrusts != 1 || e.Idles != 3 {
		t.Errorf("Episode() action counts = %+v", e)
	}
	if e.EnvID != "asteroids" || e.Score != 120 || e.LivesLost != 2 || e.EvadeTicks != 4 {
		t.Errorf("Episode() = %+v", e)
	}
	if r.Count(pilot.Action(99)) != 0 {
		t.Error("Count() of an invalid action should be 0")
	}
}

func TestRunSimulatedAsteroids(t *testing.T) {
	game, err := asteroids.New(config.DefaultPilotConfig())
	if err != nil {
		t.Fatalf("asteroids.New() failed: %v", err)
	}
	opts := quietOptions()
	opts.MaxTicks = 300

	first, err := Run(context.Background(), game, pilot.New(pilot.DefaultConfig()), opts)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if first.Ticks == 0 {
		t.Fatal("no ticks played")
	}
	if first.Count(pilot.ActionFire) == 0 {
		t.Error("pilot never fired in 300 ticks")
	}

	second, err := Run(context.Background(), game, pilot.New(pilot.DefaultConfig()), opts)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if first.Score != second.Score || first.Ticks != second.Ticks || first.Actions != second.Actions {
		t.Errorf("same seed gave different episodes: %+v vs %+v", first, second)
	}
}
