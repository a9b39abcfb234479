// Package runner plays episodes: it feeds each observation to the pilot,
// hands the chosen action back to the environment and keeps the tally.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/storage"
)

// Options controls one episode.
type Options struct {
	Seed     int64
	MaxTicks int // 0 runs until the environment reports Done
	Logger   *log.Logger
}

// Result summarizes a finished episode.
type Result struct {
	EnvID      string
	Seed       int64
	Score      int
	Ticks      int
	LivesLost  int
	Actions    [pilot.NumActions]int
	EvadeTicks int
	Duration   time.Duration
	Truncated  bool // stopped by MaxTicks or cancellation before Done
}

// Count returns how many ticks chose a.
func (r Result) Count(a pilot.Action) int {
	if !a.Valid() {
		return 0
	}
	return r.Actions[a]
}

// Episode converts the result into a storage record.
func (r Result) Episode() storage.Episode {
	return storage.Episode{
		EnvID:      r.EnvID,
		Seed:       r.Seed,
		Score:      r.Score,
		Ticks:      r.Ticks,
		LivesLost:  r.LivesLost,
		Fires:      r.Count(pilot.ActionFire),
		Turns:      r.Count(pilot.ActionTurnLeft) + r.Count(pilot.ActionTurnRight),
		Thrusts:    r.Count(pilot.ActionThrust),
		Idles:      r.Count(pilot.ActionIdle),
		EvadeTicks: r.EvadeTicks,
	}
}

// Session steps one episode a tick at a time. Viewers drive it from their
// own clock; Run drives it in a tight loop.
type Session struct {
	env    registry.Env
	pilot  *pilot.Pilot
	logger *log.Logger

	obs      registry.Observation
	result   Result
	lives    int
	mode     pilot.Mode
	last     pilot.Action
	started  time.Time
	maxTicks int
}

// Start resets the environment and the pilot and returns a session ready for
// its first tick.
func Start(env registry.Env, p *pilot.Pilot, opts Options) (*Session, error) {
	obs, err := env.Reset(opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("runner: reset %s: %w", env.ID(), err)
	}
	p.Reset()

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Session{
		env:      env,
		pilot:    p,
		logger:   logger,
		obs:      obs,
		lives:    obs.Lives,
		mode:     p.State().Mode,
		started:  time.Now(),
		maxTicks: opts.MaxTicks,
		result: Result{
			EnvID: env.ID(),
			Seed:  opts.Seed,
		},
	}, nil
}

// Done reports whether the episode is over.
func (s *Session) Done() bool {
	return s.obs.Done || (s.maxTicks > 0 && s.result.Ticks >= s.maxTicks)
}

// Step runs one tick. It is a no-op once the episode is over.
func (s *Session) Step() error {
	if s.Done() {
		return nil
	}

	a := s.pilot.Act(s.obs.Frame, s.obs.Lives)
	state := s.pilot.State()
	if state.Mode != s.mode {
		s.logger.Debug("mode switch", "tick", s.result.Ticks, "mode", state.Mode,
			"distance", fmt.Sprintf("%.1f", state.Threat.Distance))
		s.mode = state.Mode
	}

	obs, err := s.env.Step(a)
	if err != nil {
		return fmt.Errorf("runner: step %s at tick %d: %w", s.env.ID(), s.result.Ticks, err)
	}

	s.last = a
	s.result.Ticks++
	s.result.Actions[a]++
	if state.Mode == pilot.ModeEvade {
		s.result.EvadeTicks++
	}
	if obs.Lives < s.lives {
		s.result.LivesLost += s.lives - obs.Lives
		s.logger.Info("life lost", "tick", s.result.Ticks, "lives", obs.Lives, "score", s.env.Score())
	}
	s.lives = obs.Lives
	s.obs = obs
	return nil
}

// Observation returns the latest observation.
func (s *Session) Observation() registry.Observation {
	return s.obs
}

// LastAction returns the action chosen on the previous tick.
func (s *Session) LastAction() pilot.Action {
	return s.last
}

// Pilot returns the pilot playing this session.
func (s *Session) Pilot() *pilot.Pilot {
	return s.pilot
}

// Env returns the environment being played.
func (s *Session) Env() registry.Env {
	return s.env
}

// Result returns the tally so far.
func (s *Session) Result() Result {
	r := s.result
	r.Score = s.env.Score()
	r.Duration = time.Since(s.started)
	r.Truncated = !s.obs.Done
	return r
}

// Run plays one episode to the end, the tick limit, or until ctx is done.
// A cancelled run still returns the partial result together with ctx's error.
func Run(ctx context.Context, env registry.Env, p *pilot.Pilot, opts Options) (Result, error) {
	s, err := Start(env, p, opts)
	if err != nil {
		return Result{}, err
	}

	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return s.Result(), err
		}
		if err := s.Step(); err != nil {
			return s.Result(), err
		}
	}

	r := s.Result()
	s.logger.Info("episode finished",
		"env", r.EnvID,
		"seed", r.Seed,
		"score", r.Score,
		"ticks", r.Ticks,
		"lives_lost", r.LivesLost,
		"evade", fmt.Sprintf("%.0f%%", 100*r.Episode().EvadeRatio()),
	)
	return r, nil
}
