// Package asteroids is a small deterministic Asteroids simulator that renders
// full RGB frames in the arcade video mode. It is the default environment
// the pilot plays against.
package asteroids

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/vovakirdan/asteroids-pilot/internal/config"
	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

// ID is the registry identifier of the simulator.
const ID = "asteroids"

// Game implements registry.Env.
type Game struct {
	cfg     config.SimConfig
	palette vision.Palette
	width   int
	height  int
	top     float64 // first playfield row, just below the scoreboard
	lives0  int

	rng    *rand.Rand
	tick   int
	score  int
	lives  int
	wave   int
	ship   ship
	rocks  []rock
	shots  []bullet
	colors []vision.RGB
	frame  *vision.Frame
	done   bool
}

func init() {
	registry.Register(ID, "Asteroids (simulated)", func(opts registry.Options) (registry.Env, error) {
		return New(opts.Config)
	})
}

// New creates a simulator from a validated configuration.
func New(cfg config.PilotConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	palette := cfg.PaletteColors()
	colors := make([]vision.RGB, 0, len(rockColors))
	for _, c := range rockColors {
		if palette.Classify(c) == vision.CategoryObstacle {
			colors = append(colors, c)
		}
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("asteroids: palette leaves no color for rocks")
	}

	return &Game{
		cfg:     cfg.Sim,
		palette: palette,
		width:   cfg.Frame.Width,
		height:  cfg.Frame.Height,
		top:     float64(cfg.Frame.ScoreboardHeight + 1),
		lives0:  cfg.Ship.StartLives,
		colors:  colors,
		frame:   vision.NewFrame(cfg.Frame.Width, cfg.Frame.Height),
	}, nil
}

// ID returns the environment identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Asteroids (simulated)"
}

// Score returns the current episode score.
func (g *Game) Score() int {
	return g.score
}

// Tick returns the number of steps taken in this episode.
func (g *Game) Tick() int {
	return g.tick
}

// Reset starts a new episode.
func (g *Game) Reset(seed int64) (registry.Observation, error) {
	g.rng = rand.New(rand.NewSource(seed))
	g.tick = 0
	g.score = 0
	g.lives = g.lives0
	g.wave = 0
	g.shots = g.shots[:0]
	g.done = false
	g.spawnShip()
	g.spawnWave()
	g.render()

	return g.observe(0), nil
}

// Step applies the action and advances one tick.
func (g *Game) Step(a pilot.Action) (registry.Observation, error) {
	if g.rng == nil {
		return registry.Observation{}, fmt.Errorf("asteroids: Step before Reset")
	}
	if !a.Valid() {
		return registry.Observation{}, fmt.Errorf("asteroids: invalid action %d", int(a))
	}
	if g.done {
		return g.observe(0), nil
	}

	g.tick++
	g.control(a)
	g.moveShip()
	g.moveShots()
	g.moveRocks()

	reward := g.collideShots()
	g.collideShip()

	if len(g.rocks) == 0 {
		g.spawnWave()
	}
	if g.lives <= 0 || (g.cfg.MaxTicks > 0 && g.tick >= g.cfg.MaxTicks) {
		g.done = true
	}

	g.render()
	return g.observe(reward), nil
}

func (g *Game) observe(reward int) registry.Observation {
	return registry.Observation{
		Frame:  g.frame,
		Reward: float64(reward),
		Done:   g.done,
		Lives:  g.lives,
	}
}

// control applies the pilot's action to the ship.
func (g *Game) control(a pilot.Action) {
	s := &g.ship
	if !s.alive {
		return
	}

	switch a {
	case pilot.ActionTurnRight:
		s.angle = wrap(s.angle-turnDegrees, 0, 360)
	case pilot.ActionTurnLeft:
		s.angle = wrap(s.angle+turnDegrees, 0, 360)
	case pilot.ActionThrust:
		rad := s.angle * math.Pi / 180
		s.vx += math.Cos(rad) * g.cfg.Thrust
		s.vy -= math.Sin(rad) * g.cfg.Thrust
	case pilot.ActionFire:
		if len(g.shots) >= g.cfg.MaxBullets {
			return
		}
		rad := s.angle * math.Pi / 180
		nx, ny := s.nose()
		g.shots = append(g.shots, bullet{
			x:   nx,
			y:   ny,
			vx:  s.vx + math.Cos(rad)*g.cfg.BulletSpeed,
			vy:  s.vy - math.Sin(rad)*g.cfg.BulletSpeed,
			ttl: g.cfg.BulletTTL,
		})
	}
}

func (g *Game) moveShip() {
	s := &g.ship
	if !s.alive {
		if s.respawn > 0 {
			s.respawn--
		}
		if s.respawn == 0 && g.centerClear() {
			g.spawnShip()
		}
		return
	}

	s.vx *= g.cfg.Drag
	s.vy *= g.cfg.Drag
	s.x = wrap(s.x+s.vx, 0, float64(g.width))
	s.y = wrap(s.y+s.vy, g.top, float64(g.height))
}

func (g *Game) moveShots() {
	kept := g.shots[:0]
	for _, b := range g.shots {
		b.ttl--
		if b.ttl <= 0 {
			continue
		}
		b.x = wrap(b.x+b.vx, 0, float64(g.width))
		b.y = wrap(b.y+b.vy, g.top, float64(g.height))
		kept = append(kept, b)
	}
	g.shots = kept
}

func (g *Game) moveRocks() {
	for i := range g.rocks {
		r := &g.rocks[i]
		r.x = wrap(r.x+r.vx, 0, float64(g.width))
		r.y = wrap(r.y+r.vy, g.top, float64(g.height))
	}
}

// collideShots resolves bullet hits and returns the points earned.
func (g *Game) collideShots() int {
	earned := 0
	w, h := float64(g.width), float64(g.height)-g.top

	kept := g.shots[:0]
	for _, b := range g.shots {
		hit := -1
		for i, r := range g.rocks {
			if torusDist(b.x, b.y, r.x, r.y, w, h) <= r.size.radius()+1 {
				hit = i
				break
			}
		}
		if hit < 0 {
			kept = append(kept, b)
			continue
		}
		earned += g.split(hit)
	}
	g.shots = kept
	g.score += earned
	return earned
}

// split destroys rock i, replacing it with two smaller rocks when possible.
func (g *Game) split(i int) int {
	r := g.rocks[i]
	g.rocks = append(g.rocks[:i], g.rocks[i+1:]...)

	if r.size == sizeSmall {
		return r.size.points()
	}
	for k := 0; k < 2; k++ {
		child := r
		child.size = r.size + 1
		child.vx, child.vy = g.randomVelocity(1.3)
		g.rocks = append(g.rocks, child)
	}
	return r.size.points()
}

func (g *Game) collideShip() {
	s := &g.ship
	if !s.alive {
		return
	}
	w, h := float64(g.width), float64(g.height)-g.top
	for _, r := range g.rocks {
		if torusDist(s.x, s.y, r.x, r.y, w, h) <= r.size.radius()+shipRadius {
			g.lives--
			s.alive = false
			s.respawn = g.cfg.RespawnTicks
			return
		}
	}
}

func (g *Game) centerClear() bool {
	cx, cy := float64(g.width)/2, float64(g.height)/2
	w, h := float64(g.width), float64(g.height)-g.top
	for _, r := range g.rocks {
		if torusDist(cx, cy, r.x, r.y, w, h) < spawnClear+r.size.radius() {
			return false
		}
	}
	return true
}

func (g *Game) spawnShip() {
	g.ship = ship{
		x:     float64(g.width) / 2,
		y:     float64(g.height) / 2,
		angle: pilot.ResetHeading,
		alive: true,
	}
}

// spawnWave places a new set of large rocks away from the center.
// Each wave adds one rock.
func (g *Game) spawnWave() {
	g.wave++
	count := g.cfg.Asteroids + g.wave - 1
	cx, cy := float64(g.width)/2, float64(g.height)/2

	g.rocks = g.rocks[:0]
	for len(g.rocks) < count {
		x := g.rng.Float64() * float64(g.width)
		y := g.top + g.rng.Float64()*(float64(g.height)-g.top)
		if math.Hypot(x-cx, y-cy) < spawnMinDist {
			continue
		}
		vx, vy := g.randomVelocity(1)
		g.rocks = append(g.rocks, rock{
			x:     x,
			y:     y,
			vx:    vx,
			vy:    vy,
			size:  sizeLarge,
			color: g.colors[g.rng.Intn(len(g.colors))],
		})
	}
}

func (g *Game) randomVelocity(scale float64) (float64, float64) {
	speed := g.cfg.MinSpeed + g.rng.Float64()*(g.cfg.MaxSpeed-g.cfg.MinSpeed)
	dir := g.rng.Float64() * 2 * math.Pi
	return math.Cos(dir) * speed * scale, math.Sin(dir) * speed * scale
}

// render draws the current state into the frame buffer.
func (g *Game) render() {
	f := g.frame
	f.Fill(g.palette.Background)

	g.drawScore()
	for _, r := range g.rocks {
		g.drawDisc(r.x, r.y, r.size.radius(), r.color)
	}
	for _, b := range g.shots {
		f.Set(int(b.x), int(b.y), g.palette.Projectile)
		f.Set(int(b.x), int(b.y)+1, g.palette.Projectile)
	}
	if g.ship.alive {
		g.drawDisc(g.ship.x, g.ship.y, shipRadius-1, g.palette.Ship)
		nx, ny := g.ship.nose()
		f.Set(int(math.Round(nx)), int(math.Round(ny)), g.palette.Ship)
	}
}

// drawDisc fills a disc, wrapping across the playfield edges.
func (g *Game) drawDisc(cx, cy, radius float64, c vision.RGB) {
	r := int(math.Ceil(radius))
	ix, iy := int(math.Round(cx)), int(math.Round(cy))
	top := int(g.top)
	span := g.height - top

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) > radius*radius {
				continue
			}
			x := ((ix+dx)%g.width + g.width) % g.width
			y := top + ((iy+dy-top)%span+span)%span
			g.frame.Set(x, y, c)
		}
	}
}

// drawScore writes the score into the scoreboard band.
func (g *Game) drawScore() {
	text := strconv.Itoa(g.score)
	x := 4
	for _, ch := range text {
		glyph := digitFont[ch-'0']
		for row, bits := range glyph {
			for col := 0; col < 3; col++ {
				if bits&(4>>col) != 0 {
					g.frame.FillRect(x+col*2, 3+row*2, 2, 2, scoreColor)
				}
			}
		}
		x += 8
	}
	for i := 0; i < g.lives; i++ {
		g.frame.FillRect(g.width-10-i*8, 4, 5, 5, scoreColor)
	}
}
