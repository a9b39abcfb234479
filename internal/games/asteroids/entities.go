package asteroids

import (
	"math"

	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

// rockSize is an asteroid size class. Shots split a rock into two of the
// next size down; small rocks are destroyed.
type rockSize int

const (
	sizeLarge rockSize = iota
	sizeMedium
	sizeSmall
)

// radius returns the drawn radius in pixels.
func (s rockSize) radius() float64 {
	switch s {
	case sizeLarge:
		return 8
	case sizeMedium:
		return 5
	default:
		return 3
	}
}

// points returns the score for destroying a rock of this size.
func (s rockSize) points() int {
	switch s {
	case sizeLarge:
		return 20
	case sizeMedium:
		return 50
	default:
		return 100
	}
}

// rockColors are the obstacle colors the simulator draws with.
// None of them may match a palette color.
var rockColors = []vision.RGB{
	{180, 122, 48},
	{184, 70, 162},
	{135, 183, 84},
	{187, 187, 53},
	{104, 72, 198},
}

// scoreColor is used for the digits in the scoreboard band.
var scoreColor = vision.RGB{184, 50, 50}

type rock struct {
	x, y   float64
	vx, vy float64
	size   rockSize
	color  vision.RGB
}

type bullet struct {
	x, y   float64
	vx, vy float64
	ttl    int
}

type ship struct {
	x, y    float64
	vx, vy  float64
	angle   float64 // degrees, 90 = up
	alive   bool
	respawn int // ticks until the ship may reappear
}

const (
	shipRadius   = 3.0
	turnDegrees  = 6.0  // one heading-counter half step
	spawnClear   = 24.0 // respawn waits until no rock is this close to center
	spawnMinDist = 50.0 // new rocks appear at least this far from center
)

// nose returns the tip of the ship in the direction it faces.
func (s *ship) nose() (float64, float64) {
	rad := s.angle * math.Pi / 180
	return s.x + math.Cos(rad)*(shipRadius+1), s.y - math.Sin(rad)*(shipRadius+1)
}

// wrap maps v into [lo, hi).
func wrap(v, lo, hi float64) float64 {
	span := hi - lo
	for v < lo {
		v += span
	}
	for v >= hi {
		v -= span
	}
	return v
}

// torusDist returns the distance between two points on a wrapping playfield.
func torusDist(ax, ay, bx, by, w, h float64) float64 {
	dx := math.Abs(ax - bx)
	dy := math.Abs(ay - by)
	if dx > w/2 {
		dx = w - dx
	}
	if dy > h/2 {
		dy = h - dy
	}
	return math.Hypot(dx, dy)
}
