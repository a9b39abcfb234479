package pilot

import (
	"math"

	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

// Threat is the sticky nearest-obstacle record. It survives frames in which
// no obstacle is visible.
type Threat struct {
	Point    vision.PointF
	Distance float64
	Seen     bool // false until the first obstacle is observed
}

// NoThreat returns the initial record: nothing seen, infinitely far away.
func NoThreat() Threat {
	return Threat{Distance: math.Inf(1)}
}

// Update returns the new sticky threat given this frame's obstacle centroids.
// The nearest centroid replaces the record; ties keep the first one found.
// With no centroids the record is returned unchanged.
func (t Threat) Update(centroids []vision.PointF, ship vision.PointF) Threat {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := vision.Distance(c, ship); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return t
	}
	return Threat{Point: centroids[best], Distance: bestDist, Seen: true}
}
