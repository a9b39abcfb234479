package pilot

import (
	"math"

	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

// Heading counter constants. The counter moves in half steps; each step is
// worth 6 degrees of estimated rotation.
const (
	HeadingStep       = 0.5
	CounterBound      = 30.0
	DegreesPerCounter = 12.0
	ResetHeading      = 90.0 // degrees, ship pointing up
)

// HeadingFromCounter estimates the ship's facing in degrees.
// Positive counters are rightward turns.
func HeadingFromCounter(counter float64) float64 {
	return ResetHeading - DegreesPerCounter*counter
}

// CounterFromHeading is the inverse of HeadingFromCounter rounded down to a
// whole counter value. Floor matters: (90 - angle) is often negative.
func CounterFromHeading(angle float64) float64 {
	return math.Floor((ResetHeading - angle) / DegreesPerCounter)
}

// NormalizeHeading maps a negative angle into [0, 360) for comparisons.
func NormalizeHeading(angle float64) float64 {
	if angle < 0 {
		return angle + 360
	}
	return angle
}

// AdvanceCounter adds delta to the counter. Landing exactly on either bound
// resets the counter to 0; values just short of a bound are left alone.
func AdvanceCounter(counter, delta float64) float64 {
	counter += delta
	if counter == CounterBound || counter == -CounterBound {
		return 0
	}
	return counter
}

// Bearing returns the angle in degrees from ship to target. Screen y grows
// downward, and the result is negated, so a target straight above is +90,
// straight below is -90, right is 0 and left is -180.
func Bearing(ship, target vision.PointF) float64 {
	return -math.Atan2(target.Y-ship.Y, target.X-ship.X) * 180 / math.Pi
}
