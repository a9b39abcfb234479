package vision

import "math"

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// PointF is a real-valued position such as a centroid.
type PointF struct {
	X, Y float64
}

// Centroid returns the arithmetic mean of the points.
// The result is undefined for an empty slice; callers must check first.
func Centroid(points []Point) PointF {
	var sx, sy int
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return PointF{X: float64(sx) / n, Y: float64(sy) / n}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b PointF) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
