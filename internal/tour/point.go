package tour

import "math"

// Point is a fixed location in the plane
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between a and b
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
