package tour

import (
	"errors"
	"fmt"
	"strings"
)

// MinPoints is the smallest point set the optimizer accepts. Below three
// points every closed tour has the same length.
const MinPoints = 3

var (
	// ErrTooFewPoints is returned when an instance has fewer than MinPoints points.
	ErrTooFewPoints = errors.New("tour: too few points")

	// ErrLabelMismatch is returned when labels do not pair up with points.
	ErrLabelMismatch = errors.New("tour: labels do not match points")
)

// Instance is an immutable set of points with one display label per point.
// Index 0 is the start city of every tour.
type Instance struct {
	points []Point
	labels []string
}

// NewInstance creates an instance from points and their labels.
// Both slices are copied.
func NewInstance(points []Point, labels []string) (*Instance, error) {
	if len(points) < MinPoints {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrTooFewPoints, len(points), MinPoints)
	}
	if len(labels) != len(points) {
		return nil, fmt.Errorf("%w: %d labels for %d points", ErrLabelMismatch, len(labels), len(points))
	}

	seen := make(map[string]struct{}, len(labels))
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: empty label at index %d", ErrLabelMismatch, i)
		}
		if _, dup := seen[l]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrLabelMismatch, l)
		}
		seen[l] = struct{}{}
	}

	return &Instance{
		points: append([]Point(nil), points...),
		labels: append([]string(nil), labels...),
	}, nil
}

// Reference returns the built-in eight point instance A..H
func Reference() *Instance {
	inst, err := NewInstance(
		[]Point{
			{0, 3}, // A
			{7, 5}, // B
			{6, 0}, // C
			{4, 3}, // D
			{1, 0}, // E
			{5, 3}, // F
			{2, 2}, // G
			{4, 1}, // H
		},
		[]string{"A", "B", "C", "D", "E", "F", "G", "H"},
	)
	if err != nil {
		panic(err)
	}
	return inst
}

// N returns the number of points
func (in *Instance) N() int {
	return len(in.points)
}

// Point returns the point at index i
func (in *Instance) Point(i int) Point {
	return in.points[i]
}

// Label returns the display label of point i
func (in *Instance) Label(i int) string {
	return in.labels[i]
}

// Length returns the length of the closed tour visiting points in path order,
// including the edge from the last point back to the first.
// path must be a permutation of 0..N-1; anything else is undefined.
func (in *Instance) Length(path []int) float64 {
	n := len(path)
	var total float64
	for i := 0; i < n-1; i++ {
		total += Distance(in.points[path[i]], in.points[path[i+1]])
	}
	total += Distance(in.points[path[n-1]], in.points[path[0]])
	return total
}

// Labels returns the labels of path in visiting order, closed with the
// label of the first point.
func (in *Instance) Labels(path []int) []string {
	out := make([]string, 0, len(path)+1)
	for _, idx := range path {
		out = append(out, in.labels[idx])
	}
	if len(path) > 0 {
		out = append(out, in.labels[path[0]])
	}
	return out
}

// Format renders path as space separated labels, e.g. "A G E H A"
func (in *Instance) Format(path []int) string {
	return strings.Join(in.Labels(path), " ")
}
