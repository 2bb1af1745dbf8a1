package tour

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstanceValidation(t *testing.T) {
	pts := []Point{{0, 0}, {1, 0}, {0, 1}}

	_, err := NewInstance(pts[:2], []string{"A", "B"})
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewInstance(pts, []string{"A", "B"})
	assert.ErrorIs(t, err, ErrLabelMismatch)

	_, err = NewInstance(pts, []string{"A", "B", "A"})
	assert.ErrorIs(t, err, ErrLabelMismatch)

	_, err = NewInstance(pts, []string{"A", "", "C"})
	assert.ErrorIs(t, err, ErrLabelMismatch)

	inst, err := NewInstance(pts, []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.N())
}

func TestNewInstanceCopiesInput(t *testing.T) {
	pts := []Point{{0, 0}, {1, 0}, {0, 1}}
	labels := []string{"A", "B", "C"}
	inst, err := NewInstance(pts, labels)
	require.NoError(t, err)

	pts[0] = Point{9, 9}
	labels[0] = "Z"

	assert.Equal(t, Point{0, 0}, inst.Point(0))
	assert.Equal(t, "A", inst.Label(0))
}

func TestReference(t *testing.T) {
	inst := Reference()
	require.Equal(t, 8, inst.N())
	assert.Equal(t, Point{0, 3}, inst.Point(0))
	assert.Equal(t, Point{4, 1}, inst.Point(7))
	assert.Equal(t, "A", inst.Label(0))
	assert.Equal(t, "H", inst.Label(7))
}

func TestLengthSquare(t *testing.T) {
	inst, err := NewInstance(
		[]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		[]string{"a", "b", "c", "d"},
	)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, inst.Length([]int{0, 1, 2, 3}), 1e-12)
	// Crossing diagonals.
	assert.InDelta(t, 2+2*math.Sqrt2, inst.Length([]int{0, 2, 1, 3}), 1e-12)
}

func TestLengthIncludesClosingEdge(t *testing.T) {
	inst, err := NewInstance(
		[]Point{{0, 0}, {3, 0}, {3, 4}},
		[]string{"a", "b", "c"},
	)
	require.NoError(t, err)

	// 3 + 4 + 5 (closing edge c -> a)
	assert.InDelta(t, 12.0, inst.Length([]int{0, 1, 2}), 1e-12)
}

func TestLengthRotationAndReversalInvariant(t *testing.T) {
	inst := Reference()
	paths := [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{0, 6, 3, 5, 1, 2, 7, 4},
		{0, 7, 1, 6, 2, 5, 3, 4},
	}

	for _, p := range paths {
		want := inst.Length(p)
		for shift := 1; shift < len(p); shift++ {
			assert.InDelta(t, want, inst.Length(rotate(p, shift)), 1e-9, "rotation by %d of %v", shift, p)
		}
		assert.InDelta(t, want, inst.Length(reverse(p)), 1e-9, "reversal of %v", p)
	}
}

func TestFormat(t *testing.T) {
	inst := Reference()
	assert.Equal(t, "A G D F B C H E A", inst.Format([]int{0, 6, 3, 5, 1, 2, 7, 4}))
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H", "A"}, inst.Labels(Identity(8)))
}

func rotate(p []int, k int) []int {
	out := make([]int, len(p))
	for i := range p {
		out[i] = p[(i+k)%len(p)]
	}
	return out
}

func reverse(p []int) []int {
	out := make([]int, len(p))
	for i := range p {
		out[i] = p[len(p)-1-i]
	}
	return out
}
