package tour

import (
	"errors"
	"fmt"
)

// ErrNotPermutation is returned when a path is not a permutation of 0..n-1.
var ErrNotPermutation = errors.New("tour: not a permutation")

// ValidatePermutation checks that path holds every index 0..n-1 exactly once.
func ValidatePermutation(path []int, n int) error {
	if len(path) != n {
		return fmt.Errorf("%w: length %d, want %d", ErrNotPermutation, len(path), n)
	}
	seen := make([]bool, n)
	for i, v := range path {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: index %d out of range at position %d", ErrNotPermutation, v, i)
		}
		if seen[v] {
			return fmt.Errorf("%w: index %d repeated at position %d", ErrNotPermutation, v, i)
		}
		seen[v] = true
	}
	return nil
}

// MustPermutation panics if path is not a permutation of 0..n-1.
// Paths produced inside the optimizer are trusted to be valid; this is the
// assertion used at their boundaries and in tests.
func MustPermutation(path []int, n int) {
	if err := ValidatePermutation(path, n); err != nil {
		panic(err)
	}
}

// Identity returns the permutation 0, 1, ..., n-1
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
