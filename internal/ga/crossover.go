package ga

import "fmt"

// CycleCrossover builds one child from two parents that share start city 0.
//
// Starting at position 1 it walks one cycle: the child takes parent1's value
// at the current position, then moves to the position where parent2 holds
// that same value. Positions on the cycle come from parent1, every other
// position from parent2. The child is a permutation whenever both parents
// are, and child[0] is always 0.
//
// Malformed parents are a programming error and cause a panic.
func CycleCrossover(parent1, parent2 []int) []int {
	n := len(parent1)
	if len(parent2) != n {
		panic(fmt.Sprintf("ga: cycle crossover: parent lengths differ (%d vs %d)", n, len(parent2)))
	}

	// where[v] is the position of v in parent2, searched over 1..n-1 only
	where := make([]int, n)
	for i := range where {
		where[i] = -1
	}
	for i := 1; i < n; i++ {
		where[parent2[i]] = i
	}

	child := make([]int, n)
	visited := make([]bool, n)

	current := 1
	for !visited[current] {
		child[current] = parent1[current]
		visited[current] = true

		next := where[parent1[current]]
		if next < 0 {
			panic(fmt.Sprintf("ga: cycle crossover: value %d at position %d of parent1 not found in parent2", parent1[current], current))
		}
		current = next
	}

	for i := 1; i < n; i++ {
		if !visited[i] {
			child[i] = parent2[i]
		}
	}
	child[0] = 0

	return child
}
