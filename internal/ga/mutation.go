package ga

import "math/rand"

// Mutate swaps two random non-start positions of path with probability
// ratio. Both positions are drawn independently from 1..N-1, so the swap
// may be a no-op. Reports whether a swap was drawn.
func Mutate(path []int, ratio float64, rng *rand.Rand) bool {
	if rng.Float64() >= ratio {
		return false
	}
	n := len(path)
	i := 1 + rng.Intn(n-1)
	j := 1 + rng.Intn(n-1)
	path[i], path[j] = path[j], path[i]
	return true
}
