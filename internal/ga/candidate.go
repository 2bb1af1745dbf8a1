package ga

import (
	"math/rand"

	"github.com/cwbudde/tspga/internal/tour"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Candidate is one tour together with its cached length
type Candidate struct {
	Path     []int   `json:"path"`
	Distance float64 `json:"distance"`
}

// NewCandidate wraps path and computes its length
func NewCandidate(inst *tour.Instance, path []int) Candidate {
	return Candidate{
		Path:     path,
		Distance: inst.Length(path),
	}
}

// RandomCandidate shuffles every position but the start city.
// Each position j in 1..N-1 is swapped with a uniform position in 1..N-1.
// The result is slightly biased compared to Fisher-Yates, which is fine here.
func RandomCandidate(inst *tour.Instance, rng *rand.Rand) Candidate {
	n := inst.N()
	path := tour.Identity(n)
	for j := 1; j < n; j++ {
		k := 1 + rng.Intn(n-1)
		path[j], path[k] = path[k], path[j]
	}
	return NewCandidate(inst, path)
}

// Clone returns a deep copy
func (c Candidate) Clone() Candidate {
	return Candidate{
		Path:     append([]int(nil), c.Path...),
		Distance: c.Distance,
	}
}

// Population is one generation of candidates. Duplicates are allowed.
type Population []Candidate

// NewPopulation creates size random candidates
func NewPopulation(inst *tour.Instance, size int, rng *rand.Rand) Population {
	pop := make(Population, size)
	for i := range pop {
		pop[i] = RandomCandidate(inst, rng)
	}
	return pop
}

// Best returns the index of the shortest candidate, the first one on ties
func (p Population) Best() int {
	best := 0
	for i := 1; i < len(p); i++ {
		if p[i].Distance < p[best].Distance {
			best = i
		}
	}
	return best
}

// Distances returns the cached length of every candidate
func (p Population) Distances() []float64 {
	d := make([]float64, len(p))
	for i, c := range p {
		d[i] = c.Distance
	}
	return d
}

// Stats summarizes the distances of a non-empty population
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// Stats computes distance statistics of the population
func (p Population) Stats() Stats {
	d := p.Distances()
	mean, std := stat.MeanStdDev(d, nil)
	if len(d) < 2 {
		std = 0
	}
	return Stats{
		Min:    floats.Min(d),
		Max:    floats.Max(d),
		Mean:   mean,
		StdDev: std,
	}
}
