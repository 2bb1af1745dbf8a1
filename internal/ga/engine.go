package ga

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/cwbudde/tspga/internal/tour"
)

// GenerationStats describes the state after one generation
type GenerationStats struct {
	Restart    int     `json:"restart"`
	Generation int     `json:"generation"`
	Best       float64 `json:"best"` // best-ever distance so far
	Stats
}

// Observer is called after every generation. It must not retain pop.
type Observer func(gs GenerationStats, pop Population)

// Result holds the output of a run
type Result struct {
	Best        Candidate  `json:"best"`
	Initial     float64    `json:"initial"` // best-ever distance before the first generation
	Generations int        `json:"generations"`
	Seed        int64      `json:"seed"`
	Restart     int        `json:"restart"`
	Population  Population `json:"-"`
}

// Engine evolves a population of tours over a fixed instance.
//
// Parents are drawn uniformly at random with replacement, so there is no
// fitness-proportional selection: the only pressure comes from keeping the
// best-ever candidate aside.
type Engine struct {
	inst     *tour.Instance
	cfg      Config
	rng      *rand.Rand
	observer Observer
	restart  int
}

// NewEngine creates an engine. rng is owned by the engine from now on.
func NewEngine(inst *tour.Instance, cfg Config, rng *rand.Rand) (*Engine, error) {
	if inst == nil {
		return nil, fmt.Errorf("instance cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random generator cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		inst: inst,
		cfg:  cfg,
		rng:  rng,
	}, nil
}

// Observe registers fn to be called after every generation
func (e *Engine) Observe(fn Observer) {
	e.observer = fn
}

// Initialize creates the first random population
func (e *Engine) Initialize() Population {
	return NewPopulation(e.inst, e.cfg.PopSize, e.rng)
}

// Breed produces the next generation from pop. pop is only read; the
// children are written to a freshly allocated population.
func (e *Engine) Breed(pop Population) Population {
	next := make(Population, len(pop))
	for i := 0; i+1 < len(next); i += 2 {
		p1 := pop[e.rng.Intn(len(pop))].Path
		p2 := pop[e.rng.Intn(len(pop))].Path

		c1 := CycleCrossover(p1, p2)
		c2 := CycleCrossover(p2, p1)

		Mutate(c1, e.cfg.MutationRatio, e.rng)
		Mutate(c2, e.cfg.MutationRatio, e.rng)

		next[i] = NewCandidate(e.inst, c1)
		next[i+1] = NewCandidate(e.inst, c2)
	}
	return next
}

// Run executes the full generation budget and returns the best tour found
func (e *Engine) Run() *Result {
	pop := e.Initialize()
	best := pop[0].Clone()
	initial := best.Distance

	slog.Debug("Population initialized",
		"restart", e.restart,
		"pop_size", len(pop),
		"initial_distance", initial,
	)

	for gen := 0; gen < e.cfg.MaxGen; gen++ {
		pop = e.Breed(pop)

		for _, c := range pop {
			if c.Distance < best.Distance {
				best = c.Clone()
				slog.Debug("New best tour",
					"restart", e.restart,
					"generation", gen,
					"distance", best.Distance,
				)
			}
		}

		if e.observer != nil {
			e.observer(GenerationStats{
				Restart:    e.restart,
				Generation: gen,
				Best:       best.Distance,
				Stats:      pop.Stats(),
			}, pop)
		}
	}

	return &Result{
		Best:        best,
		Initial:     initial,
		Generations: e.cfg.MaxGen,
		Restart:     e.restart,
		Population:  pop,
	}
}
