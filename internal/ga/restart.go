package ga

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/cwbudde/tspga/internal/tour"
)

// NewRand returns a generator seeded with seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ResolveSeed returns seed, or a wall-clock seed when seed is 0
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := time.Now().UnixNano()
	if s == 0 {
		s = 1
	}
	return s
}

// DeriveSeed mixes a base seed and a restart number into an independent
// seed (SplitMix64 finalizer). Restart 0 keeps the base seed.
func DeriveSeed(base int64, restart int) int64 {
	if restart == 0 {
		return base
	}
	x := uint64(base) ^ (uint64(restart) + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Run performs cfg.Restarts independent runs one after another and returns
// the best one. Restart r is seeded with DeriveSeed(cfg.Seed, r). A later
// run only wins with a strictly shorter tour.
func Run(inst *tour.Instance, cfg Config, observer Observer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("Starting evolution",
		"points", inst.N(),
		"pop_size", cfg.PopSize,
		"max_gen", cfg.MaxGen,
		"mutation_ratio", cfg.MutationRatio,
		"restarts", cfg.Restarts,
		"seed", cfg.Seed,
	)

	var best *Result
	for r := 0; r < cfg.Restarts; r++ {
		seed := DeriveSeed(cfg.Seed, r)
		engine, err := NewEngine(inst, cfg, NewRand(seed))
		if err != nil {
			return nil, err
		}
		engine.restart = r
		engine.Observe(observer)

		res := engine.Run()
		res.Seed = seed

		slog.Debug("Restart finished", "restart", r, "seed", seed, "distance", res.Best.Distance)

		if best == nil || res.Best.Distance < best.Best.Distance {
			best = res
		}
	}

	final := best.Population[best.Population.Best()]
	slog.Info("Evolution complete",
		"initial_distance", best.Initial,
		"best_distance", best.Best.Distance,
		"final_population_best", final.Distance,
		"restart", best.Restart,
	)

	return best, nil
}
