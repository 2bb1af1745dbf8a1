package ga

import "fmt"

// Config holds the tunables of a genetic algorithm run
type Config struct {
	// PopSize is the number of candidates per generation. Children are bred
	// in pairs, so it must be even.
	PopSize int `json:"popSize"`

	// MaxGen is the fixed number of generations. There is no early exit.
	MaxGen int `json:"maxGen"`

	// CrossoverRatio is recorded and validated, but crossover is applied to
	// every parent pair regardless of its value.
	CrossoverRatio float64 `json:"crossoverRatio"`

	// MutationRatio is the probability that a child gets one random swap
	MutationRatio float64 `json:"mutationRatio"`

	// Seed seeds the random generator of the first (or only) run
	Seed int64 `json:"seed"`

	// Restarts is the number of independent runs; the best tour over all
	// runs wins. 1 runs the algorithm once.
	Restarts int `json:"restarts"`
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{
		PopSize:        8,
		MaxGen:         1000,
		CrossoverRatio: 1.0,
		MutationRatio:  0.01,
		Restarts:       1,
	}
}

// Validate checks that the configuration can drive a run
func (c Config) Validate() error {
	if c.PopSize <= 0 {
		return &ValidationError{Field: "PopSize", Reason: "must be positive"}
	}
	if c.PopSize%2 != 0 {
		return &ValidationError{Field: "PopSize", Reason: fmt.Sprintf("must be even, got %d", c.PopSize)}
	}
	if c.MaxGen < 0 {
		return &ValidationError{Field: "MaxGen", Reason: "cannot be negative"}
	}
	if c.CrossoverRatio < 0 || c.CrossoverRatio > 1 {
		return &ValidationError{Field: "CrossoverRatio", Reason: "must be in [0, 1]"}
	}
	if c.MutationRatio < 0 || c.MutationRatio > 1 {
		return &ValidationError{Field: "MutationRatio", Reason: "must be in [0, 1]"}
	}
	if c.Restarts < 1 {
		return &ValidationError{Field: "Restarts", Reason: "must be at least 1"}
	}
	return nil
}

// ValidationError reports an invalid configuration field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + e.Field + " " + e.Reason
}
