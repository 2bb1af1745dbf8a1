package ga

import (
	"testing"

	"github.com/cwbudde/tspga/internal/tour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg Config, seed int64) *Engine {
	t.Helper()
	e, err := NewEngine(tour.Reference(), cfg, NewRand(seed))
	require.NoError(t, err)
	return e
}

func TestNewEngineRejectsBadInput(t *testing.T) {
	_, err := NewEngine(nil, DefaultConfig(), NewRand(1))
	assert.Error(t, err)

	_, err = NewEngine(tour.Reference(), DefaultConfig(), nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.PopSize = 3
	_, err = NewEngine(tour.Reference(), cfg, NewRand(1))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestBreedProducesFreshValidPopulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MutationRatio = 0.5
	e := newTestEngine(t, cfg, 21)
	inst := tour.Reference()

	pop := e.Initialize()
	snapshot := make(Population, len(pop))
	for i, c := range pop {
		snapshot[i] = c.Clone()
	}

	next := e.Breed(pop)

	require.Len(t, next, cfg.PopSize)
	assert.Equal(t, snapshot, pop, "parents must not be modified")
	for i, c := range next {
		require.NoError(t, tour.ValidatePermutation(c.Path, inst.N()))
		require.Equal(t, 0, c.Path[0])
		require.InDelta(t, inst.Length(c.Path), c.Distance, 1e-12)
		for _, parent := range pop {
			require.False(t, &c.Path[0] == &parent.Path[0], "child %d aliases a parent", i)
		}
	}
}

func TestRunBestIsMonotone(t *testing.T) {
	cfg := DefaultConfig()
	e := newTestEngine(t, cfg, 99)
	inst := tour.Reference()

	var history []GenerationStats
	e.Observe(func(gs GenerationStats, pop Population) {
		require.Len(t, pop, cfg.PopSize)
		require.LessOrEqual(t, gs.Best, gs.Min+1e-12, "best-ever cannot be worse than the current population")
		history = append(history, gs)
	})

	res := e.Run()

	require.Len(t, history, cfg.MaxGen)
	for g := 1; g < len(history); g++ {
		require.LessOrEqual(t, history[g].Best, history[g-1].Best, "best-ever grew at generation %d", g)
		require.Equal(t, g, history[g].Generation)
	}
	assert.LessOrEqual(t, res.Best.Distance, res.Initial)
	assert.Equal(t, history[len(history)-1].Best, res.Best.Distance)
	assert.InDelta(t, inst.Length(res.Best.Path), res.Best.Distance, 1e-12)
}

func TestRunFinalPopulation(t *testing.T) {
	cfg := DefaultConfig()
	res := newTestEngine(t, cfg, 5).Run()

	require.Len(t, res.Population, cfg.PopSize)
	for _, c := range res.Population {
		require.NoError(t, tour.ValidatePermutation(c.Path, 8))
		require.Equal(t, 0, c.Path[0])
	}
	assert.Equal(t, cfg.MaxGen, res.Generations)
}

func TestRunZeroGenerations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxGen = 0
	called := false
	e := newTestEngine(t, cfg, 8)
	e.Observe(func(GenerationStats, Population) { called = true })

	res := e.Run()

	assert.False(t, called)
	assert.Equal(t, res.Initial, res.Best.Distance)
	assert.Equal(t, res.Population[0].Path, res.Best.Path, "best-ever starts as the first member")
}

func TestRunBestIsNotAliased(t *testing.T) {
	res := newTestEngine(t, DefaultConfig(), 17).Run()
	for _, c := range res.Population {
		assert.False(t, &c.Path[0] == &res.Best.Path[0])
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	r1 := newTestEngine(t, cfg, 1234).Run()
	r2 := newTestEngine(t, cfg, 1234).Run()

	assert.Equal(t, r1.Best, r2.Best)
	assert.Equal(t, r1.Initial, r2.Initial)
	assert.Equal(t, r1.Population, r2.Population)
}

func TestRunCrossoverRatioDoesNotGateCrossover(t *testing.T) {
	always := DefaultConfig()
	always.CrossoverRatio = 1
	never := DefaultConfig()
	never.CrossoverRatio = 0

	r1 := newTestEngine(t, always, 9).Run()
	r0 := newTestEngine(t, never, 9).Run()

	assert.Equal(t, r1.Best, r0.Best)
	assert.Equal(t, r1.Population, r0.Population)
}
