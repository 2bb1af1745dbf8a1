package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/cwbudde/tspga/internal/ga"
	"github.com/cwbudde/tspga/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultPattern = regexp.MustCompile(`^Best tour: A( [B-H]){7} A\nShortest distance: \d+\.\d{2}\n$`)

func testRunOptions(seed int64, dataDir string) runOptions {
	cfg := ga.DefaultConfig()
	cfg.Seed = seed
	cfg.MaxGen = 200
	return runOptions{cfg: cfg, dataDir: dataDir, plots: true}
}

func TestExecuteRunPrintsClosedTour(t *testing.T) {
	var out bytes.Buffer
	outcome, err := executeRun(&out, testRunOptions(42, ""))
	require.NoError(t, err)

	assert.Regexp(t, resultPattern, out.String())
	assert.Empty(t, outcome.runID, "nothing is archived without --data-dir")
	assert.Equal(t, int64(42), outcome.result.Seed)
}

func TestExecuteRunDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	_, err := executeRun(&a, testRunOptions(7, ""))
	require.NoError(t, err)
	_, err = executeRun(&b, testRunOptions(7, ""))
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestExecuteRunResolvesZeroSeed(t *testing.T) {
	outcome, err := executeRun(&bytes.Buffer{}, testRunOptions(0, ""))
	require.NoError(t, err)
	assert.NotZero(t, outcome.result.Seed)
}

func TestExecuteRunRejectsInvalidConfig(t *testing.T) {
	opts := testRunOptions(1, t.TempDir())
	opts.cfg.PopSize = 5

	var out bytes.Buffer
	_, err := executeRun(&out, opts)

	var verr *ga.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, out.String())
}

func TestExecuteRunArchives(t *testing.T) {
	dir := t.TempDir()
	opts := testRunOptions(99, dir)
	opts.cfg.Restarts = 2

	outcome, err := executeRun(&bytes.Buffer{}, opts)
	require.NoError(t, err)
	require.NotEmpty(t, outcome.runID)

	for _, name := range []string{"run.json", "trace.jsonl", "tour.png", "convergence.png"} {
		assert.FileExists(t, filepath.Join(outcome.runDir, name))
	}

	archive, err := store.NewFSStore(dir)
	require.NoError(t, err)
	record, err := archive.LoadRun(outcome.runID)
	require.NoError(t, err)
	require.NoError(t, record.Validate())
	assert.Equal(t, outcome.result.Best.Path, record.BestPath)
	assert.Equal(t, int64(99), record.Config.Seed)
	assert.Equal(t, outcome.result.Seed, record.Seed)

	reader, err := store.NewTraceReader(dir, outcome.runID)
	require.NoError(t, err)
	defer reader.Close()
	entries, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, opts.cfg.MaxGen*opts.cfg.Restarts)

	last := entries[len(entries)-1]
	assert.Equal(t, 1, last.Restart)
	assert.Equal(t, opts.cfg.MaxGen-1, last.Generation)
}

func TestExecuteRunWithoutPlots(t *testing.T) {
	opts := testRunOptions(3, t.TempDir())
	opts.plots = false

	outcome, err := executeRun(&bytes.Buffer{}, opts)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outcome.runDir, "run.json"))
	_, err = os.Stat(filepath.Join(outcome.runDir, "tour.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestExecuteRunZeroGenerations(t *testing.T) {
	opts := testRunOptions(4, t.TempDir())
	opts.cfg.MaxGen = 0

	outcome, err := executeRun(&bytes.Buffer{}, opts)
	require.NoError(t, err)

	assert.Equal(t, outcome.result.Initial, outcome.result.Best.Distance)
	assert.FileExists(t, filepath.Join(outcome.runDir, "tour.png"))
	assert.NoFileExists(t, filepath.Join(outcome.runDir, "convergence.png"))
}

func TestRunDataDirHelpNamesRunsDefault(t *testing.T) {
	runFlag := runCmd.Flags().Lookup("data-dir")
	runsFlag := runsCmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, runFlag)
	require.NotNil(t, runsFlag)

	assert.Equal(t, "", runFlag.DefValue)
	assert.Equal(t, defaultDataDir, runsFlag.DefValue)
	assert.Contains(t, runFlag.Usage, runsFlag.DefValue)
}
