package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cwbudde/tspga/internal/ga"
	"github.com/cwbudde/tspga/internal/report"
	"github.com/cwbudde/tspga/internal/store"
	"github.com/cwbudde/tspga/internal/tour"
	"github.com/spf13/cobra"
)

// runOptions collects the flags of the run command
type runOptions struct {
	cfg     ga.Config
	dataDir string // empty disables archiving
	plots   bool
}

// runOutcome is what executeRun produced
type runOutcome struct {
	result *ga.Result
	runID  string // empty when nothing was archived
	runDir string
}

var runOpts = runOptions{cfg: ga.DefaultConfig(), plots: true}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evolve the best tour for the built-in point set",
	Long: `Runs the genetic algorithm on the built-in eight point instance A..H and
prints the best tour found, starting and ending at A, with its length.

Parents are drawn uniformly at random; selection pressure only comes from
keeping the best tour ever seen. The full generation budget is always used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := executeRun(cmd.OutOrStdout(), runOpts)
		return err
	},
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runOpts.cfg.PopSize, "pop", runOpts.cfg.PopSize, "Population size (even)")
	f.IntVar(&runOpts.cfg.MaxGen, "gens", runOpts.cfg.MaxGen, "Number of generations")
	f.Float64Var(&runOpts.cfg.CrossoverRatio, "crossover", runOpts.cfg.CrossoverRatio, "Crossover ratio (recorded; crossover is always applied)")
	f.Float64Var(&runOpts.cfg.MutationRatio, "mutation", runOpts.cfg.MutationRatio, "Probability of one swap per child")
	f.Int64Var(&runOpts.cfg.Seed, "seed", 0, "Random seed (0 = seed from the clock)")
	f.IntVar(&runOpts.cfg.Restarts, "restarts", runOpts.cfg.Restarts, "Independent runs; the best tour wins")
	f.StringVar(&runOpts.dataDir, "data-dir", "", "Archive the run under this directory (empty disables archiving; the runs commands read "+defaultDataDir+" by default)")
	f.BoolVar(&runOpts.plots, "plots", runOpts.plots, "Render tour and convergence plots into the archive")

	rootCmd.AddCommand(runCmd)
}

func executeRun(out io.Writer, opts runOptions) (*runOutcome, error) {
	cfg := opts.cfg
	cfg.Seed = ga.ResolveSeed(cfg.Seed)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	inst := tour.Reference()
	outcome := &runOutcome{}

	var (
		archive  *store.FSStore
		trace    *store.TraceWriter
		traceErr error
		observer ga.Observer
	)
	if opts.dataDir != "" {
		var err error
		archive, err = store.NewFSStore(opts.dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open run archive: %w", err)
		}
		outcome.runID = store.NewRunID()
		outcome.runDir = archive.RunDir(outcome.runID)

		trace, err = store.NewTraceWriter(archive.BaseDir(), outcome.runID)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace: %w", err)
		}
		slog.Debug("Writing trace", "path", trace.Path())
		defer func() {
			if trace != nil {
				trace.Close()
			}
		}()

		observer = func(gs ga.GenerationStats, _ ga.Population) {
			if traceErr != nil {
				return
			}
			traceErr = trace.Write(store.TraceEntry{
				Restart:    gs.Restart,
				Generation: gs.Generation,
				Best:       gs.Best,
				Min:        gs.Min,
				Mean:       gs.Mean,
				StdDev:     gs.StdDev,
				Max:        gs.Max,
			})
		}
	}

	slog.Info("Starting run", "seed", cfg.Seed, "data_dir", opts.dataDir)

	start := time.Now()
	res, err := ga.Run(inst, cfg, observer)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	outcome.result = res

	tour.MustPermutation(res.Best.Path, inst.N())

	if err := report.WriteResult(out, inst, res.Best); err != nil {
		return nil, fmt.Errorf("failed to write result: %w", err)
	}

	slog.Info("Run complete",
		"elapsed", elapsed,
		"initial_distance", res.Initial,
		"best_distance", res.Best.Distance,
		"seed", res.Seed,
		"restart", res.Restart,
	)

	if archive == nil {
		return outcome, nil
	}

	if traceErr != nil {
		return nil, fmt.Errorf("failed to write trace: %w", traceErr)
	}
	err = trace.Close()
	trace = nil
	if err != nil {
		return nil, err
	}

	record := store.NewRunRecord(outcome.runID, inst, cfg, res, elapsed)
	record.Host = store.CollectHost()
	if err := archive.SaveRun(record); err != nil {
		return nil, fmt.Errorf("failed to archive run: %w", err)
	}

	if opts.plots {
		if err := renderPlots(archive, inst, outcome.runID, res); err != nil {
			return nil, err
		}
	}

	slog.Info("Run archived", "run_id", outcome.runID, "path", outcome.runDir)
	return outcome, nil
}

// renderPlots writes tour.png and convergence.png next to run.json
func renderPlots(archive *store.FSStore, inst *tour.Instance, runID string, res *ga.Result) error {
	dir := archive.RunDir(runID)

	if err := report.PlotTour(inst, res.Best.Path, res.Best.Distance, filepath.Join(dir, "tour.png")); err != nil {
		return err
	}

	if res.Generations == 0 {
		return nil
	}

	reader, err := store.NewTraceReader(archive.BaseDir(), runID)
	if err != nil {
		return fmt.Errorf("failed to reopen trace: %w", err)
	}
	defer reader.Close()

	entries, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read trace: %w", err)
	}

	return report.PlotConvergence(entries, res.Restart, filepath.Join(dir, "convergence.png"))
}
