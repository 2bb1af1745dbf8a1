package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/tspga/internal/store"
	"github.com/spf13/cobra"
)

// defaultDataDir is where the runs commands look for the archive
const defaultDataDir = "./data"

var (
	runsDataDir   string
	keepLast      int
	olderThanDays int
	forceClean    bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage archived runs",
	Long: `Inspect and clean runs archived with "run --data-dir".
Archived runs are output only; they are never resumed.`,
}

var listRunsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all archived runs",
	RunE:  runListRuns,
}

var showRunCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the details of one archived run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowRun,
}

var cleanRunsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old archived runs",
	Long: `Delete archived runs based on retention policy.
You can keep only the newest N runs and/or delete runs older than N days.`,
	RunE: runCleanRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.AddCommand(listRunsCmd)
	runsCmd.AddCommand(showRunCmd)
	runsCmd.AddCommand(cleanRunsCmd)

	runsCmd.PersistentFlags().StringVar(&runsDataDir, "data-dir", defaultDataDir, "Base directory of the run archive")

	cleanRunsCmd.Flags().IntVar(&keepLast, "keep-last", 0, "Keep only the newest N runs (0 = keep all)")
	cleanRunsCmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete runs older than N days (0 = no age limit)")
	cleanRunsCmd.Flags().BoolVarP(&forceClean, "force", "f", false, "Skip confirmation prompt")
}

func runListRuns(cmd *cobra.Command, args []string) error {
	archive, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to open run archive: %w", err)
	}

	infos, err := archive.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No runs found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tTIMESTAMP\tGENS\tRESTARTS\tSEED\tDISTANCE\tSIZE")
	fmt.Fprintln(w, "------\t---------\t----\t--------\t----\t--------\t----")

	for _, info := range infos {
		sizeStr := "unknown"
		if size, err := getDirSize(archive.RunDir(info.RunID)); err == nil {
			sizeStr = formatBytes(size)
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2f\t%s\n",
			shortID(info.RunID),
			info.Timestamp.Format("2006-01-02 15:04:05"),
			info.Generations,
			info.Restarts,
			info.Seed,
			info.BestDistance,
			sizeStr,
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal runs: %d\n", len(infos))
	return nil
}

func runShowRun(cmd *cobra.Command, args []string) error {
	archive, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to open run archive: %w", err)
	}

	record, err := archive.LoadRun(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run: %s\n", record.RunID)
	fmt.Fprintf(out, "Finished: %s\n", record.Timestamp.Format(time.RFC3339))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "  Points: %d\n", record.Points)
	fmt.Fprintf(out, "  Population: %d\n", record.Config.PopSize)
	fmt.Fprintf(out, "  Generations: %d\n", record.Config.MaxGen)
	fmt.Fprintf(out, "  Mutation ratio: %g\n", record.Config.MutationRatio)
	fmt.Fprintf(out, "  Crossover ratio: %g\n", record.Config.CrossoverRatio)
	fmt.Fprintf(out, "  Restarts: %d\n", record.Config.Restarts)
	fmt.Fprintf(out, "  Seed: %d\n", record.Config.Seed)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Result:")
	fmt.Fprintf(out, "  Best tour: %s\n", strings.Join(record.BestTour, " "))
	fmt.Fprintf(out, "  Shortest distance: %.2f\n", record.BestDistance)
	fmt.Fprintf(out, "  Initial distance: %.2f\n", record.InitialDistance)
	if record.InitialDistance > 0 {
		improvement := record.InitialDistance - record.BestDistance
		fmt.Fprintf(out, "  Improvement: %.2f (%.1f%%)\n", improvement, improvement/record.InitialDistance*100)
	}
	fmt.Fprintf(out, "  Winning restart: %d (seed %d)\n", record.Restart, record.Seed)
	fmt.Fprintf(out, "  Elapsed: %s\n", time.Duration(record.ElapsedSeconds*float64(time.Second)).Round(time.Millisecond))

	if h := record.Host; h != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Host:")
		fmt.Fprintf(out, "  Name: %s\n", h.Hostname)
		fmt.Fprintf(out, "  Platform: %s\n", h.Platform)
		fmt.Fprintf(out, "  CPU: %s (%d cores)\n", h.CPUModel, h.CPUCores)
		fmt.Fprintf(out, "  Memory: %s\n", formatBytes(int64(h.MemoryBytes)))
	}

	return nil
}

func runCleanRuns(cmd *cobra.Command, args []string) error {
	if keepLast == 0 && olderThanDays == 0 {
		return fmt.Errorf("must specify either --keep-last or --older-than")
	}

	archive, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to open run archive: %w", err)
	}

	infos, err := archive.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No runs to clean.")
		return nil
	}

	toDelete := selectRunsForDeletion(infos, keepLast, olderThanDays, time.Now())
	if len(toDelete) == 0 {
		fmt.Fprintln(out, "No runs match deletion criteria.")
		return nil
	}

	fmt.Fprintf(out, "Found %d run(s) to delete:\n", len(toDelete))
	for _, info := range toDelete {
		fmt.Fprintf(out, "  - %s (distance %.2f, %s)\n",
			shortID(info.RunID),
			info.BestDistance,
			info.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	if !forceClean {
		fmt.Fprint(out, "\nProceed with deletion? [y/N]: ")
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	deleted, failed := 0, 0
	for _, info := range toDelete {
		if err := archive.DeleteRun(info.RunID); err != nil {
			slog.Error("Failed to delete run", "run_id", info.RunID, "error", err)
			failed++
			continue
		}
		slog.Info("Deleted run", "run_id", info.RunID)
		deleted++
	}

	fmt.Fprintf(out, "\nDeleted %d run(s), %d failed.\n", deleted, failed)
	return nil
}

// selectRunsForDeletion applies the retention policy: runs older than
// olderThanDays are dropped, then only the newest keepLast survive.
// A zero limit disables that rule.
func selectRunsForDeletion(infos []store.RunInfo, keepLast, olderThanDays int, now time.Time) []store.RunInfo {
	marked := make(map[string]bool)
	var toDelete []store.RunInfo

	mark := func(info store.RunInfo) {
		if !marked[info.RunID] {
			marked[info.RunID] = true
			toDelete = append(toDelete, info)
		}
	}

	if olderThanDays > 0 {
		cutoff := now.AddDate(0, 0, -olderThanDays)
		for _, info := range infos {
			if info.Timestamp.Before(cutoff) {
				mark(info)
			}
		}
	}

	if keepLast > 0 && len(infos) > keepLast {
		sorted := append([]store.RunInfo(nil), infos...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})
		for _, info := range sorted[:len(sorted)-keepLast] {
			mark(info)
		}
	}

	return toDelete
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12] + "..."
	}
	return id
}

// getDirSize calculates the total size of a directory
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
