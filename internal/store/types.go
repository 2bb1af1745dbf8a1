package store

import (
	"fmt"
	"time"

	"github.com/cwbudde/tspga/internal/ga"
	"github.com/cwbudde/tspga/internal/tour"
	"github.com/google/uuid"
)

// RunRecord is the archived outcome of one `run` invocation.
//
// Only the best tour is kept. The final population and the random
// generator state are not saved, so a record documents a run but cannot
// resume it. Re-running with Config and Seed reproduces it exactly.
type RunRecord struct {
	// RunID is the unique identifier of this run
	RunID string `json:"runId"`

	// Config is the configuration the run was started with. Config.Seed is
	// the resolved base seed, never 0.
	Config ga.Config `json:"config"`

	// Points is the size of the solved instance
	Points int `json:"points"`

	// BestPath is the winning permutation, starting at index 0
	BestPath []int `json:"bestPath"`

	// BestTour holds the labels of BestPath, closed with the start label
	BestTour []string `json:"bestTour"`

	// BestDistance is the length of BestPath
	BestDistance float64 `json:"bestDistance"`

	// InitialDistance is the best-ever distance before the first generation
	// of the winning restart
	InitialDistance float64 `json:"initialDistance"`

	// Generations run per restart
	Generations int `json:"generations"`

	// Restart is the index of the winning restart and Seed its seed
	Restart int   `json:"restart"`
	Seed    int64 `json:"seed"`

	// ElapsedSeconds is the wall-clock time of the whole evolution
	ElapsedSeconds float64 `json:"elapsedSeconds"`

	// Timestamp records when the run finished
	Timestamp time.Time `json:"timestamp"`

	// Host describes the machine the run executed on, if it could be probed
	Host *HostInfo `json:"host,omitempty"`
}

// RunInfo contains metadata about a run without the tour itself.
type RunInfo struct {
	RunID        string    `json:"runId"`
	BestDistance float64   `json:"bestDistance"`
	Generations  int       `json:"generations"`
	Restarts     int       `json:"restarts"`
	Seed         int64     `json:"seed"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewRunID returns a fresh random run identifier
func NewRunID() string {
	return uuid.New().String()
}

// NewRunRecord builds a record from a finished evolution.
func NewRunRecord(runID string, inst *tour.Instance, cfg ga.Config, res *ga.Result, elapsed time.Duration) *RunRecord {
	return &RunRecord{
		RunID:           runID,
		Config:          cfg,
		Points:          inst.N(),
		BestPath:        append([]int(nil), res.Best.Path...),
		BestTour:        inst.Labels(res.Best.Path),
		BestDistance:    res.Best.Distance,
		InitialDistance: res.Initial,
		Generations:     res.Generations,
		Restart:         res.Restart,
		Seed:            res.Seed,
		ElapsedSeconds:  elapsed.Seconds(),
		Timestamp:       time.Now(),
	}
}

// ToInfo converts a full RunRecord to RunInfo (metadata only).
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:        r.RunID,
		BestDistance: r.BestDistance,
		Generations:  r.Generations,
		Restarts:     r.Config.Restarts,
		Seed:         r.Config.Seed,
		Timestamp:    r.Timestamp,
	}
}

// Validate checks if the record has valid data.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if err := r.Config.Validate(); err != nil {
		return &ValidationError{Field: "Config", Reason: err.Error()}
	}
	if r.Points < tour.MinPoints {
		return &ValidationError{Field: "Points", Reason: fmt.Sprintf("must be at least %d", tour.MinPoints)}
	}
	if err := tour.ValidatePermutation(r.BestPath, r.Points); err != nil {
		return &ValidationError{Field: "BestPath", Reason: err.Error()}
	}
	if r.BestPath[0] != 0 {
		return &ValidationError{Field: "BestPath", Reason: "must start at index 0"}
	}
	if len(r.BestTour) != r.Points+1 {
		return &ValidationError{
			Field:  "BestTour",
			Reason: fmt.Sprintf("length mismatch: expected %d labels for %d points", r.Points+1, r.Points),
		}
	}
	if r.BestTour[0] != r.BestTour[r.Points] {
		return &ValidationError{Field: "BestTour", Reason: "must end where it starts"}
	}
	if r.BestDistance < 0 {
		return &ValidationError{Field: "BestDistance", Reason: "cannot be negative"}
	}
	if r.BestDistance > r.InitialDistance {
		return &ValidationError{Field: "BestDistance", Reason: "cannot exceed InitialDistance"}
	}
	if r.Generations < 0 {
		return &ValidationError{Field: "Generations", Reason: "cannot be negative"}
	}
	if r.Restart < 0 || r.Restart >= r.Config.Restarts {
		return &ValidationError{Field: "Restart", Reason: "out of range"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError represents a run record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
