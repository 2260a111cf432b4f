package sportsense

import (
	"context"
	"fmt"
	"time"
)

// Stage identifies one ordered step of the ingestion pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageCollect Stage = "collect"
	StageIndex   Stage = "index"
	StagePersist Stage = "persist"
	StageReport  Stage = "report"
)

// Stages returns the pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{StageCollect, StageIndex, StagePersist, StageReport}
}

// RunState is the overall state of a pipeline run.
type RunState string

// Run states. Transitions are strictly linear: NotStarted advances through
// the per-stage running states to Completed, or stops at Failed.
const (
	RunNotStarted RunState = "not_started"
	RunCollecting RunState = "collecting"
	RunIndexing   RunState = "indexing"
	RunPersisting RunState = "persisting"
	RunReporting  RunState = "reporting"
	RunCompleted  RunState = "completed"
	RunFailed     RunState = "failed"
)

// StageOutcome is the status of a single stage within a run.
type StageOutcome string

// Stage outcomes.
const (
	StagePending   StageOutcome = "pending"
	StageRunning   StageOutcome = "running"
	StageSucceeded StageOutcome = "succeeded"
	StageFailed    StageOutcome = "failed"
	StageSkipped   StageOutcome = "skipped"
)

// StageStatus records the outcome of one stage of a pipeline run.
type StageStatus struct {
	Outcome    StageOutcome `json:"outcome"`
	Records    int          `json:"records"` // records handled before success/failure
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"startedAt,omitzero"`
	FinishedAt time.Time    `json:"finishedAt,omitzero"`
}

// PipelineRun is the audit record of one execution of the ingestion
// workflow. It is created when the workflow starts and mutated as stages
// complete; completed and failed runs are retained.
type PipelineRun struct {
	ID       string                `json:"id"` // "<date>.<seq>"
	Date     string                `json:"date"`
	Seq      int                   `json:"seq"`
	Language string                `json:"language"`
	State    RunState              `json:"state"`
	Stages   map[Stage]StageStatus `json:"stages"`
	Forced   bool                  `json:"forced"`

	// Stage the run failed at, empty unless State == RunFailed.
	FailedStage Stage `json:"failedStage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPipelineRun returns a run in the NotStarted state with every stage
// pending.
func NewPipelineRun(date, language string) *PipelineRun {
	stages := make(map[Stage]StageStatus, len(Stages()))
	for _, s := range Stages() {
		stages[s] = StageStatus{Outcome: StagePending}
	}
	return &PipelineRun{
		Date:     date,
		Language: language,
		State:    RunNotStarted,
		Stages:   stages,
	}
}

// Validate returns an error if the run contains invalid fields.
func (r *PipelineRun) Validate() error {
	if r.Date == "" {
		return Errorf(EINVALID, "run date required")
	}
	if r.Language == "" {
		return Errorf(EINVALID, "run language required")
	}
	return nil
}

// RunID formats a run identifier from its date and sequence number.
func RunID(date string, seq int) string {
	return fmt.Sprintf("%s.%d", date, seq)
}

// RunService persists pipeline runs for idempotence checks and audit.
type RunService interface {
	// CreateRun stores a new run, allocating the next sequence number for
	// its date and setting the run ID.
	CreateRun(ctx context.Context, run *PipelineRun) error

	// UpdateRun replaces the stored state of an existing run.
	// Returns ENOTFOUND if the run does not exist.
	UpdateRun(ctx context.Context, run *PipelineRun) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*PipelineRun, error)

	// FindLatestRun retrieves the most recent run for a date and language.
	// Returns ENOTFOUND if no run exists.
	FindLatestRun(ctx context.Context, date, language string) (*PipelineRun, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*PipelineRun, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Date     *string `json:"date"`
	Language *string `json:"language"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
