package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/sportsense/sportsense"
)

// Compile-time interface verification.
var _ sportsense.RunService = (*RunService)(nil)

// RunService implements sportsense.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a new run, allocating the next sequence number for its
// date. The allocation and insert share a transaction so concurrent
// creates for the same date cannot collide.
func (s *RunService) CreateRun(ctx context.Context, run *sportsense.PipelineRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxSeq sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		"SELECT MAX(seq) FROM pipeline_runs WHERE date = ?", run.Date).Scan(&maxSeq); err != nil {
		return err
	}
	run.Seq = int(maxSeq.Int64) + 1
	run.ID = sportsense.RunID(run.Date, run.Seq)

	now := time.Now().UTC()
	run.CreatedAt = now
	run.UpdatedAt = now

	stages, err := json.Marshal(run.Stages)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pipeline_runs (id, date, seq, language, state, stages, forced, failed_stage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Date, run.Seq, run.Language, string(run.State), string(stages),
		boolToInt(run.Forced), string(run.FailedStage),
		run.CreatedAt.Format(time.RFC3339), run.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateRun replaces the stored state of an existing run.
func (s *RunService) UpdateRun(ctx context.Context, run *sportsense.PipelineRun) error {
	if run.ID == "" {
		return sportsense.Errorf(sportsense.EINVALID, "run ID required")
	}

	run.UpdatedAt = time.Now().UTC()

	stages, err := json.Marshal(run.Stages)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE pipeline_runs
		SET state = ?, stages = ?, forced = ?, failed_stage = ?, updated_at = ?
		WHERE id = ?
	`, string(run.State), string(stages), boolToInt(run.Forced), string(run.FailedStage),
		run.UpdatedAt.Format(time.RFC3339), run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sportsense.Errorf(sportsense.ENOTFOUND, "run %q not found", run.ID)
	}

	return nil
}

const selectRunColumns = "id, date, seq, language, state, stages, forced, failed_stage, created_at, updated_at"

func scanRun(scan func(dest ...any) error) (*sportsense.PipelineRun, error) {
	var r sportsense.PipelineRun
	var state, stages, failedStage, createdAt, updatedAt string
	var forced int

	if err := scan(&r.ID, &r.Date, &r.Seq, &r.Language, &state, &stages, &forced,
		&failedStage, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	r.State = sportsense.RunState(state)
	r.FailedStage = sportsense.Stage(failedStage)
	r.Forced = forced != 0

	if err := json.Unmarshal([]byte(stages), &r.Stages); err != nil {
		return nil, err
	}

	var err error
	if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &r, nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*sportsense.PipelineRun, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectRunColumns+" FROM pipeline_runs WHERE id = ?", id)

	r, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, sportsense.Errorf(sportsense.ENOTFOUND, "run %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindLatestRun retrieves the most recent run for a date and language.
func (s *RunService) FindLatestRun(ctx context.Context, date, language string) (*sportsense.PipelineRun, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectRunColumns+" FROM pipeline_runs WHERE date = ? AND language = ? ORDER BY seq DESC LIMIT 1",
		date, language)

	r, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, sportsense.Errorf(sportsense.ENOTFOUND, "no run for %s (%s)", date, language)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter sportsense.RunFilter) ([]*sportsense.PipelineRun, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + selectRunColumns + " FROM pipeline_runs WHERE 1=1")

	if filter.Date != nil {
		query.WriteString(" AND date = ?")
		args = append(args, *filter.Date)
	}
	if filter.Language != nil {
		query.WriteString(" AND language = ?")
		args = append(args, *filter.Language)
	}

	query.WriteString(" ORDER BY date DESC, seq DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*sportsense.PipelineRun
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
