// Package pipeline orchestrates the daily ingestion workflow.
// It advances a pipeline run through collection, indexing, persistence,
// and report generation, recording stage outcomes as it goes.
package pipeline

import (
	"context"
	"time"

	"github.com/sportsense/sportsense"
)

// ProgressEvent reports a stage transition during a pipeline run.
type ProgressEvent struct {
	Stage   sportsense.Stage
	Outcome sportsense.StageOutcome
	Records int
	Err     error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Runner executes the daily ingestion workflow. Each execution is recorded
// as a pipeline run; re-running a date that already completed is a no-op
// unless forced.
type Runner struct {
	Collector sportsense.SourceCollector
	Embedder  sportsense.Embedder
	Index     sportsense.VectorIndex
	Records   sportsense.RecordWriter
	Reports   sportsense.ReportGenerator
	Runs      sportsense.RunService

	// CollectProgress, if set, receives per-source progress during the
	// collect stage.
	CollectProgress sportsense.CollectProgressFunc

	// Now is used for run and stage timestamps. Defaults to time.Now.
	Now func() time.Time
}

var stageStates = map[sportsense.Stage]sportsense.RunState{
	sportsense.StageCollect: sportsense.RunCollecting,
	sportsense.StageIndex:   sportsense.RunIndexing,
	sportsense.StagePersist: sportsense.RunPersisting,
	sportsense.StageReport:  sportsense.RunReporting,
}

// Run executes the workflow for one date and language. It returns the run
// record in its final state; when the run fails, the record is returned
// alongside the stage error.
func (r *Runner) Run(ctx context.Context, date, language string, force bool, progress ProgressFunc) (*sportsense.PipelineRun, error) {
	if date == "" || language == "" {
		return nil, sportsense.Errorf(sportsense.EINVALID, "run date and language required")
	}

	latest, err := r.Runs.FindLatestRun(ctx, date, language)
	if err != nil && sportsense.ErrorCode(err) != sportsense.ENOTFOUND {
		return nil, err
	}
	if latest != nil && latest.State == sportsense.RunCompleted && !force {
		return latest, nil
	}

	run := sportsense.NewPipelineRun(date, language)
	run.Forced = force
	run.CreatedAt = r.now()
	run.UpdatedAt = run.CreatedAt
	if err := r.Runs.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	var collected *sportsense.CollectResult

	err = r.runStage(ctx, run, sportsense.StageCollect, progress, func(ctx context.Context) (int, error) {
		result, err := r.Collector.FetchAll(ctx, r.CollectProgress)
		if err != nil {
			return 0, coerceCode(sportsense.ECOLLECTION, err)
		}
		if len(result.Articles) == 0 && len(result.Stats) == 0 && len(result.SourceErrors) > 0 {
			return 0, sportsense.Errorf(sportsense.ECOLLECTION, "all %d sources failed", len(result.SourceErrors))
		}
		collected = result
		return len(result.Articles) + len(result.Stats), nil
	})
	if err != nil {
		return run, err
	}

	err = r.runStage(ctx, run, sportsense.StageIndex, progress, func(ctx context.Context) (int, error) {
		return r.indexRecords(ctx, collected)
	})
	if err != nil {
		return run, err
	}

	err = r.runStage(ctx, run, sportsense.StagePersist, progress, func(ctx context.Context) (int, error) {
		if err := r.Records.UpsertRecords(ctx, collected.Articles, collected.Stats); err != nil {
			return 0, coerceCode(sportsense.EPERSIST, err)
		}
		return len(collected.Articles) + len(collected.Stats), nil
	})
	if err != nil {
		return run, err
	}

	err = r.runStage(ctx, run, sportsense.StageReport, progress, func(ctx context.Context) (int, error) {
		if _, err := r.Reports.Generate(ctx, run.Date, run.Language); err != nil {
			return 0, coerceCode(sportsense.EREPORT, err)
		}
		return 1, nil
	})
	if err != nil {
		return run, err
	}

	run.State = sportsense.RunCompleted
	run.UpdatedAt = r.now()
	// All stages finished; the completion write survives a late cancel.
	if err := r.Runs.UpdateRun(context.WithoutCancel(ctx), run); err != nil {
		return run, err
	}
	return run, nil
}

// indexRecords embeds every collected record and upserts the resulting
// entries. A zero-record day indexes nothing and succeeds.
func (r *Runner) indexRecords(ctx context.Context, collected *sportsense.CollectResult) (int, error) {
	texts := make([]string, 0, len(collected.Articles)+len(collected.Stats))
	entries := make([]*sportsense.EmbeddingEntry, 0, cap(texts))

	for _, a := range collected.Articles {
		texts = append(texts, a.Title+"\n\n"+a.Content)
		entries = append(entries, &sportsense.EmbeddingEntry{
			OwnerID: a.ID,
			Kind:    sportsense.KindArticle,
			Metadata: map[string]string{
				"source": a.Source,
				"title":  a.Title,
				"sport":  a.Sport,
			},
			IndexedAt: r.now(),
		})
	}
	for _, s := range collected.Stats {
		texts = append(texts, sportsense.FormatStat(s))
		entries = append(entries, &sportsense.EmbeddingEntry{
			OwnerID: s.ID,
			Kind:    sportsense.KindStat,
			Metadata: map[string]string{
				"source":  s.Source,
				"subject": s.Subject,
				"metric":  s.Metric,
			},
			IndexedAt: r.now(),
		})
	}

	if len(texts) == 0 {
		return 0, nil
	}

	vectors, err := r.Embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, coerceCode(sportsense.EINDEX, err)
	}
	if len(vectors) != len(texts) {
		return 0, sportsense.Errorf(sportsense.EINDEX, "embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	for i, entry := range entries {
		entry.Vector = vectors[i]
		if err := r.Index.Upsert(ctx, entry); err != nil {
			return i, coerceCode(sportsense.EINDEX, err)
		}
	}
	return len(entries), nil
}

// runStage advances the run through one stage. It checks for cancellation
// at the stage boundary, records the running and final stage status, and
// on failure marks the remaining stages skipped.
func (r *Runner) runStage(ctx context.Context, run *sportsense.PipelineRun, stage sportsense.Stage, progress ProgressFunc, fn func(context.Context) (int, error)) error {
	if err := ctx.Err(); err != nil {
		return r.failRun(ctx, run, stage, err, progress)
	}

	run.State = stageStates[stage]
	status := run.Stages[stage]
	status.Outcome = sportsense.StageRunning
	status.StartedAt = r.now()
	run.Stages[stage] = status
	run.UpdatedAt = r.now()
	if err := r.Runs.UpdateRun(ctx, run); err != nil {
		return err
	}
	emit(progress, ProgressEvent{Stage: stage, Outcome: sportsense.StageRunning})

	records, err := fn(ctx)
	if err != nil {
		status = run.Stages[stage]
		status.Records = records
		run.Stages[stage] = status
		return r.failRun(ctx, run, stage, err, progress)
	}

	status = run.Stages[stage]
	status.Outcome = sportsense.StageSucceeded
	status.Records = records
	status.FinishedAt = r.now()
	run.Stages[stage] = status
	run.UpdatedAt = r.now()
	// The stage result is audit state; persist it even when the caller has
	// already canceled. The next stage boundary still observes the cancel.
	if err := r.Runs.UpdateRun(context.WithoutCancel(ctx), run); err != nil {
		return err
	}
	emit(progress, ProgressEvent{Stage: stage, Outcome: sportsense.StageSucceeded, Records: records})
	return nil
}

// failRun marks the run failed at the given stage and skips the rest.
// The run record is persisted with a detached context so the final state
// survives cancellation.
func (r *Runner) failRun(ctx context.Context, run *sportsense.PipelineRun, stage sportsense.Stage, cause error, progress ProgressFunc) error {
	status := run.Stages[stage]
	status.Outcome = sportsense.StageFailed
	status.Error = cause.Error()
	status.FinishedAt = r.now()
	run.Stages[stage] = status

	skipping := false
	for _, s := range sportsense.Stages() {
		if s == stage {
			skipping = true
			continue
		}
		if skipping {
			st := run.Stages[s]
			st.Outcome = sportsense.StageSkipped
			run.Stages[s] = st
		}
	}

	run.State = sportsense.RunFailed
	run.FailedStage = stage
	run.UpdatedAt = r.now()
	if err := r.Runs.UpdateRun(context.WithoutCancel(ctx), run); err != nil {
		return err
	}
	emit(progress, ProgressEvent{Stage: stage, Outcome: sportsense.StageFailed, Err: cause})
	return cause
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// coerceCode tags a stage failure with its taxonomy code. Errors that
// already carry the code pass through unchanged.
func coerceCode(code string, err error) error {
	if sportsense.ErrorCode(err) == code {
		return err
	}
	return sportsense.Errorf(code, "%s", err.Error())
}
