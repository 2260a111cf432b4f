package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.RunService = (*RunService)(nil)

// RunService is a mock implementation of sportsense.RunService.
type RunService struct {
	CreateRunFn     func(ctx context.Context, run *sportsense.PipelineRun) error
	UpdateRunFn     func(ctx context.Context, run *sportsense.PipelineRun) error
	FindRunByIDFn   func(ctx context.Context, id string) (*sportsense.PipelineRun, error)
	FindLatestRunFn func(ctx context.Context, date, language string) (*sportsense.PipelineRun, error)
	FindRunsFn      func(ctx context.Context, filter sportsense.RunFilter) ([]*sportsense.PipelineRun, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *sportsense.PipelineRun) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) UpdateRun(ctx context.Context, run *sportsense.PipelineRun) error {
	return s.UpdateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*sportsense.PipelineRun, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindLatestRun(ctx context.Context, date, language string) (*sportsense.PipelineRun, error) {
	return s.FindLatestRunFn(ctx, date, language)
}

func (s *RunService) FindRuns(ctx context.Context, filter sportsense.RunFilter) ([]*sportsense.PipelineRun, error) {
	return s.FindRunsFn(ctx, filter)
}
