package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.StatService = (*StatService)(nil)

// StatService is a mock implementation of sportsense.StatService.
type StatService struct {
	UpsertStatsFn  func(ctx context.Context, stats []*sportsense.StatRecord) error
	FindStatByIDFn func(ctx context.Context, id string) (*sportsense.StatRecord, error)
	FindStatsFn    func(ctx context.Context, filter sportsense.StatFilter) ([]*sportsense.StatRecord, error)
}

func (s *StatService) UpsertStats(ctx context.Context, stats []*sportsense.StatRecord) error {
	return s.UpsertStatsFn(ctx, stats)
}

func (s *StatService) FindStatByID(ctx context.Context, id string) (*sportsense.StatRecord, error) {
	return s.FindStatByIDFn(ctx, id)
}

func (s *StatService) FindStats(ctx context.Context, filter sportsense.StatFilter) ([]*sportsense.StatRecord, error) {
	return s.FindStatsFn(ctx, filter)
}
