package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.SourceCollector = (*SourceCollector)(nil)

// SourceCollector is a mock implementation of sportsense.SourceCollector.
type SourceCollector struct {
	FetchAllFn func(ctx context.Context, progress sportsense.CollectProgressFunc) (*sportsense.CollectResult, error)
}

func (c *SourceCollector) FetchAll(ctx context.Context, progress sportsense.CollectProgressFunc) (*sportsense.CollectResult, error) {
	return c.FetchAllFn(ctx, progress)
}
