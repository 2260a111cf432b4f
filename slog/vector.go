package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sportsense/sportsense"
)

var _ sportsense.VectorIndex = (*LoggingVectorIndex)(nil)

// LoggingVectorIndex wraps a VectorIndex with debug logging on writes
// and query logging.
type LoggingVectorIndex struct {
	next   sportsense.VectorIndex
	logger *slog.Logger
}

// NewLoggingVectorIndex creates a new LoggingVectorIndex.
func NewLoggingVectorIndex(next sportsense.VectorIndex, logger *slog.Logger) *LoggingVectorIndex {
	return &LoggingVectorIndex{next: next, logger: logger}
}

func (i *LoggingVectorIndex) Upsert(ctx context.Context, entry *sportsense.EmbeddingEntry) (err error) {
	defer func() {
		i.logger.Debug("vector upsert",
			"owner", entry.OwnerID,
			"kind", entry.Kind,
			"dims", len(entry.Vector),
			"err", err,
		)
	}()
	return i.next.Upsert(ctx, entry)
}

// Query delegates to the wrapped index and logs the operation.
func (i *LoggingVectorIndex) Query(ctx context.Context, vector []float32, k int) (matches []sportsense.Match, err error) {
	defer func(begin time.Time) {
		i.logger.Info("vector query",
			"k", k,
			"matches", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Query(ctx, vector, k)
}

func (i *LoggingVectorIndex) DeleteByOwner(ctx context.Context, ownerID string) (err error) {
	defer func() {
		i.logger.Debug("vector delete", "owner", ownerID, "err", err)
	}()
	return i.next.DeleteByOwner(ctx, ownerID)
}

func (i *LoggingVectorIndex) Count(ctx context.Context) (int, error) {
	return i.next.Count(ctx)
}

func (i *LoggingVectorIndex) Clear(ctx context.Context) (err error) {
	defer func() {
		i.logger.Info("vector index cleared", "err", err)
	}()
	return i.next.Clear(ctx)
}
