// Package slog provides logging decorators for the collection and
// indexing services, built on the standard structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sportsense/sportsense"
)

var _ sportsense.SourceCollector = (*LoggingSourceCollector)(nil)

// LoggingSourceCollector wraps a SourceCollector with logging.
type LoggingSourceCollector struct {
	next   sportsense.SourceCollector
	logger *slog.Logger
}

// NewLoggingSourceCollector creates a new LoggingSourceCollector.
func NewLoggingSourceCollector(next sportsense.SourceCollector, logger *slog.Logger) *LoggingSourceCollector {
	return &LoggingSourceCollector{next: next, logger: logger}
}

// FetchAll delegates to the wrapped collector and logs the outcome.
func (c *LoggingSourceCollector) FetchAll(ctx context.Context, progress sportsense.CollectProgressFunc) (result *sportsense.CollectResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"articles", len(result.Articles),
				"stats", len(result.Stats),
				"skipped", result.Skipped,
				"source_errors", len(result.SourceErrors),
			)
		}
		c.logger.Info("source collection", attrs...)
	}(time.Now())
	return c.next.FetchAll(ctx, progress)
}
