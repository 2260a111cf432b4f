package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of sportsense.RecordWriter.
type RecordWriter struct {
	UpsertRecordsFn func(ctx context.Context, articles []*sportsense.Article, stats []*sportsense.StatRecord) error
}

func (w *RecordWriter) UpsertRecords(ctx context.Context, articles []*sportsense.Article, stats []*sportsense.StatRecord) error {
	return w.UpsertRecordsFn(ctx, articles, stats)
}
