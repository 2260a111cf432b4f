package sportsense

import "context"

// RecordWriter persists a collected batch of articles and stats
// atomically. Both record kinds share one transaction, so a failure in
// either half leaves nothing stored.
type RecordWriter interface {
	// UpsertRecords inserts or replaces the articles and stats in a single
	// transaction. An empty batch is a no-op.
	UpsertRecords(ctx context.Context, articles []*Article, stats []*StatRecord) error
}
