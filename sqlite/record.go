package sqlite

import (
	"context"

	"github.com/sportsense/sportsense"
)

// Compile-time interface verification.
var _ sportsense.RecordWriter = (*RecordService)(nil)

// RecordService implements sportsense.RecordWriter using SQLite. It
// writes a collected batch of articles and stats in one transaction.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// UpsertRecords inserts or replaces the articles and stats in a single
// transaction. A failure in either half rolls back the whole batch.
func (s *RecordService) UpsertRecords(ctx context.Context, articles []*sportsense.Article, stats []*sportsense.StatRecord) error {
	if len(articles) == 0 && len(stats) == 0 {
		return nil
	}
	for _, a := range articles {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, st := range stats {
		if err := st.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertArticlesTx(ctx, tx, articles); err != nil {
		return err
	}
	if err := upsertStatsTx(ctx, tx, stats); err != nil {
		return err
	}

	return tx.Commit()
}
