package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sportsense/sportsense"
)

// Compile-time interface verification.
var _ sportsense.StatService = (*StatService)(nil)

// StatService implements sportsense.StatService using SQLite.
type StatService struct {
	db *DB
}

// NewStatService creates a new StatService.
func NewStatService(db *DB) *StatService {
	return &StatService{db: db}
}

const upsertStatSQL = `
	INSERT INTO stats (id, subject, sport, metric, value, source, recorded_at, scraped_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		subject = excluded.subject,
		sport = excluded.sport,
		metric = excluded.metric,
		value = excluded.value,
		source = excluded.source,
		recorded_at = excluded.recorded_at,
		scraped_at = excluded.scraped_at
`

// UpsertStats inserts or replaces a batch of stat records in a single
// transaction. Either every record is stored or none is.
func (s *StatService) UpsertStats(ctx context.Context, stats []*sportsense.StatRecord) error {
	if len(stats) == 0 {
		return nil
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

	if err := upsertStatsTx(ctx, tx, stats); err != nil {
		return err
	}

	return tx.Commit()
}

// upsertStatsTx writes the batch inside an already open transaction.
func upsertStatsTx(ctx context.Context, tx *sql.Tx, stats []*sportsense.StatRecord) error {
	for _, st := range stats {
		if st.ScrapedAt.IsZero() {
			st.ScrapedAt = time.Now().UTC()
		}
		_, err := tx.ExecContext(ctx, upsertStatSQL,
			st.ID, st.Subject, st.Sport, st.Metric, st.Value, st.Source,
			formatOptionalRFC3339(st.RecordedAt), st.ScrapedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return nil
}

const selectStatColumns = "id, subject, sport, metric, value, source, recorded_at, scraped_at"

func scanStat(scan func(dest ...any) error) (*sportsense.StatRecord, error) {
	var st sportsense.StatRecord
	var recordedAt, scrapedAt string

	if err := scan(&st.ID, &st.Subject, &st.Sport, &st.Metric, &st.Value, &st.Source,
		&recordedAt, &scrapedAt); err != nil {
		return nil, err
	}

	var err error
	if st.RecordedAt, err = parseOptionalRFC3339(recordedAt, "recorded_at"); err != nil {
		return nil, err
	}
	if st.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}
	return &st, nil
}

// FindStatByID retrieves a stat record by ID.
func (s *StatService) FindStatByID(ctx context.Context, id string) (*sportsense.StatRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectStatColumns+" FROM stats WHERE id = ?", id)

	st, err := scanStat(row.Scan)
	if err == sql.ErrNoRows {
		return nil, sportsense.Errorf(sportsense.ENOTFOUND, "stat not found")
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// FindStats retrieves stat records matching the filter, ordered by ID.
func (s *StatService) FindStats(ctx context.Context, filter sportsense.StatFilter) ([]*sportsense.StatRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + selectStatColumns + " FROM stats WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Subject != nil {
		query.WriteString(" AND subject = ?")
		args = append(args, *filter.Subject)
	}
	if filter.Sport != nil {
		query.WriteString(" AND sport = ?")
		args = append(args, *filter.Sport)
	}
	if filter.Metric != nil {
		query.WriteString(" AND metric = ?")
		args = append(args, *filter.Metric)
	}
	if filter.RecordedFrom != nil {
		query.WriteString(" AND recorded_at >= ?")
		args = append(args, filter.RecordedFrom.Format(time.RFC3339))
	}
	if filter.RecordedTo != nil {
		query.WriteString(" AND recorded_at <= ?")
		args = append(args, filter.RecordedTo.Format(time.RFC3339))
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*sportsense.StatRecord
	for rows.Next() {
		st, err := scanStat(rows.Scan)
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}

	return stats, rows.Err()
}
