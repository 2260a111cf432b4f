package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sportsense/sportsense"
)

// Compile-time interface verification.
var _ sportsense.ReportService = (*ReportService)(nil)

// ReportService implements sportsense.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// UpsertReport inserts or replaces the report for its (date, language).
// A regenerated report keeps the original row ID.
func (s *ReportService) UpsertReport(ctx context.Context, report *sportsense.ReportDocument) error {
	if err := report.Validate(); err != nil {
		return err
	}

	// Regenerated reports keep the original row ID.
	var existingID string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM reports WHERE date = ? AND language = ?",
		report.Date, report.Language).Scan(&existingID)
	switch {
	case err == nil:
		report.ID = existingID
	case err == sql.ErrNoRows:
		if report.ID == "" {
			report.ID = uuid.New().String()
		}
	default:
		return err
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}

	sourceIDs, err := json.Marshal(report.SourceIDs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, date, language, summary, source_ids, model, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, language) DO UPDATE SET
			summary = excluded.summary,
			source_ids = excluded.source_ids,
			model = excluded.model,
			generated_at = excluded.generated_at
	`, report.ID, report.Date, report.Language, report.Summary, string(sourceIDs),
		report.Model, report.GeneratedAt.Format(time.RFC3339))

	return err
}

const selectReportColumns = "id, date, language, summary, source_ids, model, generated_at"

func scanReport(scan func(dest ...any) error) (*sportsense.ReportDocument, error) {
	var r sportsense.ReportDocument
	var sourceIDs, generatedAt string

	if err := scan(&r.ID, &r.Date, &r.Language, &r.Summary, &sourceIDs, &r.Model, &generatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sourceIDs), &r.SourceIDs); err != nil {
		return nil, err
	}

	var err error
	if r.GeneratedAt, err = parseRFC3339(generatedAt, "generated_at"); err != nil {
		return nil, err
	}
	return &r, nil
}

// FindReport retrieves the report for a date and language.
func (s *ReportService) FindReport(ctx context.Context, date, language string) (*sportsense.ReportDocument, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectReportColumns+" FROM reports WHERE date = ? AND language = ?", date, language)

	r, err := scanReport(row.Scan)
	if err == sql.ErrNoRows {
		return nil, sportsense.Errorf(sportsense.ENOTFOUND, "report for %s (%s) not found", date, language)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindReports retrieves reports matching the filter, newest date first.
func (s *ReportService) FindReports(ctx context.Context, filter sportsense.ReportFilter) ([]*sportsense.ReportDocument, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + selectReportColumns + " FROM reports WHERE 1=1")

	if filter.Date != nil {
		query.WriteString(" AND date = ?")
		args = append(args, *filter.Date)
	}
	if filter.Language != nil {
		query.WriteString(" AND language = ?")
		args = append(args, *filter.Language)
	}

	query.WriteString(" ORDER BY date DESC, language ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*sportsense.ReportDocument
	for rows.Next() {
		r, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	return reports, rows.Err()
}
