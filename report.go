package sportsense

import (
	"context"
	"time"
)

// ReportDocument is the generated daily summary for one (date, language)
// pair. At most one report exists per pair; regeneration overwrites it.
type ReportDocument struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Language    string    `json:"language"`
	Summary     string    `json:"summary"`
	SourceIDs   []string  `json:"sourceIds"` // article/stat IDs the report derives from
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Validate returns an error if the report contains invalid fields.
func (r *ReportDocument) Validate() error {
	if r.Date == "" {
		return Errorf(EINVALID, "report date required")
	}
	if r.Language == "" {
		return Errorf(EINVALID, "report language required")
	}
	return nil
}

// ReportService represents a service for managing report documents.
// Writes are upserts keyed by (date, language).
type ReportService interface {
	// UpsertReport inserts or replaces the report for its (date, language).
	UpsertReport(ctx context.Context, report *ReportDocument) error

	// FindReport retrieves the report for a date and language.
	// Returns ENOTFOUND if no report exists.
	FindReport(ctx context.Context, date, language string) (*ReportDocument, error)

	// FindReports retrieves reports matching the filter, newest date first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*ReportDocument, error)
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	Date     *string `json:"date"`
	Language *string `json:"language"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ReportGenerator produces one ReportDocument per (date, language) from
// the records ingested that day.
type ReportGenerator interface {
	// Generate builds, stores, and returns the report for a date and
	// language. Fails with EREPORT when no input records exist for the
	// date or the completion backend errors.
	Generate(ctx context.Context, date, language string) (*ReportDocument, error)
}
