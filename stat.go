package sportsense

import (
	"context"
	"time"
)

// StatRecord represents one scraped statistic for a team or player.
// Records are immutable once scraped; the ID is derived from
// subject, metric, and date, so re-scraping the same stat replaces it.
type StatRecord struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"` // team or player name
	Sport      string    `json:"sport"`
	Metric     string    `json:"metric"`
	Value      float64   `json:"value"`
	Source     string    `json:"source"`
	RecordedAt time.Time `json:"recordedAt"`
	ScrapedAt  time.Time `json:"scrapedAt"`
}

// Validate returns an error if the stat record contains invalid fields.
func (s *StatRecord) Validate() error {
	if s.ID == "" {
		return Errorf(EINVALID, "stat ID required")
	}
	if s.Subject == "" {
		return Errorf(EINVALID, "stat subject required")
	}
	if s.Metric == "" {
		return Errorf(EINVALID, "stat metric required")
	}
	return nil
}

// StatService represents a service for managing stat records. Writes are
// upserts keyed by record ID.
type StatService interface {
	// UpsertStats inserts or replaces a batch of stat records in a single
	// transaction. Either every record in the batch is stored or none is.
	UpsertStats(ctx context.Context, stats []*StatRecord) error

	// FindStatByID retrieves a stat record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindStatByID(ctx context.Context, id string) (*StatRecord, error)

	// FindStats retrieves stat records matching the filter, ordered by ID.
	FindStats(ctx context.Context, filter StatFilter) ([]*StatRecord, error)
}

// StatFilter represents a filter for FindStats.
type StatFilter struct {
	ID      *string `json:"id"`
	Subject *string `json:"subject"`
	Sport   *string `json:"sport"`
	Metric  *string `json:"metric"`

	// Inclusive date range over RecordedAt.
	RecordedFrom *time.Time `json:"recordedFrom"`
	RecordedTo   *time.Time `json:"recordedTo"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
