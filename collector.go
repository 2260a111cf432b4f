package sportsense

import "context"

// Source describes one configured scraping target. Sources are read once
// at startup from configuration.
type Source struct {
	Name     string `yaml:"name" json:"name"`
	Sport    string `yaml:"sport" json:"sport"`
	Language string `yaml:"language" json:"language"`

	// Kind selects the discovery strategy: "feed" (RSS/Atom), "index"
	// (HTML index page with LinkSelector), or "stats" (HTML stat tables).
	Kind string `yaml:"kind" json:"kind"`

	// URL of the feed, index page, or stats page.
	URL string `yaml:"url" json:"url"`

	// LinkSelector is the CSS selector for article links on index pages.
	// Ignored for feed and stats sources.
	LinkSelector string `yaml:"linkSelector" json:"linkSelector"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "source %q URL required", s.Name)
	}
	switch s.Kind {
	case "feed", "index", "stats":
	default:
		return Errorf(EINVALID, "source %q kind must be feed, index, or stats", s.Name)
	}
	return nil
}

// SourceError records the failure of a single source during collection.
// Per-source failures are isolated; they abort the collect stage only when
// every source fails.
type SourceError struct {
	Source string `json:"source"`
	Err    error  `json:"-"`
}

// CollectResult aggregates the outcome of one collect stage across all
// configured sources.
type CollectResult struct {
	Articles     []*Article
	Stats        []*StatRecord
	SourceErrors []SourceError

	// Skipped counts article URLs skipped because they were already
	// collected in a prior run.
	Skipped int
}

// CollectProgress reports progress as sources are processed.
type CollectProgress struct {
	Source    string
	URL       string
	Completed int
	Total     int
	Err       error
}

// CollectProgressFunc is called as collection proceeds.
type CollectProgressFunc func(CollectProgress)

// SourceCollector fetches raw records from all configured sources.
// Implementations hide discovery strategy, retry, rate limiting, and
// content extraction.
type SourceCollector interface {
	// FetchAll collects from every configured source. A failing source
	// must not abort collection from the others; its failure is recorded
	// in the result. FetchAll itself returns an error only on context
	// cancellation.
	FetchAll(ctx context.Context, progress CollectProgressFunc) (*CollectResult, error)
}
