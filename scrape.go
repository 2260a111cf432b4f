package sportsense

import (
	"context"
	"time"
)

// IndexLink is one article link discovered on an HTML index page.
type IndexLink struct {
	URL   string
	Title string
}

// LinkExtractor finds article links on an HTML index page.
type LinkExtractor interface {
	// ExtractLinks returns links matched by the CSS selector, resolved
	// against baseURL. Links pointing off-site are dropped.
	ExtractLinks(html, baseURL, selector string) ([]IndexLink, error)
}

// ParsedStat is one statistic read from an HTML stats table, before
// record identity and source attribution are filled in.
type ParsedStat struct {
	Subject    string
	Metric     string
	Value      float64
	RecordedAt time.Time
}

// StatParser parses statistics out of HTML stats pages.
type StatParser interface {
	ParseStats(html string) ([]ParsedStat, error)
}

// DomainLimiter rate limits outbound requests per domain.
type DomainLimiter interface {
	// Wait blocks until the limit allows a request to the domain, or the
	// context is canceled.
	Wait(ctx context.Context, domain string) error
}
