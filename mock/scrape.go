package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sportsense.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL, selector string) ([]sportsense.IndexLink, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL, selector string) ([]sportsense.IndexLink, error) {
	return e.ExtractLinksFn(html, baseURL, selector)
}

var _ sportsense.StatParser = (*StatParser)(nil)

// StatParser is a mock implementation of sportsense.StatParser.
type StatParser struct {
	ParseStatsFn func(html string) ([]sportsense.ParsedStat, error)
}

func (p *StatParser) ParseStats(html string) ([]sportsense.ParsedStat, error) {
	return p.ParseStatsFn(html)
}

var _ sportsense.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of sportsense.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
