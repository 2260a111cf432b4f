// Package collect implements source collection for the ingestion
// pipeline. It coordinates feed and index-page discovery, article
// fetching with retry and rate limiting, content extraction, and stats
// table scraping across all configured sources.
package collect

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sportsense/sportsense"
	"github.com/sportsense/sportsense/bloom"
	"golang.org/x/sync/errgroup"
)

// Worker pool bounds for article fetching.
const (
	DefaultConcurrency = 4
	MaxConcurrency     = 8
)

// Bloom filter sizing for within-run URL deduplication.
const (
	expectedURLs      = 10000
	falsePositiveRate = 0.01
)

var _ sportsense.SourceCollector = (*Collector)(nil)

// Collector fetches raw records from every configured source. Sources
// fail independently; a broken feed or unreachable site is recorded in
// the result without aborting the others.
type Collector struct {
	Sources   []sportsense.Source
	Fetcher   sportsense.Fetcher
	Feeds     sportsense.FeedService
	Links     sportsense.LinkExtractor
	Stats     sportsense.StatParser
	Extractor sportsense.Extractor
	Converter sportsense.Converter
	Limiter   sportsense.DomainLimiter

	// Articles, if set, is consulted to skip URLs collected in prior
	// runs.
	Articles sportsense.ArticleService

	// Concurrency is the article worker pool size, clamped to
	// [1, MaxConcurrency]. Defaults to DefaultConcurrency.
	Concurrency int

	// RetryDelays overrides the fetch retry backoff. Defaults to
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	// DaysBack drops articles published more than this many days ago.
	// Zero keeps everything.
	DaysBack int

	// Now is used for scrape timestamps. Defaults to time.Now.
	Now func() time.Time
}

// task is one article URL queued for fetching.
type task struct {
	source      sportsense.Source
	url         string
	title       string
	publishedAt time.Time
}

// FetchAll collects from every configured source. It returns an error
// only when the context is canceled; all other failures are recorded in
// the result.
func (c *Collector) FetchAll(ctx context.Context, progress sportsense.CollectProgressFunc) (*sportsense.CollectResult, error) {
	result := &sportsense.CollectResult{}
	seen := bloom.NewFilter(expectedURLs, falsePositiveRate)

	var tasks []task
	for _, source := range c.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		discovered, stats, err := c.discoverSource(ctx, source)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			result.SourceErrors = append(result.SourceErrors, sportsense.SourceError{
				Source: source.Name,
				Err:    err,
			})
			emit(progress, sportsense.CollectProgress{Source: source.Name, URL: source.URL, Err: err})
			continue
		}
		result.Stats = append(result.Stats, stats...)

		for _, t := range discovered {
			if c.tooOld(t.publishedAt) {
				continue
			}
			if seen.Test(t.url) {
				result.Skipped++
				continue
			}
			seen.Add(t.url)
			tasks = append(tasks, t)
		}
	}

	c.fetchArticles(ctx, tasks, result, progress)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// discoverSource finds article URLs for a source, or scrapes stats
// directly for stats sources.
func (c *Collector) discoverSource(ctx context.Context, source sportsense.Source) ([]task, []*sportsense.StatRecord, error) {
	switch source.Kind {
	case "feed":
		items, err := c.Feeds.DiscoverItems(ctx, source.URL)
		if err != nil {
			return nil, nil, err
		}
		tasks := make([]task, 0, len(items))
		for _, item := range items {
			tasks = append(tasks, task{
				source:      source,
				url:         item.URL,
				title:       item.Title,
				publishedAt: item.PublishedAt,
			})
		}
		return tasks, nil, nil

	case "index":
		html, err := c.fetch(ctx, source.URL)
		if err != nil {
			return nil, nil, err
		}
		links, err := c.Links.ExtractLinks(html, source.URL, source.LinkSelector)
		if err != nil {
			return nil, nil, err
		}
		tasks := make([]task, 0, len(links))
		for _, link := range links {
			tasks = append(tasks, task{
				source: source,
				url:    link.URL,
				title:  link.Title,
			})
		}
		return tasks, nil, nil

	case "stats":
		stats, err := c.collectStats(ctx, source)
		if err != nil {
			return nil, nil, err
		}
		return nil, stats, nil

	default:
		return nil, nil, sportsense.Errorf(sportsense.ECONFIG, "source %q has unknown kind %q", source.Name, source.Kind)
	}
}

// fetchArticles runs the article worker pool over the queued tasks.
func (c *Collector) fetchArticles(ctx context.Context, tasks []task, result *sportsense.CollectResult, progress sportsense.CollectProgressFunc) {
	if len(tasks) == 0 {
		return
	}

	var mu sync.Mutex
	completed := 0
	total := len(tasks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())

	for _, t := range tasks {
		g.Go(func() error {
			article, err := c.collectArticle(gctx, t)

			mu.Lock()
			defer mu.Unlock()
			completed++
			event := sportsense.CollectProgress{
				Source:    t.source.Name,
				URL:       t.url,
				Completed: completed,
				Total:     total,
			}
			switch {
			case err != nil:
				event.Err = err
			case article == nil:
				result.Skipped++
			default:
				result.Articles = append(result.Articles, article)
			}
			emit(progress, event)
			return nil
		})
	}
	_ = g.Wait()
}

// collectArticle fetches, extracts, and converts one article. It returns
// (nil, nil) when the article is already stored from a prior run.
func (c *Collector) collectArticle(ctx context.Context, t task) (*sportsense.Article, error) {
	id := ArticleID(t.url)
	if c.Articles != nil {
		if exists, err := c.Articles.ExistsArticle(ctx, id); err == nil && exists {
			return nil, nil
		}
	}

	html, err := c.fetch(ctx, t.url)
	if err != nil {
		return nil, err
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	title := extracted.Title
	if title == "" {
		title = t.title
	}
	publishedAt := t.publishedAt
	if publishedAt.IsZero() && extracted.PublishedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, extracted.PublishedAt); err == nil {
			publishedAt = parsed
		}
	}
	language := t.source.Language
	if language == "" {
		language = extracted.Language
	}

	return &sportsense.Article{
		ID:          id,
		Source:      t.source.Name,
		URL:         t.url,
		Title:       title,
		Content:     markdown,
		ContentHash: ContentHash(markdown),
		Language:    language,
		Sport:       t.source.Sport,
		PublishedAt: publishedAt,
		ScrapedAt:   c.now(),
	}, nil
}

// collectStats fetches and parses one stats page into records. Parsed
// values without a table date are stamped with the scrape date.
func (c *Collector) collectStats(ctx context.Context, source sportsense.Source) ([]*sportsense.StatRecord, error) {
	html, err := c.fetch(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	parsed, err := c.Stats.ParseStats(html)
	if err != nil {
		return nil, err
	}

	now := c.now()
	records := make([]*sportsense.StatRecord, 0, len(parsed))
	for _, p := range parsed {
		recordedAt := p.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = now.Truncate(24 * time.Hour)
		}
		records = append(records, &sportsense.StatRecord{
			ID:         StatID(p.Subject, p.Metric, recordedAt.Format("2006-01-02")),
			Subject:    p.Subject,
			Sport:      source.Sport,
			Metric:     p.Metric,
			Value:      p.Value,
			Source:     source.Name,
			RecordedAt: recordedAt,
			ScrapedAt:  now,
		})
	}
	return records, nil
}

// fetch rate limits and retries a single GET.
func (c *Collector) fetch(ctx context.Context, rawURL string) (string, error) {
	if c.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", sportsense.Errorf(sportsense.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return fetchWithRetry(ctx, rawURL, c.Fetcher.Fetch, delays)
}

func (c *Collector) concurrency() int {
	n := c.Concurrency
	if n <= 0 {
		n = DefaultConcurrency
	}
	if n > MaxConcurrency {
		n = MaxConcurrency
	}
	return n
}

// tooOld reports whether a publish date falls outside the DaysBack
// window. Articles without a known publish date are kept.
func (c *Collector) tooOld(publishedAt time.Time) bool {
	if c.DaysBack <= 0 || publishedAt.IsZero() {
		return false
	}
	cutoff := c.now().AddDate(0, 0, -c.DaysBack)
	return publishedAt.Before(cutoff)
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

func emit(progress sportsense.CollectProgressFunc, event sportsense.CollectProgress) {
	if progress != nil {
		progress(event)
	}
}

// ArticleID derives the stable article identifier from its canonical URL.
func ArticleID(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}

// StatID derives the stable stat identifier from subject, metric, and
// the recorded date, so re-scraping the same stat replaces it.
func StatID(subject, metric, date string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(subject+"|"+metric+"|"+date))
}

// ContentHash computes a hash of article content using xxhash.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
