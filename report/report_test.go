package report_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sportsense/sportsense"
	"github.com/sportsense/sportsense/mock"
	"github.com/sportsense/sportsense/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayArticle(id, title string) *sportsense.Article {
	return &sportsense.Article{
		ID:        id,
		Source:    "sportsday",
		URL:       "https://sportsday.example.com/news/" + id,
		Title:     title,
		Content:   "The match finished 2-2.",
		Sport:     "football",
		ScrapedAt: time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC),
	}
}

func dayStat(id string) *sportsense.StatRecord {
	return &sportsense.StatRecord{
		ID:         id,
		Subject:    "Thunder",
		Sport:      "basketball",
		Metric:     "Wins",
		Value:      68,
		Source:     "hoopstats",
		RecordedAt: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
	}
}

// newGenerator wires a Generator to mocks that return the given records
// and a completer that produces a fixed summary.
func newGenerator(articles []*sportsense.Article, stats []*sportsense.StatRecord) (*report.Generator, *[]*sportsense.ReportDocument) {
	var stored []*sportsense.ReportDocument
	g := &report.Generator{
		Articles: &mock.ArticleService{
			FindArticlesFn: func(ctx context.Context, filter sportsense.ArticleFilter) ([]*sportsense.Article, error) {
				return articles, nil
			},
		},
		Stats: &mock.StatService{
			FindStatsFn: func(ctx context.Context, filter sportsense.StatFilter) ([]*sportsense.StatRecord, error) {
				return stats, nil
			},
		},
		Reports: &mock.ReportService{
			UpsertReportFn: func(ctx context.Context, doc *sportsense.ReportDocument) error {
				stored = append(stored, doc)
				return nil
			},
		},
		Completer: &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
				return "A quiet day across the leagues.", nil
			},
		},
		Model: "gpt-4o-mini",
	}
	return g, &stored
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("builds and stores the daily report", func(t *testing.T) {
		t.Parallel()

		g, stored := newGenerator(
			[]*sportsense.Article{dayArticle("a1", "Derby draw")},
			[]*sportsense.StatRecord{dayStat("s1")},
		)

		var gotOpts sportsense.CompletionOptions
		var gotPrompt string
		g.Completer = &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
				gotPrompt = prompt
				gotOpts = opts
				return "Daily briefing text.", nil
			},
		}

		doc, err := g.Generate(context.Background(), "2026-08-24", "English")
		require.NoError(t, err)

		assert.Equal(t, "2026-08-24", doc.Date)
		assert.Equal(t, "English", doc.Language)
		assert.Equal(t, "Daily briefing text.", doc.Summary)
		assert.Equal(t, []string{"a1", "s1"}, doc.SourceIDs)
		assert.Equal(t, "gpt-4o-mini", doc.Model)
		require.Len(t, *stored, 1)

		assert.Contains(t, gotPrompt, "Derby draw")
		assert.Contains(t, gotPrompt, "Thunder")
		assert.Equal(t, 0.2, gotOpts.Temperature)
		assert.Equal(t, "English", gotOpts.Language)
	})

	t.Run("fails with EREPORT when the day has no records", func(t *testing.T) {
		t.Parallel()

		g, stored := newGenerator(nil, nil)

		_, err := g.Generate(context.Background(), "2026-08-24", "English")
		require.Error(t, err)
		assert.Equal(t, sportsense.EREPORT, sportsense.ErrorCode(err))
		assert.Empty(t, *stored)
	})

	t.Run("fails with EREPORT when the backend errors", func(t *testing.T) {
		t.Parallel()

		g, stored := newGenerator([]*sportsense.Article{dayArticle("a1", "Derby draw")}, nil)
		g.Completer = &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
				return "", sportsense.Errorf(sportsense.EUNAVAILABLE, "backend down")
			},
		}

		_, err := g.Generate(context.Background(), "2026-08-24", "English")
		require.Error(t, err)
		assert.Equal(t, sportsense.EREPORT, sportsense.ErrorCode(err))
		assert.Empty(t, *stored)
	})

	t.Run("fails with EREPORT on an empty summary", func(t *testing.T) {
		t.Parallel()

		g, _ := newGenerator([]*sportsense.Article{dayArticle("a1", "Derby draw")}, nil)
		g.Completer = &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
				return "   ", nil
			},
		}

		_, err := g.Generate(context.Background(), "2026-08-24", "English")
		assert.Equal(t, sportsense.EREPORT, sportsense.ErrorCode(err))
	})

	t.Run("trims articles to the token budget", func(t *testing.T) {
		t.Parallel()

		articles := []*sportsense.Article{
			dayArticle("a1", "First"),
			dayArticle("a2", "Second"),
			dayArticle("a3", "Third"),
		}
		g, _ := newGenerator(articles, nil)
		g.MaxPromptTokens = 250
		g.Tokens = &mock.TokenCounter{
			CountTokensFn: func(ctx context.Context, text string) (int, error) {
				if text == "" {
					return 0, nil
				}
				return 100, nil // every block costs the same
			},
		}

		doc, err := g.Generate(context.Background(), "2026-08-24", "English")
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a2"}, doc.SourceIDs)
	})

	t.Run("keeps at least one article even over budget", func(t *testing.T) {
		t.Parallel()

		g, _ := newGenerator([]*sportsense.Article{dayArticle("a1", "Huge piece")}, nil)
		g.MaxPromptTokens = 10
		g.Tokens = &mock.TokenCounter{
			CountTokensFn: func(ctx context.Context, text string) (int, error) {
				return len(strings.Fields(text)), nil
			},
		}

		doc, err := g.Generate(context.Background(), "2026-08-24", "English")
		require.NoError(t, err)
		assert.Equal(t, []string{"a1"}, doc.SourceIDs)
	})

	t.Run("excludes the next day's midnight from the window", func(t *testing.T) {
		t.Parallel()

		g, _ := newGenerator(nil, nil)

		var articleFilter sportsense.ArticleFilter
		g.Articles = &mock.ArticleService{
			FindArticlesFn: func(ctx context.Context, filter sportsense.ArticleFilter) ([]*sportsense.Article, error) {
				articleFilter = filter
				return []*sportsense.Article{dayArticle("a1", "Derby draw")}, nil
			},
		}
		var statFilter sportsense.StatFilter
		g.Stats = &mock.StatService{
			FindStatsFn: func(ctx context.Context, filter sportsense.StatFilter) ([]*sportsense.StatRecord, error) {
				statFilter = filter
				return nil, nil
			},
		}

		_, err := g.Generate(context.Background(), "2026-08-24", "English")
		require.NoError(t, err)

		dayStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
		nextMidnight := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

		require.NotNil(t, articleFilter.ScrapedFrom)
		require.NotNil(t, articleFilter.ScrapedTo)
		assert.Equal(t, dayStart, *articleFilter.ScrapedFrom)
		assert.True(t, articleFilter.ScrapedTo.Before(nextMidnight), "upper bound must exclude the next midnight")

		require.NotNil(t, statFilter.RecordedFrom)
		require.NotNil(t, statFilter.RecordedTo)
		assert.Equal(t, dayStart, *statFilter.RecordedFrom)
		assert.True(t, statFilter.RecordedTo.Before(nextMidnight), "upper bound must exclude the next midnight")
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		t.Parallel()

		g, _ := newGenerator(nil, nil)
		for _, date := range []string{"", "24-08-2026", "not a date"} {
			_, err := g.Generate(context.Background(), date, "English")
			assert.Equal(t, sportsense.EINVALID, sportsense.ErrorCode(err), fmt.Sprintf("date %q", date))
		}
	})
}
