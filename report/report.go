// Package report generates the daily summary document from the records
// ingested for a date.
package report

import (
	"context"
	"strings"
	"time"

	"github.com/sportsense/sportsense"
)

// reportTemperature keeps summaries factual rather than creative.
const reportTemperature = 0.2

// defaultMaxPromptTokens bounds the prompt when a token counter is
// configured.
const defaultMaxPromptTokens = 32000

const systemPrompt = "You are a sports news editor writing a concise daily briefing. " +
	"Summarize the day's articles and statistics into a readable report with short sections per sport. " +
	"Base the report only on the provided material and do not invent results."

var _ sportsense.ReportGenerator = (*Generator)(nil)

// Generator builds one report per (date, language) from the articles and
// stats ingested that day. Articles are loaded in ID order so repeated
// generation sees the same input.
type Generator struct {
	Articles  sportsense.ArticleService
	Stats     sportsense.StatService
	Reports   sportsense.ReportService
	Completer sportsense.Completer

	// Tokens, if set, is used to trim the prompt to MaxPromptTokens.
	Tokens sportsense.TokenCounter

	Model           string
	MaxPromptTokens int

	// Now is used for the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Generate builds, stores, and returns the report for a date and
// language. Fails with EREPORT when no records exist for the date or the
// completion backend errors.
func (g *Generator) Generate(ctx context.Context, date, language string) (*sportsense.ReportDocument, error) {
	if date == "" || language == "" {
		return nil, sportsense.Errorf(sportsense.EINVALID, "report date and language required")
	}
	dayStart, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, sportsense.Errorf(sportsense.EINVALID, "invalid report date %q", date)
	}
	// The store filters are inclusive at both ends. Stop just short of the
	// next midnight; a record timestamped exactly at 00:00:00 belongs to
	// one day only.
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	articles, err := g.Articles.FindArticles(ctx, sportsense.ArticleFilter{
		ScrapedFrom: &dayStart,
		ScrapedTo:   &dayEnd,
	})
	if err != nil {
		return nil, sportsense.Errorf(sportsense.EREPORT, "loading articles: %s", sportsense.ErrorMessage(err))
	}
	stats, err := g.Stats.FindStats(ctx, sportsense.StatFilter{
		RecordedFrom: &dayStart,
		RecordedTo:   &dayEnd,
	})
	if err != nil {
		return nil, sportsense.Errorf(sportsense.EREPORT, "loading stats: %s", sportsense.ErrorMessage(err))
	}

	if len(articles) == 0 && len(stats) == 0 {
		return nil, sportsense.Errorf(sportsense.EREPORT, "no records ingested for %s", date)
	}

	articles = g.fitBudget(ctx, articles, stats)

	prompt := buildPrompt(date, articles, stats)
	summary, err := g.Completer.Complete(ctx, prompt, sportsense.CompletionOptions{
		Model:        g.Model,
		Temperature:  reportTemperature,
		Language:     language,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return nil, sportsense.Errorf(sportsense.EREPORT, "generating summary: %s", sportsense.ErrorMessage(err))
	}
	if strings.TrimSpace(summary) == "" {
		return nil, sportsense.Errorf(sportsense.EREPORT, "completion backend returned an empty summary")
	}

	sourceIDs := make([]string, 0, len(articles)+len(stats))
	for _, a := range articles {
		sourceIDs = append(sourceIDs, a.ID)
	}
	for _, s := range stats {
		sourceIDs = append(sourceIDs, s.ID)
	}

	doc := &sportsense.ReportDocument{
		Date:        date,
		Language:    language,
		Summary:     summary,
		SourceIDs:   sourceIDs,
		Model:       g.Model,
		GeneratedAt: g.now(),
	}
	if err := g.Reports.UpsertReport(ctx, doc); err != nil {
		return nil, sportsense.Errorf(sportsense.EREPORT, "storing report: %s", sportsense.ErrorMessage(err))
	}
	return doc, nil
}

// fitBudget drops trailing articles until the prompt fits the token
// budget. Stats are always kept; they are small. Without a token counter
// everything is kept.
func (g *Generator) fitBudget(ctx context.Context, articles []*sportsense.Article, stats []*sportsense.StatRecord) []*sportsense.Article {
	if g.Tokens == nil || len(articles) == 0 {
		return articles
	}
	budget := g.MaxPromptTokens
	if budget <= 0 {
		budget = defaultMaxPromptTokens
	}

	used, err := g.Tokens.CountTokens(ctx, sportsense.FormatStats(stats))
	if err != nil {
		return articles
	}

	kept := articles[:0:0]
	for _, a := range articles {
		n, err := g.Tokens.CountTokens(ctx, sportsense.FormatArticles([]*sportsense.Article{a}))
		if err != nil {
			return articles
		}
		if used+n > budget && len(kept) > 0 {
			break
		}
		used += n
		kept = append(kept, a)
	}
	return kept
}

// buildPrompt assembles the report prompt from the day's records.
func buildPrompt(date string, articles []*sportsense.Article, stats []*sportsense.StatRecord) string {
	var sb strings.Builder
	sb.WriteString("Write the daily sports briefing for " + date + " from the material below.\n\n")
	if formatted := sportsense.FormatArticles(articles); formatted != "" {
		sb.WriteString(formatted)
		sb.WriteString("\n\n")
	}
	if formatted := sportsense.FormatStats(stats); formatted != "" {
		sb.WriteString(formatted)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now().UTC()
}
