package sportsense

import (
	"fmt"
	"strings"
)

// FormatArticles formats articles for LLM context. Uses the title if
// available, falls back to the source URL. Articles are separated by
// blank lines.
func FormatArticles(articles []*Article) string {
	if len(articles) == 0 {
		return ""
	}

	parts := make([]string, 0, len(articles))
	for _, a := range articles {
		header := a.Title
		if header == "" {
			header = a.URL
		}
		parts = append(parts, "## Article: "+header+" ("+a.Source+")\n"+a.Content)
	}

	return strings.Join(parts, "\n\n")
}

// FormatStat formats a single stat record as one line.
func FormatStat(s *StatRecord) string {
	return fmt.Sprintf("%s %s: %g (%s, %s)",
		s.Subject, s.Metric, s.Value, s.Sport, s.RecordedAt.Format("2006-01-02"))
}

// FormatStats formats stat records for LLM context, one line per record.
func FormatStats(stats []*StatRecord) string {
	if len(stats) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("## Statistics\n")
	for _, s := range stats {
		sb.WriteString("- " + FormatStat(s) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
