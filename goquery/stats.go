package goquery

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sportsense/sportsense"
)

var _ sportsense.StatParser = (*StatsParser)(nil)

// StatsParser reads team and player statistics out of HTML tables.
//
// The first header cell of a table labels the subject column; every other
// header is treated as a metric name. Cells that don't parse as numbers
// are skipped, so mixed tables (positions, team names) degrade gracefully.
type StatsParser struct{}

// NewStatsParser creates a new StatsParser.
func NewStatsParser() *StatsParser {
	return &StatsParser{}
}

// ParseStats parses every table on the page into stat values. A page
// without stat tables yields an empty slice, not an error.
func (p *StatsParser) ParseStats(html string) ([]sportsense.ParsedStat, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sportsense.Errorf(sportsense.EINVALID, "failed to parse HTML: %v", err)
	}

	var stats []sportsense.ParsedStat

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var headers []string
		table.Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(th.Text()))
		})
		if len(headers) < 2 {
			return
		}

		recordedAt := parseTableDate(table)

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			subject := strings.TrimSpace(cells.Eq(0).Text())
			if subject == "" {
				return
			}

			for i := 1; i < cells.Length() && i < len(headers); i++ {
				value, ok := parseStatValue(cells.Eq(i).Text())
				if !ok {
					continue
				}
				stats = append(stats, sportsense.ParsedStat{
					Subject:    subject,
					Metric:     headers[i],
					Value:      value,
					RecordedAt: recordedAt,
				})
			}
		})
	})

	return stats, nil
}

// parseTableDate reads a date from the table's caption or a data-date
// attribute, returning the zero time when absent. Collectors fall back to
// the run date.
func parseTableDate(table *goquery.Selection) time.Time {
	if v, ok := table.Attr("data-date"); ok {
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(v)); err == nil {
			return t
		}
	}
	caption := strings.TrimSpace(table.Find("caption").First().Text())
	for _, field := range strings.Fields(caption) {
		if t, err := time.Parse("2006-01-02", field); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseStatValue parses a table cell as a number, tolerating thousands
// separators and percent signs.
func parseStatValue(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", "")
	text = strings.TrimSuffix(text, "%")
	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
