// Package goquery implements HTML scraping on top of the goquery DOM
// library: article link extraction from index pages and stat table
// parsing from stats pages.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sportsense/sportsense"
)

var _ sportsense.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds article links on news index pages using a CSS
// selector from the source configuration.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the links matched by selector, resolved against
// baseURL. An empty selector matches every anchor. Links are deduplicated
// by URL in document order; off-site links and non-HTTP schemes are
// dropped.
func (e *LinkExtractor) ExtractLinks(html, baseURL, selector string) ([]sportsense.IndexLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sportsense.Errorf(sportsense.EINVALID, "invalid base URL: %v", err)
	}
	if selector == "" {
		selector = "a[href]"
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sportsense.Errorf(sportsense.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []sportsense.IndexLink

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if !isSameHost(base, resolved) {
			return
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, sportsense.IndexLink{
			URL:   resolved,
			Title: strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL. Returns empty
// string if the href cannot be parsed or resolves to the index page
// itself. Fragments are stripped for deduplication.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base
// URL. Exact host matching; subdomains count as different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
