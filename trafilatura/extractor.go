// Package trafilatura adapts the go-trafilatura content extractor for
// scraping article bodies out of sports news pages.
package trafilatura

import (
	"bytes"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"github.com/sportsense/sportsense"
	"golang.org/x/net/html"
)

var _ sportsense.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main article body from
// HTML, dropping navigation, ads, and other boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content along with the
// title, publish date, and language detected from page metadata.
func (e *Extractor) Extract(rawHTML string) (*sportsense.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sportsense.Errorf(sportsense.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	var publishedAt string
	if !result.Metadata.Date.IsZero() {
		publishedAt = result.Metadata.Date.Format(time.RFC3339)
	}

	return &sportsense.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		PublishedAt: publishedAt,
		Language:    result.Metadata.Language,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
