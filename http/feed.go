package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sportsense/sportsense"
)

var _ sportsense.FeedService = (*FeedService)(nil)

// FeedService discovers article URLs from RSS and Atom feeds via HTTP.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// DiscoverItems fetches and parses the feed at feedURL. Both RSS 2.0 and
// Atom documents are accepted; items without a resolvable link are
// dropped.
func (s *FeedService) DiscoverItems(ctx context.Context, feedURL string) ([]sportsense.FeedItem, error) {
	body, err := s.fetchURL(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, sportsense.Errorf(sportsense.EINVALID, "parsing feed XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, sportsense.Errorf(sportsense.EINVALID, "empty feed document")
	}

	switch root.Tag {
	case "rss":
		channel := root.SelectElement("channel")
		if channel == nil {
			return nil, sportsense.Errorf(sportsense.EINVALID, "RSS feed without channel")
		}
		return parseRSSItems(channel), nil
	case "feed":
		return parseAtomEntries(root), nil
	default:
		return nil, sportsense.Errorf(sportsense.EINVALID, "unsupported feed format %q", root.Tag)
	}
}

// parseRSSItems extracts items from an RSS <channel> element.
func parseRSSItems(channel *etree.Element) []sportsense.FeedItem {
	var items []sportsense.FeedItem
	for _, item := range channel.SelectElements("item") {
		link := elementText(item, "link")
		if link == "" {
			continue
		}
		items = append(items, sportsense.FeedItem{
			URL:         link,
			Title:       elementText(item, "title"),
			PublishedAt: parseFeedTime(elementText(item, "pubDate")),
		})
	}
	return items
}

// parseAtomEntries extracts entries from an Atom <feed> element.
func parseAtomEntries(feed *etree.Element) []sportsense.FeedItem {
	var items []sportsense.FeedItem
	for _, entry := range feed.SelectElements("entry") {
		link := atomLink(entry)
		if link == "" {
			continue
		}
		published := elementText(entry, "published")
		if published == "" {
			published = elementText(entry, "updated")
		}
		items = append(items, sportsense.FeedItem{
			URL:         link,
			Title:       elementText(entry, "title"),
			PublishedAt: parseFeedTime(published),
		})
	}
	return items
}

// atomLink returns the href of an entry's alternate link, falling back to
// the first link with any rel.
func atomLink(entry *etree.Element) string {
	var fallback string
	for _, link := range entry.SelectElements("link") {
		href := strings.TrimSpace(link.SelectAttrValue("href", ""))
		if href == "" {
			continue
		}
		rel := link.SelectAttrValue("rel", "")
		if rel == "" || rel == "alternate" {
			return href
		}
		if fallback == "" {
			fallback = href
		}
	}
	return fallback
}

func elementText(parent *etree.Element, tag string) string {
	el := parent.SelectElement(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// feedTimeFormats covers the date formats seen in the wild across RSS and
// Atom feeds.
var feedTimeFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
}

// parseFeedTime parses a feed timestamp, returning the zero time when the
// value is missing or unrecognized.
func parseFeedTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, format := range feedTimeFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// fetchURL fetches a URL and returns the response body.
func (s *FeedService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, sportsense.Errorf(sportsense.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
