package sportsense

import (
	"context"
	"time"
)

// FeedItem is one entry discovered from an RSS or Atom feed.
type FeedItem struct {
	URL         string
	Title       string
	PublishedAt time.Time
}

// FeedService discovers article URLs from RSS/Atom feeds.
type FeedService interface {
	// DiscoverItems fetches and parses the feed at feedURL.
	// Items without a resolvable link are dropped.
	DiscoverItems(ctx context.Context, feedURL string) ([]FeedItem, error)
}
