package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.FeedService = (*FeedService)(nil)

// FeedService is a mock implementation of sportsense.FeedService.
type FeedService struct {
	DiscoverItemsFn func(ctx context.Context, feedURL string) ([]sportsense.FeedItem, error)
}

func (s *FeedService) DiscoverItems(ctx context.Context, feedURL string) ([]sportsense.FeedItem, error) {
	return s.DiscoverItemsFn(ctx, feedURL)
}
