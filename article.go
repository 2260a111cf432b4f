package sportsense

import (
	"context"
	"time"
)

// Article represents a scraped news article. Articles are immutable once
// scraped and are deduplicated by ID, which is derived from the canonical
// source URL.
type Article struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"` // Markdown
	ContentHash string    `json:"contentHash"`
	Language    string    `json:"language"`
	Sport       string    `json:"sport"`
	PublishedAt time.Time `json:"publishedAt"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.ID == "" {
		return Errorf(EINVALID, "article ID required")
	}
	if a.Source == "" {
		return Errorf(EINVALID, "article source required")
	}
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	return nil
}

// ArticleService represents a service for managing articles. All writes
// are upserts keyed by article ID, so repeated ingestion of the same
// article never accumulates duplicates.
type ArticleService interface {
	// UpsertArticles inserts or replaces a batch of articles in a single
	// transaction. Either every article in the batch is stored or none is.
	UpsertArticles(ctx context.Context, articles []*Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter, ordered by ID.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// ExistsArticle reports whether an article with the given ID is stored.
	ExistsArticle(ctx context.Context, id string) (bool, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID       *string `json:"id"`
	Source   *string `json:"source"`
	Language *string `json:"language"`
	Sport    *string `json:"sport"`

	// Inclusive date range over ScrapedAt.
	ScrapedFrom *time.Time `json:"scrapedFrom"`
	ScrapedTo   *time.Time `json:"scrapedTo"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
