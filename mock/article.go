package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of sportsense.ArticleService.
type ArticleService struct {
	UpsertArticlesFn  func(ctx context.Context, articles []*sportsense.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*sportsense.Article, error)
	FindArticlesFn    func(ctx context.Context, filter sportsense.ArticleFilter) ([]*sportsense.Article, error)
	ExistsArticleFn   func(ctx context.Context, id string) (bool, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) UpsertArticles(ctx context.Context, articles []*sportsense.Article) error {
	return s.UpsertArticlesFn(ctx, articles)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*sportsense.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter sportsense.ArticleFilter) ([]*sportsense.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) ExistsArticle(ctx context.Context, id string) (bool, error) {
	return s.ExistsArticleFn(ctx, id)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
