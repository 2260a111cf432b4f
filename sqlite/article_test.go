package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/sportsense/sportsense"
	"github.com/sportsense/sportsense/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArticle(id string) *sportsense.Article {
	return &sportsense.Article{
		ID:          id,
		Source:      "sportsday",
		URL:         "https://sportsday.example.com/news/" + id,
		Title:       "Derby ends in a draw",
		Content:     "# Derby\n\nThe match ended 2-2.",
		ContentHash: "abcd1234",
		Language:    "en",
		Sport:       "football",
		ScrapedAt:   time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC),
	}
}

func TestArticleService_UpsertArticles(t *testing.T) {
	t.Parallel()

	t.Run("stores a batch of articles", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()

		err := svc.UpsertArticles(ctx, []*sportsense.Article{testArticle("a1"), testArticle("a2")})
		require.NoError(t, err)

		found, err := svc.FindArticles(ctx, sportsense.ArticleFilter{})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("repeated upsert of identical article leaves one row", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertArticles(ctx, []*sportsense.Article{testArticle("a1")}))
		require.NoError(t, svc.UpsertArticles(ctx, []*sportsense.Article{testArticle("a1")}))

		found, err := svc.FindArticles(ctx, sportsense.ArticleFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "a1", found[0].ID)
		assert.Equal(t, "abcd1234", found[0].ContentHash)
	})

	t.Run("re-scrape with changed content replaces the row", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertArticles(ctx, []*sportsense.Article{testArticle("a1")}))

		updated := testArticle("a1")
		updated.Content = "# Derby\n\nCorrected: the match ended 3-2."
		updated.ContentHash = "ef567890"
		require.NoError(t, svc.UpsertArticles(ctx, []*sportsense.Article{updated}))

		found, err := svc.FindArticleByID(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "ef567890", found.ContentHash)

		all, err := svc.FindArticles(ctx, sportsense.ArticleFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("batch is all-or-nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()

		invalid := testArticle("a2")
		invalid.Source = "" // fails validation

		err := svc.UpsertArticles(ctx, []*sportsense.Article{testArticle("a1"), invalid})
		require.Error(t, err)
		assert.Equal(t, sportsense.EINVALID, sportsense.ErrorCode(err))

		found, err := svc.FindArticles(ctx, sportsense.ArticleFilter{})
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestArticleService_FindArticles(t *testing.T) {
	t.Parallel()

	t.Run("filters by source and scraped date range", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()

		old := testArticle("a1")
		old.ScrapedAt = time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
		recent := testArticle("a2")
		other := testArticle("a3")
		other.Source = "hoopsfeed"

		require.NoError(t, svc.UpsertArticles(ctx, []*sportsense.Article{old, recent, other}))

		source := "sportsday"
		from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
		found, err := svc.FindArticles(ctx, sportsense.ArticleFilter{Source: &source, ScrapedFrom: &from})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "a2", found[0].ID)
	})

	t.Run("orders by ID for stable report inputs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertArticles(ctx, []*sportsense.Article{
			testArticle("b2"), testArticle("a1"), testArticle("c3"),
		}))

		found, err := svc.FindArticles(ctx, sportsense.ArticleFilter{})
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "a1", found[0].ID)
		assert.Equal(t, "b2", found[1].ID)
		assert.Equal(t, "c3", found[2].ID)
	})
}

func TestArticleService_FindArticleByID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing article", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)

		_, err := svc.FindArticleByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, sportsense.ENOTFOUND, sportsense.ErrorCode(err))
	})
}

func TestArticleService_ExistsArticle(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewArticleService(db)
	ctx := context.Background()

	require.NoError(t, svc.UpsertArticles(ctx, []*sportsense.Article{testArticle("a1")}))

	exists, err := svc.ExistsArticle(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.ExistsArticle(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestArticleService_DeleteArticle(t *testing.T) {
	t.Parallel()

	t.Run("deletes stored article", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertArticles(ctx, []*sportsense.Article{testArticle("a1")}))
		require.NoError(t, svc.DeleteArticle(ctx, "a1"))

		_, err := svc.FindArticleByID(ctx, "a1")
		assert.Equal(t, sportsense.ENOTFOUND, sportsense.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing article", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)

		err := svc.DeleteArticle(context.Background(), "missing")
		assert.Equal(t, sportsense.ENOTFOUND, sportsense.ErrorCode(err))
	})
}
