package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sportsense/sportsense"
)

// Compile-time interface verification.
var _ sportsense.ArticleService = (*ArticleService)(nil)

// ArticleService implements sportsense.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

const upsertArticleSQL = `
	INSERT INTO articles (id, source, url, title, content, content_hash, language, sport, published_at, scraped_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		source = excluded.source,
		url = excluded.url,
		title = excluded.title,
		content = excluded.content,
		content_hash = excluded.content_hash,
		language = excluded.language,
		sport = excluded.sport,
		published_at = excluded.published_at,
		scraped_at = excluded.scraped_at
`

// UpsertArticles inserts or replaces a batch of articles in a single
// transaction. Either every article is stored or none is.
func (s *ArticleService) UpsertArticles(ctx context.Context, articles []*sportsense.Article) error {
	if len(articles) == 0 {
		return nil
	}
	for _, a := range articles {
		if err := a.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertArticlesTx(ctx, tx, articles); err != nil {
		return err
	}

	return tx.Commit()
}

// upsertArticlesTx writes the batch inside an already open transaction.
func upsertArticlesTx(ctx context.Context, tx *sql.Tx, articles []*sportsense.Article) error {
	for _, a := range articles {
		if a.ScrapedAt.IsZero() {
			a.ScrapedAt = time.Now().UTC()
		}
		_, err := tx.ExecContext(ctx, upsertArticleSQL,
			a.ID, a.Source, a.URL, a.Title, a.Content, a.ContentHash, a.Language, a.Sport,
			formatOptionalRFC3339(a.PublishedAt), a.ScrapedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return nil
}

const selectArticleColumns = "id, source, url, title, content, content_hash, language, sport, published_at, scraped_at"

func scanArticle(scan func(dest ...any) error) (*sportsense.Article, error) {
	var a sportsense.Article
	var publishedAt, scrapedAt string

	if err := scan(&a.ID, &a.Source, &a.URL, &a.Title, &a.Content, &a.ContentHash,
		&a.Language, &a.Sport, &publishedAt, &scrapedAt); err != nil {
		return nil, err
	}

	var err error
	if a.PublishedAt, err = parseOptionalRFC3339(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	if a.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*sportsense.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectArticleColumns+" FROM articles WHERE id = ?", id)

	a, err := scanArticle(row.Scan)
	if err == sql.ErrNoRows {
		return nil, sportsense.Errorf(sportsense.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindArticles retrieves articles matching the filter, ordered by ID.
func (s *ArticleService) FindArticles(ctx context.Context, filter sportsense.ArticleFilter) ([]*sportsense.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + selectArticleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Language != nil {
		query.WriteString(" AND language = ?")
		args = append(args, *filter.Language)
	}
	if filter.Sport != nil {
		query.WriteString(" AND sport = ?")
		args = append(args, *filter.Sport)
	}
	if filter.ScrapedFrom != nil {
		query.WriteString(" AND scraped_at >= ?")
		args = append(args, filter.ScrapedFrom.Format(time.RFC3339))
	}
	if filter.ScrapedTo != nil {
		query.WriteString(" AND scraped_at <= ?")
		args = append(args, filter.ScrapedTo.Format(time.RFC3339))
	}

	// Ordered by ID so report inputs are stable across runs.
	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*sportsense.Article
	for rows.Next() {
		a, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// ExistsArticle reports whether an article with the given ID is stored.
func (s *ArticleService) ExistsArticle(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sportsense.Errorf(sportsense.ENOTFOUND, "article not found")
	}

	return nil
}
