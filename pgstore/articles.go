package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/newsdesk/newsdesk"
)

func (s *PGStore) ListArticles(ctx context.Context, q newsdesk.ArticleQuery) ([]*newsdesk.Article, int64, error) {
	query, args, err := buildListArticlesQuery(q)
	if err != nil {
		return nil, 0, err
	}
	countQuery, countArgs := buildCountArticlesQuery(q)

	articles := []*newsdesk.Article{}
	var total int64
	err = s.readOnly(ctx, func(tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &articles, query, args...); err != nil {
			return err
		}
		return tx.GetContext(ctx, &total, countQuery, countArgs...)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("ListArticles: %w", err)
	}

	return articles, total, nil
}

func (s *PGStore) FindArticle(ctx context.Context, id int64) (*newsdesk.Article, error) {
	article := newsdesk.Article{}
	err := s.db.GetContext(ctx, &article, `SELECT `+articleColumns+`
FROM articles
LEFT JOIN comments ON comments.article_id = articles.article_id
WHERE articles.article_id = $1
GROUP BY articles.article_id`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindArticle: %w", err)
	}

	return &article, nil
}

func (s *PGStore) ArticleExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS (SELECT 1 FROM articles WHERE article_id = $1)", id)
}

// InsertArticle inserts the article and fills its id. Votes and CreatedAt are set to the
// stored values.
func (s *PGStore) InsertArticle(ctx context.Context, article *newsdesk.Article) error {
	err := s.db.GetContext(ctx, article,
		`INSERT INTO articles (author, title, body, topic, votes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING article_id, votes, created_at`,
		article.Author, article.Title, article.Body, article.Topic, article.Votes, article.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	return nil
}

// IncrementArticleVotes adds inc to the votes of an article in a single statement and returns
// the updated article, or nil if it doesn't exist.
func (s *PGStore) IncrementArticleVotes(ctx context.Context, id int64, inc int) (*newsdesk.Article, error) {
	article := newsdesk.Article{}
	err := s.db.GetContext(ctx, &article, `WITH updated AS (
	UPDATE articles SET votes = votes + $1 WHERE article_id = $2
	RETURNING article_id, author, title, body, topic, created_at, votes
)
SELECT updated.*,
	(SELECT COUNT(*) FROM comments WHERE comments.article_id = updated.article_id) AS comment_count
FROM updated`, inc, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("IncrementArticleVotes: %w", err)
	}

	return &article, nil
}

// DeleteArticle deletes an article, its comments going along through the cascading
// foreign key. It reports whether the article existed.
func (s *PGStore) DeleteArticle(ctx context.Context, id int64) (bool, error) {
	return s.delete(ctx, "DELETE FROM articles WHERE article_id = $1", id)
}

func (s *PGStore) ListBreakingNews(ctx context.Context, since time.Time) ([]*newsdesk.BreakingNews, error) {
	news := []*newsdesk.BreakingNews{}
	err := s.db.SelectContext(ctx, &news,
		"SELECT article_id, title FROM articles WHERE created_at >= $1 ORDER BY created_at DESC, article_id DESC", since)
	if err != nil {
		return nil, fmt.Errorf("ListBreakingNews: %w", err)
	}

	return news, nil
}

func (s *PGStore) delete(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
