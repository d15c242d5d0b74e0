package pgstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/newsdesk/newsdesk"
)

const commentColumns = "comment_id, article_id, author, body, votes, created_at"

// ListComments returns a page of the comments of an article, newest first, along with
// the total number of comments on that article.
func (s *PGStore) ListComments(ctx context.Context, articleID int64, p newsdesk.Pagination) ([]*newsdesk.Comment, int64, error) {
	comments := []*newsdesk.Comment{}
	var total int64
	err := s.readOnly(ctx, func(tx *sqlx.Tx) error {
		err := tx.SelectContext(ctx, &comments, `SELECT `+commentColumns+`
FROM comments
WHERE article_id = $1
ORDER BY created_at DESC, comment_id DESC
LIMIT $2 OFFSET $3`, articleID, p.Limit, p.Offset())
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, &total, "SELECT COUNT(*) FROM comments WHERE article_id = $1", articleID)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("ListComments: %w", err)
	}

	return comments, total, nil
}

// InsertComment inserts the comment and fills its id. A missing article or author is
// reported as a *newsdesk.NotFoundError.
func (s *PGStore) InsertComment(ctx context.Context, comment *newsdesk.Comment) error {
	err := s.db.GetContext(ctx, comment,
		`INSERT INTO comments (article_id, author, body, votes, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING comment_id, votes, created_at`,
		comment.ArticleID, comment.Author, comment.Body, comment.Votes, comment.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	return nil
}

func (s *PGStore) DeleteComment(ctx context.Context, id int64) (bool, error) {
	return s.delete(ctx, "DELETE FROM comments WHERE comment_id = $1", id)
}
