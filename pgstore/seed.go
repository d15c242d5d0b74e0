package pgstore

import (
	"context"
	"fmt"

	"github.com/newsdesk/newsdesk/fixtures"
)

const truncateQuery = "TRUNCATE TABLE comments, articles, users, topics RESTART IDENTITY CASCADE"

// Truncate empties every table and restarts the id sequences.
func (s *PGStore) Truncate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, truncateQuery)
	return err
}

// Seed replaces the content of the database with the given dataset, in a single
// transaction. Since ids restart, the n-th article of the dataset gets the id n.
func (s *PGStore) Seed(ctx context.Context, data *fixtures.Dataset) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, truncateQuery); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	for _, t := range data.Topics {
		_, err := tx.NamedExecContext(ctx, "INSERT INTO topics (slug, description) VALUES (:slug, :description)", t)
		if err != nil {
			return fmt.Errorf("topic %q: %w", t.Slug, err)
		}
	}

	for _, u := range data.Users {
		_, err := tx.NamedExecContext(ctx, "INSERT INTO users (username) VALUES (:username)", u)
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Username, err)
		}
	}

	ids := make([]int64, len(data.Articles))
	for i, a := range data.Articles {
		err := tx.GetContext(ctx, &ids[i],
			`INSERT INTO articles (author, title, body, topic, votes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING article_id`,
			a.Author, a.Title, a.Body, a.Topic, a.Votes, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("article %q: %w", a.Title, err)
		}
	}

	for i, c := range data.Comments {
		if c.ArticleID < 1 || int(c.ArticleID) > len(ids) {
			return fmt.Errorf("comment %d refers to article #%d, out of %d", i, c.ArticleID, len(ids))
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO comments (article_id, author, body, votes, created_at) VALUES ($1, $2, $3, $4, $5)",
			ids[c.ArticleID-1], c.Author, c.Body, c.Votes, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("comment %d: %w", i, err)
		}
	}

	return tx.Commit()
}
