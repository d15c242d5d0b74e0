package newsdesk

import (
	"context"
	"time"
)

// Store is the storage layer. Lookups of a single record return a nil record and a nil
// error when nothing matches. Writes referencing a missing record return a
// *NotFoundError naming it.
type Store interface {
	Connect() error
	Close() error

	ListArticles(ctx context.Context, q ArticleQuery) ([]*Article, int64, error)
	FindArticle(ctx context.Context, id int64) (*Article, error)
	ArticleExists(ctx context.Context, id int64) (bool, error)
	InsertArticle(ctx context.Context, article *Article) error
	IncrementArticleVotes(ctx context.Context, id int64, inc int) (*Article, error)
	DeleteArticle(ctx context.Context, id int64) (bool, error)
	ListBreakingNews(ctx context.Context, since time.Time) ([]*BreakingNews, error)

	ListComments(ctx context.Context, articleID int64, p Pagination) ([]*Comment, int64, error)
	InsertComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, id int64) (bool, error)

	ListTopics(ctx context.Context) ([]*Topic, error)
	InsertTopic(ctx context.Context, topic *Topic) error
	TopicExists(ctx context.Context, slug string) (bool, error)

	ListUsers(ctx context.Context) ([]*User, error)
	FindUser(ctx context.Context, username string) (*User, error)
	UserExists(ctx context.Context, username string) (bool, error)
}
