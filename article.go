package newsdesk

import (
	"time"
)

// An Article is a story posted by a user under a topic. CommentCount is computed by the
// store when the article is read and is always set, zero included.
type Article struct {
	ID           int64     `db:"article_id" json:"article_id"`
	Author       string    `db:"author" json:"author"`
	Title        string    `db:"title" json:"title"`
	Body         string    `db:"body" json:"body"`
	Topic        string    `db:"topic" json:"topic"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	Votes        int       `db:"votes" json:"votes"`
	CommentCount int64     `db:"comment_count" json:"comment_count"`
}

// ArticlePage is a window over a filtered and sorted list of articles. TotalCount is the
// number of articles matching the filter, regardless of the window.
type ArticlePage struct {
	Articles   []*Article `json:"articles"`
	TotalCount int64      `json:"total_count"`
}

// BreakingNews is the projection of a recently created article.
type BreakingNews struct {
	ArticleID int64  `db:"article_id" json:"article_id"`
	Title     string `db:"title" json:"title"`
}

// breakingNewsWindow is how far back an article still counts as breaking news.
const breakingNewsWindow = 24 * time.Hour

func NewArticle(author string, title string, body string, topic string) *Article {
	return &Article{
		Author:    author,
		Title:     title,
		Body:      body,
		Topic:     topic,
		Votes:     0,
		CreatedAt: NowFunc(),
	}
}
