package newsdesk

import (
	"time"
)

type Comment struct {
	ID        int64     `db:"comment_id" json:"comment_id"`
	ArticleID int64     `db:"article_id" json:"article_id"`
	Author    string    `db:"author" json:"author"`
	Body      string    `db:"body" json:"body"`
	Votes     int       `db:"votes" json:"votes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CommentPage is a window over the comments of an article, newest first.
type CommentPage struct {
	Comments   []*Comment `json:"comments"`
	TotalCount int64      `json:"total_count"`
}

func NewComment(articleID int64, author string, body string) *Comment {
	return &Comment{
		ArticleID: articleID,
		Author:    author,
		Body:      body,
		Votes:     0,
		CreatedAt: NowFunc(),
	}
}
