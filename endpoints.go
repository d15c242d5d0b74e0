package newsdesk

type endpoint struct {
	Description string   `json:"description"`
	Queries     []string `json:"queries,omitempty"`
	Body        []string `json:"body,omitempty"`
}

// endpoints is served by GET /api. Keep it in sync with the routes declared in Prepare.
var endpoints = map[string]endpoint{
	"GET /api": {
		Description: "describes every available endpoint",
	},
	"GET /api/topics": {
		Description: "lists all topics",
	},
	"POST /api/topics": {
		Description: "creates a topic",
		Body:        []string{"slug", "description"},
	},
	"GET /api/users": {
		Description: "lists all users",
	},
	"GET /api/users/:username": {
		Description: "serves a single user",
	},
	"GET /api/articles": {
		Description: "lists articles with their comment count, along with the total count of matching articles",
		Queries:     []string{"topic", "author", "sort_by", "order", "limit", "page"},
	},
	"POST /api/articles": {
		Description: "creates an article",
		Body:        []string{"author", "title", "body", "topic"},
	},
	"GET /api/articles/breaking-news": {
		Description: "lists the id and title of the articles created during the last 24 hours, newest first",
	},
	"GET /api/articles/:article_id": {
		Description: "serves a single article with its comment count",
	},
	"PATCH /api/articles/:article_id": {
		Description: "adds inc_votes to the votes of an article",
		Body:        []string{"inc_votes"},
	},
	"DELETE /api/articles/:article_id": {
		Description: "deletes an article and its comments",
	},
	"GET /api/articles/:article_id/comments": {
		Description: "lists the comments of an article, newest first, along with their total count",
		Queries:     []string{"limit", "page"},
	},
	"POST /api/articles/:article_id/comments": {
		Description: "posts a comment on an article",
		Body:        []string{"username", "body"},
	},
	"DELETE /api/comments/:comment_id": {
		Description: "deletes a comment",
	},
}
