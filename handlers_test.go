package newsdesk

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

var testArticle = &Article{
	ID:           1,
	Author:       "butter_bridge",
	Title:        "Living in the shadow of a great man",
	Body:         "I find this existence challenging",
	Topic:        "mitch",
	CreatedAt:    time.Date(2020, time.July, 9, 20, 11, 0, 0, time.UTC),
	Votes:        100,
	CommentCount: 13,
}

func TestHandleArticles(t *testing.T) {
	c := qt.New(t)

	c.Run("GET /api/articles/:id", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{
			findArticle: func(ctx context.Context, id int64) (*Article, error) {
				if id == 1 {
					return testArticle, nil
				}
				return nil, nil
			},
		})

		rec := do(s, http.MethodGet, "/api/articles/1", "")
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		article := decodeBody(c, rec)["article"].(map[string]interface{})
		c.Assert(article["article_id"], qt.Equals, float64(1))
		c.Assert(article["comment_count"], qt.Equals, float64(13))
		c.Assert(article["created_at"], qt.Equals, "2020-07-09T20:11:00Z")

		assertMsg(c, do(s, http.MethodGet, "/api/articles/999", ""), http.StatusNotFound, "Article not found")
		assertMsg(c, do(s, http.MethodGet, "/api/articles/abc", ""), http.StatusBadRequest, "Bad request")
	})

	c.Run("GET /api/articles/:id beyond 32 bits", func(c *qt.C) {
		var got int64
		s := newTestServer(c, &fakeStore{
			findArticle: func(ctx context.Context, id int64) (*Article, error) {
				got = id
				return nil, nil
			},
		})

		assertMsg(c, do(s, http.MethodGet, "/api/articles/9999999999", ""), http.StatusNotFound, "Article not found")
		c.Assert(got, qt.Equals, int64(9999999999))
		assertMsg(c, do(s, http.MethodGet, "/api/articles/99999999999999999999", ""), http.StatusBadRequest, "Bad request")
	})

	c.Run("GET /api/articles", func(c *qt.C) {
		var got ArticleQuery
		s := newTestServer(c, &fakeStore{
			listArticles: func(ctx context.Context, q ArticleQuery) ([]*Article, int64, error) {
				got = q
				return []*Article{testArticle}, 12, nil
			},
		})

		rec := do(s, http.MethodGet, "/api/articles?limit=4&page=2&sort_by=votes&order=asc&topic=mitch", "")
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		body := decodeBody(c, rec)
		c.Assert(body["total_count"], qt.Equals, float64(12))
		c.Assert(body["articles"], qt.HasLen, 1)
		c.Assert(got.Limit, qt.Equals, 4)
		c.Assert(got.Page, qt.Equals, 2)
		c.Assert(got.SortBy, qt.Equals, SortByVotes)
		c.Assert(got.Order, qt.Equals, Asc)
		c.Assert(got.Topic, qt.Equals, "mitch")

		assertMsg(c, do(s, http.MethodGet, "/api/articles?sort_by=password", ""), http.StatusBadRequest, "Bad request")
		assertMsg(c, do(s, http.MethodGet, "/api/articles?limit=0", ""), http.StatusBadRequest, "Bad request")
		assertMsg(c, do(s, http.MethodGet, "/api/articles?page=9223372036854775807", ""), http.StatusBadRequest, "Bad request")
	})

	c.Run("GET /api/articles with an unknown topic", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{})

		assertMsg(c, do(s, http.MethodGet, "/api/articles?topic=dogs", ""), http.StatusNotFound, "Topic not found")
		assertMsg(c, do(s, http.MethodGet, "/api/articles?author=ghost", ""), http.StatusNotFound, "User not found")
	})

	c.Run("GET /api/articles with an empty topic", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{
			topicExists: func(ctx context.Context, slug string) (bool, error) { return true, nil },
		})

		rec := do(s, http.MethodGet, "/api/articles?topic=paper", "")
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		c.Assert(strings.TrimSpace(rec.Body.String()), qt.Equals, `{"articles":[],"total_count":0}`)
	})

	c.Run("POST /api/articles", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{
			insertArticle: func(ctx context.Context, article *Article) error {
				if article.Topic != "paper" {
					return NotFound(KindTopic)
				}
				article.ID = 13
				return nil
			},
		})

		var hooked *Article
		s.AddArticleHook(func(ctx context.Context, article *Article) error {
			hooked = article
			return errors.New("hook failures are only logged")
		})

		rec := do(s, http.MethodPost, "/api/articles", `{"author": "lurker", "title": "Paper planes", "body": "They fly.", "topic": "paper"}`)
		c.Assert(rec.Code, qt.Equals, http.StatusCreated)
		article := decodeBody(c, rec)["article"].(map[string]interface{})
		c.Assert(article["article_id"], qt.Equals, float64(13))
		c.Assert(article["votes"], qt.Equals, float64(0))
		c.Assert(article["comment_count"], qt.Equals, float64(0))
		c.Assert(hooked, qt.IsNotNil)
		c.Assert(hooked.ID, qt.Equals, int64(13))

		rec = do(s, http.MethodPost, "/api/articles", `{"author": "lurker", "title": "t", "body": "b", "topic": "dogs"}`)
		assertMsg(c, rec, http.StatusNotFound, "Topic not found")

		rec = do(s, http.MethodPost, "/api/articles", `{"author": "lurker", "title": "t"}`)
		assertMsg(c, rec, http.StatusBadRequest, "Bad request")
	})

	c.Run("PATCH /api/articles/:id", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{
			incrementArticleVotes: func(ctx context.Context, id int64, inc int) (*Article, error) {
				if id != 1 {
					return nil, nil
				}
				a := *testArticle
				a.Votes += inc
				return &a, nil
			},
		})

		rec := do(s, http.MethodPatch, "/api/articles/1", `{"inc_votes": -40}`)
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		article := decodeBody(c, rec)["article"].(map[string]interface{})
		c.Assert(article["votes"], qt.Equals, float64(60))

		assertMsg(c, do(s, http.MethodPatch, "/api/articles/1", `{}`), http.StatusBadRequest, "Bad request")
		assertMsg(c, do(s, http.MethodPatch, "/api/articles/1", `{"inc_votes": "cat"}`), http.StatusBadRequest, "Bad request")
		assertMsg(c, do(s, http.MethodPatch, "/api/articles/cat", `{"inc_votes": 1}`), http.StatusBadRequest, "Bad request")
		assertMsg(c, do(s, http.MethodPatch, "/api/articles/999", `{"inc_votes": 1}`), http.StatusNotFound, "Article not found")
	})

	c.Run("DELETE /api/articles/:id", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{
			deleteArticle: func(ctx context.Context, id int64) (bool, error) { return id == 1, nil },
		})

		rec := do(s, http.MethodDelete, "/api/articles/1", "")
		c.Assert(rec.Code, qt.Equals, http.StatusNoContent)
		c.Assert(rec.Body.Len(), qt.Equals, 0)

		assertMsg(c, do(s, http.MethodDelete, "/api/articles/1000", ""), http.StatusNotFound, "Article not found")
		assertMsg(c, do(s, http.MethodDelete, "/api/articles/one", ""), http.StatusBadRequest, "Bad request")
	})

	c.Run("GET /api/articles/breaking-news", func(c *qt.C) {
		now := time.Date(2020, time.November, 3, 12, 0, 0, 0, time.UTC)
		withFakeNow(c, now)

		s := newTestServer(c, &fakeStore{
			listBreakingNews: func(ctx context.Context, since time.Time) ([]*BreakingNews, error) {
				c.Check(since, qt.Equals, now.Add(-24*time.Hour))
				return []*BreakingNews{{ArticleID: 14, Title: "Newest"}, {ArticleID: 13, Title: "New"}}, nil
			},
		})

		rec := do(s, http.MethodGet, "/api/articles/breaking-news", "")
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		c.Assert(strings.TrimSpace(rec.Body.String()), qt.Equals,
			`{"breaking_news":[{"article_id":14,"title":"Newest"},{"article_id":13,"title":"New"}]}`)
	})

	c.Run("storage failures do not leak", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{
			findArticle: func(ctx context.Context, id int64) (*Article, error) {
				return nil, errors.New(`pq: relation "articles" does not exist`)
			},
		})

		rec := do(s, http.MethodGet, "/api/articles/1", "")
		assertMsg(c, rec, http.StatusInternalServerError, "Internal server error")
		c.Assert(rec.Body.String(), qt.Not(qt.Contains), "pq")
	})
}

func TestHandleComments(t *testing.T) {
	c := qt.New(t)

	c.Run("GET /api/articles/:id/comments", func(c *qt.C) {
		var got Pagination
		s := newTestServer(c, &fakeStore{
			listComments: func(ctx context.Context, articleID int64, p Pagination) ([]*Comment, int64, error) {
				got = p
				if articleID != 1 {
					return nil, 0, nil
				}
				return []*Comment{{ID: 2, ArticleID: 1, Author: "butter_bridge", Body: "Lobster pot"}}, 13, nil
			},
			articleExists: func(ctx context.Context, id int64) (bool, error) { return id == 2, nil },
		})

		rec := do(s, http.MethodGet, "/api/articles/1/comments?limit=1&page=2", "")
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		body := decodeBody(c, rec)
		c.Assert(body["total_count"], qt.Equals, float64(13))
		c.Assert(body["comments"], qt.HasLen, 1)
		c.Assert(got, qt.Equals, Pagination{Limit: 1, Page: 2})

		rec = do(s, http.MethodGet, "/api/articles/2/comments", "")
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		c.Assert(strings.TrimSpace(rec.Body.String()), qt.Equals, `{"comments":[],"total_count":0}`)

		assertMsg(c, do(s, http.MethodGet, "/api/articles/999/comments", ""), http.StatusNotFound, "Article not found")
		assertMsg(c, do(s, http.MethodGet, "/api/articles/abc/comments", ""), http.StatusBadRequest, "Bad request")
	})

	c.Run("POST /api/articles/:id/comments", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{
			insertComment: func(ctx context.Context, comment *Comment) error {
				if comment.Author != "lurker" {
					return NotFound(KindUser)
				}
				if comment.ArticleID != 2 {
					return NotFound(KindArticle)
				}
				comment.ID = 19
				return nil
			},
		})

		rec := do(s, http.MethodPost, "/api/articles/2/comments", `{"username": "lurker", "body": "first!"}`)
		c.Assert(rec.Code, qt.Equals, http.StatusCreated)
		comment := decodeBody(c, rec)["comment"].(map[string]interface{})
		c.Assert(comment["comment_id"], qt.Equals, float64(19))
		c.Assert(comment["article_id"], qt.Equals, float64(2))
		c.Assert(comment["author"], qt.Equals, "lurker")
		c.Assert(comment["votes"], qt.Equals, float64(0))

		assertMsg(c, do(s, http.MethodPost, "/api/articles/2/comments", `{"username": "ghost"}`), http.StatusBadRequest, "Bad request")
		assertMsg(c, do(s, http.MethodPost, "/api/articles/2/comments", `{"username": "ghost", "body": "boo"}`), http.StatusNotFound, "User not found")
		assertMsg(c, do(s, http.MethodPost, "/api/articles/999/comments", `{"username": "lurker", "body": "hello?"}`), http.StatusNotFound, "Article not found")
	})

	c.Run("DELETE /api/comments/:id", func(c *qt.C) {
		s := newTestServer(c, &fakeStore{
			deleteComment: func(ctx context.Context, id int64) (bool, error) { return id == 1, nil },
		})

		c.Assert(do(s, http.MethodDelete, "/api/comments/1", "").Code, qt.Equals, http.StatusNoContent)
		assertMsg(c, do(s, http.MethodDelete, "/api/comments/1000", ""), http.StatusNotFound, "Comment not found")
	})
}

func TestHandleTopicsAndUsers(t *testing.T) {
	c := qt.New(t)

	s := newTestServer(c, &fakeStore{
		listTopics: func(ctx context.Context) ([]*Topic, error) {
			return []*Topic{{Slug: "mitch", Description: "The man, the Mitch, the legend"}}, nil
		},
		insertTopic: func(ctx context.Context, topic *Topic) error {
			if topic.Slug == "mitch" {
				return InvalidPayload(errors.New("duplicate key"))
			}
			return nil
		},
		findUser: func(ctx context.Context, username string) (*User, error) {
			if username == "lurker" {
				return &User{Username: username}, nil
			}
			return nil, nil
		},
	})

	rec := do(s, http.MethodGet, "/api/topics", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(decodeBody(c, rec)["topics"], qt.HasLen, 1)

	rec = do(s, http.MethodPost, "/api/topics", `{"slug": "dogs", "description": "Not cats"}`)
	c.Assert(rec.Code, qt.Equals, http.StatusCreated)
	c.Assert(decodeBody(c, rec)["topic"], qt.DeepEquals, map[string]interface{}{"slug": "dogs", "description": "Not cats"})
	assertMsg(c, do(s, http.MethodPost, "/api/topics", `{"slug": "mitch", "description": "again"}`), http.StatusBadRequest, "Bad request")

	rec = do(s, http.MethodGet, "/api/users", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(strings.TrimSpace(rec.Body.String()), qt.Equals, `{"users":[]}`)

	rec = do(s, http.MethodGet, "/api/users/lurker", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(decodeBody(c, rec)["user"], qt.DeepEquals, map[string]interface{}{"username": "lurker"})
	assertMsg(c, do(s, http.MethodGet, "/api/users/ghost", ""), http.StatusNotFound, "User not found")
}

func TestRouting(t *testing.T) {
	c := qt.New(t)
	s := newTestServer(c, &fakeStore{})

	assertMsg(c, do(s, http.MethodGet, "/api/not-a-route", ""), http.StatusNotFound, "Invalid URL")
	assertMsg(c, do(s, http.MethodGet, "/api/articles/1/votes", ""), http.StatusNotFound, "Invalid URL")
	assertMsg(c, do(s, http.MethodPut, "/api/articles/1", "{}"), http.StatusMethodNotAllowed, "Method not allowed")

	rec := do(s, http.MethodGet, "/api", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	described := decodeBody(c, rec)["endpoints"].(map[string]interface{})
	c.Assert(described, qt.HasLen, len(endpoints))
	c.Assert(described["GET /api/articles/breaking-news"], qt.IsNotNil)

	rec = do(s, http.MethodGet, "/metrics", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.Contains, `newsdesk_http_requests_total{code="200",handler="endpoints"} 1`)
}
