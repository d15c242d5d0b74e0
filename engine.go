package newsdesk

import (
	"context"
)

// Engine resolves validated requests against the Store. Every error it returns belongs
// to the error taxonomy: store failures come out as *StorageError.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// ListArticles returns a page of articles. When the page is empty, it checks that the
// topic and author being filtered on exist, so that an unknown filter value is reported
// as not found rather than as an empty result.
func (e *Engine) ListArticles(ctx context.Context, q ArticleQuery) (*ArticlePage, error) {
	articles, total, err := e.store.ListArticles(ctx, q)
	if err != nil {
		return nil, storageErr(err)
	}

	if len(articles) == 0 {
		if err := e.checkFilterTargets(ctx, q); err != nil {
			return nil, err
		}
	}

	return &ArticlePage{Articles: nonNilArticles(articles), TotalCount: total}, nil
}

func (e *Engine) checkFilterTargets(ctx context.Context, q ArticleQuery) error {
	if q.Topic != "" {
		ok, err := e.store.TopicExists(ctx, q.Topic)
		if err != nil {
			return storageErr(err)
		}
		if !ok {
			return NotFound(KindTopic)
		}
	}

	if q.Author != "" {
		ok, err := e.store.UserExists(ctx, q.Author)
		if err != nil {
			return storageErr(err)
		}
		if !ok {
			return NotFound(KindUser)
		}
	}

	return nil
}

// FindArticle returns a single article with its comment count.
func (e *Engine) FindArticle(ctx context.Context, id int64) (*Article, error) {
	article, err := e.store.FindArticle(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if article == nil {
		return nil, NotFound(KindArticle)
	}

	return article, nil
}

// BreakingNews lists the articles created during the last 24 hours, newest first.
func (e *Engine) BreakingNews(ctx context.Context) ([]*BreakingNews, error) {
	since := NowFunc().Add(-breakingNewsWindow)
	news, err := e.store.ListBreakingNews(ctx, since)
	if err != nil {
		return nil, storageErr(err)
	}
	if news == nil {
		news = []*BreakingNews{}
	}

	return news, nil
}

// CreateArticle inserts a new article. A missing author or topic is reported by the
// store through the foreign keys.
func (e *Engine) CreateArticle(ctx context.Context, p *ArticlePayload) (*Article, error) {
	article := NewArticle(p.Author, p.Title, p.Body, p.Topic)
	if err := e.store.InsertArticle(ctx, article); err != nil {
		return nil, storageErr(err)
	}
	article.CommentCount = 0

	return article, nil
}

// VoteArticle adds inc to the votes of an article in a single statement.
func (e *Engine) VoteArticle(ctx context.Context, id int64, inc int) (*Article, error) {
	article, err := e.store.IncrementArticleVotes(ctx, id, inc)
	if err != nil {
		return nil, storageErr(err)
	}
	if article == nil {
		return nil, NotFound(KindArticle)
	}

	return article, nil
}

// DeleteArticle removes an article along with its comments.
func (e *Engine) DeleteArticle(ctx context.Context, id int64) error {
	deleted, err := e.store.DeleteArticle(ctx, id)
	if err != nil {
		return storageErr(err)
	}
	if !deleted {
		return NotFound(KindArticle)
	}

	return nil
}

// ListComments returns a page of the comments of an article, newest first. As with
// articles, the article is only looked up when the page comes back empty.
func (e *Engine) ListComments(ctx context.Context, articleID int64, p Pagination) (*CommentPage, error) {
	comments, total, err := e.store.ListComments(ctx, articleID, p)
	if err != nil {
		return nil, storageErr(err)
	}

	if len(comments) == 0 {
		ok, err := e.store.ArticleExists(ctx, articleID)
		if err != nil {
			return nil, storageErr(err)
		}
		if !ok {
			return nil, NotFound(KindArticle)
		}
		comments = []*Comment{}
	}

	return &CommentPage{Comments: comments, TotalCount: total}, nil
}

// CreateComment posts a comment on an article. A missing article or user is reported by
// the store through the foreign keys.
func (e *Engine) CreateComment(ctx context.Context, articleID int64, p *CommentPayload) (*Comment, error) {
	comment := NewComment(articleID, p.Username, p.Body)
	if err := e.store.InsertComment(ctx, comment); err != nil {
		return nil, storageErr(err)
	}

	return comment, nil
}

func (e *Engine) DeleteComment(ctx context.Context, id int64) error {
	deleted, err := e.store.DeleteComment(ctx, id)
	if err != nil {
		return storageErr(err)
	}
	if !deleted {
		return NotFound(KindComment)
	}

	return nil
}

func (e *Engine) ListTopics(ctx context.Context) ([]*Topic, error) {
	topics, err := e.store.ListTopics(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	if topics == nil {
		topics = []*Topic{}
	}

	return topics, nil
}

func (e *Engine) CreateTopic(ctx context.Context, p *TopicPayload) (*Topic, error) {
	topic := &Topic{Slug: p.Slug, Description: p.Description}
	if err := e.store.InsertTopic(ctx, topic); err != nil {
		return nil, storageErr(err)
	}

	return topic, nil
}

func (e *Engine) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	if users == nil {
		users = []*User{}
	}

	return users, nil
}

func (e *Engine) FindUser(ctx context.Context, username string) (*User, error) {
	user, err := e.store.FindUser(ctx, username)
	if err != nil {
		return nil, storageErr(err)
	}
	if user == nil {
		return nil, NotFound(KindUser)
	}

	return user, nil
}

// nonNilArticles makes sure an empty page encodes as [] rather than null.
func nonNilArticles(articles []*Article) []*Article {
	if articles == nil {
		return []*Article{}
	}
	return articles
}
