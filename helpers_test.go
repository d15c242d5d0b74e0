package newsdesk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"
)

// withFakeNow freezes NowFunc for the duration of the test.
func withFakeNow(t testing.TB, now time.Time) {
	orig := NowFunc
	NowFunc = func() time.Time { return now }
	t.Cleanup(func() { NowFunc = orig })
}

// fakeStore is a Store whose behaviour is set per test. Methods left unset return zero
// values, meaning empty results and missing records.
type fakeStore struct {
	connected bool

	listArticles          func(ctx context.Context, q ArticleQuery) ([]*Article, int64, error)
	findArticle           func(ctx context.Context, id int64) (*Article, error)
	articleExists         func(ctx context.Context, id int64) (bool, error)
	insertArticle         func(ctx context.Context, article *Article) error
	incrementArticleVotes func(ctx context.Context, id int64, inc int) (*Article, error)
	deleteArticle         func(ctx context.Context, id int64) (bool, error)
	listBreakingNews      func(ctx context.Context, since time.Time) ([]*BreakingNews, error)
	listComments          func(ctx context.Context, articleID int64, p Pagination) ([]*Comment, int64, error)
	insertComment         func(ctx context.Context, comment *Comment) error
	deleteComment         func(ctx context.Context, id int64) (bool, error)
	listTopics            func(ctx context.Context) ([]*Topic, error)
	insertTopic           func(ctx context.Context, topic *Topic) error
	topicExists           func(ctx context.Context, slug string) (bool, error)
	listUsers             func(ctx context.Context) ([]*User, error)
	findUser              func(ctx context.Context, username string) (*User, error)
	userExists            func(ctx context.Context, username string) (bool, error)
}

func (f *fakeStore) Connect() error { f.connected = true; return nil }
func (f *fakeStore) Close() error   { f.connected = false; return nil }

func (f *fakeStore) ListArticles(ctx context.Context, q ArticleQuery) ([]*Article, int64, error) {
	if f.listArticles == nil {
		return nil, 0, nil
	}
	return f.listArticles(ctx, q)
}

func (f *fakeStore) FindArticle(ctx context.Context, id int64) (*Article, error) {
	if f.findArticle == nil {
		return nil, nil
	}
	return f.findArticle(ctx, id)
}

func (f *fakeStore) ArticleExists(ctx context.Context, id int64) (bool, error) {
	if f.articleExists == nil {
		return false, nil
	}
	return f.articleExists(ctx, id)
}

func (f *fakeStore) InsertArticle(ctx context.Context, article *Article) error {
	if f.insertArticle == nil {
		return nil
	}
	return f.insertArticle(ctx, article)
}

func (f *fakeStore) IncrementArticleVotes(ctx context.Context, id int64, inc int) (*Article, error) {
	if f.incrementArticleVotes == nil {
		return nil, nil
	}
	return f.incrementArticleVotes(ctx, id, inc)
}

func (f *fakeStore) DeleteArticle(ctx context.Context, id int64) (bool, error) {
	if f.deleteArticle == nil {
		return false, nil
	}
	return f.deleteArticle(ctx, id)
}

func (f *fakeStore) ListBreakingNews(ctx context.Context, since time.Time) ([]*BreakingNews, error) {
	if f.listBreakingNews == nil {
		return nil, nil
	}
	return f.listBreakingNews(ctx, since)
}

func (f *fakeStore) ListComments(ctx context.Context, articleID int64, p Pagination) ([]*Comment, int64, error) {
	if f.listComments == nil {
		return nil, 0, nil
	}
	return f.listComments(ctx, articleID, p)
}

func (f *fakeStore) InsertComment(ctx context.Context, comment *Comment) error {
	if f.insertComment == nil {
		return nil
	}
	return f.insertComment(ctx, comment)
}

func (f *fakeStore) DeleteComment(ctx context.Context, id int64) (bool, error) {
	if f.deleteComment == nil {
		return false, nil
	}
	return f.deleteComment(ctx, id)
}

func (f *fakeStore) ListTopics(ctx context.Context) ([]*Topic, error) {
	if f.listTopics == nil {
		return nil, nil
	}
	return f.listTopics(ctx)
}

func (f *fakeStore) InsertTopic(ctx context.Context, topic *Topic) error {
	if f.insertTopic == nil {
		return nil
	}
	return f.insertTopic(ctx, topic)
}

func (f *fakeStore) TopicExists(ctx context.Context, slug string) (bool, error) {
	if f.topicExists == nil {
		return false, nil
	}
	return f.topicExists(ctx, slug)
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]*User, error) {
	if f.listUsers == nil {
		return nil, nil
	}
	return f.listUsers(ctx)
}

func (f *fakeStore) FindUser(ctx context.Context, username string) (*User, error) {
	if f.findUser == nil {
		return nil, nil
	}
	return f.findUser(ctx, username)
}

func (f *fakeStore) UserExists(ctx context.Context, username string) (bool, error) {
	if f.userExists == nil {
		return false, nil
	}
	return f.userExists(ctx, username)
}

// testingLogWriter is an output target for zerolog which will print on the testing logger.
type testingLogWriter struct {
	c *qt.C
}

func (l *testingLogWriter) Write(p []byte) (n int, err error) {
	l.c.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func newTestServer(c *qt.C, store *fakeStore) *Server {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: &testingLogWriter{c}, NoColor: true})
	s := NewServer(&ServerConfig{Addr: "localhost:0", RequestTimeout: time.Second}, logger, store)
	c.Assert(s.Prepare(), qt.IsNil)
	c.Assert(store.connected, qt.IsTrue)
	return s
}

// do serves a request on s and returns the recorded response.
func do(s *Server, method string, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a JSON object response.
func decodeBody(c *qt.C, rec *httptest.ResponseRecorder) map[string]interface{} {
	var m map[string]interface{}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &m), qt.IsNil, qt.Commentf("body: %s", rec.Body.String()))
	return m
}

// assertMsg checks the status code and the msg of an error response.
func assertMsg(c *qt.C, rec *httptest.ResponseRecorder, code int, msg string) {
	c.Helper()
	c.Assert(rec.Code, qt.Equals, code, qt.Commentf("body: %s", rec.Body.String()))
	c.Assert(decodeBody(c, rec), qt.DeepEquals, map[string]interface{}{"msg": msg})
}
