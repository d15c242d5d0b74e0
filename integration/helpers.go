package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/newsdesk/newsdesk"
	"github.com/newsdesk/newsdesk/fixtures"
	"github.com/newsdesk/newsdesk/pgstore"
	"github.com/rs/zerolog"
)

// testDatabaseEnv holds the connection string of a disposable database, which gets
// truncated by the tests. They are skipped when it is not set.
const testDatabaseEnv = "NEWSDESK_TEST_DATABASE"

// testingLogWriter is an output target for zerolog which will print on the testing logger.
type testingLogWriter struct {
	c *qt.C
}

// Write outputs on the passed bytes on the test logger
func (l *testingLogWriter) Write(p []byte) (n int, err error) {
	str := string(p[0 : len(p)-1]) // drop the final \n
	l.c.Log(str)
	return len(p), nil
}

// A struct to hold the server and its components.
// Provides a few helpers for convenience.
type testContext struct {
	c          *qt.C
	server     *newsdesk.Server
	testServer *httptest.Server
	pgStore    *pgstore.PGStore
}

// newTestContext creates a server instance with its component initialized for integration testing.
func newTestContext(c *qt.C) *testContext {
	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		c.Skip(testDatabaseEnv + " is not set")
	}

	tc := testContext{c: c}

	w := testingLogWriter{c}
	output := zerolog.ConsoleWriter{Out: &w, NoColor: true}
	logger := zerolog.New(output)

	tc.pgStore = pgstore.New(dsn, logger)
	tc.server = newsdesk.NewServer(
		&newsdesk.ServerConfig{RequestTimeout: 5 * time.Second},
		logger,
		tc.pgStore,
	)
	tc.testServer = httptest.NewServer(tc.server)

	return &tc
}

// url returns an url to the test server based on the given path
func (tc *testContext) url(path string) string {
	return tc.testServer.URL + path
}

// prepareServer boots up the server, loads the test dataset and sets up its teardown
// for the current test.
func (tc *testContext) prepareServer() {
	tc.c.Assert(tc.server.Prepare(), qt.IsNil, qt.Commentf("couldn't prepare the server"))

	ctx := context.Background()
	tc.c.Assert(tc.pgStore.Migrate(ctx), qt.IsNil)
	tc.c.Assert(tc.pgStore.Seed(ctx, fixtures.TestData()), qt.IsNil)

	tc.c.Cleanup(func() {
		// kill the server
		tc.testServer.Close()

		// restore the db to its pristine state
		tc.c.Check(tc.pgStore.Truncate(context.Background()), qt.IsNil)
		tc.pgStore.Close()
	})
}

// response is a decoded JSON response.
type response struct {
	status int
	body   map[string]interface{}
	raw    []byte
}

// do sends a request whose body, if not nil, is encoded as JSON.
func (tc *testContext) do(method string, path string, body interface{}) *response {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		tc.c.Assert(err, qt.IsNil)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, tc.url(path), r)
	tc.c.Assert(err, qt.IsNil)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	tc.c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	res := &response{status: resp.StatusCode}
	res.raw, err = io.ReadAll(resp.Body)
	tc.c.Assert(err, qt.IsNil)

	if len(res.raw) > 0 {
		tc.c.Assert(json.Unmarshal(res.raw, &res.body), qt.IsNil, qt.Commentf("body: %s", res.raw))
	}

	return res
}

// get is a shorthand for a GET request expected to answer with the given status.
func (tc *testContext) get(path string, status int) *response {
	res := tc.do(http.MethodGet, path, nil)
	tc.c.Assert(res.status, qt.Equals, status, qt.Commentf("GET %s: %s", path, res.raw))
	return res
}

// assertMsg checks the status code and the msg of an error response.
func (tc *testContext) assertMsg(res *response, status int, msg string) {
	tc.c.Assert(res.status, qt.Equals, status, qt.Commentf("body: %s", res.raw))
	tc.c.Assert(res.body["msg"], qt.Equals, msg)
}

// articles decodes the articles of a list response.
func (res *response) articles(c *qt.C) []*newsdesk.Article {
	var page newsdesk.ArticlePage
	c.Assert(json.Unmarshal(res.raw, &page), qt.IsNil)
	return page.Articles
}

// comments decodes the comments of a list response.
func (res *response) comments(c *qt.C) []*newsdesk.Comment {
	var page newsdesk.CommentPage
	c.Assert(json.Unmarshal(res.raw, &page), qt.IsNil)
	return page.Comments
}
