package pgstore

import (
	"fmt"
	"strings"

	"github.com/newsdesk/newsdesk"
)

// articleColumns selects an article along with its comment count. Queries using it must
// LEFT JOIN comments and group by articles.article_id.
const articleColumns = `articles.article_id, articles.author, articles.title, articles.body, articles.topic,
	articles.created_at, articles.votes, COUNT(comments.comment_id) AS comment_count`

// sortExpressions maps each sortable column to the expression used in ORDER BY. Only
// these expressions ever reach the query text.
var sortExpressions = map[newsdesk.SortColumn]string{
	newsdesk.SortByCreatedAt:    "articles.created_at",
	newsdesk.SortByArticleID:    "articles.article_id",
	newsdesk.SortByTitle:        "articles.title",
	newsdesk.SortByTopic:        "articles.topic",
	newsdesk.SortByAuthor:       "articles.author",
	newsdesk.SortByVotes:        "articles.votes",
	newsdesk.SortByCommentCount: "comment_count",
}

func orderDirection(o newsdesk.Order) string {
	if o == newsdesk.Asc {
		return "ASC"
	}
	return "DESC"
}

// articleFilter builds the WHERE clause shared by the page and the count queries, along
// with its positional arguments.
func articleFilter(q newsdesk.ArticleQuery) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if q.Topic != "" {
		args = append(args, q.Topic)
		conditions = append(conditions, fmt.Sprintf("articles.topic = $%d", len(args)))
	}
	if q.Author != "" {
		args = append(args, q.Author)
		conditions = append(conditions, fmt.Sprintf("articles.author = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func buildListArticlesQuery(q newsdesk.ArticleQuery) (string, []interface{}, error) {
	sortExpr, ok := sortExpressions[q.SortBy]
	if !ok {
		return "", nil, fmt.Errorf("no sort expression for %v", q.SortBy)
	}

	where, args := articleFilter(q)
	args = append(args, q.Limit, q.Offset())

	query := fmt.Sprintf(`SELECT %s
FROM articles
LEFT JOIN comments ON comments.article_id = articles.article_id
%s
GROUP BY articles.article_id
ORDER BY %s %s, articles.article_id %s
LIMIT $%d OFFSET $%d`,
		articleColumns, where, sortExpr, orderDirection(q.Order), orderDirection(q.Order), len(args)-1, len(args))

	return query, args, nil
}

func buildCountArticlesQuery(q newsdesk.ArticleQuery) (string, []interface{}) {
	where, args := articleFilter(q)
	if where == "" {
		return "SELECT COUNT(*) FROM articles", args
	}
	return "SELECT COUNT(*) FROM articles " + where, args
}
