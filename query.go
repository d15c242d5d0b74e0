package newsdesk

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultPage  = 1
	// MaxPage keeps the offset of any valid page within an int64.
	MaxPage = math.MaxInt32
)

// SortColumn is one of the columns articles can be sorted by. Storage backends map each
// value to a fixed expression, the raw query parameter never reaches them.
type SortColumn int

const (
	SortByCreatedAt SortColumn = iota
	SortByArticleID
	SortByTitle
	SortByTopic
	SortByAuthor
	SortByVotes
	SortByCommentCount
)

// sortColumnNames is indexed by SortColumn.
var sortColumnNames = [...]string{
	SortByCreatedAt:    "created_at",
	SortByArticleID:    "article_id",
	SortByTitle:        "title",
	SortByTopic:        "topic",
	SortByAuthor:       "author",
	SortByVotes:        "votes",
	SortByCommentCount: "comment_count",
}

func (c SortColumn) String() string {
	if c < 0 || int(c) >= len(sortColumnNames) {
		return fmt.Sprintf("SortColumn(%d)", int(c))
	}
	return sortColumnNames[c]
}

// ParseSortColumn resolves a sort_by parameter against the allow-list.
func ParseSortColumn(raw string) (SortColumn, error) {
	for i, name := range sortColumnNames {
		if name == raw {
			return SortColumn(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sort column %q", raw)
}

type Order int

const (
	Desc Order = iota
	Asc
)

func (o Order) String() string {
	if o == Asc {
		return "asc"
	}
	return "desc"
}

// ParseOrder accepts asc or desc, in any case.
func ParseOrder(raw string) (Order, error) {
	switch strings.ToLower(raw) {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return 0, fmt.Errorf("unknown order %q", raw)
	}
}

// Pagination is a 1-based page of Limit items.
type Pagination struct {
	Limit int
	Page  int
}

// Offset is the number of rows to skip to reach the page.
func (p Pagination) Offset() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// ArticleQuery is a validated request for a list of articles. Empty Topic or Author
// means no filtering on that column.
type ArticleQuery struct {
	Pagination
	SortBy SortColumn
	Order  Order
	Topic  string
	Author string
}

// DefaultArticleQuery is what an empty query string resolves to.
func DefaultArticleQuery() ArticleQuery {
	return ArticleQuery{
		Pagination: Pagination{Limit: DefaultLimit, Page: DefaultPage},
		SortBy:     SortByCreatedAt,
		Order:      Desc,
	}
}

var errNotPositive = errors.New("must be a positive integer")

// ParsePagination reads limit and page from the query string, applying defaults when
// they are absent.
func ParsePagination(values url.Values) (Pagination, error) {
	p := Pagination{Limit: DefaultLimit, Page: DefaultPage}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return p, InvalidParameter("limit", errNotPositive)
		}
		if limit > MaxLimit {
			return p, InvalidParameter("limit", fmt.Errorf("must be at most %d", MaxLimit))
		}
		p.Limit = limit
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, InvalidParameter("page", errNotPositive)
		}
		if page > MaxPage {
			return p, InvalidParameter("page", fmt.Errorf("must be at most %d", MaxPage))
		}
		p.Page = page
	}

	return p, nil
}

// ParseArticleQuery validates and normalizes the query string of an article listing.
func ParseArticleQuery(values url.Values) (ArticleQuery, error) {
	q := DefaultArticleQuery()

	p, err := ParsePagination(values)
	if err != nil {
		return q, err
	}
	q.Pagination = p

	if raw := values.Get("sort_by"); raw != "" {
		col, err := ParseSortColumn(raw)
		if err != nil {
			return q, InvalidParameter("sort_by", err)
		}
		q.SortBy = col
	}

	if raw := values.Get("order"); raw != "" {
		order, err := ParseOrder(raw)
		if err != nil {
			return q, InvalidParameter("order", err)
		}
		q.Order = order
	}

	q.Topic = values.Get("topic")
	q.Author = values.Get("author")

	return q, nil
}

// ParseID parses a path identifier, which must be a positive integer.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, InvalidIdentifier(raw)
	}
	return id, nil
}
