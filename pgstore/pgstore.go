package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/newsdesk/newsdesk"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// A PGStore is responsible of interacting with the storage layer using a Postgresql database.
type PGStore struct {
	dbString string
	db       *sqlx.DB
	logger   zerolog.Logger
}

// New returns a PGStore configured for a given address string, using the "user=postgres dbname=newsdesk ..." format.
func New(addr string, logger zerolog.Logger) *PGStore {
	return &PGStore{
		dbString: addr,
		logger:   logger,
	}
}

// Connect establish a connection with the database using the address given at initialization.
// Connecting an already connected store does nothing.
func (s *PGStore) Connect() error {
	if s.db != nil {
		return nil
	}

	db, err := sqlx.Connect("postgres", s.dbString)
	if err != nil {
		return err
	}

	s.db = db

	return nil
}

// Close releases the connection pool.
func (s *PGStore) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	return err
}

// DB returns the existing connection, making it suitable to perform requests not already supported by
// the store interface. If called while not connected, it will return nil.
func (s *PGStore) DB() *sqlx.DB {
	return s.db
}

// Migrate applies the embedded schema migrations that haven't been applied yet.
func (s *PGStore) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{logger: s.logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, s.db.DB, "migrations")
}

// gooseLogger sends goose output to zerolog.
type gooseLogger struct {
	logger zerolog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Str("component", "migrations").Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Str("component", "migrations").Msgf(strings.TrimSuffix(format, "\n"), v...)
}

const (
	foreignKeyViolation       pq.ErrorCode = "23503"
	uniqueViolation           pq.ErrorCode = "23505"
	stringDataRightTruncation pq.ErrorCode = "22001"
)

// constraintKinds tells which entity is missing when a foreign key is violated.
var constraintKinds = map[string]newsdesk.Kind{
	"articles_author_fkey":     newsdesk.KindUser,
	"articles_topic_fkey":      newsdesk.KindTopic,
	"comments_author_fkey":     newsdesk.KindUser,
	"comments_article_id_fkey": newsdesk.KindArticle,
}

// translateError turns constraint violations into domain errors. Anything else is
// returned as is.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case foreignKeyViolation:
		if kind, ok := constraintKinds[pqErr.Constraint]; ok {
			return newsdesk.NotFound(kind)
		}
	case uniqueViolation, stringDataRightTruncation:
		return newsdesk.InvalidPayload(err)
	}

	return err
}

// readOnly runs f in a read only, repeatable read transaction, so that every query in f
// sees the same snapshot.
func (s *PGStore) readOnly(ctx context.Context, f func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := f(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PGStore) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var ok bool
	err := s.db.GetContext(ctx, &ok, query, args...)
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (s *PGStore) ListTopics(ctx context.Context) ([]*newsdesk.Topic, error) {
	topics := []*newsdesk.Topic{}
	err := s.db.SelectContext(ctx, &topics, "SELECT slug, description FROM topics ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("ListTopics: %w", err)
	}

	return topics, nil
}

func (s *PGStore) InsertTopic(ctx context.Context, topic *newsdesk.Topic) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO topics (slug, description) VALUES ($1, $2)", topic.Slug, topic.Description)
	if err != nil {
		return translateError(err)
	}

	return nil
}

func (s *PGStore) TopicExists(ctx context.Context, slug string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS (SELECT 1 FROM topics WHERE slug = $1)", slug)
}

func (s *PGStore) ListUsers(ctx context.Context) ([]*newsdesk.User, error) {
	users := []*newsdesk.User{}
	err := s.db.SelectContext(ctx, &users, "SELECT username FROM users ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}

	return users, nil
}

func (s *PGStore) FindUser(ctx context.Context, username string) (*newsdesk.User, error) {
	user := newsdesk.User{}
	err := s.db.GetContext(ctx, &user, "SELECT username FROM users WHERE username = $1", username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindUser: %w", err)
	}

	return &user, nil
}

func (s *PGStore) UserExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", username)
}
