package newsdesk

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type ServerConfig struct {
	Addr string
	// RequestTimeout bounds the handling of each request, storage calls included. Zero
	// disables it.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// An ArticleHook is called after an article has been created.
type ArticleHook func(ctx context.Context, article *Article) error

type Server struct {
	Logger          zerolog.Logger
	config          *ServerConfig
	store           Store
	engine          *Engine
	router          *httprouter.Router
	registry        *prometheus.Registry
	metrics         *metrics
	articleHooks    []ArticleHook
	done            chan struct{}
	stopOnce        sync.Once
	idleConnsClosed chan struct{}
}

func NewServer(config *ServerConfig, logger zerolog.Logger, store Store) *Server {
	registry := prometheus.NewRegistry()

	return &Server{
		config:          config,
		store:           store,
		engine:          NewEngine(store),
		router:          httprouter.New(),
		registry:        registry,
		metrics:         newMetrics(registry),
		Logger:          logger,
		done:            make(chan struct{}),
		idleConnsClosed: make(chan struct{}),
	}
}

// AddArticleHook registers a hook run after each article creation. Hook failures are
// logged and do not fail the request.
func (s *Server) AddArticleHook(hook ArticleHook) {
	s.articleHooks = append(s.articleHooks, hook)
}

// Prepare connects the store and declares the routes.
func (s *Server) Prepare() error {
	// database
	err := s.store.Connect()
	if err != nil {
		return err
	}

	// routes
	withMiddlewares(func(m middleware) {
		s.router.GET("/api", m(s.instrument("endpoints", s.HandleEndpoints())))

		s.router.GET("/api/topics", m(s.instrument("list_topics", s.HandleListTopics())))
		s.router.POST("/api/topics", m(s.instrument("create_topic", s.HandleCreateTopic())))

		s.router.GET("/api/users", m(s.instrument("list_users", s.HandleListUsers())))
		s.router.GET("/api/users/:username", m(s.instrument("get_user", s.HandleGetUser())))

		s.router.GET("/api/articles", m(s.instrument("list_articles", s.HandleListArticles())))
		s.router.POST("/api/articles", m(s.instrument("create_article", s.HandleCreateArticle())))
		s.router.GET("/api/articles/:id", m(s.instrument("get_article", s.HandleGetArticle())))
		s.router.PATCH("/api/articles/:id", m(s.instrument("vote_article", s.HandleVoteArticle())))
		s.router.DELETE("/api/articles/:id", m(s.instrument("delete_article", s.HandleDeleteArticle())))
		s.router.GET("/api/articles/:id/comments", m(s.instrument("list_comments", s.HandleListComments())))
		s.router.POST("/api/articles/:id/comments", m(s.instrument("create_comment", s.HandleCreateComment())))

		s.router.DELETE("/api/comments/:id", m(s.instrument("delete_comment", s.HandleDeleteComment())))
	},
		s.requestIDMiddleware(),
		s.loggingMiddleware(),
		s.timeoutMiddleware(),
	)

	s.router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondMsg(w, http.StatusNotFound, msgInvalidURL)
	})
	s.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondMsg(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
	})
	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		zerolog.Ctx(r.Context()).Error().Interface("panic", v).Msg("Recovered from panic")
		respondMsg(w, http.StatusInternalServerError, msgInternalError)
	}

	return nil
}

// Start serves HTTP until Stop is called or the listener fails.
func (s *Server) Start() error {
	defer close(s.idleConnsClosed)

	httpServer := http.Server{Addr: s.config.Addr, Handler: s}

	listenErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	s.Logger.Info().Str("addr", s.config.Addr).Msg("Listening")

	select {
	case err := <-listenErr:
		return err
	case <-s.done:
	}

	ctx := context.Background()
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	s.Logger.Info().Msg("Shutting down")
	return httpServer.Shutdown(ctx)
}

// Stop asks a started server to shut down and waits until it has.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	<-s.idleConnsClosed
}

func (s *Server) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(res, req)
}
