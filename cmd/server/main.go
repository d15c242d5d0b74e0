package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/newsdesk/newsdesk"
	"github.com/newsdesk/newsdesk/cmd"
	"github.com/newsdesk/newsdesk/notify"
	"github.com/newsdesk/newsdesk/pgstore"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := cmd.DefaultConfig()
	err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot read configuration")
	}
	logger := cmd.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// setup database
	pg := pgstore.New(cfg.DSN(), logger.With().Str("component", "pgstore").Logger())
	err = pg.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("Cannot connect to database")
	}
	defer pg.Close()

	err = pg.Migrate(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Cannot migrate database")
	}

	s := newsdesk.NewServer(&newsdesk.ServerConfig{
		Addr:            cfg.Addr,
		RequestTimeout:  cfg.RequestTimeout(),
		ShutdownTimeout: cfg.ShutdownTimeout(),
	}, logger, pg)

	if cfg.SlackWebhookURL != "" {
		slack := notify.NewSlack(notify.SlackConfig{WebhookURL: cfg.SlackWebhookURL, Timeout: cfg.RequestTimeout()}, logger)
		s.AddArticleHook(slack.ArticleCreated)
	}

	err = s.Prepare()
	if err != nil {
		logger.Fatal().Err(err).Msg("Cannot prepare server")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.Start)
	g.Go(func() error {
		<-gctx.Done()
		s.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Server stopped")
		return
	}
	logger.Info().Msg("Server stopped")
}
