package main

import (
	"context"
	"flag"
	"time"

	"github.com/newsdesk/newsdesk/cmd"
	"github.com/newsdesk/newsdesk/fixtures"
	"github.com/newsdesk/newsdesk/pgstore"
	"github.com/rs/zerolog/log"
)

func main() {
	dataset := flag.String("dataset", "development", "dataset to load, development or test")
	flag.Parse()

	cfg := cmd.DefaultConfig()
	err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot read configuration")
	}
	logger := cmd.SetupLogger(cfg)

	var data *fixtures.Dataset
	switch *dataset {
	case "development":
		data = fixtures.DevelopmentData(time.Now())
	case "test":
		data = fixtures.TestData()
	default:
		logger.Fatal().Str("dataset", *dataset).Msg("Unknown dataset")
	}

	logger.Info().Str("dataset", *dataset).Msg("Seeding database")

	// setup database
	pg := pgstore.New(cfg.DSN(), logger)
	err = pg.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("Can't connect to database")
	}
	defer pg.Close()

	ctx := context.Background()
	err = pg.Migrate(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Can't migrate database")
	}

	err = pg.Seed(ctx, data)
	if err != nil {
		logger.Fatal().Err(err).Msg("Can't seed database")
	}

	logger.Info().
		Int("topics", len(data.Topics)).
		Int("users", len(data.Users)).
		Int("articles", len(data.Articles)).
		Int("comments", len(data.Comments)).
		Msg("Database seeded")
}
