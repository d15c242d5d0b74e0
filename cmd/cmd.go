package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	LogLevel                 string `json:"log_level"`
	LogFormat                string `json:"log_format"`
	DatabaseName             string `json:"database_name"`
	DatabaseUser             string `json:"database_user"`
	DatabaseHost             string `json:"database_host"`
	DatabasePassword         string `json:"database_password"`
	DatabaseSSLMode          string `json:"database_sslmode"`
	Addr                     string `json:"addr"`
	RequestTimeoutInSeconds  int    `json:"request_timeout_in_seconds"`
	ShutdownTimeoutInSeconds int    `json:"shutdown_timeout_in_seconds"`
	SlackWebhookURL          string `json:"slack_webhook_url"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:                 "info",
		LogFormat:                "json",
		DatabaseName:             "newsdesk",
		DatabaseUser:             "postgres",
		DatabasePassword:         "postgres",
		DatabaseHost:             "127.0.0.1",
		DatabaseSSLMode:          "disable",
		Addr:                     "localhost:8080",
		RequestTimeoutInSeconds:  10,
		ShutdownTimeoutInSeconds: 15,
	}
}

// Load reads config.json from the working directory if there is one, then applies the
// environment variables on top of it.
func (c *Config) Load() error {
	return c.load("config.json", os.Getenv)
}

func (c *Config) load(path string, getenv func(string) string) error {
	f, err := os.Open(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if err == nil {
		defer f.Close()
		err = json.NewDecoder(f).Decode(c)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	strs := map[string]*string{
		"LOG_LEVEL":         &c.LogLevel,
		"LOG_FORMAT":        &c.LogFormat,
		"DATABASE_NAME":     &c.DatabaseName,
		"DATABASE_USER":     &c.DatabaseUser,
		"DATABASE_HOST":     &c.DatabaseHost,
		"DATABASE_PASSWORD": &c.DatabasePassword,
		"DATABASE_SSLMODE":  &c.DatabaseSSLMode,
		"ADDR":              &c.Addr,
		"SLACK_WEBHOOK_URL": &c.SlackWebhookURL,
	}
	for name, dst := range strs {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"REQUEST_TIMEOUT_IN_SECONDS":  &c.RequestTimeoutInSeconds,
		"SHUTDOWN_TIMEOUT_IN_SECONDS": &c.ShutdownTimeoutInSeconds,
	}
	for name, dst := range ints {
		v := getenv(name)
		if v == "" {
			continue
		}

		vi, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = vi
	}

	if c.RequestTimeoutInSeconds < 0 || c.ShutdownTimeoutInSeconds < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}

	return nil
}

// DSN returns the connection string for lib/pq.
func (c *Config) DSN() string {
	parts := []string{
		"user=" + quoteDSNValue(c.DatabaseUser),
		"dbname=" + quoteDSNValue(c.DatabaseName),
		"sslmode=" + quoteDSNValue(c.DatabaseSSLMode),
		"host=" + quoteDSNValue(c.DatabaseHost),
	}
	if c.DatabasePassword != "" {
		parts = append(parts, "password="+quoteDSNValue(c.DatabasePassword))
	}

	return strings.Join(parts, " ")
}

// quoteDSNValue quotes values containing spaces or quotes, as expected by lib/pq.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutInSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutInSeconds) * time.Second
}

func SetupLogger(cfg *Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("input", cfg.LogLevel).Msg("Cannot parse log level")
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "" || cfg.LogFormat == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
}
