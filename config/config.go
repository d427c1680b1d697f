// Package config loads process configuration for the example servers from the
// environment, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")

	// ErrLoadingEnvFile is returned when an explicitly named .env file cannot be read.
	ErrLoadingEnvFile = errors.New("config: failed to load env file")
)

// Config is the environment of an example server.
type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // text or json
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	IgnoredMethods     []string `env:"CSRF_IGNORED_METHODS" envSeparator:"," envDefault:"GET,HEAD,OPTIONS"`
	EnforceOriginCheck bool     `env:"CSRF_ENFORCE_ORIGIN" envDefault:"false"`
	AllowedOrigin      string   `env:"CSRF_ALLOWED_ORIGIN"`

	SessionCookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	SessionLifetime     time.Duration `env:"SESSION_LIFETIME" envDefault:"24h"`
	SessionIdleTimeout  time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"0s"`

	// RedisURL selects the Redis session store when set, e.g. redis://localhost:6379/0.
	RedisURL            string        `env:"REDIS_URL"`
	RedisConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Load reads the given .env files (or ./.env when none is given and it
// exists) and parses the environment into a Config. Variables already set in
// the environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, errors.Join(ErrLoadingEnvFile, err)
		}
	} else {
		// the default .env file is optional
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	for i, m := range cfg.IgnoredMethods {
		cfg.IgnoredMethods[i] = strings.ToUpper(strings.TrimSpace(m))
	}
	return cfg, nil
}

// MustLoad works like Load but panics on error.
func MustLoad(files ...string) Config {
	cfg, err := Load(files...)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// NewLogger builds a slog.Logger writing to stdout in the configured format.
func (c Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c Config) newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
