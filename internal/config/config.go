package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/leshachaplin/capi-forwarder/internal/meta"
	appServer "github.com/leshachaplin/capi-forwarder/internal/server/http"
	"github.com/leshachaplin/capi-forwarder/internal/service"
)

// Config is the main config for the application
type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	Addr        string `env:"HTTP_ADDR" envDefault:":8080"`
	SentryDSN   string `env:"SENTRY_DSN"`
	Environment string `env:"APP_ENV" envDefault:"production"`

	// Pixel id and token are not required here: a missing value is reported
	// on each purchase request instead of stopping the process.
	Conversion service.Config
	GraphAPI   meta.Config
	HTTP       appServer.Config
}

// Load reads the environment, after an optional .env file for local runs.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
