// Package config provides the ambient env-driven configuration a host CLI
// or server uses to wire the library's components: listen address and
// timeouts for pkg/server, object-store client defaults for
// pkg/objectstore, and the search page-size caps pkg/search's callers
// enforce.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the complete application configuration loaded from
// environment variables.
type Config struct {
	Server      ServerConfig      `envPrefix:"SERVER_"`
	ObjectStore ObjectStoreConfig `envPrefix:"OBJECTSTORE_"`
	Search      SearchConfig      `envPrefix:"SEARCH_"`
	Logging     LoggingConfig     `envPrefix:"LOG_"`
}

// ServerConfig contains HTTP server configuration for pkg/server.
type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ObjectStoreConfig holds object-store settings: an HTTP client timeout and
// a default cloud region. They are parsed and validated here only:
// objectstore.NewGateway takes neither, and nothing in this module passes
// them to pkg/objectstore.
type ObjectStoreConfig struct {
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
	Region  string        `env:"REGION" envDefault:""`
}

// SearchConfig contains the page-size caps a SearchModel caller enforces
// before handing params to SearchClient or GeoparquetQuery.
type SearchConfig struct {
	DefaultLimit int `env:"DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit     int `env:"MAX_LIMIT" envDefault:"10000"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("config: server read timeout must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("config: server write timeout must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: server shutdown timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.ObjectStore.Timeout <= 0 {
		return fmt.Errorf("config: object store timeout must be positive, got %s", c.ObjectStore.Timeout)
	}
	if c.Search.DefaultLimit < 1 {
		return fmt.Errorf("config: search default limit must be at least 1, got %d", c.Search.DefaultLimit)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("config: search max limit (%d) must be >= default limit (%d)", c.Search.MaxLimit, c.Search.DefaultLimit)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("config: invalid log level %q, must be one of: debug, info, warn, error", c.Logging.Level)
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("config: invalid log format %q, must be one of: json, text", c.Logging.Format)
	}
	return nil
}

// Address returns the server listen address in the format "host:port".
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
