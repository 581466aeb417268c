package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("expected default limit 10, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 10000 {
		t.Errorf("expected default max limit 10000, got %d", cfg.Search.MaxLimit)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("SERVER_READ_TIMEOUT", "60s")
	os.Setenv("OBJECTSTORE_TIMEOUT", "45s")
	os.Setenv("SEARCH_DEFAULT_LIMIT", "25")
	os.Setenv("SEARCH_MAX_LIMIT", "500")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "text")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("SERVER_READ_TIMEOUT")
		os.Unsetenv("OBJECTSTORE_TIMEOUT")
		os.Unsetenv("SEARCH_DEFAULT_LIMIT")
		os.Unsetenv("SEARCH_MAX_LIMIT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("LOG_FORMAT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 60*time.Second {
		t.Errorf("expected read timeout 60s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.ObjectStore.Timeout != 45*time.Second {
		t.Errorf("expected object store timeout 45s, got %s", cfg.ObjectStore.Timeout)
	}
	if cfg.Search.DefaultLimit != 25 {
		t.Errorf("expected default limit 25, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 500 {
		t.Errorf("expected max limit 500, got %d", cfg.Search.MaxLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format text, got %s", cfg.Logging.Format)
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		ObjectStore: ObjectStoreConfig{
			Timeout: 30 * time.Second,
		},
		Search: SearchConfig{
			DefaultLimit: 10,
			MaxLimit:     250,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{name: "valid config", mutate: func(c *Config) {}, wantError: false},
		{name: "invalid port", mutate: func(c *Config) { c.Server.Port = 0 }, wantError: true},
		{name: "non-positive read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }, wantError: true},
		{name: "non-positive object store timeout", mutate: func(c *Config) { c.ObjectStore.Timeout = 0 }, wantError: true},
		{name: "default limit below 1", mutate: func(c *Config) { c.Search.DefaultLimit = 0 }, wantError: true},
		{name: "max limit below default", mutate: func(c *Config) { c.Search.MaxLimit = 5 }, wantError: true},
		{name: "invalid log level", mutate: func(c *Config) { c.Logging.Level = "invalid" }, wantError: true},
		{name: "invalid log format", mutate: func(c *Config) { c.Logging.Format = "yaml" }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestServerConfigAddress(t *testing.T) {
	cfg := ServerConfig{Host: "localhost", Port: 3000}
	if addr := cfg.Address(); addr != "localhost:3000" {
		t.Errorf("Address() = %s, expected localhost:3000", addr)
	}
}
