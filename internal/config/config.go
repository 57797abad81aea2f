package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	BackendPostgres = "postgres"
	BackendPebble   = "pebble"
)

// Config is the process configuration: defaults, overridden by an optional
// YAML file, overridden by environment variables.
type Config struct {
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	// EventLogBackend selects the log store: "postgres" or "pebble".
	EventLogBackend string `yaml:"event_log_backend" env:"EVENT_LOG_BACKEND"`
	EventLogPath    string `yaml:"event_log_path" env:"EVENT_LOG_PATH"`

	// EngineQueueCapacity bounds the supervisor's command queue; it is the
	// engine's only backpressure mechanism.
	EngineQueueCapacity int `yaml:"engine_queue_capacity" env:"ENGINE_QUEUE_CAPACITY"`

	ListenAddr string `yaml:"listen_addr" env:"LISTEN_ADDR"`

	PriceRefreshInterval time.Duration `yaml:"price_refresh_interval" env:"PRICE_REFRESH_INTERVAL"`
}

func defaults() Config {
	return Config{
		EventLogBackend:      BackendPostgres,
		EventLogPath:         "data/eventlog",
		EngineQueueCapacity:  1024,
		ListenAddr:           ":8080",
		PriceRefreshInterval: 30 * time.Second,
	}
}

// Load reads path (ignored when the file does not exist) and applies
// environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.EngineQueueCapacity <= 0 {
		return fmt.Errorf("engine_queue_capacity must be positive, got %d", c.EngineQueueCapacity)
	}
	switch c.EventLogBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres backend")
		}
	case BackendPebble:
		if c.EventLogPath == "" {
			return errors.New("event_log_path is required for the pebble backend")
		}
	default:
		return fmt.Errorf("unknown event_log_backend %q", c.EventLogBackend)
	}
	return nil
}
