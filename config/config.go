package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
)

// Websocket keepalive tuning for the /live feed.
const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 512
)

// JetStream naming for the entry feed.
const (
	StreamName    = "GUESTBOOK"
	SubjectPrefix = "guestbook"
)

// Supported message log backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

type Config struct {
	ListenAddr       string `env:"LISTEN_ADDR,default=:80"`
	StorageBackend   string `env:"STORAGE_BACKEND,default=file"`
	GuestbookPath    string `env:"GUESTBOOK_PATH,default=guestbook.txt"`
	BadgerPath       string `env:"BADGER_PATH,default=guestbook-badger"`
	NatsURL          string `env:"NATS_URL"` // empty disables the live feed
	MaxMessageLength int    `env:"MAX_MESSAGE_LENGTH,default=1024"`
	LogLevel         string `env:"LOG_LEVEL,default=info"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}
	if cfg.StorageBackend != BackendFile && cfg.StorageBackend != BackendBadger {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if cfg.MaxMessageLength <= 0 {
		return nil, fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", cfg.MaxMessageLength)
	}
	return &cfg, nil
}

// Level maps the LOG_LEVEL setting to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
