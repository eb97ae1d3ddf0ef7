package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := Load()
	req.NoError(err)
	req.Equal(":80", cfg.ListenAddr)
	req.Equal(BackendFile, cfg.StorageBackend)
	req.Equal("guestbook.txt", cfg.GuestbookPath)
	req.Empty(cfg.NatsURL)
	req.Equal(1024, cfg.MaxMessageLength)
	req.Equal(slog.LevelInfo, cfg.Level())
}

func Test_Load_From_Environment(t *testing.T) {
	req := require.New(t)
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("STORAGE_BACKEND", "badger")
	t.Setenv("BADGER_PATH", "/tmp/gb")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	req.NoError(err)
	req.Equal(":8080", cfg.ListenAddr)
	req.Equal(BackendBadger, cfg.StorageBackend)
	req.Equal("/tmp/gb", cfg.BadgerPath)
	req.Equal("nats://localhost:4222", cfg.NatsURL)
	req.Equal(slog.LevelDebug, cfg.Level())
}

func Test_Load_Rejects_Unknown_Backend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")

	_, err := Load()
	require.Error(t, err)
}

func Test_Load_Rejects_Nonpositive_Length_Bound(t *testing.T) {
	t.Setenv("MAX_MESSAGE_LENGTH", "0")

	_, err := Load()
	require.Error(t, err)
}
