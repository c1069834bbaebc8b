package testsupport

import (
	"path/filepath"
	"testing"

	"vodsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.StaticDir = filepath.Join(base, "static")
	cfg.Paths.TranscriptsDir = filepath.Join(base, "transcripts")
	cfg.Paths.ChatLogDir = filepath.Join(base, "chat")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithPeerTube sets PeerTube connection details on the test config.
func WithPeerTube(url, username, password string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.PeerTube.URL = url
		cfg.PeerTube.Username = username
		cfg.PeerTube.Password = password
	}
}

// WithChannelPriority sets the YouTube channel ranking on the test config.
func WithChannelPriority(priority map[string]int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.YouTube.ChannelPriority = priority
	}
}
