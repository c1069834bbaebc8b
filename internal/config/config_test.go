package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vodsync/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatalf("expected missing config, got exists=true for %s", path)
	}
	if cfg.PeerTube.PageSize != 30 {
		t.Fatalf("expected default page size, got %d", cfg.PeerTube.PageSize)
	}
	if cfg.Snapshot.ChunkSize != 10*1024*1024 {
		t.Fatalf("expected default chunk size, got %d", cfg.Snapshot.ChunkSize)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected console logging, got %q", cfg.Logging.Format)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	contents := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
static_dir = "` + filepath.Join(dir, "static") + `"

[peertube]
url = "https://tube.example.org/"
username = "importer"
password = "secret"

[youtube]
workers = 4

[youtube.channel_priority]
"UC1" = 1
"UC2" = 2
`
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.PeerTube.URL != "https://tube.example.org" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.PeerTube.URL)
	}
	if cfg.YouTube.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.YouTube.Workers)
	}
	if rank := cfg.YouTube.ChannelPriority["UC2"]; rank != 2 {
		t.Fatalf("expected rank 2 for UC2, got %d", rank)
	}
	if cfg.DatabasePath() != filepath.Join(cfg.Paths.DataDir, "data.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestCredentialsFromEnvironment(t *testing.T) {
	t.Setenv("PEERTUBE_USERNAME", "env-user")
	t.Setenv("PEERTUBE_PASSWORD", "env-pass")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PeerTube.Username != "env-user" || cfg.PeerTube.Password != "env-pass" {
		t.Fatalf("expected env credentials, got %q/%q", cfg.PeerTube.Username, cfg.PeerTube.Password)
	}
}

func TestRequirePeerTube(t *testing.T) {
	cfg := config.Default()
	if err := cfg.RequirePeerTube(); err == nil {
		t.Fatal("expected error for empty PeerTube settings")
	}
	cfg.PeerTube.URL = "https://tube.example.org"
	cfg.PeerTube.Username = "importer"
	cfg.PeerTube.Password = "secret"
	if err := cfg.RequirePeerTube(); err != nil {
		t.Fatalf("RequirePeerTube failed: %v", err)
	}
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, err := config.WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}
	if _, err := config.WriteDefault(path); err == nil {
		t.Fatal("expected error when config already exists")
	}
}
