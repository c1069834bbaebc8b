package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir        string `toml:"data_dir"`
	StaticDir      string `toml:"static_dir"`
	TranscriptsDir string `toml:"transcripts_dir"`
	ChatLogDir     string `toml:"chat_log_dir"`
}

// PeerTube contains connection settings for the primary video source.
type PeerTube struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	PageSize int    `toml:"page_size"`
}

// Archive contains settings for the archive.org collaborator.
type Archive struct {
	IdentifierPrefix string   `toml:"identifier_prefix"`
	VideoFormats     []string `toml:"video_formats"`
}

// Sheet contains stream-schedule spreadsheet settings.
type Sheet struct {
	SchedulePath string `toml:"schedule_path"`
	DatesOutPath string `toml:"dates_out_path"`
}

// YouTube contains settings for yt-dlp metadata lookups.
type YouTube struct {
	Binary          string         `toml:"binary"`
	Workers         int            `toml:"workers"`
	ChannelPriority map[string]int `toml:"channel_priority"`
}

// Reconcile contains merge-engine tuning knobs.
type Reconcile struct {
	DurationTolerance int  `toml:"duration_tolerance"`
	WriteBackDates    bool `toml:"write_back_dates"`
}

// Snapshot contains static export settings.
type Snapshot struct {
	ChunkSize    int64 `toml:"chunk_size"`
	SuffixLength int   `toml:"suffix_length"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vodsync.
//
// Configuration sections by subsystem:
//   - Paths: data/static/transcript/chat-log directories
//   - PeerTube: instance URL and credentials for the primary source
//   - Archive: archive.org bucket naming and accepted video formats
//   - Sheet: stream schedule spreadsheet locations
//   - YouTube: yt-dlp binary, fetch pool size, channel priority ranking
//   - Reconcile: duration match tolerance and publish-date write-back
//   - Snapshot: chunked export sizing
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	PeerTube  PeerTube  `toml:"peertube"`
	Archive   Archive   `toml:"archive"`
	Sheet     Sheet     `toml:"sheet"`
	YouTube   YouTube   `toml:"youtube"`
	Reconcile Reconcile `toml:"reconcile"`
	Snapshot  Snapshot  `toml:"snapshot"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vodsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vodsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories every command relies on.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.StaticDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the shared SQLite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "data.db")
}

// LockPath returns the location of the cross-command writer lock.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "vodsync.lock")
}

// WriteDefault writes the embedded sample configuration to path.
func WriteDefault(path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(expanded); err == nil {
		return "", fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return expanded, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
