package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizePeerTube(); err != nil {
		return err
	}
	c.normalizeArchive()
	if err := c.normalizeSheet(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeReconcile()
	c.normalizeSnapshot()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StaticDir) == "" {
		c.Paths.StaticDir = defaultStaticDir
	}
	if c.Paths.StaticDir, err = expandPath(c.Paths.StaticDir); err != nil {
		return fmt.Errorf("paths.static_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TranscriptsDir) != "" {
		if c.Paths.TranscriptsDir, err = expandPath(c.Paths.TranscriptsDir); err != nil {
			return fmt.Errorf("paths.transcripts_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.ChatLogDir) != "" {
		if c.Paths.ChatLogDir, err = expandPath(c.Paths.ChatLogDir); err != nil {
			return fmt.Errorf("paths.chat_log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizePeerTube() error {
	c.PeerTube.URL = strings.TrimRight(strings.TrimSpace(c.PeerTube.URL), "/")
	if c.PeerTube.Username == "" {
		if value, ok := os.LookupEnv("PEERTUBE_USERNAME"); ok {
			c.PeerTube.Username = strings.TrimSpace(value)
		}
	}
	if c.PeerTube.Password == "" {
		if value, ok := os.LookupEnv("PEERTUBE_PASSWORD"); ok {
			c.PeerTube.Password = value
		}
	}
	if c.PeerTube.PageSize <= 0 {
		c.PeerTube.PageSize = defaultPeerTubePageSize
	}
	return nil
}

func (c *Config) normalizeArchive() {
	c.Archive.IdentifierPrefix = strings.TrimSpace(c.Archive.IdentifierPrefix)
	if c.Archive.IdentifierPrefix == "" {
		c.Archive.IdentifierPrefix = defaultArchivePrefix
	}
	if len(c.Archive.VideoFormats) == 0 {
		c.Archive.VideoFormats = defaultVideoFormats()
	}
}

func (c *Config) normalizeSheet() error {
	var err error
	if strings.TrimSpace(c.Sheet.SchedulePath) != "" {
		if c.Sheet.SchedulePath, err = expandPath(c.Sheet.SchedulePath); err != nil {
			return fmt.Errorf("sheet.schedule_path: %w", err)
		}
	}
	if strings.TrimSpace(c.Sheet.DatesOutPath) != "" {
		if c.Sheet.DatesOutPath, err = expandPath(c.Sheet.DatesOutPath); err != nil {
			return fmt.Errorf("sheet.dates_out_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeYouTube() {
	c.YouTube.Binary = strings.TrimSpace(c.YouTube.Binary)
	if c.YouTube.Binary == "" {
		c.YouTube.Binary = defaultYouTubeBinary
	}
	if c.YouTube.Workers <= 0 {
		c.YouTube.Workers = defaultYouTubeWorkers
	}
}

func (c *Config) normalizeReconcile() {
	if c.Reconcile.DurationTolerance <= 0 {
		c.Reconcile.DurationTolerance = defaultDurationTolerance
	}
}

func (c *Config) normalizeSnapshot() {
	if c.Snapshot.ChunkSize <= 0 {
		c.Snapshot.ChunkSize = defaultSnapshotChunkSize
	}
	if c.Snapshot.SuffixLength <= 0 {
		c.Snapshot.SuffixLength = defaultSuffixLength
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
