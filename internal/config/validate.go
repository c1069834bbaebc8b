package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSnapshot(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSnapshot() error {
	if c.Snapshot.ChunkSize < 4096 {
		return errors.New("snapshot.chunk_size must be at least 4096 bytes")
	}
	if c.Snapshot.SuffixLength < 1 || c.Snapshot.SuffixLength > 6 {
		return errors.New("snapshot.suffix_length must be between 1 and 6")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.Workers < 1 || c.YouTube.Workers > 64 {
		return errors.New("youtube.workers must be between 1 and 64")
	}
	for channel, rank := range c.YouTube.ChannelPriority {
		if rank < 1 {
			return fmt.Errorf("youtube.channel_priority[%q] must be positive", channel)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// RequirePeerTube verifies the settings PeerTube-touching commands depend on.
// It is called by those commands rather than Validate so offline commands
// (transcripts, export) keep working without credentials.
func (c *Config) RequirePeerTube() error {
	if c.PeerTube.URL == "" {
		return errors.New("peertube.url is required")
	}
	if c.PeerTube.Username == "" || c.PeerTube.Password == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/vodsync/config.toml"
		}
		return fmt.Errorf("peertube credentials are required. Set PEERTUBE_USERNAME/PEERTUBE_PASSWORD env vars or edit %s (create with 'vodsync config init')", defaultPath)
	}
	return nil
}
