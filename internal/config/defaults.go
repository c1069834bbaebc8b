package config

const (
	defaultDataDir           = "~/.local/share/vodsync"
	defaultStaticDir         = "~/.local/share/vodsync/static"
	defaultPeerTubePageSize  = 30
	defaultArchivePrefix     = "josephanderson_twitch_"
	defaultYouTubeBinary     = "yt-dlp"
	defaultYouTubeWorkers    = 8
	defaultDurationTolerance = 2
	defaultSnapshotChunkSize = 10 * 1024 * 1024
	defaultSuffixLength      = 3
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

func defaultVideoFormats() []string {
	return []string{"MPEG4", "h.264", "h.264 IA"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			StaticDir: defaultStaticDir,
		},
		PeerTube: PeerTube{
			PageSize: defaultPeerTubePageSize,
		},
		Archive: Archive{
			IdentifierPrefix: defaultArchivePrefix,
			VideoFormats:     defaultVideoFormats(),
		},
		YouTube: YouTube{
			Binary:  defaultYouTubeBinary,
			Workers: defaultYouTubeWorkers,
		},
		Reconcile: Reconcile{
			DurationTolerance: defaultDurationTolerance,
			WriteBackDates:    true,
		},
		Snapshot: Snapshot{
			ChunkSize:    defaultSnapshotChunkSize,
			SuffixLength: defaultSuffixLength,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
