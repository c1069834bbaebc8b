package reconcile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"vodsync/internal/chatlog"
	"vodsync/internal/config"
	"vodsync/internal/logging"
	"vodsync/internal/services/archive"
	"vodsync/internal/services/peertube"
	"vodsync/internal/store"
)

// PeerTubeAPI is the slice of the PeerTube client the reconciler drives.
type PeerTubeAPI interface {
	Authenticate(ctx context.Context) error
	AllVideos(ctx context.Context) ([]peertube.Video, error)
	SourceFilename(ctx context.Context, videoID int64) (*string, error)
	Imports(ctx context.Context) ([]peertube.Import, error)
	Video(ctx context.Context, videoID int64) (*peertube.Video, error)
	UpdatePublishDate(ctx context.Context, videoID int64, date string) error
}

// ArchiveAPI is the slice of the archive.org client the reconciler drives.
type ArchiveAPI interface {
	FilesByVod(ctx context.Context, dates []string) (map[string][]archive.File, error)
	BaseURL() string
}

// Report summarizes one reconciliation pass.
type Report struct {
	Inserted  int
	Updated   int
	Skipped   int
	Failed    int
	Unmatched int
}

// Reconciler orchestrates fetch, identity resolution, join, merge, and
// persistence. All database writes happen on the calling goroutine.
type Reconciler struct {
	cfg      *config.Config
	store    *store.Store
	peertube PeerTubeAPI
	archive  ArchiveAPI
	chat     *chatlog.Reader
	logger   *slog.Logger
	progress bool
	runID    string
}

// Options configures a Reconciler beyond its required collaborators.
type Options struct {
	// Progress draws a terminal progress bar during long passes.
	Progress bool
}

// New creates a reconciler. Each reconciler carries a unique run identifier
// that tags every log line of the pass.
func New(cfg *config.Config, st *store.Store, pt PeerTubeAPI, ar ArchiveAPI, logger *slog.Logger, opts Options) *Reconciler {
	if logger == nil {
		logger = logging.NewNop()
	}
	runID := uuid.NewString()
	return &Reconciler{
		cfg:      cfg,
		store:    st,
		peertube: pt,
		archive:  ar,
		chat:     chatlog.NewReader(cfg.Paths.ChatLogDir),
		logger: logging.NewComponentLogger(logger, "reconcile").With(
			logging.String(logging.FieldRunID, runID)),
		progress: opts.Progress,
		runID:    runID,
	}
}

// RunID returns the identifier tagging this pass's log lines.
func (r *Reconciler) RunID() string {
	return r.runID
}
