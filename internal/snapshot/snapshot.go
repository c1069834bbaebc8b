// Package snapshot exports the database as a chunked static snapshot that a
// web frontend can query over HTTP range-style chunk fetches.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"vodsync/internal/config"
	"vodsync/internal/logging"
	"vodsync/internal/store"
)

const (
	chunkPrefix  = "db.sqlite3."
	dataPrefix   = "data"
	manifestName = "config.json"
	pointerName  = "data.json"
)

// Exporter writes dated snapshot directories under the static root.
type Exporter struct {
	store     *store.Store
	staticDir string
	chunkSize int64
	suffixLen int
	logger    *slog.Logger
	now       func() time.Time
}

// NewExporter creates a snapshot exporter from application configuration.
func NewExporter(cfg *config.Config, st *store.Store, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Exporter{
		store:     st,
		staticDir: cfg.Paths.StaticDir,
		chunkSize: cfg.Snapshot.ChunkSize,
		suffixLen: cfg.Snapshot.SuffixLength,
		logger:    logging.NewComponentLogger(logger, "snapshot"),
		now:       time.Now,
	}
}

// WithClock overrides the exporter's clock (for testing).
func (e *Exporter) WithClock(now func() time.Time) {
	e.now = now
}

// manifest describes the chunk layout to the frontend's database loader.
type manifest struct {
	ServerMode          string `json:"serverMode"`
	RequestChunkSize    int64  `json:"requestChunkSize"`
	DatabaseLengthBytes int64  `json:"databaseLengthBytes"`
	ServerChunkSize     int64  `json:"serverChunkSize"`
	URLPrefix           string `json:"urlPrefix"`
	SuffixLength        int    `json:"suffixLength"`
}

type pointer struct {
	DirName string `json:"dir_name"`
}

// Run replaces any previous snapshot with a fresh dated export. The WAL is
// checkpointed first so the database file on disk is self-contained.
func (e *Exporter) Run(ctx context.Context) (string, error) {
	if err := e.store.Checkpoint(ctx); err != nil {
		return "", err
	}

	info, err := os.Stat(e.store.Path())
	if err != nil {
		return "", fmt.Errorf("stat database: %w", err)
	}
	if err := e.checkFreeSpace(info.Size()); err != nil {
		return "", err
	}

	if err := e.cleanup(); err != nil {
		return "", err
	}

	dirName := dataPrefix + "-" + e.now().Format("20060102")
	target := filepath.Join(e.staticDir, dirName)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	if err := e.split(e.store.Path(), target); err != nil {
		return "", err
	}

	pageSize, err := e.store.PageSize(ctx)
	if err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(target, manifestName), manifest{
		ServerMode:          "chunked",
		RequestChunkSize:    pageSize,
		DatabaseLengthBytes: info.Size(),
		ServerChunkSize:     e.chunkSize,
		URLPrefix:           chunkPrefix,
		SuffixLength:        e.suffixLen,
	}); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(e.staticDir, pointerName), pointer{
		DirName: "./" + dirName,
	}); err != nil {
		return "", err
	}

	e.logger.Info("snapshot exported",
		logging.String("dir", dirName),
		logging.Int64("bytes", info.Size()))
	return target, nil
}

// checkFreeSpace refuses to export when the static volume cannot hold
// another full copy of the database.
func (e *Exporter) checkFreeSpace(needed int64) error {
	if err := os.MkdirAll(e.staticDir, 0o755); err != nil {
		return fmt.Errorf("create static dir: %w", err)
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(e.staticDir, &stat); err != nil {
		return fmt.Errorf("statfs %s: %w", e.staticDir, err)
	}
	free := int64(stat.Bavail) * int64(stat.Bsize)
	if free < needed {
		return fmt.Errorf("not enough space in %s: need %d bytes, have %d", e.staticDir, needed, free)
	}
	return nil
}

// cleanup removes every previous snapshot entry under the static root.
func (e *Exporter) cleanup() error {
	entries, err := os.ReadDir(e.staticDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read static dir: %w", err)
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), dataPrefix) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(e.staticDir, entry.Name())); err != nil {
			return fmt.Errorf("remove old snapshot %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// split copies the database into fixed-size numbered chunks.
func (e *Exporter) split(dbPath, dir string) error {
	source, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer source.Close()

	for index := 0; ; index++ {
		name := fmt.Sprintf("%s%0*d", chunkPrefix, e.suffixLen, index)
		written, err := writeChunk(source, filepath.Join(dir, name), e.chunkSize)
		if err != nil {
			return err
		}
		if written < e.chunkSize {
			// Final partial chunk. An empty trailing file appears only when
			// the database size is an exact multiple of the chunk size; drop
			// it to match what split(1) produces.
			if written == 0 && index > 0 {
				if err := os.Remove(filepath.Join(dir, name)); err != nil {
					return fmt.Errorf("drop empty chunk: %w", err)
				}
			}
			return nil
		}
	}
}

func writeChunk(source io.Reader, path string, size int64) (int64, error) {
	chunk, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create chunk: %w", err)
	}
	written, err := io.CopyN(chunk, source, size)
	if closeErr := chunk.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil && err != io.EOF {
		return written, fmt.Errorf("write chunk %s: %w", filepath.Base(path), err)
	}
	return written, nil
}

func writeJSON(path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
