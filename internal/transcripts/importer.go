package transcripts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"

	"vodsync/internal/config"
	"vodsync/internal/logging"
	"vodsync/internal/store"
)

// Importer loads SRT transcripts from disk into the database, registering a
// stub VOD row for every transcript whose VOD is not known yet.
type Importer struct {
	store    *store.Store
	dir      string
	logger   *slog.Logger
	progress bool
}

// NewImporter creates a transcript importer over the configured directory.
func NewImporter(cfg *config.Config, st *store.Store, logger *slog.Logger, progress bool) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{
		store:    st,
		dir:      cfg.Paths.TranscriptsDir,
		logger:   logging.NewComponentLogger(logger, "transcripts"),
		progress: progress,
	}
}

// Report summarizes one import run.
type Report struct {
	Imported int
	Skipped  int
	Failed   int
}

// Run imports every transcript file not already present. Re-running over the
// same directory is a no-op for files whose VOD exists.
func (i *Importer) Run(ctx context.Context) (Report, error) {
	var report Report

	files, err := filepath.Glob(filepath.Join(i.dir, "*.srt"))
	if err != nil {
		return report, fmt.Errorf("scan transcripts dir: %w", err)
	}
	sort.Strings(files)

	var bar *progressbar.ProgressBar
	if i.progress {
		bar = progressbar.Default(int64(len(files)), "transcripts")
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		imported, err := i.importFile(ctx, file)
		switch {
		case err != nil:
			report.Failed++
			i.logger.Warn("transcript import failed",
				logging.String("file", filepath.Base(file)),
				logging.Error(err))
		case imported:
			report.Imported++
		default:
			report.Skipped++
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return report, nil
}

func (i *Importer) importFile(ctx context.Context, file string) (bool, error) {
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	info, err := ParseFilename(stem)
	if err != nil {
		return false, err
	}

	existing, err := i.store.GetVod(ctx, info.VodID)
	if err != nil {
		return false, fmt.Errorf("look up vod %s: %w", info.VodID, err)
	}
	if existing != nil {
		return false, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return false, fmt.Errorf("read transcript: %w", err)
	}
	cues, err := ParseSRT(data)
	if err != nil {
		return false, fmt.Errorf("parse transcript: %w", err)
	}

	segments := make([]store.TranscriptSegment, 0, len(cues))
	for index, cue := range cues {
		speaker, text := cue.Speaker()
		segments = append(segments, store.TranscriptSegment{
			VodID:   info.VodID,
			Index:   index + 1,
			Speaker: speaker,
			Start:   cue.Start,
			End:     cue.End,
			Text:    text,
		})
	}

	if err := i.store.InsertTranscript(ctx, info.VodID, segments); err != nil {
		return false, fmt.Errorf("store transcript for %s: %w", info.VodID, err)
	}
	if err := i.store.InsertVod(ctx, &store.Vod{
		VodID: info.VodID,
		Title: &info.Title,
		Date:  &info.Date,
	}); err != nil {
		return false, fmt.Errorf("register vod %s: %w", info.VodID, err)
	}

	i.logger.Info("transcript imported",
		logging.String(logging.FieldVodID, info.VodID),
		logging.Int("segments", len(segments)))
	return true, nil
}
