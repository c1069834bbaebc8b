package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"vodsync/internal/config"
	"vodsync/internal/logging"
	"vodsync/internal/services/ytdlp"
	"vodsync/internal/sheet"
	"vodsync/internal/store"
)

// YouTubeFetcher is the slice of the yt-dlp service the fetch pass drives.
type YouTubeFetcher interface {
	FetchAll(ctx context.Context, requests []ytdlp.Request, onResult func(ytdlp.Result))
}

// FetchYouTubeData scans the schedule spreadsheet for YouTube links and
// fetches metadata for every video not yet stored. Fetches fan out across
// the worker pool; all inserts happen here on the calling goroutine.
func FetchYouTubeData(ctx context.Context, cfg *config.Config, st *store.Store, fetcher YouTubeFetcher, logger *slog.Logger) (Report, error) {
	var report Report
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logging.NewComponentLogger(logger, "ytdata")

	refs, err := sheet.YouTubeRefs(cfg.Sheet.SchedulePath)
	if err != nil {
		return report, fmt.Errorf("scan schedule: %w", err)
	}
	known, err := st.YTVideoIDs(ctx)
	if err != nil {
		return report, err
	}

	var requests []ytdlp.Request
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := known[ref.VideoID]; ok {
			report.Skipped++
			continue
		}
		if _, ok := seen[ref.VideoID]; ok {
			continue
		}
		seen[ref.VideoID] = struct{}{}
		requests = append(requests, ytdlp.Request{Date: ref.Date, VideoID: ref.VideoID})
	}
	if len(requests) == 0 {
		log.Info("no new videos to fetch", logging.Int("known", len(known)))
		return report, nil
	}

	var insertErr error
	fetcher.FetchAll(ctx, requests, func(result ytdlp.Result) {
		if result.Err != nil {
			report.Failed++
			return
		}
		meta := result.Metadata
		err := st.InsertYTVideo(ctx, &store.YTVideo{
			VideoID:     meta.VideoID,
			VodDate:     meta.VodDate,
			Title:       meta.Title,
			Description: meta.Description,
			UploadDate:  meta.UploadDate,
			Channel:     meta.Channel,
			Duration:    meta.Duration,
		})
		if err != nil {
			report.Failed++
			if insertErr == nil {
				insertErr = err
			}
			return
		}
		report.Inserted++
	})
	if insertErr != nil {
		return report, fmt.Errorf("store video metadata: %w", insertErr)
	}

	log.Info("youtube data fetch complete",
		logging.Int("inserted", report.Inserted),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", report.Failed))
	return report, nil
}
