package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"reflect"

	"github.com/schollz/progressbar/v3"

	"vodsync/internal/identity"
	"vodsync/internal/join"
	"vodsync/internal/logging"
	"vodsync/internal/merge"
	"vodsync/internal/services/archive"
	"vodsync/internal/sheet"
	"vodsync/internal/store"
)

// EnrichVods performs the left join of VOD records against every auxiliary
// source: archive-host file listings, chat-log headers, the schedule
// spreadsheet, fetched YouTube metadata, and the mirrored PeerTube catalog.
// Fully enriched records are skipped up front; records with no auxiliary
// match survive unchanged.
func (r *Reconciler) EnrichVods(ctx context.Context) (Report, error) {
	var report Report

	vods, err := r.store.VodsNeedingEnrichment(ctx)
	if err != nil {
		return report, err
	}
	if len(vods) == 0 {
		r.logger.Info("all vods enriched, nothing to do")
		return report, nil
	}

	dates, err := r.store.DatesNeedingEnrichment(ctx)
	if err != nil {
		return report, err
	}
	byVod, err := r.archive.FilesByVod(ctx, dates)
	if err != nil {
		return report, fmt.Errorf("list archive files: %w", err)
	}
	files := make(join.FileIndex, len(byVod))
	for vodID, entries := range byVod {
		for _, entry := range entries {
			files.Add(vodID, join.FileEntry{
				Container: entry.Identifier,
				Name:      entry.Name,
				Size:      entry.SizeBytes(),
				Length:    entry.LengthSeconds(),
			})
		}
	}

	games, err := r.loadGames()
	if err != nil {
		return report, err
	}
	ytIndex, err := r.loadYTIndex(ctx)
	if err != nil {
		return report, err
	}
	canonical, err := r.loadCanonicalIndex(ctx)
	if err != nil {
		return report, err
	}

	var bar *progressbar.ProgressBar
	if r.progress {
		bar = progressbar.Default(int64(len(vods)), "vods")
	}

	for _, vod := range vods {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := r.enrichVod(ctx, vod, files, games, ytIndex, canonical, &report); err != nil {
			report.Failed++
			r.logger.Warn("vod enrichment failed",
				logging.String(logging.FieldVodID, vod.VodID),
				logging.Error(err))
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	r.logger.Info("vod enrichment complete",
		logging.Int("updated", report.Updated),
		logging.Int("skipped", report.Skipped),
		logging.Int("unmatched", report.Unmatched),
		logging.Int("failed", report.Failed))
	return report, nil
}

func (r *Reconciler) enrichVod(ctx context.Context, vod *store.Vod, files join.FileIndex,
	games map[string][]string, ytIndex join.DateIndex, canonical join.CanonicalIndex, report *Report) error {

	updated := *vod
	isTwitch := identity.IsTwitchVodID(vod.VodID)
	hasAux := false

	if updated.ChatID == nil && isTwitch {
		updated.ChatID = &vod.VodID
	}

	if updated.ChatID != nil {
		meta, err := r.chat.Lookup(*updated.ChatID)
		if err != nil {
			return err
		}
		if meta != nil {
			hasAux = true
			// The chat host saw the stream live; its title beats whatever the
			// transcript filename carried.
			if meta.Title != "" {
				updated.Title = &meta.Title
			}
			if meta.Game != "" {
				updated.Game, _ = merge.String(updated.Game, &meta.Game, merge.FillOnly)
			}
		}
	}
	if updated.Game == nil && updated.Date != nil {
		if played := games[*updated.Date]; len(played) > 0 {
			updated.Game = &played[0]
			hasAux = true
		}
	}

	if smallest, ok := files.Smallest(vod.VodID); ok {
		hasAux = true
		updated.Duration, _ = merge.Int64(updated.Duration, smallest.Length, merge.FillOnly)
		if updated.VideoURL == nil {
			url := archive.File{Identifier: smallest.Container, Name: smallest.Name}.
				DownloadURL(r.archive.BaseURL())
			updated.VideoURL = &url
		}
	}

	if updated.VideoURLYouTube == nil {
		if !isTwitch {
			url := watchURL(vod.VodID)
			updated.VideoURLYouTube = &url
		} else if updated.Date != nil {
			tolerance := int64(r.cfg.Reconcile.DurationTolerance)
			if candidate, ok := ytIndex.Match(*updated.Date, updated.Duration, tolerance); ok {
				url := watchURL(candidate.ID)
				updated.VideoURLYouTube = &url
				hasAux = true
			}
		}
	}

	if updated.VideoURLPeerTube == nil {
		if ref, ok := canonical.Lookup(canonicalVodID(vod.VodID)); ok && ref.URL != "" {
			updated.VideoURLPeerTube = &ref.URL
			hasAux = true
		}
	}

	if !hasAux {
		report.Unmatched++
	}
	if reflect.DeepEqual(vod, &updated) {
		report.Skipped++
		return nil
	}
	if err := r.store.UpdateVod(ctx, &updated); err != nil {
		return err
	}
	report.Updated++
	return nil
}

// loadGames reads the converted schedule. A missing file just means the
// schedule pass has not run; enrichment proceeds without it.
func (r *Reconciler) loadGames() (map[string][]string, error) {
	games, err := sheet.GamesByDate(r.cfg.Sheet.DatesOutPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("schedule dates file missing, games unavailable",
				logging.String("path", r.cfg.Sheet.DatesOutPath))
			return map[string][]string{}, nil
		}
		return nil, err
	}
	return games, nil
}

// loadYTIndex groups fetched YouTube metadata by stream date, ranked by the
// configured channel priority.
func (r *Reconciler) loadYTIndex(ctx context.Context) (join.DateIndex, error) {
	videos, err := r.store.ListYTVideos(ctx)
	if err != nil {
		return nil, err
	}
	index := make(join.DateIndex, len(videos))
	for _, video := range videos {
		date, _ := merge.DateToken(video.VodDate)
		priority, ok := r.cfg.YouTube.ChannelPriority[video.Channel]
		if !ok {
			priority = 999
		}
		index.Add(date, join.Candidate{
			ID:       video.VideoID,
			Duration: video.Duration,
			Priority: priority,
		})
	}
	return index, nil
}

// loadCanonicalIndex maps canonical identifiers of mirrored PeerTube videos
// to their watch URLs.
func (r *Reconciler) loadCanonicalIndex(ctx context.Context) (join.CanonicalIndex, error) {
	videos, err := r.store.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	index := make(join.CanonicalIndex, len(videos))
	for _, video := range videos {
		if video.ExternalID == nil {
			continue
		}
		index.Add(*video.ExternalID, join.Ref{NativeID: video.ID, URL: video.URL})
	}
	return index, nil
}

func canonicalVodID(vodID string) string {
	if identity.IsTwitchVodID(vodID) {
		return identity.TwitchPrefix + vodID
	}
	return identity.YouTubePrefix + vodID
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
