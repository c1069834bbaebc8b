package reconcile

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"vodsync/internal/identity"
	"vodsync/internal/logging"
	"vodsync/internal/merge"
	"vodsync/internal/services/peertube"
	"vodsync/internal/store"
)

// SyncVideos mirrors the PeerTube catalog into the videos table. Listing or
// import-lookup failures abort the pass; per-video failures are counted and
// the batch continues.
func (r *Reconciler) SyncVideos(ctx context.Context) (Report, error) {
	var report Report

	videos, err := r.peertube.AllVideos(ctx)
	if err != nil {
		return report, fmt.Errorf("list videos: %w", err)
	}
	imports, err := r.peertube.Imports(ctx)
	if err != nil {
		return report, fmt.Errorf("list imports: %w", err)
	}

	sourceURLs := make(map[int64]*string, len(imports))
	for _, job := range imports {
		if job.TargetURL != nil {
			sourceURLs[job.Video.ID] = job.TargetURL
		}
	}

	for _, video := range videos {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := r.syncVideo(ctx, video, sourceURLs[video.ID], &report); err != nil {
			report.Failed++
			r.logger.Warn("video sync failed",
				logging.Int64(logging.FieldVideoID, video.ID),
				logging.Error(err))
		}
	}

	r.logger.Info("video sync complete",
		logging.Int("inserted", report.Inserted),
		logging.Int("updated", report.Updated),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", report.Failed))
	return report, nil
}

func (r *Reconciler) syncVideo(ctx context.Context, video peertube.Video, sourceURL *string, report *Report) error {
	id := strconv.FormatInt(video.ID, 10)
	existing, err := r.store.GetVideo(ctx, id)
	if err != nil {
		return err
	}

	// The source-filename lookup is a second request per video, so reuse the
	// stored value once either it or a canonical identifier is known.
	var filename *string
	if existing == nil || (existing.OriginalFilename == nil && existing.ExternalID == nil) {
		filename, err = r.peertube.SourceFilename(ctx, video.ID)
		if err != nil {
			return err
		}
	} else {
		filename = existing.OriginalFilename
	}

	record := buildVideoRecord(id, video, existing, sourceURL, filename)

	if existing == nil {
		if err := r.store.InsertVideo(ctx, record); err != nil {
			return err
		}
		report.Inserted++
		return nil
	}
	if reflect.DeepEqual(existing, record) {
		report.Skipped++
		return nil
	}
	if err := r.store.UpdateVideo(ctx, record); err != nil {
		return err
	}
	report.Updated++
	return nil
}

// buildVideoRecord folds one upstream video into the stored row. Fields the
// instance owns replace unconditionally; the canonical identifier and the
// original publish date are fill-only, and a manual identifier always wins.
func buildVideoRecord(id string, video peertube.Video, existing *store.Video, sourceURL, filename *string) *store.Video {
	record := &store.Video{
		ID:            id,
		Name:          video.Name,
		Duration:      video.Duration,
		Views:         video.Views,
		Likes:         video.Likes,
		Dislikes:      video.Dislikes,
		NSFW:          video.NSFW,
		Channel:       video.Channel.Name,
		ChannelID:     video.Channel.ID,
		Privacy:       strconv.FormatInt(video.Privacy.ID, 10),
		URL:           video.URL,
		ThumbnailPath: &video.ThumbnailPath,
		CreatedAt:     &video.CreatedAt,
		PublishedAt:   &video.PublishedAt,
		UpdatedAt:     &video.UpdatedAt,
	}
	if video.Description != nil {
		record.Description = *video.Description
	}

	var (
		existingSource   *string
		existingFilename *string
		existingDate     *string
	)
	if existing != nil {
		existingSource = existing.SourceURL
		existingFilename = existing.OriginalFilename
		existingDate = existing.OriginalPublishDate
		record.ManualID = existing.ManualID
	}

	record.SourceURL, _ = merge.String(existingSource, sourceURL, merge.ReplaceNonNil)
	record.OriginalFilename, _ = merge.String(existingFilename, filename, merge.ReplaceNonNil)
	record.OriginalPublishDate, _ = merge.Date(existingDate, video.OriginallyPublishedAt, merge.FillOnly)
	record.ExternalID = resolveExternalID(existing, record)

	return record
}

// resolveExternalID applies the override invariant: a manual identifier is
// always the canonical identifier, a previously stored identifier is kept,
// and derivation runs only when neither exists.
func resolveExternalID(existing *store.Video, record *store.Video) *string {
	if record.ManualID != nil && *record.ManualID != "" {
		return record.ManualID
	}
	if existing != nil && existing.ExternalID != nil {
		return existing.ExternalID
	}

	var sourceURL, filename string
	if record.SourceURL != nil {
		sourceURL = *record.SourceURL
	}
	if record.OriginalFilename != nil {
		filename = *record.OriginalFilename
	}
	if derived, ok := identity.Derive("", sourceURL, filename); ok {
		return &derived
	}
	return nil
}
