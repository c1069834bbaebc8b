package reconcile

import (
	"context"
	"fmt"
	"strconv"

	"vodsync/internal/logging"
	"vodsync/internal/merge"
)

// WriteBackDates propagates original publish dates to the instance in two
// passes. The first derives dates from upload-filename prefixes for rows that
// have none stored; the second pushes stored dates upstream wherever the
// instance still lacks one. Per-video failures are counted, never fatal.
func (r *Reconciler) WriteBackDates(ctx context.Context) (Report, error) {
	var report Report

	missing, err := r.store.VideosMissingOriginalDate(ctx)
	if err != nil {
		return report, err
	}
	for _, video := range missing {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if video.OriginalFilename == nil {
			continue
		}
		token, ok := merge.LeadingDateToken(*video.OriginalFilename)
		if !ok {
			continue
		}
		date, _ := merge.DateToken(token)
		if err := r.pushDate(ctx, video.ID, date); err != nil {
			report.Failed++
			r.logger.Warn("publish date update failed",
				logging.String(logging.FieldVideoID, video.ID),
				logging.Error(err))
			continue
		}
		report.Updated++
	}

	stored, err := r.store.VideosWithOriginalDate(ctx)
	if err != nil {
		return report, err
	}
	for _, video := range stored {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		videoID, err := strconv.ParseInt(video.ID, 10, 64)
		if err != nil {
			report.Failed++
			continue
		}
		upstream, err := r.peertube.Video(ctx, videoID)
		if err != nil || upstream == nil {
			report.Failed++
			r.logger.Warn("video fetch failed",
				logging.String(logging.FieldVideoID, video.ID),
				logging.Error(err))
			continue
		}
		// The instance's own date is authoritative once present.
		if upstream.OriginallyPublishedAt != nil {
			report.Skipped++
			continue
		}
		if err := r.peertube.UpdatePublishDate(ctx, videoID, *video.OriginalPublishDate); err != nil {
			report.Failed++
			r.logger.Warn("publish date update failed",
				logging.String(logging.FieldVideoID, video.ID),
				logging.Error(err))
			continue
		}
		report.Updated++
	}

	r.logger.Info("date write-back complete",
		logging.Int("updated", report.Updated),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", report.Failed))
	return report, nil
}

func (r *Reconciler) pushDate(ctx context.Context, id, date string) error {
	videoID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("parse video id %q: %w", id, err)
	}
	return r.peertube.UpdatePublishDate(ctx, videoID, date)
}
