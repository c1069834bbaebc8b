package store

import (
	"context"
	"errors"
	"fmt"
)

const ytColumns = "video_id, vod_date, title, description, upload_date, channel, duration"

// InsertYTVideo records YouTube metadata for one mirror upload. Re-imports of
// an already-known video id are ignored so repeat runs stay idempotent.
func (s *Store) InsertYTVideo(ctx context.Context, video *YTVideo) error {
	if video == nil {
		return errors.New("yt video is nil")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO yt_videos (`+ytColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		video.VideoID,
		video.VodDate,
		video.Title,
		video.Description,
		video.UploadDate,
		video.Channel,
		video.Duration,
	)
	if err != nil {
		return fmt.Errorf("insert yt video: %w", err)
	}
	return nil
}

// YTVideoIDs returns the set of already-fetched YouTube video identifiers.
func (s *Store) YTVideoIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT video_id FROM yt_videos`)
	if err != nil {
		return nil, fmt.Errorf("query yt video ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan yt video id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// ListYTVideos returns every stored YouTube record ordered by stream date.
func (s *Store) ListYTVideos(ctx context.Context) ([]*YTVideo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+ytColumns+` FROM yt_videos ORDER BY vod_date, video_id`)
	if err != nil {
		return nil, fmt.Errorf("query yt videos: %w", err)
	}
	defer rows.Close()

	var videos []*YTVideo
	for rows.Next() {
		var video YTVideo
		if err := rows.Scan(
			&video.VideoID,
			&video.VodDate,
			&video.Title,
			&video.Description,
			&video.UploadDate,
			&video.Channel,
			&video.Duration,
		); err != nil {
			return nil, fmt.Errorf("scan yt video: %w", err)
		}
		videos = append(videos, &video)
	}
	return videos, rows.Err()
}
