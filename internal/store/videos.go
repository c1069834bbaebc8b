package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const videoColumns = "id, name, description, duration, views, likes, dislikes, nsfw, thumbnail_path, created_at, published_at, updated_at, channel, channel_id, privacy, url, original_filename, source_url, manual_id, external_id, original_publish_date"

func scanVideo(scanner rowScanner) (*Video, error) {
	var (
		video         Video
		nsfw          sql.NullInt64
		thumbnail     sql.NullString
		createdAt     sql.NullString
		publishedAt   sql.NullString
		updatedAt     sql.NullString
		origFilename  sql.NullString
		sourceURL     sql.NullString
		manualID      sql.NullString
		externalID    sql.NullString
		origPubDate   sql.NullString
		duration      sql.NullInt64
		views         sql.NullInt64
		likes         sql.NullInt64
		dislikes      sql.NullInt64
		channelID     sql.NullInt64
		name, desc    sql.NullString
		channel       sql.NullString
		privacy, href sql.NullString
	)

	if err := scanner.Scan(
		&video.ID,
		&name,
		&desc,
		&duration,
		&views,
		&likes,
		&dislikes,
		&nsfw,
		&thumbnail,
		&createdAt,
		&publishedAt,
		&updatedAt,
		&channel,
		&channelID,
		&privacy,
		&href,
		&origFilename,
		&sourceURL,
		&manualID,
		&externalID,
		&origPubDate,
	); err != nil {
		return nil, err
	}

	video.Name = name.String
	video.Description = desc.String
	video.Duration = duration.Int64
	video.Views = views.Int64
	video.Likes = likes.Int64
	video.Dislikes = dislikes.Int64
	video.NSFW = nsfw.Int64 != 0
	video.ThumbnailPath = stringPtr(thumbnail)
	video.CreatedAt = stringPtr(createdAt)
	video.PublishedAt = stringPtr(publishedAt)
	video.UpdatedAt = stringPtr(updatedAt)
	video.Channel = channel.String
	video.ChannelID = channelID.Int64
	video.Privacy = privacy.String
	video.URL = href.String
	video.OriginalFilename = stringPtr(origFilename)
	video.SourceURL = stringPtr(sourceURL)
	video.ManualID = stringPtr(manualID)
	video.ExternalID = stringPtr(externalID)
	video.OriginalPublishDate = stringPtr(origPubDate)
	return &video, nil
}

// GetVideo fetches a primary video record by native identifier. A missing
// record returns (nil, nil).
func (s *Store) GetVideo(ctx context.Context, id string) (*Video, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// InsertVideo writes a new primary video record.
func (s *Store) InsertVideo(ctx context.Context, video *Video) error {
	if video == nil {
		return errors.New("video is nil")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO videos (`+videoColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		video.ID,
		video.Name,
		video.Description,
		video.Duration,
		video.Views,
		video.Likes,
		video.Dislikes,
		boolToInt(video.NSFW),
		nullablePtr(video.ThumbnailPath),
		nullablePtr(video.CreatedAt),
		nullablePtr(video.PublishedAt),
		nullablePtr(video.UpdatedAt),
		video.Channel,
		video.ChannelID,
		video.Privacy,
		video.URL,
		nullablePtr(video.OriginalFilename),
		nullablePtr(video.SourceURL),
		nullablePtr(video.ManualID),
		nullablePtr(video.ExternalID),
		nullablePtr(video.OriginalPublishDate),
	)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

// UpdateVideo persists changes to an existing primary video record. The
// manual_id column is deliberately left out: it is operator-owned and never
// written by automated passes.
func (s *Store) UpdateVideo(ctx context.Context, video *Video) error {
	if video == nil {
		return errors.New("video is nil")
	}
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE videos
         SET name = ?, description = ?, duration = ?, views = ?, likes = ?,
             dislikes = ?, nsfw = ?, thumbnail_path = ?, created_at = ?,
             published_at = ?, updated_at = ?, channel = ?, channel_id = ?,
             privacy = ?, url = ?, original_filename = ?, source_url = ?,
             external_id = ?, original_publish_date = ?
         WHERE id = ?`,
		video.Name,
		video.Description,
		video.Duration,
		video.Views,
		video.Likes,
		video.Dislikes,
		boolToInt(video.NSFW),
		nullablePtr(video.ThumbnailPath),
		nullablePtr(video.CreatedAt),
		nullablePtr(video.PublishedAt),
		nullablePtr(video.UpdatedAt),
		video.Channel,
		video.ChannelID,
		video.Privacy,
		video.URL,
		nullablePtr(video.OriginalFilename),
		nullablePtr(video.SourceURL),
		nullablePtr(video.ExternalID),
		nullablePtr(video.OriginalPublishDate),
		video.ID,
	)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	return nil
}

// ListVideos returns every primary video record ordered by identifier.
func (s *Store) ListVideos(ctx context.Context) ([]*Video, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// VideosMissingOriginalDate returns records whose original publish date has
// not been derived yet.
func (s *Store) VideosMissingOriginalDate(ctx context.Context) ([]*Video, error) {
	return s.videosWhere(ctx, "original_publish_date IS NULL")
}

// VideosWithOriginalDate returns records carrying a derived publish date,
// candidates for the best-effort upstream write-back.
func (s *Store) VideosWithOriginalDate(ctx context.Context) ([]*Video, error) {
	return s.videosWhere(ctx, "original_publish_date IS NOT NULL")
}

func (s *Store) videosWhere(ctx context.Context, clause string) ([]*Video, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE `+clause+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}
