package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const vodColumns = "vod_id, chat_id, video_url, video_url_youtube, video_url_peertube, title, game, date, duration"

func scanVod(scanner rowScanner) (*Vod, error) {
	var (
		vod       Vod
		chatID    sql.NullString
		videoURL  sql.NullString
		ytURL     sql.NullString
		ptURL     sql.NullString
		title     sql.NullString
		game      sql.NullString
		date      sql.NullString
		duration  sql.NullInt64
	)
	if err := scanner.Scan(
		&vod.VodID,
		&chatID,
		&videoURL,
		&ytURL,
		&ptURL,
		&title,
		&game,
		&date,
		&duration,
	); err != nil {
		return nil, err
	}
	vod.ChatID = stringPtr(chatID)
	vod.VideoURL = stringPtr(videoURL)
	vod.VideoURLYouTube = stringPtr(ytURL)
	vod.VideoURLPeerTube = stringPtr(ptURL)
	vod.Title = stringPtr(title)
	vod.Game = stringPtr(game)
	vod.Date = stringPtr(date)
	vod.Duration = int64Ptr(duration)
	return &vod, nil
}

// GetVod fetches a VOD record by identifier. A missing record returns (nil, nil).
func (s *Store) GetVod(ctx context.Context, vodID string) (*Vod, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+vodColumns+` FROM vods WHERE vod_id = ?`, vodID)
	vod, err := scanVod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vod: %w", err)
	}
	return vod, nil
}

// InsertVod writes a new VOD record.
func (s *Store) InsertVod(ctx context.Context, vod *Vod) error {
	if vod == nil {
		return errors.New("vod is nil")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO vods (`+vodColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vod.VodID,
		nullablePtr(vod.ChatID),
		nullablePtr(vod.VideoURL),
		nullablePtr(vod.VideoURLYouTube),
		nullablePtr(vod.VideoURLPeerTube),
		nullablePtr(vod.Title),
		nullablePtr(vod.Game),
		nullablePtr(vod.Date),
		nullableInt64Ptr(vod.Duration),
	)
	if err != nil {
		return fmt.Errorf("insert vod: %w", err)
	}
	return nil
}

// UpdateVod persists changes to an existing VOD record.
func (s *Store) UpdateVod(ctx context.Context, vod *Vod) error {
	if vod == nil {
		return errors.New("vod is nil")
	}
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE vods
         SET chat_id = ?, video_url = ?, video_url_youtube = ?, video_url_peertube = ?,
             title = ?, game = ?, date = ?, duration = ?
         WHERE vod_id = ?`,
		nullablePtr(vod.ChatID),
		nullablePtr(vod.VideoURL),
		nullablePtr(vod.VideoURLYouTube),
		nullablePtr(vod.VideoURLPeerTube),
		nullablePtr(vod.Title),
		nullablePtr(vod.Game),
		nullablePtr(vod.Date),
		nullableInt64Ptr(vod.Duration),
		vod.VodID,
	)
	if err != nil {
		return fmt.Errorf("update vod: %w", err)
	}
	return nil
}

// VodsNeedingEnrichment returns VODs with at least one enrichable field still
// missing, ordered by identifier for deterministic passes.
func (s *Store) VodsNeedingEnrichment(ctx context.Context) ([]*Vod, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+vodColumns+` FROM vods
         WHERE video_url IS NULL OR video_url_youtube IS NULL OR chat_id IS NULL
            OR game IS NULL OR duration IS NULL
         ORDER BY vod_id`)
	if err != nil {
		return nil, fmt.Errorf("query vods: %w", err)
	}
	defer rows.Close()

	var vods []*Vod
	for rows.Next() {
		vod, err := scanVod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vod: %w", err)
		}
		vods = append(vods, vod)
	}
	return vods, rows.Err()
}

// DatesNeedingEnrichment returns the distinct stream dates of VODs still
// missing a video URL or duration; they drive the archive bucket search.
func (s *Store) DatesNeedingEnrichment(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT date FROM vods
         WHERE (video_url IS NULL OR duration IS NULL) AND date IS NOT NULL
         ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query vod dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan vod date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}
