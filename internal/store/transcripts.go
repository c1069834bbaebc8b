package store

import (
	"context"
	"errors"
	"fmt"
)

// InsertTranscript writes every segment of one VOD transcript in a single
// transaction. Segments are append-only; callers guard duplicate imports by
// checking the parent VOD row first.
func (s *Store) InsertTranscript(ctx context.Context, vodID string, segments []TranscriptSegment) error {
	if vodID == "" {
		return errors.New("vod id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transcript tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transcripts (vod, sub_index, speaker, start_time, end_time, content)
         VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare transcript insert: %w", err)
	}
	defer stmt.Close()

	for _, segment := range segments {
		if _, err := stmt.ExecContext(ctx,
			vodID,
			segment.Index,
			segment.Speaker,
			segment.Start,
			segment.End,
			segment.Text,
		); err != nil {
			return fmt.Errorf("insert transcript segment %d: %w", segment.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transcript: %w", err)
	}
	return nil
}

// TranscriptSegments returns the stored segments for one VOD in subtitle order.
func (s *Store) TranscriptSegments(ctx context.Context, vodID string) ([]TranscriptSegment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT vod, sub_index, speaker, start_time, end_time, content
         FROM transcripts WHERE vod = ? ORDER BY sub_index`, vodID)
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	defer rows.Close()

	var segments []TranscriptSegment
	for rows.Next() {
		var segment TranscriptSegment
		if err := rows.Scan(
			&segment.VodID,
			&segment.Index,
			&segment.Speaker,
			&segment.Start,
			&segment.End,
			&segment.Text,
		); err != nil {
			return nil, fmt.Errorf("scan transcript segment: %w", err)
		}
		segments = append(segments, segment)
	}
	return segments, rows.Err()
}
